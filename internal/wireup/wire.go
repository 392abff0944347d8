//go:build wireinject

package wireup

import (
	"context"

	"github.com/google/wire"

	brcfg "barterbench/internal/config"
)

// BuildApp is the wire injector source; `go run github.com/google/wire/cmd/wire`
// regenerates wire_gen.go from this function body. Never called directly —
// the build tag excludes it from normal compilation.
func BuildApp(ctx context.Context, cfg *brcfg.Config) (*App, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
