// Package wireup assembles cmd/backtestctl's collaborators, grounded on
// the teacher's internal/app (AppBuilder + wire_gen.go buildAppWithWire).
// The teacher wires an AI decision pipeline; this package wires the
// backtest orchestrator, its two storage adapters and its HTTP surface.
package wireup

import (
	"context"

	backtesthttp "barterbench/internal/transport/http/backtest"

	"barterbench/internal/backtest"
	"barterbench/internal/store/gormstore"
	"barterbench/internal/store/sqlite"
)

// App bundles the long-lived collaborators cmd/backtestctl needs to run
// and close down cleanly, mirroring the teacher's App (internal/app.App).
type App struct {
	Orchestrator *backtest.Orchestrator
	Catalog      *sqlite.Catalog
	Definitions  *gormstore.Store
	Server       *backtesthttp.Server
}

// Run starts the HTTP surface and blocks until ctx is cancelled or the
// server returns an error.
func (a *App) Run(ctx context.Context) error {
	return a.Server.Run(ctx)
}

// Close releases the candle catalog; the gorm definition store has no
// Close and is left as it is. The HTTP server shuts itself down
// inside Run when ctx is cancelled, so it has no separate Close step.
func (a *App) Close() error {
	if a.Catalog != nil {
		return a.Catalog.Close()
	}
	return nil
}
