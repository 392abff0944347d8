// Command backtestctl runs the bar-driven backtest orchestrator behind a
// thin HTTP surface, grounded on the teacher's cmd/brale/main.go
// (config load -> log setup -> app wiring -> run).
package main

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	brcfg "barterbench/internal/config"
	"barterbench/internal/logger"
	"barterbench/internal/wireup"
)

func main() {
	ctx := context.Background()

	cfgPath := os.Getenv("BACKTESTCTL_CONFIG")
	if cfgPath == "" {
		cfgPath = "configs/config.yaml"
	}

	cfg, err := brcfg.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logFile, err := setupLogOutput(cfg.App.LogPath)
	if err != nil {
		log.Fatalf("init log output: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	logger.SetLevel(cfg.App.LogLevel)
	logger.Infof("backtestctl starting (env=%s)", cfg.App.Env)

	app, err := wireup.BuildApp(ctx, cfg)
	if err != nil {
		log.Fatalf("build app: %v", err)
	}
	defer app.Close()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("http server: %v", err)
	}
}

func setupLogOutput(path string) (*os.File, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, nil
	}
	dir := filepath.Dir(trimmed)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := os.OpenFile(trimmed, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	mw := io.MultiWriter(os.Stdout, file)
	log.SetOutput(mw)
	logger.SetOutput(mw)
	return file, nil
}
