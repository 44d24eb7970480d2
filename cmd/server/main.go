package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/cloudstack/internal/buildinfo"
	"github.com/dmitrijs2005/cloudstack/internal/server"
	"github.com/dmitrijs2005/cloudstack/internal/server/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(2)
	}

	logger := server.NewLogger(os.Stdout, cfg)

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "server error", "error", err)
		os.Exit(1)
	}
}
