package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/eatsbalance/internal/buildinfo"
	"github.com/dmitrijs2005/eatsbalance/internal/client/cli"
	"github.com/dmitrijs2005/eatsbalance/internal/client/config"
	"github.com/dmitrijs2005/eatsbalance/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	log := logging.NewConsole(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "cannot start", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)
}
