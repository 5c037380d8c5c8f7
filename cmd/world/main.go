package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/dmitrijs2005/world/internal/buildinfo"
	"github.com/dmitrijs2005/world/internal/client/cli"
	"github.com/dmitrijs2005/world/internal/client/config"
	"github.com/dmitrijs2005/world/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(os.Stderr, cfg.LogLevel, term.IsTerminal(int(os.Stderr.Fd())))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logger, os.Stdin, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error(ctx, "world exited with error", "err", err)
		os.Exit(1)
	}

}
