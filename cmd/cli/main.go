package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/awnumar/memguard"
	"github.com/dmitrijs2005/vaultkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/vaultkeeper/internal/client/cli"
	"github.com/dmitrijs2005/vaultkeeper/internal/client/config"
)

func main() {
	memguard.CatchInterrupt()
	defer memguard.Purge()

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		memguard.SafeExit(1)
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}
}
