package main

import (
	"context"
	"log"
	"os"

	"github.com/selimv/vitrine/internal/buildinfo"
	"github.com/selimv/vitrine/internal/cli"
	"github.com/selimv/vitrine/internal/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
