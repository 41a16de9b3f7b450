package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/finhive/internal/app"
	"github.com/dmitrijs2005/finhive/internal/buildinfo"
	"github.com/dmitrijs2005/finhive/internal/cli"
	"github.com/dmitrijs2005/finhive/internal/config"
)

func main() {
	interactive := cli.Interactive(os.Stdin)
	if interactive {
		buildinfo.PrintBuildData(os.Stdout)
	}

	ctx := context.Background()
	cfg := config.LoadConfig()
	a, err := app.NewApp(ctx, cfg, os.Stdin, os.Stdout, interactive)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		log.Printf("%v", err)
	}
}
