package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/gophauth/internal/client/cli"
	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/config"
)

func main() {
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	api := client.New(cfg.ServerURL, cfg.RequestTimeout)
	cli.NewApp(api, os.Stdin, os.Stdout, cfg.RequestTimeout).Run(context.Background())
}
