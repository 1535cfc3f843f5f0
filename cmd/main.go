package main

import (
	"context"
	"log"
	"os"

	"photo_album/pkg/config"
	"photo_album/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config failed: %v", err)
	}
	logging.Setup(cfg.LogLevel)

	if err := newRootCmd(cfg).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
