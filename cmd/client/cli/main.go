package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/aleksivanovs/notekeep/internal/client/cli"
	"github.com/aleksivanovs/notekeep/internal/client/config"
	"github.com/aleksivanovs/notekeep/internal/logging"
)

func main() {

	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(context.Background())
}
