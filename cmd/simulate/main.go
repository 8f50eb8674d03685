// Package main provides a CLI for running scripted rounds.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	simulatecmd "github.com/goathill/wolfgoatpig/internal/cmd/simulate"
	platformcmd "github.com/goathill/wolfgoatpig/internal/platform/cmd"
	"github.com/goathill/wolfgoatpig/internal/platform/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := simulatecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceSimulate, func(ctx context.Context) error {
		return simulatecmd.Run(ctx, cfg)
	}); err != nil {
		config.Exitf("Error: %v", err)
	}
}
