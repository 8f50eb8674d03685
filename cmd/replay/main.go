// Package main provides a CLI for inspecting journaled rounds.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	replaycmd "github.com/goathill/wolfgoatpig/internal/cmd/replay"
	platformcmd "github.com/goathill/wolfgoatpig/internal/platform/cmd"
	"github.com/goathill/wolfgoatpig/internal/platform/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := replaycmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceReplay, func(ctx context.Context) error {
		return replaycmd.Run(ctx, cfg)
	}); err != nil {
		config.Exitf("Error: %v", err)
	}
}
