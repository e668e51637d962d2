// Package main provides the servicerecord command.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	servicerecord "github.com/louisbranch/servicerecord/internal/cmd/servicerecord"
	entrypoint "github.com/louisbranch/servicerecord/internal/platform/cmd"
	"github.com/louisbranch/servicerecord/internal/platform/config"
)

func main() {
	fs := pflag.NewFlagSet(entrypoint.ServiceRecord, pflag.ContinueOnError)
	cfg, err := servicerecord.ParseConfig(fs, os.Args[1:])
	if err != nil {
		servicerecord.PrintUsage(os.Stderr, fs)
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		config.ExitCodef(servicerecord.ExitCode(err), "Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceRecord, cfg.Telemetry, func(ctx context.Context) error {
		return servicerecord.Run(ctx, cfg, os.Stdout)
	})
	if err != nil {
		stop()
		config.ExitCodef(servicerecord.ExitCode(err), "Error: %s", servicerecord.Message(err, cfg.Locale))
	}
}
