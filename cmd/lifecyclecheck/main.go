// Package main evaluates hackathon lifecycle request documents.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/louisbranch/hackathon.space/internal/platform/cmd"
	"github.com/louisbranch/hackathon.space/internal/platform/config"
	"github.com/louisbranch/hackathon.space/internal/tools/lifecyclecheck"
)

func main() {
	cfg, err := lifecyclecheck.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := cmd.SignalContext(context.Background())
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	in, err := lifecyclecheck.Open(cfg)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	defer in.Close()

	err = cmd.RunWithTelemetryAndOptions(ctx, cmd.ServiceLifecycleCheck, cfg.RunOptions(), func(ctx context.Context) error {
		return lifecyclecheck.Run(ctx, cfg, in, os.Stdout)
	})
	if err != nil {
		config.Exitf("Error: %v", err)
	}
}
