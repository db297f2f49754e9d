// Copyright (C) 2026 The jevent Authors. All Rights Reserved.

// Program jevent extracts typed domain events from item-list JSON
// documents as they stream in, emitting newline-delimited JSON.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jevent/jevent/internal/config"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	verbose    bool
}

// logger builds the process logger: info to stderr, debug when verbose.
func (o *rootOptions) logger() *slog.Logger {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func (o *rootOptions) config() (*config.Config, error) {
	return config.Load(o.configPath)
}

func newRootCommand() *cobra.Command {
	opts := new(rootOptions)
	cmd := &cobra.Command{
		Use:           "jevent",
		Short:         "Extract domain events from streamed item-list JSON",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a HuJSON config file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	cmd.AddCommand(newExtractCommand(opts), newServeCommand(opts))
	return cmd
}
