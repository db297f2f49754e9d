// Copyright (C) 2026 The jevent Authors. All Rights Reserved.

package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jevent/jevent/feed"
	"github.com/jevent/jevent/listev"
	"github.com/jevent/jevent/ndjson"
)

func newExtractCommand(root *rootOptions) *cobra.Command {
	var batch, chunk int
	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Extract events from a document (file or stdin) to stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			if batch > 0 {
				cfg.BatchSize = batch
			}
			if chunk > 0 {
				cfg.ChunkSize = chunk
			}

			var in io.Reader = os.Stdin
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			return feed.Run(cmd.Context(),
				feed.ReaderSource(in, cfg.ChunkSize),
				listev.NewMachine(),
				ndjson.NewWriter[listev.Event](os.Stdout),
				&feed.Options{MaxFragments: cfg.BatchSize, Logger: root.logger()})
		},
	}
	cmd.Flags().IntVar(&batch, "batch", 0, "fragments per drive cycle (overrides config)")
	cmd.Flags().IntVar(&chunk, "chunk", 0, "fragment size in bytes (overrides config)")
	return cmd
}
