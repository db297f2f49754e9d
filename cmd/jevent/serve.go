// Copyright (C) 2026 The jevent Authors. All Rights Reserved.

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jevent/jevent/feed"
	"github.com/jevent/jevent/listev"
	"github.com/jevent/jevent/ndjson"
)

func newServeCommand(root *rootOptions) *cobra.Command {
	var (
		listen   string
		fragSize int
		delay    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a streaming NDJSON event endpoint fed by a mock generator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fragSize <= 0 {
				return errors.New("--fragment must be positive")
			}
			cfg, err := root.config()
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}
			logger := root.logger()

			mux := http.NewServeMux()
			mux.Handle("GET /events", &ndjson.Handler[listev.Event]{
				NewSource: func(r *http.Request) feed.Source {
					return trickle(sampleDocument, fragSize, delay)
				},
				NewVisitor: func() feed.Visitor[listev.Event] {
					return listev.NewMachine()
				},
				Options: &feed.Options{MaxFragments: cfg.BatchSize, Logger: logger},
				Logger:  logger,
			})

			srv := &http.Server{Addr: cfg.Listen, Handler: mux}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(shutdownCtx)
			}()

			logger.Info("listening", "addr", cfg.Listen)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides config)")
	cmd.Flags().IntVar(&fragSize, "fragment", 5, "bytes per generated fragment")
	cmd.Flags().DurationVar(&delay, "delay", 25*time.Millisecond, "pause between generated fragments")
	return cmd
}
