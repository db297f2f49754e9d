// Copyright (C) 2026 The jevent Authors. All Rights Reserved.

// Package feed drives a resumable JSON scanner over a fragment source and
// delivers typed events to a sink as soon as they are structurally
// complete, before the full document exists.
//
// The pipeline is: an Accumulator batches fragments into a buffer, a
// Driver lexes the buffer's complete tokens and carries the incomplete
// remainder across cycles, a Visitor folds the token sequence into events,
// and a Sink emits them. Run repeats this cycle until the visitor reports
// that the expected document shape has closed, or the source ends.
//
// Everything runs on the caller's goroutine; the only suspension point is
// waiting for the next fragment.
package feed

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jevent/jevent"
)

// ErrTruncated is returned by Run when the fragment source is exhausted
// before the document's top-level shape has closed.
var ErrTruncated = errors.New("input ended before the document closed")

// A Visitor folds a token sequence into domain events. Visit is called
// once per token in arrival order and returns the events that token
// completed, in emission order. Complete reports whether the expected
// top-level shape has closed; once it does, no further tokens are
// delivered.
type Visitor[E any] interface {
	Visit(tok jevent.Token, text []byte) ([]E, error)
	Complete() bool
}

// A Sink receives completed events, one call per event, in emission order.
type Sink[E any] interface {
	Emit(event E) error
}

// Options tune a Run. The zero value (and a nil pointer) is usable.
type Options struct {
	// MaxFragments bounds how many fragments are buffered per drive cycle.
	// Smaller values emit events sooner at the cost of more tokenizer
	// invocations. If zero, DefaultMaxFragments is used; a negative value
	// is a programmer error and panics.
	MaxFragments int

	// Logger receives per-cycle debug records. If nil, logging is off.
	Logger *slog.Logger
}

// DefaultMaxFragments is the fragment-batch size used when Options does not
// specify one.
const DefaultMaxFragments = 32

func (o *Options) maxFragments() int {
	if o == nil || o.MaxFragments == 0 {
		return DefaultMaxFragments
	}
	if o.MaxFragments < 0 {
		panic("feed: negative MaxFragments")
	}
	return o.MaxFragments
}

func (o *Options) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// Run pulls fragments from src and delivers the events extracted by v to
// sink until the document completes. It returns nil on completion,
// ErrTruncated if src is exhausted first, the visitor's or sink's error if
// one fails, a *jevent.SyntaxError on lexically invalid input, or the
// context's error if ctx ends while waiting for a fragment.
//
// Events are emitted in the exact order their closing tokens are observed,
// with no batching across cycles. Once the visitor reports completion, Run
// stops immediately: remaining fragments are never requested and trailing
// buffered bytes are never lexed, so chatter after the document produces
// neither events nor errors. Events already emitted before a failure stand;
// there is no rollback.
func Run[E any](ctx context.Context, src Source, v Visitor[E], sink Sink[E], opts *Options) error {
	var (
		d      Driver
		batch  = opts.maxFragments()
		logger = opts.logger()
	)
	for cycle := 1; ; cycle++ {
		exhausted, err := d.Fill(ctx, src, batch)
		if err != nil {
			return err
		}

		var events []E
		err = d.Drive(exhausted, func(tok jevent.Token, text []byte) error {
			evs, err := v.Visit(tok, text)
			if err != nil {
				return err
			}
			events = append(events, evs...)
			if v.Complete() {
				return ErrStop
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, ev := range events {
			if err := sink.Emit(ev); err != nil {
				return err
			}
		}
		logger.Debug("drive cycle",
			"cycle", cycle,
			"events", len(events),
			"offset", d.Offset(),
			"leftover", len(d.Leftover()),
			"exhausted", exhausted)

		if v.Complete() {
			return nil
		}
		if exhausted {
			return ErrTruncated
		}
	}
}
