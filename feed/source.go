// Copyright (C) 2026 The jevent Authors. All Rights Reserved.

package feed

import (
	"context"
	"io"
)

// A Source is an ordered, lazily produced sequence of text fragments, such
// as the chunks of a generative model's reply. Fragments have arbitrary
// length and arbitrary boundaries relative to JSON token boundaries.
type Source interface {
	// Next returns the next fragment, blocking until one is available or
	// ctx ends. It returns io.EOF when the source is exhausted and will
	// never yield another fragment. Empty fragments are permitted; they
	// carry no data and are not errors.
	Next(ctx context.Context) (string, error)
}

// Slice returns a Source that yields the given fragments in order.
func Slice(frags ...string) Source { return &sliceSource{frags: frags} }

type sliceSource struct{ frags []string }

func (s *sliceSource) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(s.frags) == 0 {
		return "", io.EOF
	}
	frag := s.frags[0]
	s.frags = s.frags[1:]
	return frag, nil
}

// Chan returns a Source that yields fragments received from ch and reports
// exhaustion when ch is closed.
func Chan(ch <-chan string) Source { return chanSource{ch: ch} }

type chanSource struct{ ch <-chan string }

func (s chanSource) Next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case frag, ok := <-s.ch:
		if !ok {
			return "", io.EOF
		}
		return frag, nil
	}
}

// ReaderSource returns a Source that reads fragments of at most chunkSize
// bytes from r. It is the usual adapter for replaying a stored document
// through the pipeline as if it were arriving incrementally.
// ReaderSource panics if chunkSize is not positive.
func ReaderSource(r io.Reader, chunkSize int) Source {
	if chunkSize <= 0 {
		panic("feed: non-positive chunk size")
	}
	return &readerSource{r: r, buf: make([]byte, chunkSize)}
}

type readerSource struct {
	r   io.Reader
	buf []byte
}

func (s *readerSource) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	n, err := s.r.Read(s.buf)
	if n > 0 {
		return string(s.buf[:n]), nil
	}
	if err == nil {
		err = io.EOF
	}
	return "", err
}
