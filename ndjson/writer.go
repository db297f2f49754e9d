// Copyright (C) 2026 The jevent Authors. All Rights Reserved.

// Package ndjson serializes domain events as newline-delimited JSON, one
// object per line, and binds an event pipeline to a streaming HTTP
// response.
package ndjson

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// A Writer emits events to w as newline-delimited JSON in emission order.
// Each event becomes exactly one line with no indentation. If w implements
// http.Flusher, the writer flushes after every record so that consumers
// see each event as soon as it is written.
type Writer[E any] struct {
	w     io.Writer
	flush func()
	line  []byte // reused line buffer
	count int
}

// NewWriter constructs a Writer that emits events to w.
func NewWriter[E any](w io.Writer) *Writer[E] {
	nw := &Writer[E]{w: w}
	if f, ok := w.(http.Flusher); ok {
		nw.flush = f.Flush
	}
	return nw
}

// Emit writes one event as a single line. It is not safe for concurrent
// use; the pipeline delivers events sequentially.
func (w *Writer[E]) Emit(event E) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	w.line = append(append(w.line[:0], data...), '\n')
	if _, err := w.w.Write(w.line); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	w.count++
	if w.flush != nil {
		w.flush()
	}
	return nil
}

// Count reports the number of events emitted so far.
func (w *Writer[E]) Count() int { return w.count }
