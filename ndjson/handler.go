// Copyright (C) 2026 The jevent Authors. All Rights Reserved.

package ndjson

import (
	"log/slog"
	"net/http"

	"github.com/jevent/jevent/feed"
)

// ContentType is the media type of a newline-delimited JSON event stream.
const ContentType = "application/x-ndjson"

// A Handler serves an event stream over HTTP. Each request gets a fresh
// fragment source and visitor; extracted events are streamed to the client
// as they complete, one JSON object per line, flushed per event.
type Handler[E any] struct {
	// NewSource returns the fragment source for one request.
	NewSource func(r *http.Request) feed.Source

	// NewVisitor returns the visitor that extracts events for one request.
	NewVisitor func() feed.Visitor[E]

	// Options tune the pipeline run. May be nil.
	Options *feed.Options

	// Logger records stream failures. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// ServeHTTP implements http.Handler. On a mid-stream fatal error the lines
// already written stand, since they describe events that really completed, and
// the connection is aborted so the client sees a truncated stream rather
// than a clean end.
func (h *Handler[E]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("Cache-Control", "no-cache")

	sink := NewWriter[E](w)
	err := feed.Run(r.Context(), h.NewSource(r), h.NewVisitor(), sink, h.Options)
	if err == nil {
		return
	}
	h.logger().Error("event stream aborted",
		"err", err, "emitted", sink.Count(), "remote", r.RemoteAddr)
	if sink.Count() == 0 {
		// Nothing streamed yet, so a proper error status can still be sent.
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	panic(http.ErrAbortHandler)
}

func (h *Handler[E]) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.Default()
	}
	return h.Logger
}
