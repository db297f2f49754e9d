// Copyright (C) 2026 The jevent Authors. All Rights Reserved.

// Package jevent implements a resumable lexical scanner for JSON delivered
// in arbitrary text fragments.
//
// # Scanning
//
// The Scanner type lexes JSON tokens out of a byte buffer. Unlike a
// conventional scanner it does not require the complete document: it
// consumes the longest prefix of complete tokens and reports, via Consumed,
// how many bytes it used. The unconsumed suffix is a (possibly empty)
// incomplete trailing token; prepend it to the next round of input and
// Reset the scanner to continue as if the buffer had never been split:
//
//	var s jevent.Scanner
//	s.Reset(buf, base, false)
//	for s.Next() {
//	   log.Printf("Next token: %v", s.Token())
//	}
//	if s.Err() != nil {
//	   log.Fatalf("Scanning failed: %v", s.Err())
//	}
//	leftover := buf[s.Consumed():] // seed for the next buffer
//
// A lexical error is reported only for byte sequences that cannot be a
// prefix of any valid token stream; running out of bytes mid-token is the
// expected resumption condition, not an error.
//
// # Higher layers
//
// The feed package drives a Scanner over a fragment source, carrying the
// leftover bytes between cycles, and delivers each token to a visitor. The
// listev package provides the visitor that turns the token sequence into
// typed domain events, and the ndjson package serializes those events one
// per line for streaming consumers.
package jevent
