// Copyright (C) 2026 The jevent Authors. All Rights Reserved.

package main

import (
	"context"
	"io"
	"time"

	"github.com/jevent/jevent/feed"
)

// sampleDocument stands in for a generative model's reply. The trailing
// prose after the JSON mimics the chatter some models append; the pipeline
// stops at the closing bracket and never reads it.
const sampleDocument = `{"listName":"Bucket List","items":[
  {"recommendedAge":30,"description":"Skydiving"},
  {"recommendedAge":35,"description":"Run a marathon"},
  {"recommendedAge":50,"description":"Visit all seven continents"},
  {"recommendedAge":60,"description":"Write a memoir"}
]}
Hope these inspire you!`

// trickle returns a Source that replays doc in fragments of at most size
// bytes with a pause before each one, imitating token-by-token generation.
// It panics if size is not positive.
func trickle(doc string, size int, delay time.Duration) feed.Source {
	if size <= 0 {
		panic("trickle: non-positive fragment size")
	}
	return &trickleSource{rest: doc, size: size, delay: delay}
}

type trickleSource struct {
	rest  string
	size  int
	delay time.Duration
}

func (s *trickleSource) Next(ctx context.Context) (string, error) {
	if s.rest == "" {
		return "", io.EOF
	}
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.delay):
		}
	}
	n := min(s.size, len(s.rest))
	frag := s.rest[:n]
	s.rest = s.rest[n:]
	return frag, nil
}
