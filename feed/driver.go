// Copyright (C) 2026 The jevent Authors. All Rights Reserved.

package feed

import (
	"context"
	"errors"
	"io"

	"github.com/jevent/jevent"
)

// An Accumulator collects fragments from a Source into a growable byte
// buffer. Filling is bounded by a fragment count per call so that the
// caller controls how much latency it trades for fewer tokenizer runs.
type Accumulator struct {
	buf []byte
}

// Fill pulls fragments from src one at a time, appending each fragment's
// bytes to the buffer, until either maxFragments non-empty fragments have
// been appended or the source is exhausted. It reports whether the source
// was exhausted, meaning no fragment will ever arrive again.
//
// Empty fragments are skipped and do not count against maxFragments. The
// context is checked before every pull; source errors are returned as-is,
// without retrying.
func (a *Accumulator) Fill(ctx context.Context, src Source, maxFragments int) (exhausted bool, _ error) {
	for n := 0; n < maxFragments; {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		frag, err := src.Next(ctx)
		if err == io.EOF {
			return true, nil
		} else if err != nil {
			return false, err
		}
		if frag == "" {
			continue
		}
		a.buf = append(a.buf, frag...)
		n++
	}
	return false, nil
}

// Bytes returns the accumulated, not yet consumed bytes.
func (a *Accumulator) Bytes() []byte { return a.buf }

// ErrStop may be returned by a Driver visit callback to stop the current
// drive cycle early without error. Tokens and bytes after the stopping
// token are left unlexed; this is how a caller discards trailing input
// once it has seen everything it wanted.
var ErrStop = errors.New("stop driving")

// A Driver owns the cross-cycle tokenizer state: the accumulated buffer,
// the scanner, and the absolute offset of the first buffered byte. After
// each drive cycle it retains the unconsumed suffix of the buffer, the
// bytes of an incomplete trailing token, as the seed of the next cycle.
//
// The zero value is ready for use. A Driver is not safe for concurrent use.
type Driver struct {
	sc   jevent.Scanner
	acc  Accumulator
	base int // absolute offset of acc.buf[0] in the overall input
}

// Fill buffers more input; see Accumulator.Fill.
func (d *Driver) Fill(ctx context.Context, src Source, maxFragments int) (bool, error) {
	return d.acc.Fill(ctx, src, maxFragments)
}

// Drive lexes every complete token currently in the buffer, invoking visit
// once per token in order, then truncates the buffer to the unconsumed
// suffix. final marks the buffer as ending at end of input.
//
// A visit error aborts the cycle and is returned, except ErrStop, which
// stops the cycle cleanly. A lexical error from the tokenizer is fatal and
// returned as a *jevent.SyntaxError; an incomplete trailing token is the
// normal resumption condition and is not an error.
func (d *Driver) Drive(final bool, visit func(jevent.Token, []byte) error) error {
	d.sc.Reset(d.acc.buf, d.base, final)
	stopped := false
	for d.sc.Next() {
		if err := visit(d.sc.Token(), d.sc.Text()); err != nil {
			if !errors.Is(err, ErrStop) {
				return err
			}
			stopped = true
			break
		}
	}
	if !stopped {
		if err := d.sc.Err(); err != nil {
			return err
		}
	}
	n := d.sc.Consumed()
	d.base += n
	d.acc.buf = append(d.acc.buf[:0], d.acc.buf[n:]...)
	return nil
}

// Leftover returns the bytes retained from the last drive cycle. It exists
// for observability; the slice must not be modified.
func (d *Driver) Leftover() []byte { return d.acc.buf }

// Offset reports the absolute input offset of the first retained byte,
// which equals the total number of bytes consumed so far.
func (d *Driver) Offset() int { return d.base }
