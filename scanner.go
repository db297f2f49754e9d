// Copyright (C) 2026 The jevent Authors. All Rights Reserved.

package jevent

import (
	"fmt"
	"unicode/utf8"

	"go4.org/mem"
)

// A Scanner reads lexical tokens from a byte buffer. Each call to Next
// advances the scanner to the next complete token in the buffer, or reports
// that no further complete token is available.
//
// Unlike a reader-backed scanner, a Scanner never blocks for input: it lexes
// the longest prefix of complete tokens out of the buffer it was given and
// stops. A trailing incomplete token (a string still missing its closing
// quote, a number that may gain more digits, a partial keyword) is not an
// error; the bytes forming it are simply not consumed, and the caller is
// expected to present them again, extended, on a later Reset. Only byte
// sequences that cannot be a prefix of any valid token stream are errors.
//
// The zero value is ready for use after Reset.
type Scanner struct {
	buf   []byte
	pos   int  // current scan position in buf
	done  int  // offset just past the last complete token
	base  int  // absolute input offset of buf[0]
	final bool // no more input will ever follow buf

	tok   Token
	start int // offset in buf of the current token
	err   error
}

// Reset prepares the scanner to lex buf. The base offset is the absolute
// position of buf[0] in the overall input, used for error locations. If
// final is true, the buffer is treated as ending at end of input, which
// allows a trailing number or keyword to terminate there.
func (s *Scanner) Reset(buf []byte, base int, final bool) {
	s.buf, s.base, s.final = buf, base, final
	s.pos, s.done, s.start = 0, 0, 0
	s.tok, s.err = Invalid, nil
}

// Next advances s to the next complete token in the buffer and reports
// whether one was found. When Next returns false, Err reports nil if the
// scanner simply ran out of complete tokens, or the lexical error that
// stopped it.
func (s *Scanner) Next() bool {
	if s.err != nil {
		return false
	}
	s.skipSpace()
	s.done = s.pos
	if s.pos >= len(s.buf) {
		return false
	}
	s.start = s.pos

	var ok bool
	switch ch := s.buf[s.pos]; {
	case ch == '"':
		ok = s.scanString()
	case isNumStart(ch):
		ok = s.scanNumber()
	case ch == 't' || ch == 'f' || ch == 'n':
		ok = s.scanName()
	default:
		if t, self := selfDelim(ch); self {
			s.tok, s.pos = t, s.pos+1
			ok = true
		} else {
			return s.failf(s.pos, "unexpected %q", ch)
		}
	}
	if !ok {
		return false // lexical error, or incomplete trailing token
	}
	s.done = s.pos
	return true
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Text returns the undecoded text of the current token. The return value is
// a view into the scanner's buffer, valid only until the next call of Next
// or Reset; the caller must copy the contents if they are needed longer.
func (s *Scanner) Text() []byte { return s.buf[s.start:s.pos] }

// Err returns the lexical error that stopped the scanner, or nil.
func (s *Scanner) Err() error { return s.err }

// Consumed reports the offset in the buffer just past the last complete
// token, including any whitespace skipped after it. Bytes at and beyond
// this offset were not consumed and must be presented again.
func (s *Scanner) Consumed() int { return s.done }

func (s *Scanner) skipSpace() {
	for s.pos < len(s.buf) && isSpace(s.buf[s.pos]) {
		s.pos++
	}
}

func (s *Scanner) scanString() bool {
	i := s.pos + 1 // skip the opening quote
	for i < len(s.buf) {
		switch ch := s.buf[i]; {
		case ch == '"':
			s.tok, s.pos = String, i+1
			return true

		case ch == '\\':
			if i+1 >= len(s.buf) {
				return s.incomplete("unterminated string")
			}
			switch esc := s.buf[i+1]; esc {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				i += 2
			case 'u':
				end := min(i+6, len(s.buf))
				for j := i + 2; j < end; j++ {
					if !isHexDigit(s.buf[j]) {
						return s.failf(j, "invalid Unicode escape %q", s.buf[j])
					}
				}
				if i+6 > len(s.buf) {
					return s.incomplete("incomplete Unicode escape")
				}
				i += 6
			default:
				return s.failf(i+1, "invalid %q after escape", esc)
			}

		case ch < ' ':
			return s.failf(i, "unescaped control %q", ch)

		case ch < utf8.RuneSelf:
			i++

		default:
			if !utf8.FullRune(s.buf[i:]) {
				return s.incomplete("incomplete UTF-8 sequence")
			}
			r, n := utf8.DecodeRune(s.buf[i:])
			if r == utf8.RuneError && n == 1 {
				return s.failf(i, "invalid UTF-8 byte %#x", s.buf[i])
			}
			i += n
		}
	}
	return s.incomplete("unterminated string")
}

func (s *Scanner) scanNumber() bool {
	i := s.pos
	if s.buf[i] == '-' {
		i++
	}

	// Integer digits. A leading sign requires at least one.
	d := i
	for i < len(s.buf) && isDigit(s.buf[i]) {
		i++
	}
	if i == d {
		if i >= len(s.buf) {
			return s.incomplete("incomplete number")
		}
		return s.failf(i, "got %q, want digit", s.buf[i])
	}

	// Extra leading zeroes are disallowed by the JSON spec, and a prefix
	// carrying them can never become valid: 0.12 is OK, 01.2 is not.
	if hasExtraLeadingZeroes(s.buf[d:i]) {
		return s.failf(d, "extra leading zeroes")
	}

	tok := Integer

	// If a decimal point follows, consume a fractional part.
	if i < len(s.buf) && s.buf[i] == '.' {
		i++
		f := i
		for i < len(s.buf) && isDigit(s.buf[i]) {
			i++
		}
		if i == f {
			if i >= len(s.buf) {
				return s.incomplete("incomplete number")
			}
			return s.failf(i, "no digits after decimal point")
		}
		tok = Number
	}

	// If an exponent follows, consume it.
	if i < len(s.buf) && (s.buf[i] == 'e' || s.buf[i] == 'E') {
		i++
		if i < len(s.buf) && (s.buf[i] == '-' || s.buf[i] == '+') {
			i++
		}
		e := i
		for i < len(s.buf) && isDigit(s.buf[i]) {
			i++
		}
		if i == e {
			if i >= len(s.buf) {
				return s.incomplete("incomplete number")
			}
			return s.failf(i, "missing exponent digits")
		}
		tok = Number
	}

	// At the end of the buffer the number may still grow more digits, a
	// fraction, or an exponent; only end of input terminates it there.
	if i >= len(s.buf) && !s.final {
		return s.incomplete("incomplete number")
	}
	s.tok, s.pos = tok, i
	return true
}

var (
	memTrue  = mem.S("true")
	memFalse = mem.S("false")
	memNull  = mem.S("null")
)

func (s *Scanner) scanName() bool {
	i := s.pos
	for i < len(s.buf) && s.buf[i] >= 'a' && s.buf[i] <= 'z' {
		i++
	}
	if i >= len(s.buf) && !s.final {
		// The word touches the end of the buffer; if it can still extend
		// into a constant, wait for more input before judging it.
		if isConstPrefix(mem.B(s.buf[s.pos:i])) {
			return s.incomplete("incomplete constant")
		}
	}
	switch word := mem.B(s.buf[s.pos:i]); {
	case word.Equal(memTrue):
		s.tok = True
	case word.Equal(memFalse):
		s.tok = False
	case word.Equal(memNull):
		s.tok = Null
	default:
		return s.failf(s.pos, "unknown constant %q", word.StringCopy())
	}
	s.pos = i
	return true
}

// isConstPrefix reports whether word is a proper prefix of one of the JSON
// constants, and so may still complete when more input arrives.
func isConstPrefix(word mem.RO) bool {
	return (mem.HasPrefix(memTrue, word) && word.Len() < memTrue.Len()) ||
		(mem.HasPrefix(memFalse, word) && word.Len() < memFalse.Len()) ||
		(mem.HasPrefix(memNull, word) && word.Len() < memNull.Len())
}

// incomplete stops the scan without error: the remaining bytes may yet form
// a complete token once more input arrives. If the input is final, the
// token can never complete and the condition is a lexical error.
func (s *Scanner) incomplete(label string) bool {
	if s.final {
		return s.failf(len(s.buf), "unexpected end of input: %s", label)
	}
	return false
}

func (s *Scanner) failf(off int, msg string, args ...any) bool {
	s.err = &SyntaxError{Offset: s.base + off, Message: fmt.Sprintf(msg, args...)}
	return false
}

// SyntaxError is the concrete type of lexical errors reported by a Scanner.
type SyntaxError struct {
	Offset  int // absolute byte offset in the input
	Message string
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("at offset %d: %s", e.Offset, e.Message)
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch byte) bool { return ch == '-' || isDigit(ch) }
func isDigit(ch byte) bool    { return '0' <= ch && ch <= '9' }

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// hasExtraLeadingZeroes reports whether the representation of an integer in
// buf has redundant leading zeroes, disallowed by the JSON grammar.
//
// OK: 0, 0.1, -1.0, -0.1 are all OK.
// Bad: -01, 01.2, -01.0, 00.1.
func hasExtraLeadingZeroes(buf []byte) bool {
	return len(buf) > 1 && buf[0] == '0'
}
