// Copyright (C) 2026 The jevent Authors. All Rights Reserved.

package listev

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jevent/jevent"
)

// state records what structural position the next token should be
// interpreted as. Transitions are driven solely by the token type and, for
// property names, the name's position in the schema.
type state byte

const (
	idle        state = iota // outside any recognized position
	wantName                 // next string is the list name
	wantItems                // next "[" opens the item collection
	inItems                  // between item objects
	inItem                   // inside an item, no field pending
	wantAge                  // next number is the item's recommended age
	wantDesc                 // next string is the item's description
)

// fieldState maps a property name to the state that consumes its value.
// Names outside the map reset the machine to idle, which silently skips
// the value that follows.
var fieldState = map[string]state{
	"listName":       wantName,
	"items":          wantItems,
	"recommendedAge": wantAge,
	"description":    wantDesc,
}

// itemAcc accumulates the fields of the item currently being assembled.
type itemAcc struct {
	age     int
	desc    string
	hasAge  bool
	hasDesc bool
}

// missing returns the names of required fields that were never set.
func (a *itemAcc) missing() []string {
	var m []string
	if !a.hasAge {
		m = append(m, "recommendedAge")
	}
	if !a.hasDesc {
		m = append(m, "description")
	}
	return m
}

// A Machine maps the token sequence of an item-list document onto domain
// events. Feed it every token in arrival order via Visit; it keeps a single
// enumerated state and one item accumulator, and needs no knowledge of how
// the input was split into buffers.
//
// A Machine is not safe for concurrent use.
type Machine struct {
	state    state
	item     itemAcc
	index    int    // position of the item being assembled
	key      string // most recent string, candidate property name
	complete bool
}

// NewMachine returns a Machine ready to consume a document from its first
// token.
func NewMachine() *Machine { return new(Machine) }

// Complete reports whether the items array has closed. Once complete, the
// machine ignores all further tokens.
func (m *Machine) Complete() bool { return m.complete }

// Visit consumes one token and returns the events it completed, in order.
// The text slice is only read during the call.
//
// Closing an item object before both of its required fields have been set
// is a data contract violation, reported as an *IncompleteItemError.
func (m *Machine) Visit(tok jevent.Token, text []byte) ([]Event, error) {
	if m.complete {
		return nil, nil
	}
	switch tok {
	case jevent.String:
		return m.visitString(text)
	case jevent.Integer, jevent.Number:
		return nil, m.visitNumber(tok, text)
	case jevent.Colon:
		// The preceding string was a property name, not a value. Unknown
		// names park the machine at idle until the next recognized name.
		m.state = fieldState[m.key]
		m.key = ""
	case jevent.LSquare:
		if m.state == wantItems {
			m.state = inItems
		}
	case jevent.LBrace:
		if m.state == inItems {
			m.item = itemAcc{}
			m.state = inItem
		}
	case jevent.RBrace:
		if m.state == inItem {
			return m.closeItem()
		}
	case jevent.RSquare:
		if m.state == inItems {
			m.complete = true
			m.state = idle
		}
	}
	return nil, nil
}

func (m *Machine) visitString(text []byte) ([]Event, error) {
	switch m.state {
	case wantName:
		name, err := jevent.DecodeString(text)
		if err != nil {
			return nil, fmt.Errorf("decode listName: %w", err)
		}
		m.state = idle
		return []Event{ListCreated{Name: name}}, nil
	case wantDesc:
		desc, err := jevent.DecodeString(text)
		if err != nil {
			return nil, fmt.Errorf("decode description: %w", err)
		}
		m.item.desc, m.item.hasDesc = desc, true
		m.state = inItem
	default:
		// Remember the string: if a colon follows, it was a property name.
		// The copy matters, the token text does not survive the cycle.
		key, err := jevent.DecodeString(text)
		if err != nil {
			return nil, fmt.Errorf("decode member name: %w", err)
		}
		m.key = key
	}
	return nil, nil
}

func (m *Machine) visitNumber(tok jevent.Token, text []byte) error {
	if m.state != wantAge {
		return nil
	}
	age, err := parseAge(tok, text)
	if err != nil {
		return err
	}
	m.item.age, m.item.hasAge = age, true
	m.state = inItem
	return nil
}

func (m *Machine) closeItem() ([]Event, error) {
	if missing := m.item.missing(); len(missing) != 0 {
		return nil, &IncompleteItemError{Index: m.index, Missing: missing}
	}
	ev := ItemAdded{
		Index:          m.index,
		RecommendedAge: m.item.age,
		Description:    m.item.desc,
	}
	m.index++
	m.item = itemAcc{}
	m.state = inItems
	return []Event{ev}, nil
}

// parseAge converts a number token to an int. Generative sources are loose
// about numeric formatting, so a fractional value is accepted and truncated
// toward zero.
func parseAge(tok jevent.Token, text []byte) (int, error) {
	if tok == jevent.Integer {
		v, err := strconv.Atoi(string(text))
		if err != nil {
			return 0, fmt.Errorf("parse recommendedAge: %w", err)
		}
		return v, nil
	}
	f, err := strconv.ParseFloat(string(text), 64)
	if err != nil {
		return 0, fmt.Errorf("parse recommendedAge: %w", err)
	}
	return int(f), nil
}

// IncompleteItemError reports that an item object closed before all of its
// required fields were seen. No partial event is constructed for such an
// item; fabricating default values would corrupt the output contract.
type IncompleteItemError struct {
	Index   int      // zero-based position of the offending item
	Missing []string // names of the fields that never arrived
}

// Error satisfies the error interface.
func (e *IncompleteItemError) Error() string {
	return fmt.Sprintf("item %d closed with missing fields: %s",
		e.Index, strings.Join(e.Missing, ", "))
}
