// Copyright (C) 2026 The jevent Authors. All Rights Reserved.

// Package listev extracts typed domain events from a streamed item-list
// document.
//
// The recognized document shape is a root object with a "listName" string
// and an "items" array of objects, each carrying a "recommendedAge" number
// and a "description" string:
//
//	{"listName": "Bucket List",
//	 "items": [{"recommendedAge": 30, "description": "Skydiving"}, ...]}
//
// A Machine consumes the token sequence of such a document as it is lexed
// and emits a ListCreated event when the list name arrives and an ItemAdded
// event as each item object closes, without waiting for the rest of the
// document. Property names outside the schema are ignored.
package listev

import "encoding/json"

// An Event is a finalized, immutable record extracted from the document.
// The concrete types are ListCreated and ItemAdded.
type Event interface {
	// Kind returns the wire discriminator for the event.
	Kind() string
}

// ListCreated reports that the list's name has been seen.
type ListCreated struct {
	Name string
}

// Kind implements part of the Event interface.
func (ListCreated) Kind() string { return "listCreated" }

// MarshalJSON encodes the event as a single JSON object carrying its kind.
func (e ListCreated) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Event string `json:"event"`
		Name  string `json:"name"`
	}{Event: e.Kind(), Name: e.Name})
}

// ItemAdded reports that one complete item has been seen. Index is the
// zero-based position of the item within the items array.
type ItemAdded struct {
	Index          int
	RecommendedAge int
	Description    string
}

// Kind implements part of the Event interface.
func (ItemAdded) Kind() string { return "itemAdded" }

// MarshalJSON encodes the event as a single JSON object carrying its kind.
func (e ItemAdded) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Event          string `json:"event"`
		Index          int    `json:"index"`
		RecommendedAge int    `json:"recommendedAge"`
		Description    string `json:"description"`
	}{Event: e.Kind(), Index: e.Index, RecommendedAge: e.RecommendedAge, Description: e.Description})
}
