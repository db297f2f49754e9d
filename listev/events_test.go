// Copyright (C) 2026 The jevent Authors. All Rights Reserved.

package listev_test

import (
	"encoding/json"
	"testing"

	"github.com/jevent/jevent/listev"
)

func TestEventMarshal(t *testing.T) {
	tests := []struct {
		event listev.Event
		want  string
	}{
		{listev.ListCreated{Name: "Bucket List"},
			`{"event":"listCreated","name":"Bucket List"}`},
		{listev.ItemAdded{Index: 0, RecommendedAge: 30, Description: "Skydiving"},
			`{"event":"itemAdded","index":0,"recommendedAge":30,"description":"Skydiving"}`},
		{listev.ItemAdded{Index: 2, RecommendedAge: 50, Description: `say "cheese"`},
			`{"event":"itemAdded","index":2,"recommendedAge":50,"description":"say \"cheese\""}`},
	}
	for _, test := range tests {
		data, err := json.Marshal(test.event)
		if err != nil {
			t.Errorf("Marshal %+v: unexpected error: %v", test.event, err)
			continue
		}
		if got := string(data); got != test.want {
			t.Errorf("Marshal %+v:\ngot  %s\nwant %s", test.event, got, test.want)
		}
	}
}
