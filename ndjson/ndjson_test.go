// Copyright (C) 2026 The jevent Authors. All Rights Reserved.

package ndjson_test

import (
	"bufio"
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jevent/jevent/feed"
	"github.com/jevent/jevent/listev"
	"github.com/jevent/jevent/ndjson"
)

const sampleDoc = `{"listName":"Bucket List","items":[` +
	`{"recommendedAge":30,"description":"Skydiving"},` +
	`{"recommendedAge":50,"description":"Visit all seven continents"}]}`

var sampleLines = []string{
	`{"event":"listCreated","name":"Bucket List"}`,
	`{"event":"itemAdded","index":0,"recommendedAge":30,"description":"Skydiving"}`,
	`{"event":"itemAdded","index":1,"recommendedAge":50,"description":"Visit all seven continents"}`,
}

// flushWriter records writes and counts Flush calls, standing in for an
// http.ResponseWriter during Writer tests.
type flushWriter struct {
	bytes.Buffer
	flushes int
}

func (w *flushWriter) Flush() { w.flushes++ }

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := ndjson.NewWriter[listev.Event](&buf)

	require.NoError(t, w.Emit(listev.ListCreated{Name: "Bucket List"}))
	require.NoError(t, w.Emit(listev.ItemAdded{
		Index: 0, RecommendedAge: 30, Description: "Skydiving",
	}))

	want := sampleLines[0] + "\n" + sampleLines[1] + "\n"
	assert.Equal(t, want, buf.String())
	assert.Equal(t, 2, w.Count())
}

func TestWriterFlush(t *testing.T) {
	fw := new(flushWriter)
	w := ndjson.NewWriter[listev.Event](fw)

	require.NoError(t, w.Emit(listev.ListCreated{Name: "A"}))
	assert.Equal(t, 1, fw.flushes, "each record should be flushed as written")
	require.NoError(t, w.Emit(listev.ItemAdded{Index: 0}))
	assert.Equal(t, 2, fw.flushes)
}

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestWriterError(t *testing.T) {
	w := ndjson.NewWriter[listev.Event](errWriter{})
	err := w.Emit(listev.ListCreated{Name: "A"})
	require.ErrorIs(t, err, io.ErrClosedPipe)
	assert.Equal(t, 0, w.Count())
}

func newHandler(doc string, fragSize int, opts *feed.Options) *ndjson.Handler[listev.Event] {
	return &ndjson.Handler[listev.Event]{
		NewSource: func(*http.Request) feed.Source {
			var frags []string
			for len(doc) > fragSize {
				frags = append(frags, doc[:fragSize])
				doc = doc[fragSize:]
			}
			return feed.Slice(append(frags, doc)...)
		},
		NewVisitor: func() feed.Visitor[listev.Event] { return listev.NewMachine() },
		Options:    opts,
		Logger:     slog.New(slog.DiscardHandler),
	}
}

func TestHandler(t *testing.T) {
	srv := httptest.NewServer(newHandler(sampleDoc, 7, nil))
	defer srv.Close()

	rsp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer rsp.Body.Close()

	assert.Equal(t, http.StatusOK, rsp.StatusCode)
	assert.Equal(t, ndjson.ContentType, rsp.Header.Get("Content-Type"))

	body, err := io.ReadAll(rsp.Body)
	require.NoError(t, err)
	assert.Equal(t, sampleLines, strings.Split(strings.TrimRight(string(body), "\n"), "\n"))
}

// TestHandlerAbort streams a source that dries up after the first item, so
// the stream fails after lines were already written. The handler must leave
// those lines intact and sever the connection instead of ending the body
// cleanly.
func TestHandlerAbort(t *testing.T) {
	cut := sampleDoc[:strings.Index(sampleDoc, `},`)+2]
	h := newHandler(cut, 4, &feed.Options{MaxFragments: 1})
	srv := httptest.NewServer(h)
	defer srv.Close()

	rsp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer rsp.Body.Close()
	require.Equal(t, http.StatusOK, rsp.StatusCode)

	var lines []string
	sc := bufio.NewScanner(rsp.Body)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	assert.Error(t, sc.Err(), "the truncated stream should not end cleanly")
	assert.Equal(t, sampleLines[:2], lines)
}

// TestHandlerError fails before anything is written, so the handler can
// still report a proper error status.
func TestHandlerError(t *testing.T) {
	srv := httptest.NewServer(newHandler(`oops`, 4, nil))
	defer srv.Close()

	rsp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer rsp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, rsp.StatusCode)
}
