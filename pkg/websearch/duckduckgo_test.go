package websearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"care-assistant-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStubSearcher(t *testing.T, handler http.HandlerFunc) *Searcher {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewSearcher(srv.URL, 2, logger.NewNoop())
}

func TestSearchParsesAbstractAndTopics(t *testing.T) {
	s := newStubSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "kidney sodium", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		_, _ = w.Write([]byte(`{
			"AbstractText": "Sodium restriction helps manage kidney disease.",
			"AbstractSource": "Example Encyclopedia",
			"AbstractURL": "https://example.org/sodium",
			"RelatedTopics": [
				{"Text": "Renal diet - dietary guidance for kidney patients", "FirstURL": "https://example.org/renal-diet"},
				{"Text": "", "FirstURL": "https://example.org/skip-me"},
				{"Text": "Hyponatremia - low blood sodium", "FirstURL": "https://example.org/hyponatremia"}
			]
		}`))
	})

	resp := s.Search(context.Background(), "kidney sodium", 3)
	require.True(t, resp.Success)
	require.Len(t, resp.Results, 3)

	assert.Equal(t, "Example Encyclopedia", resp.Results[0].Title)
	assert.Equal(t, "https://example.org/sodium", resp.Results[0].URL)

	// Topic titles are trimmed at the " - " separator; empty topics are
	// skipped.
	assert.Equal(t, "Renal diet", resp.Results[1].Title)
	assert.Equal(t, "Hyponatremia", resp.Results[2].Title)
}

func TestSearchRespectsResultLimit(t *testing.T) {
	s := newStubSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"AbstractText": "First result.",
			"AbstractSource": "Source",
			"AbstractURL": "https://example.org/1",
			"RelatedTopics": [
				{"Text": "Second", "FirstURL": "https://example.org/2"},
				{"Text": "Third", "FirstURL": "https://example.org/3"}
			]
		}`))
	})

	resp := s.Search(context.Background(), "anything", 2)
	require.True(t, resp.Success)
	assert.Len(t, resp.Results, 2)
}

func TestSearchUpstreamFailure(t *testing.T) {
	var calls int
	s := newStubSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	})

	resp := s.Search(context.Background(), "anything", 3)
	assert.False(t, resp.Success)
	assert.Empty(t, resp.Results)
	// One retry after the first failure.
	assert.Equal(t, 2, calls)
}

func TestSearchEmptyAnswer(t *testing.T) {
	s := newStubSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"AbstractText": "", "RelatedTopics": []}`))
	})

	resp := s.Search(context.Background(), "obscure query", 3)
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Results)
}

func TestToDocuments(t *testing.T) {
	resp := &Response{
		Success: true,
		Results: []Result{
			{Title: "Renal diet", URL: "https://example.org/renal-diet", Snippet: "Dietary guidance."},
		},
	}

	docs := resp.ToDocuments()
	require.Len(t, docs, 1)
	assert.Equal(t, "https://example.org/renal-diet", docs[0].Source)
	assert.Equal(t, "Renal diet", docs[0].Locator)
	assert.Equal(t, "Dietary guidance.", docs[0].Content)

	assert.Nil(t, (&Response{Success: false}).ToDocuments())
	assert.Nil(t, (*Response)(nil).ToDocuments())
}
