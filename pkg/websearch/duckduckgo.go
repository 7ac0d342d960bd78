package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"care-assistant-be/internal/pkg/logger"
	"care-assistant-be/pkg/store"

	retry "github.com/avast/retry-go/v4"
)

// Result is a single external search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Response carries either results or a structured unavailable marker; the
// caller degrades the answer instead of failing the turn.
type Response struct {
	Success bool
	Results []Result
}

// Searcher queries the DuckDuckGo Instant Answer API. The whole call is
// bounded by a hard timeout so a slow upstream cannot stall a turn.
type Searcher struct {
	endpoint string
	client   *http.Client
	logger   logger.ILogger
	timeout  time.Duration
}

func NewSearcher(endpoint string, timeoutSecs int, log logger.ILogger) *Searcher {
	if endpoint == "" {
		endpoint = "https://api.duckduckgo.com/"
	}
	if timeoutSecs <= 0 {
		timeoutSecs = 5
	}
	timeout := time.Duration(timeoutSecs) * time.Second
	return &Searcher{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   log,
		timeout:  timeout,
	}
}

// Search runs the query with one retry on transient failure. It never
// returns an error for upstream trouble; an unavailable Response is the
// degraded outcome.
func (s *Searcher) Search(ctx context.Context, query string, numResults int) *Response {
	if numResults <= 0 {
		numResults = 3
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var results []Result
	err := retry.Do(
		func() error {
			var err error
			results, err = s.searchOnce(ctx, query, numResults)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(2),
		retry.Delay(200*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		s.logger.Warn("websearch", "External search unavailable", map[string]interface{}{
			"query": query,
			"error": err.Error(),
		})
		return &Response{Success: false}
	}

	return &Response{Success: true, Results: results}
}

func (s *Searcher) searchOnce(ctx context.Context, query string, numResults int) ([]Result, error) {
	u, err := url.Parse(s.endpoint)
	if err != nil {
		return nil, err
	}

	q := u.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("no_html", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: duckduckgo api returned status %d", store.ErrExternalService, resp.StatusCode)
	}

	var ddgResp struct {
		AbstractText   string `json:"AbstractText"`
		AbstractSource string `json:"AbstractSource"`
		AbstractURL    string `json:"AbstractURL"`
		RelatedTopics  []struct {
			Text     string `json:"Text"`
			FirstURL string `json:"FirstURL"`
		} `json:"RelatedTopics"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&ddgResp); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrExternalService, err)
	}

	var results []Result
	if ddgResp.AbstractText != "" {
		results = append(results, Result{
			Title:   ddgResp.AbstractSource,
			URL:     ddgResp.AbstractURL,
			Snippet: ddgResp.AbstractText,
		})
	}
	for _, topic := range ddgResp.RelatedTopics {
		if len(results) >= numResults {
			break
		}
		if topic.Text == "" {
			continue
		}
		title := topic.Text
		if idx := strings.Index(title, " - "); idx > 0 {
			title = title[:idx]
		}
		results = append(results, Result{
			Title:   title,
			URL:     topic.FirstURL,
			Snippet: topic.Text,
		})
	}

	return results, nil
}

// ToDocuments maps search hits into the generation context shape.
func (r *Response) ToDocuments() []store.Document {
	if r == nil || !r.Success {
		return nil
	}
	docs := make([]store.Document, 0, len(r.Results))
	for _, res := range r.Results {
		docs = append(docs, store.Document{
			ID:      res.URL,
			Source:  res.URL,
			Locator: res.Title,
			Content: res.Snippet,
		})
	}
	return docs
}
