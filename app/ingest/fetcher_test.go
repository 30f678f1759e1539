package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"
)

const sampleFeedXML = `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>https://example.com</link>
    <description>Test Description</description>
    <item>
      <title>New Transformer Model Beats Benchmarks</title>
      <link>https://example.com/item1</link>
      <description>A large language model sets new records.</description>
      <guid>item-1</guid>
      <pubDate>Mon, 03 Jul 2023 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Local Bakery Opens Downtown</title>
      <link>https://example.com/item2</link>
      <description>Fresh bread every morning.</description>
      <guid>item-2</guid>
      <pubDate>Mon, 03 Jul 2023 09:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

// mockTransport serves canned responses per URL.
type mockTransport struct {
	responses map[string]mockResponse
	requests  []string
}

type mockResponse struct {
	body       string
	statusCode int
	err        error
}

func (m *mockTransport) Do(req *http.Request) (*http.Response, error) {
	m.requests = append(m.requests, req.URL.String())

	resp, ok := m.responses[req.URL.String()]
	if !ok {
		return nil, fmt.Errorf("no canned response for %s", req.URL)
	}
	if resp.err != nil {
		return nil, resp.err
	}
	return &http.Response{
		StatusCode: resp.statusCode,
		Status:     http.StatusText(resp.statusCode),
		Body:       io.NopCloser(bytes.NewBufferString(resp.body)),
	}, nil
}

func TestFetcherFetch(t *testing.T) {
	tests := []struct {
		name      string
		response  mockResponse
		wantErr   bool
		wantItems int
	}{
		{
			name:      "successful fetch",
			response:  mockResponse{body: sampleFeedXML, statusCode: 200},
			wantItems: 2,
		},
		{
			name:     "http error status",
			response: mockResponse{body: "not found", statusCode: 404},
			wantErr:  true,
		},
		{
			name:     "transport error",
			response: mockResponse{err: fmt.Errorf("connection refused")},
			wantErr:  true,
		},
		{
			name:     "malformed feed",
			response: mockResponse{body: "this is not xml", statusCode: 200},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := &mockTransport{
				responses: map[string]mockResponse{"https://example.com/feed": tt.response},
			}
			fetcher := NewFetcher(transport, "Test Agent", 5*time.Second)

			parsed, err := fetcher.Fetch(context.Background(), "https://example.com/feed")

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if len(parsed.Items) != tt.wantItems {
				t.Errorf("Expected %d items, got %d", tt.wantItems, len(parsed.Items))
			}
		})
	}
}

func TestFetcherSetsUserAgent(t *testing.T) {
	var gotUserAgent string
	transport := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		gotUserAgent = req.Header.Get("User-Agent")
		return &http.Response{
			StatusCode: 200,
			Body:       io.NopCloser(bytes.NewBufferString(sampleFeedXML)),
		}, nil
	})

	fetcher := NewFetcher(transport, "AI Pulse Test/1.0", 5*time.Second)
	if _, err := fetcher.Fetch(context.Background(), "https://example.com/feed"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if gotUserAgent != "AI Pulse Test/1.0" {
		t.Errorf("Expected user agent set on request, got %q", gotUserAgent)
	}
}

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}
