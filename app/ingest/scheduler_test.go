package ingest

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"aipulse/app/feed"
)

func TestSchedulerRunsStartupCycle(t *testing.T) {
	sources := []feed.Source{
		{Name: "Feed A", URL: "https://a.example.com/feed", Category: "Tech"},
	}
	transport := &mockTransport{responses: map[string]mockResponse{
		"https://a.example.com/feed": {body: sampleFeedXML, statusCode: 200},
	}}

	ingestor, store := newTestIngestor(sources, transport)
	scheduler := NewScheduler(ingestor, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx)
		close(done)
	}()

	deadline := time.After(5 * time.Second)
	for store.IsEmpty() {
		select {
		case <-deadline:
			t.Fatal("Expected a startup cycle to populate the store")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Expected Run to return after context cancellation")
	}
}

func TestSchedulerRunsOnTicks(t *testing.T) {
	sources := []feed.Source{
		{Name: "Feed A", URL: "https://a.example.com/feed", Category: "Tech"},
	}

	var mu sync.Mutex
	fetches := 0
	transport := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		mu.Lock()
		fetches++
		mu.Unlock()
		return &http.Response{
			StatusCode: 200,
			Body:       io.NopCloser(bytes.NewBufferString(sampleFeedXML)),
		}, nil
	})

	ingestor, _ := newTestIngestor(sources, transport)
	scheduler := NewScheduler(ingestor, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx)
		close(done)
	}()

	deadline := time.After(5 * time.Second)
	for {
		mu.Lock()
		n := fetches
		mu.Unlock()
		if n >= 3 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("Expected at least 3 fetches (startup plus ticks), got %d", n)
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Expected Run to return after context cancellation")
	}
}
