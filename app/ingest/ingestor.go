package ingest

import (
	"cmp"
	"context"
	"log/slog"
	"sync"
	"time"

	"aipulse/app/cache"
	"aipulse/app/feed"
)

// FeedResult records the outcome of one feed within a cycle: an article count
// on success, a failure reason otherwise.
type FeedResult struct {
	Source       feed.Source
	ArticleCount int
	Err          string
}

// Report summarizes a full ingestion cycle.
type Report struct {
	StartedAt     time.Time
	Duration      time.Duration
	Feeds         []FeedResult
	TotalArticles int
}

// Ingestor runs ingestion cycles. At most one cycle is in flight at a time;
// the mutex serializes triggers from the scheduler and the HTTP handlers.
type Ingestor struct {
	sources   []feed.Source
	fetcher   *Fetcher
	store     *cache.Store
	extractor *Extractor // nil when content extraction is disabled

	mu sync.Mutex
}

func NewIngestor(sources []feed.Source, fetcher *Fetcher, store *cache.Store, extractor *Extractor) *Ingestor {
	return &Ingestor{
		sources:   sources,
		fetcher:   fetcher,
		store:     store,
		extractor: extractor,
	}
}

// RunCycle runs one full ingestion cycle, waiting for any in-flight cycle to
// finish first.
func (i *Ingestor) RunCycle(ctx context.Context) Report {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.runLocked(ctx)
}

// TryRunCycle runs a cycle unless one is already in flight, in which case it
// reports false without running.
func (i *Ingestor) TryRunCycle(ctx context.Context) (Report, bool) {
	if !i.mu.TryLock() {
		return Report{}, false
	}
	defer i.mu.Unlock()
	return i.runLocked(ctx), true
}

// RunCycleIfEmpty runs a cycle only when the snapshot store is still empty
// once any in-flight cycle has completed. Callers with an empty cache block
// here until articles are available.
func (i *Ingestor) RunCycleIfEmpty(ctx context.Context) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if !i.store.IsEmpty() {
		return
	}
	i.runLocked(ctx)
}

func (i *Ingestor) runLocked(ctx context.Context) Report {
	start := time.Now()
	slog.Info("Starting ingestion cycle", "feeds", len(i.sources))

	report := Report{StartedAt: start}
	lists := make([][]feed.Article, 0, len(i.sources))
	failures := 0

	for _, source := range i.sources {
		result := FeedResult{Source: source}

		articles, err := i.processFeed(ctx, source)
		if err != nil {
			// Per-feed failure domain: log and move on, the feed simply
			// contributes zero articles this cycle.
			slog.Error("Feed processing failed", "feed", source.Name, "url", source.URL, "error", err)
			result.Err = err.Error()
			failures++
		} else {
			result.ArticleCount = len(articles)
			lists = append(lists, articles)
			slog.Info("Feed processed", "feed", source.Name, "articles", len(articles))
		}

		report.Feeds = append(report.Feeds, result)
	}

	merged := feed.Merge(lists)
	report.TotalArticles = len(merged)
	report.Duration = time.Since(start)

	if len(merged) == 0 && failures > 0 && !i.store.IsEmpty() {
		// Stale articles beat an empty dashboard when the emptiness comes
		// from feed failures rather than a genuine lack of relevant items.
		slog.Warn("Cycle yielded no articles, keeping previous snapshot", "failed_feeds", failures)
		return report
	}

	i.store.Set(merged)
	slog.Info("Ingestion cycle complete",
		"articles", len(merged),
		"failed_feeds", failures,
		"duration", report.Duration)

	return report
}

func (i *Ingestor) processFeed(ctx context.Context, source feed.Source) ([]feed.Article, error) {
	parsed, err := i.fetcher.Fetch(ctx, source.URL)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	articles := make([]feed.Article, 0, len(parsed.Items))

	for _, item := range parsed.Items {
		if item == nil {
			continue
		}

		body := cmp.Or(item.Description, item.Content)
		if !feed.IsRelevant(item.Title, body) {
			continue
		}

		article := feed.Normalize(source, item, now)
		if i.extractor != nil {
			i.extractor.Enrich(ctx, &article)
		}
		articles = append(articles, article)
	}

	return articles, nil
}
