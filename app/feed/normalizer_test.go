package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

var testSource = Source{Name: "Test Feed", URL: "https://example.com/feed", Category: "Testing"}

func TestNormalizeDefaults(t *testing.T) {
	now := time.Now()
	item := &gofeed.Item{
		Title: "Machine learning update",
		Link:  "https://example.com/post",
	}

	article := Normalize(testSource, item, now)

	if article.Author != "Unknown" {
		t.Errorf("Expected author 'Unknown', got %q", article.Author)
	}
	if !article.PublishedAt.Equal(now) {
		t.Errorf("Expected publish date to default to ingestion time, got %v", article.PublishedAt)
	}
	if article.Source != "Test Feed" {
		t.Errorf("Expected source 'Test Feed', got %q", article.Source)
	}
	if article.ImageURL == "" {
		t.Error("Image URL must never be empty")
	}
	if article.ReadTime < 1 {
		t.Errorf("Read time must be at least 1, got %d", article.ReadTime)
	}
	if article.IsFavorite {
		t.Error("New articles must not be favorites")
	}
	if len(article.Tags) != 0 {
		t.Errorf("Expected no tags, got %v", article.Tags)
	}
}

func TestNormalizeAuthorChain(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		item *gofeed.Item
		want string
	}{
		{
			name: "dc creator preferred",
			item: &gofeed.Item{
				DublinCoreExt: &ext.DublinCoreExtension{Creator: []string{"Jane Writer"}},
				Authors:       []*gofeed.Person{{Name: "Feed Author"}},
			},
			want: "Jane Writer",
		},
		{
			name: "author name fallback",
			item: &gofeed.Item{
				Authors: []*gofeed.Person{{Name: "Feed Author"}},
			},
			want: "Feed Author",
		},
		{
			name: "author email when name empty",
			item: &gofeed.Item{
				Authors: []*gofeed.Person{{Email: "writer@example.com"}},
			},
			want: "writer@example.com",
		},
		{
			name: "unknown when nothing set",
			item: &gofeed.Item{},
			want: "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			article := Normalize(testSource, tt.item, now)
			if article.Author != tt.want {
				t.Errorf("Expected author %q, got %q", tt.want, article.Author)
			}
		})
	}
}

func TestNormalizeExcerptTruncation(t *testing.T) {
	now := time.Now()
	body := strings.Repeat("word ", 100) // 500 characters
	item := &gofeed.Item{
		Title:       "AI research report",
		Description: body,
	}

	article := Normalize(testSource, item, now)

	if !strings.HasSuffix(article.Excerpt, "...") {
		t.Errorf("Expected truncated excerpt to end with ellipsis, got %q", article.Excerpt)
	}
	if len(article.Excerpt) > excerptMaxLength+3 {
		t.Errorf("Expected excerpt length <= %d, got %d", excerptMaxLength+3, len(article.Excerpt))
	}
}

func TestNormalizeExcerptStripsHTML(t *testing.T) {
	now := time.Now()
	item := &gofeed.Item{
		Title:       "AI research report",
		Description: "<p>Short <b>summary</b> text.</p>",
	}

	article := Normalize(testSource, item, now)

	if article.Excerpt != "Short summary text." {
		t.Errorf("Expected clean excerpt, got %q", article.Excerpt)
	}
}

func TestNormalizeContentPrefersEncoded(t *testing.T) {
	now := time.Now()
	item := &gofeed.Item{
		Title:       "AI research report",
		Description: "Short summary",
		Content:     "<p>Full encoded body</p>",
	}

	article := Normalize(testSource, item, now)

	if article.Content != "<p>Full encoded body</p>" {
		t.Errorf("Expected full content preferred, got %q", article.Content)
	}
}

func TestNormalizeReadTimeFloor(t *testing.T) {
	now := time.Now()
	item := &gofeed.Item{Title: "AI note"}

	article := Normalize(testSource, item, now)

	if article.ReadTime != 1 {
		t.Errorf("Expected read time floor of 1 for empty content, got %d", article.ReadTime)
	}
}

func TestEstimateReadTime(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 1},
		{"tiny", "just a few words here", 1},
		{"four hundred words", strings.Repeat("word ", 400), 2},
		{"html stripped", "<p>" + strings.Repeat("word ", 400) + "</p>", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateReadTime(tt.content); got != tt.want {
				t.Errorf("EstimateReadTime() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNormalizeImageFallbackChain(t *testing.T) {
	now := time.Now()

	mediaExt := func(name, url string) ext.Extensions {
		return ext.Extensions{
			"media": {
				name: []ext.Extension{{Name: name, Attrs: map[string]string{"url": url}}},
			},
		}
	}

	tests := []struct {
		name string
		item *gofeed.Item
		want string
	}{
		{
			name: "media content first",
			item: &gofeed.Item{
				Title:      "AI story",
				Extensions: mediaExt("content", "https://img.example.com/media.jpg"),
				Enclosures: []*gofeed.Enclosure{{URL: "https://img.example.com/enc.jpg", Type: "image/jpeg"}},
			},
			want: "https://img.example.com/media.jpg",
		},
		{
			name: "media thumbnail second",
			item: &gofeed.Item{
				Title:      "AI story",
				Extensions: mediaExt("thumbnail", "https://img.example.com/thumb.jpg"),
			},
			want: "https://img.example.com/thumb.jpg",
		},
		{
			name: "image enclosure third",
			item: &gofeed.Item{
				Title:      "AI story",
				Enclosures: []*gofeed.Enclosure{{URL: "https://img.example.com/enc.jpg", Type: "image/png"}},
			},
			want: "https://img.example.com/enc.jpg",
		},
		{
			name: "non-image enclosure skipped",
			item: &gofeed.Item{
				Title:      "AI story about transformers",
				Enclosures: []*gofeed.Enclosure{{URL: "https://example.com/audio.mp3", Type: "audio/mpeg"}},
			},
			want: fallbackImages[SubtopicLLMs],
		},
		{
			name: "img tag in content fourth",
			item: &gofeed.Item{
				Title:   "AI story",
				Content: `<p>Intro</p><img alt="x" src="https://img.example.com/inline.jpg"><p>More</p>`,
			},
			want: "https://img.example.com/inline.jpg",
		},
		{
			name: "subtopic stock image last",
			item: &gofeed.Item{
				Title: "Warehouse robots get smarter",
			},
			want: fallbackImages[SubtopicRobotics],
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			article := Normalize(testSource, tt.item, now)
			if article.ImageURL != tt.want {
				t.Errorf("Expected image %q, got %q", tt.want, article.ImageURL)
			}
		})
	}
}

func TestNormalizeTagsCapped(t *testing.T) {
	now := time.Now()
	item := &gofeed.Item{
		Title:      "AI story",
		Categories: []string{"a", "b", "c", "d", "e", "f", "g"},
	}

	article := Normalize(testSource, item, now)

	if len(article.Tags) != maxTags {
		t.Errorf("Expected %d tags, got %d", maxTags, len(article.Tags))
	}
	if article.Tags[0] != "a" || article.Tags[4] != "e" {
		t.Errorf("Expected first five categories kept in order, got %v", article.Tags)
	}
}

func TestArticleIDDeterministic(t *testing.T) {
	now := time.Now()
	item := &gofeed.Item{
		Title: "AI story",
		GUID:  "https://example.com/posts/42",
		Link:  "https://example.com/posts/42",
	}

	first := Normalize(testSource, item, now)
	second := Normalize(testSource, item, now.Add(time.Hour))

	if first.ID != second.ID {
		t.Errorf("Expected stable id across fetches, got %q and %q", first.ID, second.ID)
	}
}

func TestArticleIDSanitized(t *testing.T) {
	now := time.Now()
	item := &gofeed.Item{
		Title: "AI story",
		GUID:  "https://example.com/posts?id=42&lang=en",
	}

	article := Normalize(testSource, item, now)

	for _, r := range article.ID {
		valid := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-'
		if !valid {
			t.Fatalf("id %q contains invalid character %q", article.ID, r)
		}
	}
	if len(article.ID) > maxIDLength {
		t.Errorf("Expected id length <= %d, got %d", maxIDLength, len(article.ID))
	}
	if !strings.HasPrefix(article.ID, "Test-Feed-") {
		t.Errorf("Expected id namespaced by feed name, got %q", article.ID)
	}
}

func TestNormalizePublishedDateParsing(t *testing.T) {
	now := time.Now()
	published := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	updated := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	withPublished := &gofeed.Item{Title: "AI story", PublishedParsed: &published, UpdatedParsed: &updated}
	article := Normalize(testSource, withPublished, now)
	if !article.PublishedAt.Equal(published) {
		t.Errorf("Expected published date preferred, got %v", article.PublishedAt)
	}

	withUpdated := &gofeed.Item{Title: "AI story", UpdatedParsed: &updated}
	article = Normalize(testSource, withUpdated, now)
	if !article.PublishedAt.Equal(updated) {
		t.Errorf("Expected updated date fallback, got %v", article.PublishedAt)
	}
}
