package feed

import (
	"cmp"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

const (
	excerptMaxLength = 200
	maxTags          = 5
	maxIDLength      = 100
	wordsPerMinute   = 200
)

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	imgSrcRe     = regexp.MustCompile(`(?i)<img[^>]+src="([^">]+)"`)
	idSanitizeRe = regexp.MustCompile(`[^a-zA-Z0-9-]`)
)

// fallbackImages provides a stock image per subtopic for items whose feed
// entry carries no usable image.
var fallbackImages = map[Subtopic]string{
	SubtopicAIAgents:          "https://images.pexels.com/photos/8439093/pexels-photo-8439093.jpeg?auto=compress&cs=tinysrgb&w=800",
	SubtopicLLMs:              "https://images.pexels.com/photos/8386440/pexels-photo-8386440.jpeg?auto=compress&cs=tinysrgb&w=800",
	SubtopicRobotics:          "https://images.pexels.com/photos/8438918/pexels-photo-8438918.jpeg?auto=compress&cs=tinysrgb&w=800",
	SubtopicComputerVision:    "https://images.pexels.com/photos/2599244/pexels-photo-2599244.jpeg?auto=compress&cs=tinysrgb&w=800",
	SubtopicNLP:               "https://images.pexels.com/photos/8386440/pexels-photo-8386440.jpeg?auto=compress&cs=tinysrgb&w=800",
	SubtopicMachineLearning:   "https://images.pexels.com/photos/8439093/pexels-photo-8439093.jpeg?auto=compress&cs=tinysrgb&w=800",
	SubtopicEthics:            "https://images.pexels.com/photos/8438918/pexels-photo-8438918.jpeg?auto=compress&cs=tinysrgb&w=800",
	SubtopicAutonomousSystems: "https://images.pexels.com/photos/2599244/pexels-photo-2599244.jpeg?auto=compress&cs=tinysrgb&w=800",
	SubtopicGeneralAI:         "https://images.pexels.com/photos/8439093/pexels-photo-8439093.jpeg?auto=compress&cs=tinysrgb&w=800",
}

// Normalize converts a parsed feed item into the canonical Article record.
// Missing fields fall back to defaults; malformed items are never dropped
// here, only at the relevance filter.
func Normalize(source Source, item *gofeed.Item, now time.Time) Article {
	title := item.Title
	body := cmp.Or(item.Description, item.Content)
	subtopic := ClassifySubtopic(title, body)
	content := cmp.Or(item.Content, body)

	return Article{
		ID:          articleID(source.Name, item, now),
		Title:       title,
		Excerpt:     cleanContent(body, excerptMaxLength),
		Content:     content,
		Author:      extractAuthor(item),
		Source:      source.Name,
		PublishedAt: publishedAt(item, now),
		URL:         item.Link,
		ImageURL:    extractImageURL(item, subtopic),
		Tags:        limitTags(item.Categories),
		AISubtopic:  subtopic,
		ReadTime:    EstimateReadTime(content),
		IsFavorite:  false,
	}
}

// articleID derives a deterministic id from the feed name and item identity.
// Uniqueness is best-effort: the feed name namespaces the id, and the guid,
// link and title fallbacks can still collide within a feed.
func articleID(feedName string, item *gofeed.Item, now time.Time) string {
	base := item.GUID
	if base == "" {
		base = item.Link
	}
	if base == "" {
		base = item.Title
	}
	if base == "" {
		base = strconv.FormatInt(now.UnixMilli(), 10)
	}

	id := idSanitizeRe.ReplaceAllString(feedName+"-"+base, "-")
	if len(id) > maxIDLength {
		id = id[:maxIDLength]
	}
	return id
}

// cleanContent strips HTML tags, trims whitespace, and truncates to maxLength
// characters with a trailing ellipsis marker.
func cleanContent(content string, maxLength int) string {
	cleaned := strings.TrimSpace(htmlTagRe.ReplaceAllString(content, ""))

	runes := []rune(cleaned)
	if len(runes) > maxLength {
		return strings.TrimSpace(string(runes[:maxLength])) + "..."
	}
	return cleaned
}

func extractAuthor(item *gofeed.Item) string {
	if item.DublinCoreExt != nil {
		for _, creator := range item.DublinCoreExt.Creator {
			if name := strings.TrimSpace(creator); name != "" {
				return name
			}
		}
	}

	for _, author := range item.Authors {
		if author == nil {
			continue
		}
		if name := strings.TrimSpace(author.Name); name != "" {
			return name
		}
		if email := strings.TrimSpace(author.Email); email != "" {
			return email
		}
	}

	return "Unknown"
}

func publishedAt(item *gofeed.Item, now time.Time) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	return now
}

// extractImageURL resolves an image through a fixed fallback chain:
// media:content, media:thumbnail, an image enclosure, the first <img> in the
// item body, then the subtopic stock image. Never returns an empty string.
func extractImageURL(item *gofeed.Item, subtopic Subtopic) string {
	if url := mediaExtensionURL(item, "content"); url != "" {
		return url
	}
	if url := mediaExtensionURL(item, "thumbnail"); url != "" {
		return url
	}

	for _, enclosure := range item.Enclosures {
		if enclosure == nil {
			continue
		}
		if enclosure.URL != "" && strings.HasPrefix(enclosure.Type, "image/") {
			return enclosure.URL
		}
	}

	for _, html := range []string{item.Content, item.Description} {
		if match := imgSrcRe.FindStringSubmatch(html); match != nil {
			return match[1]
		}
	}

	if url, ok := fallbackImages[subtopic]; ok {
		return url
	}
	return fallbackImages[SubtopicGeneralAI]
}

func mediaExtensionURL(item *gofeed.Item, name string) string {
	media, ok := item.Extensions["media"]
	if !ok {
		return ""
	}
	for _, extension := range media[name] {
		if url := extension.Attrs["url"]; url != "" {
			return url
		}
	}
	return ""
}

func limitTags(categories []string) []string {
	if len(categories) == 0 {
		return []string{}
	}
	if len(categories) > maxTags {
		categories = categories[:maxTags]
	}
	tags := make([]string, len(categories))
	copy(tags, categories)
	return tags
}

// EstimateReadTime estimates reading minutes at 200 words per minute,
// rounded, with a floor of one minute.
func EstimateReadTime(content string) int {
	text := htmlTagRe.ReplaceAllString(content, "")
	words := len(strings.Fields(text))

	minutes := int(math.Round(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}
