package feed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultSources is the built-in feed list, used when no feeds file is
// configured.
var defaultSources = []Source{
	{Name: "MIT Technology Review", URL: "https://www.technologyreview.com/feed/", Category: "Academic"},
	{Name: "Wired AI", URL: "https://www.wired.com/feed/tag/ai/rss", Category: "Tech Media"},
	{Name: "TechCrunch AI", URL: "https://techcrunch.com/category/artificial-intelligence/feed/", Category: "Startup News"},
	{Name: "VentureBeat AI", URL: "https://venturebeat.com/ai/feed/", Category: "Industry News"},
	{Name: "Microsoft Research", URL: "https://www.microsoft.com/en-us/research/feed/", Category: "Big Tech Research"},
	{Name: "Microsoft AI Blog", URL: "https://blogs.microsoft.com/ai/feed/", Category: "Big Tech Research"},
	{Name: "Google AI Blog", URL: "https://ai.googleblog.com/feeds/posts/default", Category: "Big Tech Research"},
	{Name: "Google Research", URL: "https://research.google/feeds/publications.xml", Category: "Big Tech Research"},
	{Name: "Anthropic", URL: "https://www.anthropic.com/news/rss.xml", Category: "AI Labs"},
	{Name: "OpenAI Blog", URL: "https://openai.com/blog/rss.xml", Category: "AI Labs"},
}

// LoadSources returns the feed source list. When path is empty the built-in
// list is returned; otherwise the YAML file at path fully replaces it.
func LoadSources(path string) ([]Source, error) {
	if path == "" {
		sources := make([]Source, len(defaultSources))
		copy(sources, defaultSources)
		return sources, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feeds file: %w", err)
	}

	var doc struct {
		Feeds []Source `yaml:"feeds"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse feeds file: %w", err)
	}

	if len(doc.Feeds) == 0 {
		return nil, fmt.Errorf("feeds file %s contains no feeds", path)
	}

	seen := make(map[string]bool, len(doc.Feeds))
	for i, s := range doc.Feeds {
		if s.Name == "" {
			return nil, fmt.Errorf("feed at index %d has no name", i)
		}
		if s.URL == "" {
			return nil, fmt.Errorf("feed %q has no URL", s.Name)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("duplicate feed name %q", s.Name)
		}
		seen[s.Name] = true
	}

	return doc.Feeds, nil
}
