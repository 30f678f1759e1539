package feed

import (
	"strings"
)

// relevanceKeywords is a deliberately permissive filter vocabulary: any single
// match makes an item relevant (high recall, low precision).
var relevanceKeywords = []string{
	"artificial intelligence", "ai", "machine learning", "ml", "deep learning",
	"neural network", "autonomous", "agent", "agents", "llm", "gpt",
	"transformer", "robotics", "computer vision", "nlp", "natural language",
	"generative ai", "openai", "anthropic", "google ai", "microsoft ai",
	"autonomous systems", "agentic", "multimodal", "chatbot", "automation",
	"cognitive", "reinforcement learning", "supervised learning", "unsupervised learning",
	"algorithm", "data science", "predictive", "classification", "regression",
	"claude", "gemini", "copilot", "bard", "palm", "bert", "research",
}

// subtopicTable maps subtopics to their keyword sets. Declaration order is the
// sole tie-break: the first subtopic with any match wins.
var subtopicTable = []struct {
	Subtopic Subtopic
	Keywords []string
}{
	{SubtopicAIAgents, []string{"agent", "agents", "agentic", "autonomous agent", "multi-agent", "chatbot"}},
	{SubtopicLLMs, []string{"llm", "large language", "gpt", "transformer", "bert", "language model", "claude", "gemini", "palm"}},
	{SubtopicRobotics, []string{"robot", "robotics", "autonomous vehicle", "drone", "automation"}},
	{SubtopicComputerVision, []string{"computer vision", "image recognition", "opencv", "visual", "object detection"}},
	{SubtopicNLP, []string{"nlp", "natural language", "text processing", "sentiment analysis", "translation"}},
	{SubtopicMachineLearning, []string{"machine learning", "ml", "deep learning", "neural network", "algorithm"}},
	{SubtopicEthics, []string{"ethics", "bias", "fairness", "responsible ai", "ai governance", "regulation"}},
	{SubtopicAutonomousSystems, []string{"autonomous", "self-driving", "autopilot", "automated", "driverless"}},
	{SubtopicGeneralAI, []string{"agi", "artificial general intelligence", "general ai", "superintelligence"}},
}

// IsRelevant reports whether the combined title and body text contains any
// AI-related keyword.
func IsRelevant(title, body string) bool {
	text := strings.ToLower(title + " " + body)
	for _, keyword := range relevanceKeywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// ClassifySubtopic assigns a subtopic by scanning the subtopic table in
// declaration order and returning the first entry with a keyword match.
// Falls back to General AI when nothing matches.
func ClassifySubtopic(title, body string) Subtopic {
	text := strings.ToLower(title + " " + body)
	for _, entry := range subtopicTable {
		for _, keyword := range entry.Keywords {
			if strings.Contains(text, keyword) {
				return entry.Subtopic
			}
		}
	}
	return SubtopicGeneralAI
}
