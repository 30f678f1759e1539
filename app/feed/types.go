package feed

import (
	"time"
)

// Source is a configured RSS/Atom endpoint. The set of sources is fixed for
// the lifetime of the process.
type Source struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
}

// Subtopic is one of the fixed AI-domain labels assigned to relevant articles.
type Subtopic string

const (
	SubtopicAIAgents          Subtopic = "AI Agents"
	SubtopicLLMs              Subtopic = "LLMs"
	SubtopicRobotics          Subtopic = "Robotics"
	SubtopicComputerVision    Subtopic = "Computer Vision"
	SubtopicNLP               Subtopic = "NLP"
	SubtopicMachineLearning   Subtopic = "Machine Learning"
	SubtopicEthics            Subtopic = "Ethics"
	SubtopicAutonomousSystems Subtopic = "Autonomous Systems"
	SubtopicGeneralAI         Subtopic = "General AI"
)

// Article is the canonical record produced by normalization. It only ever
// lives in the in-memory snapshot store.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt"`
	Content     string    `json:"content"`
	Author      string    `json:"author"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"publishedAt"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"imageUrl"`
	Tags        []string  `json:"tags"`
	AISubtopic  Subtopic  `json:"aiSubtopic"`
	ReadTime    int       `json:"readTime"`
	IsFavorite  bool      `json:"isFavorite"`
}
