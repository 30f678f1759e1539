package feed

import (
	"testing"
)

func TestIsRelevant(t *testing.T) {
	tests := []struct {
		name  string
		title string
		body  string
		want  bool
	}{
		{
			name:  "keyword in title",
			title: "New Transformer Model Beats Benchmarks",
			body:  "",
			want:  true,
		},
		{
			name:  "keyword in body only",
			title: "Quarterly results",
			body:  "The company invested heavily in machine learning infrastructure.",
			want:  true,
		},
		{
			name:  "case insensitive",
			title: "OPENAI Ships New Product",
			body:  "",
			want:  true,
		},
		{
			name:  "no keywords",
			title: "Local Bakery Opens Downtown",
			body:  "Fresh bread every morning.",
			want:  false,
		},
		{
			name:  "empty input",
			title: "",
			body:  "",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRelevant(tt.title, tt.body); got != tt.want {
				t.Errorf("IsRelevant(%q, %q) = %v, want %v", tt.title, tt.body, got, tt.want)
			}
		})
	}
}

func TestIsRelevantMonotonic(t *testing.T) {
	title := "Robotics startup raises funding"
	body := "The robotics company builds warehouse robots."

	if !IsRelevant(title, body) {
		t.Fatal("base text should be relevant")
	}

	// Appending any sentence keeps an already-relevant text relevant.
	extended := body + " Completely unrelated bakery sentence."
	if !IsRelevant(title, extended) {
		t.Error("adding text must not make relevant input irrelevant")
	}
}

func TestClassifySubtopic(t *testing.T) {
	tests := []struct {
		name  string
		title string
		body  string
		want  Subtopic
	}{
		{
			name:  "llm keyword",
			title: "New Transformer Model Beats Benchmarks",
			want:  SubtopicLLMs,
		},
		{
			name:  "robotics keyword",
			title: "Warehouse robots get smarter",
			want:  SubtopicRobotics,
		},
		{
			name:  "ethics keyword",
			title: "Regulators examine fairness in hiring models",
			want:  SubtopicEthics,
		},
		{
			name:  "default when nothing matches",
			title: "Completely unrelated headline",
			want:  SubtopicGeneralAI,
		},
		{
			name:  "computer vision from body",
			title: "Research update",
			body:  "A new object detection benchmark was released.",
			want:  SubtopicComputerVision,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifySubtopic(tt.title, tt.body); got != tt.want {
				t.Errorf("ClassifySubtopic(%q, %q) = %q, want %q", tt.title, tt.body, got, tt.want)
			}
		})
	}
}

func TestClassifySubtopicFirstMatchWins(t *testing.T) {
	// Matches both the AI Agents and LLMs keyword sets; AI Agents is declared
	// first so it wins.
	got := ClassifySubtopic("Agent framework built on a large language model", "")
	if got != SubtopicAIAgents {
		t.Errorf("expected declaration order to break the tie, got %q", got)
	}
}

func TestClassifySubtopicDeterministic(t *testing.T) {
	title := "Autonomous drone uses neural network for navigation"
	body := "Reinforcement learning in the real world."

	first := ClassifySubtopic(title, body)
	for i := 0; i < 100; i++ {
		if got := ClassifySubtopic(title, body); got != first {
			t.Fatalf("run %d: got %q, want %q", i, got, first)
		}
	}
}
