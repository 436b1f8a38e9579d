package gemini

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arxade/arxade/ai"
)

func TestBuildSummaryPrompt_NoPapers(t *testing.T) {
	prompt := buildSummaryPrompt("quantum error correction", nil)

	assert.Contains(t, prompt, "Topic: quantum error correction")
	assert.NotContains(t, prompt, "Here are the top relevant papers")
}

func TestBuildSummaryPrompt_TruncatesAbstracts(t *testing.T) {
	long := strings.Repeat("a", 400)
	prompt := buildSummaryPrompt("topic", []ai.SummaryPaper{
		{Title: "Long Paper", Abstract: long},
	})

	assert.Contains(t, prompt, strings.Repeat("a", summaryAbstractLimit)+"...")
	assert.NotContains(t, prompt, long)
}

func TestBuildSummaryPrompt_CapsPaperCount(t *testing.T) {
	papers := make([]ai.SummaryPaper, 15)
	for i := range papers {
		papers[i] = ai.SummaryPaper{Title: "T", Abstract: "A"}
	}

	prompt := buildSummaryPrompt("topic", papers)

	assert.Contains(t, prompt, "Paper 10:")
	assert.NotContains(t, prompt, "Paper 11:")
}

func TestBuildSummaryPrompt_FillsMissingFields(t *testing.T) {
	prompt := buildSummaryPrompt("topic", []ai.SummaryPaper{{}})

	assert.Contains(t, prompt, "Paper 1: Untitled")
	assert.Contains(t, prompt, "No abstract available")
}

func TestBuildDeepResearchPrompt(t *testing.T) {
	prompt := buildDeepResearchPrompt("diffusion models", "Paper 1: ...", "Focus on sampling.")

	assert.Contains(t, prompt, "Query: diffusion models")
	assert.Contains(t, prompt, "# Deep Research Analysis: diffusion models")
	assert.Contains(t, prompt, "Paper 1: ...")
	assert.Contains(t, prompt, "Focus on sampling.")
}
