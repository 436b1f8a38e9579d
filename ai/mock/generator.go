package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/arxade/arxade/ai"
)

// Generator is a test double for ai.Generator. By default it returns canned
// text derived from the inputs; either method can be overridden per test.
type Generator struct {
	// SummarizeFunc, if set, replaces the default summary behavior.
	SummarizeFunc func(ctx context.Context, topic string, papers []ai.SummaryPaper) (string, error)

	// AnalyzeFunc, if set, replaces the default analysis behavior.
	AnalyzeFunc func(ctx context.Context, topic, papersContext, instructions string) (string, error)

	mu             sync.Mutex
	summarizeCalls int
	analyzeCalls   int
}

// NewGenerator creates a mock generator with the default canned behavior.
func NewGenerator() *Generator {
	return &Generator{}
}

// Summarize returns a canned summary naming the topic and the paper count.
func (g *Generator) Summarize(ctx context.Context, topic string, papers []ai.SummaryPaper) (string, error) {
	g.mu.Lock()
	g.summarizeCalls++
	g.mu.Unlock()

	if g.SummarizeFunc != nil {
		return g.SummarizeFunc(ctx, topic, papers)
	}
	return fmt.Sprintf("Summary of %q based on %d papers.", topic, len(papers)), nil
}

// Analyze returns a canned analysis naming the topic.
func (g *Generator) Analyze(ctx context.Context, topic, papersContext, instructions string) (string, error) {
	g.mu.Lock()
	g.analyzeCalls++
	g.mu.Unlock()

	if g.AnalyzeFunc != nil {
		return g.AnalyzeFunc(ctx, topic, papersContext, instructions)
	}
	return fmt.Sprintf("Deep research analysis of %q.", topic), nil
}

// SummarizeCalls reports how many times Summarize was invoked.
func (g *Generator) SummarizeCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.summarizeCalls
}

// AnalyzeCalls reports how many times Analyze was invoked.
func (g *Generator) AnalyzeCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.analyzeCalls
}
