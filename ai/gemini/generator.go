// Copyright 2025 arXade Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"github.com/arxade/arxade/ai"
)

// Generation parameters per output shape. Summaries stay short and factual;
// deep research runs long with slightly more sampling freedom.
const (
	summaryMaxTokens   = 800
	summaryTemperature = 0.3

	analysisMaxTokens   = 32000
	analysisTemperature = 0.4

	topP = 0.95
	topK = 40
)

// Generator implements ai.Generator on top of a langchaingo model handle.
type Generator struct {
	llm llms.Model
}

// Summarize produces a 1-2 paragraph plain-text summary of a topic,
// grounded in the supplied papers when any are given.
func (g *Generator) Summarize(ctx context.Context, topic string, papers []ai.SummaryPaper) (string, error) {
	prompt := buildSummaryPrompt(topic, papers)

	out, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt,
		llms.WithMaxTokens(summaryMaxTokens),
		llms.WithTemperature(summaryTemperature),
		llms.WithTopP(topP),
		llms.WithTopK(topK),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// Analyze produces a long-form research analysis of a topic from the
// caller-assembled papers context and instructions.
func (g *Generator) Analyze(ctx context.Context, topic, papersContext, instructions string) (string, error) {
	prompt := buildDeepResearchPrompt(topic, papersContext, instructions)

	out, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt,
		llms.WithMaxTokens(analysisMaxTokens),
		llms.WithTemperature(analysisTemperature),
		llms.WithTopP(topP),
		llms.WithTopK(topK),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate analysis: %w", err)
	}
	return strings.TrimSpace(out), nil
}
