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
	"fmt"
	"strings"

	"github.com/arxade/arxade/ai"
)

const (
	// At most this many papers are folded into the summary context.
	summaryContextPapers = 10

	// Abstracts longer than this are truncated to keep token usage bounded.
	summaryAbstractLimit = 300
)

// buildSummaryPrompt assembles the academic summary prompt. Paper context is
// optional; when present the top papers are listed with truncated abstracts.
func buildSummaryPrompt(topic string, papers []ai.SummaryPaper) string {
	var papersContext string
	if len(papers) > 0 {
		top := papers
		if len(top) > summaryContextPapers {
			top = top[:summaryContextPapers]
		}

		var b strings.Builder
		b.WriteString("Here are the top relevant papers:\n\n")
		for i, paper := range top {
			title := paper.Title
			if title == "" {
				title = "Untitled"
			}
			abstract := paper.Abstract
			if abstract == "" {
				abstract = "No abstract available"
			}
			if len(abstract) > summaryAbstractLimit {
				abstract = abstract[:summaryAbstractLimit] + "..."
			}
			fmt.Fprintf(&b, "Paper %d: %s\nAbstract: %s\n\n", i+1, title, abstract)
		}
		papersContext = b.String()
	}

	return fmt.Sprintf(`You are an AI research assistant helping users understand academic topics.

Topic: %s

%s

Based on the query and the papers above (if available), provide a concise but complete summary about %s in 1-2 well-structured paragraphs.
Cover the core concepts, key developments, and important applications.

Format your response as plain text with no markdown formatting:
- Do NOT use **bold** or *italics*
- Use standard LaTeX notation for mathematical formulas (e.g., $E=mc^2$ or $\nabla \cdot \vec{F} = 0$)
- Write in flowing paragraphs without special formatting
- Mathematical expressions should flow inline with the text

Write a complete summary that ends naturally without being cut off. Keep it concise but comprehensive. Use academic but accessible language.
`, topic, papersContext, topic)
}

// buildDeepResearchPrompt assembles the long-form analysis prompt. The
// section structure is fixed; the caller contributes the topic, the papers
// context block and any extra instructions.
func buildDeepResearchPrompt(topic, papersContext, instructions string) string {
	return fmt.Sprintf(`You are a distinguished AI research scientist and professor with expertise across multiple domains. %s

Query: %s

Research Papers Context:
%s

Generate an extensive, mathematically rigorous research analysis of at least 4000-5000 words. This should be a comprehensive academic report with detailed explanations, mathematical formulations, and deep technical insights.

FORMATTING REQUIREMENTS:
- Use academic language with proper mathematical notation
- Use LaTeX extensively for mathematical expressions: $inline$ or $$block$$
- Include formal definitions, theorems, and mathematical formulations
- Provide quantitative analysis where possible
- Write detailed explanations for each section (minimum 300-400 words per major section)
- Include specific examples and case studies where relevant

COMPREHENSIVE ANALYSIS STRUCTURE:

# Deep Research Analysis: %s

## Executive Summary (500-600 words)
Provide a comprehensive overview including:
- Key mathematical formulations and their significance
- Major research breakthroughs and their quantitative impact
- Current state of the field with performance metrics
- Critical challenges and opportunities identified from the research papers
- Summary of findings and novel insights from the analyzed papers

## Individual Paper Analysis (800-1000 words)
For each of the top 10 papers in the context, provide detailed analysis:
- **Paper Title and Authors**
- **Core Mathematical Contributions**: Include specific equations, theorems, or algorithms
- **Methodological Innovations**: Technical approaches with mathematical formulations
- **Experimental Results**: Quantitative findings with statistical significance
- **Theoretical Implications**: How this work advances the field mathematically
- **Limitations and Future Work**: Critical assessment with mathematical constraints

## Mathematical Foundations & Theoretical Framework (1000-1200 words)

### Core Mathematical Principles
- Formal mathematical definitions with LaTeX notation: $f: X \rightarrow Y$
- Fundamental equations and their derivations
- Complexity analysis using Big O notation: $O(n)$, $O(n^2)$, $O(n \log n)$
- Mathematical properties, invariances, and constraints
- Information-theoretic measures and bounds: $H(X) = -\sum p(x) \log p(x)$

### Advanced Mathematical Formulations
Present essential mathematical models:
- Loss functions: $\mathcal{L}(\theta) = \frac{1}{n}\sum_{i=1}^{n} \ell(f(x_i; \theta), y_i)$
- Optimization objectives: $\min_{\theta} \mathcal{L}(\theta) + \lambda R(\theta)$
- Gradient computations: $\nabla_{\theta} \mathcal{L}(\theta)$
- Convergence criteria and theoretical bounds
- Probabilistic formulations and Bayesian frameworks

### Mathematical Properties and Theoretical Guarantees
- Convergence analysis with mathematical proofs
- Stability conditions and robustness guarantees
- Approximation theory and error bounds
- Computational complexity and scalability analysis

## State-of-the-Art Methodologies & Technical Analysis (1200-1500 words)

### Leading Algorithmic Approaches
For each major methodology, provide:
- Complete mathematical formulation of algorithms
- Theoretical complexity analysis with formal bounds
- Performance guarantees and convergence proofs
- Comparative analysis with quantitative benchmarks
- Implementation considerations and computational requirements

### Advanced Optimization Techniques
Detail mathematical optimization methods:
- Gradient-based methods: $\theta_{t+1} = \theta_t - \eta_t \nabla \mathcal{L}(\theta_t)$
- Second-order methods: Newton's method, quasi-Newton approaches
- Adaptive learning rates: Adam, RMSprop with mathematical formulations
- Regularization techniques: L1, L2, elastic net with mathematical analysis
- Constrained optimization and Lagrangian methods

### Architectural Innovations and Design Principles
- Mathematical justification for architectural choices
- Theoretical analysis of design decisions
- Performance implications with quantitative analysis
- Novel architectural patterns and their mathematical foundations

### Interdisciplinary Connections
- Mathematical tools borrowed from other fields
- Novel theoretical frameworks and their applications
- Cross-pollination of ideas with mathematical analysis
- Unified mathematical perspectives across different approaches

### Conflicting Findings and Reconciliation
- Mathematical analysis of contradictory results
- Theoretical explanations for performance differences
- Unified frameworks that reconcile different approaches
- Statistical analysis of experimental variations

## Research Frontiers & Open Problems (800-1000 words)

### Unsolved Mathematical Challenges
- Theoretical problems with formal mathematical statements
- Computational complexity barriers and NP-hard problems
- Mathematical conjectures and open questions in the field
- Fundamental limitations with rigorous mathematical analysis

### Emerging Mathematical Frameworks
- Novel mathematical models and their theoretical properties
- Advanced mathematical tools being applied to the field
- Theoretical extensions and mathematical generalizations
- Rigorous analysis of cutting-edge approaches

### Future Research Directions
- Promising theoretical avenues with mathematical foundations
- Novel mathematical problems requiring innovative solutions
- Potential breakthrough areas and their mathematical implications
- Long-term research challenges with quantitative goals

## Industry Applications & Real-World Impact (800-1000 words)

### Practical Implementations
- Real-world deployments with mathematical performance analysis
- Industry adoption patterns and quantitative success metrics
- Economic impact with mathematical modeling
- Case studies with detailed mathematical analysis

### Implementation Challenges and Solutions
- Mathematical constraints in practical deployments
- Computational requirements and scalability with mathematical analysis
- Theoretical vs. practical performance gaps
- Engineering solutions with mathematical foundations

### Theoretical Limitations and Assumptions
- Mathematical constraints and fundamental theoretical limits
- Critical assumptions and their mathematical validity
- Robustness analysis and generalization bounds
- Statistical significance and reproducibility concerns

### Methodological Concerns
- Evaluation methodologies with mathematical rigor
- Bias analysis and fairness considerations
- Validation challenges and theoretical soundness
- Reproducibility issues with statistical analysis

---

**Comprehensive Mathematical Analysis based on research papers**

CRITICAL: Generate a detailed, comprehensive analysis of at least 4000-5000 words. Each section must be thoroughly developed with mathematical rigor, specific equations, detailed explanations, and quantitative insights. Include extensive mathematical formulations, theoretical analysis, and formal mathematical treatment throughout.`,
		instructions, topic, papersContext, topic)
}
