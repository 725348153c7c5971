package agents

import (
	"context"

	"cardassist-be/pkg/llm"
)

// ContextRetriever is the grounding hook agents use for policy answers.
// An empty context string means "no grounding available".
type ContextRetriever interface {
	RetrieveContext(ctx context.Context, query string) (string, error)
}

// SearchResult is the outcome of one knowledge-base lookup.
type SearchResult struct {
	Success bool
	Context string
}

// Tools bundles the shared capabilities agents call: knowledge-base
// search and text completion. Both degrade instead of failing: callers
// always get a usable result struct or a plain error to translate into
// fallback text.
type Tools struct {
	retriever ContextRetriever
	provider  llm.LLMProvider
}

func NewTools(retriever ContextRetriever, provider llm.LLMProvider) *Tools {
	return &Tools{
		retriever: retriever,
		provider:  provider,
	}
}

// RAGSearch looks up grounding passages for a query. Failure is part of
// the result, not an error: agents answer ungrounded when Success is
// false or the context is empty.
func (t *Tools) RAGSearch(ctx context.Context, query string) SearchResult {
	if t.retriever == nil {
		return SearchResult{Success: false}
	}
	grounding, err := t.retriever.RetrieveContext(ctx, query)
	if err != nil {
		return SearchResult{Success: false}
	}
	return SearchResult{Success: true, Context: grounding}
}

// CallLLM runs one text completion.
func (t *Tools) CallLLM(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return t.provider.Generate(ctx, prompt, llm.WithMaxTokens(maxTokens))
}
