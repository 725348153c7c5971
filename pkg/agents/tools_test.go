package agents

import (
	"context"
	"errors"
	"testing"
)

func TestRAGSearch(t *testing.T) {
	tests := []struct {
		name        string
		retriever   ContextRetriever
		wantSuccess bool
		wantContext string
	}{
		{
			name:        "grounding found",
			retriever:   &fakeRetriever{grounding: "[doc.md] passage"},
			wantSuccess: true,
			wantContext: "[doc.md] passage",
		},
		{
			name:        "retriever error degrades",
			retriever:   &fakeRetriever{err: errors.New("store down")},
			wantSuccess: false,
		},
		{
			name:        "nil retriever degrades",
			retriever:   nil,
			wantSuccess: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tools := NewTools(tt.retriever, &fakeLLM{})
			got := tools.RAGSearch(context.Background(), "query")
			if got.Success != tt.wantSuccess {
				t.Errorf("Success = %v, want %v", got.Success, tt.wantSuccess)
			}
			if got.Context != tt.wantContext {
				t.Errorf("Context = %q, want %q", got.Context, tt.wantContext)
			}
		})
	}
}
