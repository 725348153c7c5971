package retriever

import (
	"context"
	"fmt"
	"strings"

	"cardassist-be/internal/pkg/logger"
	"cardassist-be/internal/repository/contract"
	"cardassist-be/pkg/embedding"
)

const (
	DefaultTopK      = 4
	DefaultThreshold = 0.30
)

// Retriever answers "what does the knowledge base say about X". The
// query is embedded exactly once per call regardless of result count.
type Retriever struct {
	embedder  embedding.EmbeddingProvider
	chunkRepo contract.ChunkRepository
	log       logger.ILogger

	// docsURL is the base for per-source document links, e.g.
	// "http://localhost:3000/api/rag/v1/documents".
	docsURL string

	topK      int
	threshold float64
}

func NewRetriever(embedder embedding.EmbeddingProvider, chunkRepo contract.ChunkRepository, log logger.ILogger, docsURL string) *Retriever {
	return &Retriever{
		embedder:  embedder,
		chunkRepo: chunkRepo,
		log:       log,
		docsURL:   strings.TrimRight(docsURL, "/"),
		topK:      DefaultTopK,
		threshold: DefaultThreshold,
	}
}

// Search returns the scored chunks ranked by cosine similarity.
func (r *Retriever) Search(ctx context.Context, query string) ([]*contract.ScoredChunk, error) {
	res, err := r.embedder.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scored, err := r.chunkRepo.SearchSimilarWithScore(ctx, res.Embedding.Values, r.topK, r.threshold)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	r.log.Debug("Retriever", "Similarity search done", map[string]interface{}{
		"hits": len(scored),
	})
	return scored, nil
}

// RetrieveContext builds the citation block injected into agent prompts.
// An empty string signals the caller to answer ungrounded.
func (r *Retriever) RetrieveContext(ctx context.Context, query string) (string, error) {
	scored, err := r.Search(ctx, query)
	if err != nil {
		return "", err
	}
	if len(scored) == 0 {
		return "", nil
	}

	var b strings.Builder
	b.WriteString("Relevant policy excerpts:\n\n")
	var sources []string
	seen := map[string]bool{}
	for _, sc := range scored {
		b.WriteString(fmt.Sprintf("[From %s, Chunk %d - Link: %s]\n%s\n\n",
			sc.Chunk.SourceKey, sc.Chunk.ChunkIndex, r.documentLink(sc.Chunk.SourceKey),
			strings.TrimSpace(sc.Chunk.Content)))
		if !seen[sc.Chunk.SourceKey] {
			seen[sc.Chunk.SourceKey] = true
			sources = append(sources, sc.Chunk.SourceKey)
		}
	}

	b.WriteString("Sources:\n")
	for _, key := range sources {
		b.WriteString(fmt.Sprintf("- %s (%s)\n", key, r.documentLink(key)))
	}
	return strings.TrimSpace(b.String()), nil
}

func (r *Retriever) documentLink(key string) string {
	return r.docsURL + "/" + key
}
