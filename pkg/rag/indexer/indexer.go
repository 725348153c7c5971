package indexer

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"cardassist-be/internal/entity"
	"cardassist-be/internal/pkg/logger"
	"cardassist-be/internal/repository/unitofwork"
	"cardassist-be/pkg/embedding"
	"cardassist-be/pkg/objectstore"
	"cardassist-be/pkg/rag/chunker"

	"golang.org/x/sync/errgroup"
)

// ingestWorkers bounds concurrent document ingestion. Each worker owns
// its document end to end, so transactions never interleave per source.
const ingestWorkers = 4

// Status of a single document after an indexing attempt.
type Status string

const (
	StatusIndexed Status = "indexed"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Summary aggregates one ingestion run. Failures are collected, never
// fatal: one bad document must not sink the rest of the corpus.
type Summary struct {
	Indexed int               `json:"indexed"`
	Skipped int               `json:"skipped"`
	Failed  int               `json:"failed"`
	Errors  map[string]string `json:"errors,omitempty"`
}

var supportedExtensions = map[string]bool{
	".md":  true,
	".txt": true,
}

// DocumentIndexer keeps the chunk table in sync with the knowledge-base
// bucket. Embedding happens before any row is touched so a provider
// outage can never leave a source half replaced.
type DocumentIndexer struct {
	store    objectstore.Store
	embedder embedding.EmbeddingProvider
	splitter *chunker.Splitter
	repoFact unitofwork.RepositoryFactory
	log      logger.ILogger
}

func NewDocumentIndexer(
	store objectstore.Store,
	embedder embedding.EmbeddingProvider,
	splitter *chunker.Splitter,
	repoFact unitofwork.RepositoryFactory,
	log logger.ILogger,
) *DocumentIndexer {
	return &DocumentIndexer{
		store:    store,
		embedder: embedder,
		splitter: splitter,
		repoFact: repoFact,
		log:      log,
	}
}

// IngestAll walks the bucket and indexes every supported document that
// changed since its last record. Unsupported extensions count as skipped.
func (ix *DocumentIndexer) IngestAll(ctx context.Context) (*Summary, error) {
	objects, err := ix.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	summary := &Summary{Errors: map[string]string{}}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ingestWorkers)
	for _, obj := range objects {
		key := obj.Key
		g.Go(func() error {
			status, err := ix.IndexDocument(gctx, key)

			mu.Lock()
			defer mu.Unlock()
			switch status {
			case StatusIndexed:
				summary.Indexed++
			case StatusSkipped:
				summary.Skipped++
			case StatusFailed:
				summary.Failed++
				if err != nil {
					summary.Errors[key] = err.Error()
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	ix.log.Info("Indexer", "Ingestion run finished", map[string]interface{}{
		"indexed": summary.Indexed,
		"skipped": summary.Skipped,
		"failed":  summary.Failed,
	})
	return summary, nil
}

// IndexDocument indexes one document by key. Returns StatusSkipped when
// the extension is unsupported or the stored fingerprint still matches.
func (ix *DocumentIndexer) IndexDocument(ctx context.Context, key string) (Status, error) {
	if !supportedExtensions[strings.ToLower(path.Ext(key))] {
		return StatusSkipped, nil
	}

	info, err := ix.store.Stat(ctx, key)
	if err != nil {
		return StatusFailed, fmt.Errorf("stat %s: %w", key, err)
	}

	uow := ix.repoFact.NewUnitOfWork(ctx)
	record, err := uow.DocumentRecordRepository().FindBySourceKey(ctx, key)
	if err != nil {
		return StatusFailed, fmt.Errorf("lookup record %s: %w", key, err)
	}
	if record != nil && record.Matches(info.Size, info.ModTime) {
		return StatusSkipped, nil
	}

	content, err := ix.store.Read(ctx, key)
	if err != nil {
		return StatusFailed, fmt.Errorf("read %s: %w", key, err)
	}

	texts := ix.splitter.Split(string(content))

	// Embed everything up front. Only once all vectors exist do we touch
	// the database.
	chunks := make([]*entity.Chunk, 0, len(texts))
	for i, text := range texts {
		res, err := ix.embedder.Generate(text, "RETRIEVAL_DOCUMENT")
		if err != nil {
			return StatusFailed, fmt.Errorf("embed %s chunk %d: %w", key, i, err)
		}
		chunks = append(chunks, &entity.Chunk{
			SourceKey:      key,
			ChunkIndex:     i,
			Content:        text,
			EmbeddingValue: res.Embedding.Values,
		})
	}

	if err := ix.replaceSource(ctx, key, info, chunks); err != nil {
		return StatusFailed, err
	}

	ix.log.Info("Indexer", "Document indexed", map[string]interface{}{
		"source": key,
		"chunks": len(chunks),
	})
	return StatusIndexed, nil
}

// replaceSource swaps a document's chunks in one transaction so readers
// observe either the old set or the new set, never a torn mix.
func (ix *DocumentIndexer) replaceSource(ctx context.Context, key string, info *objectstore.ObjectInfo, chunks []*entity.Chunk) error {
	uow := ix.repoFact.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin replace %s: %w", key, err)
	}

	if err := uow.ChunkRepository().DeleteBySourceKey(ctx, key); err != nil {
		_ = uow.Rollback()
		return fmt.Errorf("clear chunks %s: %w", key, err)
	}
	if err := uow.ChunkRepository().CreateBulk(ctx, chunks); err != nil {
		_ = uow.Rollback()
		return fmt.Errorf("insert chunks %s: %w", key, err)
	}
	if err := uow.DocumentRecordRepository().Upsert(ctx, &entity.DocumentRecord{
		SourceKey:  key,
		SizeBytes:  info.Size,
		ModTime:    info.ModTime.Truncate(time.Microsecond),
		ChunkCount: len(chunks),
		IndexedAt:  time.Now(),
	}); err != nil {
		_ = uow.Rollback()
		return fmt.Errorf("upsert record %s: %w", key, err)
	}

	return uow.Commit()
}

// Reset drops every chunk and record. Used by forced reindex.
func (ix *DocumentIndexer) Reset(ctx context.Context) error {
	uow := ix.repoFact.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.ChunkRepository().DeleteAll(ctx); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.DocumentRecordRepository().DeleteAll(ctx); err != nil {
		_ = uow.Rollback()
		return err
	}
	return uow.Commit()
}
