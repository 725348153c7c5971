package service

import (
	"context"
	"encoding/json"
	"log"
	"path/filepath"
	"strings"
	"time"

	"cardassist-be/internal/dto"
	"cardassist-be/internal/pkg/logger"
	"cardassist-be/internal/repository/unitofwork"
	"cardassist-be/pkg/objectstore"
	"cardassist-be/pkg/rag/indexer"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/fsnotify/fsnotify"
)

type IIndexerService interface {
	IndexAll(ctx context.Context, reindex bool) (*dto.IndexDocumentsResponse, error)
	IndexDocument(ctx context.Context, key string) (*dto.IndexDocumentResponse, error)
	Document(ctx context.Context, key string) ([]byte, error)
	Stats(ctx context.Context) (*dto.RagStatsResponse, error)
	RequestReindex(reindex bool) error
	Consume(ctx context.Context) error
	Watch(ctx context.Context) error
}

type reindexMessage struct {
	Reindex bool `json:"reindex"`
}

// indexerService fronts the document indexer: synchronous indexing for
// the API, a reindex queue for background runs, and an optional
// filesystem watcher that requeues on document changes.
type indexerService struct {
	indexer    *indexer.DocumentIndexer
	uowFactory unitofwork.RepositoryFactory
	store      objectstore.Store
	pubSub     *gochannel.GoChannel
	topicName  string
	docsPath   string
	log        logger.ILogger
}

func NewIndexerService(
	docIndexer *indexer.DocumentIndexer,
	uowFactory unitofwork.RepositoryFactory,
	store objectstore.Store,
	pubSub *gochannel.GoChannel,
	topicName string,
	docsPath string,
	log logger.ILogger,
) IIndexerService {
	return &indexerService{
		indexer:    docIndexer,
		uowFactory: uowFactory,
		store:      store,
		pubSub:     pubSub,
		topicName:  topicName,
		docsPath:   docsPath,
		log:        log,
	}
}

func (s *indexerService) IndexAll(ctx context.Context, reindex bool) (*dto.IndexDocumentsResponse, error) {
	if reindex {
		if err := s.indexer.Reset(ctx); err != nil {
			return nil, err
		}
	}

	summary, err := s.indexer.IngestAll(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.IndexDocumentsResponse{
		Indexed: summary.Indexed,
		Skipped: summary.Skipped,
		Failed:  summary.Failed,
		Errors:  summary.Errors,
	}, nil
}

func (s *indexerService) IndexDocument(ctx context.Context, key string) (*dto.IndexDocumentResponse, error) {
	status, err := s.indexer.IndexDocument(ctx, key)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	chunks, err := uow.ChunkRepository().CountBySourceKey(ctx, key)
	if err != nil {
		return nil, err
	}

	return &dto.IndexDocumentResponse{
		SourceKey: key,
		Status:    string(status),
		Chunks:    int(chunks),
	}, nil
}

// Document serves the raw bytes of one knowledge-base source.
func (s *indexerService) Document(ctx context.Context, key string) ([]byte, error) {
	return s.store.Read(ctx, key)
}

func (s *indexerService) Stats(ctx context.Context) (*dto.RagStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	documents, err := uow.DocumentRecordRepository().Count(ctx)
	if err != nil {
		return nil, err
	}
	chunks, err := uow.ChunkRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	stats := &dto.RagStatsResponse{
		Documents: int(documents),
		Chunks:    int(chunks),
	}

	records, err := uow.DocumentRecordRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	var last time.Time
	for _, record := range records {
		if record.IndexedAt.After(last) {
			last = record.IndexedAt
		}
	}
	if !last.IsZero() {
		stats.LastIndexed = &last
	}

	return stats, nil
}

// RequestReindex queues a background ingestion run.
func (s *indexerService) RequestReindex(reindex bool) error {
	payload, err := json.Marshal(reindexMessage{Reindex: reindex})
	if err != nil {
		return err
	}
	return s.pubSub.Publish(s.topicName, message.NewMessage(watermill.NewUUID(), payload))
}

// Consume drains the reindex queue. Runs the ingestion inline per
// message; the queue serializes concurrent requests.
func (s *indexerService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			var payload reindexMessage
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				log.Printf("[ERROR] Failed to unmarshal reindex message: %v", err)
				msg.Ack()
				continue
			}

			if _, err := s.IndexAll(ctx, payload.Reindex); err != nil {
				s.log.Error("IndexerService", "Background ingestion failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
			msg.Ack()
		}
	}()

	return nil
}

// Watch requeues an ingestion run whenever a supported document under
// the knowledge base changes on disk.
func (s *indexerService) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(s.docsPath); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				ext := strings.ToLower(filepath.Ext(event.Name))
				if ext != ".md" && ext != ".txt" {
					continue
				}
				s.log.Info("IndexerService", "Knowledge base changed, queuing reindex", map[string]interface{}{
					"file": event.Name,
				})
				if err := s.RequestReindex(false); err != nil {
					s.log.Error("IndexerService", "Failed to queue reindex", map[string]interface{}{
						"error": err.Error(),
					})
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.Error("IndexerService", "Watcher error", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}()

	return nil
}
