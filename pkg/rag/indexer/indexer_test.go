package indexer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"cardassist-be/internal/entity"
	"cardassist-be/internal/repository/contract"
	"cardassist-be/internal/repository/specification"
	"cardassist-be/internal/repository/unitofwork"
	"cardassist-be/pkg/embedding"
	"cardassist-be/pkg/objectstore"
	"cardassist-be/pkg/rag/chunker"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeStore struct {
	objects map[string]fakeObject
}

type fakeObject struct {
	content string
	modTime time.Time
}

func (f *fakeStore) List(ctx context.Context) ([]objectstore.ObjectInfo, error) {
	var infos []objectstore.ObjectInfo
	for _, key := range sortedKeys(f.objects) {
		obj := f.objects[key]
		infos = append(infos, objectstore.ObjectInfo{
			Key:     key,
			Size:    int64(len(obj.content)),
			ModTime: obj.modTime,
		})
	}
	return infos, nil
}

func (f *fakeStore) Stat(ctx context.Context, key string) (*objectstore.ObjectInfo, error) {
	obj, ok := f.objects[key]
	if !ok {
		return nil, os.ErrNotExist
	}
	return &objectstore.ObjectInfo{
		Key:     key,
		Size:    int64(len(obj.content)),
		ModTime: obj.modTime,
	}, nil
}

func (f *fakeStore) Read(ctx context.Context, key string) ([]byte, error) {
	obj, ok := f.objects[key]
	if !ok {
		return nil, os.ErrNotExist
	}
	return []byte(obj.content), nil
}

func sortedKeys(objects map[string]fakeObject) []string {
	var keys []string
	for key := range objects {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

type fakeEmbedder struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{float32(len(text))}},
	}, nil
}

// memoryUOW keeps chunks and records in maps and records the call
// sequence so ordering can be asserted. Locked because IngestAll runs
// workers concurrently.
type memoryUOW struct {
	mu      sync.Mutex
	chunks  map[string][]*entity.Chunk
	records map[string]*entity.DocumentRecord

	began      bool
	committed  int
	rolledBack int
	calls      []string
}

func newMemoryUOW() *memoryUOW {
	return &memoryUOW{
		chunks:  map[string][]*entity.Chunk{},
		records: map[string]*entity.DocumentRecord{},
	}
}

func (u *memoryUOW) Begin(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.began = true
	u.calls = append(u.calls, "begin")
	return nil
}

func (u *memoryUOW) Commit() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.committed++
	u.calls = append(u.calls, "commit")
	return nil
}

func (u *memoryUOW) Rollback() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.rolledBack++
	u.calls = append(u.calls, "rollback")
	return nil
}

func (u *memoryUOW) ChunkRepository() contract.ChunkRepository {
	return &memoryChunkRepo{uow: u}
}

func (u *memoryUOW) DocumentRecordRepository() contract.DocumentRecordRepository {
	return &memoryRecordRepo{uow: u}
}

type memoryChunkRepo struct {
	uow *memoryUOW
}

func (r *memoryChunkRepo) CreateBulk(ctx context.Context, chunks []*entity.Chunk) error {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	r.uow.calls = append(r.uow.calls, "create_bulk")
	for _, c := range chunks {
		r.uow.chunks[c.SourceKey] = append(r.uow.chunks[c.SourceKey], c)
	}
	return nil
}

func (r *memoryChunkRepo) DeleteBySourceKey(ctx context.Context, sourceKey string) error {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	r.uow.calls = append(r.uow.calls, "delete_chunks")
	delete(r.uow.chunks, sourceKey)
	return nil
}

func (r *memoryChunkRepo) DeleteAll(ctx context.Context) error {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	r.uow.calls = append(r.uow.calls, "delete_all_chunks")
	r.uow.chunks = map[string][]*entity.Chunk{}
	return nil
}

func (r *memoryChunkRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chunk, error) {
	return nil, nil
}

func (r *memoryChunkRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	total := 0
	for _, chunks := range r.uow.chunks {
		total += len(chunks)
	}
	return int64(total), nil
}

func (r *memoryChunkRepo) CountBySourceKey(ctx context.Context, sourceKey string) (int64, error) {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	return int64(len(r.uow.chunks[sourceKey])), nil
}

func (r *memoryChunkRepo) SearchSimilarWithScore(ctx context.Context, vector []float32, limit int, threshold float64) ([]*contract.ScoredChunk, error) {
	return nil, nil
}

type memoryRecordRepo struct {
	uow *memoryUOW
}

func (r *memoryRecordRepo) Upsert(ctx context.Context, record *entity.DocumentRecord) error {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	r.uow.calls = append(r.uow.calls, "upsert_record")
	r.uow.records[record.SourceKey] = record
	return nil
}

func (r *memoryRecordRepo) FindBySourceKey(ctx context.Context, sourceKey string) (*entity.DocumentRecord, error) {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	return r.uow.records[sourceKey], nil
}

func (r *memoryRecordRepo) FindAll(ctx context.Context) ([]*entity.DocumentRecord, error) {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	var records []*entity.DocumentRecord
	for _, record := range r.uow.records {
		records = append(records, record)
	}
	return records, nil
}

func (r *memoryRecordRepo) DeleteBySourceKey(ctx context.Context, sourceKey string) error {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	delete(r.uow.records, sourceKey)
	return nil
}

func (r *memoryRecordRepo) DeleteAll(ctx context.Context) error {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	r.uow.calls = append(r.uow.calls, "delete_all_records")
	r.uow.records = map[string]*entity.DocumentRecord{}
	return nil
}

func (r *memoryRecordRepo) Count(ctx context.Context) (int64, error) {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	return int64(len(r.uow.records)), nil
}

type memoryFactory struct {
	uow *memoryUOW
}

func (f *memoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func newTestIndexer(store *fakeStore, embedder *fakeEmbedder, uow *memoryUOW) *DocumentIndexer {
	return NewDocumentIndexer(store, embedder, chunker.NewSplitter(1000, 200), &memoryFactory{uow: uow}, nopLogger{})
}

func TestIndexDocumentNewSource(t *testing.T) {
	modTime := time.Now()
	store := &fakeStore{objects: map[string]fakeObject{
		"fees.md": {content: "Annual fee is $120.\n\nForeign transaction fee is 2.5%.", modTime: modTime},
	}}
	embedder := &fakeEmbedder{}
	uow := newMemoryUOW()
	ix := newTestIndexer(store, embedder, uow)

	status, err := ix.IndexDocument(context.Background(), "fees.md")
	if err != nil {
		t.Fatalf("IndexDocument() error = %v", err)
	}
	if status != StatusIndexed {
		t.Fatalf("status = %q, want %q", status, StatusIndexed)
	}

	if len(uow.chunks["fees.md"]) == 0 {
		t.Error("no chunks stored")
	}
	record := uow.records["fees.md"]
	if record == nil {
		t.Fatal("no document record stored")
	}
	if record.ChunkCount != len(uow.chunks["fees.md"]) {
		t.Errorf("ChunkCount = %d, want %d", record.ChunkCount, len(uow.chunks["fees.md"]))
	}
	if !record.ModTime.Equal(modTime.Truncate(time.Microsecond)) {
		t.Errorf("ModTime = %v, want microsecond-truncated %v", record.ModTime, modTime)
	}
	if embedder.calls != record.ChunkCount {
		t.Errorf("embedder calls = %d, want %d", embedder.calls, record.ChunkCount)
	}

	// Replacement is transactional: delete, insert, upsert, commit.
	want := []string{"begin", "delete_chunks", "create_bulk", "upsert_record", "commit"}
	if fmt.Sprint(uow.calls) != fmt.Sprint(want) {
		t.Errorf("call sequence = %v, want %v", uow.calls, want)
	}
}

func TestIndexDocumentUnsupportedExtension(t *testing.T) {
	store := &fakeStore{objects: map[string]fakeObject{
		"logo.png": {content: "binary", modTime: time.Now()},
	}}
	uow := newMemoryUOW()
	ix := newTestIndexer(store, &fakeEmbedder{}, uow)

	status, err := ix.IndexDocument(context.Background(), "logo.png")
	if err != nil {
		t.Fatalf("IndexDocument() error = %v", err)
	}
	if status != StatusSkipped {
		t.Errorf("status = %q, want %q", status, StatusSkipped)
	}
	if len(uow.calls) != 0 {
		t.Errorf("calls = %v, want none", uow.calls)
	}
}

func TestIndexDocumentUnchangedFingerprint(t *testing.T) {
	modTime := time.Now()
	content := "Annual fee is $120."
	store := &fakeStore{objects: map[string]fakeObject{
		"fees.md": {content: content, modTime: modTime},
	}}
	uow := newMemoryUOW()
	uow.records["fees.md"] = &entity.DocumentRecord{
		SourceKey: "fees.md",
		SizeBytes: int64(len(content)),
		ModTime:   modTime,
	}
	embedder := &fakeEmbedder{}
	ix := newTestIndexer(store, embedder, uow)

	status, err := ix.IndexDocument(context.Background(), "fees.md")
	if err != nil {
		t.Fatalf("IndexDocument() error = %v", err)
	}
	if status != StatusSkipped {
		t.Errorf("status = %q, want %q", status, StatusSkipped)
	}
	if embedder.calls != 0 {
		t.Errorf("embedder calls = %d, want 0", embedder.calls)
	}
}

// Stored records come back from timestamptz columns with microsecond
// precision while file mtimes carry nanoseconds. The fingerprint still
// has to match, otherwise unchanged documents get re-embedded on every
// ingest.
func TestIndexDocumentSkipsAfterMtimeRoundTrip(t *testing.T) {
	modTime := time.Date(2026, 8, 29, 10, 30, 0, 123456789, time.UTC)
	content := "Annual fee is $120."
	store := &fakeStore{objects: map[string]fakeObject{
		"fees.md": {content: content, modTime: modTime},
	}}
	uow := newMemoryUOW()
	uow.records["fees.md"] = &entity.DocumentRecord{
		SourceKey: "fees.md",
		SizeBytes: int64(len(content)),
		ModTime:   modTime.Truncate(time.Microsecond),
	}
	embedder := &fakeEmbedder{}
	ix := newTestIndexer(store, embedder, uow)

	status, err := ix.IndexDocument(context.Background(), "fees.md")
	if err != nil {
		t.Fatalf("IndexDocument() error = %v", err)
	}
	if status != StatusSkipped {
		t.Errorf("status = %q, want %q", status, StatusSkipped)
	}
	if embedder.calls != 0 {
		t.Errorf("embedder calls = %d, want 0", embedder.calls)
	}
	if len(uow.calls) != 0 {
		t.Errorf("calls = %v, want none", uow.calls)
	}
}

func TestIndexDocumentEmbedderFailureLeavesDatabaseUntouched(t *testing.T) {
	store := &fakeStore{objects: map[string]fakeObject{
		"fees.md": {content: "Annual fee is $120.", modTime: time.Now()},
	}}
	uow := newMemoryUOW()
	ix := newTestIndexer(store, &fakeEmbedder{err: errors.New("provider down")}, uow)

	status, err := ix.IndexDocument(context.Background(), "fees.md")
	if err == nil {
		t.Fatal("IndexDocument() error = nil, want embed failure")
	}
	if status != StatusFailed {
		t.Errorf("status = %q, want %q", status, StatusFailed)
	}
	if uow.began {
		t.Error("transaction opened despite embed failure")
	}
	if len(uow.chunks) != 0 || len(uow.records) != 0 {
		t.Error("database touched despite embed failure")
	}
}

func TestIngestAllSummary(t *testing.T) {
	store := &fakeStore{objects: map[string]fakeObject{
		"fees.md":   {content: "Annual fee is $120.", modTime: time.Now()},
		"travel.md": {content: "Travel insurance included.", modTime: time.Now()},
		"logo.png":  {content: "binary", modTime: time.Now()},
	}}
	uow := newMemoryUOW()
	ix := newTestIndexer(store, &fakeEmbedder{}, uow)

	summary, err := ix.IngestAll(context.Background())
	if err != nil {
		t.Fatalf("IngestAll() error = %v", err)
	}

	if summary.Indexed != 2 {
		t.Errorf("Indexed = %d, want 2", summary.Indexed)
	}
	if summary.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", summary.Skipped)
	}
	if summary.Failed != 0 {
		t.Errorf("Failed = %d, want 0", summary.Failed)
	}
}

func TestIngestAllCollectsFailures(t *testing.T) {
	store := &fakeStore{objects: map[string]fakeObject{
		"fees.md": {content: "Annual fee is $120.", modTime: time.Now()},
	}}
	uow := newMemoryUOW()
	ix := newTestIndexer(store, &fakeEmbedder{err: errors.New("provider down")}, uow)

	summary, err := ix.IngestAll(context.Background())
	if err != nil {
		t.Fatalf("IngestAll() error = %v", err)
	}
	if summary.Failed != 1 {
		t.Errorf("Failed = %d, want 1", summary.Failed)
	}
	if _, ok := summary.Errors["fees.md"]; !ok {
		t.Errorf("Errors = %v, want fees.md entry", summary.Errors)
	}
}

func TestReset(t *testing.T) {
	uow := newMemoryUOW()
	uow.chunks["fees.md"] = []*entity.Chunk{{SourceKey: "fees.md"}}
	uow.records["fees.md"] = &entity.DocumentRecord{SourceKey: "fees.md"}
	ix := newTestIndexer(&fakeStore{objects: map[string]fakeObject{}}, &fakeEmbedder{}, uow)

	if err := ix.Reset(context.Background()); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if len(uow.chunks) != 0 || len(uow.records) != 0 {
		t.Error("Reset left rows behind")
	}
	if uow.committed != 1 {
		t.Errorf("committed = %d, want 1", uow.committed)
	}
}
