package main

import (
	"context"
	"flag"
	"log"

	"cardassist-be/internal/config"
	"cardassist-be/internal/model"
	"cardassist-be/internal/pkg/logger"
	"cardassist-be/internal/repository/unitofwork"
	"cardassist-be/pkg/database"
	"cardassist-be/pkg/embedding"
	"cardassist-be/pkg/embedding/jina"
	"cardassist-be/pkg/objectstore"
	"cardassist-be/pkg/rag/chunker"
	"cardassist-be/pkg/rag/indexer"

	"github.com/fatih/color"
)

// Standalone knowledge-base indexing run. Useful for seeding a fresh
// database or rebuilding after changing chunking parameters.
func main() {
	force := flag.Bool("force", false, "drop all chunks and rebuild from scratch")
	flag.Parse()

	cfg := config.Load()

	color.Cyan("🚀 Knowledge base indexing\n")

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.EnsurePgVector(db); err != nil {
		log.Fatalf("Failed to install pgvector extension: %v", err)
	}
	if err := db.AutoMigrate(&model.Chunk{}, &model.DocumentRecord{}); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	var embeddingProvider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	case "jina":
		embeddingProvider = jina.NewJinaProvider(cfg.Keys.Jina)
	default:
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	}

	docStore, err := objectstore.NewLocalStore(cfg.Docs.Path)
	if err != nil {
		log.Fatalf("Failed to open knowledge base at %s: %v", cfg.Docs.Path, err)
	}

	docIndexer := indexer.NewDocumentIndexer(
		docStore,
		embeddingProvider,
		chunker.NewSplitter(cfg.Docs.ChunkSize, cfg.Docs.ChunkOverlap),
		unitofwork.NewRepositoryFactory(db),
		logger.NewIsolatedLogger("logs/indexer.log"),
	)

	ctx := context.Background()

	if *force {
		color.Yellow("Forced rebuild: dropping existing chunks")
		if err := docIndexer.Reset(ctx); err != nil {
			log.Fatalf("Failed to reset index: %v", err)
		}
	}

	summary, err := docIndexer.IngestAll(ctx)
	if err != nil {
		log.Fatalf("Ingestion failed: %v", err)
	}

	color.Green("Indexed: %d", summary.Indexed)
	color.Yellow("Skipped: %d", summary.Skipped)
	if summary.Failed > 0 {
		color.Red("Failed:  %d", summary.Failed)
		for key, msg := range summary.Errors {
			color.Red("  %s: %s", key, msg)
		}
	}
}
