package main

import (
	"context"
	"log"

	"cardassist-be/internal/bootstrap"
	"cardassist-be/internal/config"
	"cardassist-be/internal/model"
	"cardassist-be/internal/server"
	"cardassist-be/internal/tracer"
	"cardassist-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	if err := database.EnsurePgVector(gormDB); err != nil {
		log.Panicf("Unable to install pgvector extension: %v", err)
	}
	if err := gormDB.AutoMigrate(&model.Chunk{}, &model.DocumentRecord{}); err != nil {
		log.Panicf("Unable to migrate schema: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	if container.NatsPublisher != nil {
		defer container.NatsPublisher.Close()
	}

	// 4. Start Background Services
	ctx := context.Background()
	go func() {
		log.Println("Background: Starting Reindex Consumer...")
		if err := container.IndexerService.Consume(ctx); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()
	if container.WatchDocuments {
		go func() {
			log.Println("Background: Watching knowledge base for changes...")
			if err := container.IndexerService.Watch(ctx); err != nil {
				log.Printf("Background Watcher Error: %v", err)
			}
		}()
	}

	// Initial ingestion runs through the queue so startup is not blocked.
	if err := container.IndexerService.RequestReindex(false); err != nil {
		log.Printf("Failed to queue initial ingestion: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
