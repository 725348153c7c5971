package bootstrap

import (
	"log"
	"strings"

	"cardassist-be/internal/config"
	"cardassist-be/internal/controller"
	"cardassist-be/internal/pkg/logger"
	"cardassist-be/internal/pkg/mailer"
	"cardassist-be/internal/repository/implementation"
	"cardassist-be/internal/repository/memory"
	redisrepo "cardassist-be/internal/repository/redis"
	"cardassist-be/internal/repository/unitofwork"
	"cardassist-be/internal/service"
	"cardassist-be/internal/service/mockdata"
	"cardassist-be/pkg/agents"
	"cardassist-be/pkg/embedding"
	"cardassist-be/pkg/embedding/jina"
	"cardassist-be/pkg/llm/factory"
	"cardassist-be/pkg/objectstore"
	"cardassist-be/pkg/rag/chunker"
	"cardassist-be/pkg/rag/indexer"
	"cardassist-be/pkg/rag/retriever"
	"cardassist-be/pkg/store"

	pktNats "cardassist-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController
	RagController  controller.IRagController

	// Background Services (Exposed for main.go to run)
	IndexerService service.IIndexerService
	WatchDocuments bool

	// Infrastructure handles for shutdown
	NatsPublisher *pktNats.Publisher
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// 3. Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else if cfg.Ai.EmbeddingProvider == "jina" {
		embeddingProvider = jina.NewJinaProvider(cfg.Keys.Jina)
		log.Printf("[INFO] Using Embedding Provider: JINA AI")
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Conversation Context Store
	var contextStore store.ContextStore
	if cfg.App.ContextStore == "redis" {
		redisStore, err := redisrepo.NewContextRepository(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to Redis context store: %v. Falling back to memory", err)
			contextStore = memory.NewContextRepository()
		} else {
			contextStore = redisStore
			log.Printf("[INFO] Using Context Store: REDIS")
		}
	} else {
		contextStore = memory.NewContextRepository()
		log.Printf("[INFO] Using Context Store: MEMORY")
	}

	// 5. Knowledge Base Pipeline
	docStore, err := objectstore.NewLocalStore(cfg.Docs.Path)
	if err != nil {
		log.Fatalf("[FATAL] Failed to open knowledge base at %s: %v", cfg.Docs.Path, err)
	}

	splitter := chunker.NewSplitter(cfg.Docs.ChunkSize, cfg.Docs.ChunkOverlap)
	indexLogger := logger.NewIsolatedLogger("logs/indexer.log")
	docIndexer := indexer.NewDocumentIndexer(docStore, embeddingProvider, splitter, uowFactory, indexLogger)

	chunkRepo := implementation.NewChunkRepository(db)
	contextRetriever := retriever.NewRetriever(embeddingProvider, chunkRepo, sysLogger, cfg.App.BaseURL+"/api/rag/v1/documents")

	// 6. Agents
	tools := agents.NewTools(contextRetriever, llmProvider)
	accountService := mockdata.NewAccountService()
	transactionService := mockdata.NewTransactionService()
	analyticsService := mockdata.NewAnalyticsService(transactionService)

	registry := agents.NewRegistry("policy", "escalation")
	registry.Register(agents.NewPolicyAgent(tools))
	registry.Register(agents.NewAccountAgent(tools, accountService))
	registry.Register(agents.NewTransactionAgent(tools, transactionService))
	registry.Register(agents.NewAnalyticsAgent(tools, analyticsService))
	registry.Register(agents.NewEscalationAgent(tools))

	orchestrator := agents.NewOrchestrator(
		registry,
		agents.NewIntentClassifier(),
		agents.NewSynthesizer(),
		sysLogger,
	)

	// 7. Services
	notifier := service.NewEscalationNotifier(
		natsPub,
		emailService,
		splitRecipients(cfg.SMTP.EscalationList),
		sysLogger,
	)
	chatService := service.NewChatService(orchestrator, contextStore, notifier, sysLogger)
	indexerService := service.NewIndexerService(
		docIndexer,
		uowFactory,
		docStore,
		pubSub,
		cfg.Keys.ReindexTopic,
		docStore.Root(),
		sysLogger,
	)

	// 8. Controllers
	chatController := controller.NewChatController(chatService)
	ragController := controller.NewRagController(indexerService)

	return &Container{
		ChatController: chatController,
		RagController:  ragController,
		IndexerService: indexerService,
		WatchDocuments: cfg.Docs.Watch,
		NatsPublisher:  natsPub,
	}
}

func splitRecipients(list string) []string {
	var recipients []string
	for _, r := range strings.Split(list, ",") {
		if r = strings.TrimSpace(r); r != "" {
			recipients = append(recipients, r)
		}
	}
	return recipients
}
