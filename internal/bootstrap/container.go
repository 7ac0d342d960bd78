package bootstrap

import (
	"log"

	"care-assistant-be/internal/config"
	"care-assistant-be/internal/controller"
	"care-assistant-be/internal/pkg/logger"
	"care-assistant-be/internal/repository/contract"
	"care-assistant-be/internal/repository/implementation"
	"care-assistant-be/internal/repository/memory"
	"care-assistant-be/internal/repository/unitofwork"
	"care-assistant-be/internal/service"
	"care-assistant-be/pkg/agent/clinical"
	"care-assistant-be/pkg/agent/frontdesk"
	"care-assistant-be/pkg/agent/intent"
	"care-assistant-be/pkg/embedding"
	"care-assistant-be/pkg/llm/factory"
	pktNats "care-assistant-be/pkg/nats"
	"care-assistant-be/pkg/rag/ingest"
	"care-assistant-be/pkg/rag/prompt"
	"care-assistant-be/pkg/rag/retriever"
	"care-assistant-be/pkg/websearch"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ConversationController controller.IConversationController
	AdminController        controller.IAdminController

	// Background Services (Exposed for main.go to run)
	ConsumerService  service.IConsumerService
	IngestionService service.IIngestionService

	Logger  logger.ILogger
	NatsPub *pktNats.Publisher
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
			cfg.Ai.EmbeddingDim,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewHashingProvider(cfg.Ai.EmbeddingDim)
		log.Printf("[INFO] Using Embedding Provider: HASHING (dim=%d)", cfg.Ai.EmbeddingDim)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.LLMTimeoutSecs,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Chunk Store
	var chunkRepo contract.ReferenceChunkRepository
	if cfg.Retrieval.ChunkStore == "pgvector" {
		chunkRepo = implementation.NewReferenceChunkRepository(db)
		log.Printf("[INFO] Using Chunk Store: PGVECTOR")
	} else {
		chunkRepo = memory.NewChunkRepository(cfg.Ai.EmbeddingDim)
		log.Printf("[INFO] Using Chunk Store: MEMORY")
	}

	// 5. In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository()

	// 6. NATS Audit Publisher (optional; conversation flow degrades to
	// log-only when unavailable)
	var auditPub service.AuditPublisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		auditPub = natsPub
	}

	// 7. Domain Components
	prompts := prompt.NewBuilder()
	retrieverEngine := retriever.NewEngine(
		embeddingProvider,
		chunkRepo,
		sysLogger,
		cfg.Retrieval.TopK,
		cfg.Retrieval.ScoreThreshold,
	)
	ingestor := ingest.NewIngestor(
		embeddingProvider,
		chunkRepo,
		sysLogger,
		cfg.Retrieval.ChunkSize,
		cfg.Retrieval.ChunkOverlap,
	)
	searcher := websearch.NewSearcher(cfg.Search.Endpoint, cfg.Search.TimeoutSecs, sysLogger)
	classifier := intent.NewClassifier(cfg.Routing.MedicalKeywords, cfg.Routing.RecencyKeywords)

	identityResolver := service.NewIdentityService(uowFactory, sysLogger)
	frontDeskAgent := frontdesk.NewAgent(identityResolver, llmProvider, prompts, sysLogger)
	clinicalAgent := clinical.NewAgent(retrieverEngine, searcher, llmProvider, prompts, sysLogger)

	// 8. Services
	conversationService := service.NewConversationService(
		uowFactory,
		sessionRepo,
		classifier,
		frontDeskAgent,
		clinicalAgent,
		auditPub,
		sysLogger,
	)
	ingestionService := service.NewIngestionService(pubSub, cfg.App.IngestTopic, sysLogger)
	consumerService := service.NewConsumerService(pubSub, cfg.App.IngestTopic, ingestor, auditPub, sysLogger)
	adminService := service.NewAdminService(sysLogger, chunkRepo)

	// 9. Controllers
	conversationController := controller.NewConversationController(conversationService)
	adminController := controller.NewAdminController(adminService, ingestionService, cfg.App.CorpusDir)

	return &Container{
		ConversationController: conversationController,
		AdminController:        adminController,
		ConsumerService:        consumerService,
		IngestionService:       ingestionService,
		Logger:                 sysLogger,
		NatsPub:                natsPub,
	}
}
