package bootstrap

import (
	"log"

	"albi-mall-assistant-be/internal/config"
	"albi-mall-assistant-be/internal/controller"
	"albi-mall-assistant-be/internal/pkg/logger"
	"albi-mall-assistant-be/internal/repository/contract"
	"albi-mall-assistant-be/internal/repository/implementation"
	"albi-mall-assistant-be/internal/repository/memory"
	"albi-mall-assistant-be/internal/service"
	"albi-mall-assistant-be/pkg/cache"
	"albi-mall-assistant-be/pkg/catalog"
	"albi-mall-assistant-be/pkg/database"
	"albi-mall-assistant-be/pkg/events"
	"albi-mall-assistant-be/pkg/llm"
	"albi-mall-assistant-be/pkg/llm/factory"
	"albi-mall-assistant-be/pkg/rag/filter"
	"albi-mall-assistant-be/pkg/rag/intent"
	"albi-mall-assistant-be/pkg/rag/response"
	"albi-mall-assistant-be/pkg/rag/retrieval"
	"albi-mall-assistant-be/pkg/rag/session"
	"albi-mall-assistant-be/pkg/search"
	"albi-mall-assistant-be/pkg/search/trieve"

	pktNats "albi-mall-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	ChatbotController controller.IChatbotController
	CatalogController controller.ICatalogController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	closers []func()
}

func NewContainer(cfg *config.Config, products *catalog.Catalog) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	c := &Container{Logger: sysLogger}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Infrastructure
	store := newCacheStore(cfg)
	c.closers = append(c.closers, func() { _ = store.Close() })

	var eventPublisher events.Publisher
	if cfg.App.NatsEnabled {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			eventPublisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	searchProvider := newSearchProvider(cfg, products)
	llmProvider := newLLMProvider(cfg)

	// 4. Retrieval core
	sessionRepo := memory.NewSessionRepository(cfg.Assistant.SessionTTL, cfg.Assistant.SessionTTL/4)
	sessionManager := session.NewManager(sessionRepo, cfg.Assistant.SessionHistorySize, cfg.Assistant.SessionTTL, sysLogger)

	extractor := filter.NewExtractor(products.Brands(), sysLogger)
	merger := intent.NewMerger(intent.NewKeywordClassifier(), sysLogger)

	retriever := retrieval.NewRetriever(products, searchProvider, store, retrieval.Config{
		MaxResults:     cfg.Assistant.MaxRecommendations,
		WorkingSetSize: cfg.Assistant.WorkingSetSize,
		FetchLimit:     cfg.Search.FetchLimit,
		SearchTimeout:  cfg.Search.Timeout,
		CacheTTL:       cfg.Cache.TTL,
	}, sysLogger)

	composer := response.NewComposer(llmProvider, store, response.Config{
		MaxRecommendations: cfg.Assistant.MaxRecommendations,
		Timeout:            cfg.Ai.LLMTimeout,
		Temperature:        cfg.Ai.LLMTemperature,
		MaxTokens:          cfg.Ai.LLMMaxTokens,
		CacheTTL:           cfg.Cache.TTL,
		StoreBrand:         products.PrimaryBrand(),
	}, sysLogger)

	// 5. Services
	turnLogger := logger.NewIsolatedLogger(cfg.App.TurnLogFilePath)
	publisherService := service.NewPublisherService(cfg.App.TurnTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.TurnTopic, turnLogger)

	chatbotService := service.NewChatbotService(
		extractor,
		sessionManager,
		merger,
		retriever,
		composer,
		publisherService,
		eventPublisher,
		consumerService,
		sysLogger,
	)
	productRepo := c.newProductRepository(cfg)
	catalogService := service.NewCatalogService(products, productRepo)

	// 6. Controllers
	c.ChatbotController = controller.NewChatbotController(chatbotService)
	c.CatalogController = controller.NewCatalogController(catalogService)
	c.ConsumerService = consumerService

	return c
}

// Close releases the bus, cache and NATS connection in reverse order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

// newProductRepository backs /products with the database when the catalog
// lives there. Any other source lists from memory.
func (c *Container) newProductRepository(cfg *config.Config) contract.ProductRepository {
	if cfg.Catalog.Source != "postgres" {
		return nil
	}
	db, err := database.NewGormDBFromDSN(cfg.Catalog.DBConnection)
	if err != nil {
		log.Printf("[WARN] Failed to connect to catalog database: %v. Listing from memory", err)
		return nil
	}
	c.closers = append(c.closers, func() { database.Close(db) })
	return implementation.NewProductRepository(db)
}

func newCacheStore(cfg *config.Config) cache.Store {
	if cfg.Cache.Driver == "redis" {
		store, err := cache.NewRedisStore(cfg.App.RedisURL, cfg.Cache.KeyPrefix, cfg.Cache.TTL)
		if err == nil {
			log.Printf("[INFO] Using Cache: REDIS (%s)", cfg.App.RedisURL)
			return store
		}
		log.Printf("[WARN] Failed to connect to Redis: %v. Falling back to in-memory cache", err)
	}
	log.Printf("[INFO] Using Cache: MEMORY (ttl %s)", cfg.Cache.TTL)
	return cache.NewMemoryStore(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
}

func newSearchProvider(cfg *config.Config, products *catalog.Catalog) search.Provider {
	if cfg.Search.Provider == "trieve" {
		if cfg.Search.TrieveAPIKey != "" && cfg.Search.TrieveDataset != "" {
			log.Printf("[INFO] Using Search Provider: TRIEVE (%s)", cfg.Search.TrieveBaseURL)
			return trieve.NewProvider(cfg.Search.TrieveBaseURL, cfg.Search.TrieveAPIKey, cfg.Search.TrieveDataset, cfg.Search.Timeout)
		}
		log.Printf("[WARN] Trieve needs TRIEVE_API_KEY and TRIEVE_DATASET_ID. Using local catalog search")
	}
	log.Printf("[INFO] Using Search Provider: LOCAL (%d products)", products.Len())
	return search.NewCatalogProvider(products)
}

func newLLMProvider(cfg *config.Config) llm.LLMProvider {
	llmProvider, err := factory.NewLLMProvider(factory.Config{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  cfg.Ai.LLMBaseURL,
		APIKey:   cfg.Ai.LLMAPIKey,
		Timeout:  cfg.Ai.LLMTimeout,
	})
	if err != nil {
		log.Printf("[WARN] Failed to initialize LLM Provider: %v. Replies will use templates only", err)
		return nil
	}
	if llmProvider == nil {
		log.Printf("[INFO] LLM Provider disabled. Replies will use templates only")
		return nil
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	return llmProvider
}
