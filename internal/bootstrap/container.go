package bootstrap

import (
	"context"
	"log"
	"time"

	"asknova-be/internal/config"
	"asknova-be/internal/constant"
	"asknova-be/internal/controller"
	"asknova-be/internal/handler"
	"asknova-be/internal/pkg/logger"
	"asknova-be/internal/repository/implementation"
	"asknova-be/internal/repository/memory"
	"asknova-be/internal/service"
	"asknova-be/internal/websocket"
	"asknova-be/pkg/ai/keyword"
	"asknova-be/pkg/ai/relevance"
	"asknova-be/pkg/kaggle"
	"asknova-be/pkg/llm/gemini"

	pktNats "asknova-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers & Handlers
	GenController controller.IGenController
	ChatHandler   *handler.ChatHandler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Running single-instance", err)
		rdb = nil
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/websocket.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Upstream Providers
	// The HTTP client carries the streaming ceiling; per-call deadlines come
	// from the engine's contexts.
	llmProvider := gemini.NewClient(
		cfg.Keys.GoogleGemini,
		cfg.Ai.GeminiModel,
		time.Duration(cfg.Ai.StreamingTimeout)*time.Second,
	)
	log.Printf("[INFO] Using LLM Provider: GEMINI (%s)", cfg.Ai.GeminiModel)

	kaggleClient := kaggle.NewClient(
		cfg.Keys.KaggleUsername,
		cfg.Keys.KaggleKey,
		constant.MaxDatasetSuggestions,
		time.Duration(cfg.Ai.UpstreamTimeout)*time.Second,
	)

	classifier := relevance.NewClassifier(llmProvider)
	extractor := keyword.NewExtractor(llmProvider)
	datasetCache := memory.NewDatasetCache()

	// 4. Repositories
	historyRepo := implementation.NewHistoryRepository(db)
	usageRepo := implementation.NewTurnUsageRepository(db)

	// 5. Services
	conversationService := service.NewConversationService(
		historyRepo,
		classifier,
		extractor,
		kaggleClient,
		llmProvider,
		datasetCache,
		wsHub,
		pubSub,
		cfg.Keys.TurnTopic,
		sysLogger,
		time.Duration(cfg.Ai.UpstreamTimeout)*time.Second,
		time.Duration(cfg.Ai.StreamingTimeout)*time.Second,
	)

	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.TurnTopic,
		usageRepo,
		natsPub,
		sysLogger,
	)

	// 6. Transport
	dispatcher := websocket.NewDispatcher(conversationService, wsLogger)

	return &Container{
		GenController: controller.NewGenController(conversationService),
		ChatHandler:   handler.NewChatHandler(wsHub, dispatcher, wsLogger),

		ConsumerService: consumerService,
		WebSocketHub:    wsHub,
	}
}
