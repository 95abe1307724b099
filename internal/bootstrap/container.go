package bootstrap

import (
	"log"

	"github.com/Adsharma18/AiCareerCoachClean/internal/config"
	"github.com/Adsharma18/AiCareerCoachClean/internal/controller"
	"github.com/Adsharma18/AiCareerCoachClean/internal/pkg/logger"
	"github.com/Adsharma18/AiCareerCoachClean/internal/repository/contract"
	"github.com/Adsharma18/AiCareerCoachClean/internal/repository/implementation"
	"github.com/Adsharma18/AiCareerCoachClean/internal/repository/memory"
	"github.com/Adsharma18/AiCareerCoachClean/internal/service"
	"github.com/Adsharma18/AiCareerCoachClean/pkg/llm"
	"github.com/Adsharma18/AiCareerCoachClean/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController
	PdfController  controller.IPdfController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
	PubSub *gochannel.GoChannel
}

// NewContainer wires the backend. A nil db keeps chat history in memory.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())

	llmProvider, err := newLLMProvider(cfg.Ai)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	return NewContainerWith(db, cfg, llmProvider, sysLogger)
}

// NewContainerWith takes the LLM provider and logger from the caller
func NewContainerWith(db *gorm.DB, cfg *config.Config, llmProvider llm.LLMProvider, sysLogger logger.ILogger) *Container {
	// Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	var historyRepo contract.ChatHistoryRepository
	if db != nil {
		historyRepo = implementation.NewChatHistoryRepository(db)
		log.Printf("[INFO] Chat history storage: POSTGRES")
	} else {
		historyRepo = memory.NewChatHistoryRepository()
		log.Printf("[INFO] Chat history storage: IN-MEMORY")
	}

	publisherService := service.NewPublisherService(cfg.App.ExchangeTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.ExchangeTopic,
		historyRepo,
		sysLogger,
	)

	chatService := service.NewChatService(llmProvider, historyRepo, publisherService, sysLogger)
	pdfService := service.NewPdfService(sysLogger, service.PdfOptions{
		UnicodeFontPath: cfg.Pdf.UnicodeFontPath,
		Compress:        cfg.Pdf.Compress,
	})

	return &Container{
		ChatController:  controller.NewChatController(chatService),
		PdfController:   controller.NewPdfController(pdfService),
		ConsumerService: consumerService,
		Logger:          sysLogger,
		PubSub:          pubSub,
	}
}

func newLLMProvider(cfg config.AIConfig) (llm.LLMProvider, error) {
	baseURL := cfg.LLMBaseURL
	if baseURL == "" && cfg.LLMProvider == "ollama" {
		baseURL = cfg.OllamaBaseURL
	}
	return factory.NewLLMProvider(factory.ProviderConfig{
		Type:    cfg.LLMProvider,
		Model:   cfg.LLMModel,
		BaseURL: baseURL,
		APIKey:  cfg.GroqAPIKey,
	})
}
