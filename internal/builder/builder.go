package builder

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/legalfox/legalfox-backend/internal/api"
	legalfoxapi "github.com/legalfox/legalfox-backend/internal/api/legalfox"
	"github.com/legalfox/legalfox-backend/internal/config"
	"github.com/legalfox/legalfox-backend/internal/integration/gigachat"
	"github.com/legalfox/legalfox-backend/internal/integration/llm"
	"github.com/legalfox/legalfox-backend/internal/pkg/formatter"
	"github.com/legalfox/legalfox-backend/internal/scenario"
	"github.com/legalfox/legalfox-backend/internal/storage"
	"github.com/legalfox/legalfox-backend/internal/telegram"
	"github.com/legalfox/legalfox-backend/internal/telegram/handlers"
	"github.com/legalfox/legalfox-backend/internal/telegram/state"
)

// Build assembles the HTTP document-generation backend.
func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	fileStore, err := storage.NewStore(cfg.FilesDir)
	if err != nil {
		return nil, fmt.Errorf("setup file store: %w", err)
	}
	logger.Info("File store initialized", zap.String("dir", cfg.FilesDir))

	var llmConnector scenario.LLMConnector
	if cfg.EnableMocks {
		logger.Info("Using mock completion connector")
		llmConnector = llm.NewMockConnector(logger)
	} else {
		if cfg.LLMCfg.APIKey == "" {
			return nil, fmt.Errorf("LLM_API_KEY is required for the document backend")
		}
		llmConnector = llm.NewConnector(cfg.LLMCfg, logger)
		logger.Info("LLM connector initialized", zap.String("model", cfg.LLMCfg.Model))
	}

	formatterFactory := formatter.NewFactory()

	generateUC := scenario.NewUsecase(llmConnector, fileStore, formatterFactory, logger)
	logger.Info("Use cases initialized")

	legalfoxHandler := legalfoxapi.NewHandler(generateUC, fileStore, cfg.PublicBaseURL)
	router := api.SetupRouter(legalfoxHandler, logger)
	logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: logger,
	}, nil
}

// BuildCalcBot creates and initializes the calculator Telegram bot.
func BuildCalcBot() (telegram.Bot, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	if cfg.TelegramCfg.BotToken == "" {
		return nil, nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required for the calculator bot")
	}

	sessionStorage := state.NewCacheStorage(cfg.TelegramCfg.SessionTTL)

	var advisor handlers.Advisor
	if cfg.GigaChatCfg.AuthKey != "" {
		tokens := gigachat.NewTokenProvider(cfg.GigaChatCfg, logger)
		advisor = gigachat.NewConnector(cfg.GigaChatCfg, tokens, logger)
		logger.Info("GigaChat advisor initialized", zap.String("model", cfg.GigaChatCfg.Model))
	} else {
		logger.Info("GigaChat auth key not set, advisory tips fall back to static text")
	}

	bot, err := telegram.NewBot(&cfg.TelegramCfg, sessionStorage, advisor, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, logger, nil
}
