package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/legalfox/legalfox-backend/internal/config"
	"github.com/legalfox/legalfox-backend/internal/telegram/bot"
	"github.com/legalfox/legalfox-backend/internal/telegram/handlers"
	"github.com/legalfox/legalfox-backend/internal/telegram/state"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot initializes the telegram bot with all dependencies.
// advisor may be nil, in which case the static tip is used after
// every calculation.
func NewBot(
	cfg *config.TelegramConfig,
	storage state.Storage,
	advisor handlers.Advisor,
	logger *zap.Logger,
) (Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}
	api.Debug = false

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	stateManager := state.NewManager(storage)
	sender := handlers.NewMessageSender(api)
	calcHandler := handlers.NewCalcHandler(stateManager, sender, advisor, logger)

	b := bot.New(cfg, api, calcHandler, logger)

	logger.Info("telegram bot initialized successfully")

	return b, nil
}
