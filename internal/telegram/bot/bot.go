package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/legalfox/legalfox-backend/internal/config"
	"github.com/legalfox/legalfox-backend/internal/entity"
	"github.com/legalfox/legalfox-backend/internal/telegram/handlers"
	"github.com/legalfox/legalfox-backend/internal/telegram/keyboard"
	"github.com/legalfox/legalfox-backend/internal/telegram/middleware"
	"github.com/legalfox/legalfox-backend/internal/telegram/render"
)

// Bot represents the Telegram bot
type Bot struct {
	api         *tgbotapi.BotAPI
	cfg         *config.TelegramConfig
	calc        *handlers.CalcHandler
	keyboard    *keyboard.Builder
	logger      *zap.Logger
	loggingMW   *middleware.LoggingMiddleware
	recoveryMW  *middleware.RecoveryMiddleware
	rateLimitMW *middleware.RateLimiterMiddleware
	updatesChan tgbotapi.UpdatesChannel
	stopChan    chan struct{}
	wg          sync.WaitGroup
}

// New creates a new Telegram bot
func New(
	cfg *config.TelegramConfig,
	api *tgbotapi.BotAPI,
	calc *handlers.CalcHandler,
	logger *zap.Logger,
) *Bot {
	bot := &Bot{
		api:      api,
		cfg:      cfg,
		calc:     calc,
		keyboard: keyboard.NewBuilder(),
		logger:   logger,
		stopChan: make(chan struct{}),
	}

	bot.loggingMW = middleware.NewLoggingMiddleware(logger)
	bot.recoveryMW = middleware.NewRecoveryMiddleware(logger, api)
	bot.rateLimitMW = middleware.NewRateLimiterMiddleware(
		cfg.RateLimitPerMinute,
		cfg.RateLimitBurst,
		logger,
		api,
	)

	return bot
}

// Start starts the bot
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	b.updatesChan = b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)
	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	close(b.stopChan)
	b.api.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(b.cfg.ShutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", b.cfg.ShutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

// processUpdates processes incoming updates
func (b *Bot) processUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update := <-b.updatesChan:
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdateWithMiddleware(u)
			}(update)
		}
	}
}

// handleUpdateWithMiddleware processes update through middleware chain
func (b *Bot) handleUpdateWithMiddleware(update tgbotapi.Update) {
	b.rateLimitMW.Handle(update, func(u tgbotapi.Update) {
		b.loggingMW.Handle(u, func(u2 tgbotapi.Update) {
			b.recoveryMW.Handle(u2, func(u3 tgbotapi.Update) {
				b.handleUpdate(u3)
			})
		})
	})
}

// handleUpdate routes update to appropriate handler
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	ctx := ctxzap.ToContext(context.Background(), b.logger)

	if update.CallbackQuery != nil {
		b.handleCallbackQuery(ctx, update.CallbackQuery)
		return
	}

	if update.Message != nil {
		b.handleMessage(ctx, update.Message)
		return
	}
}

// handleMessage handles incoming messages
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	err := b.calc.HandleText(ctx, message.Chat.ID, message.From.ID, message.Text)
	if err == nil {
		return
	}

	if errors.Is(err, entity.ErrNoActiveFlow) {
		b.sendMessage(ctx, message.Chat.ID, render.MsgNoActiveFlow, b.keyboard.CalcMenuKeyboard())
		return
	}

	ctxzap.Error(ctx, "calculator handler error",
		zap.Error(err),
		zap.Int64("user_id", message.From.ID),
	)
	b.sendMessage(ctx, message.Chat.ID, render.ErrGeneric, nil)
}

// handleCommand handles bot commands
func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	command := message.Command()

	ctxzap.Info(ctx, "command received",
		zap.String("command", command),
		zap.Int64("user_id", message.From.ID),
	)

	switch command {
	case "start":
		b.sendMessage(ctx, message.Chat.ID, render.MsgWelcome, b.keyboard.CalcMenuKeyboard())
	case "help":
		b.sendMessage(ctx, message.Chat.ID, render.MsgHelp, nil)
	case "cancel":
		if b.calc.Cancel(message.From.ID) {
			b.sendMessage(ctx, message.Chat.ID, render.MsgCancelled, nil)
			b.sendMessage(ctx, message.Chat.ID, render.MsgChooseCalc, b.keyboard.CalcMenuKeyboard())
		} else {
			b.sendMessage(ctx, message.Chat.ID, render.MsgNothingToDo, nil)
		}
	default:
		b.sendMessage(ctx, message.Chat.ID, "❌ Неизвестная команда. Используйте /start", nil)
	}
}

// handleCallbackQuery handles calculator menu button clicks
func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	callbackData, err := keyboard.ParseCallback(query.Data)
	if err != nil {
		ctxzap.Error(ctx, "invalid callback data",
			zap.Error(err),
			zap.String("data", query.Data),
		)
		b.answerCallback(ctx, query.ID, "❌ Неверные данные")
		return
	}

	if callbackData.Action != "calc" {
		b.answerCallback(ctx, query.ID, "❌ Неизвестное действие")
		return
	}

	b.answerCallback(ctx, query.ID, "")

	chatID := query.Message.Chat.ID
	userID := query.From.ID

	if err := b.calc.StartFlow(chatID, userID, callbackData.Value); err != nil {
		ctxzap.Error(ctx, "failed to start calculator flow",
			zap.Error(err),
			zap.String("flow", callbackData.Value),
			zap.Int64("user_id", userID),
		)
		b.sendMessage(ctx, chatID, render.ErrGeneric, nil)
	}
}

func (b *Bot) sendMessage(ctx context.Context, chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}

	if _, err := b.api.Send(msg); err != nil {
		ctxzap.Error(ctx, "failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

func (b *Bot) answerCallback(ctx context.Context, callbackID, text string) {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := b.api.Request(callback); err != nil {
		ctxzap.Error(ctx, "failed to answer callback",
			zap.Error(err),
			zap.String("callback_id", callbackID),
		)
	}
}
