package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/legalfox/legalfox-backend/internal/entity"
	"github.com/legalfox/legalfox-backend/internal/telegram/render"
	"github.com/legalfox/legalfox-backend/internal/telegram/state"
)

const adviceTimeout = 10 * time.Second

const adviceSystemPrompt = "Ты опытный прораб. Дай один короткий практический совет по строительным работам. " +
	"Не больше двух предложений, без разметки и списков."

// Advisor produces a short tip after a finished calculation. A nil
// Advisor means the static fallback tip is always used.
type Advisor interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// CalcHandler drives the calculator dialogues.
type CalcHandler struct {
	states  *state.Manager
	sender  Sender
	advisor Advisor
	flows   map[string]*Flow
	logger  *zap.Logger
}

func NewCalcHandler(states *state.Manager, sender Sender, advisor Advisor, logger *zap.Logger) *CalcHandler {
	return &CalcHandler{
		states:  states,
		sender:  sender,
		advisor: advisor,
		flows:   Flows(),
		logger:  logger,
	}
}

// StartFlow begins a calculator dialogue for the user, replacing any
// dialogue already in progress.
func (h *CalcHandler) StartFlow(chatID, userID int64, flowName string) error {
	flow, ok := h.flows[flowName]
	if !ok {
		return fmt.Errorf("%w: %s", entity.ErrUnknownFlow, flowName)
	}

	h.states.Set(userID, &state.Session{
		Flow:   flow.Name,
		Step:   0,
		Values: make(map[string]float64),
	})

	return h.sender.Send(chatID, flow.Steps[0].Prompt, nil)
}

// HandleText consumes the next answer of an active dialogue. Without an
// active dialogue it returns entity.ErrNoActiveFlow and sends nothing,
// leaving the caller to decide on a hint.
func (h *CalcHandler) HandleText(ctx context.Context, chatID, userID int64, text string) error {
	session, ok := h.states.Get(userID)
	if !ok {
		return entity.ErrNoActiveFlow
	}

	flow, ok := h.flows[session.Flow]
	if !ok {
		h.states.Delete(userID)
		return fmt.Errorf("%w: %s", entity.ErrUnknownFlow, session.Flow)
	}

	value, err := parseDecimal(text)
	if err != nil {
		h.logger.Debug("rejected calculator input",
			zap.Int64("user_id", userID),
			zap.String("flow", session.Flow),
			zap.String("text", text))
		return h.sender.Send(chatID, render.ErrNotANumber+"\n\n"+flow.Steps[session.Step].Prompt, nil)
	}

	session.Values[flow.Steps[session.Step].Field] = value
	session.Step++

	if session.Step < len(flow.Steps) {
		h.states.Set(userID, session)
		return h.sender.Send(chatID, flow.Steps[session.Step].Prompt, nil)
	}

	summary := flow.Compute(session.Values)
	h.states.Delete(userID)

	if err := h.sender.Send(chatID, summary, nil); err != nil {
		return err
	}

	return h.sender.Send(chatID, h.advice(ctx, flow), nil)
}

// Cancel drops the user's dialogue and reports whether one existed.
func (h *CalcHandler) Cancel(userID int64) bool {
	return h.states.Delete(userID)
}

func (h *CalcHandler) advice(ctx context.Context, flow *Flow) string {
	if h.advisor == nil {
		return render.AdviceFallback
	}

	ctx, cancel := context.WithTimeout(ctx, adviceTimeout)
	defer cancel()

	tip, err := h.advisor.Complete(ctx, adviceSystemPrompt,
		fmt.Sprintf("Пользователь только что рассчитал материалы: %s.", flow.Title))
	if err != nil {
		if !errors.Is(err, entity.ErrAuthKeyMissing) {
			h.logger.Warn("advice completion failed", zap.Error(err))
		}
		return render.AdviceFallback
	}

	tip = strings.TrimSpace(tip)
	if tip == "" {
		return render.AdviceFallback
	}

	return render.AdvicePrefix + tip
}
