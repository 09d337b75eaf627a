package handlers

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/legalfox/legalfox-backend/internal/entity"
)

// Message is a transport-agnostic view of an incoming update, so the
// handler logic can be tested without the Telegram API types.
type Message struct {
	ChatID       int64
	UserID       int64
	MessageID    int
	Text         string
	CallbackData string
	CallbackID   string
}

// Sender delivers a reply to a chat. markup is an optional inline
// keyboard (nil for plain text).
type Sender interface {
	Send(chatID int64, text string, markup interface{}) error
}

// parseDecimal accepts both "2.5" and "2,5" and requires a positive
// finite value.
func parseDecimal(text string) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")

	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", entity.ErrInvalidNumber, text)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return 0, fmt.Errorf("%w: %q", entity.ErrInvalidNumber, text)
	}

	return value, nil
}
