package keyboard

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Builder creates inline keyboards
type Builder struct{}

// NewBuilder creates a keyboard builder
func NewBuilder() *Builder {
	return &Builder{}
}

// CalcMenuKeyboard creates the calculator selection menu.
func (b *Builder) CalcMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧱 Бетон", "calc:concrete"),
			tgbotapi.NewInlineKeyboardButtonData("🏗 Стяжка", "calc:screed"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧴 Штукатурка", "calc:plaster"),
			tgbotapi.NewInlineKeyboardButtonData("🔲 Плитка", "calc:tile"),
		),
	)
}
