package alert

import (
	"context"
	"fmt"

	"sol-advisor/internal/dto"

	"gopkg.in/telebot.v3"
)

// TelegramNotifier delivers alerts to a fixed chat through a telegram bot.
type TelegramNotifier struct {
	bot    *telebot.Bot
	chatID int64
}

func NewTelegramNotifier(bot *telebot.Bot, chatID int64) *TelegramNotifier {
	return &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
	}
}

func (n *TelegramNotifier) Notify(_ context.Context, _ dto.SignalType, message string) error {
	if n.bot == nil {
		return fmt.Errorf("telegram bot is not configured")
	}
	_, err := n.bot.Send(&telebot.User{ID: n.chatID}, message)
	if err != nil {
		return fmt.Errorf("failed to send telegram alert: %w", err)
	}
	return nil
}
