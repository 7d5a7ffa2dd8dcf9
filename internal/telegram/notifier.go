// Package telegram pushes operational notifications to a reviewer chat
// through the Telegram Bot API.
package telegram

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"paidvine/backend/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier sends new-appeal summaries to a fixed ops chat.
type Notifier struct {
	BotAPI *tgbotapi.BotAPI
	ChatID int64
}

// NewNotifier creates a notifier for the given bot token and target chat.
func NewNotifier(token string, chatID int64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Printf("Telegram notifier authorized as %s", bot.Self.UserName)
	return &Notifier{BotAPI: bot, ChatID: chatID}, nil
}

// NewNotifierFromEnv builds a notifier from TELEGRAM_BOT_TOKEN and
// TELEGRAM_OPS_CHAT_ID. Returns nil when either is unset, which disables
// notifications entirely.
func NewNotifierFromEnv() *Notifier {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatIDStr := os.Getenv("TELEGRAM_OPS_CHAT_ID")
	if token == "" || chatIDStr == "" {
		return nil
	}

	chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		log.Printf("WARNING: Invalid TELEGRAM_OPS_CHAT_ID %q: %v", chatIDStr, err)
		return nil
	}

	notifier, err := NewNotifier(token, chatID)
	if err != nil {
		log.Printf("WARNING: Could not start Telegram notifier: %v", err)
		return nil
	}
	return notifier
}

// NotifyNewAppeal posts a ticket summary to the ops chat. Sending happens
// in a goroutine so the submit path never waits on the Telegram API.
func (n *Notifier) NotifyNewAppeal(ticket *models.AppealTicket) {
	text := fmt.Sprintf(
		"🎫 *New appeal ticket*\nSurvey: %s\nUser: %s\nConfidence: %d/100\nPriority: %s",
		ticket.SurveyTitle,
		ticket.UserEmail,
		ticket.AIConfidence,
		ticket.Priority,
	)

	msg := tgbotapi.NewMessage(n.ChatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	go func() {
		if _, err := n.BotAPI.Send(msg); err != nil {
			log.Printf("ERROR: Failed to send appeal notification for ticket %s: %v", ticket.ID, err)
		}
	}()
}
