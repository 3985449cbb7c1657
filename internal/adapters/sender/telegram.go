package sender

import (
	"context"
	"fmt"
	"unicode/utf16"
	"upbot/internal/core/domain"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

//go:generate mockery --name TelegramBot

type TelegramBot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

type Telegram struct {
	bot TelegramBot
}

func NewTelegram(bot TelegramBot) *Telegram {
	return &Telegram{bot: bot}
}

// TelegramMessageLimit is the maximum message length, in UTF-16 code units, the Bot API accepts.
const TelegramMessageLimit = 4096

// SendMessageReply replies to message, splitting text into several messages if it exceeds the
// Telegram limit. It returns the id of the last message sent.
func (s *Telegram) SendMessageReply(ctx context.Context, message *domain.Message, text string) (int, error) {
	var lastID int

	for _, chunk := range splitMessage(text, TelegramMessageLimit) {
		params := &bot.SendMessageParams{
			ChatID: message.ChatID,
			Text:   chunk,
		}

		if message.ID != 0 {
			params.ReplyParameters = &models.ReplyParameters{
				MessageID: message.ID,
				ChatID:    message.ChatID,
			}
		}

		sent, err := s.bot.SendMessage(ctx, params)
		if err != nil {
			log.Error().Err(err).Int64("chatId", message.ChatID).Msg("failed to send message reply")
			return lastID, fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
		}

		if sent != nil {
			lastID = sent.ID
		}
	}

	return lastID, nil
}

// splitMessage cuts text into chunks of at most limit UTF-16 code units without splitting runes.
func splitMessage(text string, limit int) []string {
	if text == "" {
		return []string{text}
	}

	var chunks []string
	start, units := 0, 0
	for i, r := range text {
		n := utf16.RuneLen(r)
		if units+n > limit {
			chunks = append(chunks, text[start:i])
			start, units = i, 0
		}
		units += n
	}

	return append(chunks, text[start:])
}
