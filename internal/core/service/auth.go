package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"upbot/internal/core/domain"
	"upbot/internal/core/port"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Authorizer interface {
	IsAuthorized(ctx context.Context, message *domain.Message) bool
}

// ChatAuthorizer allows commands from the configured chats only. An empty allowlist allows every chat.
type ChatAuthorizer struct {
	allowlist     []int64
	adminUsername string
	sender        port.TextSender
}

func NewAuthorizer(sender port.TextSender) (*ChatAuthorizer, error) {
	var list []int64

	err := viper.UnmarshalKey("telegram.allowed_chat_ids", &list)
	if err != nil {
		return nil, errors.New("failed to load allowed chat IDs")
	}

	return &ChatAuthorizer{
		allowlist:     list,
		adminUsername: viper.GetString("telegram.admin_username"),
		sender:        sender,
	}, nil
}

const forbidden = "You are not authorized to use this bot. Please contact @%s with this ID to get access: %d"

func (a *ChatAuthorizer) IsAuthorized(ctx context.Context, message *domain.Message) bool {
	if len(a.allowlist) == 0 || slices.Contains(a.allowlist, message.ChatID) {
		return true
	}

	log.Info().Int64("chatId", message.ChatID).Msg("rejecting command from unauthorized chat")

	_, err := a.sender.SendMessageReply(ctx, message,
		fmt.Sprintf(forbidden, a.adminUsername, message.ChatID))
	if err != nil {
		log.Err(err).Msg("failed to send unauthorized warning")
	}

	return false
}
