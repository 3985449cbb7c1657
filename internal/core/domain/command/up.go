package command

import (
	"context"
	"fmt"
	"time"
	"upbot/internal/core/domain"
	"upbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

type Up struct {
	textSender port.TextSender
	started    time.Time
	now        func() time.Time
}

func NewUp(sender port.TextSender, started time.Time) *Up {
	return &Up{textSender: sender, started: started, now: time.Now}
}

const upTemplate = "up since %s (%s)"

func (u *Up) Respond(ctx context.Context, update *domain.Update, command, _ string) error {
	l := log.With().
		Int64("updateId", update.ID).
		Int("messageId", update.Message.ID).
		Int64("chatId", update.Message.ChatID).
		Str("command", command).
		Logger()

	l.Info().Msg("handling request")

	uptime := u.now().Sub(u.started).Truncate(time.Second)

	_, err := u.textSender.SendMessageReply(ctx, update.Message,
		fmt.Sprintf(upTemplate, u.started.UTC().Format(time.RFC3339), uptime))
	if err != nil {
		l.Error().Err(err).Msg(domain.ErrSendingReplyFailed.Error())
		return err
	}

	return nil
}
