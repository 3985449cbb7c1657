package command

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"upbot/internal/core/domain"
	"upbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

type Lister interface {
	ListCommands() []string
}

type Help struct {
	textSender port.TextSender
	commands   Lister
}

func NewHelp(sender port.TextSender, commands Lister) *Help {
	return &Help{textSender: sender, commands: commands}
}

// Respond lists every registered command, or tells whether the command named in the remainder
// exists.
func (h *Help) Respond(ctx context.Context, update *domain.Update, command, remainder string) error {
	l := log.With().
		Int64("updateId", update.ID).
		Int64("chatId", update.Message.ChatID).
		Str("command", command).
		Logger()

	l.Info().Msg("handling request")

	names := h.commands.ListCommands()

	var text string
	if arg := NormalizeName(strings.TrimSpace(remainder)); arg != "" {
		if slices.Contains(names, arg) {
			text = fmt.Sprintf("/%s is available", arg)
		} else {
			text = fmt.Sprintf("unknown command /%s", arg)
		}
	} else {
		lines := make([]string, len(names))
		for i, name := range names {
			lines[i] = "/" + name
		}
		text = "available commands:\n" + strings.Join(lines, "\n")
	}

	_, err := h.textSender.SendMessageReply(ctx, update.Message, text)
	if err != nil {
		l.Error().Err(err).Msg(domain.ErrSendingReplyFailed.Error())
		return err
	}

	return nil
}
