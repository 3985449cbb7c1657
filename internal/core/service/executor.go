package service

import (
	"context"
	"strings"
	"upbot/internal/core/domain"
	"upbot/internal/core/domain/command"
	"upbot/internal/core/port"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Executor dispatches the commands of an update to the handlers of a registry. Handlers run
// synchronously on the caller's goroutine.
type Executor struct {
	registry   port.CommandRegistry
	authorizer Authorizer
	botName    string
}

// NewExecutor creates an Executor. authorizer may be nil to allow every chat. botName is the
// bot's own username, used to ignore commands addressed to other bots ("/up@otherbot").
func NewExecutor(registry port.CommandRegistry, authorizer Authorizer, botName string) *Executor {
	return &Executor{registry: registry, authorizer: authorizer, botName: botName}
}

// ExecuteUpdate runs every command found in update and returns how many reached a handler.
// Updates without message, text or entities are skipped, as are entities with a broken span.
func (e *Executor) ExecuteUpdate(ctx context.Context, update *domain.Update) int {
	if update == nil {
		return 0
	}

	l := log.With().Int64("updateId", update.ID).Logger()

	msg, err := update.CommandMessage()
	if err != nil {
		l.Debug().Err(err).Msg("skipping update")
		return 0
	}

	auth := &authorization{}
	dispatched := 0
	for span, err := range domain.ExtractCommands(msg) {
		if err != nil {
			l.Warn().Err(err).Str("text", msg.Text).Msg("skipping malformed command entity")
			continue
		}

		if e.execute(ctx, update, span.Command, span.Remainder, auth) {
			dispatched++
		}
	}

	return dispatched
}

// Execute looks up the handler for token and invokes it. Unknown commands are ignored. It reports
// whether a handler was invoked.
func (e *Executor) Execute(ctx context.Context, update *domain.Update, token, remainder string) bool {
	if update == nil {
		return false
	}

	return e.execute(ctx, update, token, remainder, &authorization{})
}

// authorization remembers the authorizer's verdict for one update, so a chat is asked (and
// possibly told off) once no matter how many commands its message holds.
type authorization struct {
	checked bool
	allowed bool
}

func (e *Executor) authorize(ctx context.Context, message *domain.Message, auth *authorization) bool {
	if e.authorizer == nil || message == nil {
		return true
	}

	if !auth.checked {
		auth.allowed = e.authorizer.IsAuthorized(ctx, message)
		auth.checked = true
	}

	return auth.allowed
}

func (e *Executor) execute(ctx context.Context, update *domain.Update, token, remainder string,
	auth *authorization) bool {
	l := log.With().
		Int64("updateId", update.ID).
		Str("command", token).
		Logger()

	name, addressee := command.SplitBotName(token)
	if addressee != "" && e.botName != "" && !strings.EqualFold(addressee, e.botName) {
		l.Debug().Str("addressee", addressee).Msg("command addressed to another bot")
		return false
	}

	handler, err := e.registry.Get(name)
	if err != nil {
		l.Debug().Err(err).Msg("no handler for command")
		return false
	}

	if !e.authorize(ctx, update.Message, auth) {
		return false
	}

	invoke(ctx, l, handler, update, token, remainder)

	return true
}

func invoke(ctx context.Context, l zerolog.Logger, handler port.CommandHandler, update *domain.Update,
	token, remainder string) {
	defer func() {
		if r := recover(); r != nil {
			l.Error().Interface("panic", r).Msg("command handler panicked")
		}
	}()

	if err := handler(ctx, update, token, remainder); err != nil {
		l.Err(err).Msg("failed to respond to command")
	}
}
