package command

import (
	"fmt"
	"slices"
	"strings"
	"upbot/internal/core/domain"
	"upbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

// Registry maps command names to handlers. It is filled once at startup and only read while
// polling, so it carries no lock.
type Registry struct {
	commands map[string]port.CommandHandler
}

// Register adds a handler under name. A later registration for the same name wins.
func (r *Registry) Register(name string, handler port.CommandHandler) {
	if r.commands == nil {
		r.commands = make(map[string]port.CommandHandler)
	}

	name = NormalizeName(name)
	if _, ok := r.commands[name]; ok {
		log.Warn().Str("handler", name).Msg("replacing command handler in registry")
	} else {
		log.Info().Str("handler", name).Msg("adding command handler to registry")
	}

	r.commands[name] = handler
}

func (r *Registry) Get(name string) (port.CommandHandler, error) {
	log.Debug().Str("command", name).Msg("fetching command handler from registry")

	handler, ok := r.commands[NormalizeName(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCommandNotFound, name)
	}

	return handler, nil
}

// ListCommands returns the registered names in lexical order.
func (r *Registry) ListCommands() []string {
	keys := make([]string, 0, len(r.commands))
	for k := range r.commands {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

// NormalizeName strips the leading command tag and lower-cases name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "/"))
}

// SplitBotName splits a command token like "/up@mybot" into "up" and "mybot".
func SplitBotName(token string) (string, string) {
	name, bot, _ := strings.Cut(NormalizeName(token), "@")
	return name, bot
}
