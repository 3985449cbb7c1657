package port

import (
	"context"
	"upbot/internal/core/domain"
)

// CommandHandler responds to a single command. command is the raw token as it appeared in the
// message (e.g. "/up@mybot"), remainder is everything following it.
type CommandHandler func(ctx context.Context, update *domain.Update, command, remainder string) error

type CommandRegistry interface {
	// Register associates a handler with a command name, replacing any earlier handler for that name.
	Register(name string, handler CommandHandler)
	// Get retrieves the handler registered for a command name or returns domain.ErrCommandNotFound.
	Get(name string) (CommandHandler, error)
	// ListCommands returns the names of all registered commands.
	ListCommands() []string
}
