package port

import (
	"context"
	"upbot/internal/core/domain"
)

type UpdateSource interface {
	// Fetch returns pending updates with an id of at least cursor, ascending by id. An unset cursor
	// leaves the starting point to the platform. allowed restricts the update kinds returned.
	Fetch(ctx context.Context, cursor domain.Cursor, allowed []string) ([]domain.Update, error)
}
