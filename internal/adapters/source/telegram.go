package source

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"
	"upbot/internal/core/domain"

	"github.com/mymmrac/telego"
	"github.com/rs/zerolog/log"
)

//go:generate mockery --name UpdatesGetter

// UpdatesGetter is the part of *telego.Bot the source needs.
type UpdatesGetter interface {
	GetUpdates(ctx context.Context, params *telego.GetUpdatesParams) ([]telego.Update, error)
}

// Telegram fetches updates through the Bot API getUpdates method with an explicit offset.
type Telegram struct {
	bot     UpdatesGetter
	timeout time.Duration
	limit   int
}

// NewTelegram creates an update source. timeout is the long polling timeout, zero means short
// polling. limit caps the number of updates per call, zero leaves it to the platform.
func NewTelegram(bot UpdatesGetter, timeout time.Duration, limit int) *Telegram {
	return &Telegram{bot: bot, timeout: timeout, limit: limit}
}

func (t *Telegram) Fetch(ctx context.Context, cursor domain.Cursor, allowed []string) ([]domain.Update, error) {
	params := &telego.GetUpdatesParams{
		Limit:          t.limit,
		Timeout:        int(t.timeout / time.Second),
		AllowedUpdates: allowed,
	}

	if cursor.IsSet() {
		params.Offset = int(cursor)
	}

	log.Debug().Int("offset", params.Offset).Strs("allowed", allowed).Msg("requesting updates")

	updates, err := t.bot.GetUpdates(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("telegram getUpdates: %w", err)
	}

	result := make([]domain.Update, 0, len(updates))
	for _, u := range updates {
		result = append(result, toDomainUpdate(u))
	}

	slices.SortStableFunc(result, func(a, b domain.Update) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return result, nil
}

func toDomainUpdate(u telego.Update) domain.Update {
	update := domain.Update{ID: int64(u.UpdateID)}
	if u.Message == nil {
		return update
	}

	// captions are not message text; a photo with a "/command" caption is skipped
	msg := u.Message
	update.Message = &domain.Message{
		ID:       msg.MessageID,
		ChatID:   msg.Chat.ID,
		Username: getUserNameOrFirstName(msg.From),
		Text:     msg.Text,
		Entities: toDomainEntities(msg.Entities),
	}

	return update
}

func toDomainEntities(entities []telego.MessageEntity) []domain.Entity {
	if len(entities) == 0 {
		return nil
	}

	result := make([]domain.Entity, len(entities))
	for i, e := range entities {
		result[i] = domain.Entity{
			Kind:   domain.EntityKind(e.Type),
			Offset: e.Offset,
			Length: e.Length,
		}
	}

	return result
}

func getUserNameOrFirstName(user *telego.User) string {
	if user == nil {
		return ""
	}

	if user.Username == "" {
		return user.FirstName
	}

	return "@" + user.Username
}
