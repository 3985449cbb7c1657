package service

import (
	"context"
	"fmt"
	"time"
	"upbot/internal/core/domain"
	"upbot/internal/core/port"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

const DefaultPollInterval = 3 * time.Second

type UpdateExecutor interface {
	ExecuteUpdate(ctx context.Context, update *domain.Update) int
}

// Poller fetches updates in a loop and feeds them to an executor. The cursor only ever moves
// forward, so an update is never handed out twice within one run. A failed fetch leaves the
// cursor where it was and the next iteration asks for the same updates again.
type Poller struct {
	source   port.UpdateSource
	executor UpdateExecutor
	interval time.Duration
	allowed  []string
	cursor   domain.Cursor
}

func NewPoller(source port.UpdateSource, executor UpdateExecutor, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	return &Poller{
		source:   source,
		executor: executor,
		interval: interval,
		allowed:  []string{domain.UpdateKindMessage},
	}
}

// Cursor returns the id of the next update the poller will ask for; zero before the first update.
func (p *Poller) Cursor() domain.Cursor {
	return p.cursor
}

// Run polls until ctx is cancelled, sleeping for the configured interval after every iteration.
func (p *Poller) Run(ctx context.Context) error {
	log.Info().Dur("interval", p.interval).Msg("polling for updates")

	for {
		if ctx.Err() != nil {
			log.Info().Int64("cursor", int64(p.cursor)).Msg("stopped polling")
			return nil
		}

		// fetch errors are logged in Poll; the sleep below is the only backoff
		_ = p.Poll(ctx)

		select {
		case <-ctx.Done():
			log.Info().Int64("cursor", int64(p.cursor)).Msg("stopped polling")
			return nil
		case <-time.After(p.interval):
		}
	}
}

// Poll runs a single iteration: fetch from the current cursor, execute every new update in order
// and move the cursor past the highest update id seen.
func (p *Poller) Poll(ctx context.Context) error {
	l := log.With().
		Str("batch", batchID()).
		Int64("cursor", int64(p.cursor)).
		Logger()

	updates, err := p.source.Fetch(ctx, p.cursor, p.allowed)
	if err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrFetchFailed, err)
		if ctx.Err() == nil {
			l.Error().Err(err).Msg("could not fetch updates")
		}

		return err
	}

	l.Debug().Int("updates", len(updates)).Msg("fetched updates")

	next := p.cursor
	for i := range updates {
		update := &updates[i]

		if next.IsSet() && domain.Cursor(update.ID) < next {
			l.Warn().Int64("updateId", update.ID).Msg("ignoring already processed update")
			continue
		}

		dispatched := p.executor.ExecuteUpdate(ctx, update)
		l.Debug().Int64("updateId", update.ID).Int("commands", dispatched).Msg("processed update")

		next = domain.Cursor(update.ID + 1)
	}

	if next != p.cursor {
		l.Debug().Int64("next", int64(next)).Msg("advancing cursor")
		p.cursor = next
	}

	return nil
}

func batchID() string {
	id, err := uuid.NewV4()
	if err != nil {
		log.Warn().Err(err).Msg("could not generate batch id")
		return ""
	}

	return id.String()
}
