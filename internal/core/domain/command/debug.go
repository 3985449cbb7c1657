package command

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"runtime/metrics"
	"upbot/internal/core/domain"
	"upbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

type Debug struct {
	textSender port.TextSender
	cursor     func() domain.Cursor
}

// NewDebug builds the debug command. cursor reports the poll loop's current position.
func NewDebug(sender port.TextSender, cursor func() domain.Cursor) *Debug {
	return &Debug{textSender: sender, cursor: cursor}
}

const kb = 1024
const debugTemplate = `allocated mem: %d KB
goroutines: %d
heap: %d KB
stack: %d KB
update cursor: %d
compiled with %s for %s-%s
`
const metricCount = 3

func (d *Debug) Respond(ctx context.Context, update *domain.Update, command, _ string) error {
	l := log.With().
		Int("messageId", update.Message.ID).
		Int64("chatId", update.Message.ChatID).
		Str("command", command).
		Logger()

	data := make([]metrics.Sample, metricCount)
	data[0] = metrics.Sample{Name: "/memory/classes/heap/objects:bytes"}
	data[1] = metrics.Sample{Name: "/memory/classes/heap/stacks:bytes"}
	data[2] = metrics.Sample{Name: "/memory/classes/total:bytes"}

	metrics.Read(data)

	for _, sample := range data {
		l.Debug().Str("name", sample.Name).Msgf("%d", sample.Value.Uint64())
	}

	l.Info().Msg("handling request")

	var goos, goarch string
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			switch setting.Key {
			case "GOOS":
				goos = setting.Value
			case "GOARCH":
				goarch = setting.Value
			}
		}
	}

	_, err := d.textSender.SendMessageReply(ctx, update.Message,
		fmt.Sprintf(
			debugTemplate,
			data[2].Value.Uint64()/kb,
			runtime.NumGoroutine(),
			data[0].Value.Uint64()/kb,
			data[1].Value.Uint64()/kb,
			d.cursor(),
			runtime.Version(), goos, goarch,
		))
	if err != nil {
		l.Error().Err(err).Msg(domain.ErrSendingReplyFailed.Error())
		return err
	}

	return nil
}
