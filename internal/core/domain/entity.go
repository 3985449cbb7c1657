package domain

import (
	"fmt"
	"iter"
	"unicode/utf16"
)

// CommandMessage returns the message of u if it can carry commands at all. The returned error
// wraps ErrSkip when the update has no message, the message has no text or no entities.
func (u *Update) CommandMessage() (*Message, error) {
	if u == nil || u.Message == nil {
		return nil, ErrNoMessage
	}

	if u.Message.Text == "" {
		return nil, ErrNoText
	}

	if len(u.Message.Entities) == 0 {
		return nil, ErrNoEntities
	}

	return u.Message, nil
}

// ExtractCommands lazily yields one CommandSpan per bot_command entity of msg, in entity order.
// Other entity kinds are skipped. An entity whose span does not fit msg.Text yields an error
// wrapping ErrInvalidEntitySpan and iteration carries on with the next entity.
//
// Entity offsets count UTF-16 code units, so they are mapped onto the UTF-8 text before slicing;
// slicing the raw bytes would cut multibyte characters apart.
func ExtractCommands(msg *Message) iter.Seq2[CommandSpan, error] {
	return func(yield func(CommandSpan, error) bool) {
		if msg == nil || msg.Text == "" {
			return
		}

		for _, entity := range msg.Entities {
			if entity.Kind != EntityBotCommand {
				continue
			}

			if !yield(sliceEntity(msg.Text, entity)) {
				return
			}
		}
	}
}

func sliceEntity(text string, entity Entity) (CommandSpan, error) {
	if entity.Offset < 0 || entity.Length < 0 {
		return CommandSpan{}, fmt.Errorf("%w: offset %d, length %d",
			ErrInvalidEntitySpan, entity.Offset, entity.Length)
	}

	start, ok := utf16ToByteIndex(text, entity.Offset)
	if !ok {
		return CommandSpan{}, fmt.Errorf("%w: offset %d, length %d",
			ErrInvalidEntitySpan, entity.Offset, entity.Length)
	}

	end, ok := utf16ToByteIndex(text, entity.Offset+entity.Length)
	if !ok {
		return CommandSpan{}, fmt.Errorf("%w: offset %d, length %d",
			ErrInvalidEntitySpan, entity.Offset, entity.Length)
	}

	return CommandSpan{Command: text[start:end], Remainder: text[end:]}, nil
}

// utf16ToByteIndex maps a position counted in UTF-16 code units onto a byte index of s.
// It reports false when pos lies beyond the end of s or between the halves of a surrogate pair.
func utf16ToByteIndex(s string, pos int) (int, bool) {
	units := 0
	for i, r := range s {
		if units == pos {
			return i, true
		}

		if units > pos {
			return 0, false
		}

		units += utf16.RuneLen(r)
	}

	if units == pos {
		return len(s), true
	}

	return 0, false
}
