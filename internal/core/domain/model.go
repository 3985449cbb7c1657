package domain

// Cursor is the id of the next update not yet fetched. The zero value means no update has
// been seen yet and the platform picks its default starting point.
type Cursor int64

func (c Cursor) IsSet() bool {
	return c > 0
}

type EntityKind string

const (
	EntityBotCommand EntityKind = "bot_command"
	EntityMention    EntityKind = "mention"
	EntityURL        EntityKind = "url"
	EntityBold       EntityKind = "bold"
)

// UpdateKindMessage is the only update kind the poll loop asks for.
const UpdateKindMessage = "message"

type Update struct {
	ID      int64
	Message *Message
}

type Message struct {
	ID       int
	ChatID   int64
	Username string
	Text     string
	Entities []Entity
}

// Entity annotates a span of Message.Text. Offset and Length count UTF-16 code units.
type Entity struct {
	Kind   EntityKind
	Offset int
	Length int
}

// CommandSpan is a command token sliced out of a message together with everything after it.
type CommandSpan struct {
	Command   string
	Remainder string
}
