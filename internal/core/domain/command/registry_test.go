package command

import (
	"context"
	"testing"
	"upbot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls []string
}

func (r *recorder) handler(tag string) func(context.Context, *domain.Update, string, string) error {
	return func(_ context.Context, _ *domain.Update, _, _ string) error {
		r.calls = append(r.calls, tag)
		return nil
	}
}

func TestRegister(t *testing.T) {
	cr := &Registry{}
	rec := &recorder{}

	cr.Register("/test", rec.handler("test"))
	assert.Len(t, cr.commands, 1)
	assert.Contains(t, cr.commands, "test")
}

func TestRegisterLastWins(t *testing.T) {
	cr := &Registry{}
	rec := &recorder{}

	cr.Register("/up", rec.handler("first"))
	cr.Register("up", rec.handler("second"))
	cr.Register("/UP", rec.handler("third"))
	assert.Len(t, cr.commands, 1)

	handler, err := cr.Get("/up")
	require.NoError(t, err)
	require.NoError(t, handler(t.Context(), &domain.Update{}, "/up", ""))

	assert.Equal(t, []string{"third"}, rec.calls)
}

func TestGetNotRegistered(t *testing.T) {
	cr := &Registry{}

	_, err := cr.Get("test")
	require.ErrorIs(t, err, domain.ErrCommandNotFound)
}

func TestGetCommandNotFound(t *testing.T) {
	cr := &Registry{}
	rec := &recorder{}

	cr.Register("/test", rec.handler("test"))
	assert.Len(t, cr.commands, 1)

	_, err := cr.Get("/foo")
	require.ErrorIs(t, err, domain.ErrCommandNotFound)
}

func TestGetCommandFound(t *testing.T) {
	cr := &Registry{}
	rec := &recorder{}

	cr.Register("/test", rec.handler("test"))

	for _, name := range []string{"/test", "test", "/TEST"} {
		handler, err := cr.Get(name)
		require.NoError(t, err)
		require.NotNil(t, handler)
		require.NoError(t, handler(t.Context(), &domain.Update{}, name, ""))
	}

	assert.Equal(t, []string{"test", "test", "test"}, rec.calls)
}

func TestListCommands(t *testing.T) {
	cr := &Registry{}
	rec := &recorder{}

	assert.Empty(t, cr.ListCommands())

	cr.Register("/foo", rec.handler("foo"))
	cr.Register("/bar", rec.handler("bar"))
	assert.Len(t, cr.commands, 2)

	assert.Equal(t, []string{"bar", "foo"}, cr.ListCommands())
}

func TestNormalizeName(t *testing.T) {
	type TestCase struct {
		description string
		name        string
		want        string
	}

	testCases := []TestCase{
		{description: "strips command tag", name: "/up", want: "up"},
		{description: "lower cases", name: "/Up", want: "up"},
		{description: "bare name unchanged", name: "up", want: "up"},
		{description: "surrounding whitespace", name: " /up ", want: "up"},
		{description: "empty on no input", name: "", want: ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.want, NormalizeName(testCase.name))
		})
	}
}

func TestSplitBotName(t *testing.T) {
	type TestCase struct {
		description string
		token       string
		wantName    string
		wantBot     string
	}

	testCases := []TestCase{
		{description: "plain command", token: "/up", wantName: "up", wantBot: ""},
		{description: "addressed command", token: "/up@UpBot", wantName: "up", wantBot: "upbot"},
		{description: "only tag", token: "/", wantName: "", wantBot: ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			name, bot := SplitBotName(testCase.token)

			assert.Equal(t, testCase.wantName, name)
			assert.Equal(t, testCase.wantBot, bot)
		})
	}
}
