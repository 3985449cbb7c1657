package command

import (
	"context"
	"errors"
	"strings"
	"testing"
	"upbot/internal/core/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendMessageReply(ctx context.Context, message *domain.Message, text string) (int, error) {
	args := m.Called(ctx, message, text)
	return args.Int(0), args.Error(1)
}

func newUpdate() *domain.Update {
	return &domain.Update{ID: 7, Message: &domain.Message{ID: 123, ChatID: 456}}
}

func TestDebug_Respond_SendsDebugInfo(t *testing.T) {
	mockSender := new(MockSender)
	debugCmd := NewDebug(mockSender, func() domain.Cursor { return 42 })

	update := newUpdate()

	mockSender.
		On(
			"SendMessageReply",
			mock.Anything,
			update.Message,
			mock.MatchedBy(func(text string) bool {
				return strings.Contains(text, "allocated mem:") &&
					strings.Contains(text, "goroutines:") &&
					strings.Contains(text, "heap:") &&
					strings.Contains(text, "stack:") &&
					strings.Contains(text, "update cursor: 42") &&
					strings.Contains(text, "compiled with")
			}),
		).
		Return(1, nil)

	err := debugCmd.Respond(t.Context(), update, "/debug", "")
	require.NoError(t, err)
	mockSender.AssertExpectations(t)
}

func TestDebug_Respond_SendFails(t *testing.T) {
	mockSender := new(MockSender)
	debugCmd := NewDebug(mockSender, func() domain.Cursor { return 0 })

	update := newUpdate()
	sendErr := errors.New("fail")
	mockSender.On("SendMessageReply", mock.Anything, update.Message, mock.Anything).
		Return(0, sendErr).Once()

	err := debugCmd.Respond(t.Context(), update, "/debug", "")
	require.ErrorIs(t, err, sendErr)
	mockSender.AssertExpectations(t)
}
