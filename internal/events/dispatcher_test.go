package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishInvokesSubscribedHandlers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var loginCalls, rejectCalls int
	dispatcher.Subscribe(EventLoginSucceeded, func(context.Context, Event) error {
		loginCalls++
		return nil
	})
	dispatcher.Subscribe(EventLoginSucceeded, func(context.Context, Event) error {
		loginCalls++
		return errors.New("handler failure must not stop delivery")
	})
	dispatcher.Subscribe(EventAuthRejected, func(context.Context, Event) error {
		rejectCalls++
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), New(EventLoginSucceeded, "alice", nil)))

	assert.Equal(t, 2, loginCalls)
	assert.Equal(t, 0, rejectCalls)
}

func TestNewFillsEnvelope(t *testing.T) {
	event := New(EventTokenRefreshed, "alice", TokenRefreshedPayload{})

	assert.NotEmpty(t, event.ID)
	assert.False(t, event.Timestamp.IsZero())
	assert.Equal(t, EventTokenRefreshed, event.Type)
	assert.Equal(t, "alice", event.Username)
}
