package services

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitanime-web/models"
)

func TestSessionLifecycle(t *testing.T) {
	svc := NewSessionService(log.New(io.Discard))

	id, view := svc.Create("http://backend/api/video-proxy?url=http%3A%2F%2Fcdn%2Fx.mp4")
	require.NotEmpty(t, id)
	assert.Equal(t, "loading", string(view.State))

	view, err := svc.Apply(id, models.PlayerEvent{Type: "playpause"})
	require.NoError(t, err)
	assert.Equal(t, "playing", string(view.State))

	view, err = svc.Apply(id, models.PlayerEvent{Type: "volume", Value: 0.3})
	require.NoError(t, err)
	assert.InDelta(t, 0.3, view.Volume, 1e-9)

	svc.Drop(id)
	_, ok := svc.Get(id)
	assert.False(t, ok)
}

func TestSessionUnknownEventAndSession(t *testing.T) {
	svc := NewSessionService(log.New(io.Discard))
	id, _ := svc.Create("")

	_, err := svc.Apply(id, models.PlayerEvent{Type: "rewind"})
	assert.ErrorIs(t, err, ErrUnknownEvent)

	_, err = svc.Apply("nope", models.PlayerEvent{Type: "playpause"})
	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestSessionIDsAreUnique(t *testing.T) {
	svc := NewSessionService(log.New(io.Discard))
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id, _ := svc.Create("")
		require.False(t, seen[id])
		seen[id] = true
	}
}
