package services

import (
	"crypto/rand"
	"encoding/hex"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"gitanime-web/models"
	"gitanime-web/player"
)

// Session errors surfaced to the API handler
var (
	ErrUnknownSession = errors.New("unknown player session")
	ErrUnknownEvent   = errors.New("unknown player event type")
)

// SessionService owns the per-viewer playback sessions. The player state
// machine itself is single-threaded; this service serializes all access
// to it so concurrent widget requests cannot interleave transitions.
type SessionService struct {
	mutex    sync.Mutex
	sessions map[string]*player.Session
	logger   *log.Logger
}

// NewSessionService creates a new session service
func NewSessionService(logger *log.Logger) *SessionService {
	return &SessionService{
		sessions: make(map[string]*player.Session),
		logger:   logger,
	}
}

// Create starts a session, optionally with an initial source URL
func (s *SessionService) Create(videoURL string) (string, player.View) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	id := newSessionID()
	sess := player.NewSession()
	if videoURL != "" {
		sess.SetSource(videoURL)
	}
	s.sessions[id] = sess
	s.logger.Debug("player session created", "id", id)
	return id, sess.Snapshot()
}

// Get returns a snapshot of the session, if it exists
func (s *SessionService) Get(id string) (player.View, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return player.View{}, false
	}
	return sess.Snapshot(), true
}

// Apply runs one widget event through the session state machine and
// returns the resulting snapshot.
func (s *SessionService) Apply(id string, ev models.PlayerEvent) (player.View, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return player.View{}, ErrUnknownSession
	}

	switch ev.Type {
	case "source":
		sess.SetSource(ev.URL)
	case "playpause":
		sess.TogglePlayPause()
	case "seekstart":
		sess.SeekStart(ev.Value)
	case "seekmove":
		sess.SeekMove(ev.Value)
	case "seekcommit":
		sess.SeekCommit(ev.Value)
	case "seekack":
		sess.AckSeek()
	case "progress":
		sess.OnProgress(ev.Generation, ev.Played, ev.Loaded)
	case "volume":
		sess.SetVolume(ev.Value)
	case "mute":
		sess.ToggleMute()
	case "enterfullscreen":
		sess.EnterFullscreen()
	case "exitfullscreen":
		sess.ExitFullscreen()
	case "togglefit":
		sess.ToggleFit()
	case "landscapelock":
		sess.ToggleLandscapeLock()
	case "touch":
		sess.Touch()
	case "error":
		sess.Fail(ev.Message)
	default:
		return player.View{}, ErrUnknownEvent
	}

	return sess.Snapshot(), nil
}

// Drop removes a session when the page is torn down
func (s *SessionService) Drop(id string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.sessions, id)
}

func newSessionID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
