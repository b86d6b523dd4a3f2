package player

import "time"

// State is the top-level playback state of a session
type State string

const (
	StateIdle    State = "idle"    // no source set
	StateLoading State = "loading" // source set, not yet playing
	StatePlaying State = "playing"
	StatePaused  State = "paused"
	StateErrored State = "errored"
)

// controlsGrace is how long the on-screen controls stay visible after
// the last input while the video is playing.
const controlsGrace = 2500 * time.Millisecond

// OrientationLocker is the optional platform capability used by the
// landscape-lock feature. Failures are swallowed, the lock is a
// best-effort enhancement.
type OrientationLocker interface {
	LockLandscape() error
	Unlock() error
}

// Session is the playback state machine for one video element. It is
// driven from a single event loop and is deliberately not safe for
// concurrent use; callers serialize access (see services.SessionService).
//
// Volume, mute and the fullscreen fit mode survive source switches
// within a session; position and playing state do not.
type Session struct {
	now         func() time.Time
	orientation OrientationLocker

	state      State
	videoURL   string
	generation uint64

	playing     bool
	volume      float64
	muted       bool
	played      float64
	loaded      float64
	seeking     bool
	awaitingAck bool

	fullscreen      bool
	fitContain      bool
	landscapeLocked bool

	controlsDeadline time.Time
	errorMessage     string
}

// Option configures a new session
type Option func(*Session)

// WithClock injects the time source, used by tests
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithOrientation attaches the platform orientation capability
func WithOrientation(o OrientationLocker) Option {
	return func(s *Session) { s.orientation = o }
}

// NewSession creates an idle session with the default volume
func NewSession(opts ...Option) *Session {
	s := &Session{
		now:        time.Now,
		state:      StateIdle,
		volume:     0.8,
		fitContain: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetSource switches the active stream URL. Position, playing state and
// any in-flight seek are reset; volume, mute and fit mode are kept. The
// generation counter is bumped so progress reports for the previous
// source are discarded.
func (s *Session) SetSource(url string) {
	s.generation++
	s.videoURL = url
	s.playing = false
	s.played = 0
	s.loaded = 0
	s.seeking = false
	s.awaitingAck = false
	s.errorMessage = ""
	if url == "" {
		s.state = StateIdle
	} else {
		s.state = StateLoading
	}
}

// Generation identifies the current source; progress reports must carry it.
func (s *Session) Generation() uint64 {
	return s.generation
}

// TogglePlayPause flips between playing and paused. No effect without a
// source or in the errored state.
func (s *Session) TogglePlayPause() {
	if s.state == StateIdle || s.state == StateErrored {
		return
	}
	s.playing = !s.playing
	if s.playing {
		s.state = StatePlaying
		s.controlsDeadline = s.now().Add(controlsGrace)
	} else {
		s.state = StatePaused
	}
}

// SeekStart begins a seek gesture at the given target fraction. While
// the gesture is active, progress reports no longer move the position.
func (s *Session) SeekStart(fraction float64) {
	if s.state == StateIdle {
		return
	}
	s.seeking = true
	s.played = clampFraction(fraction)
}

// SeekMove updates the displayed position during an active gesture.
// Purely visual, nothing is committed to the underlying player.
func (s *Session) SeekMove(fraction float64) {
	if !s.seeking {
		return
	}
	s.played = clampFraction(fraction)
}

// SeekCommit releases the gesture and issues the actual seek. Progress
// reports stay suppressed until AckSeek arrives from the player's own
// seek-completion callback, so the position cannot visibly jump back.
func (s *Session) SeekCommit(fraction float64) {
	if s.state == StateIdle {
		return
	}
	s.played = clampFraction(fraction)
	s.seeking = true
	s.awaitingAck = true
}

// AckSeek is the player's seek-completion callback
func (s *Session) AckSeek() {
	s.seeking = false
	s.awaitingAck = false
}

// OnProgress is the authoritative position update path. Reports from a
// superseded source generation are discarded entirely; reports during a
// seek gesture update only the buffered fraction.
func (s *Session) OnProgress(generation uint64, played, loaded float64) {
	if generation != s.generation {
		return
	}
	s.loaded = clampFraction(loaded)
	if s.seeking || s.awaitingAck {
		return
	}
	s.played = clampFraction(played)
}

// SetVolume clamps the volume to [0,1]. Volume zero is a muted state;
// raising the volume again does not unmute, that takes ToggleMute.
func (s *Session) SetVolume(v float64) {
	s.volume = clampFraction(v)
	if s.volume == 0 {
		s.muted = true
	}
}

// ToggleMute flips the mute flag independently of the volume level
func (s *Session) ToggleMute() {
	s.muted = !s.muted
}

// EffectiveVolume is what the video element actually plays at
func (s *Session) EffectiveVolume() float64 {
	if s.muted {
		return 0
	}
	return s.volume
}

// EnterFullscreen switches to fullscreen. The fit mode resets to
// contain (letterboxed) and the controls get a fresh grace period.
func (s *Session) EnterFullscreen() {
	s.fullscreen = true
	s.fitContain = true
	s.controlsDeadline = s.now().Add(controlsGrace)
}

// ExitFullscreen leaves fullscreen and releases any orientation lock
func (s *Session) ExitFullscreen() {
	s.fullscreen = false
	if s.landscapeLocked && s.orientation != nil {
		_ = s.orientation.Unlock()
	}
	s.landscapeLocked = false
}

// ToggleFit flips between letterboxed (contain) and cropped (cover)
// scaling. Only meaningful while fullscreen; playback is not interrupted.
func (s *Session) ToggleFit() {
	if !s.fullscreen {
		return
	}
	s.fitContain = !s.fitContain
}

// ToggleLandscapeLock requests a landscape orientation lock, entering
// fullscreen first when needed. Unsupported platforms fail silently.
func (s *Session) ToggleLandscapeLock() {
	if !s.fullscreen {
		s.EnterFullscreen()
	}
	if s.orientation == nil {
		return
	}
	if s.landscapeLocked {
		if err := s.orientation.Unlock(); err == nil {
			s.landscapeLocked = false
		}
		return
	}
	if err := s.orientation.LockLandscape(); err == nil {
		s.landscapeLocked = true
	}
}

// Touch registers a control-visibility-triggering input (pointer move,
// tap, click) and re-arms the auto-hide timer.
func (s *Session) Touch() {
	s.controlsDeadline = s.now().Add(controlsGrace)
}

// ControlsVisible reports whether the on-screen controls should render.
// While paused they stay visible indefinitely.
func (s *Session) ControlsVisible() bool {
	if !s.playing {
		return true
	}
	return s.now().Before(s.controlsDeadline)
}

// Fail records a load/decode error from the underlying player. Recovery
// is manual only: a new SetSource (full reload) leaves the state.
func (s *Session) Fail(message string) {
	s.state = StateErrored
	s.playing = false
	s.errorMessage = message
}

// View is the JSON snapshot of a session returned to the page widget
type View struct {
	State           State   `json:"state"`
	VideoURL        string  `json:"videoUrl,omitempty"`
	Generation      uint64  `json:"generation"`
	Playing         bool    `json:"playing"`
	Volume          float64 `json:"volume"`
	Muted           bool    `json:"muted"`
	EffectiveVolume float64 `json:"effectiveVolume"`
	Played          float64 `json:"played"`
	Loaded          float64 `json:"loaded"`
	Seeking         bool    `json:"seeking"`
	Fullscreen      bool    `json:"fullscreen"`
	FitContain      bool    `json:"fitContain"`
	LandscapeLocked bool    `json:"landscapeLocked"`
	ControlsVisible bool    `json:"controlsVisible"`
	Error           string  `json:"error,omitempty"`
}

// Snapshot returns the current state for the wire
func (s *Session) Snapshot() View {
	return View{
		State:           s.state,
		VideoURL:        s.videoURL,
		Generation:      s.generation,
		Playing:         s.playing,
		Volume:          s.volume,
		Muted:           s.muted,
		EffectiveVolume: s.EffectiveVolume(),
		Played:          s.played,
		Loaded:          s.loaded,
		Seeking:         s.seeking,
		Fullscreen:      s.fullscreen,
		FitContain:      s.fitContain,
		LandscapeLocked: s.landscapeLocked,
		ControlsVisible: s.ControlsVisible(),
		Error:           s.errorMessage,
	}
}

func clampFraction(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
