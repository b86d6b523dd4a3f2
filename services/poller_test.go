package services

import (
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitanime-web/models"
)

func TestPollerStopsOnTerminalStatus(t *testing.T) {
	var calls int64
	b, _ := testBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		n := atomic.AddInt64(&calls, 1)
		if n < 3 {
			w.Write([]byte(`{"success":true,"data":{"status":"scraping","progress":40}}`))
			return
		}
		w.Write([]byte(`{"success":true,"data":{"status":"completed","progress":100}}`))
	})

	p := NewStatusPoller(b, log.New(io.Discard))
	p.interval = 5 * time.Millisecond
	p.Start()

	require.Eventually(t, func() bool {
		return p.Latest().Status == models.ScrapingCompleted
	}, time.Second, 5*time.Millisecond)

	// the loop exits on its own after a terminal status
	require.Eventually(t, func() bool {
		return !p.Running()
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 100, p.Latest().Progress)
}

func TestPollerStartIsIdempotent(t *testing.T) {
	b, _ := testBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"status":"scraping","progress":10}}`))
	})

	p := NewStatusPoller(b, log.New(io.Discard))
	p.interval = 5 * time.Millisecond
	p.Start()
	p.Start()
	defer p.Stop()

	require.Eventually(t, func() bool {
		return p.Latest().Status == models.ScrapingRunning
	}, time.Second, 5*time.Millisecond)
}

func TestPollerStopCancelsLoop(t *testing.T) {
	b, _ := testBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"status":"scraping","progress":10}}`))
	})

	p := NewStatusPoller(b, log.New(io.Discard))
	p.interval = 5 * time.Millisecond
	p.Start()
	p.Stop()

	require.Eventually(t, func() bool {
		return !p.Running()
	}, time.Second, 5*time.Millisecond)
}

func TestPollerRestartLeavesNoOrphanLoop(t *testing.T) {
	var calls int64
	b, _ := testBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Write([]byte(`{"success":true,"data":{"status":"scraping","progress":10}}`))
	})

	p := NewStatusPoller(b, log.New(io.Discard))
	p.interval = 5 * time.Millisecond

	// the first loop's shutdown may land after the restart; a third
	// Start must not see a stale running=false and spawn a second loop
	p.Start()
	p.Stop()
	p.Start()
	time.Sleep(20 * time.Millisecond)
	p.Start()
	p.Stop()

	require.Eventually(t, func() bool {
		return !p.Running()
	}, time.Second, 5*time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	before := atomic.LoadInt64(&calls)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, before, atomic.LoadInt64(&calls), "a loop kept polling after Stop")
}
