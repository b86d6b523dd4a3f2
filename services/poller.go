package services

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"gitanime-web/models"
)

// StatusPoller watches a long-running backend scraping job. It refetches
// the status on a fixed interval and stops itself once a terminal status
// is observed or the poller is shut down; the ticker is always released.
type StatusPoller struct {
	backend  *Backend
	logger   *log.Logger
	interval time.Duration

	mutex   sync.Mutex
	latest  models.ScrapingStatus
	cancel  context.CancelFunc
	running bool
	loopID  uint64
}

// NewStatusPoller creates a poller with the standard 2s interval
func NewStatusPoller(backend *Backend, logger *log.Logger) *StatusPoller {
	return &StatusPoller{
		backend:  backend,
		logger:   logger,
		interval: 2 * time.Second,
		latest:   models.ScrapingStatus{Status: models.ScrapingIdle},
	}
}

// Start begins polling. Calling Start while a poll loop is already
// running is a no-op, so every scrape trigger can call it safely.
func (p *StatusPoller) Start() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.running {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.running = true
	p.loopID++
	go p.loop(ctx, p.loopID)
}

// Stop cancels an active poll loop. Safe to call at any time.
func (p *StatusPoller) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.running = false
}

// Running reports whether a poll loop is active
func (p *StatusPoller) Running() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.running
}

// Latest returns the last observed status
func (p *StatusPoller) Latest() models.ScrapingStatus {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.latest
}

func (p *StatusPoller) loop(ctx context.Context, id uint64) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	defer func() {
		p.mutex.Lock()
		// a restarted poller may already own a newer loop; only the
		// current loop gets to mark the poller stopped
		if p.loopID == id {
			p.running = false
		}
		p.mutex.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			status, err := p.backend.ScrapingStatus(ctx)
			if err != nil {
				p.logger.Debug("scraping status fetch failed", "err", err)
				continue
			}
			p.mutex.Lock()
			p.latest = *status
			p.mutex.Unlock()
			if status.Terminal() {
				p.logger.Info("scraping finished", "status", status.Status)
				return
			}
		}
	}
}
