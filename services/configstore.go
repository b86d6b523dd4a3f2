package services

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"gitanime-web/models"
	"gitanime-web/utils"
)

// ConfigService resolves the site configuration. The backend owns the
// config; this service keeps a last-good snapshot on disk so pages keep
// their defaults when the backend is down.
type ConfigService struct {
	backend      *Backend
	snapshotFile string
	logger       *log.Logger
	mutex        sync.Mutex
}

// NewConfigService creates a new config service
func NewConfigService(backend *Backend, snapshotFile string, logger *log.Logger) *ConfigService {
	return &ConfigService{
		backend:      backend,
		snapshotFile: snapshotFile,
		logger:       logger,
	}
}

// defaultSiteConfig mirrors the defaults the backend starts with
func defaultSiteConfig() models.SiteConfig {
	return models.SiteConfig{
		SourceURL:        "https://v1.samehadaku.how/",
		ScrapingInterval: "0 * * * *",
		AutoScraping:     true,
		PlayerConfig:     models.PlayerConfig{Quality: "auto", Subtitle: true},
	}
}

// Get returns the current site configuration: backend first, then the
// on-disk snapshot, then built-in defaults. It never fails.
func (s *ConfigService) Get(ctx context.Context) models.SiteConfig {
	cfg, err := s.backend.SiteConfig(ctx)
	if err == nil {
		s.save(*cfg)
		return *cfg
	}
	s.logger.Warn("failed to fetch site config from backend", "err", err)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if utils.FileExists(s.snapshotFile) {
		var snap models.SiteConfig
		if err := utils.ReadJSON(s.snapshotFile, &snap); err == nil {
			return snap
		}
		s.logger.Warn("unreadable config snapshot, using defaults", "file", s.snapshotFile)
	}
	return defaultSiteConfig()
}

func (s *ConfigService) save(cfg models.SiteConfig) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if err := utils.WriteJSON(s.snapshotFile, cfg); err != nil {
		s.logger.Warn("failed to write config snapshot", "err", err)
	}
}
