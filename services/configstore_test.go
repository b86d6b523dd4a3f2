package services

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestConfigServiceBackendFirst(t *testing.T) {
	b, _ := testBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"samehadakuUrl":"https://v1.samehadaku.how","enableAds":true,"playerConfig":{"autoplay":true,"quality":"720p","subtitle":true}}}`))
	})

	svc := NewConfigService(b, filepath.Join(t.TempDir(), "site-config.json"), log.New(io.Discard))
	cfg := svc.Get(context.Background())
	assert.True(t, cfg.EnableAds)
	assert.Equal(t, "720p", cfg.PlayerConfig.Quality)
}

func TestConfigServiceSnapshotFallback(t *testing.T) {
	snapshot := filepath.Join(t.TempDir(), "site-config.json")

	b, srv := testBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"enableAds":true,"playerConfig":{"quality":"1080p"}}}`))
	})
	svc := NewConfigService(b, snapshot, log.New(io.Discard))

	first := svc.Get(context.Background())
	assert.Equal(t, "1080p", first.PlayerConfig.Quality)

	srv.Close()
	again := svc.Get(context.Background())
	assert.Equal(t, first, again, "snapshot must survive a backend outage")
}

func TestConfigServiceDefaultsWithoutSnapshot(t *testing.T) {
	b, srv := testBackend(t, func(w http.ResponseWriter, _ *http.Request) {})
	srv.Close()

	svc := NewConfigService(b, filepath.Join(t.TempDir(), "site-config.json"), log.New(io.Discard))
	cfg := svc.Get(context.Background())
	assert.Equal(t, "auto", cfg.PlayerConfig.Quality)
	assert.True(t, cfg.AutoScraping)
	assert.Equal(t, "https://v1.samehadaku.how/", cfg.SourceURL)
}
