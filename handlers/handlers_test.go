package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"gitanime-web/config"
	"gitanime-web/services"
	"gitanime-web/views"
)

// newTestRouter wires the full route table against a stub backend, the
// same layout main() builds.
func newTestRouter(t *testing.T, backendHandler http.HandlerFunc) *mux.Router {
	t.Helper()
	r, _ := newTestSite(t, backendHandler)
	return r
}

// newTestSite is newTestRouter plus the status poller, for tests that
// assert on the poller lifecycle.
func newTestSite(t *testing.T, backendHandler http.HandlerFunc) (*mux.Router, *services.StatusPoller) {
	t.Helper()

	backendSrv := httptest.NewServer(backendHandler)
	t.Cleanup(backendSrv.Close)

	logger := log.New(io.Discard)
	cfg := &config.Config{
		Port:          "3000",
		BackendURL:    backendSrv.URL,
		SiteBaseURL:   "https://gitanime-web.vercel.app",
		SourceBaseURL: "https://v1.samehadaku.how",
		DataDir:       t.TempDir(),
		CacheTTL:      time.Minute,
	}

	backend := services.NewBackend(cfg.BackendURL, cfg.CacheTTL, logger)
	siteCfg := services.NewConfigService(backend, cfg.DataDir+"/site-config.json", logger)
	sessions := services.NewSessionService(logger)
	poller := services.NewStatusPoller(backend, logger)
	t.Cleanup(poller.Stop)
	renderer := views.New()

	pageHandler := NewPageHandler(cfg, backend, siteCfg, poller, renderer, logger)
	episodeHandler := NewEpisodeHandler(cfg, backend, siteCfg, sessions, renderer, logger)
	adminHandler := NewAdminHandler(cfg, backend, siteCfg, poller, renderer, logger)
	apiHandler := NewAPIHandler(backend, sessions, logger)
	sitemapHandler := NewSitemapHandler(cfg, backend, logger)
	legacyHandler := NewLegacyHandler()

	r := mux.NewRouter()
	r.Use(Recover(pageHandler, logger))
	r.NotFoundHandler = http.HandlerFunc(pageHandler.NotFound)

	r.HandleFunc("/", pageHandler.Home).Methods("GET")
	r.HandleFunc("/anime", pageHandler.AnimeList).Methods("GET")
	r.HandleFunc("/latest", pageHandler.Latest).Methods("GET")
	r.HandleFunc("/anime/{slug}", episodeHandler.Detail).Methods("GET")
	r.HandleFunc("/episode/{id}", episodeHandler.Episode).Methods("GET")
	r.HandleFunc("/terms", pageHandler.Terms).Methods("GET")
	r.HandleFunc("/privacy-policy", pageHandler.Privacy).Methods("GET")

	r.HandleFunc("/admin", adminHandler.Console).Methods("GET")
	r.HandleFunc("/admin/config", adminHandler.SaveConfig).Methods("POST")
	r.HandleFunc("/admin/scrape", adminHandler.TriggerScrape).Methods("POST")

	r.HandleFunc("/anime-detail", legacyHandler.AnimeDetail).Methods("GET")
	r.HandleFunc("/episode-player", legacyHandler.EpisodePlayer).Methods("GET")

	r.HandleFunc("/sitemap.xml", sitemapHandler.Index).Methods("GET")
	r.HandleFunc("/sitemap-core.xml", sitemapHandler.Core).Methods("GET")
	r.HandleFunc("/sitemap-anime-{page:[0-9]+}.xml", sitemapHandler.Anime).Methods("GET")
	r.HandleFunc("/sitemap-episodes-{page:[0-9]+}.xml", sitemapHandler.Episodes).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/scraping-status", apiHandler.ScrapingStatus).Methods("GET")
	api.HandleFunc("/player/sessions", apiHandler.CreateSession).Methods("POST")
	api.HandleFunc("/player/sessions/{id}", apiHandler.GetSession).Methods("GET")
	api.HandleFunc("/player/sessions/{id}", apiHandler.DropSession).Methods("DELETE")
	api.HandleFunc("/player/sessions/{id}/events", apiHandler.SessionEvent).Methods("POST")
	r.HandleFunc("/healthz", apiHandler.Health).Methods("GET")

	return r, poller
}

// envelope wraps a data payload the way the backend responds
func envelope(data string) string {
	return `{"success":true,"data":` + data + `}`
}

func doGet(t *testing.T, r *mux.Router, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// stubCatalog answers the backend endpoints the page handlers hit with
// a small fixed catalog.
func stubCatalog(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/latest-episodes":
			w.Write([]byte(envelope(`{"episodes":[{"id":"naruto-episode-220","title":"Naruto Episode 220","released":"2026-08-30"}],"pagination":{"currentPage":1,"totalPages":2}}`)))
		case "/api/anime-list":
			w.Write([]byte(envelope(`{"anime":[{"title":"Naruto","link":"https://v1.samehadaku.how/anime/naruto/","imageUrl":"https://img/naruto.jpg","status":"Completed"}],"pagination":{"currentPage":1,"totalPages":2},"summary":{"totalAnime":1}}`)))
		case "/api/anime-detail":
			w.Write([]byte(envelope(`{"title":"Naruto","synopsis":"Ninja.","episodes":[{"title":"Episode 220","url":"https://v1.samehadaku.how/naruto-episode-220/","date":"2026-08-30"}]}`)))
		case "/api/episode-video":
			w.Write([]byte(envelope(`{"playerOptions":[{"id":"player-option-1","text":"480p","videoUrl":"http://cdn/x480.mp4"},{"id":"player-option-3","text":"Premium 720p","videoUrl":"http://cdn/x.mp4"}]}`)))
		case "/api/config":
			w.Write([]byte(envelope(`{"playerConfig":{"autoplay":false,"quality":"auto","subtitle":true}}`)))
		case "/api/scraping-status":
			w.Write([]byte(envelope(`{"status":"idle","progress":0}`)))
		default:
			w.Write([]byte(`{"success":false,"message":"not stubbed: ` + r.URL.Path + `"}`))
		}
	}
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(t, stubCatalog(t))
	rec := doGet(t, r, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"ok"`)
}
