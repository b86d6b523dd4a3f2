package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"gitanime-web/config"
	"gitanime-web/handlers"
	"gitanime-web/services"
	"gitanime-web/utils"
	"gitanime-web/views"
)

func main() {
	cfg := config.LoadConfig()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "gitanime",
	})
	if cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	if err := utils.EnsureDir(cfg.DataDir); err != nil {
		logger.Fatal("failed to create data directory", "dir", cfg.DataDir, "err", err)
	}

	// Services
	backend := services.NewBackend(cfg.BackendURL, cfg.CacheTTL, logger)
	siteCfg := services.NewConfigService(backend, filepath.Join(cfg.DataDir, "site-config.json"), logger)
	sessions := services.NewSessionService(logger)
	poller := services.NewStatusPoller(backend, logger)
	defer poller.Stop()

	renderer := views.New()

	// Handlers
	pageHandler := handlers.NewPageHandler(cfg, backend, siteCfg, poller, renderer, logger)
	episodeHandler := handlers.NewEpisodeHandler(cfg, backend, siteCfg, sessions, renderer, logger)
	adminHandler := handlers.NewAdminHandler(cfg, backend, siteCfg, poller, renderer, logger)
	apiHandler := handlers.NewAPIHandler(backend, sessions, logger)
	sitemapHandler := handlers.NewSitemapHandler(cfg, backend, logger)
	legacyHandler := handlers.NewLegacyHandler()

	// Router
	r := mux.NewRouter()
	r.Use(handlers.Logging(logger))
	r.Use(handlers.Recover(pageHandler, logger))
	r.NotFoundHandler = http.HandlerFunc(pageHandler.NotFound)

	// Pages
	r.HandleFunc("/", pageHandler.Home).Methods("GET")
	r.HandleFunc("/anime", pageHandler.AnimeList).Methods("GET")
	r.HandleFunc("/latest", pageHandler.Latest).Methods("GET")
	r.HandleFunc("/anime/{slug}", episodeHandler.Detail).Methods("GET")
	r.HandleFunc("/episode/{id}", episodeHandler.Episode).Methods("GET")
	r.HandleFunc("/terms", pageHandler.Terms).Methods("GET")
	r.HandleFunc("/privacy-policy", pageHandler.Privacy).Methods("GET")

	// Admin console
	r.HandleFunc("/admin", adminHandler.Console).Methods("GET")
	r.HandleFunc("/admin/config", adminHandler.SaveConfig).Methods("POST")
	r.HandleFunc("/admin/scrape", adminHandler.TriggerScrape).Methods("POST")

	// Legacy query-parameter routes
	r.HandleFunc("/anime-detail", legacyHandler.AnimeDetail).Methods("GET")
	r.HandleFunc("/episode-player", legacyHandler.EpisodePlayer).Methods("GET")

	// Sitemaps
	r.HandleFunc("/sitemap.xml", sitemapHandler.Index).Methods("GET")
	r.HandleFunc("/sitemap-core.xml", sitemapHandler.Core).Methods("GET")
	r.HandleFunc("/sitemap-anime-{page:[0-9]+}.xml", sitemapHandler.Anime).Methods("GET")
	r.HandleFunc("/sitemap-episodes-{page:[0-9]+}.xml", sitemapHandler.Episodes).Methods("GET")

	// JSON API
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/scraping-status", apiHandler.ScrapingStatus).Methods("GET")
	api.HandleFunc("/player/sessions", apiHandler.CreateSession).Methods("POST")
	api.HandleFunc("/player/sessions/{id}", apiHandler.GetSession).Methods("GET")
	api.HandleFunc("/player/sessions/{id}", apiHandler.DropSession).Methods("DELETE")
	api.HandleFunc("/player/sessions/{id}/events", apiHandler.SessionEvent).Methods("POST")
	r.HandleFunc("/healthz", apiHandler.Health).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      c.Handler(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "backend", cfg.BackendURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", "err", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
}
