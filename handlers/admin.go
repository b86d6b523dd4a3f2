package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"gitanime-web/config"
	"gitanime-web/models"
	"gitanime-web/services"
	"gitanime-web/views"
)

// AdminHandler serves the admin console and its form actions
type AdminHandler struct {
	cfg     *config.Config
	backend *services.Backend
	siteCfg *services.ConfigService
	poller  *services.StatusPoller
	views   *views.Renderer
	logger  *log.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(cfg *config.Config, backend *services.Backend, siteCfg *services.ConfigService, poller *services.StatusPoller, renderer *views.Renderer, logger *log.Logger) *AdminHandler {
	return &AdminHandler{
		cfg:     cfg,
		backend: backend,
		siteCfg: siteCfg,
		poller:  poller,
		views:   renderer,
		logger:  logger,
	}
}

// Console handles GET /admin
func (h *AdminHandler) Console(w http.ResponseWriter, r *http.Request) {
	h.renderConsole(w, r, consoleMessages{Notice: r.URL.Query().Get("notice")})
}

type consoleMessages struct {
	Notice  string
	AuthErr string
	FormErr string
}

func (h *AdminHandler) renderConsole(w http.ResponseWriter, r *http.Request, msg consoleMessages) {
	data := views.AdminData{
		Page:    views.NewPage("Admin", h.cfg.SiteBaseURL+"/admin", h.siteCfg.Get(r.Context())),
		Config:  h.siteCfg.Get(r.Context()),
		Notice:  msg.Notice,
		AuthErr: msg.AuthErr,
		FormErr: msg.FormErr,
	}

	if status, err := h.backend.ScrapingStatus(r.Context()); err == nil {
		data.Status = *status
	} else {
		data.Status = h.poller.Latest()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.views.Render(w, "admin", data); err != nil {
		h.logger.Error("template render failed", "page", "admin", "err", err)
	}
}

// SaveConfig handles POST /admin/config
func (h *AdminHandler) SaveConfig(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderConsole(w, r, consoleMessages{FormErr: "Formulir tidak valid."})
		return
	}

	password := r.PostFormValue("password")
	if password == "" {
		h.renderConsole(w, r, consoleMessages{AuthErr: "Password admin wajib diisi."})
		return
	}

	cfg := h.siteCfg.Get(r.Context())
	cfg.SamehadakuURL = r.PostFormValue("samehadakuUrl")
	cfg.EnableAds = r.PostFormValue("enableAds") == "true"
	cfg.AdsConfig = models.AdsConfig{
		HeaderAd:  r.PostFormValue("headerAd"),
		SidebarAd: r.PostFormValue("sidebarAd"),
		VideoAd:   r.PostFormValue("videoAd"),
	}
	cfg.PlayerConfig.Autoplay = r.PostFormValue("autoplay") == "true"
	cfg.PlayerConfig.Subtitle = r.PostFormValue("subtitle") == "true"
	if q := r.PostFormValue("quality"); q != "" {
		cfg.PlayerConfig.Quality = q
	}

	if err := h.backend.UpdateSiteConfig(r.Context(), password, cfg); err != nil {
		h.logger.Warn("config update rejected", "err", err)
		h.renderConsole(w, r, h.failureMessages(err))
		return
	}

	http.Redirect(w, r, "/admin?notice="+notice("Konfigurasi berhasil disimpan."), http.StatusSeeOther)
}

// scrape job names as submitted by the console form
var scrapeJobs = map[string]string{
	"full":   "/api/scrape",
	"latest": "/api/scrape-latest-episodes",
	"list":   "/api/scrape-anime-list",
	"batch":  "/api/scrape",
}

// TriggerScrape handles POST /admin/scrape
func (h *AdminHandler) TriggerScrape(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderConsole(w, r, consoleMessages{FormErr: "Formulir tidak valid."})
		return
	}

	password := r.PostFormValue("password")
	if password == "" {
		h.renderConsole(w, r, consoleMessages{AuthErr: "Password admin wajib diisi."})
		return
	}

	job := r.PostFormValue("job")
	path, ok := scrapeJobs[job]
	if !ok {
		h.renderConsole(w, r, consoleMessages{FormErr: "Jenis scraping tidak dikenal."})
		return
	}

	var startPage, endPage int
	if job == "batch" {
		startPage, _ = strconv.Atoi(r.PostFormValue("startPage"))
		endPage, _ = strconv.Atoi(r.PostFormValue("endPage"))
		if startPage <= 0 || endPage < startPage {
			h.renderConsole(w, r, consoleMessages{FormErr: "Rentang halaman batch tidak valid."})
			return
		}
	}

	if err := h.backend.TriggerScrape(r.Context(), path, password, startPage, endPage); err != nil {
		h.logger.Warn("scrape trigger rejected", "job", job, "err", err)
		h.renderConsole(w, r, h.failureMessages(err))
		return
	}

	h.poller.Start()
	http.Redirect(w, r, "/admin?notice="+notice("Scraping dimulai."), http.StatusSeeOther)
}

// failureMessages maps a backend rejection onto the right console slot.
// An envelope error carries the backend's own message, usually a wrong
// password, so it lands in the auth slot.
func (h *AdminHandler) failureMessages(err error) consoleMessages {
	var envErr *services.EnvelopeError
	if errors.As(err, &envErr) {
		return consoleMessages{AuthErr: envErr.Message}
	}
	return consoleMessages{FormErr: services.UserMessage(err)}
}

func notice(msg string) string {
	return url.QueryEscape(msg)
}
