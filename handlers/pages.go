package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"gitanime-web/config"
	"gitanime-web/extract"
	"gitanime-web/models"
	"gitanime-web/services"
	"gitanime-web/views"
)

const pageSize = 24

// PageHandler serves the catalog pages
type PageHandler struct {
	cfg     *config.Config
	backend *services.Backend
	siteCfg *services.ConfigService
	poller  *services.StatusPoller
	views   *views.Renderer
	logger  *log.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(cfg *config.Config, backend *services.Backend, siteCfg *services.ConfigService, poller *services.StatusPoller, renderer *views.Renderer, logger *log.Logger) *PageHandler {
	return &PageHandler{
		cfg:     cfg,
		backend: backend,
		siteCfg: siteCfg,
		poller:  poller,
		views:   renderer,
		logger:  logger,
	}
}

// Home handles GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.NotFound(w, r)
		return
	}

	search := r.URL.Query().Get("search")
	page := parsePage(r.URL.Query().Get("page"))
	siteCfg := h.siteCfg.Get(r.Context())

	data := views.HomeData{
		Page:   views.NewPage("Nonton Anime Subtitle Indonesia", h.cfg.SiteBaseURL+"/", siteCfg),
		Search: search,
	}

	feed, err := h.backend.LatestEpisodes(r.Context(), page, pageSize, search)
	if err != nil {
		h.logger.Error("failed to load latest episodes", "err", err)
		data.Error = services.UserMessage(err)
	} else {
		data.Episodes = feed.Episodes
		data.Pagination = feed.Pagination
		base := "/"
		if search != "" {
			base = "/?search=" + url.QueryEscape(search)
		}
		data.PrevURL, data.NextURL = pageLinks(base, feed.Pagination)
	}

	// a fresh deployment has no catalog yet; show scraping progress
	// instead of an empty grid while the backend fills up
	if err == nil && len(feed.Episodes) == 0 && search == "" {
		if status, serr := h.backend.ScrapingStatus(r.Context()); serr == nil && status.Status == models.ScrapingRunning {
			data.Scraping = status
			h.poller.Start()
		}
	}

	h.render(w, "home", data)
}

// AnimeList handles GET /anime
func (h *PageHandler) AnimeList(w http.ResponseWriter, r *http.Request) {
	filters := models.ParseFilters(r.URL.Query())
	siteCfg := h.siteCfg.Get(r.Context())

	data := views.AnimeListPageData{
		Page:    views.NewPage("Daftar Anime", h.cfg.SiteBaseURL+"/anime", siteCfg),
		Filters: filters,
	}

	list, err := h.backend.AnimeList(r.Context(), filters, pageSize)
	if err != nil {
		h.logger.Error("failed to load anime list", "err", err)
		data.Error = services.UserMessage(err)
		h.render(w, "anime", data)
		return
	}

	data.Anime = lo.Map(list.Anime, func(a models.Anime, _ int) views.AnimeCard {
		return views.AnimeCard{Anime: a, Slug: extract.AnimeSlug(a.Link)}
	})
	data.Pagination = list.Pagination
	data.Summary = list.Summary
	if list.Pagination.CurrentPage > 1 {
		data.PrevURL = "/anime?" + filters.WithPage(list.Pagination.CurrentPage-1).Encode()
	}
	if list.Pagination.CurrentPage < list.Pagination.TotalPages {
		data.NextURL = "/anime?" + filters.WithPage(list.Pagination.CurrentPage+1).Encode()
	}

	h.render(w, "anime", data)
}

// Latest handles GET /latest
func (h *PageHandler) Latest(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r.URL.Query().Get("page"))
	siteCfg := h.siteCfg.Get(r.Context())

	data := views.LatestData{
		Page: views.NewPage("Episode Terbaru", h.cfg.SiteBaseURL+"/latest", siteCfg),
	}

	feed, err := h.backend.LatestEpisodes(r.Context(), page, pageSize, "")
	if err != nil {
		h.logger.Error("failed to load latest episodes", "err", err)
		data.Error = services.UserMessage(err)
	} else {
		data.Episodes = feed.Episodes
		data.Pagination = feed.Pagination
		data.PrevURL, data.NextURL = pageLinks("/latest", feed.Pagination)
	}

	h.render(w, "latest", data)
}

// Terms handles GET /terms
func (h *PageHandler) Terms(w http.ResponseWriter, r *http.Request) {
	h.render(w, "static", views.StaticData{
		Page:    views.NewPage("Syarat & Ketentuan", h.cfg.SiteBaseURL+"/terms", h.siteCfg.Get(r.Context())),
		Heading: "Syarat & Ketentuan",
		Body:    termsBody,
	})
}

// Privacy handles GET /privacy-policy
func (h *PageHandler) Privacy(w http.ResponseWriter, r *http.Request) {
	h.render(w, "static", views.StaticData{
		Page:    views.NewPage("Kebijakan Privasi", h.cfg.SiteBaseURL+"/privacy-policy", h.siteCfg.Get(r.Context())),
		Heading: "Kebijakan Privasi",
		Body:    privacyBody,
	})
}

// NotFound renders the 404 page
func (h *PageHandler) NotFound(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	_ = h.views.Render(w, "error", views.ErrorData{
		Page:    views.Page{Title: "Halaman Tidak Ditemukan"},
		Code:    http.StatusNotFound,
		Message: "Halaman yang Anda cari tidak ditemukan.",
	})
}

// InternalError renders the 500 page, used by the recovery middleware
func (h *PageHandler) InternalError(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusInternalServerError)
	_ = h.views.Render(w, "error", views.ErrorData{
		Page:    views.Page{Title: "Terjadi Kesalahan"},
		Code:    http.StatusInternalServerError,
		Message: "Terjadi kesalahan yang tidak terduga. Silakan coba lagi.",
	})
}

func (h *PageHandler) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.views.Render(w, name, data); err != nil {
		h.logger.Error("template render failed", "page", name, "err", err)
	}
}

func parsePage(raw string) int {
	if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n > 0 {
		return n
	}
	return 1
}

// pageLinks builds prev/next links for feeds paged with a bare ?page= param
func pageLinks(base string, p models.Pagination) (prev, next string) {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	if p.CurrentPage > 1 {
		prev = base
		if p.CurrentPage-1 > 1 {
			prev = base + sep + "page=" + strconv.Itoa(p.CurrentPage-1)
		}
	}
	if p.CurrentPage < p.TotalPages {
		next = base + sep + "page=" + strconv.Itoa(p.CurrentPage+1)
	}
	return prev, next
}

const termsBody = `<p>Dengan menggunakan situs ini Anda menyetujui bahwa seluruh konten
disediakan apa adanya untuk tujuan informasi. GitAnime tidak menyimpan
berkas video apa pun di servernya sendiri.</p>`

const privacyBody = `<p>GitAnime tidak mengumpulkan data pribadi pengunjung. Preferensi
pemutar video hanya disimpan selama sesi berlangsung dan tidak pernah
dibagikan ke pihak ketiga.</p>`
