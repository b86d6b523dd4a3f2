package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/samber/lo"

	"gitanime-web/config"
	"gitanime-web/extract"
	"gitanime-web/models"
	"gitanime-web/player"
	"gitanime-web/services"
	"gitanime-web/views"
)

// EpisodeHandler serves the anime detail and episode player pages
type EpisodeHandler struct {
	cfg      *config.Config
	backend  *services.Backend
	siteCfg  *services.ConfigService
	sessions *services.SessionService
	views    *views.Renderer
	logger   *log.Logger
}

// NewEpisodeHandler creates a new episode handler
func NewEpisodeHandler(cfg *config.Config, backend *services.Backend, siteCfg *services.ConfigService, sessions *services.SessionService, renderer *views.Renderer, logger *log.Logger) *EpisodeHandler {
	return &EpisodeHandler{
		cfg:      cfg,
		backend:  backend,
		siteCfg:  siteCfg,
		sessions: sessions,
		views:    renderer,
		logger:   logger,
	}
}

// Detail handles GET /anime/{slug}
func (h *EpisodeHandler) Detail(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	siteCfg := h.siteCfg.Get(r.Context())

	data := views.DetailData{
		Page: views.NewPage("Detail Anime", h.cfg.SiteBaseURL+"/anime/"+slug, siteCfg),
	}

	sourceURL := extract.BuildAnimeURL(h.cfg.SourceBaseURL, slug)
	detail, err := h.backend.AnimeDetail(r.Context(), sourceURL)
	if err != nil {
		h.logger.Error("failed to load anime detail", "slug", slug, "err", err)
		data.Error = services.UserMessage(err)
		h.render(w, "detail", data)
		return
	}

	if detail.ImageURL == "" {
		detail.ImageURL = h.lookupPoster(r.Context(), detail.Title)
	}

	data.Page.Title = detail.Title
	data.Detail = detail
	data.Episodes = lo.Map(detail.Episodes, func(ep models.EpisodeRef, _ int) views.EpisodeLink {
		return views.EpisodeLink{Title: ep.Title, ID: extract.EpisodeID(ep.URL), Date: ep.Date}
	})

	h.render(w, "detail", data)
}

// Episode handles GET /episode/{id}
func (h *EpisodeHandler) Episode(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	title := r.URL.Query().Get("title")
	if title == "" {
		title = id
	}
	siteCfg := h.siteCfg.Get(r.Context())

	data := views.EpisodeData{
		Page:         views.NewPage(title, h.cfg.SiteBaseURL+"/episode/"+id, siteCfg),
		EpisodeTitle: title,
		EpisodeID:    id,
		Autoplay:     siteCfg.PlayerConfig.Autoplay,
	}

	sourceURL := extract.BuildEpisodeURL(h.cfg.SourceBaseURL, id)
	video, err := h.backend.EpisodeVideo(r.Context(), sourceURL)
	if err != nil {
		h.logger.Error("failed to load episode video", "id", id, "err", err)
		data.Error = services.UserMessage(err)
		h.render(w, "episode", data)
		return
	}

	selected := player.SelectDefault(video.PlayerOptions, siteCfg.PlayerConfig.Quality)
	switch {
	case selected != nil:
		data.VideoURL = player.ProxiedURL(h.backend.BaseURL(), selected.VideoURL)
	case video.URL != "":
		data.VideoURL = player.ProxiedURL(h.backend.BaseURL(), video.URL)
	}

	data.Options = lo.Map(video.PlayerOptions, func(opt models.PlayerOption, _ int) views.OptionView {
		v := views.OptionView{PlayerOption: opt}
		if opt.VideoURL != "" {
			v.ProxyURL = player.ProxiedURL(h.backend.BaseURL(), opt.VideoURL)
			v.Active = v.ProxyURL == data.VideoURL
		}
		return v
	})

	sessionID, _ := h.sessions.Create(data.VideoURL)
	data.SessionID = sessionID

	h.render(w, "episode", data)
}

// lookupPoster searches the catalog for a matching title when the
// detail response comes back without an image.
func (h *EpisodeHandler) lookupPoster(ctx context.Context, title string) string {
	if title == "" {
		return ""
	}
	f := models.DefaultFilters()
	f.Search = title
	list, err := h.backend.AnimeList(ctx, f, 1)
	if err != nil || len(list.Anime) == 0 {
		return ""
	}
	hit := list.Anime[0]
	if strings.Contains(strings.ToLower(hit.Title), strings.ToLower(title)) ||
		strings.Contains(strings.ToLower(title), strings.ToLower(hit.Title)) {
		return hit.ImageURL
	}
	return ""
}

func (h *EpisodeHandler) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.views.Render(w, name, data); err != nil {
		h.logger.Error("template render failed", "page", name, "err", err)
	}
}
