package handlers

import (
	"net/http"
	"net/url"

	"gitanime-web/extract"
)

// LegacyHandler redirects the old query-parameter routes to their
// path-based successors so previously indexed links keep working.
type LegacyHandler struct{}

// NewLegacyHandler creates a new legacy redirect handler
func NewLegacyHandler() *LegacyHandler {
	return &LegacyHandler{}
}

// AnimeDetail handles GET /anime-detail?url=...
func (h *LegacyHandler) AnimeDetail(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("url")
	if raw == "" {
		http.Redirect(w, r, "/", http.StatusMovedPermanently)
		return
	}
	http.Redirect(w, r, "/anime/"+extract.AnimeSlug(raw), http.StatusMovedPermanently)
}

// EpisodePlayer handles GET /episode-player?url=...
func (h *LegacyHandler) EpisodePlayer(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("url")
	if raw == "" {
		http.Redirect(w, r, "/", http.StatusMovedPermanently)
		return
	}
	target := "/episode/" + extract.EpisodeID(raw)
	if title := r.URL.Query().Get("title"); title != "" {
		target += "?title=" + url.QueryEscape(title)
	}
	http.Redirect(w, r, target, http.StatusMovedPermanently)
}
