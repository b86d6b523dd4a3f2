package handlers

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/samber/lo"

	"gitanime-web/config"
	"gitanime-web/extract"
	"gitanime-web/models"
	"gitanime-web/services"
)

// sitemapPageSize caps every sitemap file well below the protocol's
// 50k-URL limit so each one stays cheap to generate on demand.
const sitemapPageSize = 50

const sitemapCacheControl = "public, s-maxage=3600, stale-while-revalidate"

// SitemapHandler serves the sitemap index and its section files
type SitemapHandler struct {
	cfg     *config.Config
	backend *services.Backend
	logger  *log.Logger
}

// NewSitemapHandler creates a new sitemap handler
func NewSitemapHandler(cfg *config.Config, backend *services.Backend, logger *log.Logger) *SitemapHandler {
	return &SitemapHandler{cfg: cfg, backend: backend, logger: logger}
}

type sitemapIndex struct {
	XMLName xml.Name     `xml:"sitemapindex"`
	Xmlns   string       `xml:"xmlns,attr"`
	Maps    []sitemapRef `xml:"sitemap"`
}

type sitemapRef struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

const sitemapXmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Index handles GET /sitemap.xml
func (h *SitemapHandler) Index(w http.ResponseWriter, r *http.Request) {
	today := time.Now().UTC().Format("2006-01-02")

	idx := sitemapIndex{
		Xmlns: sitemapXmlns,
		Maps: []sitemapRef{
			{Loc: h.cfg.SiteBaseURL + "/sitemap-core.xml", LastMod: today},
		},
	}

	for page := 1; page <= h.countPages(r, "anime"); page++ {
		idx.Maps = append(idx.Maps, sitemapRef{
			Loc:     fmt.Sprintf("%s/sitemap-anime-%d.xml", h.cfg.SiteBaseURL, page),
			LastMod: today,
		})
	}
	for page := 1; page <= h.countPages(r, "episodes"); page++ {
		idx.Maps = append(idx.Maps, sitemapRef{
			Loc:     fmt.Sprintf("%s/sitemap-episodes-%d.xml", h.cfg.SiteBaseURL, page),
			LastMod: today,
		})
	}

	h.writeXML(w, idx)
}

// Core handles GET /sitemap-core.xml, the static top-level routes
func (h *SitemapHandler) Core(w http.ResponseWriter, _ *http.Request) {
	today := time.Now().UTC().Format("2006-01-02")
	set := urlSet{Xmlns: sitemapXmlns}
	for _, entry := range []struct {
		path, freq, prio string
	}{
		{"/", "hourly", "1.0"},
		{"/anime", "daily", "0.9"},
		{"/latest", "hourly", "0.9"},
		{"/terms", "monthly", "0.3"},
		{"/privacy-policy", "monthly", "0.3"},
	} {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        h.cfg.SiteBaseURL + entry.path,
			LastMod:    today,
			ChangeFreq: entry.freq,
			Priority:   entry.prio,
		})
	}
	h.writeXML(w, set)
}

// Anime handles GET /sitemap-anime-{page}.xml
func (h *SitemapHandler) Anime(w http.ResponseWriter, r *http.Request) {
	page := parsePage(mux.Vars(r)["page"])

	f := models.DefaultFilters()
	f.Page = page
	list, err := h.backend.AnimeList(r.Context(), f, sitemapPageSize)
	if err != nil {
		h.logger.Error("sitemap anime page failed", "page", page, "err", err)
		h.writeXML(w, urlSet{Xmlns: sitemapXmlns})
		return
	}

	set := urlSet{Xmlns: sitemapXmlns}
	set.URLs = lo.Map(list.Anime, func(a models.Anime, _ int) sitemapURL {
		return sitemapURL{
			Loc:        h.cfg.SiteBaseURL + "/anime/" + extract.AnimeSlug(a.Link),
			LastMod:    dateOf(a.ScrapedAt, a.CreatedAt),
			ChangeFreq: "weekly",
			Priority:   "0.8",
		}
	})
	h.writeXML(w, set)
}

// Episodes handles GET /sitemap-episodes-{page}.xml
func (h *SitemapHandler) Episodes(w http.ResponseWriter, r *http.Request) {
	page := parsePage(mux.Vars(r)["page"])

	feed, err := h.backend.LatestEpisodes(r.Context(), page, sitemapPageSize, "")
	if err != nil {
		h.logger.Error("sitemap episode page failed", "page", page, "err", err)
		h.writeXML(w, urlSet{Xmlns: sitemapXmlns})
		return
	}

	set := urlSet{Xmlns: sitemapXmlns}
	set.URLs = lo.Map(feed.Episodes, func(ep models.Episode, _ int) sitemapURL {
		id := ep.ID
		if id == "" {
			id = extract.EpisodeID(ep.Link)
		}
		return sitemapURL{
			Loc:        h.cfg.SiteBaseURL + "/episode/" + id,
			LastMod:    dateOf(ep.Released, ep.CreatedAt),
			ChangeFreq: "weekly",
			Priority:   "0.7",
		}
	})
	h.writeXML(w, set)
}

// countPages fetches one page of the given section to learn how many
// sitemap pages it spans. Every section keeps at least one page in the
// index, even when the backend is down or the catalog is empty.
func (h *SitemapHandler) countPages(r *http.Request, section string) int {
	var p models.Pagination
	switch section {
	case "anime":
		list, err := h.backend.AnimeList(r.Context(), models.DefaultFilters(), sitemapPageSize)
		if err != nil {
			return 1
		}
		p = list.Pagination
	case "episodes":
		feed, err := h.backend.LatestEpisodes(r.Context(), 1, sitemapPageSize, "")
		if err != nil {
			return 1
		}
		p = feed.Pagination
	}
	if p.TotalPages < 1 {
		return 1
	}
	return p.TotalPages
}

// dateOf returns the first parseable timestamp as a sitemap date,
// falling back to today
func dateOf(candidates ...string) string {
	for _, raw := range candidates {
		if raw == "" {
			continue
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, raw); err == nil {
				return t.UTC().Format("2006-01-02")
			}
		}
	}
	return time.Now().UTC().Format("2006-01-02")
}

func (h *SitemapHandler) writeXML(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", sitemapCacheControl)
	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return
	}
	if err := xml.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode sitemap", "err", err)
	}
}
