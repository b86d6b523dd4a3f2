// Package views renders the site's HTML pages. Templates are compiled
// once at startup; every page shares the layout shell.
package views

import (
	"html/template"
	"io"

	"gitanime-web/models"
)

// Renderer holds the compiled page templates
type Renderer struct {
	tpls map[string]*template.Template
}

// New compiles all page templates
func New() *Renderer {
	pages := map[string]string{
		"home":    homeTpl,
		"anime":   animeListTpl,
		"latest":  latestTpl,
		"detail":  detailTpl,
		"episode": episodeTpl,
		"admin":   adminTpl,
		"static":  staticTpl,
		"error":   errorTpl,
	}

	r := &Renderer{tpls: make(map[string]*template.Template, len(pages))}
	for name, src := range pages {
		t := template.Must(template.New("layout").Parse(layoutTpl))
		template.Must(t.Parse(src))
		r.tpls[name] = t
	}
	return r
}

// Render writes the named page. Must only be called with a name passed
// to New; an unknown name is a programming error and panics early.
func (r *Renderer) Render(w io.Writer, name string, data interface{}) error {
	t, ok := r.tpls[name]
	if !ok {
		panic("views: unknown template " + name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// Page carries the fields the layout shell needs on every page
type Page struct {
	Title     string
	Canonical string
	ShowAds   bool
	HeaderAd  template.HTML
	SidebarAd template.HTML
	VideoAd   template.HTML
}

// NewPage builds the layout fields, wiring the configured ad slots in
// when ads are enabled.
func NewPage(title, canonical string, cfg models.SiteConfig) Page {
	p := Page{Title: title, Canonical: canonical}
	if cfg.EnableAds {
		p.ShowAds = true
		p.HeaderAd = template.HTML(cfg.AdsConfig.HeaderAd)
		p.SidebarAd = template.HTML(cfg.AdsConfig.SidebarAd)
		p.VideoAd = template.HTML(cfg.AdsConfig.VideoAd)
	}
	return p
}

// HomeData renders the home / search page
type HomeData struct {
	Page
	Search     string
	Episodes   []models.Episode
	Pagination models.Pagination
	PrevURL    string
	NextURL    string
	Scraping   *models.ScrapingStatus
	Error      string
}

// AnimeCard is one catalog entry with its derived route slug
type AnimeCard struct {
	models.Anime
	Slug string
}

// AnimeListPageData renders the full catalog page
type AnimeListPageData struct {
	Page
	Filters    models.Filters
	Anime      []AnimeCard
	Pagination models.Pagination
	Summary    models.CatalogSummary
	PrevURL    string
	NextURL    string
	Error      string
}

// LatestData renders the latest-episodes feed
type LatestData struct {
	Page
	Episodes   []models.Episode
	Pagination models.Pagination
	PrevURL    string
	NextURL    string
	Error      string
}

// EpisodeLink is one episode row on the detail page, keyed by route id
type EpisodeLink struct {
	Title string
	ID    string
	Date  string
}

// DetailData renders the anime detail page
type DetailData struct {
	Page
	Detail   *models.AnimeDetail
	Episodes []EpisodeLink
	Error    string
}

// OptionView is one quality button on the player page
type OptionView struct {
	models.PlayerOption
	ProxyURL string
	Active   bool
}

// EpisodeData renders the player page
type EpisodeData struct {
	Page
	EpisodeTitle string
	EpisodeID    string
	SessionID    string
	VideoURL     string // proxied URL of the selected option
	Options      []OptionView
	Autoplay     bool
	Error        string
}

// AdminData renders the admin console
type AdminData struct {
	Page
	Config  models.SiteConfig
	Status  models.ScrapingStatus
	Notice  string
	AuthErr string
	FormErr string
}

// StaticData renders the terms / privacy pages
type StaticData struct {
	Page
	Heading string
	Body    template.HTML
}

// ErrorData renders the 404/500 pages
type ErrorData struct {
	Page
	Code    int
	Message string
}
