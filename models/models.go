package models

import "encoding/json"

// Envelope is the response wrapper every backend endpoint uses.
// Data stays raw until the caller knows which payload to decode into.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Anime represents a single catalog entry from the anime list
type Anime struct {
	Title     string   `json:"title"`
	Link      string   `json:"link"` // absolute URL on the source site
	ImageURL  string   `json:"imageUrl,omitempty"`
	Status    string   `json:"status,omitempty"`
	Type      string   `json:"type,omitempty"`
	Score     float64  `json:"score,omitempty"`
	Genres    []string `json:"genres,omitempty"`
	ScrapedAt string   `json:"scrapedAt,omitempty"`
	CreatedAt string   `json:"createdAt,omitempty"`
}

// Episode represents one entry of the latest-episodes feed
type Episode struct {
	ID        string `json:"id"` // route key, already derived by the backend
	Title     string `json:"title"`
	Link      string `json:"link,omitempty"`
	ImageURL  string `json:"imageUrl,omitempty"`
	Released  string `json:"released,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Pagination carries paging info for list endpoints
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
	Limit       int `json:"limit,omitempty"`
}

// CatalogSummary is the summary block of the anime-list response
type CatalogSummary struct {
	TotalAnime  int    `json:"totalAnime,omitempty"`
	LastUpdated string `json:"lastUpdated,omitempty"`
}

// AnimeListData is the data payload of GET /api/anime-list
type AnimeListData struct {
	Anime      []Anime        `json:"anime"`
	Pagination Pagination     `json:"pagination"`
	Summary    CatalogSummary `json:"summary,omitempty"`
}

// LatestEpisodesData is the data payload of GET /api/latest-episodes
type LatestEpisodesData struct {
	Episodes   []Episode  `json:"episodes"`
	Pagination Pagination `json:"pagination"`
}

// EpisodeRef is one episode row inside an anime detail
type EpisodeRef struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Date  string `json:"date,omitempty"`
}

// AnimeDetail is the data payload of GET /api/anime-detail
type AnimeDetail struct {
	Title       string       `json:"title"`
	ImageURL    string       `json:"imageUrl,omitempty"`
	Synopsis    string       `json:"synopsis,omitempty"`
	Status      string       `json:"status,omitempty"`
	ReleaseDate string       `json:"releaseDate,omitempty"`
	Genres      []string     `json:"genres,omitempty"`
	Episodes    []EpisodeRef `json:"episodes,omitempty"`
}

// PlayerOption is one candidate stream/quality choice for an episode.
// A nil/empty VideoURL means the option is listed but not playable.
type PlayerOption struct {
	ID       string `json:"id"`   // observed pattern: player-option-<n>
	Text     string `json:"text"` // free-text label, may encode a quality hint
	VideoURL string `json:"videoUrl,omitempty"`
}

// EpisodeVideoData is the data payload of GET /api/episode-video
type EpisodeVideoData struct {
	URL           string         `json:"url,omitempty"`
	Type          string         `json:"type,omitempty"`
	PlayerOptions []PlayerOption `json:"playerOptions"`
	ThumbnailURL  string         `json:"thumbnailUrl,omitempty"`
	CreatedAt     string         `json:"createdAt,omitempty"`
}

// AdsConfig holds the ad slot snippets configured by the admin
type AdsConfig struct {
	HeaderAd  string `json:"headerAd,omitempty"`
	SidebarAd string `json:"sidebarAd,omitempty"`
	VideoAd   string `json:"videoAd,omitempty"`
}

// PlayerConfig holds the player defaults configured by the admin.
// Quality is one of auto, 1080p, 720p, 480p, 360p.
type PlayerConfig struct {
	Autoplay bool   `json:"autoplay"`
	Quality  string `json:"quality,omitempty"`
	Subtitle bool   `json:"subtitle"`
}

// SiteConfig is the site configuration stored by the backend
type SiteConfig struct {
	SamehadakuURL    string       `json:"samehadakuUrl,omitempty"`
	SourceURL        string       `json:"sourceUrl,omitempty"`
	ScrapingInterval string       `json:"scrapingInterval,omitempty"`
	AutoScraping     bool         `json:"autoScraping"`
	EnableAds        bool         `json:"enableAds"`
	AdsConfig        AdsConfig    `json:"adsConfig,omitempty"`
	PlayerConfig     PlayerConfig `json:"playerConfig,omitempty"`
}

// PlayerEvent is one control event posted by the episode page widget
type PlayerEvent struct {
	Type       string  `json:"type"`
	URL        string  `json:"url,omitempty"`        // source
	Value      float64 `json:"value,omitempty"`      // seek fraction / volume
	Generation uint64  `json:"generation,omitempty"` // progress
	Played     float64 `json:"played,omitempty"`     // progress
	Loaded     float64 `json:"loaded,omitempty"`     // progress
	Message    string  `json:"message,omitempty"`    // error
}

// Scraping status values reported by the backend
const (
	ScrapingIdle      = "idle"
	ScrapingRunning   = "scraping"
	ScrapingCompleted = "completed"
	ScrapingError     = "error"
)

// ScrapingStatus is the payload of GET /api/scraping-status
type ScrapingStatus struct {
	Status        string `json:"status"`
	Progress      int    `json:"progress"`
	Message       string `json:"message,omitempty"`
	EstimatedTime string `json:"estimatedTime,omitempty"`
}

// Terminal reports whether a scraping run has finished, successfully or not.
func (s ScrapingStatus) Terminal() bool {
	return s.Status == ScrapingCompleted || s.Status == ScrapingError
}
