package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"gitanime-web/models"
)

// StatusError reports a non-2xx response from the backend.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API call failed: %d", e.Code)
}

// EnvelopeError reports a success:false envelope. Message is the
// backend-provided, user-visible error text.
type EnvelopeError struct {
	Message string
}

func (e *EnvelopeError) Error() string {
	return e.Message
}

// UserMessage returns the text pages should show for err: the backend's
// own message for envelope errors, a generic one otherwise.
func UserMessage(err error) string {
	var envErr *EnvelopeError
	if errors.As(err, &envErr) && envErr.Message != "" {
		return envErr.Message
	}
	return "Gagal memuat data. Silakan coba lagi."
}

// Backend is the gateway client for the one configured backend origin.
// GET responses are cached; expired entries still serve as fallback when
// the backend is unreachable. There is no retry, failures propagate to
// the caller.
type Backend struct {
	baseURL string
	client  *http.Client
	cache   *ResponseCache
	logger  *log.Logger
}

// NewBackend creates a backend client for the given origin
func NewBackend(baseURL string, cacheTTL time.Duration, logger *log.Logger) *Backend {
	return &Backend{
		baseURL: baseURL,
		client:  GetSharedClient(),
		cache:   NewResponseCache(cacheTTL, 200),
		logger:  logger,
	}
}

// BaseURL returns the configured backend origin
func (b *Backend) BaseURL() string {
	return b.baseURL
}

// buildURL joins the path to the base origin and flattens params into a
// query string. Empty values are dropped, not sent as empty params.
func (b *Backend) buildURL(path string, params map[string]string) string {
	full := b.baseURL + path
	q := url.Values{}
	for k, v := range params {
		if v == "" {
			continue
		}
		q.Set(k, v)
	}
	if len(q) > 0 {
		full += "?" + q.Encode()
	}
	return full
}

// Get issues a GET against the backend and decodes the envelope payload
// into out. On a transport failure a stale cached response is served
// when one exists.
func (b *Backend) Get(ctx context.Context, path string, params map[string]string, out interface{}) error {
	return b.get(ctx, path, params, out, true)
}

// GetFresh is Get without the response cache, for status polling and the
// admin console where a cached answer defeats the point.
func (b *Backend) GetFresh(ctx context.Context, path string, params map[string]string, out interface{}) error {
	return b.get(ctx, path, params, out, false)
}

func (b *Backend) get(ctx context.Context, path string, params map[string]string, out interface{}, cacheable bool) error {
	fullURL := b.buildURL(path, params)

	if cacheable {
		if cached, ok := b.cache.Get(fullURL); ok {
			return decodeEnvelope(cached, out)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return errors.Wrap(err, "failed to build backend request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		if stale, ok := b.cache.GetStale(fullURL); ok {
			b.logger.Warn("backend unreachable, serving stale cache", "path", path, "err", err)
			return decodeEnvelope(stale, out)
		}
		return errors.Wrap(err, "backend request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read backend response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode}
	}

	if err := decodeEnvelope(body, out); err != nil {
		return err
	}
	if cacheable {
		b.cache.Set(fullURL, body)
	}
	return nil
}

// Post issues a POST with a JSON body and decodes the envelope payload into out
func (b *Backend) Post(ctx context.Context, path string, payload, out interface{}) error {
	return b.write(ctx, http.MethodPost, path, payload, out)
}

// Put issues a PUT with a JSON body and decodes the envelope payload into out
func (b *Backend) Put(ctx context.Context, path string, payload, out interface{}) error {
	return b.write(ctx, http.MethodPut, path, payload, out)
}

func (b *Backend) write(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "failed to encode request body")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "failed to build backend request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "backend request failed")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read backend response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode}
	}
	return decodeEnvelope(data, out)
}

func decodeEnvelope(body []byte, out interface{}) error {
	var env models.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return errors.Wrap(err, "failed to decode backend envelope")
	}
	if !env.Success {
		return &EnvelopeError{Message: env.Message}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errors.Wrap(err, "failed to decode backend payload")
		}
	}
	return nil
}

// AnimeList fetches a catalog page
func (b *Backend) AnimeList(ctx context.Context, f models.Filters, limit int) (*models.AnimeListData, error) {
	var data models.AnimeListData
	if err := b.Get(ctx, "/api/anime-list", f.Params(limit), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// LatestEpisodes fetches a page of the latest-episodes feed
func (b *Backend) LatestEpisodes(ctx context.Context, page, limit int, search string) (*models.LatestEpisodesData, error) {
	params := map[string]string{
		"page":   strconv.Itoa(page),
		"limit":  strconv.Itoa(limit),
		"search": search,
	}
	var data models.LatestEpisodesData
	if err := b.Get(ctx, "/api/latest-episodes", params, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// AnimeDetail fetches the detail for a source-site anime URL
func (b *Backend) AnimeDetail(ctx context.Context, sourceURL string) (*models.AnimeDetail, error) {
	var data models.AnimeDetail
	if err := b.Get(ctx, "/api/anime-detail", map[string]string{"url": sourceURL}, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// EpisodeVideo fetches the player options for a source-site episode URL
func (b *Backend) EpisodeVideo(ctx context.Context, sourceURL string) (*models.EpisodeVideoData, error) {
	var data models.EpisodeVideoData
	if err := b.Get(ctx, "/api/episode-video", map[string]string{"url": sourceURL}, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// SiteConfig fetches the backend-stored site configuration
func (b *Backend) SiteConfig(ctx context.Context) (*models.SiteConfig, error) {
	var cfg models.SiteConfig
	if err := b.GetFresh(ctx, "/api/config", nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UpdateSiteConfig writes the site configuration. The backend rejects a
// wrong password with a success:false envelope.
func (b *Backend) UpdateSiteConfig(ctx context.Context, password string, cfg models.SiteConfig) error {
	payload := struct {
		Password string `json:"password"`
		models.SiteConfig
	}{Password: password, SiteConfig: cfg}
	return b.Put(ctx, "/api/config", payload, nil)
}

// TriggerScrape starts a backend scraping job. Path is one of the
// /api/scrape* endpoints; startPage/endPage apply to batch variants only
// and are omitted when zero.
func (b *Backend) TriggerScrape(ctx context.Context, path, password string, startPage, endPage int) error {
	payload := map[string]interface{}{"password": password}
	if startPage > 0 {
		payload["startPage"] = startPage
	}
	if endPage > 0 {
		payload["endPage"] = endPage
	}
	return b.Post(ctx, path, payload, nil)
}

// ScrapingStatus fetches the current scraping job status
func (b *Backend) ScrapingStatus(ctx context.Context) (*models.ScrapingStatus, error) {
	var status models.ScrapingStatus
	if err := b.GetFresh(ctx, "/api/scraping-status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
