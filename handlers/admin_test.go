package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postForm(t *testing.T, r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAdminConsoleRendersConfigAndStatus(t *testing.T) {
	r := newTestRouter(t, stubCatalog(t))

	rec := doGet(t, r, "/admin")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Konfigurasi Situs")
	assert.Contains(t, body, `action="/admin/config"`)
	assert.Contains(t, body, `action="/admin/scrape"`)
}

func TestAdminConfigRequiresPassword(t *testing.T) {
	r := newTestRouter(t, stubCatalog(t))

	rec := postForm(t, r, "/admin/config", url.Values{"samehadakuUrl": {"https://v1.samehadaku.how"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password admin wajib diisi.")
}

func TestAdminConfigForwardsPasswordAndForm(t *testing.T) {
	var got map[string]interface{}
	r := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
		if req.Method == http.MethodPut && req.URL.Path == "/api/config" {
			require.NoError(t, json.NewDecoder(req.Body).Decode(&got))
			w.Write([]byte(`{"success":true}`))
			return
		}
		w.Write([]byte(envelope(`{"playerConfig":{"quality":"auto"}}`)))
	})

	rec := postForm(t, r, "/admin/config", url.Values{
		"password":  {"hunter2"},
		"enableAds": {"true"},
		"headerAd":  {"<script>ad</script>"},
		"quality":   {"720p"},
		"autoplay":  {"true"},
		"subtitle":  {"true"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/admin?notice=")

	assert.Equal(t, "hunter2", got["password"])
	assert.Equal(t, true, got["enableAds"])
	player, ok := got["playerConfig"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "720p", player["quality"])
	assert.Equal(t, true, player["autoplay"])
}

func TestAdminConfigShowsBackendRejection(t *testing.T) {
	r := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
		if req.Method == http.MethodPut && req.URL.Path == "/api/config" {
			w.Write([]byte(`{"success":false,"message":"Password salah"}`))
			return
		}
		w.Write([]byte(envelope(`{"playerConfig":{"quality":"auto"}}`)))
	})

	rec := postForm(t, r, "/admin/config", url.Values{"password": {"wrong"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password salah")
}

func TestAdminScrapeJobRouting(t *testing.T) {
	tests := []struct {
		job      string
		wantPath string
	}{
		{"full", "/api/scrape"},
		{"latest", "/api/scrape-latest-episodes"},
		{"list", "/api/scrape-anime-list"},
	}
	for _, tt := range tests {
		t.Run(tt.job, func(t *testing.T) {
			var gotPath atomic.Value
			r := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
				if req.Method == http.MethodPost {
					gotPath.Store(req.URL.Path)
					w.Write([]byte(`{"success":true}`))
					return
				}
				w.Write([]byte(envelope(`{"status":"idle","progress":0}`)))
			})

			rec := postForm(t, r, "/admin/scrape", url.Values{"password": {"s"}, "job": {tt.job}})
			require.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.wantPath, gotPath.Load())
		})
	}
}

func TestAdminScrapeBatchValidatesRange(t *testing.T) {
	r := newTestRouter(t, stubCatalog(t))

	rec := postForm(t, r, "/admin/scrape", url.Values{
		"password":  {"s"},
		"job":       {"batch"},
		"startPage": {"9"},
		"endPage":   {"2"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Rentang halaman batch tidak valid.")
}

func TestAdminScrapeBatchSendsPages(t *testing.T) {
	var got map[string]interface{}
	r := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
		if req.Method == http.MethodPost && req.URL.Path == "/api/scrape" {
			require.NoError(t, json.NewDecoder(req.Body).Decode(&got))
			w.Write([]byte(`{"success":true}`))
			return
		}
		w.Write([]byte(envelope(`{"status":"idle","progress":0}`)))
	})

	rec := postForm(t, r, "/admin/scrape", url.Values{
		"password":  {"s"},
		"job":       {"batch"},
		"startPage": {"2"},
		"endPage":   {"5"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, float64(2), got["startPage"])
	assert.Equal(t, float64(5), got["endPage"])
}
