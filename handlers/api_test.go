package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, r http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestScrapingStatusProxy(t *testing.T) {
	r := newTestRouter(t, func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "/api/scraping-status", req.URL.Path)
		w.Write([]byte(envelope(`{"status":"scraping","progress":55,"message":"halaman 11/20"}`)))
	})

	rec := doGet(t, r, "/api/scraping-status")
	require.Equal(t, http.StatusOK, rec.Code)
	var status map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "scraping", status["status"])
	assert.Equal(t, float64(55), status["progress"])
}

func TestScrapingStatusProxyBackendDown(t *testing.T) {
	r := newTestRouter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	rec := doGet(t, r, "/api/scraping-status")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestCreateSessionEndpoint(t *testing.T) {
	r := newTestRouter(t, stubCatalog(t))

	rec := postJSON(t, r, "/api/player/sessions", `{"videoUrl":"http://backend/api/video-proxy?url=x"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		ID    string `json:"id"`
		State struct {
			State string `json:"state"`
		} `json:"state"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.ID)
	assert.Equal(t, "loading", body.State.State)
}

func TestSessionEventFlow(t *testing.T) {
	r := newTestRouter(t, stubCatalog(t))

	rec := postJSON(t, r, "/api/player/sessions", `{"videoUrl":"http://backend/v.mp4"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	events := "/api/player/sessions/" + created.ID + "/events"

	rec = postJSON(t, r, events, `{"type":"playpause"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var view map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "playing", view["state"])
	assert.Equal(t, true, view["playing"])

	// a committed seek suppresses progress until the ack arrives
	postJSON(t, r, events, `{"type":"seekcommit","value":0.5}`)
	rec = postJSON(t, r, events, `{"type":"progress","generation":1,"played":0.9,"loaded":0.9}`)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, 0.5, view["played"])

	postJSON(t, r, events, `{"type":"seekack"}`)
	rec = postJSON(t, r, events, `{"type":"progress","generation":1,"played":0.9,"loaded":0.9}`)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, 0.9, view["played"])
}

func TestSessionEventUnknownSession(t *testing.T) {
	r := newTestRouter(t, stubCatalog(t))

	rec := postJSON(t, r, "/api/player/sessions/deadbeef/events", `{"type":"playpause"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionEventUnknownType(t *testing.T) {
	r := newTestRouter(t, stubCatalog(t))

	rec := postJSON(t, r, "/api/player/sessions", `{}`)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = postJSON(t, r, "/api/player/sessions/"+created.ID+"/events", `{"type":"rewind"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unknown event type")
}

func TestDropSessionEndpoint(t *testing.T) {
	r := newTestRouter(t, stubCatalog(t))

	rec := postJSON(t, r, "/api/player/sessions", `{}`)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodDelete, "/api/player/sessions/"+created.ID, nil)
	del := httptest.NewRecorder()
	r.ServeHTTP(del, req)
	require.Equal(t, http.StatusNoContent, del.Code)

	rec = doGet(t, r, "/api/player/sessions/"+created.ID)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
