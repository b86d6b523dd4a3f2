package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegacyAnimeDetailRedirect(t *testing.T) {
	r := newTestRouter(t, stubCatalog(t))

	rec := doGet(t, r, "/anime-detail?url=https%3A%2F%2Fv1.samehadaku.how%2Fanime%2Fone-piece%2F")
	require.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/anime/one-piece", rec.Header().Get("Location"))
}

func TestLegacyAnimeDetailWithoutURL(t *testing.T) {
	r := newTestRouter(t, stubCatalog(t))

	rec := doGet(t, r, "/anime-detail")
	require.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestLegacyEpisodePlayerRedirect(t *testing.T) {
	r := newTestRouter(t, stubCatalog(t))

	rec := doGet(t, r, "/episode-player?url=https%3A%2F%2Fv1.samehadaku.how%2Fone-piece-episode-1000%2F")
	require.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/episode/one-piece-episode-1000", rec.Header().Get("Location"))
}

func TestLegacyEpisodePlayerKeepsTitle(t *testing.T) {
	r := newTestRouter(t, stubCatalog(t))

	rec := doGet(t, r, "/episode-player?url=https%3A%2F%2Fv1.samehadaku.how%2Fone-piece-episode-1000%2F&title=One+Piece+1000")
	require.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/episode/one-piece-episode-1000?title=One+Piece+1000", rec.Header().Get("Location"))
}
