// Package extract derives this site's own route keys (anime slugs and
// episode ids) from URLs on the source content site.
package extract

import (
	"net/url"
	"strings"
)

// AnimeSlug extracts the anime slug from a source-site URL. The typical
// shape is https://origin/anime/<slug>/, in which case the segment under
// /anime/ is returned; otherwise the last non-empty path segment wins.
// It never fails: unparseable input falls back to plain string splitting
// and the worst case is an empty string.
func AnimeSlug(sourceURL string) string {
	u, err := url.Parse(sourceURL)
	if err != nil {
		return lastSegment(sourceURL)
	}
	segments := splitPath(u.Path)
	if len(segments) == 0 {
		return ""
	}
	last := segments[len(segments)-1]
	if len(segments) >= 2 && segments[len(segments)-2] == "anime" {
		return last
	}
	return last
}

// EpisodeID extracts the episode id from a source-site episode URL of
// shape https://origin/<id>/. It is the last non-empty path segment,
// with the same never-fails fallback as AnimeSlug.
func EpisodeID(sourceURL string) string {
	u, err := url.Parse(sourceURL)
	if err != nil {
		return lastSegment(sourceURL)
	}
	segments := splitPath(u.Path)
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}

// BuildAnimeURL rebuilds the source-site anime URL for a slug.
func BuildAnimeURL(base, slug string) string {
	return strings.TrimRight(base, "/") + "/anime/" + slug + "/"
}

// BuildEpisodeURL rebuilds the source-site episode URL for an id.
func BuildEpisodeURL(base, id string) string {
	return strings.TrimRight(base, "/") + "/" + id + "/"
}

func splitPath(p string) []string {
	var segments []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

func lastSegment(raw string) string {
	parts := splitPath(raw)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}
