// Package player holds the video-source selection rules and the playback
// session state machine behind the episode player page.
package player

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/samber/lo"

	"gitanime-web/models"
)

// The source catalog labels qualities inconsistently ("720p", "Premium
// 720", plain "720"), so matching scans the label text for the digit
// pattern instead of trusting a fixed vocabulary. The player-option ids
// are a second signal: option 3 is 720p and option 4 is 1080p on the
// source site.
var (
	match720  = regexp.MustCompile(`(?i)(premium|\b)p?\s*720`)
	match1080 = regexp.MustCompile(`(?i)(premium|\b)p?\s*1080`)
)

type matcher func(models.PlayerOption) bool

func is720(opt models.PlayerOption) bool {
	return opt.ID == "player-option-3" || match720.MatchString(opt.Text)
}

func is1080(opt models.PlayerOption) bool {
	return opt.ID == "player-option-4" || match1080.MatchString(opt.Text)
}

// PreferenceOrder maps the configured default quality to the matcher
// order tried first. Qualities without a reliable label signal (480p,
// 360p, auto) use the standard 720-then-1080 order.
func PreferenceOrder(quality string) []matcher {
	if quality == "1080p" {
		return []matcher{is1080, is720}
	}
	return []matcher{is720, is1080}
}

// SelectDefault picks the default stream from the option list: first a
// playable option matching the preferred quality signal, then the other
// quality, then the first playable option in list order. Returns nil
// when nothing is playable.
func SelectDefault(options []models.PlayerOption, quality string) *models.PlayerOption {
	for _, match := range PreferenceOrder(quality) {
		if opt, ok := lo.Find(options, func(o models.PlayerOption) bool {
			return o.VideoURL != "" && match(o)
		}); ok {
			return &opt
		}
	}
	if opt, ok := lo.Find(options, func(o models.PlayerOption) bool {
		return o.VideoURL != ""
	}); ok {
		return &opt
	}
	return nil
}

// ProxiedURL routes a raw stream URL through the backend proxy. HLS
// manifests (detected by .m3u8 in the URL) go through the hls-proxy
// route, everything else through video-proxy. An empty input stays empty.
func ProxiedURL(backend, raw string) string {
	if raw == "" {
		return ""
	}
	path := "/api/video-proxy"
	if strings.Contains(strings.ToLower(raw), ".m3u8") {
		path = "/api/hls-proxy"
	}
	return backend + path + "?url=" + url.QueryEscape(raw)
}
