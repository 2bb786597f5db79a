package media

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/ieee-sl/relief-ledger/internal/models"
)

var (
	youTubeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	driveIDPath      = regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`)
	driveIDQuery     = regexp.MustCompile(`[?&]id=([a-zA-Z0-9_-]+)`)
	imgurIDPath      = regexp.MustCompile(`^/([a-zA-Z0-9]{5,10})$`)
)

const (
	youTubeThumbnailHost = "https://img.youtube.com/vi/"
	youTubeEmbedPrefix   = "https://www.youtube.com/embed/"
	driveThumbnailFormat = "https://drive.google.com/thumbnail?sz=w1200&id=%s"
	imgurDirectFormat    = "https://i.imgur.com/%s.jpg"
)

// youTubePathPrefixes are the path forms that carry the video ID as the next segment.
var youTubePathPrefixes = []string{"/embed/", "/shorts/", "/v/", "/e/", "/live/"}

// Classify validates a primary media cell (embed markup allowed) and rewrites
// links on known platforms to something an <img> can display. Unrecognized or
// malformed platform links pass through as plain images.
func Classify(raw string) (*models.Media, bool) {
	cleaned, ok := ValidateURL(raw, true)
	if !ok {
		return nil, false
	}

	if id, ok := ExtractYouTubeID(cleaned); ok {
		return YouTubeMedia(cleaned, id), true
	}

	u, err := url.Parse(cleaned)
	if err != nil {
		return &models.Media{Kind: models.MediaImage, Platform: models.PlatformGeneric, URL: cleaned}, true
	}
	host := strings.ToLower(u.Hostname())

	switch {
	case host == "drive.google.com" || host == "docs.google.com":
		if id := driveFileID(cleaned); id != "" {
			return &models.Media{
				Kind:         models.MediaImage,
				Platform:     models.PlatformDrive,
				URL:          cleaned,
				ThumbnailURL: fmt.Sprintf(driveThumbnailFormat, id),
			}, true
		}
	case host == "imgur.com" || host == "www.imgur.com" || host == "m.imgur.com":
		if m := imgurIDPath.FindStringSubmatch(u.Path); m != nil {
			return &models.Media{
				Kind:         models.MediaImage,
				Platform:     models.PlatformImgur,
				URL:          cleaned,
				ThumbnailURL: fmt.Sprintf(imgurDirectFormat, m[1]),
			}, true
		}
	case host == "dropbox.com" || strings.HasSuffix(host, ".dropbox.com"):
		if raw, ok := dropboxRaw(u); ok {
			return &models.Media{
				Kind:         models.MediaImage,
				Platform:     models.PlatformDropbox,
				URL:          cleaned,
				ThumbnailURL: raw,
			}, true
		}
	}

	return &models.Media{Kind: models.MediaImage, Platform: models.PlatformGeneric, URL: cleaned}, true
}

// YouTubeMedia builds the video media for a known video ID.
func YouTubeMedia(link, id string) *models.Media {
	return &models.Media{
		Kind:                 models.MediaVideo,
		Platform:             models.PlatformYouTube,
		URL:                  link,
		VideoID:              id,
		ThumbnailURL:         youTubeThumbnailHost + id + "/maxresdefault.jpg",
		FallbackThumbnailURL: youTubeThumbnailHost + id + "/hqdefault.jpg",
		EmbedURL:             youTubeEmbedPrefix + id,
	}
}

// ExtractYouTubeID returns the 11-character video ID of a YouTube watch,
// share, embed, shorts or short link.
func ExtractYouTubeID(link string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return "", false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	host = strings.TrimPrefix(host, "music.")

	var candidate string
	switch host {
	case "youtu.be":
		candidate = firstSegment(u.Path)
	case "youtube.com", "youtube-nocookie.com":
		if v := u.Query().Get("v"); v != "" {
			candidate = v
			break
		}
		for _, prefix := range youTubePathPrefixes {
			if strings.HasPrefix(u.Path, prefix) {
				candidate = firstSegment(strings.TrimPrefix(u.Path, prefix))
				break
			}
		}
	default:
		return "", false
	}

	if !youTubeIDPattern.MatchString(candidate) {
		return "", false
	}
	return candidate, true
}

func firstSegment(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}

func driveFileID(link string) string {
	if m := driveIDPath.FindStringSubmatch(link); m != nil {
		return m[1]
	}
	if m := driveIDQuery.FindStringSubmatch(link); m != nil {
		return m[1]
	}
	return ""
}

// dropboxRaw turns a "?dl=0" share link into its raw-download form.
func dropboxRaw(u *url.URL) (string, bool) {
	q := u.Query()
	if q.Get("dl") != "0" {
		return "", false
	}
	q.Del("dl")
	q.Set("raw", "1")
	out := *u
	out.RawQuery = q.Encode()
	return out.String(), true
}
