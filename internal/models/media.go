package models

// MediaKind tells the presentation layer how to render a primary media link.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// Platform identifies the hosting service a media link was recognized as.
type Platform string

const (
	PlatformGeneric Platform = "generic"
	PlatformYouTube Platform = "youtube"
	PlatformDrive   Platform = "drive"
	PlatformImgur   Platform = "imgur"
	PlatformDropbox Platform = "dropbox"
)

// Media is a validated, classified media reference.
//
// URL is always a cleaned absolute http(s) URL, never raw embed markup.
// For videos ThumbnailURL is what to show before playback and EmbedURL what to
// load in the player; FallbackThumbnailURL is used when the preferred
// thumbnail does not exist.
type Media struct {
	Kind                 MediaKind `json:"kind"`
	Platform             Platform  `json:"platform"`
	URL                  string    `json:"url"`
	ThumbnailURL         string    `json:"thumbnailUrl,omitempty"`
	FallbackThumbnailURL string    `json:"fallbackThumbnailUrl,omitempty"`
	VideoID              string    `json:"videoId,omitempty"`
	EmbedURL             string    `json:"embedUrl,omitempty"`
}

// DisplayURL returns the URL an <img> should point at.
func (m Media) DisplayURL() string {
	if m.ThumbnailURL != "" {
		return m.ThumbnailURL
	}
	return m.URL
}
