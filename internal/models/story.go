package models

// UntitledStory is the placeholder title used when a row provides none.
// Stories carrying it are never published.
const UntitledStory = "Untitled"

// ImpactStory is one narrative update from the field.
type ImpactStory struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Date        string   `json:"date"`
	EndDate     string   `json:"endDate,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Image       *Media   `json:"image,omitempty"`
	Gallery     []string `json:"gallery,omitempty"`
	VideoLinks  []string `json:"videoLinks,omitempty"`
}

// HasCoordinates reports whether the story can be plotted on the map.
func (s ImpactStory) HasCoordinates() bool {
	return s.Latitude != nil && s.Longitude != nil
}
