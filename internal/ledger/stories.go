package ledger

import (
	"sort"

	"github.com/ieee-sl/relief-ledger/internal/models"
)

// MapPoints returns the stories that carry both coordinates.
func MapPoints(stories []models.ImpactStory) []models.ImpactStory {
	points := make([]models.ImpactStory, 0, len(stories))
	for _, s := range stories {
		if s.HasCoordinates() {
			points = append(points, s)
		}
	}
	return points
}

// StoryBySlug returns the first story with the given slug. Slugs are not
// unique; later duplicates are unreachable by slug.
func StoryBySlug(stories []models.ImpactStory, slug string) (models.ImpactStory, bool) {
	for _, s := range stories {
		if s.Slug == slug {
			return s, true
		}
	}
	return models.ImpactStory{}, false
}

// DuplicateSlugs lists, sorted, every slug shared by more than one story.
func DuplicateSlugs(stories []models.ImpactStory) []string {
	counts := make(map[string]int, len(stories))
	for _, s := range stories {
		counts[s.Slug]++
	}
	var dups []string
	for slug, n := range counts {
		if n > 1 {
			dups = append(dups, slug)
		}
	}
	sort.Strings(dups)
	return dups
}
