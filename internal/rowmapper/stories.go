package rowmapper

import (
	"math"
	"strconv"
	"strings"

	"github.com/ieee-sl/relief-ledger/internal/columns"
	"github.com/ieee-sl/relief-ledger/internal/feederror"
	"github.com/ieee-sl/relief-ledger/internal/logging"
	"github.com/ieee-sl/relief-ledger/internal/media"
	"github.com/ieee-sl/relief-ledger/internal/models"
	"github.com/ieee-sl/relief-ledger/internal/textutils"
)

// MapStories converts rows into impact stories, preserving row order. Rows
// without a usable title are skipped.
func MapStories(rows []models.RawRow, table columns.Table, logger logging.Logger) []models.ImpactStory {
	if table == nil {
		table = columns.DefaultTable()
	}
	if logger == nil {
		logger = logging.Discard()
	}

	stories := make([]models.ImpactStory, 0, len(rows))
	dropped := 0
	for i, row := range rows {
		story, err := mapStory(i, row, table)
		if err != nil {
			dropped++
			logger.Debug("Skipping story row", logging.F(logging.FieldReason, err.Error()))
			continue
		}
		stories = append(stories, story)
	}

	logger.Info("Mapped story rows",
		logging.F(logging.FieldFeed, models.FeedStories),
		logging.F(logging.FieldCount, len(stories)),
		logging.F(logging.FieldDropped, dropped))
	return stories
}

func mapStory(i int, row models.RawRow, table columns.Table) (models.ImpactStory, error) {
	title := textutils.CleanCell(table.Lookup(row, columns.Title))
	if title == "" {
		title = models.UntitledStory
	}
	if title == models.UntitledStory {
		return models.ImpactStory{}, &feederror.RowError{
			Feed:   models.FeedStories,
			Row:    i,
			Field:  columns.Title,
			Value:  table.Lookup(row, columns.Title),
			Reason: "story has no title",
		}
	}

	story := models.ImpactStory{
		ID:          table.Lookup(row, columns.ID),
		Date:        textutils.CleanCell(table.Lookup(row, columns.Date)),
		EndDate:     textutils.CleanCell(table.Lookup(row, columns.EndDate)),
		Title:       title,
		Description: textutils.CleanCell(table.Lookup(row, columns.Description)),
		Location:    textutils.CleanCell(table.Lookup(row, columns.Location)),
		Gallery:     media.SplitList(table.Lookup(row, columns.Gallery)),
		VideoLinks:  media.SplitList(table.Lookup(row, columns.Videos)),
	}
	if story.ID == "" {
		story.ID = models.StoryIDPrefix + strconv.Itoa(i)
	}

	story.Slug = textutils.Slugify(table.Lookup(row, columns.Slug))
	if story.Slug == "" {
		story.Slug = textutils.Slugify(title)
	}
	if story.Slug == "" {
		story.Slug = textutils.Slugify(story.ID)
	}

	if m, ok := media.Classify(table.Lookup(row, columns.Image)); ok {
		story.Image = m
	}

	lat, latOK := parseCoordinate(table.Lookup(row, columns.Latitude), 90)
	lng, lngOK := parseCoordinate(table.Lookup(row, columns.Longitude), 180)
	if latOK && lngOK {
		story.Latitude = &lat
		story.Longitude = &lng
	}

	return story, nil
}

// parseCoordinate parses a degree value within [-limit, limit].
func parseCoordinate(s string, limit float64) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if v < -limit || v > limit {
		return 0, false
	}
	return v, true
}
