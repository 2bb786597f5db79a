package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ieee-sl/relief-ledger/internal/ledger"
	"github.com/ieee-sl/relief-ledger/internal/logging"
	"github.com/ieee-sl/relief-ledger/internal/models"
)

type summaryResponse struct {
	models.FinancialSummary
	Currency  string            `json:"currency"`
	Formatted map[string]string `json:"formatted"`
}

type mapPoint struct {
	ID        string  `json:"id"`
	Slug      string  `json:"slug"`
	Title     string  `json:"title"`
	Location  string  `json:"location,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (s *Server) health(c *gin.Context) {
	snap := s.snapshots.Snapshot(c.Request.Context())
	status := "ok"
	if snap.Degraded() {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       status,
		"loadedAt":     snap.LoadedAt,
		"transactions": len(snap.Transactions),
		"stories":      len(snap.Stories),
		"diagnostics":  snap.Diagnostics,
	})
}

func (s *Server) summary(c *gin.Context) {
	snap := s.snapshots.Snapshot(c.Request.Context())
	sum := snap.Summary
	c.JSON(http.StatusOK, summaryResponse{
		FinancialSummary: sum,
		Currency:         s.opts.Currency,
		Formatted: map[string]string{
			"totalCollected":   models.NewMoney(sum.TotalCollected, s.opts.Currency).String(),
			"totalSpent":       models.NewMoney(sum.TotalSpent, s.opts.Currency).String(),
			"remainingBalance": models.NewMoney(sum.RemainingBalance, s.opts.Currency).String(),
		},
	})
}

func (s *Server) breakdown(c *gin.Context) {
	snap := s.snapshots.Snapshot(c.Request.Context())
	shares := ledger.CategoryBreakdown(snap.Transactions)
	if shares == nil {
		shares = []models.CategoryShare{}
	}
	c.JSON(http.StatusOK, shares)
}

// filterFromQuery reads q and type; ok is false once a 400 has been written.
func (s *Server) filterFromQuery(c *gin.Context) (ledger.Query, bool) {
	typ, err := ledger.ParseType(c.Query("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return ledger.Query{}, false
	}
	return ledger.Query{Search: c.Query("q"), Type: typ}, true
}

func intQuery(c *gin.Context, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": key + " must be an integer"})
		return 0, false
	}
	return n, true
}

func (s *Server) transactions(c *gin.Context) {
	q, ok := s.filterFromQuery(c)
	if !ok {
		return
	}
	page, ok := intQuery(c, "page")
	if !ok {
		return
	}
	size, ok := intQuery(c, "page_size")
	if !ok {
		return
	}

	snap := s.snapshots.Snapshot(c.Request.Context())
	c.JSON(http.StatusOK, ledger.Paginate(ledger.Filter(snap.Transactions, q), page, size))
}

func (s *Server) exportTransactions(c *gin.Context) {
	q, ok := s.filterFromQuery(c)
	if !ok {
		return
	}

	snap := s.snapshots.Snapshot(c.Request.Context())
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+ledger.ExportFileName+`"`)
	c.Status(http.StatusOK)
	if err := ledger.WriteCSV(c.Writer, ledger.Filter(snap.Transactions, q)); err != nil {
		s.logger.WithError(err).Error("Failed to write ledger export",
			logging.F(logging.FieldRequestID, c.GetString(requestIDKey)))
	}
}

func (s *Server) stories(c *gin.Context) {
	snap := s.snapshots.Snapshot(c.Request.Context())
	stories := snap.Stories
	if stories == nil {
		stories = []models.ImpactStory{}
	}
	c.JSON(http.StatusOK, stories)
}

func (s *Server) story(c *gin.Context) {
	snap := s.snapshots.Snapshot(c.Request.Context())
	story, ok := ledger.StoryBySlug(snap.Stories, c.Param("slug"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "story not found"})
		return
	}
	c.JSON(http.StatusOK, story)
}

func (s *Server) mapPoints(c *gin.Context) {
	snap := s.snapshots.Snapshot(c.Request.Context())
	stories := ledger.MapPoints(snap.Stories)
	points := make([]mapPoint, 0, len(stories))
	for _, st := range stories {
		points = append(points, mapPoint{
			ID:        st.ID,
			Slug:      st.Slug,
			Title:     st.Title,
			Location:  st.Location,
			Latitude:  *st.Latitude,
			Longitude: *st.Longitude,
		})
	}
	c.JSON(http.StatusOK, points)
}
