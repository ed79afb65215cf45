package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nhle/waterwise/internal/service"
)

// handleLogUsage handles POST /api/water-usage.
func (s *Server) handleLogUsage(c *gin.Context) {
	var in service.LogUsageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	entry, err := s.usage.LogUsage(c.Request.Context(), currentUserID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// handleUsageStats handles GET /api/water-usage/stats.
func (s *Server) handleUsageStats(c *gin.Context) {
	stats, err := s.usage.Stats(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// handleRecentLogs handles GET /api/water-usage/recent.
func (s *Server) handleRecentLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	entries, err := s.usage.RecentLogs(c.Request.Context(), currentUserID(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// handleActivityBreakdown handles GET /api/water-usage/activities.
// Query params: start, end (RFC 3339 or YYYY-MM-DD); defaults to the
// trailing 30 days.
func (s *Server) handleActivityBreakdown(c *gin.Context) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now.AddDate(0, 0, 1)

	if v := c.Query("start"); v != "" {
		parsed, err := parseDate(v)
		if err != nil {
			badRequest(c, "start must be an RFC 3339 or YYYY-MM-DD date")
			return
		}
		from = parsed
	}
	if v := c.Query("end"); v != "" {
		parsed, err := parseDate(v)
		if err != nil {
			badRequest(c, "end must be an RFC 3339 or YYYY-MM-DD date")
			return
		}
		to = parsed
	}

	breakdown, err := s.usage.ActivityBreakdown(c.Request.Context(), currentUserID(c), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

// handleWeeklyReport handles GET /api/water-usage/weekly.
// Query param: start (defaults to today).
func (s *Server) handleWeeklyReport(c *gin.Context) {
	start := time.Now().UTC()
	if v := c.Query("start"); v != "" {
		parsed, err := parseDate(v)
		if err != nil {
			badRequest(c, "start must be an RFC 3339 or YYYY-MM-DD date")
			return
		}
		start = parsed
	}

	report, err := s.usage.WeeklyReport(c.Request.Context(), currentUserID(c), start)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// parseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}
