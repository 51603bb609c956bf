package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"farmwatch/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid   = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// @Summary      List processed readings
// @Description  Filter the reading log by time range and decision priority. If 'to' is date-only, it is treated as end-of-day inclusive.
// @Tags         readings
// @Produce      json
// @Param        from      query   string  false  "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')"  example(2026-08-01)
// @Param        to        query   string  false  "End of range; date-only treated as end of day"  example(2026-08-31)
// @Param        priority  query   string  false  "Decision priority"  Enums(low,medium,high,critical)
// @Success      200   {object}  map[string]interface{}  "count, readings"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/readings [get]
// @Security     BearerAuth
func (h *Handler) getReadings(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		from     time.Time
		to       time.Time
		priority = strings.ToLower(strings.TrimSpace(c.Query("priority")))
		err      error
	)
	if qs := c.Query("from"); qs != "" {
		from, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return
		}
	}
	if qs := c.Query("to"); qs != "" {
		to, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return
		}
		// A bare date means the whole day, inclusive.
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}
	records, err := h.services.List(ctx, service.HistoryFilter{
		From:     from,
		To:       to,
		Priority: priority,
	})
	if err != nil {
		// Filter validation failures are the caller's problem; anything the
		// service rejects before touching storage maps to 400.
		if isFilterError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if h.log != nil {
			h.log.Errorw("readings_list_failed", "err", err, "from", from, "to", to, "priority", priority)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load readings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(records),
		"readings": records,
	})
}

func isFilterError(err error) bool {
	return errors.Is(err, service.ErrInvalidTimeRange) ||
		strings.Contains(err.Error(), "invalid priority")
}

func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time format %q", s)
}
