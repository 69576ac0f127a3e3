package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"lg/nutritrack-go-api/internal/nutrition"
)

// timeframeDays maps the named progress windows to how many days back the
// window starts. The window ends today, so "7days" covers eight calendar days.
var timeframeDays = map[string]int{
	"7days":  7,
	"30days": 30,
	"90days": 90,
}

// getProgress scores a window of history against the current daily goals.
// GET /api/progress?timeframe=7days|30days|90days (default 7days), or
// GET /api/progress?start=YYYY-MM-DD&end=YYYY-MM-DD for an explicit range.
func (h *Handler) getProgress(c *gin.Context) {
	var start, end nutrition.Date
	if c.Query("start") != "" || c.Query("end") != "" {
		var ok bool
		if start, end, ok = rangeQuery(c); !ok {
			return
		}
	} else {
		days, ok := timeframeDays[c.DefaultQuery("timeframe", "7days")]
		if !ok {
			apiError(c, http.StatusBadRequest, "timeframe must be one of: 7days, 30days, 90days")
			return
		}
		end = h.today()
		start = end.AddDays(-days)
	}

	goals, _, _, err := h.currentGoals(c)
	if err != nil {
		log.Printf("[getProgress] %v", err)
		apiError(c, http.StatusInternalServerError, "failed to fetch profile")
		return
	}
	history, err := h.store.LoadHistory(c, start, end)
	if err != nil {
		log.Printf("[getProgress] %v", err)
		apiError(c, http.StatusInternalServerError, "failed to fetch progress data")
		return
	}
	streak, err := h.streak(c)
	if err != nil {
		log.Printf("[getProgress] %v", err)
		apiError(c, http.StatusInternalServerError, "failed to compute streak")
		return
	}

	stats := nutrition.WindowStats(history, start, end, goals)
	c.JSON(http.StatusOK, progressResponse{
		Stats:            stats,
		Score:            nutrition.ScoreProgress(stats),
		ProjectedFatLoss: nutrition.ProjectedFatLoss(stats.Deficit),
		DailyGoals:       goals,
		Streak:           streak,
	})
}
