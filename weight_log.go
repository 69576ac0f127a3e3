package main

import (
	"context"
	"errors"
	"log"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"lg/nutritrack-go-api/internal/nutrition"
)

// getWeightLog returns weight entries within [start, end].
// GET /api/weight-log?start=YYYY-MM-DD&end=YYYY-MM-DD. Both params required.
// Returns an empty array (not null) if no entries exist in the range.
func (h *Handler) getWeightLog(c *gin.Context) {
	start, end, ok := rangeQuery(c)
	if !ok {
		return
	}

	entries, err := h.store.ListWeights(c, start, end)
	if err != nil {
		log.Printf("[getWeightLog] %v", err)
		apiError(c, http.StatusInternalServerError, "failed to fetch weight log")
		return
	}
	// Ensure empty array (not null) in JSON
	if entries == nil {
		entries = []weightEntry{}
	}

	c.JSON(http.StatusOK, entries)
}

// upsertWeightEntry creates or updates the weight entry for the given date.
// POST /api/weight-log. Body: { "date": "YYYY-MM-DD", "weight_lbs": 185.5 }.
// Posting the same date updates in place. When the entry is the newest one
// the profile weight follows it, so goals track the latest weigh-in.
func (h *Handler) upsertWeightEntry(c *gin.Context) {
	var body struct {
		Date      string  `json:"date"`
		WeightLBS float64 `json:"weight_lbs"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Date == "" {
		apiError(c, http.StatusBadRequest, "date is required")
		return
	}
	day, err := nutrition.ParseDate(body.Date)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	if body.WeightLBS <= 0 || body.WeightLBS > 9999.9 {
		apiError(c, http.StatusBadRequest, "weight_lbs must be between 0 and 9999.9")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	entry, err := h.store.UpsertWeight(c, day, body.WeightLBS)
	if err != nil {
		log.Printf("[upsertWeightEntry] %v", err)
		apiError(c, http.StatusInternalServerError, "failed to upsert weight entry")
		return
	}
	if err := h.syncProfileWeight(c); err != nil {
		log.Printf("[upsertWeightEntry] weight saved but profile not updated: %v", err)
	}

	c.JSON(http.StatusCreated, entry)
}

// deleteWeightEntry removes the weight entry for a date.
// DELETE /api/weight-log/:date. Returns 204 on success, 404 if not found.
func (h *Handler) deleteWeightEntry(c *gin.Context) {
	day, err := nutrition.ParseDate(c.Param("date"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.store.DeleteWeight(c, day); err != nil {
		if errors.Is(err, errNotFound) {
			apiError(c, http.StatusNotFound, "weight entry not found")
		} else {
			log.Printf("[deleteWeightEntry] %v", err)
			apiError(c, http.StatusInternalServerError, "failed to delete weight entry")
		}
		return
	}
	if err := h.syncProfileWeight(c); err != nil {
		log.Printf("[deleteWeightEntry] weight deleted but profile not updated: %v", err)
	}

	c.Status(http.StatusNoContent)
}

// syncProfileWeight copies the newest weigh-in, rounded to whole pounds, into
// the profile. No profile or no weigh-ins leaves the profile untouched.
// Callers must hold h.mu.
func (h *Handler) syncProfileWeight(ctx context.Context) error {
	p, err := h.store.LoadProfile(ctx)
	if err != nil || p == nil {
		return err
	}
	latest, err := h.store.LatestWeight(ctx)
	if errors.Is(err, errNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	lbs := int(math.Round(latest.WeightLBS))
	if p.WeightLb != nil && *p.WeightLb == lbs {
		return nil
	}
	p.WeightLb = &lbs
	return h.store.SaveProfile(ctx, *p)
}
