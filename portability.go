package main

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lg/nutritrack-go-api/internal/nutrition"
)

// exportData returns every stored record as a single JSON bundle.
// GET /api/export. The bundle is accepted unchanged by POST /api/import.
func (h *Handler) exportData(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	bundle := exportBundle{ExportedAt: h.now().UTC()}
	var err error
	if bundle.Profile, err = h.store.LoadProfile(c); err != nil {
		log.Printf("[exportData] %v", err)
		apiError(c, http.StatusInternalServerError, "failed to export profile")
		return
	}
	if bundle.History, err = h.store.LoadAllHistory(c); err != nil {
		log.Printf("[exportData] %v", err)
		apiError(c, http.StatusInternalServerError, "failed to export history")
		return
	}
	if bundle.Coins, err = h.store.LoadCoinBalance(c); err != nil {
		log.Printf("[exportData] %v", err)
		apiError(c, http.StatusInternalServerError, "failed to export coins")
		return
	}
	if bundle.Weights, err = h.store.AllWeights(c); err != nil {
		log.Printf("[exportData] %v", err)
		apiError(c, http.StatusInternalServerError, "failed to export weight log")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="nutritrack-export.json"`)
	c.JSON(http.StatusOK, bundle)
}

// importData restores a bundle written by exportData. Sections are merged:
// a present profile replaces the stored one, each history day replaces that
// day's log, weights upsert by date, and a non-zero coin balance replaces
// the stored balance. Days and weights not in the bundle are kept.
// The whole bundle is validated before anything is written, so a rejected
// bundle changes nothing. Writes are not transactional: a store error
// partway through leaves the sections written so far in place, and
// re-importing the same bundle completes it.
// POST /api/import.
func (h *Handler) importData(c *gin.Context) {
	var bundle exportBundle
	if err := c.ShouldBindJSON(&bundle); err != nil {
		apiError(c, http.StatusBadRequest, "invalid export bundle")
		return
	}
	if bundle.Coins < 0 {
		apiError(c, http.StatusBadRequest, "coins must not be negative")
		return
	}
	for _, w := range bundle.Weights {
		if w.WeightLBS <= 0 || w.Date.IsZero() {
			apiError(c, http.StatusBadRequest, "weights need a date and a positive weight_lbs")
			return
		}
	}
	if msg := prepareHistory(bundle.History); msg != "" {
		apiError(c, http.StatusBadRequest, msg)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if bundle.Profile != nil {
		if err := h.store.SaveProfile(c, *bundle.Profile); err != nil {
			log.Printf("[importData] %v", err)
			apiError(c, http.StatusInternalServerError, "failed to import profile")
			return
		}
	}
	for _, day := range bundle.History.SortedDates() {
		if err := h.store.SaveDayLog(c, day, bundle.History[day]); err != nil {
			log.Printf("[importData] %v", err)
			apiError(c, http.StatusInternalServerError, "failed to import history")
			return
		}
	}
	for _, w := range bundle.Weights {
		if _, err := h.store.UpsertWeight(c, w.Date.Day(), w.WeightLBS); err != nil {
			log.Printf("[importData] %v", err)
			apiError(c, http.StatusInternalServerError, "failed to import weight log")
			return
		}
	}
	if bundle.Coins > 0 {
		if err := h.store.SaveCoinBalance(c, bundle.Coins); err != nil {
			log.Printf("[importData] %v", err)
			apiError(c, http.StatusInternalServerError, "failed to import coins")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": bundle.Profile != nil,
		"days":    len(bundle.History),
		"weights": len(bundle.Weights),
		"coins":   bundle.Coins,
	})
}

// prepareHistory holds imported day logs to the rules the entry endpoints
// enforce: a name, no negative values and an ID unique within its day.
// Entries without an ID are given one. Returns a client-facing message for
// the first violation, or "".
func prepareHistory(h nutrition.History) string {
	for _, day := range h.SortedDates() {
		entries := h[day]
		seen := make(map[string]bool, len(entries))
		for i := range entries {
			e := &entries[i]
			if strings.TrimSpace(e.Name) == "" {
				return fmt.Sprintf("%s: entry name is required", day)
			}
			if !nonNegative(e.Calories, e.Protein, e.Carbs, e.Fat) {
				return fmt.Sprintf("%s: calories and macros must not be negative", day)
			}
			if msg := itemsProblem(e.Items); msg != "" {
				return fmt.Sprintf("%s: %s", day, msg)
			}
			if e.ID == "" {
				e.ID = uuid.New().String()
			}
			if seen[e.ID] {
				return fmt.Sprintf("%s: duplicate entry id %q", day, e.ID)
			}
			seen[e.ID] = true
		}
	}
	return ""
}
