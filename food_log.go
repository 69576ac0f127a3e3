package main

import (
	"log"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lg/nutritrack-go-api/internal/nutrition"
)

// foodEntryResponse is returned by every food entry mutation.
type foodEntryResponse struct {
	Entry        nutrition.FoodEntry `json:"entry"`
	CoinsAwarded int                 `json:"coins_awarded"`
	Coins        int                 `json:"coins"`
}

// getDailySummary returns a day's entries with eaten/planned/projected totals
// measured against the current goals.
// GET /api/food-log?date=YYYY-MM-DD (defaults to today).
func (h *Handler) getDailySummary(c *gin.Context) {
	day, ok := h.dateQuery(c, "date")
	if !ok {
		return
	}

	entries, err := h.store.LoadDayLog(c, day)
	if err != nil {
		log.Printf("[getDailySummary] %v", err)
		apiError(c, http.StatusInternalServerError, "failed to fetch food log")
		return
	}
	// Ensure entries is an empty array (not null) in JSON
	if entries == nil {
		entries = []nutrition.FoodEntry{}
	}

	goals, _, _, err := h.currentGoals(c)
	if err != nil {
		log.Printf("[getDailySummary] %v", err)
		apiError(c, http.StatusInternalServerError, "failed to fetch profile")
		return
	}
	streak, err := h.streak(c)
	if err != nil {
		log.Printf("[getDailySummary] %v", err)
		apiError(c, http.StatusInternalServerError, "failed to compute streak")
		return
	}
	coins, err := h.store.LoadCoinBalance(c)
	if err != nil {
		log.Printf("[getDailySummary] %v", err)
		apiError(c, http.StatusInternalServerError, "failed to fetch coins")
		return
	}

	eaten := nutrition.Eaten(entries)
	planned := nutrition.Planned(entries)
	c.JSON(http.StatusOK, dailySummary{
		Date:        day,
		Goals:       goals,
		Eaten:       eaten,
		Planned:     planned,
		Projected:   nutrition.Projected(entries),
		Remaining:   nutrition.Remaining(goals, eaten, planned),
		HitProtein:  nutrition.DidHitProtein(entries, float64(goals.Protein)),
		UnderBudget: nutrition.DidStayUnderBudget(entries, float64(goals.Calories)),
		Streak:      streak,
		Coins:       coins,
		Entries:     entries,
	})
}

// getWeekSummary returns per-day totals for the Sunday to Saturday week containing date.
// Days with no logged items are included with has_data=false.
// GET /api/food-log/week?date=YYYY-MM-DD (defaults to the current week).
func (h *Handler) getWeekSummary(c *gin.Context) {
	day, ok := h.dateQuery(c, "date")
	if !ok {
		return
	}
	weekStart := nutrition.WeekStart(day)
	weekEnd := weekStart.AddDays(nutrition.DaysPerWeek - 1)

	goals, _, _, err := h.currentGoals(c)
	if err != nil {
		log.Printf("[getWeekSummary] %v", err)
		apiError(c, http.StatusInternalServerError, "failed to fetch profile")
		return
	}
	history, err := h.store.LoadHistory(c, weekStart, weekEnd)
	if err != nil {
		log.Printf("[getWeekSummary] %v", err)
		apiError(c, http.StatusInternalServerError, "failed to fetch week data")
		return
	}

	// Build a full 7-day response, filling zeros for days with no data.
	summary := weekSummary{
		WeekStart: weekStart,
		Goals:     nutrition.WeeklyGoals(goals),
		Days:      make([]weekDaySummary, nutrition.DaysPerWeek),
	}
	for i := range summary.Days {
		d := weekStart.AddDays(i)
		entries := history[d]
		eaten := nutrition.Eaten(entries)
		summary.Days[i] = weekDaySummary{
			Date:          d,
			CalorieBudget: goals.Calories,
			Eaten:         eaten,
			Planned:       nutrition.Planned(entries),
			CaloriesLeft:  float64(goals.Calories) - eaten.Calories,
			HitProtein:    nutrition.DidHitProtein(entries, float64(goals.Protein)),
			UnderBudget:   nutrition.DidStayUnderBudget(entries, float64(goals.Calories)),
			HasData:       history.Tracked(d),
		}
		summary.Eaten = summary.Eaten.Add(eaten)
	}

	c.JSON(http.StatusOK, summary)
}

// getEarliestLogDate returns the earliest date with a food entry.
// GET /api/food-log/earliest-date. Used by clients to compute the "All Time" range start.
// Returns { "date": "YYYY-MM-DD" } or { "date": null } if nothing is logged.
func (h *Handler) getEarliestLogDate(c *gin.Context) {
	history, err := h.store.LoadAllHistory(c)
	if err != nil {
		log.Printf("[getEarliestLogDate] %v", err)
		apiError(c, http.StatusInternalServerError, "failed to fetch earliest date")
		return
	}
	dates := history.SortedDates()
	if len(dates) == 0 {
		c.JSON(http.StatusOK, gin.H{"date": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": dates[0]})
}

// createFoodEntry appends a logged or planned entry to a day's log. Logging
// (not planning) pays the log-meal reward.
// POST /api/food-log/entries. Defaults date to today if omitted.
func (h *Handler) createFoodEntry(c *gin.Context) {
	var body createFoodEntryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		apiError(c, http.StatusBadRequest, "name is required")
		return
	}
	if !nonNegative(body.Calories, body.Protein, body.Carbs, body.Fat) {
		apiError(c, http.StatusBadRequest, "calories and macros must not be negative")
		return
	}
	if msg := itemsProblem(body.Items); msg != "" {
		apiError(c, http.StatusBadRequest, msg)
		return
	}
	day := h.today()
	if body.Date != "" {
		d, err := nutrition.ParseDate(body.Date)
		if err != nil {
			apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		day = d
	}

	entry := nutrition.FoodEntry{
		ID:        uuid.New().String(),
		Name:      body.Name,
		Calories:  body.Calories,
		Protein:   body.Protein,
		Carbs:     body.Carbs,
		Fat:       body.Fat,
		Confirmed: !body.Planned,
		LoggedAt:  h.now().UTC(),
		Items:     body.Items,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	entries, err := h.store.LoadDayLog(c, day)
	if err != nil {
		log.Printf("[createFoodEntry] %v", err)
		apiError(c, http.StatusInternalServerError, "failed to fetch food log")
		return
	}
	if err := h.store.SaveDayLog(c, day, append(entries, entry)); err != nil {
		log.Printf("[createFoodEntry] %v", err)
		apiError(c, http.StatusInternalServerError, "failed to create entry")
		return
	}

	reward := 0
	if entry.Confirmed {
		reward = coinRewards.LogMeal
	}
	coins, err := h.awardCoins(c, reward)
	if err != nil {
		log.Printf("[createFoodEntry] entry %s saved but coins not awarded: %v", entry.ID, err)
		reward = 0
	}

	c.JSON(http.StatusCreated, foodEntryResponse{Entry: entry, CoinsAwarded: reward, Coins: coins})
}

// confirmFoodEntry marks a planned entry as eaten. An entry is confirmed at
// most once; a second attempt is a 409 and pays nothing.
// POST /api/food-log/entries/:id/confirm?date=YYYY-MM-DD.
func (h *Handler) confirmFoodEntry(c *gin.Context) {
	day, ok := h.dateQuery(c, "date")
	if !ok {
		return
	}
	id := c.Param("id")

	h.mu.Lock()
	defer h.mu.Unlock()

	entries, err := h.store.LoadDayLog(c, day)
	if err != nil {
		log.Printf("[confirmFoodEntry] %v", err)
		apiError(c, http.StatusInternalServerError, "failed to fetch food log")
		return
	}
	i := entryIndex(entries, id)
	if i < 0 {
		apiError(c, http.StatusNotFound, "entry not found")
		return
	}
	if entries[i].Confirmed {
		apiError(c, http.StatusConflict, "entry already confirmed")
		return
	}

	now := h.now().UTC()
	entries[i].Confirmed = true
	entries[i].ConfirmedAt = &now
	if err := h.store.SaveDayLog(c, day, entries); err != nil {
		log.Printf("[confirmFoodEntry] %v", err)
		apiError(c, http.StatusInternalServerError, "failed to confirm entry")
		return
	}

	reward := coinRewards.ConfirmPlanned
	coins, err := h.awardCoins(c, reward)
	if err != nil {
		log.Printf("[confirmFoodEntry] entry %s confirmed but coins not awarded: %v", id, err)
		reward = 0
	}

	c.JSON(http.StatusOK, foodEntryResponse{Entry: entries[i], CoinsAwarded: reward, Coins: coins})
}

// updateFoodEntry edits an entry's name, macros or item breakdown.
// PUT /api/food-log/entries/:id?date=YYYY-MM-DD. Omitted fields keep their
// current value.
func (h *Handler) updateFoodEntry(c *gin.Context) {
	day, ok := h.dateQuery(c, "date")
	if !ok {
		return
	}
	id := c.Param("id")

	var body updateFoodEntryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Name == nil && body.Calories == nil && body.Protein == nil &&
		body.Carbs == nil && body.Fat == nil && body.Items == nil {
		apiError(c, http.StatusBadRequest, "no fields to update")
		return
	}
	if body.Name != nil && strings.TrimSpace(*body.Name) == "" {
		apiError(c, http.StatusBadRequest, "name must not be empty")
		return
	}
	for _, v := range []*float64{body.Calories, body.Protein, body.Carbs, body.Fat} {
		if v != nil && *v < 0 {
			apiError(c, http.StatusBadRequest, "calories and macros must not be negative")
			return
		}
	}
	if body.Items != nil {
		if msg := itemsProblem(*body.Items); msg != "" {
			apiError(c, http.StatusBadRequest, msg)
			return
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	entries, err := h.store.LoadDayLog(c, day)
	if err != nil {
		log.Printf("[updateFoodEntry] %v", err)
		apiError(c, http.StatusInternalServerError, "failed to fetch food log")
		return
	}
	i := entryIndex(entries, id)
	if i < 0 {
		apiError(c, http.StatusNotFound, "entry not found")
		return
	}

	e := &entries[i]
	if body.Name != nil {
		e.Name = strings.TrimSpace(*body.Name)
	}
	if body.Calories != nil {
		e.Calories = *body.Calories
	}
	if body.Protein != nil {
		e.Protein = *body.Protein
	}
	if body.Carbs != nil {
		e.Carbs = *body.Carbs
	}
	if body.Fat != nil {
		e.Fat = *body.Fat
	}
	if body.Items != nil {
		e.Items = *body.Items
	}

	if err := h.store.SaveDayLog(c, day, entries); err != nil {
		log.Printf("[updateFoodEntry] %v", err)
		apiError(c, http.StatusInternalServerError, "failed to update entry")
		return
	}

	c.JSON(http.StatusOK, entries[i])
}

// deleteFoodEntry removes an entry from a day's log. Returns 204 on success.
// DELETE /api/food-log/entries/:id?date=YYYY-MM-DD. Coins already paid are kept.
func (h *Handler) deleteFoodEntry(c *gin.Context) {
	day, ok := h.dateQuery(c, "date")
	if !ok {
		return
	}
	id := c.Param("id")

	h.mu.Lock()
	defer h.mu.Unlock()

	entries, err := h.store.LoadDayLog(c, day)
	if err != nil {
		log.Printf("[deleteFoodEntry] %v", err)
		apiError(c, http.StatusInternalServerError, "failed to fetch food log")
		return
	}
	i := entryIndex(entries, id)
	if i < 0 {
		apiError(c, http.StatusNotFound, "entry not found")
		return
	}
	if err := h.store.SaveDayLog(c, day, slices.Delete(entries, i, i+1)); err != nil {
		log.Printf("[deleteFoodEntry] %v", err)
		apiError(c, http.StatusInternalServerError, "failed to delete entry")
		return
	}

	c.Status(http.StatusNoContent)
}

func entryIndex(entries []nutrition.FoodEntry, id string) int {
	return slices.IndexFunc(entries, func(e nutrition.FoodEntry) bool { return e.ID == id })
}

// itemsProblem returns a client-facing message for the first item with a
// blank name or a negative value, or "" when all items can be stored.
func itemsProblem(items []nutrition.FoodItem) string {
	for _, it := range items {
		if strings.TrimSpace(it.Name) == "" {
			return "item name is required"
		}
		if !nonNegative(it.Calories, it.Protein, it.Carbs, it.Fat) {
			return "item calories and macros must not be negative"
		}
	}
	return ""
}

func nonNegative(values ...float64) bool {
	for _, v := range values {
		if v < 0 {
			return false
		}
	}
	return true
}
