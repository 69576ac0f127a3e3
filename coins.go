package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// rewardTable is the coin payout per action. Only LogMeal, ConfirmPlanned,
// CompleteCheckIn and FirstLog are paid by the API; the rest are published
// for clients that award them locally.
type rewardTable struct {
	LogMeal         int `json:"log_meal"`
	ConfirmPlanned  int `json:"confirm_planned"`
	HitProtein      int `json:"hit_protein"`
	UnderBudget     int `json:"under_budget"`
	StreakDay       int `json:"streak_day"`
	CompleteCheckIn int `json:"complete_check_in"`
	FirstLog        int `json:"first_log"`
	WeekStreak      int `json:"week_streak"`
	MonthStreak     int `json:"month_streak"`
}

var coinRewards = rewardTable{
	LogMeal:         5,
	ConfirmPlanned:  5,
	HitProtein:      15,
	UnderBudget:     10,
	StreakDay:       2,
	CompleteCheckIn: 10,
	FirstLog:        10,
	WeekStreak:      50,
	MonthStreak:     200,
}

// validCheckIns is the set of check-in flows a client may complete.
var validCheckIns = map[string]bool{
	"progress": true,
	"craving":  true,
	"guilt":    true,
}

// awardCoins adds amount to the stored balance and returns the new balance.
// Callers must hold h.mu.
func (h *Handler) awardCoins(ctx context.Context, amount int) (int, error) {
	balance, err := h.store.LoadCoinBalance(ctx)
	if err != nil {
		return 0, err
	}
	if amount <= 0 {
		return balance, nil
	}
	balance += amount
	if err := h.store.SaveCoinBalance(ctx, balance); err != nil {
		return 0, fmt.Errorf("award %d coins: %w", amount, err)
	}
	return balance, nil
}

// getCoins returns the current balance and the reward table.
// GET /api/coins.
func (h *Handler) getCoins(c *gin.Context) {
	balance, err := h.store.LoadCoinBalance(c)
	if err != nil {
		log.Printf("[getCoins] %v", err)
		apiError(c, http.StatusInternalServerError, "failed to fetch coins")
		return
	}
	c.JSON(http.StatusOK, gin.H{"coins": balance, "rewards": coinRewards})
}

// completeCheckIn records a finished check-in flow and pays the reward.
// POST /api/check-ins {"type": "progress"|"craving"|"guilt", "responses": [...]}.
// Responses are accepted for the client's benefit but not stored.
func (h *Handler) completeCheckIn(c *gin.Context) {
	var body struct {
		Type      string   `json:"type"`
		Responses []string `json:"responses"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validCheckIns[body.Type] {
		apiError(c, http.StatusBadRequest, "type must be one of: progress, craving, guilt")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	balance, err := h.awardCoins(c, coinRewards.CompleteCheckIn)
	if err != nil {
		log.Printf("[completeCheckIn] %v", err)
		apiError(c, http.StatusInternalServerError, "failed to award coins")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"type":          body.Type,
		"coins_awarded": coinRewards.CompleteCheckIn,
		"coins":         balance,
	})
}
