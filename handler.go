package main

import (
	"context"
	"log"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"lg/nutritrack-go-api/internal/nutrition"
)

// Handler holds shared dependencies (store, analyzer, clock) for all route handlers.
type Handler struct {
	store    Store
	analyzer foodAnalyzer
	now      func() time.Time

	// mu serialises read-modify-write sequences on day logs, the profile and
	// the coin balance.
	mu sync.Mutex
}

func newHandler(store Store) *Handler {
	return &Handler{
		store:    store,
		analyzer: newSampleAnalyzer(rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x6e757472))),
		now:      time.Now,
	}
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func (h *Handler) today() nutrition.Date {
	return nutrition.DateOf(h.now())
}

// dateQuery reads a YYYY-MM-DD query param, defaulting to today. On a
// malformed value it writes a 400 and returns ok=false.
func (h *Handler) dateQuery(c *gin.Context, name string) (nutrition.Date, bool) {
	raw := c.Query(name)
	if raw == "" {
		return h.today(), true
	}
	d, err := nutrition.ParseDate(raw)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid "+name+", expected YYYY-MM-DD")
		return nutrition.Date{}, false
	}
	return d, true
}

// rangeQuery reads the required start and end query params, writing a 400
// for a missing, malformed or reversed range.
func rangeQuery(c *gin.Context) (start, end nutrition.Date, ok bool) {
	rawStart, rawEnd := c.Query("start"), c.Query("end")
	if rawStart == "" || rawEnd == "" {
		apiError(c, http.StatusBadRequest, "start and end query params are required")
		return start, end, false
	}
	start, err := nutrition.ParseDate(rawStart)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid start, expected YYYY-MM-DD")
		return start, end, false
	}
	end, err = nutrition.ParseDate(rawEnd)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid end, expected YYYY-MM-DD")
		return start, end, false
	}
	if start.After(end) {
		apiError(c, http.StatusBadRequest, "start must not be after end")
		return start, end, false
	}
	return start, end, true
}

// currentGoals resolves today's daily goals from the stored profile. Until
// onboarding is complete (or with no profile at all) the default goals apply.
func (h *Handler) currentGoals(ctx context.Context) (nutrition.Goals, nutrition.Defaults, *nutrition.Profile, error) {
	p, err := h.store.LoadProfile(ctx)
	if err != nil {
		return nutrition.Goals{}, nutrition.Defaults{}, nil, err
	}
	if p == nil || !p.OnboardingComplete {
		return nutrition.DefaultGoals, nutrition.Defaults{FallbackGoals: true}, p, nil
	}
	goals, defaults := nutrition.ResolveDailyGoals(*p)
	return goals, defaults, p, nil
}

// streak counts consecutive tracked days ending today, loading no more than
// the window the count is capped at.
func (h *Handler) streak(ctx context.Context) (int, error) {
	today := h.today()
	history, err := h.store.LoadHistory(ctx, today.AddDays(-nutrition.MaxStreakDays), today)
	if err != nil {
		return 0, err
	}
	return nutrition.Streak(history, today), nil
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// newRouter builds the gin engine with request logging and recovery.
func newRouter(h *Handler, trustedProxies []string) *gin.Engine {
	router := gin.Default()
	if err := router.SetTrustedProxies(trustedProxies); err != nil {
		log.Printf("[newRouter] invalid trusted proxies %v: %v", trustedProxies, err)
	}
	h.registerRoutes(router)
	return router
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	// Public routes
	router.POST("/api/login", h.login)

	// Authenticated routes
	api := router.Group("/api", h.authMiddleware())
	api.GET("/profile", h.getProfile)
	api.PUT("/profile", h.putProfile)
	api.PATCH("/profile", h.patchProfile)
	api.GET("/goals", h.getGoals)
	api.GET("/food-log", h.getDailySummary)
	api.GET("/food-log/week", h.getWeekSummary)
	api.GET("/food-log/earliest-date", h.getEarliestLogDate)
	api.POST("/food-log/entries", h.createFoodEntry)
	api.POST("/food-log/entries/:id/confirm", h.confirmFoodEntry)
	api.PUT("/food-log/entries/:id", h.updateFoodEntry)
	api.DELETE("/food-log/entries/:id", h.deleteFoodEntry)
	api.GET("/progress", h.getProgress)
	api.POST("/food/analyze", h.analyzeFood)
	api.GET("/coins", h.getCoins)
	api.POST("/check-ins", h.completeCheckIn)
	api.GET("/weight-log", h.getWeightLog)
	api.POST("/weight-log", h.upsertWeightEntry)
	api.DELETE("/weight-log/:date", h.deleteWeightEntry)
	api.GET("/export", h.exportData)
	api.POST("/import", h.importData)
}
