package main

import (
	"context"
	"math"
	"math/rand/v2"
	"net/http"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"lg/nutritrack-go-api/internal/nutrition"
)

/* ─── Request / Response types ───────────────────────────────────────── */

// analyzeRequest is the request body for POST /api/food/analyze.
type analyzeRequest struct {
	Description string `json:"description"`
}

// analysis is an estimated food the client can log or plan as-is.
// Matched reports whether it came from a known sample rather than a guess.
type analysis struct {
	Name     string               `json:"name"`
	Calories float64              `json:"calories"`
	Protein  float64              `json:"protein"`
	Carbs    float64              `json:"carbs"`
	Fat      float64              `json:"fat"`
	Items    []nutrition.FoodItem `json:"items"`
	Matched  bool                 `json:"matched"`
}

/* ─── Analyzer ───────────────────────────────────────────────────────── */

// foodAnalyzer turns a free-text meal description into an estimate.
type foodAnalyzer interface {
	Analyze(ctx context.Context, description string) (analysis, error)
}

// sampleAnalyzer is a stand-in for a real nutrition model. A description
// mentioning the first word of a sample meal returns that meal; anything
// else gets a randomized but plausible estimate.
type sampleAnalyzer struct {
	samples []analysis

	mu  sync.Mutex
	rng *rand.Rand
}

func newSampleAnalyzer(rng *rand.Rand) *sampleAnalyzer {
	return &sampleAnalyzer{samples: sampleFoods, rng: rng}
}

func (a *sampleAnalyzer) Analyze(_ context.Context, description string) (analysis, error) {
	input := strings.TrimSpace(description)
	lower := strings.ToLower(input)
	for _, s := range a.samples {
		if key := matchKey(s.Name); key != "" && strings.Contains(lower, key) {
			s.Matched = true
			return s, nil
		}
	}

	a.mu.Lock()
	calories := roundHalfUp(300 + a.rng.Float64()*400)
	protein := roundHalfUp(15 + a.rng.Float64()*25)
	carbs := roundHalfUp(20 + a.rng.Float64()*40)
	fat := roundHalfUp(10 + a.rng.Float64()*20)
	a.mu.Unlock()

	return analysis{
		Name:     capitalize(input),
		Calories: calories,
		Protein:  protein,
		Carbs:    carbs,
		Fat:      fat,
		Items:    []nutrition.FoodItem{{Name: input, Calories: 350, Protein: 20, Carbs: 30, Fat: 15}},
	}, nil
}

// matchKey is the lowercased first word of a sample name, punctuation
// stripped ("Eggs, Avocado, and Toast" -> "eggs").
func matchKey(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimFunc(fields[0], func(r rune) bool { return !unicode.IsLetter(r) })
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

var sampleFoods = []analysis{
	{
		Name: "Eggs, Avocado, and Toast", Calories: 450, Protein: 20, Carbs: 40, Fat: 25,
		Items: []nutrition.FoodItem{
			{Name: "3 eggs scrambled", Calories: 210, Protein: 18, Carbs: 2, Fat: 15},
			{Name: "Half avocado", Calories: 120, Protein: 1, Carbs: 6, Fat: 11},
			{Name: "Sourdough toast", Calories: 120, Protein: 4, Carbs: 22, Fat: 1},
		},
	},
	{
		Name: "Chipotle Chicken Bowl", Calories: 610, Protein: 52, Carbs: 55, Fat: 23,
		Items: []nutrition.FoodItem{
			{Name: "Chicken", Calories: 180, Protein: 32, Carbs: 0, Fat: 7},
			{Name: "White rice", Calories: 210, Protein: 4, Carbs: 40, Fat: 4},
			{Name: "Black beans", Calories: 130, Protein: 8, Carbs: 22, Fat: 1},
			{Name: "Fajita veggies", Calories: 20, Protein: 1, Carbs: 4, Fat: 0},
			{Name: "Salsa", Calories: 25, Protein: 1, Carbs: 5, Fat: 0},
			{Name: "Cheese", Calories: 45, Protein: 3, Carbs: 0, Fat: 4},
		},
	},
	{
		Name: "Protein Shake", Calories: 160, Protein: 30, Carbs: 5, Fat: 2,
		Items: []nutrition.FoodItem{
			{Name: "Whey protein 1 scoop", Calories: 120, Protein: 24, Carbs: 3, Fat: 1},
			{Name: "Almond milk 1 cup", Calories: 40, Protein: 1, Carbs: 2, Fat: 3},
		},
	},
	{
		Name: "Salmon with Rice and Broccoli", Calories: 729, Protein: 58, Carbs: 56, Fat: 28,
		Items: []nutrition.FoodItem{
			{Name: "Salmon 8oz", Calories: 468, Protein: 50, Carbs: 0, Fat: 28},
			{Name: "White rice 1 cup", Calories: 206, Protein: 4, Carbs: 45, Fat: 0},
			{Name: "Steamed broccoli", Calories: 55, Protein: 4, Carbs: 11, Fat: 0},
		},
	},
	{
		Name: "Greek Yogurt with Berries", Calories: 180, Protein: 18, Carbs: 20, Fat: 3,
		Items: []nutrition.FoodItem{
			{Name: "Greek yogurt 1 cup", Calories: 130, Protein: 17, Carbs: 8, Fat: 2},
			{Name: "Mixed berries 1/2 cup", Calories: 40, Protein: 1, Carbs: 10, Fat: 0},
			{Name: "Honey drizzle", Calories: 10, Protein: 0, Carbs: 2, Fat: 0},
		},
	},
}

/* ─── Handler ────────────────────────────────────────────────────────── */

// analyzeFood handles POST /api/food/analyze.
// Accepts a meal description and returns an estimate the client can pass
// straight to POST /api/food-log/entries.
func (h *Handler) analyzeFood(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		apiError(c, http.StatusBadRequest, "description is required")
		return
	}

	result, err := h.analyzer.Analyze(c, req.Description)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "analysis failed")
		return
	}
	c.JSON(http.StatusOK, result)
}
