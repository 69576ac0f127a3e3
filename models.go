package main

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"lg/nutritrack-go-api/internal/nutrition"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns (OID 1082) into DateOnly. NULL values zero the time and return nil
// so that *DateOnly pointer fields can be set to nil by pgx's NULL handling.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

// Day converts to the calendar day used as a history key.
func (d DateOnly) Day() nutrition.Date {
	return nutrition.DateOf(d.Time)
}

/* ─── Domain structs ─────────────────────────────────────────────────── */

// user maps to the users table. AuthToken and Password are hidden from JSON
// responses. There is a single owner account; the table exists so the
// password can be bcrypt-hashed and the token rotated.
type user struct {
	ID        int        `json:"id" db:"id"`
	Username  string     `json:"username" db:"username"`
	Email     string     `json:"email" db:"email"`
	AuthToken string     `json:"-" db:"auth_token"`
	Password  string     `json:"-" db:"password"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// weightEntry maps to weight_log. One row per date.
type weightEntry struct {
	ID        int        `json:"id" db:"id"`
	Date      DateOnly   `json:"date" db:"date"`
	WeightLBS float64    `json:"weight_lbs" db:"weight_lbs"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// dayLogRow is one row of day_logs as scanned by the stores.
type dayLogRow struct {
	Date    DateOnly              `db:"date"`
	Entries []nutrition.FoodEntry `db:"entries"`
}

/* ─── Responses ──────────────────────────────────────────────────────── */

// dailySummary is the response shape for GET /api/food-log.
type dailySummary struct {
	Date        nutrition.Date        `json:"date"`
	Goals       nutrition.Goals       `json:"goals"`
	Eaten       nutrition.Macros      `json:"eaten"`
	Planned     nutrition.Macros      `json:"planned"`
	Projected   nutrition.Macros      `json:"projected"`
	Remaining   nutrition.Macros      `json:"remaining"`
	HitProtein  bool                  `json:"hit_protein"`
	UnderBudget bool                  `json:"under_budget"`
	Streak      int                   `json:"streak"`
	Coins       int                   `json:"coins"`
	Entries     []nutrition.FoodEntry `json:"entries"`
}

// weekDaySummary is one day's entry in the GET /api/food-log/week response.
// Days with no logged items have HasData=false and zero totals.
type weekDaySummary struct {
	Date          nutrition.Date   `json:"date"`
	CalorieBudget int              `json:"calorie_budget"`
	Eaten         nutrition.Macros `json:"eaten"`
	Planned       nutrition.Macros `json:"planned"`
	CaloriesLeft  float64          `json:"calories_left"`
	HitProtein    bool             `json:"hit_protein"`
	UnderBudget   bool             `json:"under_budget"`
	HasData       bool             `json:"has_data"`
}

type weekSummary struct {
	WeekStart nutrition.Date   `json:"week_start"`
	Goals     nutrition.Goals  `json:"goals"`
	Eaten     nutrition.Macros `json:"eaten"`
	Days      []weekDaySummary `json:"days"`
}

// progressResponse is returned by GET /api/progress.
type progressResponse struct {
	Stats            nutrition.Stats `json:"stats"`
	Score            nutrition.Score `json:"score"`
	ProjectedFatLoss float64         `json:"projected_fat_loss_lbs"`
	DailyGoals       nutrition.Goals `json:"daily_goals"`
	Streak           int             `json:"streak"`
}

// profileResponse carries the stored profile plus the computed pipeline
// values. BMR and TDEE are nil when body metrics are missing.
type profileResponse struct {
	Profile      nutrition.Profile  `json:"profile"`
	ComputedBMR  *int               `json:"computed_bmr,omitempty"`
	ComputedTDEE *int               `json:"computed_tdee,omitempty"`
	Goals        nutrition.Goals    `json:"goals"`
	Defaults     nutrition.Defaults `json:"defaults"`
	CoinsAwarded int                `json:"coins_awarded,omitempty"`
}

type goalsResponse struct {
	Daily    nutrition.Goals    `json:"daily"`
	Weekly   nutrition.Goals    `json:"weekly"`
	Monthly  nutrition.Goals    `json:"monthly"`
	Defaults nutrition.Defaults `json:"defaults"`
}

// exportBundle is the whole-app backup written by GET /api/export and read
// by POST /api/import.
type exportBundle struct {
	Profile    *nutrition.Profile `json:"profile"`
	History    nutrition.History  `json:"history"`
	Coins      int                `json:"coins"`
	Weights    []weightEntry      `json:"weights,omitempty"`
	ExportedAt time.Time          `json:"exported_at"`
}

/* ─── Requests ───────────────────────────────────────────────────────── */

// createFoodEntryRequest is the request body for POST /api/food-log/entries.
// Planned entries start unconfirmed.
type createFoodEntryRequest struct {
	Date     string               `json:"date"`
	Name     string               `json:"name"`
	Calories float64              `json:"calories"`
	Protein  float64              `json:"protein"`
	Carbs    float64              `json:"carbs"`
	Fat      float64              `json:"fat"`
	Planned  bool                 `json:"planned"`
	Items    []nutrition.FoodItem `json:"items"`
}

// updateFoodEntryRequest is the body for PUT /api/food-log/entries/:id.
// Only non-nil fields are applied; confirmation has its own endpoint.
type updateFoodEntryRequest struct {
	Name     *string               `json:"name"`
	Calories *float64              `json:"calories"`
	Protein  *float64              `json:"protein"`
	Carbs    *float64              `json:"carbs"`
	Fat      *float64              `json:"fat"`
	Items    *[]nutrition.FoodItem `json:"items"`
}

// patchProfileRequest is the request body for PATCH /api/profile. All fields
// are pointers so "not provided" is distinguishable from zero.
type patchProfileRequest struct {
	Name               *string  `json:"name"`
	Age                *int     `json:"age"`
	Sex                *string  `json:"sex"`
	HeightIn           *int     `json:"height_in"`
	WeightLb           *int     `json:"weight_lb"`
	GoalWeightLb       *int     `json:"goal_weight_lb"`
	BodyFatPct         *float64 `json:"body_fat_pct"`
	ActivityLevel      *string  `json:"activity_level"`
	Goal               *string  `json:"goal"`
	ProteinTarget      *string  `json:"protein_target"`
	OnboardingComplete *bool    `json:"onboarding_complete"`
}
