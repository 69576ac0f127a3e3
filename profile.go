package main

import (
	"log"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"lg/nutritrack-go-api/internal/nutrition"
)

// getProfile returns the stored profile with computed BMR, TDEE and goals.
// GET /api/profile. 404 until onboarding has saved a profile.
func (h *Handler) getProfile(c *gin.Context) {
	p, err := h.store.LoadProfile(c)
	if err != nil {
		log.Printf("[getProfile] %v", err)
		apiError(c, http.StatusInternalServerError, "failed to fetch profile")
		return
	}
	if p == nil {
		apiError(c, http.StatusNotFound, "profile not found")
		return
	}
	c.JSON(http.StatusOK, buildProfileResponse(*p))
}

// putProfile replaces the whole profile. Empty enum fields take the
// onboarding defaults.
// PUT /api/profile.
func (h *Handler) putProfile(c *gin.Context) {
	var p nutrition.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	defaults := nutrition.NewProfile()
	if p.ActivityLevel == "" {
		p.ActivityLevel = defaults.ActivityLevel
	}
	if p.Goal == "" {
		p.Goal = defaults.Goal
	}
	if p.ProteinTarget == "" {
		p.ProteinTarget = defaults.ProteinTarget
	}
	if msg := validateProfile(p); msg != "" {
		apiError(c, http.StatusBadRequest, msg)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	prev, err := h.store.LoadProfile(c)
	if err != nil {
		log.Printf("[putProfile] %v", err)
		apiError(c, http.StatusInternalServerError, "failed to fetch profile")
		return
	}
	h.saveProfile(c, "putProfile", prev, p)
}

// patchProfile updates only the provided profile fields.
// PATCH /api/profile. Uses pointer fields in the request body to distinguish
// "not provided" from zero; only non-nil fields get updated. Patching
// before any profile exists starts from the onboarding defaults.
func (h *Handler) patchProfile(c *gin.Context) {
	var body patchProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	prev, err := h.store.LoadProfile(c)
	if err != nil {
		log.Printf("[patchProfile] %v", err)
		apiError(c, http.StatusInternalServerError, "failed to fetch profile")
		return
	}
	p := nutrition.NewProfile()
	if prev != nil {
		p = *prev
	}

	changed := false
	if body.Name != nil {
		p.Name, changed = *body.Name, true
	}
	if body.Age != nil {
		p.Age, changed = body.Age, true
	}
	if body.Sex != nil {
		sex := nutrition.Sex(*body.Sex)
		p.Sex, changed = &sex, true
	}
	if body.HeightIn != nil {
		p.HeightIn, changed = body.HeightIn, true
	}
	if body.WeightLb != nil {
		p.WeightLb, changed = body.WeightLb, true
	}
	if body.GoalWeightLb != nil {
		p.GoalWeightLb, changed = body.GoalWeightLb, true
	}
	if body.BodyFatPct != nil {
		p.BodyFatPct, changed = body.BodyFatPct, true
	}
	if body.ActivityLevel != nil {
		p.ActivityLevel, changed = nutrition.ActivityLevel(*body.ActivityLevel), true
	}
	if body.Goal != nil {
		p.Goal, changed = nutrition.Goal(*body.Goal), true
	}
	if body.ProteinTarget != nil {
		p.ProteinTarget, changed = nutrition.ProteinTarget(*body.ProteinTarget), true
	}
	if body.OnboardingComplete != nil {
		p.OnboardingComplete, changed = *body.OnboardingComplete, true
	}

	if !changed {
		apiError(c, http.StatusBadRequest, "no fields to update")
		return
	}
	if msg := validateProfile(p); msg != "" {
		apiError(c, http.StatusBadRequest, msg)
		return
	}
	h.saveProfile(c, "patchProfile", prev, p)
}

// saveProfile persists p and pays the first-log reward the first time
// onboarding is completed. Callers must hold h.mu.
func (h *Handler) saveProfile(c *gin.Context, caller string, prev *nutrition.Profile, p nutrition.Profile) {
	if err := h.store.SaveProfile(c, p); err != nil {
		log.Printf("[%s] %v", caller, err)
		apiError(c, http.StatusInternalServerError, "failed to save profile")
		return
	}

	resp := buildProfileResponse(p)
	if p.OnboardingComplete && (prev == nil || !prev.OnboardingComplete) {
		if _, err := h.awardCoins(c, coinRewards.FirstLog); err != nil {
			log.Printf("[%s] profile saved but coins not awarded: %v", caller, err)
		} else {
			resp.CoinsAwarded = coinRewards.FirstLog
		}
	}
	c.JSON(http.StatusOK, resp)
}

// getGoals returns daily goals and their weekly and monthly projections.
// GET /api/goals. Works before onboarding, returning the default goals.
func (h *Handler) getGoals(c *gin.Context) {
	daily, defaults, _, err := h.currentGoals(c)
	if err != nil {
		log.Printf("[getGoals] %v", err)
		apiError(c, http.StatusInternalServerError, "failed to fetch profile")
		return
	}
	c.JSON(http.StatusOK, goalsResponse{
		Daily:    daily,
		Weekly:   nutrition.WeeklyGoals(daily),
		Monthly:  nutrition.MonthlyGoals(daily),
		Defaults: defaults,
	})
}

// buildProfileResponse fills the computed fields. BMR and TDEE are only
// reported when the body metrics they need are all present. Goals here are
// computed from the profile even mid-onboarding, as a preview; the log and
// progress endpoints keep the default goals until onboarding completes.
func buildProfileResponse(p nutrition.Profile) profileResponse {
	goals, defaults := nutrition.ResolveDailyGoals(p)
	resp := profileResponse{Profile: p, Goals: goals, Defaults: defaults}
	if p.HasBodyMetrics() {
		bmr := nutrition.BMR(float64(*p.WeightLb), float64(*p.HeightIn), float64(*p.Age), *p.Sex)
		rounded := int(math.Round(bmr))
		tdee := nutrition.TDEE(bmr, p.ActivityLevel)
		resp.ComputedBMR = &rounded
		resp.ComputedTDEE = &tdee
	}
	return resp
}

// validateProfile returns a client-facing message for the first invalid
// field, or "" when the profile can be stored. Unknown enum values are
// rejected here even though goal computation would default them.
func validateProfile(p nutrition.Profile) string {
	switch {
	case p.Sex != nil && *p.Sex != "" && !p.Sex.Valid():
		return "sex must be one of: male, female"
	case !p.ActivityLevel.Valid():
		return "activity_level must be one of: sedentary, light, moderate, active, athlete"
	case !p.Goal.Valid():
		return "goal must be one of: lose_fast, lose, lose_slow, maintain, gain_slow, gain"
	case !p.ProteinTarget.Valid():
		return "protein_target must be one of: low, moderate, high"
	case outOfRange(p.Age, 1, 120):
		return "age must be between 1 and 120"
	case outOfRange(p.HeightIn, 12, 108):
		return "height_in must be between 12 and 108"
	case outOfRange(p.WeightLb, 1, 1500):
		return "weight_lb must be between 1 and 1500"
	case outOfRange(p.GoalWeightLb, 1, 1500):
		return "goal_weight_lb must be between 1 and 1500"
	case p.BodyFatPct != nil && (*p.BodyFatPct < 0 || *p.BodyFatPct > 100):
		return "body_fat_pct must be between 0 and 100"
	}
	return ""
}

func outOfRange(v *int, lo, hi int) bool {
	return v != nil && (*v < lo || *v > hi)
}
