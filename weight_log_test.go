package main

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"lg/nutritrack-go-api/internal/nutrition"
)

// profileWeight fetches the stored profile and returns its weight.
func profileWeight(t *testing.T, router *gin.Engine) int {
	t.Helper()
	w := doRequest(router, "GET", "/api/profile", "")
	expectStatus(t, w, http.StatusOK)
	p := decode[profileResponse](t, w).Profile
	if p.WeightLb == nil {
		t.Fatal("profile has no weight")
	}
	return *p.WeightLb
}

// TestWeightLog_SyncsProfile checks the profile weight follows the newest
// weigh-in, not the most recently posted one.
func TestWeightLog_SyncsProfile(t *testing.T) {
	router, _ := setupAPITest(t)
	expectStatus(t, doRequest(router, "PUT", "/api/profile", fullProfileJSON), http.StatusOK)

	w := doRequest(router, "POST", "/api/weight-log", `{"date":"2026-10-17","weight_lbs":178.6}`)
	expectStatus(t, w, http.StatusCreated)
	entry := decode[weightEntry](t, w)
	if entry.Date.Day() != nutrition.NewDate(2026, 10, 17) || entry.WeightLBS != 178.6 {
		t.Errorf("entry = %+v", entry)
	}
	if got := profileWeight(t, router); got != 179 {
		t.Errorf("profile weight = %d, want 179", got)
	}

	// An older weigh-in does not move the profile.
	w = doRequest(router, "POST", "/api/weight-log", `{"date":"2026-10-01","weight_lbs":185}`)
	expectStatus(t, w, http.StatusCreated)
	if got := profileWeight(t, router); got != 179 {
		t.Errorf("profile weight = %d after older entry, want 179", got)
	}

	w = doRequest(router, "DELETE", "/api/weight-log/2026-10-17", "")
	expectStatus(t, w, http.StatusNoContent)
	if got := profileWeight(t, router); got != 185 {
		t.Errorf("profile weight = %d after deleting the newest, want 185", got)
	}

	// Goals follow the synced weight.
	w = doRequest(router, "GET", "/api/goals", "")
	expectStatus(t, w, http.StatusOK)
	if protein := decode[goalsResponse](t, w).Daily.Protein; protein != 185 {
		t.Errorf("daily protein = %d, want 185", protein)
	}
}

func TestWeightLog_ListAndUpsert(t *testing.T) {
	router, _ := setupAPITest(t)

	for _, body := range []string{
		`{"date":"2026-10-12","weight_lbs":182}`,
		`{"date":"2026-10-05","weight_lbs":184}`,
		`{"date":"2026-10-12","weight_lbs":181.4}`,
		`{"date":"2026-09-01","weight_lbs":190}`,
	} {
		expectStatus(t, doRequest(router, "POST", "/api/weight-log", body), http.StatusCreated)
	}

	w := doRequest(router, "GET", "/api/weight-log?start=2026-10-01&end=2026-10-31", "")
	expectStatus(t, w, http.StatusOK)
	entries := decode[[]weightEntry](t, w)
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Date.Day() != nutrition.NewDate(2026, 10, 5) || entries[1].WeightLBS != 181.4 {
		t.Errorf("entries = %+v, want 10-05 then 10-12 at 181.4", entries)
	}

	w = doRequest(router, "GET", "/api/weight-log?start=2025-01-01&end=2025-01-31", "")
	expectStatus(t, w, http.StatusOK)
	if w.Body.String() != "[]" {
		t.Errorf("empty range body = %s, want []", w.Body.String())
	}
}

// TestWeightLog_NoProfile checks weigh-ins work before onboarding without
// creating a profile.
func TestWeightLog_NoProfile(t *testing.T) {
	router, _ := setupAPITest(t)

	expectStatus(t, doRequest(router, "POST", "/api/weight-log", `{"date":"2026-10-17","weight_lbs":170}`), http.StatusCreated)
	expectStatus(t, doRequest(router, "GET", "/api/profile", ""), http.StatusNotFound)
}

func TestWeightLog_Invalid(t *testing.T) {
	router, _ := setupAPITest(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"missing range", "GET", "/api/weight-log", "", http.StatusBadRequest},
		{"reversed range", "GET", "/api/weight-log?start=2026-10-17&end=2026-10-01", "", http.StatusBadRequest},
		{"missing date", "POST", "/api/weight-log", `{"weight_lbs":180}`, http.StatusBadRequest},
		{"bad date", "POST", "/api/weight-log", `{"date":"17-10-2026","weight_lbs":180}`, http.StatusBadRequest},
		{"zero weight", "POST", "/api/weight-log", `{"date":"2026-10-17","weight_lbs":0}`, http.StatusBadRequest},
		{"huge weight", "POST", "/api/weight-log", `{"date":"2026-10-17","weight_lbs":10000}`, http.StatusBadRequest},
		{"delete missing", "DELETE", "/api/weight-log/2026-10-17", "", http.StatusNotFound},
		{"delete bad date", "DELETE", "/api/weight-log/today", "", http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(router, tc.method, tc.path, tc.body)
			expectStatus(t, w, tc.want)
		})
	}
}
