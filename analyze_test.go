package main

import (
	"context"
	"math/rand/v2"
	"net/http"
	"testing"
)

func TestAnalyzeFood_MatchesSample(t *testing.T) {
	router, _ := setupAPITest(t)

	cases := []struct {
		description string
		wantName    string
		wantCal     float64
	}{
		{"Protein shake after the gym", "Protein Shake", 160},
		{"eggs and toast", "Eggs, Avocado, and Toast", 450},
		{"leftover SALMON", "Salmon with Rice and Broccoli", 729},
	}
	for _, tc := range cases {
		t.Run(tc.description, func(t *testing.T) {
			w := doRequest(router, "POST", "/api/food/analyze", `{"description":"`+tc.description+`"}`)
			expectStatus(t, w, http.StatusOK)
			got := decode[analysis](t, w)
			if !got.Matched || got.Name != tc.wantName || got.Calories != tc.wantCal {
				t.Errorf("analysis = %+v, want matched %q at %v kcal", got, tc.wantName, tc.wantCal)
			}
			if len(got.Items) == 0 {
				t.Error("expected the sample's item breakdown")
			}
		})
	}
}

// TestAnalyzeFood_Estimate checks an unknown meal gets a capitalized name and
// macros inside the estimate ranges.
func TestAnalyzeFood_Estimate(t *testing.T) {
	router, _ := setupAPITest(t)

	w := doRequest(router, "POST", "/api/food/analyze", `{"description":"  pizza slice "}`)
	expectStatus(t, w, http.StatusOK)
	got := decode[analysis](t, w)

	if got.Matched {
		t.Error("expected an estimate, not a sample match")
	}
	if got.Name != "Pizza slice" {
		t.Errorf("name = %q, want %q", got.Name, "Pizza slice")
	}
	checks := []struct {
		field  string
		v      float64
		lo, hi float64
	}{
		{"calories", got.Calories, 300, 700},
		{"protein", got.Protein, 15, 40},
		{"carbs", got.Carbs, 20, 60},
		{"fat", got.Fat, 10, 30},
	}
	for _, c := range checks {
		if c.v < c.lo || c.v > c.hi || c.v != float64(int(c.v)) {
			t.Errorf("%s = %v, want a whole number in [%v, %v]", c.field, c.v, c.lo, c.hi)
		}
	}
	if len(got.Items) != 1 || got.Items[0].Name != "pizza slice" {
		t.Errorf("items = %+v, want a single item named after the input", got.Items)
	}
}

func TestAnalyzeFood_Invalid(t *testing.T) {
	router, _ := setupAPITest(t)

	for _, body := range []string{`{"description":"   "}`, `{}`, `not json`} {
		w := doRequest(router, "POST", "/api/food/analyze", body)
		expectStatus(t, w, http.StatusBadRequest)
	}
}

func TestSampleAnalyzer_Deterministic(t *testing.T) {
	a := newSampleAnalyzer(rand.New(rand.NewPCG(7, 7)))
	b := newSampleAnalyzer(rand.New(rand.NewPCG(7, 7)))

	ra, _ := a.Analyze(context.Background(), "mystery stew")
	rb, _ := b.Analyze(context.Background(), "mystery stew")
	if ra.Calories != rb.Calories || ra.Protein != rb.Protein || ra.Carbs != rb.Carbs || ra.Fat != rb.Fat {
		t.Errorf("same seed gave %+v and %+v", ra, rb)
	}
}

func TestMatchKey(t *testing.T) {
	cases := map[string]string{
		"Eggs, Avocado, and Toast": "eggs",
		"Chipotle Chicken Bowl":    "chipotle",
		"Greek Yogurt":             "greek",
		"":                         "",
		"  ":                       "",
	}
	for in, want := range cases {
		if got := matchKey(in); got != want {
			t.Errorf("matchKey(%q) = %q, want %q", in, got, want)
		}
	}
}
