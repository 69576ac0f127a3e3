package main

import (
	"net/http"
	"strings"
	"testing"

	"lg/nutritrack-go-api/internal/nutrition"
)

// TestExportImport_RoundTrip exports a populated server and imports the
// bundle into an empty one.
func TestExportImport_RoundTrip(t *testing.T) {
	src, _ := setupAPITest(t)

	expectStatus(t, doRequest(src, "PUT", "/api/profile", fullProfileJSON), http.StatusOK)
	logEntry(t, src, `{"name":"Oats","calories":300,"protein":10,"date":"2026-10-16"}`)
	logEntry(t, src, `{"name":"Dinner","calories":650,"planned":true}`)
	expectStatus(t, doRequest(src, "POST", "/api/weight-log", `{"date":"2026-10-15","weight_lbs":180.2}`), http.StatusCreated)

	w := doRequest(src, "GET", "/api/export", "")
	expectStatus(t, w, http.StatusOK)
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "nutritrack-export.json") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	raw := w.Body.String()
	bundle := decode[exportBundle](t, w)
	if bundle.Profile == nil || bundle.Coins != 15 || len(bundle.History) != 2 || len(bundle.Weights) != 1 {
		t.Fatalf("bundle = %+v", bundle)
	}
	if !bundle.ExportedAt.Equal(testNow) {
		t.Errorf("exported_at = %v, want %v", bundle.ExportedAt, testNow)
	}

	dst, _ := setupAPITest(t)
	w = doRequest(dst, "POST", "/api/import", raw)
	expectStatus(t, w, http.StatusOK)
	summary := decode[struct {
		Profile bool `json:"profile"`
		Days    int  `json:"days"`
		Weights int  `json:"weights"`
		Coins   int  `json:"coins"`
	}](t, w)
	if !summary.Profile || summary.Days != 2 || summary.Weights != 1 || summary.Coins != 15 {
		t.Errorf("import summary = %+v", summary)
	}

	w = doRequest(dst, "GET", "/api/food-log", "")
	expectStatus(t, w, http.StatusOK)
	day := decode[dailySummary](t, w)
	if len(day.Entries) != 1 || day.Entries[0].Name != "Dinner" || day.Entries[0].Confirmed {
		t.Errorf("imported today = %+v, want the planned dinner", day.Entries)
	}
	if day.Coins != 15 {
		t.Errorf("imported coins = %d, want 15", day.Coins)
	}
	if day.Goals.Calories != 2263 {
		t.Errorf("imported goals = %+v, want 2263 kcal from the profile", day.Goals)
	}
	if day.Streak != 2 {
		t.Errorf("imported streak = %d, want 2", day.Streak)
	}

	w = doRequest(dst, "GET", "/api/weight-log?start=2026-10-01&end=2026-10-31", "")
	expectStatus(t, w, http.StatusOK)
	weights := decode[[]weightEntry](t, w)
	if len(weights) != 1 || weights[0].WeightLBS != 180.2 || weights[0].Date.Day() != nutrition.NewDate(2026, 10, 15) {
		t.Errorf("imported weights = %+v", weights)
	}
}

// TestImport_Merges checks that days missing from the bundle survive and a
// zero coin balance leaves the stored one alone.
func TestImport_Merges(t *testing.T) {
	router, _ := setupAPITest(t)

	logEntry(t, router, `{"name":"Kept","calories":100,"date":"2026-10-01"}`)
	logEntry(t, router, `{"name":"Replaced","calories":100,"date":"2026-10-02"}`)

	body := `{"history":{"2026-10-02":[{"id":"x","name":"Imported","calories":400,"confirmed":true,
		"logged_at":"2026-10-02T08:00:00Z"}]},"coins":0}`
	w := doRequest(router, "POST", "/api/import", body)
	expectStatus(t, w, http.StatusOK)

	w = doRequest(router, "GET", "/api/food-log?date=2026-10-01", "")
	expectStatus(t, w, http.StatusOK)
	if s := decode[dailySummary](t, w); len(s.Entries) != 1 || s.Entries[0].Name != "Kept" {
		t.Errorf("2026-10-01 = %+v, want the kept entry", s.Entries)
	}

	w = doRequest(router, "GET", "/api/food-log?date=2026-10-02", "")
	expectStatus(t, w, http.StatusOK)
	s := decode[dailySummary](t, w)
	if len(s.Entries) != 1 || s.Entries[0].Name != "Imported" {
		t.Errorf("2026-10-02 = %+v, want the imported entry", s.Entries)
	}
	if s.Coins != 10 {
		t.Errorf("coins = %d, want the stored 10", s.Coins)
	}
	expectStatus(t, doRequest(router, "GET", "/api/profile", ""), http.StatusNotFound)
}

func TestImport_Invalid(t *testing.T) {
	router, _ := setupAPITest(t)

	cases := []struct {
		name string
		body string
	}{
		{"malformed", `{"history":`},
		{"negative coins", `{"coins":-5}`},
		{"bad history key", `{"history":{"yesterday":[]}}`},
		{"zero weight", `{"weights":[{"date":"2026-10-01","weight_lbs":0}]}`},
		{"weight without date", `{"weights":[{"weight_lbs":180}]}`},
		{"negative entry calories", `{"history":{"2026-10-16":[{"id":"a","name":"Oats","calories":-900}]}}`},
		{"duplicate entry ids", `{"history":{"2026-10-16":[{"id":"dup","name":"A","calories":100},{"id":"dup","name":"B","calories":500}]}}`},
		{"blank entry name", `{"history":{"2026-10-16":[{"id":"a","name":" ","calories":100}]}}`},
		{"negative item fat", `{"history":{"2026-10-16":[{"id":"a","name":"Shake","items":[{"name":"Whey","fat":-1}]}]}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(router, "POST", "/api/import", tc.body)
			expectStatus(t, w, http.StatusBadRequest)
		})
	}
}

// TestImport_RejectedBundleWritesNothing checks a bad day log stops the
// import before the valid sections are stored.
func TestImport_RejectedBundleWritesNothing(t *testing.T) {
	router, _ := setupAPITest(t)

	body := `{"profile":` + fullProfileJSON + `,"coins":50,
		"weights":[{"date":"2026-10-15","weight_lbs":180}],
		"history":{
			"2026-10-15":[{"id":"ok","name":"Rice","calories":200}],
			"2026-10-16":[{"id":"dup","name":"A","calories":-900},{"id":"dup","name":"B","calories":500}]}}`
	w := doRequest(router, "POST", "/api/import", body)
	expectStatus(t, w, http.StatusBadRequest)

	expectStatus(t, doRequest(router, "GET", "/api/profile", ""), http.StatusNotFound)

	w = doRequest(router, "GET", "/api/food-log?date=2026-10-15", "")
	expectStatus(t, w, http.StatusOK)
	s := decode[dailySummary](t, w)
	if len(s.Entries) != 0 || s.Coins != 0 {
		t.Errorf("after rejected import: entries = %+v, coins = %d; want none", s.Entries, s.Coins)
	}

	w = doRequest(router, "GET", "/api/weight-log?start=2026-10-01&end=2026-10-31", "")
	expectStatus(t, w, http.StatusOK)
	if weights := decode[[]weightEntry](t, w); len(weights) != 0 {
		t.Errorf("weights = %+v, want none", weights)
	}
}

// TestImport_AssignsMissingIDs checks entries without an id get a unique one
// that the entry endpoints can address.
func TestImport_AssignsMissingIDs(t *testing.T) {
	router, _ := setupAPITest(t)

	body := `{"history":{"2026-10-17":[
		{"name":"Toast","calories":100,"confirmed":true},
		{"name":"Jam","calories":50,"confirmed":true}]}}`
	expectStatus(t, doRequest(router, "POST", "/api/import", body), http.StatusOK)

	w := doRequest(router, "GET", "/api/food-log", "")
	expectStatus(t, w, http.StatusOK)
	s := decode[dailySummary](t, w)
	if len(s.Entries) != 2 {
		t.Fatalf("entries = %+v, want 2", s.Entries)
	}
	if s.Entries[0].ID == "" || s.Entries[0].ID == s.Entries[1].ID {
		t.Fatalf("ids = %q, %q; want two distinct ids", s.Entries[0].ID, s.Entries[1].ID)
	}
	if s.Eaten.Calories != 150 {
		t.Errorf("eaten = %v, want 150", s.Eaten.Calories)
	}

	expectStatus(t, doRequest(router, "DELETE", "/api/food-log/entries/"+s.Entries[0].ID, ""), http.StatusNoContent)
	w = doRequest(router, "GET", "/api/food-log", "")
	expectStatus(t, w, http.StatusOK)
	if left := decode[dailySummary](t, w).Entries; len(left) != 1 || left[0].Name != "Jam" {
		t.Errorf("entries after delete = %+v, want only Jam", left)
	}
}
