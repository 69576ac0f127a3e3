package main

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// testNow is Saturday 2026-10-17, so the week runs 2026-10-11..2026-10-17.
var testNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

const (
	testUsername = "owner"
	testPassword = "correct horse"
	testToken    = "test-token"
)

// newTestStore opens a sqlite store in a per-test temp dir.
func newTestStore(t *testing.T) *sqliteStore {
	t.Helper()
	store, err := newSQLiteStore(filepath.Join(t.TempDir(), "nutritrack.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(store.Close)
	return store
}

// setupAPITest creates a Handler over a fresh sqlite store with an owner
// account, a fixed clock and a seeded analyzer, and returns the full router.
func setupAPITest(t *testing.T) (*gin.Engine, *Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newTestStore(t)
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if _, err := store.CreateUser(context.Background(), user{
		Username:  testUsername,
		Password:  string(hash),
		AuthToken: testToken,
	}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	h := newHandler(store)
	h.now = func() time.Time { return testNow }
	h.analyzer = newSampleAnalyzer(rand.New(rand.NewPCG(1, 2)))

	router := gin.New()
	h.registerRoutes(router)
	return router, h
}

// doRequest sends an authenticated request. An empty body sends no body.
func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+testToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decode parses a JSON response body into T, failing the test on error.
func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to parse response: %v\nbody: %s", err, w.Body.String())
	}
	return v
}

// expectStatus fails the test immediately on an unexpected status code.
func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, w.Code, w.Body.String())
	}
}

// logEntry creates an entry through the API and returns it.
func logEntry(t *testing.T, router *gin.Engine, body string) foodEntryResponse {
	t.Helper()
	w := doRequest(router, "POST", "/api/food-log/entries", body)
	expectStatus(t, w, 201)
	return decode[foodEntryResponse](t, w)
}

const fullProfileJSON = `{"name":"Sam","age":30,"sex":"male","height_in":70,"weight_lb":180,
	"activity_level":"moderate","goal":"lose","protein_target":"moderate","onboarding_complete":true}`
