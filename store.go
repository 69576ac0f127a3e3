package main

import (
	"context"
	"errors"
	"strings"

	"lg/nutritrack-go-api/internal/nutrition"
)

// errNotFound is returned by stores when a keyed row (user, token, weight
// entry) does not exist. Missing profiles, day logs and coin balances are
// not errors: they load as nil, empty and zero.
var errNotFound = errors.New("not found")

// Store persists the owner's profile, food history, coin balance, weight log
// and account. Callers serialise mutations; implementations only guarantee
// that each Save call is atomic.
type Store interface {
	LoadProfile(ctx context.Context) (*nutrition.Profile, error)
	SaveProfile(ctx context.Context, p nutrition.Profile) error

	LoadDayLog(ctx context.Context, day nutrition.Date) ([]nutrition.FoodEntry, error)
	SaveDayLog(ctx context.Context, day nutrition.Date, entries []nutrition.FoodEntry) error
	LoadHistory(ctx context.Context, start, end nutrition.Date) (nutrition.History, error)
	LoadAllHistory(ctx context.Context) (nutrition.History, error)

	LoadCoinBalance(ctx context.Context) (int, error)
	SaveCoinBalance(ctx context.Context, balance int) error

	ListWeights(ctx context.Context, start, end nutrition.Date) ([]weightEntry, error)
	AllWeights(ctx context.Context) ([]weightEntry, error)
	UpsertWeight(ctx context.Context, day nutrition.Date, weightLbs float64) (weightEntry, error)
	DeleteWeight(ctx context.Context, day nutrition.Date) error
	LatestWeight(ctx context.Context) (weightEntry, error)

	UserByUsername(ctx context.Context, username string) (user, error)
	UserIDForToken(ctx context.Context, token string) (int, error)
	CreateUser(ctx context.Context, u user) (user, error)

	Close()
}

// openStore picks the backend from the DB URL: postgres:// and
// postgresql:// go to pgx, anything else is a sqlite path with an optional
// "sqlite:" prefix.
func openStore(ctx context.Context, dbURL string) (Store, error) {
	if strings.HasPrefix(dbURL, "postgres://") || strings.HasPrefix(dbURL, "postgresql://") {
		s, err := newPGStore(ctx, dbURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	s, err := newSQLiteStore(strings.TrimPrefix(dbURL, "sqlite:"))
	if err != nil {
		return nil, err
	}
	return s, nil
}

// historyFromRows folds day_logs rows into a History, dropping empty days so
// that absent and empty are indistinguishable to callers.
func historyFromRows(rows []dayLogRow) nutrition.History {
	h := make(nutrition.History, len(rows))
	for _, r := range rows {
		if len(r.Entries) == 0 {
			continue
		}
		h[r.Date.Day()] = r.Entries
	}
	return h
}
