package main

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"lg/nutritrack-go-api/internal/nutrition"
)

//go:embed schema_sqlite.sql
var sqliteSchema string

// sqliteStore is the single-file Store used for local runs and tests.
type sqliteStore struct {
	db *sql.DB
}

func newSQLiteStore(path string) (*sqliteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Close() { s.db.Close() }

/* ─── Profile ────────────────────────────────────────────────────────── */

func (s *sqliteStore) LoadProfile(ctx context.Context) (*nutrition.Profile, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM profile WHERE id = 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	var p nutrition.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}

func (s *sqliteStore) SaveProfile(ctx context.Context, p nutrition.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO profile (id, data) VALUES (1, ?)
ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`, string(data))
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

/* ─── Day logs ───────────────────────────────────────────────────────── */

func (s *sqliteStore) LoadDayLog(ctx context.Context, day nutrition.Date) ([]nutrition.FoodEntry, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT entries FROM day_logs WHERE date = ?`, day.String()).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load day log %s: %w", day, err)
	}
	var entries []nutrition.FoodEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("decode day log %s: %w", day, err)
	}
	return entries, nil
}

func (s *sqliteStore) SaveDayLog(ctx context.Context, day nutrition.Date, entries []nutrition.FoodEntry) error {
	if entries == nil {
		entries = []nutrition.FoodEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode day log %s: %w", day, err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO day_logs (date, entries) VALUES (?, ?)
ON CONFLICT(date) DO UPDATE SET entries = excluded.entries, updated_at = CURRENT_TIMESTAMP`,
		day.String(), string(data))
	if err != nil {
		return fmt.Errorf("save day log %s: %w", day, err)
	}
	return nil
}

func (s *sqliteStore) LoadHistory(ctx context.Context, start, end nutrition.Date) (nutrition.History, error) {
	rows, err := s.queryDayLogs(ctx,
		`SELECT date, entries FROM day_logs WHERE date BETWEEN ? AND ? ORDER BY date`,
		start.String(), end.String())
	if err != nil {
		return nil, fmt.Errorf("load history %s..%s: %w", start, end, err)
	}
	return historyFromRows(rows), nil
}

func (s *sqliteStore) LoadAllHistory(ctx context.Context) (nutrition.History, error) {
	rows, err := s.queryDayLogs(ctx, `SELECT date, entries FROM day_logs ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return historyFromRows(rows), nil
}

func (s *sqliteStore) queryDayLogs(ctx context.Context, query string, args ...any) ([]dayLogRow, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []dayLogRow
	for rows.Next() {
		var rawDate, rawEntries string
		if err := rows.Scan(&rawDate, &rawEntries); err != nil {
			return nil, err
		}
		day, err := time.Parse(nutrition.DateLayout, rawDate)
		if err != nil {
			return nil, fmt.Errorf("parse day_logs date %q: %w", rawDate, err)
		}
		row := dayLogRow{Date: DateOnly{day}}
		if err := json.Unmarshal([]byte(rawEntries), &row.Entries); err != nil {
			return nil, fmt.Errorf("decode day log %s: %w", rawDate, err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

/* ─── Coins ──────────────────────────────────────────────────────────── */

func (s *sqliteStore) LoadCoinBalance(ctx context.Context) (int, error) {
	var balance int
	err := s.db.QueryRowContext(ctx, `SELECT balance FROM coin_balance WHERE id = 1`).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load coin balance: %w", err)
	}
	return balance, nil
}

func (s *sqliteStore) SaveCoinBalance(ctx context.Context, balance int) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO coin_balance (id, balance) VALUES (1, ?)
ON CONFLICT(id) DO UPDATE SET balance = excluded.balance`, balance)
	if err != nil {
		return fmt.Errorf("save coin balance: %w", err)
	}
	return nil
}

/* ─── Weight log ─────────────────────────────────────────────────────── */

func (s *sqliteStore) ListWeights(ctx context.Context, start, end nutrition.Date) ([]weightEntry, error) {
	entries, err := s.queryWeights(ctx,
		`SELECT id, date, weight_lbs, created_at FROM weight_log WHERE date BETWEEN ? AND ? ORDER BY date ASC`,
		start.String(), end.String())
	if err != nil {
		return nil, fmt.Errorf("list weights: %w", err)
	}
	return entries, nil
}

func (s *sqliteStore) AllWeights(ctx context.Context) ([]weightEntry, error) {
	entries, err := s.queryWeights(ctx,
		`SELECT id, date, weight_lbs, created_at FROM weight_log ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("list weights: %w", err)
	}
	return entries, nil
}

func (s *sqliteStore) UpsertWeight(ctx context.Context, day nutrition.Date, weightLbs float64) (weightEntry, error) {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO weight_log (date, weight_lbs) VALUES (?, ?)
ON CONFLICT(date) DO UPDATE SET weight_lbs = excluded.weight_lbs`, day.String(), weightLbs)
	if err != nil {
		return weightEntry{}, fmt.Errorf("upsert weight %s: %w", day, err)
	}
	entries, err := s.queryWeights(ctx,
		`SELECT id, date, weight_lbs, created_at FROM weight_log WHERE date = ?`, day.String())
	if err != nil {
		return weightEntry{}, fmt.Errorf("reload weight %s: %w", day, err)
	}
	if len(entries) == 0 {
		return weightEntry{}, errNotFound
	}
	return entries[0], nil
}

func (s *sqliteStore) DeleteWeight(ctx context.Context, day nutrition.Date) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM weight_log WHERE date = ?`, day.String())
	if err != nil {
		return fmt.Errorf("delete weight %s: %w", day, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete weight %s: %w", day, err)
	}
	if n == 0 {
		return errNotFound
	}
	return nil
}

func (s *sqliteStore) LatestWeight(ctx context.Context) (weightEntry, error) {
	entries, err := s.queryWeights(ctx,
		`SELECT id, date, weight_lbs, created_at FROM weight_log ORDER BY date DESC LIMIT 1`)
	if err != nil {
		return weightEntry{}, fmt.Errorf("latest weight: %w", err)
	}
	if len(entries) == 0 {
		return weightEntry{}, errNotFound
	}
	return entries[0], nil
}

func (s *sqliteStore) queryWeights(ctx context.Context, query string, args ...any) ([]weightEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []weightEntry{}
	for rows.Next() {
		var (
			e                   weightEntry
			rawDate, rawCreated string
		)
		if err := rows.Scan(&e.ID, &rawDate, &e.WeightLBS, &rawCreated); err != nil {
			return nil, err
		}
		day, err := time.Parse(nutrition.DateLayout, rawDate)
		if err != nil {
			return nil, fmt.Errorf("parse weight_log date %q: %w", rawDate, err)
		}
		e.Date = DateOnly{day}
		e.CreatedAt = parseSQLiteTime(rawCreated)
		out = append(out, e)
	}
	return out, rows.Err()
}

/* ─── Account ────────────────────────────────────────────────────────── */

func (s *sqliteStore) UserByUsername(ctx context.Context, username string) (user, error) {
	var (
		u          user
		rawCreated string
	)
	err := s.db.QueryRowContext(ctx, `
SELECT id, username, email, auth_token, password, created_at
FROM users WHERE username = ?`, username).
		Scan(&u.ID, &u.Username, &u.Email, &u.AuthToken, &u.Password, &rawCreated)
	if errors.Is(err, sql.ErrNoRows) {
		return user{}, errNotFound
	}
	if err != nil {
		return user{}, fmt.Errorf("load user %q: %w", username, err)
	}
	u.CreatedAt = parseSQLiteTime(rawCreated)
	return u, nil
}

func (s *sqliteStore) UserIDForToken(ctx context.Context, token string) (int, error) {
	var id int
	err := s.db.QueryRowContext(ctx, `SELECT id FROM users WHERE auth_token = ?`, token).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, errNotFound
	}
	return id, err
}

func (s *sqliteStore) CreateUser(ctx context.Context, u user) (user, error) {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO users (username, email, password, auth_token) VALUES (?, ?, ?, ?)`,
		u.Username, u.Email, u.Password, u.AuthToken)
	if err != nil {
		return user{}, fmt.Errorf("create user %q: %w", u.Username, err)
	}
	return s.UserByUsername(ctx, u.Username)
}

// parseSQLiteTime reads a DATETIME column scanned as text. The driver may hand
// back either its own RFC 3339 rendering or the raw CURRENT_TIMESTAMP form.
func parseSQLiteTime(raw string) *time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
