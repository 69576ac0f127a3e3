package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lg/nutritrack-go-api/internal/nutrition"
)

// pgStore is the Postgres-backed Store. Schema lives in db/*.sql and is
// applied by cmd/migrate.
type pgStore struct {
	pool *pgxpool.Pool
}

// newPGStore creates a connection pool. We use a pool (not a single conn)
// because Neon closes idle connections after ~5 minutes.
func newPGStore(ctx context.Context, dbURL string) (*pgStore, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse DB URL: %w", err)
	}
	// Use simple query protocol to avoid "cached plan must not change result type"
	// errors from Neon's server-side prepared statement cache after schema changes.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &pgStore{pool: pool}, nil
}

func (s *pgStore) Close() { s.pool.Close() }

/* ─── Query helpers ──────────────────────────────────────────────────── */

// queryOne runs a query and scans the first row into T using RowToStructByName.
// Logs query and scan errors for debugging (e.g. struct/column mismatches).
func queryOne[T any](ctx context.Context, pool *pgxpool.Pool, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := pool.Query(ctx, sql, args)
	if err != nil {
		log.Printf("[queryOne] Query error: %v", err)
		var zero T
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		log.Printf("[queryOne] Scan error: %v", err)
	}
	return result, err
}

// queryMany runs a query and scans all rows into []T using RowToStructByName.
func queryMany[T any](ctx context.Context, pool *pgxpool.Pool, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := pool.Query(ctx, sql, args)
	if err != nil {
		log.Printf("[queryMany] Query error: %v", err)
		return nil, err
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.Printf("[queryMany] Scan error: %v", err)
	}
	return results, err
}

// jsonArg encodes v for a jsonb column. Under the simple protocol pgx cannot
// infer the parameter type, so the SQL casts a text argument with ::jsonb.
func jsonArg(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

/* ─── Profile ────────────────────────────────────────────────────────── */

func (s *pgStore) LoadProfile(ctx context.Context) (*nutrition.Profile, error) {
	var p nutrition.Profile
	err := s.pool.QueryRow(ctx, "SELECT data FROM profile WHERE id = 1").Scan(&p)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return &p, nil
}

func (s *pgStore) SaveProfile(ctx context.Context, p nutrition.Profile) error {
	data, err := jsonArg(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO profile (id, data) VALUES (1, @data::jsonb)
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		pgx.NamedArgs{"data": data})
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

/* ─── Day logs ───────────────────────────────────────────────────────── */

func (s *pgStore) LoadDayLog(ctx context.Context, day nutrition.Date) ([]nutrition.FoodEntry, error) {
	var entries []nutrition.FoodEntry
	err := s.pool.QueryRow(ctx,
		"SELECT entries FROM day_logs WHERE date = @date",
		pgx.NamedArgs{"date": day.String()}).Scan(&entries)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load day log %s: %w", day, err)
	}
	return entries, nil
}

func (s *pgStore) SaveDayLog(ctx context.Context, day nutrition.Date, entries []nutrition.FoodEntry) error {
	if entries == nil {
		entries = []nutrition.FoodEntry{}
	}
	data, err := jsonArg(entries)
	if err != nil {
		return fmt.Errorf("encode day log %s: %w", day, err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO day_logs (date, entries) VALUES (@date, @entries::jsonb)
		 ON CONFLICT (date) DO UPDATE SET entries = EXCLUDED.entries, updated_at = now()`,
		pgx.NamedArgs{"date": day.String(), "entries": data})
	if err != nil {
		return fmt.Errorf("save day log %s: %w", day, err)
	}
	return nil
}

func (s *pgStore) LoadHistory(ctx context.Context, start, end nutrition.Date) (nutrition.History, error) {
	rows, err := queryMany[dayLogRow](ctx, s.pool,
		"SELECT date, entries FROM day_logs WHERE date BETWEEN @start AND @end ORDER BY date",
		pgx.NamedArgs{"start": start.String(), "end": end.String()})
	if err != nil {
		return nil, fmt.Errorf("load history %s..%s: %w", start, end, err)
	}
	return historyFromRows(rows), nil
}

func (s *pgStore) LoadAllHistory(ctx context.Context) (nutrition.History, error) {
	rows, err := queryMany[dayLogRow](ctx, s.pool,
		"SELECT date, entries FROM day_logs ORDER BY date", nil)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return historyFromRows(rows), nil
}

/* ─── Coins ──────────────────────────────────────────────────────────── */

func (s *pgStore) LoadCoinBalance(ctx context.Context) (int, error) {
	var balance int
	err := s.pool.QueryRow(ctx, "SELECT balance FROM coin_balance WHERE id = 1").Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load coin balance: %w", err)
	}
	return balance, nil
}

func (s *pgStore) SaveCoinBalance(ctx context.Context, balance int) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO coin_balance (id, balance) VALUES (1, @balance)
		 ON CONFLICT (id) DO UPDATE SET balance = EXCLUDED.balance`,
		pgx.NamedArgs{"balance": balance})
	if err != nil {
		return fmt.Errorf("save coin balance: %w", err)
	}
	return nil
}

/* ─── Weight log ─────────────────────────────────────────────────────── */

const weightColumns = "id, date, weight_lbs, created_at"

func (s *pgStore) ListWeights(ctx context.Context, start, end nutrition.Date) ([]weightEntry, error) {
	entries, err := queryMany[weightEntry](ctx, s.pool,
		"SELECT "+weightColumns+" FROM weight_log WHERE date BETWEEN @start AND @end ORDER BY date ASC",
		pgx.NamedArgs{"start": start.String(), "end": end.String()})
	if err != nil {
		return nil, fmt.Errorf("list weights: %w", err)
	}
	return entries, nil
}

func (s *pgStore) AllWeights(ctx context.Context) ([]weightEntry, error) {
	entries, err := queryMany[weightEntry](ctx, s.pool,
		"SELECT "+weightColumns+" FROM weight_log ORDER BY date ASC", nil)
	if err != nil {
		return nil, fmt.Errorf("list weights: %w", err)
	}
	return entries, nil
}

func (s *pgStore) UpsertWeight(ctx context.Context, day nutrition.Date, weightLbs float64) (weightEntry, error) {
	entry, err := queryOne[weightEntry](ctx, s.pool,
		`INSERT INTO weight_log (date, weight_lbs) VALUES (@date, @weight_lbs)
		 ON CONFLICT (date) DO UPDATE SET weight_lbs = EXCLUDED.weight_lbs
		 RETURNING `+weightColumns,
		pgx.NamedArgs{"date": day.String(), "weight_lbs": weightLbs})
	if err != nil {
		return weightEntry{}, fmt.Errorf("upsert weight %s: %w", day, err)
	}
	return entry, nil
}

func (s *pgStore) DeleteWeight(ctx context.Context, day nutrition.Date) error {
	tag, err := s.pool.Exec(ctx,
		"DELETE FROM weight_log WHERE date = @date",
		pgx.NamedArgs{"date": day.String()})
	if err != nil {
		return fmt.Errorf("delete weight %s: %w", day, err)
	}
	if tag.RowsAffected() == 0 {
		return errNotFound
	}
	return nil
}

func (s *pgStore) LatestWeight(ctx context.Context) (weightEntry, error) {
	entry, err := queryOne[weightEntry](ctx, s.pool,
		"SELECT "+weightColumns+" FROM weight_log ORDER BY date DESC LIMIT 1", nil)
	if errors.Is(err, pgx.ErrNoRows) {
		return weightEntry{}, errNotFound
	}
	if err != nil {
		return weightEntry{}, fmt.Errorf("latest weight: %w", err)
	}
	return entry, nil
}

/* ─── Account ────────────────────────────────────────────────────────── */

const userColumns = "id, username, email, auth_token, password, created_at"

func (s *pgStore) UserByUsername(ctx context.Context, username string) (user, error) {
	u, err := queryOne[user](ctx, s.pool,
		"SELECT "+userColumns+" FROM users WHERE username = @username",
		pgx.NamedArgs{"username": username})
	if errors.Is(err, pgx.ErrNoRows) {
		return user{}, errNotFound
	}
	return u, err
}

func (s *pgStore) UserIDForToken(ctx context.Context, token string) (int, error) {
	var id int
	err := s.pool.QueryRow(ctx, "SELECT id FROM users WHERE auth_token = $1", token).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, errNotFound
	}
	return id, err
}

func (s *pgStore) CreateUser(ctx context.Context, u user) (user, error) {
	created, err := queryOne[user](ctx, s.pool,
		`INSERT INTO users (username, email, password, auth_token)
		 VALUES (@username, @email, @password, @auth_token)
		 RETURNING `+userColumns,
		pgx.NamedArgs{
			"username":   u.Username,
			"email":      u.Email,
			"password":   u.Password,
			"auth_token": u.AuthToken,
		})
	if err != nil {
		return user{}, fmt.Errorf("create user %q: %w", u.Username, err)
	}
	return created, nil
}
