package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/punchamoorthee/revenueops/internal/models"
)

var ErrScenarioNotFound = errors.New("scenario not found")

// Querier is satisfied by both the pool and a transaction.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	Db *pgxpool.Pool
}

func NewStore(ctx context.Context, connString string) (*Store, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return &Store{Db: pool}, nil
}

func (s *Store) Close() {
	s.Db.Close()
}

// Migrate creates missing tables.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.Db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}
	return nil
}

// GetScenario retrieves a stored fact set by ID.
func (s *Store) GetScenario(ctx context.Context, id int64) (*models.Scenario, error) {
	return GetScenario(ctx, s.Db, id)
}

// GetScenario reads a scenario through q, so it can run inside a transaction.
func GetScenario(ctx context.Context, q Querier, id int64) (*models.Scenario, error) {
	var sc models.Scenario
	var facts []byte
	err := q.QueryRow(ctx,
		"SELECT id, name, facts, created_at FROM scenarios WHERE id = $1",
		id).Scan(&sc.ID, &sc.Name, &facts, &sc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrScenarioNotFound
		}
		return nil, fmt.Errorf("scenario query failed: %w", err)
	}
	if err := json.Unmarshal(facts, &sc.Facts); err != nil {
		return nil, fmt.Errorf("stored facts for scenario %d are corrupt: %w", id, err)
	}
	return &sc, nil
}

// ListScenarios returns the most recent scenarios first.
func (s *Store) ListScenarios(ctx context.Context, limit int) ([]models.Scenario, error) {
	rows, err := s.Db.Query(ctx,
		"SELECT id, name, facts, created_at FROM scenarios ORDER BY created_at DESC, id DESC LIMIT $1",
		limit)
	if err != nil {
		return nil, fmt.Errorf("scenario list failed: %w", err)
	}
	defer rows.Close()

	scenarios := []models.Scenario{}
	for rows.Next() {
		var sc models.Scenario
		var facts []byte
		if err := rows.Scan(&sc.ID, &sc.Name, &facts, &sc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scenario scan failed: %w", err)
		}
		if err := json.Unmarshal(facts, &sc.Facts); err != nil {
			return nil, fmt.Errorf("stored facts for scenario %d are corrupt: %w", sc.ID, err)
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, rows.Err()
}
