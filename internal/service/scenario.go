package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/punchamoorthee/revenueops/internal/domain"
	"github.com/punchamoorthee/revenueops/internal/engine"
	"github.com/punchamoorthee/revenueops/internal/models"
	"github.com/punchamoorthee/revenueops/internal/store"
)

var (
	ErrScenarioNotFound    = store.ErrScenarioNotFound
	ErrIdempotencyConflict = errors.New("request in progress")
	ErrIdempotencyMismatch = errors.New("key reuse with mismatched payload")
)

type ScenarioService struct {
	store  *store.Store
	engine *engine.Engine
}

func NewScenarioService(s *store.Store, e *engine.Engine) *ScenarioService {
	return &ScenarioService{store: s, engine: e}
}

// Evaluate converts wire facts and runs the engine.
func Evaluate(e *engine.Engine, req models.FactsRequest) ([]models.EntryResponse, error) {
	facts, err := req.ToFacts()
	if err != nil {
		return nil, err
	}
	entries, err := e.Evaluate(facts)
	if err != nil {
		return nil, err
	}
	return models.FromEntries(entries), nil
}

// CreateScenario stores a named fact set exactly once per idempotency key.
// The facts are evaluated before anything is written, so a scenario that
// cannot be evaluated is never stored. replayed is true when the key had
// already completed.
func (s *ScenarioService) CreateScenario(ctx context.Context, req models.ScenarioRequest, idempotencyKey, reqHash string) (resp *models.ScenarioResponse, replayed bool, err error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, false, domain.NewValidationError("name", "name is required")
	}
	if req.Facts == nil {
		return nil, false, domain.NewValidationError("facts", "facts are required")
	}
	entries, err := Evaluate(s.engine, *req.Facts)
	if err != nil {
		return nil, false, err
	}

	tx, err := s.store.Db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return nil, false, fmt.Errorf("tx begin failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// 1. Idempotency check
	var storedHash, storedStatus string
	var storedScenarioID *int64
	err = tx.QueryRow(ctx,
		"SELECT request_hash, status, scenario_id FROM idempotency_keys WHERE key = $1",
		idempotencyKey,
	).Scan(&storedHash, &storedStatus, &storedScenarioID)

	if err == nil {
		if storedHash != reqHash {
			return nil, false, ErrIdempotencyMismatch
		}
		if storedStatus != "completed" || storedScenarioID == nil {
			return nil, false, ErrIdempotencyConflict
		}
		sc, err := store.GetScenario(ctx, tx, *storedScenarioID)
		if err != nil {
			return nil, false, err
		}
		return &models.ScenarioResponse{Scenario: *sc, Entries: entries}, true, nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("idempotency query failed: %w", err)
	}

	// 2. Reservation
	_, err = tx.Exec(ctx,
		"INSERT INTO idempotency_keys (key, request_hash, status) VALUES ($1, $2, 'in_progress')",
		idempotencyKey, reqHash,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, false, ErrIdempotencyConflict
		}
		return nil, false, fmt.Errorf("key reservation failed: %w", err)
	}

	// 3. Store the facts
	factsJSON, err := json.Marshal(req.Facts)
	if err != nil {
		return nil, false, err
	}
	sc := models.Scenario{Name: req.Name, Facts: *req.Facts}
	err = tx.QueryRow(ctx,
		"INSERT INTO scenarios (name, facts) VALUES ($1, $2) RETURNING id, created_at",
		req.Name, factsJSON,
	).Scan(&sc.ID, &sc.CreatedAt)
	if err != nil {
		return nil, false, fmt.Errorf("scenario insert failed: %w", err)
	}

	// 4. Finalize idempotency & commit
	_, err = tx.Exec(ctx,
		"UPDATE idempotency_keys SET status = 'completed', scenario_id = $1, response_status = $2 WHERE key = $3",
		sc.ID, http.StatusCreated, idempotencyKey,
	)
	if err != nil {
		return nil, false, fmt.Errorf("idempotency update failed: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("tx commit failed: %w", err)
	}

	return &models.ScenarioResponse{Scenario: sc, Entries: entries}, false, nil
}

// GetScenario loads a scenario and evaluates it with the current rules.
func (s *ScenarioService) GetScenario(ctx context.Context, id int64) (*models.ScenarioResponse, error) {
	sc, err := s.store.GetScenario(ctx, id)
	if err != nil {
		return nil, err
	}
	entries, err := Evaluate(s.engine, sc.Facts)
	if err != nil {
		return nil, fmt.Errorf("scenario %d no longer evaluates: %w", id, err)
	}
	return &models.ScenarioResponse{Scenario: *sc, Entries: entries}, nil
}

// ListScenarios returns recent scenarios without evaluating them.
func (s *ScenarioService) ListScenarios(ctx context.Context, limit int) ([]models.Scenario, error) {
	return s.store.ListScenarios(ctx, limit)
}
