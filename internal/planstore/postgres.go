package planstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shipmint/rateengine/pkg/rateengine"
)

// Postgres reads plan snapshots from a shipping_plan_revisions table, where
// each row stores one immutable revision of a plan as JSONB:
//
//	shipping_plan_revisions(plan_id text, revision int, snapshot jsonb,
//	                        created_at timestamptz)
//
// Plan-editing flows append revisions; this store only ever reads.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPool creates a pgx pool with conservative sizing and timeouts.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 5
	cfg.MinConns = 0
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second
	cfg.ConnConfig.RuntimeParams["application_name"] = "shipmint-rateengine"
	cfg.ConnConfig.RuntimeParams["timezone"] = "UTC"
	cfg.ConnConfig.RuntimeParams["statement_timeout"] = "5000"

	return pgxpool.NewWithConfig(ctx, cfg)
}

// NewPostgres creates a Postgres plan store over an existing pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// GetPlan implements Store.
func (s *Postgres) GetPlan(ctx context.Context, planID string) (*rateengine.ShippingPlan, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT snapshot FROM shipping_plan_revisions
		 WHERE plan_id = $1 ORDER BY revision DESC LIMIT 1`, planID)
	return scanPlan(row)
}

// GetRevisions implements Store.
func (s *Postgres) GetRevisions(ctx context.Context, planID string) (*rateengine.ShippingPlan, *rateengine.ShippingPlan, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT snapshot FROM shipping_plan_revisions
		 WHERE plan_id = $1 ORDER BY revision DESC LIMIT 2`, planID)
	if err != nil {
		return nil, nil, fmt.Errorf("querying plan revisions: %w", err)
	}
	defer rows.Close()

	var plans []*rateengine.ShippingPlan
	for rows.Next() {
		var snapshot []byte
		if err := rows.Scan(&snapshot); err != nil {
			return nil, nil, fmt.Errorf("scanning plan revision: %w", err)
		}
		var plan rateengine.ShippingPlan
		if err := json.Unmarshal(snapshot, &plan); err != nil {
			return nil, nil, fmt.Errorf("decoding plan snapshot: %w", err)
		}
		plans = append(plans, &plan)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	switch len(plans) {
	case 0:
		return nil, nil, ErrPlanNotFound
	case 1:
		return plans[0], nil, ErrNoPriorRevision
	default:
		return plans[0], plans[1], nil
	}
}

func scanPlan(row pgx.Row) (*rateengine.ShippingPlan, error) {
	var snapshot []byte
	if err := row.Scan(&snapshot); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("scanning plan snapshot: %w", err)
	}
	var plan rateengine.ShippingPlan
	if err := json.Unmarshal(snapshot, &plan); err != nil {
		return nil, fmt.Errorf("decoding plan snapshot: %w", err)
	}
	return &plan, nil
}
