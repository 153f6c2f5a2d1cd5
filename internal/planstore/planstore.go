// Package planstore supplies shipping plan snapshots to the rate engine.
// Plans are authored elsewhere; this store is read-only from the engine's
// point of view.
package planstore

import (
	"context"
	"errors"

	"github.com/shipmint/rateengine/pkg/rateengine"
)

// ErrPlanNotFound indicates no plan exists for the given id.
var ErrPlanNotFound = errors.New("shipping plan not found")

// ErrNoPriorRevision indicates the plan has no earlier revision to diff
// against.
var ErrNoPriorRevision = errors.New("no prior plan revision")

// Store supplies shipping plan snapshots by value.
type Store interface {
	// GetPlan returns the current revision of a plan.
	GetPlan(ctx context.Context, planID string) (*rateengine.ShippingPlan, error)

	// GetRevisions returns the current and the immediately prior revision
	// of a plan, for change review.
	GetRevisions(ctx context.Context, planID string) (current, prior *rateengine.ShippingPlan, err error)
}
