package planstore

import (
	"context"
	"sync"

	"github.com/shipmint/rateengine/pkg/rateengine"
)

// Memory is an in-process plan store keeping a revision history per plan.
// Used in tests and when no database is configured.
type Memory struct {
	mu        sync.RWMutex
	revisions map[string][]rateengine.ShippingPlan
}

// NewMemory creates an empty in-memory plan store.
func NewMemory() *Memory {
	return &Memory{revisions: make(map[string][]rateengine.ShippingPlan)}
}

// Put appends a revision for the plan.
func (m *Memory) Put(plan rateengine.ShippingPlan) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revisions[plan.ID] = append(m.revisions[plan.ID], plan)
}

// GetPlan implements Store.
func (m *Memory) GetPlan(ctx context.Context, planID string) (*rateengine.ShippingPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	revs := m.revisions[planID]
	if len(revs) == 0 {
		return nil, ErrPlanNotFound
	}
	plan := revs[len(revs)-1]
	return &plan, nil
}

// GetRevisions implements Store.
func (m *Memory) GetRevisions(ctx context.Context, planID string) (*rateengine.ShippingPlan, *rateengine.ShippingPlan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	revs := m.revisions[planID]
	switch len(revs) {
	case 0:
		return nil, nil, ErrPlanNotFound
	case 1:
		plan := revs[0]
		return &plan, nil, ErrNoPriorRevision
	default:
		current := revs[len(revs)-1]
		prior := revs[len(revs)-2]
		return &current, &prior, nil
	}
}
