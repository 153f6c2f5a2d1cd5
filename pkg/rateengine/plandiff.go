package rateengine

import (
	"math"
	"sort"
)

// DiffTolerance is the absolute per-field tolerance below which a zone price
// difference is not considered a change. The comparison is absolute, not
// relative: rate amounts are currency values, and relative thresholds
// misbehave on small base prices.
const DiffTolerance = 0.01

// DiffResult reports which couriers of a plan revision changed materially.
type DiffResult struct {
	HasChanges      bool  `json:"has_changes"`
	ChangedCouriers []int `json:"changed_couriers"`
}

// DiffPlans compares two snapshots of a plan's courier pricing, index-aligned
// by position: both slices are expected to represent the same ordered set of
// couriers across a revision. A courier is flagged when any of the five
// numeric fields of any of its five zones differs by more than DiffTolerance
// in either direction.
//
// Diffing is advisory, so this never errors: an empty snapshot on either
// side means there is nothing to compare, and a courier present in only one
// snapshot is skipped rather than flagged.
func DiffPlans(current, original []CourierPricing) DiffResult {
	if len(current) == 0 || len(original) == 0 {
		return DiffResult{ChangedCouriers: []int{}}
	}

	n := len(current)
	if len(original) < n {
		n = len(original)
	}

	changed := make([]int, 0)
	for i := 0; i < n; i++ {
		if courierChanged(&current[i], &original[i]) {
			changed = append(changed, i)
		}
	}
	sort.Ints(changed)
	return DiffResult{HasChanges: len(changed) > 0, ChangedCouriers: changed}
}

func courierChanged(a, b *CourierPricing) bool {
	for _, z := range Zones {
		za, okA := a.ZonePricing[z]
		zb, okB := b.ZonePricing[z]
		if okA != okB {
			return true
		}
		if !okA {
			continue
		}
		if differs(za.BasePrice, zb.BasePrice) ||
			differs(za.IncrementPrice, zb.IncrementPrice) ||
			differs(za.RTOBasePrice, zb.RTOBasePrice) ||
			differs(za.RTOIncrementPrice, zb.RTOIncrementPrice) ||
			differs(za.FlatRTOCharge, zb.FlatRTOCharge) {
			return true
		}
	}
	return false
}

func differs(a, b float64) bool {
	return math.Abs(a-b) > DiffTolerance
}
