package rateengine_test

import (
	"testing"

	"github.com/shipmint/rateengine/pkg/rateengine"
	"github.com/stretchr/testify/assert"
)

func diffFixture() []rateengine.CourierPricing {
	return []rateengine.CourierPricing{
		*testCard(),
		func() rateengine.CourierPricing {
			c := *testCard()
			c.CourierID = "courier-2"
			zones := make(map[rateengine.Zone]rateengine.ZonePricing, len(c.ZonePricing))
			for z, zp := range c.ZonePricing {
				zp.BasePrice += 10
				zones[z] = zp
			}
			c.ZonePricing = zones
			return c
		}(),
	}
}

func TestDiffPlans_NoChanges(t *testing.T) {
	current := diffFixture()
	original := diffFixture()

	res := rateengine.DiffPlans(current, original)

	assert.False(t, res.HasChanges)
	assert.Empty(t, res.ChangedCouriers)
}

func TestDiffPlans_FlagsShiftBeyondTolerance(t *testing.T) {
	current := diffFixture()
	original := diffFixture()
	zp := current[1].ZonePricing[rateengine.ZoneC]
	zp.BasePrice += 0.02
	current[1].ZonePricing[rateengine.ZoneC] = zp

	res := rateengine.DiffPlans(current, original)

	assert.True(t, res.HasChanges)
	assert.Equal(t, []int{1}, res.ChangedCouriers)
}

func TestDiffPlans_ToleratesSubThresholdNoise(t *testing.T) {
	current := diffFixture()
	original := diffFixture()
	zp := current[0].ZonePricing[rateengine.ZoneA]
	zp.BasePrice += 0.005
	current[0].ZonePricing[rateengine.ZoneA] = zp

	res := rateengine.DiffPlans(current, original)

	assert.False(t, res.HasChanges)
}

func TestDiffPlans_SymmetricUnderSwap(t *testing.T) {
	current := diffFixture()
	original := diffFixture()
	zp := original[0].ZonePricing[rateengine.ZoneE]
	zp.FlatRTOCharge -= 5
	original[0].ZonePricing[rateengine.ZoneE] = zp

	forward := rateengine.DiffPlans(current, original)
	backward := rateengine.DiffPlans(original, current)

	assert.True(t, forward.HasChanges)
	assert.Equal(t, forward.ChangedCouriers, backward.ChangedCouriers)
}

func TestDiffPlans_EmptyInputsMeanNothingToCompare(t *testing.T) {
	assert.False(t, rateengine.DiffPlans(nil, diffFixture()).HasChanges)
	assert.False(t, rateengine.DiffPlans(diffFixture(), nil).HasChanges)
	assert.False(t, rateengine.DiffPlans(nil, nil).HasChanges)
}

func TestDiffPlans_ExtraCourierSkippedNotFlagged(t *testing.T) {
	current := diffFixture()
	original := diffFixture()[:1]

	res := rateengine.DiffPlans(current, original)

	assert.False(t, res.HasChanges)
}

func TestDiffPlans_AllRTOFieldsCompared(t *testing.T) {
	mutations := []func(*rateengine.ZonePricing){
		func(zp *rateengine.ZonePricing) { zp.IncrementPrice += 0.5 },
		func(zp *rateengine.ZonePricing) { zp.RTOBasePrice += 0.5 },
		func(zp *rateengine.ZonePricing) { zp.RTOIncrementPrice += 0.5 },
		func(zp *rateengine.ZonePricing) { zp.FlatRTOCharge += 0.5 },
	}
	for i, mutate := range mutations {
		current := diffFixture()
		original := diffFixture()
		zp := current[0].ZonePricing[rateengine.ZoneD]
		mutate(&zp)
		current[0].ZonePricing[rateengine.ZoneD] = zp

		res := rateengine.DiffPlans(current, original)
		assert.True(t, res.HasChanges, "mutation %d not detected", i)
		assert.Equal(t, []int{0}, res.ChangedCouriers)
	}
}
