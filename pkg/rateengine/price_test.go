package rateengine_test

import (
	"testing"

	"github.com/shipmint/rateengine/pkg/rateengine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCard builds a complete five-zone rate card resembling a typical
// surface plan.
func testCard() *rateengine.CourierPricing {
	zones := map[rateengine.Zone]rateengine.ZonePricing{
		rateengine.ZoneA: {BasePrice: 40, IncrementPrice: 25, IsRTOSameAsFW: true},
		rateengine.ZoneB: {BasePrice: 45, IncrementPrice: 28, IsRTOSameAsFW: true},
		rateengine.ZoneC: {BasePrice: 52, IncrementPrice: 32, RTOBasePrice: 48, RTOIncrementPrice: 30},
		rateengine.ZoneD: {BasePrice: 60, IncrementPrice: 38, RTOBasePrice: 55, RTOIncrementPrice: 35},
		rateengine.ZoneE: {BasePrice: 85, IncrementPrice: 50, FlatRTOCharge: 120},
	}
	return &rateengine.CourierPricing{
		CourierID:        "courier-1",
		WeightSlab:       0.5,
		IncrementWeight:  0.5,
		IncrementPrice:   25,
		CODChargeHard:    25,
		CODChargePercent: 2,
		IsFWApplicable:   true,
		IsRTOApplicable:  true,
		ZonePricing:      zones,
	}
}

func TestComputePricing_NoCOD(t *testing.T) {
	card := testCard()
	pkg := rateengine.PackageDetails{Length: 30, Breadth: 20, Height: 15, DeadWeight: 1.0}
	w, err := rateengine.ResolveWeight(pkg, card.WeightSlab, card.IncrementWeight)
	require.NoError(t, err)

	p, err := rateengine.ComputePricing(card, rateengine.ZoneA, w, 0)

	require.NoError(t, err)
	assert.InDelta(t, 40, p.BasePrice, 1e-9)
	assert.InDelta(t, 75, p.WeightCharges, 1e-9) // 3 increments * 25
	assert.InDelta(t, 115, p.TotalPrice, 1e-9)
}

func TestComputePricing_CODAddedToTotal(t *testing.T) {
	card := testCard()
	card.IsCODApplicable = true
	pkg := rateengine.PackageDetails{Length: 30, Breadth: 20, Height: 15, DeadWeight: 1.0}
	w, err := rateengine.ResolveWeight(pkg, card.WeightSlab, card.IncrementWeight)
	require.NoError(t, err)

	p, err := rateengine.ComputePricing(card, rateengine.ZoneA, w, 500)

	require.NoError(t, err)
	assert.InDelta(t, 25, p.CODCharges, 1e-9) // hard charge beats 2% of 500
	assert.InDelta(t, 140, p.TotalPrice, 1e-9)
}

func TestComputePricing_RTONotInTotal(t *testing.T) {
	card := testCard()
	pkg := rateengine.PackageDetails{Length: 30, Breadth: 20, Height: 15, DeadWeight: 1.0}
	w, err := rateengine.ResolveWeight(pkg, card.WeightSlab, card.IncrementWeight)
	require.NoError(t, err)

	p, err := rateengine.ComputePricing(card, rateengine.ZoneC, w, 0)

	require.NoError(t, err)
	// RTO: 48 + 30*3 = 138, reported but excluded from total.
	assert.InDelta(t, 138, p.RTOCharges, 1e-9)
	assert.InDelta(t, 52+32*0+75, p.TotalPrice, 1e-9)
}

func TestComputePricing_WeightChargesZeroWithinSlab(t *testing.T) {
	card := testCard()
	pkg := rateengine.PackageDetails{Length: 5, Breadth: 5, Height: 5, DeadWeight: 0.4}
	w, err := rateengine.ResolveWeight(pkg, card.WeightSlab, card.IncrementWeight)
	require.NoError(t, err)

	p, err := rateengine.ComputePricing(card, rateengine.ZoneB, w, 0)

	require.NoError(t, err)
	assert.Zero(t, p.WeightCharges)
	assert.InDelta(t, 45, p.TotalPrice, 1e-9)
}

func TestComputePricing_FlatRTOZone(t *testing.T) {
	card := testCard()
	pkg := rateengine.PackageDetails{Length: 30, Breadth: 20, Height: 15, DeadWeight: 1.0}
	w, err := rateengine.ResolveWeight(pkg, card.WeightSlab, card.IncrementWeight)
	require.NoError(t, err)

	p, err := rateengine.ComputePricing(card, rateengine.ZoneE, w, 0)

	require.NoError(t, err)
	assert.InDelta(t, 120, p.RTOCharges, 1e-9)
}

func TestComputePricing_UnknownZone(t *testing.T) {
	card := testCard()
	w := rateengine.WeightDetails{Min: 0.5, FinalWeight: 0.5, WeightIncrementRatio: 0.5}

	_, err := rateengine.ComputePricing(card, rateengine.Zone("F"), w, 0)

	assert.ErrorIs(t, err, rateengine.ErrUnsupportedZone)
}

func TestQuoteFromCard_FullQuote(t *testing.T) {
	card := testCard()
	card.IsCODApplicable = true
	info := rateengine.CourierInfo{ID: "courier-1", Name: "Swift", Code: "SWFT", Type: "surface"}
	pkg := rateengine.PackageDetails{Length: 30, Breadth: 20, Height: 15, DeadWeight: 1.0}

	q, err := rateengine.QuoteFromCard(card, info, rateengine.ZoneA, pkg, 500)

	require.NoError(t, err)
	assert.Equal(t, rateengine.ZoneA, q.Zone)
	assert.Equal(t, "Within City", q.ZoneName)
	assert.InDelta(t, 2.0, q.WeightDetails.FinalWeight, 1e-9)
	assert.InDelta(t, 140, q.Pricing.TotalPrice, 1e-9)
	assert.True(t, q.COD.IsApplicable)
	assert.InDelta(t, 25, q.COD.HardCharge, 1e-9)
	assert.True(t, q.Applicability.FW)
}

func TestQuoteFromCard_InvalidCard(t *testing.T) {
	card := testCard()
	delete(card.ZonePricing, rateengine.ZoneD)
	info := rateengine.CourierInfo{ID: "courier-1"}
	pkg := rateengine.PackageDetails{Length: 10, Breadth: 10, Height: 10, DeadWeight: 1}

	_, err := rateengine.QuoteFromCard(card, info, rateengine.ZoneA, pkg, 0)

	assert.ErrorIs(t, err, rateengine.ErrUnsupportedZone)
}

func TestReprice_OverwritesPricingKeepsIdentity(t *testing.T) {
	card := testCard()
	q := &rateengine.RateQuote{
		Courier: rateengine.CourierInfo{ID: "courier-1", Name: "Swift", Code: "SWFT", Type: "surface"},
		Zone:    rateengine.ZoneA,
		Pricing: rateengine.Pricing{TotalPrice: 999},
	}
	pkg := rateengine.PackageDetails{Length: 30, Breadth: 20, Height: 15, DeadWeight: 1.0}

	err := rateengine.Reprice(q, card, pkg, 0)

	require.NoError(t, err)
	assert.Equal(t, "courier-1", q.Courier.ID)
	assert.InDelta(t, 115, q.Pricing.TotalPrice, 1e-9)
	assert.InDelta(t, 2.0, q.WeightDetails.FinalWeight, 1e-9)
}
