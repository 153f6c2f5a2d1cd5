package rateengine

// ComputePricing prices a shipment against a rate card for the resolved
// zone. Weight charges accrue per billable increment beyond the slab; the
// COD surcharge is added to the total only when COD applies. The RTO charge
// is reported separately and never added to the total, since RTO is a
// contingent cost, not a default one.
func ComputePricing(card *CourierPricing, zone Zone, weights WeightDetails, collectableAmount float64) (Pricing, error) {
	zp, err := card.ZoneFor(zone)
	if err != nil {
		return Pricing{}, err
	}

	increments := BillableIncrements(weights)
	weightCharges := card.IncrementPrice * float64(increments)
	codCharge := CODCharge(card, collectableAmount)

	p := Pricing{
		BasePrice:     zp.BasePrice,
		WeightCharges: weightCharges,
		CODCharges:    codCharge,
		RTOCharges:    RTOCharge(zp, increments),
		TotalPrice:    zp.BasePrice + weightCharges,
	}
	if card.IsFWApplicable {
		p.FWCharges = zp.BasePrice + weightCharges
	}
	if card.IsCODApplicable {
		p.TotalPrice += codCharge
	}
	return p, nil
}

// QuoteFromCard builds a full canonical quote for a package priced against a
// seller's rate card. This is the plan pricing path: the courier's own raw
// quote is not involved, only the card.
func QuoteFromCard(card *CourierPricing, info CourierInfo, zone Zone, pkg PackageDetails, collectableAmount float64) (*RateQuote, error) {
	if err := card.Validate(); err != nil {
		return nil, err
	}
	weights, err := ResolveWeight(pkg, card.WeightSlab, card.IncrementWeight)
	if err != nil {
		return nil, err
	}
	pricing, err := ComputePricing(card, zone, weights, collectableAmount)
	if err != nil {
		return nil, err
	}
	return &RateQuote{
		Courier:       info,
		Zone:          zone,
		ZoneName:      zone.Name(),
		Pricing:       pricing,
		WeightDetails: weights,
		COD: CODDetails{
			HardCharge:    card.CODChargeHard,
			PercentCharge: card.CODChargePercent,
			IsApplicable:  card.IsCODApplicable,
		},
		Applicability: FlagsFrom(card),
	}, nil
}

// Reprice overwrites the pricing, weight, and COD sections of a normalized
// quote with values computed from a seller's rate card. The courier identity
// and zone of the original quote are preserved. Used when a shipment is
// priced by the seller's plan rather than the courier's published rate.
func Reprice(q *RateQuote, card *CourierPricing, pkg PackageDetails, collectableAmount float64) error {
	if err := card.Validate(); err != nil {
		return err
	}
	weights, err := ResolveWeight(pkg, card.WeightSlab, card.IncrementWeight)
	if err != nil {
		return err
	}
	pricing, err := ComputePricing(card, q.Zone, weights, collectableAmount)
	if err != nil {
		return err
	}
	q.Pricing = pricing
	q.WeightDetails = weights
	q.COD = CODDetails{
		HardCharge:    card.CODChargeHard,
		PercentCharge: card.CODChargePercent,
		IsApplicable:  card.IsCODApplicable,
	}
	q.Applicability = FlagsFrom(card)
	return nil
}
