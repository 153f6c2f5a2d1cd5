package rateengine

import "math"

// CODCharge computes the cash-on-delivery surcharge for an order. Both the
// flat and the percentage charge are evaluated and the larger wins, which
// protects margin on low-value COD orders. Returns 0 when COD is not
// applicable for the card.
func CODCharge(card *CourierPricing, collectableAmount float64) float64 {
	if !card.IsCODApplicable {
		return 0
	}
	percent := collectableAmount * card.CODChargePercent / 100
	return math.Max(card.CODChargeHard, percent)
}

// RTOCharge computes the return-to-origin charge for the resolved zone.
//
// Precedence is explicit: a zone marked "RTO same as forward" prices the
// return leg exactly like the forward leg; otherwise a non-zero flat RTO
// charge wins over incremental RTO pricing; otherwise the charge is
// rto_base + rto_increment per billable increment beyond the slab.
func RTOCharge(zp ZonePricing, increments int) float64 {
	if zp.IsRTOSameAsFW {
		return zp.BasePrice + zp.IncrementPrice*float64(increments)
	}
	if zp.FlatRTOCharge > 0 {
		return zp.FlatRTOCharge
	}
	return zp.RTOBasePrice + zp.RTOIncrementPrice*float64(increments)
}

// FlagsFrom copies the applicability flags off the rate card. Flags are
// passed through unchanged; this layer never infers them.
func FlagsFrom(card *CourierPricing) Applicability {
	return Applicability{
		FW:          card.IsFWApplicable,
		RTO:         card.IsRTOApplicable,
		COD:         card.IsCODApplicable,
		CODReversal: card.IsCODReversalApplicable,
	}
}
