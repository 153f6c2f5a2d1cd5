package rateengine

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexInt is an integer that couriers send either as a JSON number or as a
// quoted string ("3", 3, 3.0 are all accepted). The raw token is kept so the
// normalizer can fail with the offending value.
type FlexInt struct {
	raw string
	set bool
}

// FlexIntFrom wraps a raw token for adapters that build RawQuote values in
// code rather than decoding JSON.
func FlexIntFrom(raw string) FlexInt {
	return FlexInt{raw: strings.TrimSpace(raw), set: raw != ""}
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	f.raw = strings.TrimSpace(s)
	f.set = true
	return nil
}

// Int parses the stored token as an integer. Whole-number floats are
// accepted; anything non-numeric is an error.
func (f FlexInt) Int() (int, error) {
	if !f.set || f.raw == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(f.raw); err == nil {
		return n, nil
	}
	fl, err := strconv.ParseFloat(f.raw, 64)
	if err != nil {
		return 0, err
	}
	return int(fl), nil
}

// RawCourier is the courier identity block of a raw quote.
type RawCourier struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Nickname            string  `json:"nickname"`
	CourierCode         string  `json:"courier_code"`
	Type                string  `json:"type"`
	Rating              float64 `json:"rating"`
	PickupPerformance   float64 `json:"pickup_performance"`
	DeliveryPerformance float64 `json:"delivery_performance"`
	RTOPerformance      float64 `json:"rto_performance"`
	EstimatedDays       FlexInt `json:"estimated_delivery_days"`
}

// RawPricingFlags is the surcharge/applicability block of a raw quote.
type RawPricingFlags struct {
	CODChargeHard           float64 `json:"cod_charge_hard"`
	CODChargePercent        float64 `json:"cod_charge_percent"`
	IsCODApplicable         bool    `json:"is_cod_applicable"`
	IsRTOApplicable         bool    `json:"is_rto_applicable"`
	IsFWApplicable          bool    `json:"is_fw_applicable"`
	IsCODReversalApplicable bool    `json:"is_cod_reversal_applicable"`
}

// RawBreakdown is the weight breakdown block of a raw quote. Actual and
// volumetric weight are required, so they are pointers to distinguish a
// missing field from a zero.
type RawBreakdown struct {
	ActualWeight         *float64 `json:"actual_weight"`
	VolumetricWeight     *float64 `json:"volumetric_weight"`
	ChargeableWeight     float64  `json:"chargeable_weight"`
	MinWeight            float64  `json:"min_weight"`
	WeightIncrementRatio float64  `json:"weight_increment_ratio"`
}

// RawQuote is the loosely-shaped quote object produced by courier adapters.
// Field naming and nesting vary by source; adapters are responsible for
// mapping their payloads onto this structure, and Normalize turns it into
// the canonical RateQuote.
type RawQuote struct {
	Courier        *RawCourier      `json:"courier"`
	Zone           string           `json:"zone"`
	ZoneName       string           `json:"zoneName"`
	ExpectedPickup string           `json:"expected_pickup"`
	FinalWeight    float64          `json:"final_weight"`
	BasePrice      float64          `json:"base_price"`
	WeightCharges  float64          `json:"weight_charges"`
	CODCharges     float64          `json:"cod_charges"`
	RTOCharges     float64          `json:"rto_charges"`
	FWCharges      float64          `json:"fw_charges"`
	TotalPrice     float64          `json:"total_price"`
	Pricing        *RawPricingFlags `json:"pricing"`
	Breakdown      *RawBreakdown    `json:"breakdown"`
}

// ParseRawQuote decodes a raw quote payload. Decode errors surface as
// MalformedQuoteError so callers can treat them like any other bad quote.
func ParseRawQuote(data []byte) (*RawQuote, error) {
	var raw RawQuote
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &MalformedQuoteError{Path: "$", Message: err.Error()}
	}
	return &raw, nil
}

// Normalize adapts a raw courier quote into the canonical RateQuote.
//
// Required fields are the courier identity (id, name, code, type), the
// breakdown's actual and volumetric weight, and a valid zone; any of them
// missing fails with MalformedQuoteError naming the path. Identity is never
// silently defaulted. Optional numeric fields (surcharges, totals) default
// to 0 when absent. Normalize performs no I/O and no caching; it is a pure
// function over an already-fetched payload.
func Normalize(raw *RawQuote) (*RateQuote, error) {
	if raw == nil || raw.Courier == nil {
		return nil, &MalformedQuoteError{Path: "courier"}
	}
	courierID := raw.Courier.ID

	if raw.Courier.ID == "" {
		return nil, &MalformedQuoteError{Path: "courier.id"}
	}
	if raw.Courier.Name == "" {
		return nil, &MalformedQuoteError{CourierID: courierID, Path: "courier.name"}
	}
	if raw.Courier.CourierCode == "" {
		return nil, &MalformedQuoteError{CourierID: courierID, Path: "courier.courier_code"}
	}
	if raw.Courier.Type == "" {
		return nil, &MalformedQuoteError{CourierID: courierID, Path: "courier.type"}
	}
	if raw.Breakdown == nil {
		return nil, &MalformedQuoteError{CourierID: courierID, Path: "breakdown"}
	}
	if raw.Breakdown.ActualWeight == nil {
		return nil, &MalformedQuoteError{CourierID: courierID, Path: "breakdown.actual_weight"}
	}
	if raw.Breakdown.VolumetricWeight == nil {
		return nil, &MalformedQuoteError{CourierID: courierID, Path: "breakdown.volumetric_weight"}
	}
	if raw.Zone == "" {
		return nil, &MalformedQuoteError{CourierID: courierID, Path: "rate.zone"}
	}
	zone, err := ParseZone(raw.Zone)
	if err != nil {
		return nil, err
	}

	edd, err := raw.Courier.EstimatedDays.Int()
	if err != nil {
		return nil, &MalformedQuoteError{
			CourierID: courierID,
			Path:      "courier.estimated_delivery_days",
			Message:   "not a number",
		}
	}

	zoneName := raw.ZoneName
	if zoneName == "" {
		zoneName = zone.Name()
	}

	q := &RateQuote{
		Courier: CourierInfo{
			ID:                  raw.Courier.ID,
			Name:                raw.Courier.Name,
			Nickname:            raw.Courier.Nickname,
			Code:                raw.Courier.CourierCode,
			Type:                raw.Courier.Type,
			Rating:              raw.Courier.Rating,
			PickupPerformance:   raw.Courier.PickupPerformance,
			DeliveryPerformance: raw.Courier.DeliveryPerformance,
			RTOPerformance:      raw.Courier.RTOPerformance,
			EstimatedDays:       edd,
		},
		Zone:           zone,
		ZoneName:       zoneName,
		ExpectedPickup: raw.ExpectedPickup,
		Pricing: Pricing{
			BasePrice:     raw.BasePrice,
			WeightCharges: raw.WeightCharges,
			CODCharges:    raw.CODCharges,
			RTOCharges:    raw.RTOCharges,
			FWCharges:     raw.FWCharges,
			TotalPrice:    raw.TotalPrice,
		},
		WeightDetails: WeightDetails{
			Actual:               *raw.Breakdown.ActualWeight,
			Volumetric:           *raw.Breakdown.VolumetricWeight,
			Chargeable:           raw.Breakdown.ChargeableWeight,
			Min:                  raw.Breakdown.MinWeight,
			WeightIncrementRatio: raw.Breakdown.WeightIncrementRatio,
			FinalWeight:          raw.FinalWeight,
		},
	}
	if raw.Pricing != nil {
		q.COD = CODDetails{
			HardCharge:    raw.Pricing.CODChargeHard,
			PercentCharge: raw.Pricing.CODChargePercent,
			IsApplicable:  raw.Pricing.IsCODApplicable,
		}
		q.Applicability = Applicability{
			FW:          raw.Pricing.IsFWApplicable,
			RTO:         raw.Pricing.IsRTOApplicable,
			COD:         raw.Pricing.IsCODApplicable,
			CODReversal: raw.Pricing.IsCODReversalApplicable,
		}
	}
	if q.WeightDetails.Chargeable == 0 {
		q.WeightDetails.Chargeable = math.Max(q.WeightDetails.Actual, q.WeightDetails.Volumetric)
	}
	return q, nil
}
