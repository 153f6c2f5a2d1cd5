package rateengine

// ZonePricing holds the per-zone pricing parameters of a courier rate card.
// All monetary fields are non-negative.
type ZonePricing struct {
	BasePrice         float64 `json:"base_price"`
	IncrementPrice    float64 `json:"increment_price"`
	IsRTOSameAsFW     bool    `json:"is_rto_same_as_fw"`
	RTOBasePrice      float64 `json:"rto_base_price"`
	RTOIncrementPrice float64 `json:"rto_increment_price"`
	FlatRTOCharge     float64 `json:"flat_rto_charge"`
}

// CourierPricing is one courier's complete rate card within a shipping plan.
type CourierPricing struct {
	CourierID               string               `json:"courierId"`
	WeightSlab              float64              `json:"weight_slab"`
	IncrementWeight         float64              `json:"increment_weight"`
	IncrementPrice          float64              `json:"increment_price"`
	CODChargeHard           float64              `json:"cod_charge_hard"`
	CODChargePercent        float64              `json:"cod_charge_percent"`
	IsFWApplicable          bool                 `json:"is_fw_applicable"`
	IsRTOApplicable         bool                 `json:"is_rto_applicable"`
	IsCODApplicable         bool                 `json:"is_cod_applicable"`
	IsCODReversalApplicable bool                 `json:"is_cod_reversal_applicable"`
	ZonePricing             map[Zone]ZonePricing `json:"zonePricing"`
}

// Validate checks the rate card invariants: positive weight slab and
// increment, all five zones present, and non-negative money fields.
func (cp *CourierPricing) Validate() error {
	if cp.WeightSlab <= 0 {
		return &InvalidWeightError{Field: "weight_slab", Value: cp.WeightSlab}
	}
	if cp.IncrementWeight <= 0 {
		return &InvalidWeightError{Field: "increment_weight", Value: cp.IncrementWeight}
	}
	for _, z := range Zones {
		zp, ok := cp.ZonePricing[z]
		if !ok {
			return &UnsupportedZoneError{Zone: string(z)}
		}
		if zp.BasePrice < 0 || zp.IncrementPrice < 0 || zp.RTOBasePrice < 0 ||
			zp.RTOIncrementPrice < 0 || zp.FlatRTOCharge < 0 {
			return ErrInvalidRateCard
		}
	}
	return nil
}

// ZoneFor returns the zone pricing entry for z, normalized so that RTO
// mirrors forward pricing when the card says they are the same. Callers
// always read zone pricing through this method rather than the map.
func (cp *CourierPricing) ZoneFor(z Zone) (ZonePricing, error) {
	zp, ok := cp.ZonePricing[z]
	if !ok {
		return ZonePricing{}, &UnsupportedZoneError{Zone: string(z)}
	}
	if zp.IsRTOSameAsFW {
		zp.RTOBasePrice = zp.BasePrice
		zp.RTOIncrementPrice = zp.IncrementPrice
	}
	return zp, nil
}

// ShippingPlan is a seller's pricing plan: a set of courier rate cards plus
// plan metadata. Plans are authored externally; the engine only reads
// immutable snapshots.
type ShippingPlan struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	IsDefault      bool             `json:"isDefault"`
	Features       []string         `json:"features"`
	CourierPricing []CourierPricing `json:"courierPricing"`
}

// CardFor returns the rate card for the given courier id, if the plan has
// one.
func (p *ShippingPlan) CardFor(courierID string) (*CourierPricing, bool) {
	for i := range p.CourierPricing {
		if p.CourierPricing[i].CourierID == courierID {
			return &p.CourierPricing[i], true
		}
	}
	return nil, false
}

// PackageDetails describes a package: dimensions in cm, dead weight in kg.
type PackageDetails struct {
	Length     float64 `json:"length"`
	Breadth    float64 `json:"breadth"`
	Height     float64 `json:"height"`
	DeadWeight float64 `json:"deadWeight"`
}

// VolumetricWeight returns the dimensional weight in kg using the standard
// divisor of 5000.
func (p PackageDetails) VolumetricWeight() float64 {
	return p.Length * p.Breadth * p.Height / 5000
}

// CourierInfo identifies a courier and carries its performance metadata.
type CourierInfo struct {
	ID                  string  `json:"courierId"`
	Name                string  `json:"courierName"`
	Nickname            string  `json:"nickname,omitempty"`
	Code                string  `json:"courierCode"`
	Type                string  `json:"courierType"`
	Rating              float64 `json:"rating,omitempty"`
	PickupPerformance   float64 `json:"pickupPerformance,omitempty"`
	DeliveryPerformance float64 `json:"deliveryPerformance,omitempty"`
	RTOPerformance      float64 `json:"rtoPerformance,omitempty"`
	EstimatedDays       int     `json:"estimatedDeliveryDays"`
}

// Pricing is the monetary breakdown of a quote. RTO charges are reported but
// never included in TotalPrice; RTO is a contingent cost.
type Pricing struct {
	BasePrice     float64 `json:"basePrice"`
	WeightCharges float64 `json:"weightCharges"`
	CODCharges    float64 `json:"codCharges"`
	RTOCharges    float64 `json:"rtoCharges"`
	FWCharges     float64 `json:"fwCharges"`
	TotalPrice    float64 `json:"totalPrice"`
}

// WeightDetails is the weight breakdown behind a quote.
type WeightDetails struct {
	Actual               float64 `json:"actual"`
	Volumetric           float64 `json:"volumetric"`
	Chargeable           float64 `json:"chargeable"`
	Min                  float64 `json:"min"`
	WeightIncrementRatio float64 `json:"weightIncrementRatio"`
	FinalWeight          float64 `json:"finalWeight"`
}

// CODDetails carries the COD surcharge parameters applied to a quote.
type CODDetails struct {
	HardCharge    float64 `json:"hardCharge"`
	PercentCharge float64 `json:"percentCharge"`
	IsApplicable  bool    `json:"isApplicable"`
}

// Applicability carries the service flags passed through from the rate card.
type Applicability struct {
	FW          bool `json:"fwApplicable"`
	RTO         bool `json:"rtoApplicable"`
	COD         bool `json:"codApplicable"`
	CODReversal bool `json:"codReversalApplicable"`
}

// RateQuote is the canonical quote produced per request. This is the only
// shape downstream ranking and display logic may depend on; field names are
// stable regardless of courier source.
type RateQuote struct {
	Courier        CourierInfo   `json:"courier"`
	Zone           Zone          `json:"zone"`
	ZoneName       string        `json:"zoneName"`
	ExpectedPickup string        `json:"expectedPickup,omitempty"`
	Pricing        Pricing       `json:"pricing"`
	WeightDetails  WeightDetails `json:"weightDetails"`
	COD            CODDetails    `json:"cod"`
	Applicability  Applicability `json:"applicability"`
}
