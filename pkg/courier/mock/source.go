// Package mock provides a mock courier source for testing.
package mock

import (
	"context"

	"github.com/shipmint/rateengine/pkg/courier"
	"github.com/shipmint/rateengine/pkg/rateengine"
)

// Source is a mock courier source for testing. By default it returns a
// well-formed quote priced off the shipment; behavior can be overridden per
// test via OnFetch, Err, or Raw.
type Source struct {
	name string

	// Err, when set, is returned from every fetch.
	Err error

	// Raw, when set, is returned verbatim instead of the generated quote.
	Raw *rateengine.RawQuote

	// OnFetch, when set, replaces the fetch behavior entirely.
	OnFetch func(ctx context.Context, params *courier.ShipmentParams) (*rateengine.RawQuote, error)
}

// New creates a new mock source.
func New(name string) *Source {
	return &Source{name: name}
}

// Name returns the source name.
func (s *Source) Name() string {
	return s.name
}

// FetchRawQuote returns a deterministic raw quote for the shipment.
func (s *Source) FetchRawQuote(ctx context.Context, params *courier.ShipmentParams) (*rateengine.RawQuote, error) {
	if s.OnFetch != nil {
		return s.OnFetch(ctx, params)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Raw != nil {
		return s.Raw, nil
	}

	actual := params.Package.DeadWeight
	volumetric := params.Package.VolumetricWeight()
	chargeable := actual
	if volumetric > chargeable {
		chargeable = volumetric
	}

	zone := string(params.Zone)
	if zone == "" {
		zone = string(rateengine.ZoneA)
	}

	basePrice := 40.0
	codCharges := 0.0
	if params.IsCOD() {
		codCharges = 25
	}

	return &rateengine.RawQuote{
		Courier: &rateengine.RawCourier{
			ID:          s.name + "-1",
			Name:        s.name,
			CourierCode: s.name,
			Type:        "surface",
			Rating:      4.0,
		},
		Zone:          zone,
		FinalWeight:   chargeable,
		BasePrice:     basePrice,
		CODCharges:    codCharges,
		TotalPrice:    basePrice + codCharges,
		Pricing: &rateengine.RawPricingFlags{
			CODChargeHard:   25,
			IsCODApplicable: params.IsCOD(),
			IsFWApplicable:  true,
		},
		Breakdown: &rateengine.RawBreakdown{
			ActualWeight:     &actual,
			VolumetricWeight: &volumetric,
			ChargeableWeight: chargeable,
		},
	}, nil
}
