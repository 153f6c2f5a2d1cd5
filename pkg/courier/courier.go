// Package courier provides an abstraction layer for courier rate sources.
package courier

import (
	"context"

	"github.com/shipmint/rateengine/pkg/rateengine"
)

// Source defines the interface that all courier rate sources must implement.
// A source fetches one raw quote for a shipment; it never normalizes or
// prices. The engine depends only on this interface, never on concrete
// adapters.
type Source interface {
	// Name returns the source identifier (e.g., "delhivery", "xpressbees").
	Name() string

	// FetchRawQuote fetches a raw, source-shaped quote for the shipment.
	FetchRawQuote(ctx context.Context, params *ShipmentParams) (*rateengine.RawQuote, error)
}

// ShipmentParams describes the shipment a quote is requested for.
type ShipmentParams struct {
	OriginPincode      string
	DestinationPincode string
	Package            rateengine.PackageDetails
	PaymentMode        PaymentMode
	CollectableAmount  float64
	Zone               rateengine.Zone
	ZoneName           string
	AccountID          string
}

// PaymentMode is the order payment mode.
type PaymentMode string

const (
	PaymentPrepaid PaymentMode = "prepaid"
	PaymentCOD     PaymentMode = "cod"
)

// IsCOD reports whether the shipment collects cash on delivery.
func (p *ShipmentParams) IsCOD() bool {
	return p.PaymentMode == PaymentCOD
}
