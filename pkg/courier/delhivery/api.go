package delhivery

import (
	"context"
)

// APIClient defines the interface for Delhivery rate API operations.
// This abstraction allows for mock implementations during testing
// and real implementations in production.
type APIClient interface {
	// GetCharges fetches the shipping charge estimate for a shipment
	GetCharges(ctx context.Context, req *ChargesRequest) (*ChargesResponse, error)
}

// ============================================================================
// API Request/Response Types (match Delhivery invoice/charges structure)
// ============================================================================

// ChargesRequest represents a Delhivery charge estimate request.
// GET /api/kinko/v1/invoice/charges/.json
type ChargesRequest struct {
	OriginPin      string  `json:"o_pin"`
	DestinationPin string  `json:"d_pin"`
	WeightGrams    float64 `json:"cgm"` // chargeable weight in grams
	PaymentType    string  `json:"pt"`  // "Pre-paid" or "COD"
	CODAmount      float64 `json:"cod,omitempty"`
	Length         float64 `json:"l,omitempty"` // cm
	Breadth        float64 `json:"b,omitempty"` // cm
	Height         float64 `json:"h,omitempty"` // cm
}

// ChargesResponse represents the Delhivery charge estimate response.
type ChargesResponse struct {
	Status  string   `json:"status"`
	Charges []Charge `json:"charges"`
	Error   string   `json:"error,omitempty"`
}

// Charge represents one priced service option.
type Charge struct {
	CourierID        string  `json:"courier_id"`
	CourierName      string  `json:"courier_name"`
	ServiceTag       string  `json:"tag"` // "SURFACE" or "EXPRESS"
	ChargeZone       string  `json:"zone"`
	ZoneDescription  string  `json:"zone_desc,omitempty"`
	ChargedWeight    float64 `json:"charged_weight"` // grams
	ActualWeight     float64 `json:"charge_wt_actual"`
	VolumetricWeight float64 `json:"charge_wt_volumetric"`
	ChargeFWD        float64 `json:"charge_FWD"`
	ChargeWT         float64 `json:"charge_WT"`
	ChargeCOD        float64 `json:"charge_COD"`
	ChargeRTO        float64 `json:"charge_RTO"`
	GrossAmount      float64 `json:"gross_amount"`
	TotalAmount      float64 `json:"total_amount"`
	ExpectedTAT      string  `json:"tat"` // transit days, sent as a string
	PickupDate       string  `json:"pickup_date,omitempty"`
	Rating           float64 `json:"rating,omitempty"`
}

// APIError represents an error from the Delhivery API.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Code + ": " + e.Message
}
