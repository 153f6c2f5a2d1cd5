package xpressbees

import (
	"context"
	"encoding/json"
)

// APIClient defines the interface for Xpressbees API operations.
// This abstraction allows for mock implementations during testing
// and real implementations in production.
type APIClient interface {
	// Login exchanges account credentials for a bearer token
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)

	// GetServiceability fetches serviceable courier options with pricing
	GetServiceability(ctx context.Context, token string, req *ServiceabilityRequest) (*ServiceabilityResponse, error)
}

// ============================================================================
// API Request/Response Types (match Xpressbees REST API structure)
// ============================================================================

// LoginRequest represents the login call.
// POST /users/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token.
type LoginResponse struct {
	Status bool   `json:"status"`
	Data   string `json:"data"` // JWT bearer token
}

// ServiceabilityRequest represents a courier serviceability query.
// POST /courier/serviceability
type ServiceabilityRequest struct {
	OriginPincode      string  `json:"origin"`
	DestinationPincode string  `json:"destination"`
	PaymentType        string  `json:"payment_type"` // "prepaid" or "cod"
	OrderAmount        float64 `json:"order_amount"`
	Weight             float64 `json:"weight"` // grams
	Length             float64 `json:"length"` // cm
	Breadth            float64 `json:"breadth"`
	Height             float64 `json:"height"`
}

// ServiceabilityResponse wraps the serviceable courier list.
type ServiceabilityResponse struct {
	Status  bool             `json:"status"`
	Message string           `json:"message,omitempty"`
	Data    []CourierService `json:"data"`
}

// CourierService is one serviceable courier option with its pricing.
type CourierService struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	CourierType      string          `json:"courier_type"` // "surface", "air"
	Zone             string          `json:"zone"`
	FreightCharges   float64         `json:"freight_charges"`
	CODCharges       float64         `json:"cod_charges"`
	RTOCharges       float64         `json:"rto_charges"`
	TotalCharges     float64         `json:"total_charges"`
	ChargeableWeight float64         `json:"chargeable_weight"` // grams
	MinWeight        float64         `json:"min_weight"`        // grams
	EDD              json.RawMessage `json:"edd"`               // string or number, source-dependent
	AirMaxWeight     float64         `json:"air_max_weight,omitempty"`
}

// APIError represents an error from the Xpressbees API.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Code + ": " + e.Message
}
