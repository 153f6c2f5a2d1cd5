package delhivery

import (
	"context"
	"time"
)

// MockAPIClient is a mock implementation of APIClient for testing.
type MockAPIClient struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	OnGetCharges func(ctx context.Context, req *ChargesRequest) (*ChargesResponse, error)
}

// NewMockAPIClient creates a new mock API client with default behavior.
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{}
}

// GetCharges returns a mock charge estimate.
func (m *MockAPIClient) GetCharges(ctx context.Context, req *ChargesRequest) (*ChargesResponse, error) {
	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}

	if m.SimulateErrors {
		return nil, &APIError{Code: "MOCK_ERROR", Message: "Simulated API error"}
	}

	if m.OnGetCharges != nil {
		return m.OnGetCharges(ctx, req)
	}

	codCharge := 0.0
	if req.PaymentType == "COD" {
		codCharge = 30
	}

	// Weight charges at 28/500g beyond the first 500g slab.
	chargedGrams := req.WeightGrams
	if chargedGrams < 500 {
		chargedGrams = 500
	}
	weightCharge := 28 * float64(int((chargedGrams-500)+499)/500)

	return &ChargesResponse{
		Status: "Success",
		Charges: []Charge{
			{
				CourierID:        "dlv-surface",
				CourierName:      "Delhivery Surface",
				ServiceTag:       "SURFACE",
				ChargeZone:       "C",
				ZoneDescription:  "Metro to Metro",
				ChargedWeight:    chargedGrams,
				ActualWeight:     req.WeightGrams,
				VolumetricWeight: req.Length * req.Breadth * req.Height / 5,
				ChargeFWD:        45,
				ChargeWT:         weightCharge,
				ChargeCOD:        codCharge,
				ChargeRTO:        45 + weightCharge,
				GrossAmount:      45 + weightCharge,
				TotalAmount:      45 + weightCharge + codCharge,
				ExpectedTAT:      "4",
				Rating:           4.1,
			},
		},
	}, nil
}
