package xpressbees

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MockAPIClient is a mock implementation of APIClient for testing.
type MockAPIClient struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	// LoginCalls counts Login invocations, useful for asserting that the
	// token cache is actually consulted.
	LoginCalls int

	OnLogin             func(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	OnGetServiceability func(ctx context.Context, token string, req *ServiceabilityRequest) (*ServiceabilityResponse, error)
}

// NewMockAPIClient creates a new mock API client with default behavior.
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{}
}

// Login returns a mock bearer token.
func (m *MockAPIClient) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	m.LoginCalls++

	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}
	if m.SimulateErrors {
		return nil, &APIError{Code: "MOCK_ERROR", Message: "Simulated login error"}
	}
	if m.OnLogin != nil {
		return m.OnLogin(ctx, req)
	}

	return &LoginResponse{Status: true, Data: "xb-token-" + uuid.New().String()[:8]}, nil
}

// GetServiceability returns mock courier options.
func (m *MockAPIClient) GetServiceability(ctx context.Context, token string, req *ServiceabilityRequest) (*ServiceabilityResponse, error) {
	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}
	if m.SimulateErrors {
		return nil, &APIError{Code: "MOCK_ERROR", Message: "Simulated API error"}
	}
	if m.OnGetServiceability != nil {
		return m.OnGetServiceability(ctx, token, req)
	}

	codCharges := 0.0
	if req.PaymentType == "cod" {
		codCharges = 27
	}

	chargeable := req.Weight
	if chargeable < 500 {
		chargeable = 500
	}

	return &ServiceabilityResponse{
		Status: true,
		Data: []CourierService{
			{
				ID:               "xb-surface",
				Name:             "Xpressbees Surface",
				CourierType:      "surface",
				Zone:             "D",
				FreightCharges:   62,
				CODCharges:       codCharges,
				RTOCharges:       58,
				TotalCharges:     62 + codCharges,
				ChargeableWeight: chargeable,
				MinWeight:        500,
				EDD:              json.RawMessage(`"5"`),
			},
			{
				ID:               "xb-air",
				Name:             "Xpressbees Air",
				CourierType:      "air",
				Zone:             "D",
				FreightCharges:   96,
				CODCharges:       codCharges,
				RTOCharges:       90,
				TotalCharges:     96 + codCharges,
				ChargeableWeight: chargeable,
				MinWeight:        500,
				EDD:              json.RawMessage(`2`),
			},
		},
	}, nil
}
