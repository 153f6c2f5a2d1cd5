// Package xpressbees provides integration with the Xpressbees courier API.
package xpressbees

import (
	"context"
	"strings"
	"time"

	"github.com/shipmint/rateengine/pkg/courier"
	"github.com/shipmint/rateengine/pkg/rateengine"
	"github.com/shipmint/rateengine/pkg/tokencache"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const sourceName = "xpressbees"

// Config holds Xpressbees configuration.
type Config struct {
	Email     string
	Password  string
	AccountID string
	BaseURL   string
	UseMock   bool // When true, uses mock API client
}

// Client is the Xpressbees rate source. API access requires a bearer token
// obtained via login; tokens are resolved through the token provider so
// concurrent requests reuse a cached token instead of logging in every time.
type Client struct {
	config    Config
	apiClient APIClient
	tokens    *tokencache.Provider
	logger    *otelzap.Logger
	tracer    trace.Tracer
}

// New creates a new Xpressbees client.
// If cfg.UseMock is true, it uses a mock API client for testing.
// Otherwise, it uses the real HTTP API client.
func New(cfg Config, tokens *tokencache.Provider, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var apiClient APIClient

	if cfg.UseMock {
		apiClient = NewMockAPIClient()
	} else {
		apiClient = NewHTTPAPIClient(HTTPAPIClientConfig{
			BaseURL: cfg.BaseURL,
			Timeout: 30 * time.Second,
		})
	}

	return &Client{
		config:    cfg,
		apiClient: apiClient,
		tokens:    tokens,
		logger:    logger,
		tracer:    tracer,
	}
}

// NewWithAPIClient creates a new Xpressbees client with a custom API client.
// This is useful for injecting mock clients in tests.
func NewWithAPIClient(cfg Config, apiClient APIClient, tokens *tokencache.Provider, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	return &Client{
		config:    cfg,
		apiClient: apiClient,
		tokens:    tokens,
		logger:    logger,
		tracer:    tracer,
	}
}

// Name returns the source name.
func (c *Client) Name() string {
	return sourceName
}

// FetchRawQuote fetches serviceable options from Xpressbees and maps the
// cheapest one onto the raw quote shape for normalization.
func (c *Client) FetchRawQuote(ctx context.Context, params *courier.ShipmentParams) (*rateengine.RawQuote, error) {
	c.logger.Info("Fetching Xpressbees serviceability",
		zap.String("origin_pin", params.OriginPincode),
		zap.String("destination_pin", params.DestinationPincode),
		zap.String("payment_mode", string(params.PaymentMode)),
	)

	token, err := c.tokens.Token(ctx, sourceName, c.config.AccountID, c.login)
	if err != nil {
		c.logger.Error("Xpressbees login error", zap.Error(err))
		return nil, err
	}

	apiReq := &ServiceabilityRequest{
		OriginPincode:      params.OriginPincode,
		DestinationPincode: params.DestinationPincode,
		PaymentType:        paymentTypeToAPI(params.PaymentMode),
		OrderAmount:        params.CollectableAmount,
		Weight:             params.Package.DeadWeight * 1000,
		Length:             params.Package.Length,
		Breadth:            params.Package.Breadth,
		Height:             params.Package.Height,
	}

	apiResp, err := c.apiClient.GetServiceability(ctx, token, apiReq)
	if err != nil {
		c.logger.Error("Xpressbees API error", zap.Error(err))
		return nil, err
	}

	return serviceabilityToRawQuote(apiResp, params.Package)
}

func (c *Client) login(ctx context.Context) (string, error) {
	resp, err := c.apiClient.Login(ctx, &LoginRequest{
		Email:    c.config.Email,
		Password: c.config.Password,
	})
	if err != nil {
		return "", err
	}
	return resp.Data, nil
}

// ============================================================================
// Conversion helpers: API models -> raw quote
// ============================================================================

func paymentTypeToAPI(mode courier.PaymentMode) string {
	if mode == courier.PaymentCOD {
		return "cod"
	}
	return "prepaid"
}

func serviceabilityToRawQuote(resp *ServiceabilityResponse, pkg rateengine.PackageDetails) (*rateengine.RawQuote, error) {
	if len(resp.Data) == 0 {
		return nil, &rateengine.MalformedQuoteError{Path: "data", Message: "no serviceable couriers"}
	}

	best := resp.Data[0]
	for _, svc := range resp.Data[1:] {
		if svc.TotalCharges < best.TotalCharges {
			best = svc
		}
	}

	actualKg := pkg.DeadWeight
	volumetricKg := pkg.VolumetricWeight()

	return &rateengine.RawQuote{
		Courier: &rateengine.RawCourier{
			ID:            best.ID,
			Name:          best.Name,
			Nickname:      sourceName,
			CourierCode:   best.ID,
			Type:          best.CourierType,
			EstimatedDays: rateengine.FlexIntFrom(strings.Trim(string(best.EDD), `"`)),
		},
		Zone:          best.Zone,
		FinalWeight:   best.ChargeableWeight / 1000,
		BasePrice:     best.FreightCharges,
		CODCharges:    best.CODCharges,
		RTOCharges:    best.RTOCharges,
		FWCharges:     best.FreightCharges,
		TotalPrice:    best.TotalCharges,
		Pricing: &rateengine.RawPricingFlags{
			IsCODApplicable: best.CODCharges > 0,
			IsRTOApplicable: best.RTOCharges > 0,
			IsFWApplicable:  true,
		},
		Breakdown: &rateengine.RawBreakdown{
			ActualWeight:     &actualKg,
			VolumetricWeight: &volumetricKg,
			ChargeableWeight: best.ChargeableWeight / 1000,
			MinWeight:        best.MinWeight / 1000,
		},
	}, nil
}
