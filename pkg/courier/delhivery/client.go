// Package delhivery provides integration with the Delhivery rate API.
package delhivery

import (
	"context"
	"time"

	"github.com/shipmint/rateengine/pkg/courier"
	"github.com/shipmint/rateengine/pkg/rateengine"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const sourceName = "delhivery"

// Config holds Delhivery configuration.
type Config struct {
	APIToken string
	BaseURL  string
	UseMock  bool // When true, uses mock API client
}

// Client is the Delhivery rate source.
// It implements the courier.Source interface and delegates
// API calls to the underlying APIClient (mock or HTTP).
type Client struct {
	config    Config
	apiClient APIClient
	logger    *otelzap.Logger
	tracer    trace.Tracer
}

// New creates a new Delhivery client.
// If cfg.UseMock is true, it uses a mock API client for testing.
// Otherwise, it uses the real HTTP API client.
func New(cfg Config, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var apiClient APIClient

	if cfg.UseMock {
		apiClient = NewMockAPIClient()
	} else {
		apiClient = NewHTTPAPIClient(HTTPAPIClientConfig{
			BaseURL:  cfg.BaseURL,
			APIToken: cfg.APIToken,
			Timeout:  30 * time.Second,
		})
	}

	return &Client{
		config:    cfg,
		apiClient: apiClient,
		logger:    logger,
		tracer:    tracer,
	}
}

// NewWithAPIClient creates a new Delhivery client with a custom API client.
// This is useful for injecting mock clients in tests.
func NewWithAPIClient(cfg Config, apiClient APIClient, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	return &Client{
		config:    cfg,
		apiClient: apiClient,
		logger:    logger,
		tracer:    tracer,
	}
}

// Name returns the source name.
func (c *Client) Name() string {
	return sourceName
}

// FetchRawQuote fetches a charge estimate from Delhivery and maps it onto
// the raw quote shape for normalization.
func (c *Client) FetchRawQuote(ctx context.Context, params *courier.ShipmentParams) (*rateengine.RawQuote, error) {
	c.logger.Info("Fetching Delhivery charges",
		zap.String("origin_pin", params.OriginPincode),
		zap.String("destination_pin", params.DestinationPincode),
		zap.String("payment_mode", string(params.PaymentMode)),
	)

	apiReq := &ChargesRequest{
		OriginPin:      params.OriginPincode,
		DestinationPin: params.DestinationPincode,
		WeightGrams:    params.Package.DeadWeight * 1000,
		PaymentType:    paymentTypeToAPI(params.PaymentMode),
		CODAmount:      params.CollectableAmount,
		Length:         params.Package.Length,
		Breadth:        params.Package.Breadth,
		Height:         params.Package.Height,
	}

	apiResp, err := c.apiClient.GetCharges(ctx, apiReq)
	if err != nil {
		c.logger.Error("Delhivery API error", zap.Error(err))
		return nil, err
	}

	return chargesToRawQuote(apiResp)
}

// ============================================================================
// Conversion helpers: API models -> raw quote
// ============================================================================

func paymentTypeToAPI(mode courier.PaymentMode) string {
	if mode == courier.PaymentCOD {
		return "COD"
	}
	return "Pre-paid"
}

func chargesToRawQuote(resp *ChargesResponse) (*rateengine.RawQuote, error) {
	if len(resp.Charges) == 0 {
		return nil, &rateengine.MalformedQuoteError{Path: "charges", Message: "empty charge list"}
	}
	ch := resp.Charges[0]

	actualKg := ch.ActualWeight / 1000
	volumetricKg := ch.VolumetricWeight / 1000

	return &rateengine.RawQuote{
		Courier: &rateengine.RawCourier{
			ID:            ch.CourierID,
			Name:          ch.CourierName,
			Nickname:      sourceName,
			CourierCode:   ch.CourierID,
			Type:          ch.ServiceTag,
			Rating:        ch.Rating,
			EstimatedDays: rateengine.FlexIntFrom(ch.ExpectedTAT),
		},
		Zone:           ch.ChargeZone,
		ZoneName:       ch.ZoneDescription,
		ExpectedPickup: ch.PickupDate,
		FinalWeight:    ch.ChargedWeight / 1000,
		BasePrice:      ch.ChargeFWD,
		WeightCharges:  ch.ChargeWT,
		CODCharges:     ch.ChargeCOD,
		RTOCharges:     ch.ChargeRTO,
		FWCharges:      ch.ChargeFWD + ch.ChargeWT,
		TotalPrice:     ch.TotalAmount,
		Pricing: &rateengine.RawPricingFlags{
			IsCODApplicable: ch.ChargeCOD > 0,
			IsRTOApplicable: ch.ChargeRTO > 0,
			IsFWApplicable:  true,
		},
		Breakdown: &rateengine.RawBreakdown{
			ActualWeight:     &actualKg,
			VolumetricWeight: &volumetricKg,
			ChargeableWeight: ch.ChargedWeight / 1000,
		},
	}, nil
}
