package delhivery_test

import (
	"context"
	"testing"

	"github.com/shipmint/rateengine/pkg/courier"
	"github.com/shipmint/rateengine/pkg/courier/delhivery"
	"github.com/shipmint/rateengine/pkg/rateengine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

func newTestClient(mockClient *delhivery.MockAPIClient) *delhivery.Client {
	logger := otelzap.New(zap.NewNop())
	return delhivery.NewWithAPIClient(
		delhivery.Config{},
		mockClient,
		logger,
		nil,
	)
}

func testParams() *courier.ShipmentParams {
	return &courier.ShipmentParams{
		OriginPincode:      "110001",
		DestinationPincode: "400001",
		Package:            rateengine.PackageDetails{Length: 30, Breadth: 20, Height: 15, DeadWeight: 1},
		PaymentMode:        courier.PaymentCOD,
		CollectableAmount:  500,
	}
}

func TestClient_FetchRawQuote_Success(t *testing.T) {
	mockAPI := delhivery.NewMockAPIClient()
	client := newTestClient(mockAPI)

	raw, err := client.FetchRawQuote(context.Background(), testParams())

	require.NoError(t, err)
	require.NotNil(t, raw.Courier)
	assert.Equal(t, "dlv-surface", raw.Courier.ID)
	assert.Equal(t, "C", raw.Zone)

	// The raw quote must survive normalization as-is.
	q, err := rateengine.Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, rateengine.ZoneC, q.Zone)
	assert.Equal(t, 4, q.Courier.EstimatedDays)
	assert.True(t, q.COD.IsApplicable)
}

func TestClient_FetchRawQuote_ConvertsGramsToKg(t *testing.T) {
	mockAPI := delhivery.NewMockAPIClient()
	mockAPI.OnGetCharges = func(ctx context.Context, req *delhivery.ChargesRequest) (*delhivery.ChargesResponse, error) {
		assert.InDelta(t, 1000, req.WeightGrams, 1e-9)
		return &delhivery.ChargesResponse{
			Status: "Success",
			Charges: []delhivery.Charge{{
				CourierID:        "dlv-surface",
				CourierName:      "Delhivery Surface",
				ServiceTag:       "SURFACE",
				ChargeZone:       "B",
				ChargedWeight:    2000,
				ActualWeight:     1000,
				VolumetricWeight: 1800,
				ChargeFWD:        45,
				ExpectedTAT:      "3",
			}},
		}, nil
	}
	client := newTestClient(mockAPI)

	raw, err := client.FetchRawQuote(context.Background(), testParams())

	require.NoError(t, err)
	assert.InDelta(t, 2.0, raw.FinalWeight, 1e-9)
	assert.InDelta(t, 1.0, *raw.Breakdown.ActualWeight, 1e-9)
	assert.InDelta(t, 1.8, *raw.Breakdown.VolumetricWeight, 1e-9)
}

func TestClient_FetchRawQuote_APIError(t *testing.T) {
	mockAPI := delhivery.NewMockAPIClient()
	mockAPI.SimulateErrors = true
	client := newTestClient(mockAPI)

	_, err := client.FetchRawQuote(context.Background(), testParams())

	assert.Error(t, err)
}

func TestClient_FetchRawQuote_EmptyChargeList(t *testing.T) {
	mockAPI := delhivery.NewMockAPIClient()
	mockAPI.OnGetCharges = func(ctx context.Context, req *delhivery.ChargesRequest) (*delhivery.ChargesResponse, error) {
		return &delhivery.ChargesResponse{Status: "Success"}, nil
	}
	client := newTestClient(mockAPI)

	_, err := client.FetchRawQuote(context.Background(), testParams())

	assert.ErrorIs(t, err, rateengine.ErrMalformedQuote)
}

func TestClient_Name(t *testing.T) {
	client := newTestClient(delhivery.NewMockAPIClient())
	assert.Equal(t, "delhivery", client.Name())
}
