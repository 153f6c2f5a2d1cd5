package courier_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shipmint/rateengine/pkg/courier"
	"github.com/shipmint/rateengine/pkg/courier/mock"
	"github.com/shipmint/rateengine/pkg/rateengine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

func testParams() *courier.ShipmentParams {
	return &courier.ShipmentParams{
		OriginPincode:      "110001",
		DestinationPincode: "400001",
		Package:            rateengine.PackageDetails{Length: 30, Breadth: 20, Height: 15, DeadWeight: 1},
		PaymentMode:        courier.PaymentPrepaid,
		Zone:               rateengine.ZoneC,
	}
}

func newAggregator(r *courier.Registry, timeout time.Duration) *courier.Aggregator {
	logger := otelzap.New(zap.NewNop())
	return courier.NewAggregator(r, logger, nil, timeout)
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := courier.NewRegistry()
	r.Register(mock.New("delhivery"))
	r.Register(mock.New("xpressbees"))

	s, err := r.Get("delhivery")
	require.NoError(t, err)
	assert.Equal(t, "delhivery", s.Name())

	assert.Equal(t, 2, r.Count())
	assert.ElementsMatch(t, []string{"delhivery", "xpressbees"}, r.Names())
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := courier.NewRegistry()

	_, err := r.Get("nope")

	assert.ErrorIs(t, err, rateengine.ErrSourceNotFound)
}

func TestAggregator_CollectAll(t *testing.T) {
	r := courier.NewRegistry()
	r.Register(mock.New("delhivery"))
	r.Register(mock.New("xpressbees"))
	agg := newAggregator(r, time.Second)

	quotes, errs := agg.Collect(context.Background(), testParams())

	assert.Empty(t, errs)
	require.Len(t, quotes, 2)
	for _, q := range quotes {
		assert.Equal(t, rateengine.ZoneC, q.Zone)
		assert.NotEmpty(t, q.Courier.ID)
	}
}

func TestAggregator_PartialResultsOnSourceFailure(t *testing.T) {
	r := courier.NewRegistry()
	r.Register(mock.New("delhivery"))
	broken := mock.New("xpressbees")
	broken.Err = errors.New("connection refused")
	r.Register(broken)
	agg := newAggregator(r, time.Second)

	quotes, errs := agg.Collect(context.Background(), testParams())

	require.Len(t, quotes, 1)
	assert.Equal(t, "delhivery-1", quotes[0].Courier.ID)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "xpressbees")
}

func TestAggregator_DropsMalformedQuote(t *testing.T) {
	r := courier.NewRegistry()
	r.Register(mock.New("delhivery"))
	malformed := mock.New("xpressbees")
	malformed.Raw = &rateengine.RawQuote{
		Courier: &rateengine.RawCourier{Name: "no id"},
	}
	r.Register(malformed)
	agg := newAggregator(r, time.Second)

	quotes, errs := agg.Collect(context.Background(), testParams())

	require.Len(t, quotes, 1)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], rateengine.ErrMalformedQuote)
}

func TestAggregator_SlowSourceTimesOutIndependently(t *testing.T) {
	r := courier.NewRegistry()
	r.Register(mock.New("delhivery"))
	slow := mock.New("xpressbees")
	slow.OnFetch = func(ctx context.Context, params *courier.ShipmentParams) (*rateengine.RawQuote, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Second):
			return nil, errors.New("should have timed out")
		}
	}
	r.Register(slow)
	agg := newAggregator(r, 50*time.Millisecond)

	start := time.Now()
	quotes, errs := agg.Collect(context.Background(), testParams())

	assert.Less(t, time.Since(start), 2*time.Second)
	require.Len(t, quotes, 1)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], context.DeadlineExceeded)
}

func TestAggregator_ZeroSuccessesIsNoRatesNotError(t *testing.T) {
	r := courier.NewRegistry()
	broken := mock.New("delhivery")
	broken.Err = errors.New("down")
	r.Register(broken)
	agg := newAggregator(r, time.Second)

	quotes, errs := agg.Collect(context.Background(), testParams())

	assert.Empty(t, quotes)
	assert.Len(t, errs, 1)
}

func TestAggregator_EmptyRegistry(t *testing.T) {
	agg := newAggregator(courier.NewRegistry(), time.Second)

	quotes, errs := agg.Collect(context.Background(), testParams())

	assert.Nil(t, quotes)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], rateengine.ErrSourceNotFound)
}
