package courier

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shipmint/rateengine/pkg/rateengine"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Registry manages registered courier sources.
type Registry struct {
	sources map[string]Source
	mu      sync.RWMutex
}

// NewRegistry creates a new source registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[string]Source),
	}
}

// Register adds a source to the registry.
func (r *Registry) Register(s Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[s.Name()] = s
}

// Get returns a source by name.
func (r *Registry) Get(name string) (Source, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.sources[name]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %s", rateengine.ErrSourceNotFound, name)
}

// All returns all registered sources.
func (r *Registry) All() []Source {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]Source, 0, len(r.sources))
	for _, s := range r.sources {
		result = append(result, s)
	}
	return result
}

// Names returns the names of all registered sources.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	return names
}

// Count returns the number of registered sources.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sources)
}

// Recorder receives fan-out outcome metrics. Implemented by
// telemetry.Metrics; kept as an interface so the package does not depend on
// the wiring layer.
type Recorder interface {
	RecordQuote(source, status string, duration float64)
}

// Aggregator fans a shipment out to every registered source, normalizes each
// raw quote as it arrives, and collects best-effort partial results.
type Aggregator struct {
	registry *Registry
	logger   *otelzap.Logger
	metrics  Recorder
	timeout  time.Duration
}

// NewAggregator creates an aggregator over the given registry. Each source
// call is bounded by timeout independently; a slow source cannot hold the
// whole request past its own deadline. metrics may be nil.
func NewAggregator(registry *Registry, logger *otelzap.Logger, metrics Recorder, timeout time.Duration) *Aggregator {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Aggregator{
		registry: registry,
		logger:   logger,
		metrics:  metrics,
		timeout:  timeout,
	}
}

// Collect fetches and normalizes quotes from all registered sources in
// parallel. A source that fails, times out, or returns a malformed quote is
// dropped from the result set and reported in the error slice; the remaining
// quotes are still returned. Zero successes with a non-empty registry is a
// valid "no rates available" outcome, not an error.
func (a *Aggregator) Collect(ctx context.Context, params *ShipmentParams) ([]*rateengine.RateQuote, []error) {
	sources := a.registry.All()
	if len(sources) == 0 {
		return nil, []error{rateengine.ErrSourceNotFound}
	}

	quotes := make([]*rateengine.RateQuote, 0, len(sources))
	errs := make([]error, 0)
	mu := &sync.Mutex{}

	g, ctx := errgroup.WithContext(ctx)

	for _, s := range sources {
		s := s
		g.Go(func() error {
			start := time.Now()
			srcCtx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()

			raw, err := s.FetchRawQuote(srcCtx, params)
			if err != nil {
				a.record(s.Name(), "unavailable", start)
				a.logger.Warn("Courier source unavailable",
					zap.String("source", s.Name()),
					zap.Error(err),
				)
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
				mu.Unlock()
				return nil // keep going with the other sources
			}

			quote, err := rateengine.Normalize(raw)
			if err != nil {
				a.record(s.Name(), "dropped", start)
				a.logger.Warn("Dropping courier quote",
					zap.String("source", s.Name()),
					zap.String("courier_id", rawCourierID(raw)),
					zap.Error(err),
				)
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
				mu.Unlock()
				return nil
			}

			a.record(s.Name(), "ok", start)
			mu.Lock()
			quotes = append(quotes, quote)
			mu.Unlock()
			return nil
		})
	}

	g.Wait()
	return quotes, errs
}

func (a *Aggregator) record(source, status string, start time.Time) {
	if a.metrics != nil {
		a.metrics.RecordQuote(source, status, time.Since(start).Seconds())
	}
}

func rawCourierID(raw *rateengine.RawQuote) string {
	if raw == nil || raw.Courier == nil {
		return ""
	}
	return raw.Courier.ID
}
