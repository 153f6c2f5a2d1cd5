package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shipmint/rateengine/internal/planstore"
	"github.com/shipmint/rateengine/internal/telemetry"
	"github.com/shipmint/rateengine/internal/zoneresolver"
	"github.com/shipmint/rateengine/pkg/courier"
	"github.com/shipmint/rateengine/pkg/rateengine"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Server is the HTTP server for the rate engine service.
type Server struct {
	port       int
	registry   *courier.Registry
	aggregator *courier.Aggregator
	zones      zoneresolver.Resolver
	plans      planstore.Store // nil when no plan store is configured
	logger     *otelzap.Logger
	metrics    *telemetry.Metrics
}

// Config holds server configuration.
type Config struct {
	Port          int
	SourceTimeout time.Duration
}

// New creates a new server instance. plans may be nil; plan-id based
// operations then return 503.
func New(cfg Config, registry *courier.Registry, zones zoneresolver.Resolver, plans planstore.Store, logger *otelzap.Logger) *Server {
	metrics := telemetry.NewMetrics()
	aggregator := courier.NewAggregator(registry, logger, metrics, cfg.SourceTimeout)

	return &Server{
		port:       cfg.Port,
		registry:   registry,
		aggregator: aggregator,
		zones:      zones,
		plans:      plans,
		logger:     logger,
		metrics:    metrics,
	}
}

// Router builds the HTTP routes. Exposed for tests.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/rates", s.handleRates)
		r.Post("/plans/diff", s.handlePlanDiff)
		r.Get("/couriers", s.handleCouriers)
	})

	return r
}

// Run starts the HTTP server and blocks until context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleCouriers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"couriers": s.registry.Names(),
	})
}

// ratesRequest is the body of POST /v1/rates.
type ratesRequest struct {
	OriginPincode      string                    `json:"origin_pincode"`
	DestinationPincode string                    `json:"destination_pincode"`
	Package            rateengine.PackageDetails `json:"package"`
	PaymentMode        string                    `json:"payment_mode"`
	CollectableAmount  float64                   `json:"collectable_amount"`
	PlanID             string                    `json:"plan_id,omitempty"`
}

type ratesResponse struct {
	RequestID string                  `json:"request_id"`
	Zone      rateengine.Zone         `json:"zone"`
	ZoneName  string                  `json:"zone_name"`
	Rates     []*rateengine.RateQuote `json:"rates"`
	Dropped   []string                `json:"dropped,omitempty"`
}

func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	var req ratesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.OriginPincode == "" || req.DestinationPincode == "" {
		writeError(w, http.StatusBadRequest, "origin_pincode and destination_pincode are required")
		return
	}
	if err := validatePackage(req.Package); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	mode := courier.PaymentMode(req.PaymentMode)
	if mode == "" {
		mode = courier.PaymentPrepaid
	}
	if mode != courier.PaymentPrepaid && mode != courier.PaymentCOD {
		writeError(w, http.StatusBadRequest, "payment_mode must be prepaid or cod")
		return
	}

	ctx := r.Context()

	zone, zoneName, err := s.zones.Resolve(ctx, req.OriginPincode, req.DestinationPincode)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unserviceable lane: "+err.Error())
		return
	}

	params := &courier.ShipmentParams{
		OriginPincode:      req.OriginPincode,
		DestinationPincode: req.DestinationPincode,
		Package:            req.Package,
		PaymentMode:        mode,
		CollectableAmount:  req.CollectableAmount,
		Zone:               zone,
		ZoneName:           zoneName,
	}

	quotes, errs := s.aggregator.Collect(ctx, params)

	if req.PlanID != "" {
		quotes, errs = s.repriceWithPlan(ctx, req, quotes, errs)
	}

	dropped := make([]string, 0, len(errs))
	for _, e := range errs {
		dropped = append(dropped, e.Error())
	}

	// Zero successes is a valid "no rates available" outcome.
	writeJSON(w, http.StatusOK, ratesResponse{
		RequestID: uuid.New().String(),
		Zone:      zone,
		ZoneName:  zoneName,
		Rates:     quotes,
		Dropped:   dropped,
	})
}

// repriceWithPlan recomputes quote pricing from the seller's plan cards.
// Quotes without a card in the plan keep the courier's published pricing; a
// quote whose repricing fails is dropped like any other bad quote.
func (s *Server) repriceWithPlan(ctx context.Context, req ratesRequest, quotes []*rateengine.RateQuote, errs []error) ([]*rateengine.RateQuote, []error) {
	if s.plans == nil {
		errs = append(errs, errors.New("plan store not configured"))
		return quotes, errs
	}
	plan, err := s.plans.GetPlan(ctx, req.PlanID)
	if err != nil {
		s.logger.Warn("Plan lookup failed", zap.String("plan_id", req.PlanID), zap.Error(err))
		errs = append(errs, fmt.Errorf("plan %s: %w", req.PlanID, err))
		return quotes, errs
	}

	collectable := req.CollectableAmount
	if courier.PaymentMode(req.PaymentMode) != courier.PaymentCOD {
		collectable = 0
	}

	kept := quotes[:0]
	for _, q := range quotes {
		card, ok := plan.CardFor(q.Courier.ID)
		if !ok {
			kept = append(kept, q)
			continue
		}
		if err := rateengine.Reprice(q, card, req.Package, collectable); err != nil {
			s.logger.Warn("Dropping quote after repricing failure",
				zap.String("courier_id", q.Courier.ID),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", q.Courier.ID, err))
			continue
		}
		kept = append(kept, q)
	}
	return kept, errs
}

// planDiffRequest is the body of POST /v1/plans/diff. Either plan_id or the
// two snapshots must be given.
type planDiffRequest struct {
	PlanID   string                      `json:"plan_id,omitempty"`
	Current  []rateengine.CourierPricing `json:"current,omitempty"`
	Original []rateengine.CourierPricing `json:"original,omitempty"`
}

func (s *Server) handlePlanDiff(w http.ResponseWriter, r *http.Request) {
	var req planDiffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	current, original := req.Current, req.Original
	if req.PlanID != "" {
		if s.plans == nil {
			writeError(w, http.StatusServiceUnavailable, "plan store not configured")
			return
		}
		cur, prior, err := s.plans.GetRevisions(r.Context(), req.PlanID)
		switch {
		case errors.Is(err, planstore.ErrPlanNotFound):
			writeError(w, http.StatusNotFound, err.Error())
			return
		case errors.Is(err, planstore.ErrNoPriorRevision):
			// Nothing to compare against; report no changes.
			current, original = cur.CourierPricing, nil
		case err != nil:
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		default:
			current, original = cur.CourierPricing, prior.CourierPricing
		}
	}

	result := rateengine.DiffPlans(current, original)
	s.metrics.RecordPlanDiff(result.HasChanges)
	writeJSON(w, http.StatusOK, result)
}

func validatePackage(pkg rateengine.PackageDetails) error {
	switch {
	case pkg.Length <= 0 || pkg.Breadth <= 0 || pkg.Height <= 0:
		return errors.New("package dimensions must be > 0")
	case pkg.DeadWeight <= 0:
		return errors.New("package deadWeight must be > 0")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
