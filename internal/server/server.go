// Package server exposes the estimation engine over HTTP: the same engine
// the interactive estimator runs locally, served as the authoritative
// quote path. Because both paths share one engine, a saved profile can
// never quote differently from its live preview.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/assurelab/riskquote/internal/calculation"
	"github.com/assurelab/riskquote/internal/catalog"
	"github.com/assurelab/riskquote/internal/domain"
	"github.com/assurelab/riskquote/internal/store"
)

// Server handles quote service requests.
type Server struct {
	catalog atomic.Pointer[catalog.Catalog]
	store   *store.Store
	metrics *Metrics
	logger  *slog.Logger

	metricsHandler fasthttp.RequestHandler
}

// New creates a quote server over a catalog and a profile store.
func New(c *catalog.Catalog, st *store.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		store:   st,
		metrics: NewMetrics(),
		logger:  logger.With("component", "server"),
	}
	s.catalog.Store(c)
	s.metricsHandler = fasthttpadaptor.NewFastHTTPHandler(
		promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))
	return s
}

// SwapCatalog atomically replaces the live catalog. In-flight requests
// finish on the catalog they started with.
func (s *Server) SwapCatalog(c *catalog.Catalog) {
	s.catalog.Store(c)
	s.metrics.CatalogReload.Inc()
	s.logger.Info("catalog swapped")
}

// engine builds an engine over the current catalog. Engines are cheap:
// two pointers.
func (s *Server) engine() *calculation.Engine {
	return calculation.NewEngineWithCatalog(s.catalog.Load())
}

// ListenAndServe blocks serving HTTP on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("quote service listening", "addr", addr)
	return fasthttp.ListenAndServe(addr, s.HandleRequest)
}

// estimateRequest is the POST /v1/estimate body.
type estimateRequest struct {
	Profile domain.RiskProfile        `json:"profile"`
	Policy  domain.PolicyPricingInput `json:"policy"`
}

// estimateResponse mirrors the engine's two outputs.
type estimateResponse struct {
	Assessment *domain.CompositeRiskAssessment `json:"assessment"`
	Quote      *domain.PremiumQuote            `json:"quote"`
}

type createProfileRequest struct {
	Customer string             `json:"customer"`
	Profile  domain.RiskProfile `json:"profile"`
}

type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// HandleRequest routes every request. fasthttp handlers must not retain
// ctx past return; all work here is synchronous.
func (s *Server) HandleRequest(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	method := string(ctx.Method())

	switch {
	case path == "/healthz" && method == fasthttp.MethodGet:
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("ok")

	case path == "/metrics" && method == fasthttp.MethodGet:
		s.metricsHandler(ctx)

	case path == "/v1/estimate" && method == fasthttp.MethodPost:
		s.handleEstimate(ctx)

	case path == "/v1/profiles" && method == fasthttp.MethodPost:
		s.handleCreateProfile(ctx)

	case strings.HasPrefix(path, "/v1/profiles/"):
		s.routeProfile(ctx, strings.TrimPrefix(path, "/v1/profiles/"), method)

	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

func (s *Server) routeProfile(ctx *fasthttp.RequestCtx, rest, method string) {
	parts := strings.Split(rest, "/")
	id := parts[0]
	if id == "" {
		writeError(ctx, fasthttp.StatusNotFound, "not found")
		return
	}

	switch {
	case len(parts) == 1 && method == fasthttp.MethodGet:
		s.handleGetProfile(ctx, id)
	case len(parts) == 1 && method == fasthttp.MethodPut:
		s.handleUpdateProfile(ctx, id)
	case len(parts) == 2 && parts[1] == "quote" && method == fasthttp.MethodPost:
		s.handleProfileQuote(ctx, id)
	case len(parts) == 2 && parts[1] == "audit" && method == fasthttp.MethodGet:
		s.handleProfileAudit(ctx, id)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

// handleEstimate computes a stateless estimate: nothing is persisted and
// no audit entry is written. This is the endpoint the interactive
// estimator reconciles against.
func (s *Server) handleEstimate(ctx *fasthttp.RequestCtx) {
	var req estimateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	start := time.Now()
	assessment, quote, err := s.engine().Estimate(&req.Profile, req.Policy)
	if err != nil {
		s.metrics.QuoteErrors.WithLabelValues(errorReason(err)).Inc()
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	s.metrics.QuoteDuration.Observe(time.Since(start).Seconds())
	s.metrics.QuotesTotal.WithLabelValues(string(quote.PolicyType)).Inc()

	writeJSON(ctx, fasthttp.StatusOK, estimateResponse{Assessment: assessment, Quote: quote})
}

func (s *Server) handleCreateProfile(ctx *fasthttp.RequestCtx) {
	var req createProfileRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Customer == "" {
		writeError(ctx, fasthttp.StatusBadRequest, "customer is required")
		return
	}

	p, err := s.store.CreateProfile(requestContext(ctx), req.Customer, &req.Profile)
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusCreated, p)
}

func (s *Server) handleUpdateProfile(ctx *fasthttp.RequestCtx, id string) {
	var attrs domain.RiskProfile
	if err := json.Unmarshal(ctx.PostBody(), &attrs); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	p, err := s.store.UpdateProfile(requestContext(ctx), id, &attrs)
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, p)
}

func (s *Server) handleGetProfile(ctx *fasthttp.RequestCtx, id string) {
	p, err := s.store.GetProfile(requestContext(ctx), id)
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, p)
}

// handleProfileQuote computes the canonical quote for a saved profile and
// records it in the audit trail.
func (s *Server) handleProfileQuote(ctx *fasthttp.RequestCtx, id string) {
	var pricing domain.PolicyPricingInput
	if err := json.Unmarshal(ctx.PostBody(), &pricing); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	rctx := requestContext(ctx)
	p, err := s.store.GetProfile(rctx, id)
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}

	start := time.Now()
	assessment, quote, err := s.engine().Estimate(&p.Attrs, pricing)
	if err != nil {
		s.metrics.QuoteErrors.WithLabelValues(errorReason(err)).Inc()
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	s.metrics.QuoteDuration.Observe(time.Since(start).Seconds())
	s.metrics.QuotesTotal.WithLabelValues(string(quote.PolicyType)).Inc()
	s.store.RecordQuote(rctx, id, quote)

	writeJSON(ctx, fasthttp.StatusOK, estimateResponse{Assessment: assessment, Quote: quote})
}

func (s *Server) handleProfileAudit(ctx *fasthttp.RequestCtx, id string) {
	entries, err := s.store.ListAudit(requestContext(ctx), id)
	if err != nil {
		writeError(ctx, statusFor(err), err.Error())
		return
	}
	if entries == nil {
		entries = []*store.AuditEntry{}
	}
	writeJSON(ctx, fasthttp.StatusOK, entries)
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to encode response")
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(data)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	data, _ := json.Marshal(errorResponse{Status: status, Message: message})
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(data)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fasthttp.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return fasthttp.StatusNotFound
	default:
		return fasthttp.StatusInternalServerError
	}
}

func errorReason(err error) string {
	if errors.Is(err, domain.ErrInvalidInput) {
		return "invalid_input"
	}
	return "internal"
}

// requestContext derives a context for store calls. fasthttp does not
// carry a per-request context, and the handlers are synchronous with
// short store calls, so a background context serves.
func requestContext(_ *fasthttp.RequestCtx) context.Context {
	return context.Background()
}

// WatchCatalog runs the catalog file watcher until ctx is cancelled,
// swapping the live catalog on every valid reload.
func (s *Server) WatchCatalog(ctx context.Context, path string) error {
	w := catalog.NewWatcher(path, s.logger)
	err := w.Watch(ctx, s.SwapCatalog)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("catalog watch failed: %w", err)
	}
	return nil
}
