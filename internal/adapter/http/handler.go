package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"certsale/internal/core/port"
)

// Handler is the inbound HTTP adapter. It translates requests into
// campaign use case calls and maps domain errors to status codes. The
// caller of a mutating request is taken from the X-Caller header.
type Handler struct {
	svc    port.CampaignUseCase
	ledger port.LedgerUseCase
	logger *slog.Logger
	router chi.Router
}

// Option customises the router built by NewHandler.
type Option func(*options)

type options struct {
	middlewares []func(http.Handler) http.Handler
	metricsPath string
	metrics     http.Handler
}

// WithMiddleware installs mw in front of every route.
func WithMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(o *options) { o.middlewares = append(o.middlewares, mw...) }
}

// WithMetricsHandler serves h at path outside the API prefix.
func WithMetricsHandler(path string, h http.Handler) Option {
	return func(o *options) {
		o.metricsPath = path
		o.metrics = h
	}
}

// NewHandler creates a handler with all routes configured. Ledger routes
// are registered only when ledger is not nil.
func NewHandler(svc port.CampaignUseCase, ledger port.LedgerUseCase, logger *slog.Logger, opts ...Option) *Handler {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	h := &Handler{svc: svc, ledger: ledger, logger: logger}
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)
	r.Use(o.middlewares...)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/campaigns", func(r chi.Router) {
			r.Post("/", h.handleCreateCampaign)
			r.Get("/", h.handleListCampaigns)

			r.Route("/{address}", func(r chi.Router) {
				r.Get("/", h.handleGetCampaign)
				r.Post("/purchase", h.handlePurchase)
				r.Post("/withdraw", h.handleWithdraw)
				r.Post("/cancel", h.handleCancel)
				r.Post("/deadline", h.handleExtendDeadline)
				r.Post("/manual-transfer", h.handleManualTransfer)
				r.Post("/reclaim", h.handleReclaim)

				r.Post("/distributions", h.handleCreateDistribution)
				r.Post("/distributions/claim", h.handleClaimBatch)
				r.Post("/distributions/{index}/claim", h.handleClaim)
				r.Get("/distributions/{index}/entitlement/{holder}", h.handleEntitlement)

				r.Get("/holders/{holder}/certificates", h.handleCertificatesOf)
				r.Get("/certificates/{certID}", h.handleCertificate)
				r.Post("/certificates/{certID}/transfer", h.handleTransferCertificate)
			})
		})

		if ledger != nil {
			r.Route("/ledger/{asset}", func(r chi.Router) {
				r.Get("/balances/{account}", h.handleLedgerBalance)
				r.Post("/approve", h.handleLedgerApprove)
				r.Post("/faucet", h.handleLedgerFaucet)
			})
		}
	})

	if o.metrics != nil {
		r.Method(http.MethodGet, o.metricsPath, o.metrics)
	}
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
