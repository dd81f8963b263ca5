package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"certsale/internal/adapter/bolt"
	"certsale/internal/adapter/ledger"
	"certsale/internal/adapter/payment"
	"certsale/internal/adapter/usecase"
	"certsale/internal/core/domain"
	"certsale/internal/core/port"
)

var (
	owner = domain.MustIdentity("0x1111111111111111111111111111111111111111")
	buyer = domain.MustIdentity("0x2222222222222222222222222222222222222222")
)

type server struct {
	t      *testing.T
	router http.Handler
}

func newServer(t *testing.T) *server {
	t.Helper()
	repo, err := bolt.Open(filepath.Join(t.TempDir(), "certsale.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	book := ledger.NewBook(true)
	gateway, err := payment.FromBook(book)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := usecase.NewCampaignUseCase(repo, gateway, usecase.WithLogger(logger))
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	h := NewHandler(svc, book, logger, WithMetricsHandler("/metrics", metrics))
	return &server{t: t, router: h.Router()}
}

func (s *server) do(method, path string, who domain.Identity, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if !who.IsZero() {
		req.Header.Set(callerHeader, who.String())
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (s *server) createCampaign() domain.Identity {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/campaigns", owner, map[string]any{
		"content_base":    "ipfs://base/",
		"name":            "Solar Farm",
		"symbol":          "SUN",
		"tier_quantities": []uint64{1, 2},
		"pricing":         map[string]any{"mode": "denomination", "base_price": 2},
		"maximum_supply":  3,
		"deadline":        time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	view := decodeBody[port.CampaignView](s.t, w)
	assert.Equal(s.t, "/api/v1/campaigns/"+view.ID.String(), w.Header().Get("Location"))
	return view.ID
}

func TestCampaignFlow(t *testing.T) {
	s := newServer(t)
	id := s.createCampaign()
	base := "/api/v1/campaigns/" + id.String()

	w := s.do(http.MethodPost, "/api/v1/ledger/native/faucet", "", map[string]any{"account": buyer, "amount": 100})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Tier 1 has capacity 2, so each unit costs 2 × 2.
	w = s.do(http.MethodPost, base+"/purchase", buyer, map[string]any{"units": []int{1, 1}, "value": 8})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	receipt := decodeBody[domain.PurchaseReceipt](t, w)
	assert.Equal(t, uint64(8), receipt.Cost)
	assert.Equal(t, []domain.CertificateID{0, 1}, receipt.Certificates)

	w = s.do(http.MethodGet, base, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decodeBody[port.CampaignView](t, w)
	assert.Equal(t, uint64(8), view.Balance)
	assert.Equal(t, domain.StatusNew, view.Status)

	w = s.do(http.MethodGet, base+"/holders/"+buyer.String()+"/certificates", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	certs := decodeBody[[]port.CertificateView](t, w)
	require.Len(t, certs, 2)
	assert.Equal(t, "ipfs://base/2.json", certs[0].TokenURI)

	w = s.do(http.MethodPost, base+"/withdraw", owner, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, uint64(8), decodeBody[withdrawResponse](t, w).Amount)

	w = s.do(http.MethodGet, "/api/v1/ledger/native/balances/"+owner.String(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint64(8), decodeBody[balanceResponse](t, w).Balance)

	w = s.do(http.MethodPost, base+"/distributions", owner, map[string]any{"amount": 8, "value": 8})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodGet, base+"/distributions/0/entitlement/"+buyer.String(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint64(8), decodeBody[entitlementResponse](t, w).Amount)

	w = s.do(http.MethodPost, base+"/distributions/0/claim", buyer, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, uint64(8), decodeBody[domain.ClaimReceipt](t, w).Amount)

	w = s.do(http.MethodGet, "/api/v1/campaigns", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeBody[[]port.CampaignSummary](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, domain.StatusWithdrawn, list[0].Status)
}

func TestErrorStatuses(t *testing.T) {
	s := newServer(t)
	id := s.createCampaign()
	base := "/api/v1/campaigns/" + id.String()

	tests := []struct {
		name   string
		method string
		path   string
		who    domain.Identity
		body   any
		status int
		code   domain.Code
	}{
		{"missing caller", http.MethodPost, base + "/cancel", "", nil, http.StatusBadRequest, ""},
		{"bad address", http.MethodGet, "/api/v1/campaigns/nope", "", nil, http.StatusBadRequest, ""},
		{"unknown campaign", http.MethodGet, "/api/v1/campaigns/" + buyer.String(), "", nil, http.StatusNotFound, ""},
		{"not owner", http.MethodPost, base + "/cancel", buyer, nil, http.StatusForbidden, domain.CodeNotOwner},
		{"underpaid", http.MethodPost, base + "/purchase", buyer, map[string]any{"units": []int{0}, "value": 1}, http.StatusPaymentRequired, domain.CodeInsufficientPayment},
		{"over capacity", http.MethodPost, base + "/purchase", buyer, map[string]any{"units": []int{0, 0}, "value": 4}, http.StatusUnprocessableEntity, domain.CodeCapacityExceeded},
		{"unknown field", http.MethodPost, base + "/purchase", buyer, map[string]any{"tierz": 1}, http.StatusBadRequest, ""},
		{"no funds", http.MethodPost, base + "/purchase", buyer, map[string]any{"units": []int{0}, "value": 2}, http.StatusBadGateway, domain.CodePaymentTransferFailed},
		{"not cancelled", http.MethodPost, base + "/reclaim", buyer, nil, http.StatusConflict, domain.CodeNotCancelled},
		{"no distribution", http.MethodPost, base + "/distributions/3/claim", buyer, nil, http.StatusNotFound, domain.CodeDistributionNotFound},
		{"bad index", http.MethodPost, base + "/distributions/x/claim", buyer, nil, http.StatusBadRequest, ""},
		{"unknown certificate", http.MethodGet, base + "/certificates/9", "", nil, http.StatusNotFound, domain.CodeCertificateNotFound},
		{"unknown asset", http.MethodGet, "/api/v1/ledger/token:" + buyer.String() + "/balances/" + owner.String(), "", nil, http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(tt.method, tt.path, tt.who, tt.body)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			resp := decodeBody[errorResponse](t, w)
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, tt.code, resp.Code)
		})
	}
}

func TestCancelThenReclaim(t *testing.T) {
	s := newServer(t)
	id := s.createCampaign()
	base := "/api/v1/campaigns/" + id.String()

	s.do(http.MethodPost, "/api/v1/ledger/native/faucet", "", map[string]any{"account": buyer, "amount": 2})
	w := s.do(http.MethodPost, base+"/purchase", buyer, map[string]any{"tiers": []domain.TierRequest{{Tier: 0, Quantity: 1}}, "value": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, base+"/cancel", owner, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(http.MethodPost, base+"/cancel", owner, nil)
	require.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, base+"/reclaim", buyer, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, uint64(2), decodeBody[domain.RefundReceipt](t, w).Amount)
}

func TestMetricsRoute(t *testing.T) {
	s := newServer(t)
	w := s.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{port.ErrConcurrentUpdate, http.StatusConflict},
		{port.ErrReentrantCall, http.StatusConflict},
		{fmt.Errorf("wrapped: %w", domain.ErrAlreadyWithdrawn), http.StatusConflict},
		{domain.ErrNotHolder, http.StatusForbidden},
		{ledger.ErrFaucetDisabled, http.StatusForbidden},
		{domain.ErrInvalidDeadline, http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
		{context.Canceled, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusOf(tt.err), tt.err.Error())
	}
}
