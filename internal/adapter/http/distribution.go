package httpadapter

import (
	"net/http"

	"certsale/internal/core/domain"
)

// handleCreateDistribution deposits amount from the owner and splits it
// over the live supply. For native campaigns value must equal amount.
func (h *Handler) handleCreateDistribution(w http.ResponseWriter, r *http.Request) {
	id, who, ok := h.campaignAndCaller(w, r)
	if !ok {
		return
	}
	var body distributionRequest
	if err := decode(r, w, &body); err != nil {
		h.badRequest(w, err.Error())
		return
	}
	payment := domain.Payment{Payer: who, Attached: body.Value}
	d, err := h.svc.CreateDistribution(r.Context(), id, who, body.Amount, payment)
	if err != nil {
		h.fail(w, r, "create distribution", err)
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, d)
}

func (h *Handler) handleClaim(w http.ResponseWriter, r *http.Request) {
	id, who, ok := h.campaignAndCaller(w, r)
	if !ok {
		return
	}
	index, err := indexParam(r)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}
	receipt, err := h.svc.Claim(r.Context(), id, index, who)
	if err != nil {
		h.fail(w, r, "claim", err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, receipt)
}

func (h *Handler) handleClaimBatch(w http.ResponseWriter, r *http.Request) {
	id, who, ok := h.campaignAndCaller(w, r)
	if !ok {
		return
	}
	var body claimBatchRequest
	if err := decode(r, w, &body); err != nil {
		h.badRequest(w, err.Error())
		return
	}
	if len(body.Indices) == 0 {
		h.badRequest(w, "indices must not be empty")
		return
	}
	receipt, err := h.svc.ClaimBatch(r.Context(), id, body.Indices, who)
	if err != nil {
		h.fail(w, r, "claim batch", err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, receipt)
}

func (h *Handler) handleEntitlement(w http.ResponseWriter, r *http.Request) {
	id, err := identityParam(r, "address")
	if err != nil {
		h.badRequest(w, "invalid campaign address")
		return
	}
	holder, err := identityParam(r, "holder")
	if err != nil {
		h.badRequest(w, "invalid holder address")
		return
	}
	index, err := indexParam(r)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}
	amount, err := h.svc.Entitlement(r.Context(), id, index, holder)
	if err != nil {
		h.fail(w, r, "entitlement", err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, entitlementResponse{Index: index, Holder: holder, Amount: amount})
}

func (h *Handler) handleCertificatesOf(w http.ResponseWriter, r *http.Request) {
	id, err := identityParam(r, "address")
	if err != nil {
		h.badRequest(w, "invalid campaign address")
		return
	}
	holder, err := identityParam(r, "holder")
	if err != nil {
		h.badRequest(w, "invalid holder address")
		return
	}
	certs, err := h.svc.CertificatesOf(r.Context(), id, holder)
	if err != nil {
		h.fail(w, r, "certificates", err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, certs)
}

func (h *Handler) handleCertificate(w http.ResponseWriter, r *http.Request) {
	id, err := identityParam(r, "address")
	if err != nil {
		h.badRequest(w, "invalid campaign address")
		return
	}
	certID, err := certParam(r)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}
	cert, err := h.svc.Certificate(r.Context(), id, certID)
	if err != nil {
		h.fail(w, r, "certificate", err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, cert)
}

func (h *Handler) handleTransferCertificate(w http.ResponseWriter, r *http.Request) {
	id, who, ok := h.campaignAndCaller(w, r)
	if !ok {
		return
	}
	certID, err := certParam(r)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}
	var body transferRequest
	if err := decode(r, w, &body); err != nil {
		h.badRequest(w, err.Error())
		return
	}
	to, err := domain.ParseIdentity(body.To)
	if err != nil {
		h.fail(w, r, "transfer certificate", err)
		return
	}
	if err := h.svc.TransferCertificate(r.Context(), id, who, certID, to); err != nil {
		h.fail(w, r, "transfer certificate", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
