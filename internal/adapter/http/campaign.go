package httpadapter

import (
	"net/http"

	"certsale/internal/core/domain"
	"certsale/internal/core/port"
)

// campaignAndCaller resolves the {address} parameter and the caller
// header, writing a 400 response when either is invalid.
func (h *Handler) campaignAndCaller(w http.ResponseWriter, r *http.Request) (id, who domain.Identity, ok bool) {
	id, err := identityParam(r, "address")
	if err != nil {
		h.badRequest(w, "invalid campaign address")
		return "", "", false
	}
	who, err = caller(r)
	if err != nil {
		h.badRequest(w, err.Error())
		return "", "", false
	}
	return id, who, true
}

// handleCreateCampaign deploys a campaign owned by the caller and returns
// it with 201 Created.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	owner, err := caller(r)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}
	var body createCampaignRequest
	if err := decode(r, w, &body); err != nil {
		h.badRequest(w, err.Error())
		return
	}
	req, err := body.toReq(owner)
	if err != nil {
		h.fail(w, r, "create campaign", err)
		return
	}
	view, err := h.svc.CreateCampaign(r.Context(), req)
	if err != nil {
		h.fail(w, r, "create campaign", err)
		return
	}
	w.Header().Set("Location", "/api/v1/campaigns/"+view.ID.String())
	writeJSON(w, h.logger, http.StatusCreated, view)
}

func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListCampaigns(r.Context())
	if err != nil {
		h.fail(w, r, "list campaigns", err)
		return
	}
	if list == nil {
		list = []port.CampaignSummary{}
	}
	writeJSON(w, h.logger, http.StatusOK, list)
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := identityParam(r, "address")
	if err != nil {
		h.badRequest(w, "invalid campaign address")
		return
	}
	view, err := h.svc.GetCampaign(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get campaign", err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, view)
}

func (h *Handler) handlePurchase(w http.ResponseWriter, r *http.Request) {
	id, buyer, ok := h.campaignAndCaller(w, r)
	if !ok {
		return
	}
	var body purchaseRequest
	if err := decode(r, w, &body); err != nil {
		h.badRequest(w, err.Error())
		return
	}
	payment := domain.Payment{Payer: buyer, Attached: body.Value}
	receipt, err := h.svc.Purchase(r.Context(), id, buyer, body.requests(), payment)
	if err != nil {
		h.fail(w, r, "purchase", err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, receipt)
}

func (h *Handler) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	id, who, ok := h.campaignAndCaller(w, r)
	if !ok {
		return
	}
	amount, err := h.svc.Withdraw(r.Context(), id, who)
	if err != nil {
		h.fail(w, r, "withdraw", err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, withdrawResponse{Amount: amount})
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	id, who, ok := h.campaignAndCaller(w, r)
	if !ok {
		return
	}
	if err := h.svc.Cancel(r.Context(), id, who); err != nil {
		h.fail(w, r, "cancel", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleExtendDeadline(w http.ResponseWriter, r *http.Request) {
	id, who, ok := h.campaignAndCaller(w, r)
	if !ok {
		return
	}
	var body deadlineRequest
	if err := decode(r, w, &body); err != nil {
		h.badRequest(w, err.Error())
		return
	}
	if err := h.svc.ExtendDeadline(r.Context(), id, who, body.Deadline); err != nil {
		h.fail(w, r, "extend deadline", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleManualTransfer(w http.ResponseWriter, r *http.Request) {
	id, who, ok := h.campaignAndCaller(w, r)
	if !ok {
		return
	}
	var body manualTransferRequest
	if err := decode(r, w, &body); err != nil {
		h.badRequest(w, err.Error())
		return
	}
	recipient, err := domain.ParseIdentity(body.Recipient)
	if err != nil {
		h.fail(w, r, "manual transfer", err)
		return
	}
	reqs := body.Tiers
	if len(reqs) == 0 {
		reqs = domain.UnitsToRequests(body.Units)
	}
	ids, err := h.svc.ManualTransfer(r.Context(), id, who, reqs, recipient)
	if err != nil {
		h.fail(w, r, "manual transfer", err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, manualTransferResponse{Certificates: ids})
}

// handleReclaim refunds every refundable certificate the caller holds. A
// caller with nothing to refund gets a zero receipt, not an error.
func (h *Handler) handleReclaim(w http.ResponseWriter, r *http.Request) {
	id, who, ok := h.campaignAndCaller(w, r)
	if !ok {
		return
	}
	receipt, err := h.svc.Reclaim(r.Context(), id, who)
	if err != nil {
		h.fail(w, r, "reclaim", err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, receipt)
}
