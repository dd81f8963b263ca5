package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"certsale/internal/core/domain"
)

func assetParam(r *http.Request) (domain.Asset, error) {
	return domain.ParseAsset(chi.URLParam(r, "asset"))
}

func (h *Handler) handleLedgerBalance(w http.ResponseWriter, r *http.Request) {
	asset, err := assetParam(r)
	if err != nil {
		h.fail(w, r, "ledger balance", err)
		return
	}
	account, err := identityParam(r, "account")
	if err != nil {
		h.badRequest(w, "invalid account address")
		return
	}
	bal, err := h.ledger.Balance(r.Context(), asset, account)
	if err != nil {
		h.fail(w, r, "ledger balance", err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, balanceResponse{Asset: asset, Account: account, Balance: bal})
}

// handleLedgerApprove lets the caller allow spender, normally a campaign
// address, to pull amount of a token.
func (h *Handler) handleLedgerApprove(w http.ResponseWriter, r *http.Request) {
	asset, err := assetParam(r)
	if err != nil {
		h.fail(w, r, "ledger approve", err)
		return
	}
	owner, err := caller(r)
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}
	var body ledgerRequest
	if err := decode(r, w, &body); err != nil {
		h.badRequest(w, err.Error())
		return
	}
	spender, err := domain.ParseIdentity(body.Spender)
	if err != nil {
		h.fail(w, r, "ledger approve", err)
		return
	}
	if err := h.ledger.Approve(r.Context(), asset, owner, spender, body.Amount); err != nil {
		h.fail(w, r, "ledger approve", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleLedgerFaucet(w http.ResponseWriter, r *http.Request) {
	asset, err := assetParam(r)
	if err != nil {
		h.fail(w, r, "ledger faucet", err)
		return
	}
	var body ledgerRequest
	if err := decode(r, w, &body); err != nil {
		h.badRequest(w, err.Error())
		return
	}
	account, err := domain.ParseIdentity(body.Account)
	if err != nil {
		h.fail(w, r, "ledger faucet", err)
		return
	}
	if err := h.ledger.Faucet(r.Context(), asset, account, body.Amount); err != nil {
		h.fail(w, r, "ledger faucet", err)
		return
	}
	bal, err := h.ledger.Balance(r.Context(), asset, account)
	if err != nil {
		h.fail(w, r, "ledger faucet", err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, balanceResponse{Asset: asset, Account: account, Balance: bal})
}
