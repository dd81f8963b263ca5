package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"certsale/internal/adapter/ledger"
	"certsale/internal/core/domain"
	"certsale/internal/core/port"
)

type errorResponse struct {
	Error string      `json:"error"`
	Code  domain.Code `json:"code,omitempty"`
}

// statusOf maps an error returned by the use case to an HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, port.ErrCampaignNotFound):
		return http.StatusNotFound
	case errors.Is(err, port.ErrConcurrentUpdate), errors.Is(err, port.ErrReentrantCall):
		return http.StatusConflict
	}

	switch domain.CodeOf(err) {
	case domain.CodeNotOwner, domain.CodeNotHolder:
		return http.StatusForbidden
	case domain.CodeNotNew, domain.CodeNotEligibleForWithdrawal, domain.CodeAlreadyCancelled,
		domain.CodeAlreadyWithdrawn, domain.CodeCampaignCancelled, domain.CodeNotCancelled,
		domain.CodeNotWithdrawn:
		return http.StatusConflict
	case domain.CodeDistributionNotFound, domain.CodeCertificateNotFound, domain.CodeTierNotFound:
		return http.StatusNotFound
	case domain.CodeCapacityExceeded, domain.CodeEmptyRequest, domain.CodeZeroAmount,
		domain.CodeEmptySupply, domain.CodeInvalidAsset, domain.CodeInvalidCampaign,
		domain.CodeInvalidDeadline:
		return http.StatusUnprocessableEntity
	case domain.CodeInvalidIdentity:
		return http.StatusBadRequest
	case domain.CodeInsufficientPayment, domain.CodeOverPayment:
		return http.StatusPaymentRequired
	case domain.CodePaymentTransferFailed:
		return http.StatusBadGateway
	}

	// Errors of the development ledger itself.
	switch {
	case errors.Is(err, ledger.ErrUnknownAsset):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrFaucetDisabled):
		return http.StatusForbidden
	case errors.Is(err, ledger.ErrInsufficientBalance), errors.Is(err, ledger.ErrInsufficientAllowance),
		errors.Is(err, ledger.ErrBalanceOverflow):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// fail writes err as a JSON error. Unexpected errors are logged and their
// text is not sent to the client.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusOf(err)
	resp := errorResponse{Error: err.Error()}
	if code := domain.CodeOf(err); code != domain.CodeUnknown {
		resp.Code = code
	}
	if status == http.StatusInternalServerError {
		h.logger.Error(op+" error", slog.Any("error", err), slog.String("path", r.URL.Path))
		resp = errorResponse{Error: "internal error"}
	} else {
		h.logger.Debug(op+" rejected", slog.Any("error", err), slog.Int("status", status))
	}
	writeJSON(w, h.logger, status, resp)
}

func (h *Handler) badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, h.logger, http.StatusBadRequest, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response error", slog.Any("error", err))
	}
}
