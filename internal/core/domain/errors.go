package domain

import "errors"

// Authorization and state-machine errors. Each one rejects the whole
// operation; no state is changed when they are returned.
var (
	ErrNotOwner                 = errors.New("caller is not the owner")
	ErrNotNew                   = errors.New("campaign is not open for purchase")
	ErrNotEligibleForWithdrawal = errors.New("campaign is not eligible for withdrawal")
	ErrAlreadyCancelled         = errors.New("campaign is already cancelled")
	ErrAlreadyWithdrawn         = errors.New("campaign funds are already withdrawn")
	ErrCampaignCancelled        = errors.New("campaign is cancelled")
	ErrNotCancelled             = errors.New("campaign is not cancelled")
	ErrNotWithdrawn             = errors.New("campaign funds are not withdrawn")
	ErrDistributionNotFound     = errors.New("distribution not found")
)

// Inventory errors.
var (
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrTierNotFound     = errors.New("tier not found")
	ErrEmptyRequest     = errors.New("no units requested")
)

// Payment errors.
var (
	ErrInsufficientPayment   = errors.New("insufficient payment")
	ErrOverPayment           = errors.New("payment exceeds the required amount")
	ErrPaymentTransferFailed = errors.New("payment transfer failed")
	ErrZeroAmount            = errors.New("amount must be positive")
	ErrEmptySupply           = errors.New("no certificates in circulation")
	ErrConservationViolated  = errors.New("escrow conservation violated")
)

// Certificate and validation errors.
var (
	ErrCertificateNotFound = errors.New("certificate not found")
	ErrNotHolder           = errors.New("caller does not hold the certificate")
	ErrInvalidIdentity     = errors.New("invalid identity")
	ErrInvalidAsset        = errors.New("invalid payment asset")
	ErrInvalidCampaign     = errors.New("invalid campaign parameters")
	ErrInvalidDeadline     = errors.New("deadline must be in the future")
)

// Code is a machine-readable error code.
type Code string

const (
	CodeUnknown                  Code = "UNKNOWN"
	CodeNotOwner                 Code = "NOT_OWNER"
	CodeNotNew                   Code = "NOT_NEW"
	CodeNotEligibleForWithdrawal Code = "NOT_ELIGIBLE_FOR_WITHDRAWAL"
	CodeAlreadyCancelled         Code = "ALREADY_CANCELLED"
	CodeAlreadyWithdrawn         Code = "ALREADY_WITHDRAWN"
	CodeCampaignCancelled        Code = "CAMPAIGN_CANCELLED"
	CodeNotCancelled             Code = "NOT_CANCELLED"
	CodeNotWithdrawn             Code = "NOT_WITHDRAWN"
	CodeDistributionNotFound     Code = "DISTRIBUTION_NOT_FOUND"
	CodeCapacityExceeded         Code = "CAPACITY_EXCEEDED"
	CodeTierNotFound             Code = "TIER_NOT_FOUND"
	CodeEmptyRequest             Code = "EMPTY_REQUEST"
	CodeInsufficientPayment      Code = "INSUFFICIENT_PAYMENT"
	CodeOverPayment              Code = "OVER_PAYMENT"
	CodePaymentTransferFailed    Code = "PAYMENT_TRANSFER_FAILED"
	CodeZeroAmount               Code = "ZERO_AMOUNT"
	CodeEmptySupply              Code = "EMPTY_SUPPLY"
	CodeCertificateNotFound      Code = "CERTIFICATE_NOT_FOUND"
	CodeNotHolder                Code = "NOT_HOLDER"
	CodeInvalidIdentity          Code = "INVALID_IDENTITY"
	CodeInvalidAsset             Code = "INVALID_ASSET"
	CodeInvalidCampaign          Code = "INVALID_CAMPAIGN"
	CodeInvalidDeadline          Code = "INVALID_DEADLINE"
)

var errorCodes = []struct {
	err  error
	code Code
}{
	{ErrNotOwner, CodeNotOwner},
	{ErrNotNew, CodeNotNew},
	{ErrNotEligibleForWithdrawal, CodeNotEligibleForWithdrawal},
	{ErrAlreadyCancelled, CodeAlreadyCancelled},
	{ErrAlreadyWithdrawn, CodeAlreadyWithdrawn},
	{ErrCampaignCancelled, CodeCampaignCancelled},
	{ErrNotCancelled, CodeNotCancelled},
	{ErrNotWithdrawn, CodeNotWithdrawn},
	{ErrDistributionNotFound, CodeDistributionNotFound},
	{ErrCapacityExceeded, CodeCapacityExceeded},
	{ErrTierNotFound, CodeTierNotFound},
	{ErrEmptyRequest, CodeEmptyRequest},
	{ErrInsufficientPayment, CodeInsufficientPayment},
	{ErrOverPayment, CodeOverPayment},
	{ErrPaymentTransferFailed, CodePaymentTransferFailed},
	{ErrZeroAmount, CodeZeroAmount},
	{ErrEmptySupply, CodeEmptySupply},
	{ErrCertificateNotFound, CodeCertificateNotFound},
	{ErrNotHolder, CodeNotHolder},
	{ErrInvalidIdentity, CodeInvalidIdentity},
	{ErrInvalidAsset, CodeInvalidAsset},
	{ErrInvalidCampaign, CodeInvalidCampaign},
	{ErrInvalidDeadline, CodeInvalidDeadline},
}

// CodeOf returns the code of the first domain error found in err's chain.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return CodeUnknown
}

// Terminal reports whether code describes a campaign state that can never
// allow the operation again, as opposed to a condition the caller may fix
// and retry (capacity, payment).
func (c Code) Terminal() bool {
	switch c {
	case CodeNotNew, CodeNotEligibleForWithdrawal, CodeAlreadyCancelled,
		CodeAlreadyWithdrawn, CodeCampaignCancelled:
		return true
	default:
		return false
	}
}
