package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"certsale/internal/core/domain"
	"certsale/internal/core/port"
)

// callerHeader carries the address of the account making a call.
const callerHeader = "X-Caller"

const maxBodyBytes = 1 << 20

type createCampaignRequest struct {
	ContentBase    string         `json:"content_base"`
	Name           string         `json:"name"`
	Symbol         string         `json:"symbol"`
	TierRefs       []string       `json:"tier_refs"`
	TierQuantities []uint64       `json:"tier_quantities"`
	Pricing        domain.Pricing `json:"pricing"`
	MaximumSupply  uint64         `json:"maximum_supply"`
	Deadline       time.Time      `json:"deadline"`
	// Asset is "native" or "token:<address>"; empty means native.
	Asset string `json:"asset"`
}

func (r createCampaignRequest) toReq(owner domain.Identity) (port.CreateCampaignReq, error) {
	asset := domain.NativeAsset()
	if r.Asset != "" {
		var err error
		if asset, err = domain.ParseAsset(r.Asset); err != nil {
			return port.CreateCampaignReq{}, err
		}
	}
	return port.CreateCampaignReq{
		Owner:          owner,
		ContentBase:    r.ContentBase,
		Name:           r.Name,
		Symbol:         r.Symbol,
		TierRefs:       r.TierRefs,
		TierQuantities: r.TierQuantities,
		Pricing:        r.Pricing,
		MaximumSupply:  r.MaximumSupply,
		Deadline:       r.Deadline,
		Asset:          asset,
	}, nil
}

// purchaseRequest names the tiers to buy either as counted requests or as
// one tier index per unit. Value is the native value attached to the call.
type purchaseRequest struct {
	Tiers []domain.TierRequest `json:"tiers"`
	Units []int                `json:"units"`
	Value uint64               `json:"value"`
}

func (r purchaseRequest) requests() []domain.TierRequest {
	if len(r.Tiers) > 0 {
		return r.Tiers
	}
	return domain.UnitsToRequests(r.Units)
}

type manualTransferRequest struct {
	Tiers     []domain.TierRequest `json:"tiers"`
	Units     []int                `json:"units"`
	Recipient string               `json:"recipient"`
}

type deadlineRequest struct {
	Deadline time.Time `json:"deadline"`
}

type distributionRequest struct {
	Amount uint64 `json:"amount"`
	Value  uint64 `json:"value"`
}

type claimBatchRequest struct {
	Indices []int `json:"indices"`
}

type transferRequest struct {
	To string `json:"to"`
}

type ledgerRequest struct {
	Spender string `json:"spender"`
	Account string `json:"account"`
	Amount  uint64 `json:"amount"`
}

type withdrawResponse struct {
	Amount uint64 `json:"amount"`
}

type manualTransferResponse struct {
	Certificates []domain.CertificateID `json:"certificates"`
}

type entitlementResponse struct {
	Index  int             `json:"index"`
	Holder domain.Identity `json:"holder"`
	Amount uint64          `json:"amount"`
}

type balanceResponse struct {
	Asset   domain.Asset    `json:"asset"`
	Account domain.Identity `json:"account"`
	Balance uint64          `json:"balance"`
}

func decode(r *http.Request, w http.ResponseWriter, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

func caller(r *http.Request) (domain.Identity, error) {
	v := r.Header.Get(callerHeader)
	if v == "" {
		return "", errors.New("missing " + callerHeader + " header")
	}
	return domain.ParseIdentity(v)
}

func identityParam(r *http.Request, name string) (domain.Identity, error) {
	return domain.ParseIdentity(chi.URLParam(r, name))
}

func indexParam(r *http.Request) (int, error) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || i < 0 {
		return 0, fmt.Errorf("invalid distribution index %q", chi.URLParam(r, "index"))
	}
	return i, nil
}

func certParam(r *http.Request) (domain.CertificateID, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "certID"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid certificate id %q", chi.URLParam(r, "certID"))
	}
	return domain.CertificateID(id), nil
}
