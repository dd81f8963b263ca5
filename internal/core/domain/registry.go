package domain

import "fmt"

// CertificateID identifies a minted certificate. IDs start at zero and
// grow by one per mint, so an ID also records mint order.
type CertificateID uint64

// Certificate is one minted unit.
type Certificate struct {
	ID        CertificateID `json:"id"`
	Tier      int           `json:"tier"`
	Holder    Identity      `json:"holder"`
	PaidPrice uint64        `json:"paid_price"`
	Refunded  bool          `json:"refunded,omitempty"`
	Burned    bool          `json:"burned,omitempty"`
}

// Refundable reports whether reclaiming the certificate pays anything.
// Certificates granted by the owner carry no paid price and never are.
func (c Certificate) Refundable() bool {
	return c.PaidPrice > 0 && !c.Refunded && !c.Burned
}

// OwnershipRegistry is the holder lookup and enumeration capability the
// distribution ledger consumes.
type OwnershipRegistry interface {
	OwnerOf(id CertificateID) (Identity, error)
	BalanceOf(holder Identity) uint64
	TokenOfOwnerByIndex(holder Identity, index int) (CertificateID, error)
}

// Registry maps certificates to holders and records the price paid at mint.
// Per-holder enumeration follows the ERC-721 enumerable convention: mint
// order, with swap-remove on transfer out.
type Registry struct {
	Certificates []Certificate                `json:"certificates"`
	Owned        map[Identity][]CertificateID `json:"owned"`
	BurnedCount  uint64                       `json:"burned_count"`
}

var _ OwnershipRegistry = (*Registry)(nil)

// Minted returns the number of certificates ever minted, burned included.
func (r *Registry) Minted() uint64 { return uint64(len(r.Certificates)) }

// LiveSupply returns the number of certificates that are not burned.
func (r *Registry) LiveSupply() uint64 { return r.Minted() - r.BurnedCount }

// Get returns the certificate with the given id, burned or not.
func (r *Registry) Get(id CertificateID) (Certificate, error) {
	if uint64(id) >= r.Minted() {
		return Certificate{}, fmt.Errorf("%w: %d", ErrCertificateNotFound, id)
	}
	return r.Certificates[id], nil
}

// OwnerOf returns the holder of a live certificate.
func (r *Registry) OwnerOf(id CertificateID) (Identity, error) {
	cert, err := r.Get(id)
	if err != nil {
		return "", err
	}
	if cert.Burned {
		return "", fmt.Errorf("%w: %d is burned", ErrCertificateNotFound, id)
	}
	return cert.Holder, nil
}

// BalanceOf returns how many live certificates holder owns.
func (r *Registry) BalanceOf(holder Identity) uint64 {
	return uint64(len(r.Owned[holder]))
}

// TokenOfOwnerByIndex returns holder's certificate at position index.
func (r *Registry) TokenOfOwnerByIndex(holder Identity, index int) (CertificateID, error) {
	owned := r.Owned[holder]
	if index < 0 || index >= len(owned) {
		return 0, fmt.Errorf("%w: %s has no certificate at index %d", ErrCertificateNotFound, holder, index)
	}
	return owned[index], nil
}

// HeldBy returns a copy of holder's certificate ids in enumeration order.
func (r *Registry) HeldBy(holder Identity) []CertificateID {
	owned := r.Owned[holder]
	out := make([]CertificateID, len(owned))
	copy(out, owned)
	return out
}

func (r *Registry) mint(to Identity, tier int, paid uint64) CertificateID {
	id := CertificateID(len(r.Certificates))
	r.Certificates = append(r.Certificates, Certificate{
		ID:        id,
		Tier:      tier,
		Holder:    to,
		PaidPrice: paid,
	})
	if r.Owned == nil {
		r.Owned = make(map[Identity][]CertificateID)
	}
	r.Owned[to] = append(r.Owned[to], id)
	return id
}

func (r *Registry) transfer(id CertificateID, to Identity) {
	cert := &r.Certificates[id]
	r.unlink(cert.Holder, id)
	cert.Holder = to
	if r.Owned == nil {
		r.Owned = make(map[Identity][]CertificateID)
	}
	r.Owned[to] = append(r.Owned[to], id)
}

func (r *Registry) burn(id CertificateID) {
	cert := &r.Certificates[id]
	r.unlink(cert.Holder, id)
	cert.Burned = true
	r.BurnedCount++
}

func (r *Registry) unlink(holder Identity, id CertificateID) {
	owned := r.Owned[holder]
	for i, cid := range owned {
		if cid != id {
			continue
		}
		last := len(owned) - 1
		owned[i] = owned[last]
		owned = owned[:last]
		break
	}
	if len(owned) == 0 {
		delete(r.Owned, holder)
		return
	}
	r.Owned[holder] = owned
}

func (r Registry) clone() Registry {
	out := Registry{
		Certificates: append([]Certificate(nil), r.Certificates...),
		BurnedCount:  r.BurnedCount,
	}
	if r.Owned != nil {
		out.Owned = make(map[Identity][]CertificateID, len(r.Owned))
		for holder, ids := range r.Owned {
			out.Owned[holder] = append([]CertificateID(nil), ids...)
		}
	}
	return out
}
