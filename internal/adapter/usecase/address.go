package usecase

import (
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"

	"certsale/internal/core/domain"
)

// NewAddress derives a fresh campaign address from a random uuid, the way a
// contract address derives from a hash of its deployment.
func NewAddress() (domain.Identity, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return domain.IdentityFromBytes(crypto.Keccak256(id[:])), nil
}
