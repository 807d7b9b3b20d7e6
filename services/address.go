package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/ferreirogomes/tickmint/models"
)

// AddressDeriver computes the address of the issuance module bound to an
// identifier before the module exists. The address is a pure function of
// the registry authority, the fixed module template id, and a 32-character
// seed whose first half is the identifier: ids are strictly increasing and
// never reused, so no two instantiations can collide, and anyone who knows
// the about-to-be-assigned id and the parameter set can predict the address
// ahead of admission.
type AddressDeriver struct {
	authority solana.PublicKey
	template  solana.PublicKey
}

func NewAddressDeriver(authority, template solana.PublicKey) *AddressDeriver {
	return &AddressDeriver{authority: authority, template: template}
}

// Derive returns the module address for an id and the full constructor
// parameter set, including the global parameters frozen at admission time.
func (d *AddressDeriver) Derive(id uint64, def models.AssetDefinition, frozen models.Params) (solana.PublicKey, error) {
	seed := deriveSeed(id, def, frozen)
	addr, err := solana.CreateWithSeed(d.authority, seed, d.template)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive module address for id %d: %w", id, err)
	}
	return addr, nil
}

// deriveSeed builds the 32-character seed: 16 hex digits of the id followed
// by 16 hex digits of the parameter digest. The id prefix alone guarantees
// seed uniqueness; the digest binds the address to the parameter content.
func deriveSeed(id uint64, def models.AssetDefinition, frozen models.Params) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%s|%s|%d|%s|%s|%s|%s|%s|%d",
		models.CanonicalSymbol(def.Symbol),
		def.Name,
		def.Cap.String(),
		def.LimitPerIssue.String(),
		def.MaxBatchSize.String(),
		def.CooldownSeconds,
		def.GatingAsset,
		def.GatingMinQuantity.String(),
		def.FundingRateBps.String(),
		def.FundingTarget,
		frozen.BaseFee.String(),
		frozen.FundingCommissionBps,
	)
	digest := h.Sum(nil)
	return fmt.Sprintf("%016x%s", id, hex.EncodeToString(digest[:8]))
}
