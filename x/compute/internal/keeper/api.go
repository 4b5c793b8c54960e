package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// GasCostHumanAddress/GasCostCanonicalAddress/GasCostValidateAddress are the
// fixed per-call charges for the API adapter's three operations. These are
// flat because bech32 en/decoding cost does not depend meaningfully on
// input size at the address lengths the module supports.
const (
	GasCostHumanAddress     uint64 = 5 * GasMultiplier
	GasCostCanonicalAddress uint64 = 4 * GasMultiplier
	GasCostValidateAddress  uint64 = GasCostHumanAddress + GasCostCanonicalAddress
)

// APIAdapter offers the address codec to the VM. The Bech32 library itself
// is an external collaborator (§1, out of scope); this adapter only meters
// and forwards calls to it.
type APIAdapter interface {
	CanonicalAddress(human string) (canonical []byte, gasUsed uint64, err error)
	HumanAddress(canonical []byte) (human string, gasUsed uint64, err error)
	ValidateAddress(human string) (gasUsed uint64, err error)
}

// cosmwasmAPI is the module's single APIAdapter implementation. It has no
// per-call state, so one value is shared across every invocation.
type cosmwasmAPI struct{}

func (cosmwasmAPI) CanonicalAddress(human string) ([]byte, uint64, error) {
	addr, err := sdk.AccAddressFromBech32(human)
	if err != nil {
		return nil, GasCostCanonicalAddress, err
	}
	return addr, GasCostCanonicalAddress, nil
}

func (cosmwasmAPI) HumanAddress(canonical []byte) (string, uint64, error) {
	return sdk.AccAddress(canonical).String(), GasCostHumanAddress, nil
}

func (cosmwasmAPI) ValidateAddress(human string) (uint64, error) {
	_, err := sdk.AccAddressFromBech32(human)
	return GasCostValidateAddress, err
}

// defaultAPI is the stateless adapter instance shared by every call.
var defaultAPI APIAdapter = cosmwasmAPI{}
