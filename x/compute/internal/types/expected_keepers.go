package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	capabilitytypes "github.com/cosmos/cosmos-sdk/x/capability/types"
)

// AccountKeeper defines the subset of x/auth used on instantiate: the
// address collision check and the creation of the contract's account.
type AccountKeeper interface {
	GetAccount(ctx sdk.Context, addr sdk.AccAddress) authtypes.AccountI
	GetNextAccountNumber(ctx sdk.Context) uint64
	NewAccountWithAddress(ctx sdk.Context, addr sdk.AccAddress) authtypes.AccountI
	SetAccount(ctx sdk.Context, acc authtypes.AccountI)
}

// BankKeeper defines the subset of x/bank used by this module.
type BankKeeper interface {
	SendCoins(ctx sdk.Context, from, to sdk.AccAddress, amt sdk.Coins) error
	GetAllBalances(ctx sdk.Context, addr sdk.AccAddress) sdk.Coins
	GetBalance(ctx sdk.Context, addr sdk.AccAddress, denom string) sdk.Coin
	BlockedAddr(addr sdk.AccAddress) bool
}

// StakingKeeper defines the subset of x/staking used to answer StakingQuery.
type StakingKeeper interface {
	BondDenom(ctx sdk.Context) string
}

// ICS20TransferPortSource is consulted to avoid IBC port collisions.
type ICS20TransferPortSource interface {
	GetPort(ctx sdk.Context) string
}

// PortKeeper binds the module's generated port ids with 05-port.
type PortKeeper interface {
	BindPort(ctx sdk.Context, portID string) *capabilitytypes.Capability
}

// CapabilityKeeper is the scoped capability keeper backing this module's
// claim on its IBC ports, matching the 04-channel handshake's authentication
// model (a contract that never opens a channel never claims a capability).
type CapabilityKeeper interface {
	ClaimCapability(ctx sdk.Context, cap *capabilitytypes.Capability, name string) error
	GetCapability(ctx sdk.Context, name string) (*capabilitytypes.Capability, bool)
	AuthenticateCapability(ctx sdk.Context, cap *capabilitytypes.Capability, name string) bool
}
