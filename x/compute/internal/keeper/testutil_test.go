package keeper_test

import (
	"testing"

	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/store"
	storetypes "github.com/cosmos/cosmos-sdk/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	capabilitytypes "github.com/cosmos/cosmos-sdk/x/capability/types"
	paramtypes "github.com/cosmos/cosmos-sdk/x/params/types"
	"github.com/stretchr/testify/require"
	dbm "github.com/tendermint/tm-db"
	"github.com/tendermint/tendermint/libs/log"
	tmproto "github.com/tendermint/tendermint/proto/tendermint/types"

	"github.com/novachain/compute/x/compute/internal/keeper"
	"github.com/novachain/compute/x/compute/internal/keeper/wasmtesting"
	"github.com/novachain/compute/x/compute/internal/types"
)

// fakeAccountKeeper is a minimal stand-in for x/auth's AccountKeeper,
// exercised on every Instantiate call: the keeper checks GetAccount for an
// address collision, then either SendCoins (with funds) or
// NewAccountWithAddress/SetAccount (without) runs for the new contract.
type fakeAccountKeeper struct{}

func (fakeAccountKeeper) GetAccount(sdk.Context, sdk.AccAddress) authtypes.AccountI { return nil }
func (fakeAccountKeeper) GetNextAccountNumber(sdk.Context) uint64                   { return 1 }
func (fakeAccountKeeper) NewAccountWithAddress(ctx sdk.Context, addr sdk.AccAddress) authtypes.AccountI {
	return authtypes.NewBaseAccountWithAddress(addr)
}
func (fakeAccountKeeper) SetAccount(sdk.Context, authtypes.AccountI) {}

// fakeBankKeeper tracks balances in memory; enough for funds-transfer and
// balance-query assertions without pulling in all of x/bank.
type fakeBankKeeper struct {
	balances map[string]sdk.Coins
}

func newFakeBankKeeper() *fakeBankKeeper {
	return &fakeBankKeeper{balances: map[string]sdk.Coins{}}
}

func (b *fakeBankKeeper) SendCoins(ctx sdk.Context, from, to sdk.AccAddress, amt sdk.Coins) error {
	b.balances[from.String()] = b.balances[from.String()].Sub(amt...)
	b.balances[to.String()] = b.balances[to.String()].Add(amt...)
	return nil
}

func (b *fakeBankKeeper) GetAllBalances(ctx sdk.Context, addr sdk.AccAddress) sdk.Coins {
	return b.balances[addr.String()]
}

func (b *fakeBankKeeper) GetBalance(ctx sdk.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	return sdk.NewCoin(denom, b.balances[addr.String()].AmountOf(denom))
}

func (b *fakeBankKeeper) BlockedAddr(sdk.AccAddress) bool { return false }

type fakeStakingKeeper struct{}

func (fakeStakingKeeper) BondDenom(sdk.Context) string { return "stake" }

type fakePortKeeper struct{}

func (fakePortKeeper) BindPort(ctx sdk.Context, portID string) *capabilitytypes.Capability {
	return &capabilitytypes.Capability{Index: 1}
}

// fakeCapabilityKeeper accepts every claim and remembers it, enough to make
// ensureIbcPort idempotent across repeated calls in a test.
type fakeCapabilityKeeper struct {
	claimed map[string]*capabilitytypes.Capability
}

func newFakeCapabilityKeeper() *fakeCapabilityKeeper {
	return &fakeCapabilityKeeper{claimed: map[string]*capabilitytypes.Capability{}}
}

func (c *fakeCapabilityKeeper) ClaimCapability(ctx sdk.Context, cap *capabilitytypes.Capability, name string) error {
	c.claimed[name] = cap
	return nil
}

func (c *fakeCapabilityKeeper) GetCapability(ctx sdk.Context, name string) (*capabilitytypes.Capability, bool) {
	cap, ok := c.claimed[name]
	return cap, ok
}

func (c *fakeCapabilityKeeper) AuthenticateCapability(ctx sdk.Context, cap *capabilitytypes.Capability, name string) bool {
	got, ok := c.claimed[name]
	return ok && got == cap
}

// testFixture bundles a constructed keeper with the mock engine behind it so
// tests can script engine responses directly.
type testFixture struct {
	Ctx    sdk.Context
	Keeper keeper.Keeper
	Engine *wasmtesting.MockEngine
	Bank   *fakeBankKeeper
}

func setupTest(t *testing.T) testFixture {
	t.Helper()

	storeKey := sdk.NewKVStoreKey(types.StoreKey)
	paramsKey := sdk.NewKVStoreKey("params")
	paramsTKey := sdk.NewTransientStoreKey("transient_params")

	db := dbm.NewMemDB()
	cms := store.NewCommitMultiStore(db)
	cms.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	cms.MountStoreWithDB(paramsKey, storetypes.StoreTypeIAVL, db)
	cms.MountStoreWithDB(paramsTKey, storetypes.StoreTypeTransient, db)
	require.NoError(t, cms.LoadLatestVersion())

	ctx := sdk.NewContext(cms, tmproto.Header{ChainID: "test-chain", Height: 1}, false, log.NewNopLogger())

	cdc := codec.NewLegacyAmino()
	types.RegisterLegacyAminoCodec(cdc)
	protoCdc := codec.NewProtoCodec(codectypes.NewInterfaceRegistry())
	paramSpace := paramtypes.NewSubspace(protoCdc, cdc, paramsKey, paramsTKey, types.ModuleName)

	engine := wasmtesting.NewMockEngine()
	bank := newFakeBankKeeper()

	k := keeper.NewKeeper(
		cdc,
		storeKey,
		paramSpace,
		fakeAccountKeeper{},
		bank,
		fakeStakingKeeper{},
		fakePortKeeper{},
		newFakeCapabilityKeeper(),
		engine,
		100,
	)
	require.NoError(t, k.SetParams(ctx, types.DefaultParams()))

	return testFixture{Ctx: ctx, Keeper: k, Engine: engine, Bank: bank}
}
