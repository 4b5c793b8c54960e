package keeper_test

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/novachain/compute/x/compute/internal/types"
)

var (
	creator = sdk.AccAddress([]byte("creator_____________"))
	admin   = sdk.AccAddress([]byte("admin_______________"))
	other   = sdk.AccAddress([]byte("someone_else________"))
)

func TestStoreCodeThenInstantiate(t *testing.T) {
	f := setupTest(t)

	codeID, err := f.Keeper.StoreCode(f.Ctx, creator, []byte("fake wasm bytecode"), "https://example.com/src", "", nil)
	require.NoError(t, err)
	require.Equal(t, uint64(1), codeID)

	info, ok := f.Keeper.GetCodeInfo(f.Ctx, codeID)
	require.True(t, ok)
	require.Equal(t, creator.String(), info.Creator.String())

	contractAddr, _, err := f.Keeper.Instantiate(f.Ctx, codeID, creator, admin, []byte(`{}`), "my contract", nil)
	require.NoError(t, err)
	require.NotEmpty(t, contractAddr)

	cInfo, ok := f.Keeper.GetContractInfo(f.Ctx, contractAddr)
	require.True(t, ok)
	require.Equal(t, codeID, cInfo.CodeID)
	require.Equal(t, admin.String(), cInfo.Admin.String())
	require.Equal(t, "my contract", cInfo.Label)
}

func TestInstantiateUnknownCodeFails(t *testing.T) {
	f := setupTest(t)

	_, _, err := f.Keeper.Instantiate(f.Ctx, 42, creator, admin, []byte(`{}`), "orphan", nil)
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestInstantiate2IsDeterministicAndUnique(t *testing.T) {
	f := setupTest(t)

	codeID, err := f.Keeper.StoreCode(f.Ctx, creator, []byte("fake wasm bytecode"), "", "", nil)
	require.NoError(t, err)

	salt := []byte("salt-one")
	addr1, _, err := f.Keeper.Instantiate2(f.Ctx, codeID, creator, admin, []byte(`{}`), "first", nil, salt)
	require.NoError(t, err)

	_, _, err = f.Keeper.Instantiate2(f.Ctx, codeID, creator, admin, []byte(`{}`), "duplicate", nil, salt)
	require.Error(t, err, "reusing the same salt/creator/checksum/init_msg must collide")

	addr2, _, err := f.Keeper.Instantiate2(f.Ctx, codeID, creator, admin, []byte(`{}`), "second", nil, []byte("salt-two"))
	require.NoError(t, err)
	require.NotEqual(t, addr1.String(), addr2.String())
}

func TestExecuteRunsAgainstExistingContract(t *testing.T) {
	f := setupTest(t)

	codeID, err := f.Keeper.StoreCode(f.Ctx, creator, []byte("fake wasm bytecode"), "", "", nil)
	require.NoError(t, err)
	contractAddr, _, err := f.Keeper.Instantiate(f.Ctx, codeID, creator, admin, []byte(`{}`), "exec target", nil)
	require.NoError(t, err)

	data, err := f.Keeper.Execute(f.Ctx, contractAddr, other, []byte(`{"noop":{}}`), nil)
	require.NoError(t, err)
	require.Empty(t, data)
}

func TestMigrateRequiresAdmin(t *testing.T) {
	f := setupTest(t)

	codeID, err := f.Keeper.StoreCode(f.Ctx, creator, []byte("fake wasm bytecode v1"), "", "", nil)
	require.NoError(t, err)
	newCodeID, err := f.Keeper.StoreCode(f.Ctx, creator, []byte("fake wasm bytecode v2"), "", "", nil)
	require.NoError(t, err)
	contractAddr, _, err := f.Keeper.Instantiate(f.Ctx, codeID, creator, admin, []byte(`{}`), "migratable", nil)
	require.NoError(t, err)

	_, err = f.Keeper.Migrate(f.Ctx, contractAddr, other, newCodeID, []byte(`{}`))
	require.ErrorIs(t, err, types.ErrUnauthorized)

	_, err = f.Keeper.Migrate(f.Ctx, contractAddr, admin, newCodeID, []byte(`{}`))
	require.NoError(t, err)

	info, ok := f.Keeper.GetContractInfo(f.Ctx, contractAddr)
	require.True(t, ok)
	require.Equal(t, newCodeID, info.CodeID)
}

func TestClearAdminMakesContractImmutable(t *testing.T) {
	f := setupTest(t)

	codeID, err := f.Keeper.StoreCode(f.Ctx, creator, []byte("fake wasm bytecode"), "", "", nil)
	require.NoError(t, err)
	contractAddr, _, err := f.Keeper.Instantiate(f.Ctx, codeID, creator, admin, []byte(`{}`), "immutable-to-be", nil)
	require.NoError(t, err)

	require.NoError(t, f.Keeper.ClearAdmin(f.Ctx, contractAddr, admin))

	info, ok := f.Keeper.GetContractInfo(f.Ctx, contractAddr)
	require.True(t, ok)
	require.Nil(t, info.Admin)

	require.Error(t, f.Keeper.UpdateAdmin(f.Ctx, contractAddr, admin, other))
}

func TestStoreCodeRejectsOversizedWasm(t *testing.T) {
	f := setupTest(t)

	params := f.Keeper.GetParams(f.Ctx)
	oversized := make([]byte, params.MaxWasmCodeSize+1)

	_, err := f.Keeper.StoreCode(f.Ctx, creator, oversized, "", "", nil)
	require.ErrorIs(t, err, types.ErrInvalidRequest)
}

func TestStoreCodeRejectsUnauthorizedUploader(t *testing.T) {
	f := setupTest(t)
	require.NoError(t, f.Keeper.SetParams(f.Ctx, types.Params{
		CodeUploadAccess:             types.AllowOnlyAddress(creator),
		InstantiateDefaultPermission: types.AccessTypeEverybody,
		MaxWasmCodeSize:              types.DefaultParams().MaxWasmCodeSize,
		SmartQueryGasLimit:           types.DefaultParams().SmartQueryGasLimit,
		MemoryCacheSize:              types.DefaultParams().MemoryCacheSize,
	}))

	_, err := f.Keeper.StoreCode(f.Ctx, other, []byte("fake wasm bytecode"), "", "", nil)
	require.ErrorIs(t, err, types.ErrUnauthorized)

	_, err = f.Keeper.StoreCode(f.Ctx, creator, []byte("fake wasm bytecode"), "", "", nil)
	require.NoError(t, err)
}

func TestPinAndUnpinDelegateToEngine(t *testing.T) {
	f := setupTest(t)

	codeID, err := f.Keeper.StoreCode(f.Ctx, creator, []byte("fake wasm bytecode"), "", "", nil)
	require.NoError(t, err)
	info, ok := f.Keeper.GetCodeInfo(f.Ctx, codeID)
	require.True(t, ok)

	require.NoError(t, f.Keeper.PinCode(f.Ctx, codeID))
	require.True(t, f.Engine.Pinned[string(info.CodeHash)])

	require.NoError(t, f.Keeper.UnpinCode(f.Ctx, codeID))
	require.False(t, f.Engine.Pinned[string(info.CodeHash)])
}
