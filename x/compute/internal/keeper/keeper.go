package keeper

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/store/prefix"
	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	paramtypes "github.com/cosmos/cosmos-sdk/x/params/types"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/novachain/compute/x/compute/internal/types"
)

// Keeper is the module's sole entry point for every contract lifecycle
// operation: it owns the persistent store, the compiled-module cache, and
// the collaborators (bank, staking, IBC) a contract is allowed to reach.
type Keeper struct {
	storeKey sdk.StoreKey
	cdc      *codec.LegacyAmino

	accountKeeper types.AccountKeeper
	bankKeeper    types.BankKeeper
	stakingKeeper types.StakingKeeper
	portKeeper    types.PortKeeper
	capKeeper     types.CapabilityKeeper

	paramSpace paramtypes.Subspace

	engine       Engine
	moduleCache  *moduleCache
	queryPlugins QueryPlugins
}

// NewKeeper wires a Keeper to its store, its collaborators and the engine
// that will actually run contract code. memoryCacheSize sizes the module
// cache; SetParams resizes it to Params.MemoryCacheSize on every change.
func NewKeeper(
	cdc *codec.LegacyAmino,
	storeKey sdk.StoreKey,
	paramSpace paramtypes.Subspace,
	accountKeeper types.AccountKeeper,
	bankKeeper types.BankKeeper,
	stakingKeeper types.StakingKeeper,
	portKeeper types.PortKeeper,
	capKeeper types.CapabilityKeeper,
	engine Engine,
	memoryCacheSize int,
) Keeper {
	if !paramSpace.HasKeyTable() {
		paramSpace = paramSpace.WithKeyTable(types.ParamKeyTable())
	}
	return Keeper{
		storeKey:      storeKey,
		cdc:           cdc,
		accountKeeper: accountKeeper,
		bankKeeper:    bankKeeper,
		stakingKeeper: stakingKeeper,
		portKeeper:    portKeeper,
		capKeeper:     capKeeper,
		paramSpace:    paramSpace,
		engine:        engine,
		moduleCache:   newModuleCache(memoryCacheSize),
		queryPlugins:  DefaultQueryPlugins(bankKeeper, stakingKeeper),
	}
}

// GetStoreKey exposes the module's store key to collaborators (genesis,
// legacy querier) that need to open their own prefix store.
func (k Keeper) GetStoreKey() sdk.StoreKey {
	return k.storeKey
}

// WithQueryPlugins returns a copy of k using the given plugin set, letting
// the app wire chain-specific custom queries without touching NewKeeper.
func (k Keeper) WithQueryPlugins(p QueryPlugins) Keeper {
	k.queryPlugins = k.queryPlugins.Merge(&p)
	return k
}

func moduleLogger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+types.ModuleName)
}

// resolveCodeAnalysis returns the cached static-analysis report for checksum,
// running AnalyzeCode through the engine only on a cache miss (first touch
// after StoreCode, or after the LRU evicted this checksum under memory
// pressure). Concurrent callers for the same checksum share one compile.
func (k Keeper) resolveCodeAnalysis(checksum []byte) (CodeAnalysisReport, error) {
	m, err := k.moduleCache.getOrCompile(string(checksum), func() (compiledModule, error) {
		report, err := k.engine.AnalyzeCode(checksum)
		return compiledModule{checksum: string(checksum), payload: report}, err
	})
	if err != nil {
		return CodeAnalysisReport{}, err
	}
	return m.payload.(CodeAnalysisReport), nil
}

//---------------------------------------------------------------------------
// Code
//---------------------------------------------------------------------------

// StoreCode persists wasmCode under a newly minted code id, after handing it
// to the engine for compilation and static analysis. AnalyzeCode runs here
// and its report is cached, so later calls repeat it only after the module
// cache has evicted this checksum.
func (k Keeper) StoreCode(ctx sdk.Context, creator sdk.AccAddress, wasmCode []byte, source, builder string, instantiatePermission *types.AccessConfig) (uint64, error) {
	defer telemetry.MeasureSince(time.Now(), "compute", "keeper", "store_code")

	params := k.GetParams(ctx)
	if uint64(len(wasmCode)) > params.MaxWasmCodeSize {
		return 0, sdkerrors.Wrap(types.ErrInvalidRequest, "wasm code too large")
	}
	if !params.CodeUploadAccess.Allowed(creator) {
		return 0, sdkerrors.Wrap(types.ErrUnauthorized, "cannot upload wasm code")
	}

	ctx.GasMeter().ConsumeGas(CompileCost*uint64(len(wasmCode)), "compile wasm code")

	codeID := k.autoIncrementID(ctx, types.SequenceKeyLastCodeID)
	checksum, err := k.engine.StoreCode(codeID, wasmCode)
	if err != nil {
		moduleLogger(ctx).Error("compile wasm code", "error", err)
		return 0, sdkerrors.Wrap(types.ErrCompileError, err.Error())
	}
	if _, err := k.resolveCodeAnalysis(checksum); err != nil {
		moduleLogger(ctx).Error("analyze wasm code", "error", err)
		return 0, sdkerrors.Wrap(types.ErrCompileError, err.Error())
	}

	perm := instantiatePermissionOrDefault(params, instantiatePermission)
	codeInfo := types.NewCodeInfo(checksum, creator, source, builder, perm)
	k.storeCodeInfo(ctx, codeID, codeInfo)
	ctx.KVStore(k.storeKey).Set(types.GetCodeRawKey(codeID), wasmCode)

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeStoreCode,
		sdk.NewAttribute(types.AttributeKeyCodeID, fmt.Sprintf("%d", codeID)),
		sdk.NewAttribute(types.AttributeKeyChecksum, fmt.Sprintf("%x", checksum)),
		sdk.NewAttribute(types.AttributeKeySigner, creator.String()),
	))
	return codeID, nil
}

func instantiatePermissionOrDefault(p types.Params, override *types.AccessConfig) types.AccessConfig {
	if override != nil {
		return *override
	}
	return types.AccessConfig{Permission: p.InstantiateDefaultPermission}
}

func (k Keeper) storeCodeInfo(ctx sdk.Context, codeID uint64, codeInfo types.CodeInfo) {
	store := ctx.KVStore(k.storeKey)
	store.Set(types.GetCodeKey(codeID), k.cdc.MustMarshalBinaryBare(&codeInfo))
}

// GetCodeInfo returns the metadata record for codeID, or ok=false if no such
// code was ever stored.
func (k Keeper) GetCodeInfo(ctx sdk.Context, codeID uint64) (types.CodeInfo, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.GetCodeKey(codeID))
	if bz == nil {
		return types.CodeInfo{}, false
	}
	var info types.CodeInfo
	k.cdc.MustUnmarshalBinaryBare(bz, &info)
	return info, true
}

func (k Keeper) containsCodeInfo(ctx sdk.Context, codeID uint64) bool {
	return ctx.KVStore(k.storeKey).Has(types.GetCodeKey(codeID))
}

// IterateCodeInfos calls cb for every stored code, stopping early if cb
// returns true.
func (k Keeper) IterateCodeInfos(ctx sdk.Context, cb func(codeID uint64, info types.CodeInfo) bool) {
	prefixStore := prefix.NewStore(ctx.KVStore(k.storeKey), types.CodeKeyPrefix)
	iter := prefixStore.Iterator(nil, nil)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		var info types.CodeInfo
		k.cdc.MustUnmarshalBinaryBare(iter.Value(), &info)
		codeID := binary.BigEndian.Uint64(iter.Key())
		if cb(codeID, info) {
			return
		}
	}
}

// GetWasm returns the raw bytes the given code was uploaded with, fetched
// straight from the engine's own storage rather than re-reading the
// module's copy, so it is always the bytes that were actually compiled.
func (k Keeper) GetWasm(ctx sdk.Context, codeID uint64) ([]byte, error) {
	info, ok := k.GetCodeInfo(ctx, codeID)
	if !ok {
		return nil, sdkerrors.Wrap(types.ErrNotFound, "code")
	}
	return k.engine.GetCode(info.CodeHash)
}

//---------------------------------------------------------------------------
// Sequences
//---------------------------------------------------------------------------

func (k Keeper) autoIncrementID(ctx sdk.Context, sequenceKey []byte) uint64 {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(sequenceKey)
	id := uint64(1)
	if bz != nil {
		id = binary.BigEndian.Uint64(bz) + 1
	}
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, id)
	store.Set(sequenceKey, buf)
	return id
}

func (k Keeper) peekAutoIncrementID(ctx sdk.Context, sequenceKey []byte) uint64 {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(sequenceKey)
	if bz == nil {
		return 1
	}
	return binary.BigEndian.Uint64(bz) + 1
}

func (k Keeper) importAutoIncrementID(ctx sdk.Context, sequenceKey []byte, val uint64) error {
	store := ctx.KVStore(k.storeKey)
	if store.Has(sequenceKey) {
		return sdkerrors.Wrapf(types.ErrDuplicate, "sequence key %X already set", sequenceKey)
	}
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, val)
	store.Set(sequenceKey, buf)
	return nil
}

//---------------------------------------------------------------------------
// Contract instantiation
//---------------------------------------------------------------------------

// Instantiate spawns a new contract instance from codeID at a
// sequentially-derived address, transfers the attached funds, and runs the
// contract's instantiate entry point.
func (k Keeper) Instantiate(ctx sdk.Context, codeID uint64, creator, admin sdk.AccAddress, initMsg []byte, label string, funds sdk.Coins) (sdk.AccAddress, []byte, error) {
	instanceID := k.autoIncrementID(ctx, types.SequenceKeyLastInstanceID)
	contractAddr := sequentialContractAddress(codeID, instanceID)
	return k.instantiateAt(ctx, codeID, contractAddr, creator, admin, initMsg, label, funds)
}

// Instantiate2 is Instantiate using the predictable, salt-derived address
// instead of the sequential one, so the caller can compute the resulting
// address before submitting the transaction.
func (k Keeper) Instantiate2(ctx sdk.Context, codeID uint64, creator, admin sdk.AccAddress, initMsg []byte, label string, funds sdk.Coins, salt []byte) (sdk.AccAddress, []byte, error) {
	info, ok := k.GetCodeInfo(ctx, codeID)
	if !ok {
		return nil, nil, sdkerrors.Wrap(types.ErrNotFound, "code")
	}
	contractAddr := predictableContractAddress(info.CodeHash, creator, salt, initMsg)
	return k.instantiateAt(ctx, codeID, contractAddr, creator, admin, initMsg, label, funds)
}

func (k Keeper) instantiateAt(ctx sdk.Context, codeID uint64, contractAddr, creator, admin sdk.AccAddress, initMsg []byte, label string, funds sdk.Coins) (sdk.AccAddress, []byte, error) {
	defer telemetry.MeasureSince(time.Now(), "compute", "keeper", "instantiate")

	info, ok := k.GetCodeInfo(ctx, codeID)
	if !ok {
		return nil, nil, sdkerrors.Wrap(types.ErrNotFound, "code")
	}
	if !info.InstantiatePermission.Allowed(creator) {
		return nil, nil, sdkerrors.Wrap(types.ErrUnauthorized, "cannot instantiate this code")
	}
	if k.containsContractInfo(ctx, contractAddr) {
		return nil, nil, sdkerrors.Wrap(types.ErrDuplicate, "contract address already in use")
	}
	if existingAcct := k.accountKeeper.GetAccount(ctx, contractAddr); existingAcct != nil {
		return nil, nil, sdkerrors.Wrap(types.ErrDuplicate, "contract address already in use by a non-contract account")
	}
	labelKey := types.GetContractLabelKey(label)
	store := ctx.KVStore(k.storeKey)
	if store.Has(labelKey) {
		return nil, nil, sdkerrors.Wrap(types.ErrDuplicate, "label already in use")
	}

	if !funds.IsZero() {
		if k.bankKeeper.BlockedAddr(creator) {
			return nil, nil, sdkerrors.Wrap(types.ErrUnauthorized, "blocked address can not be used")
		}
		if err := k.bankKeeper.SendCoins(ctx, creator, contractAddr, funds); err != nil {
			return nil, nil, sdkerrors.Wrap(types.ErrInsufficientFunds, err.Error())
		}
	} else {
		contractAccount := k.accountKeeper.NewAccountWithAddress(ctx, contractAddr)
		k.accountKeeper.SetAccount(ctx, contractAccount)
	}

	env := types.NewEnv(ctx, contractAddr)
	msgInfo := types.NewMessageInfo(creator, funds)
	engineStore := newStorageAdapter(ctx, k.storeKey, contractAddr, false)
	gasMeter := NewMultipliedGasMeter(ctx)
	querier := k.newQueryHandler(ctx, contractAddr)

	if _, err := k.resolveCodeAnalysis(info.CodeHash); err != nil {
		return nil, nil, sdkerrors.Wrap(types.ErrInstantiateError, err.Error())
	}

	ctx.GasMeter().ConsumeGas(InstanceCost, "instantiate contract")
	resp, gasUsed, err := k.engine.Instantiate(info.CodeHash, env, msgInfo, initMsg, engineStore, defaultAPI, querier, gasMeter, gasForContract(ctx))
	consumeGas(ctx, gasUsed)
	if err != nil {
		moduleLogger(ctx).Error("instantiate contract", "error", err, "contract", contractAddr.String())
		return nil, nil, sdkerrors.Wrap(types.ErrInstantiateError, err.Error())
	}

	contractInfo := types.NewContractInfo(codeID, creator, admin, label, types.NewAbsoluteTxPosition(ctx))
	k.setContractInfo(ctx, contractAddr, contractInfo)
	k.setCodeIndex(ctx, codeID, contractAddr)
	store.Set(labelKey, contractAddr)

	data, err := k.handleContractResponse(ctx, contractAddr, "", resp)
	if err != nil {
		return nil, nil, err
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeInstantiate,
		sdk.NewAttribute(types.AttributeKeyContractAddr, contractAddr.String()),
		sdk.NewAttribute(types.AttributeKeyCodeID, fmt.Sprintf("%d", codeID)),
	))
	ctx.EventManager().EmitEvents(types.ContractLogsToSdkEvents(resp.Attributes, contractAddr))
	events, err := types.NewCustomEvents(resp.Events, contractAddr)
	if err != nil {
		return nil, nil, err
	}
	ctx.EventManager().EmitEvents(events)

	return contractAddr, data, nil
}

//---------------------------------------------------------------------------
// Execute / Migrate / admin changes
//---------------------------------------------------------------------------

// Execute calls the target contract's execute entry point, transferring any
// attached funds first.
func (k Keeper) Execute(ctx sdk.Context, contractAddr, caller sdk.AccAddress, msg []byte, funds sdk.Coins) ([]byte, error) {
	defer telemetry.MeasureSince(time.Now(), "compute", "keeper", "execute")

	info, ok := k.GetContractInfo(ctx, contractAddr)
	if !ok {
		return nil, sdkerrors.Wrap(types.ErrNotFound, "contract")
	}
	codeInfo, ok := k.GetCodeInfo(ctx, info.CodeID)
	if !ok {
		return nil, sdkerrors.Wrap(types.ErrNotFound, "code")
	}

	if err := k.bankKeeper.SendCoins(ctx, caller, contractAddr, funds); err != nil {
		return nil, sdkerrors.Wrap(types.ErrInsufficientFunds, err.Error())
	}

	env := types.NewEnv(ctx, contractAddr)
	msgInfo := types.NewMessageInfo(caller, funds)
	store := newStorageAdapter(ctx, k.storeKey, contractAddr, false)
	gasMeter := NewMultipliedGasMeter(ctx)
	querier := k.newQueryHandler(ctx, contractAddr)

	if _, err := k.resolveCodeAnalysis(codeInfo.CodeHash); err != nil {
		return nil, sdkerrors.Wrap(types.ErrExecuteError, err.Error())
	}

	ctx.GasMeter().ConsumeGas(InstanceCost, "execute contract")
	resp, gasUsed, err := k.engine.Execute(codeInfo.CodeHash, env, msgInfo, msg, store, defaultAPI, querier, gasMeter, gasForContract(ctx))
	consumeGas(ctx, gasUsed)
	if err != nil {
		moduleLogger(ctx).Error("execute contract", "error", err, "contract", contractAddr.String())
		return nil, sdkerrors.Wrap(types.ErrExecuteError, err.Error())
	}

	data, err := k.handleContractResponse(ctx, contractAddr, info.IBCPortID, resp)
	if err != nil {
		return nil, err
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeExecute,
		sdk.NewAttribute(types.AttributeKeyContractAddr, contractAddr.String()),
	))
	ctx.EventManager().EmitEvents(types.ContractLogsToSdkEvents(resp.Attributes, contractAddr))
	events, err := types.NewCustomEvents(resp.Events, contractAddr)
	if err != nil {
		return nil, err
	}
	ctx.EventManager().EmitEvents(events)

	return data, nil
}

// Migrate points an existing contract at newCodeID and runs its migrate
// entry point; only the contract's current admin may call this.
func (k Keeper) Migrate(ctx sdk.Context, contractAddr, caller sdk.AccAddress, newCodeID uint64, msg []byte) ([]byte, error) {
	defer telemetry.MeasureSince(time.Now(), "compute", "keeper", "migrate")

	info, ok := k.GetContractInfo(ctx, contractAddr)
	if !ok {
		return nil, sdkerrors.Wrap(types.ErrNotFound, "contract")
	}
	if info.Admin == nil || !info.Admin.Equals(caller) {
		return nil, sdkerrors.Wrap(types.ErrUnauthorized, "only the admin may migrate a contract")
	}
	newCodeInfo, ok := k.GetCodeInfo(ctx, newCodeID)
	if !ok {
		return nil, sdkerrors.Wrap(types.ErrNotFound, "new code")
	}

	env := types.NewEnv(ctx, contractAddr)
	store := newStorageAdapter(ctx, k.storeKey, contractAddr, false)
	gasMeter := NewMultipliedGasMeter(ctx)
	querier := k.newQueryHandler(ctx, contractAddr)

	if _, err := k.resolveCodeAnalysis(newCodeInfo.CodeHash); err != nil {
		return nil, sdkerrors.Wrap(types.ErrMigrationFailed, err.Error())
	}

	ctx.GasMeter().ConsumeGas(InstanceCost, "migrate contract")
	resp, gasUsed, err := k.engine.Migrate(newCodeInfo.CodeHash, env, msg, store, defaultAPI, querier, gasMeter, gasForContract(ctx))
	consumeGas(ctx, gasUsed)
	if err != nil {
		moduleLogger(ctx).Error("migrate contract", "error", err, "contract", contractAddr.String())
		return nil, sdkerrors.Wrap(types.ErrMigrationFailed, err.Error())
	}

	oldCodeID := info.CodeID
	k.removeCodeIndex(ctx, oldCodeID, contractAddr)
	info.CodeID = newCodeID
	k.setContractInfo(ctx, contractAddr, info)
	k.setCodeIndex(ctx, newCodeID, contractAddr)

	seq := k.nextMigrationSeq(ctx, contractAddr)
	entry := types.MigrationHistoryEntry{
		FromCodeID:     oldCodeID,
		ToCodeID:       newCodeID,
		Height:         ctx.BlockHeight(),
		MigrateMsgHash: sha256Of(msg),
	}
	k.appendMigrationHistory(ctx, contractAddr, seq, entry)

	data, err := k.handleContractResponse(ctx, contractAddr, info.IBCPortID, resp)
	if err != nil {
		return nil, err
	}
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeMigrate,
		sdk.NewAttribute(types.AttributeKeyContractAddr, contractAddr.String()),
		sdk.NewAttribute(types.AttributeKeyCodeID, fmt.Sprintf("%d", newCodeID)),
	))
	return data, nil
}

// UpdateAdmin reassigns a contract's admin; only the current admin may call
// this.
func (k Keeper) UpdateAdmin(ctx sdk.Context, contractAddr, caller, newAdmin sdk.AccAddress) error {
	info, ok := k.GetContractInfo(ctx, contractAddr)
	if !ok {
		return sdkerrors.Wrap(types.ErrNotFound, "contract")
	}
	if info.Admin == nil || !info.Admin.Equals(caller) {
		return sdkerrors.Wrap(types.ErrUnauthorized, "only the admin may update the admin")
	}
	info.Admin = newAdmin
	k.setContractInfo(ctx, contractAddr, info)
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeUpdateAdmin,
		sdk.NewAttribute(types.AttributeKeyContractAddr, contractAddr.String()),
	))
	return nil
}

// ClearAdmin removes a contract's admin, making it permanently immutable.
func (k Keeper) ClearAdmin(ctx sdk.Context, contractAddr, caller sdk.AccAddress) error {
	info, ok := k.GetContractInfo(ctx, contractAddr)
	if !ok {
		return sdkerrors.Wrap(types.ErrNotFound, "contract")
	}
	if info.Admin == nil || !info.Admin.Equals(caller) {
		return sdkerrors.Wrap(types.ErrUnauthorized, "only the admin may clear the admin")
	}
	info.Admin = nil
	k.setContractInfo(ctx, contractAddr, info)
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeClearAdmin,
		sdk.NewAttribute(types.AttributeKeyContractAddr, contractAddr.String()),
	))
	return nil
}

//---------------------------------------------------------------------------
// Contract metadata
//---------------------------------------------------------------------------

func (k Keeper) setContractInfo(ctx sdk.Context, contractAddr sdk.AccAddress, info types.ContractInfo) {
	store := ctx.KVStore(k.storeKey)
	store.Set(types.GetContractAddressKey(contractAddr), k.cdc.MustMarshalBinaryBare(&info))
}

// GetContractInfo returns the metadata record for contractAddr.
func (k Keeper) GetContractInfo(ctx sdk.Context, contractAddr sdk.AccAddress) (types.ContractInfo, bool) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.GetContractAddressKey(contractAddr))
	if bz == nil {
		return types.ContractInfo{}, false
	}
	var info types.ContractInfo
	k.cdc.MustUnmarshalBinaryBare(bz, &info)
	return info, true
}

func (k Keeper) containsContractInfo(ctx sdk.Context, contractAddr sdk.AccAddress) bool {
	return ctx.KVStore(k.storeKey).Has(types.GetContractAddressKey(contractAddr))
}

// IterateContractInfo calls cb for every instantiated contract, stopping
// early if cb returns true.
func (k Keeper) IterateContractInfo(ctx sdk.Context, cb func(addr sdk.AccAddress, info types.ContractInfo) bool) {
	prefixStore := prefix.NewStore(ctx.KVStore(k.storeKey), types.ContractKeyPrefix)
	iter := prefixStore.Iterator(nil, nil)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		var info types.ContractInfo
		k.cdc.MustUnmarshalBinaryBare(iter.Value(), &info)
		if cb(sdk.AccAddress(iter.Key()), info) {
			return
		}
	}
}

//---------------------------------------------------------------------------
// Contract state (genesis import/export + QueryRaw)
//---------------------------------------------------------------------------

// GetContractState returns every key/value pair in contractAddr's private
// namespace, in lexicographic key order.
func (k Keeper) GetContractState(ctx sdk.Context, contractAddr sdk.AccAddress) []types.Model {
	prefixStore := prefix.NewStore(ctx.KVStore(k.storeKey), types.GetContractStorePrefixKey(contractAddr))
	iter := prefixStore.Iterator(nil, nil)
	defer iter.Close()
	var models []types.Model
	for ; iter.Valid(); iter.Next() {
		models = append(models, types.Model{
			Key:   append([]byte{}, iter.Key()...),
			Value: append([]byte{}, iter.Value()...),
		})
	}
	return models
}

// importContractState writes models verbatim into contractAddr's namespace,
// used only by genesis import.
func (k Keeper) importContractState(ctx sdk.Context, contractAddr sdk.AccAddress, models []types.Model) {
	prefixStore := prefix.NewStore(ctx.KVStore(k.storeKey), types.GetContractStorePrefixKey(contractAddr))
	for _, m := range models {
		prefixStore.Set(m.Key, m.Value)
	}
}

// QueryRaw returns the raw value stored under key in contractAddr's
// namespace, or nil if absent.
func (k Keeper) QueryRaw(ctx sdk.Context, contractAddr sdk.AccAddress, key []byte) []byte {
	prefixStore := prefix.NewStore(ctx.KVStore(k.storeKey), types.GetContractStorePrefixKey(contractAddr))
	return prefixStore.Get(key)
}

//---------------------------------------------------------------------------
// Smart queries
//---------------------------------------------------------------------------

// QuerySmart runs a contract's query entry point against msg, under the
// chain-configured smart-query gas ceiling.
func (k Keeper) QuerySmart(ctx sdk.Context, contractAddr sdk.AccAddress, msg []byte) ([]byte, error) {
	return k.querySmartRecursive(ctx, contractAddr, msg, 0, k.GetParams(ctx).SmartQueryGasLimit)
}

func (k Keeper) querySmartRecursive(ctx sdk.Context, contractAddr sdk.AccAddress, msg []byte, depth uint32, gasLimit uint64) ([]byte, error) {
	defer telemetry.MeasureSince(time.Now(), "compute", "keeper", "query")

	if depth > MaxQueryDepth {
		return nil, sdkerrors.Wrapf(types.ErrQueryError, "query recursion depth exceeded (max %d)", MaxQueryDepth)
	}
	info, ok := k.GetContractInfo(ctx, contractAddr)
	if !ok {
		return nil, sdkerrors.Wrap(types.ErrNotFound, "contract")
	}
	codeInfo, ok := k.GetCodeInfo(ctx, info.CodeID)
	if !ok {
		return nil, sdkerrors.Wrap(types.ErrNotFound, "code")
	}

	if _, err := k.resolveCodeAnalysis(codeInfo.CodeHash); err != nil {
		return nil, sdkerrors.Wrap(types.ErrQueryError, err.Error())
	}

	queryCtx, _ := ctx.CacheContext()
	env := types.NewEnv(queryCtx, contractAddr)
	env.QueryDepth = depth
	store := newStorageAdapter(queryCtx, k.storeKey, contractAddr, true)
	gasMeter := NewMultipliedGasMeter(queryCtx)
	querier := QueryHandler{Ctx: queryCtx, Plugins: k.queryPlugins, Keeper: &k, Caller: contractAddr, QueryDepth: depth}

	limit := gasLimit
	if remaining := gasForContract(queryCtx); remaining < limit {
		limit = remaining
	}
	resp, gasUsed, err := k.engine.Query(codeInfo.CodeHash, env, msg, store, defaultAPI, querier, gasMeter, limit)
	consumeGas(ctx, gasUsed)
	telemetry.SetGauge(float32(gasUsed), "compute", "keeper", "query", contractAddr.String(), "gasUsed")
	if err != nil {
		moduleLogger(ctx).Error("query contract", "error", err, "contract", contractAddr.String())
		return nil, sdkerrors.Wrap(types.ErrQueryError, err.Error())
	}
	return resp, nil
}

//---------------------------------------------------------------------------
// Listing queries (code / contract info / contracts-by-code)
//---------------------------------------------------------------------------

// QueryContractInfo answers the ContractInfo external query.
func (k Keeper) QueryContractInfo(ctx sdk.Context, contractAddr sdk.AccAddress) (types.QueryContractInfoResponse, error) {
	info, ok := k.GetContractInfo(ctx, contractAddr)
	if !ok {
		return types.QueryContractInfoResponse{}, sdkerrors.Wrap(types.ErrNotFound, "contract")
	}
	resp := types.QueryContractInfoResponse{
		Address:   contractAddr.String(),
		CodeID:    info.CodeID,
		Creator:   info.Creator.String(),
		Label:     info.Label,
		IBCPortID: info.IBCPortID,
	}
	if info.Admin != nil {
		resp.Admin = info.Admin.String()
	}
	return resp, nil
}

// QueryCode answers the Code external query, returning the metadata plus
// the raw wasm bytes.
func (k Keeper) QueryCode(ctx sdk.Context, codeID uint64) (types.QueryCodeResponse, error) {
	info, ok := k.GetCodeInfo(ctx, codeID)
	if !ok {
		return types.QueryCodeResponse{}, sdkerrors.Wrap(types.ErrNotFound, "code")
	}
	wasm, err := k.GetWasm(ctx, codeID)
	if err != nil {
		return types.QueryCodeResponse{}, err
	}
	return types.QueryCodeResponse{
		CodeID:   codeID,
		Creator:  info.Creator.String(),
		Checksum: info.CodeHash,
		Source:   info.Source,
		Data:     wasm,
	}, nil
}

// QueryContractsByCode answers the ContractsByCode external query,
// paginating over the CodeIndex secondary index.
func (k Keeper) QueryContractsByCode(ctx sdk.Context, codeID uint64, page types.PageRequest) (types.QueryContractsByCodeResponse, error) {
	prefixStore := prefix.NewStore(ctx.KVStore(k.storeKey), types.GetCodeIndexIteratorPrefix(codeID))
	iter := prefixStore.Iterator(page.Key, nil)
	defer iter.Close()

	limit := page.Limit
	if limit == 0 {
		limit = 100
	}

	var addrs []string
	var nextKey []byte
	for ; iter.Valid(); iter.Next() {
		if uint64(len(addrs)) == limit {
			nextKey = append([]byte{}, iter.Key()...)
			break
		}
		addrs = append(addrs, sdk.AccAddress(iter.Key()).String())
	}
	return types.QueryContractsByCodeResponse{
		Addresses:  addrs,
		Pagination: types.PageResponse{NextKey: nextKey},
	}, nil
}

//---------------------------------------------------------------------------
// Code index
//---------------------------------------------------------------------------

func (k Keeper) setCodeIndex(ctx sdk.Context, codeID uint64, contractAddr sdk.AccAddress) {
	ctx.KVStore(k.storeKey).Set(types.GetCodeIndexKey(codeID, contractAddr), []byte{1})
}

func (k Keeper) removeCodeIndex(ctx sdk.Context, codeID uint64, contractAddr sdk.AccAddress) {
	ctx.KVStore(k.storeKey).Delete(types.GetCodeIndexKey(codeID, contractAddr))
}

//---------------------------------------------------------------------------
// Migration history
//---------------------------------------------------------------------------

func (k Keeper) nextMigrationSeq(ctx sdk.Context, contractAddr sdk.AccAddress) uint64 {
	prefixStore := prefix.NewStore(ctx.KVStore(k.storeKey), types.GetMigrationHistoryIteratorPrefix(contractAddr))
	iter := prefixStore.ReverseIterator(nil, nil)
	defer iter.Close()
	if !iter.Valid() {
		return 0
	}
	return binary.BigEndian.Uint64(iter.Key()) + 1
}

func (k Keeper) appendMigrationHistory(ctx sdk.Context, contractAddr sdk.AccAddress, seq uint64, entry types.MigrationHistoryEntry) {
	store := ctx.KVStore(k.storeKey)
	store.Set(types.GetMigrationHistoryKey(contractAddr, seq), k.cdc.MustMarshalBinaryBare(&entry))
}

// IterateMigrationHistory calls cb for every migration entry of contractAddr
// in order, stopping early if cb returns true.
func (k Keeper) IterateMigrationHistory(ctx sdk.Context, contractAddr sdk.AccAddress, cb func(entry types.MigrationHistoryEntry) bool) {
	prefixStore := prefix.NewStore(ctx.KVStore(k.storeKey), types.GetMigrationHistoryIteratorPrefix(contractAddr))
	iter := prefixStore.Iterator(nil, nil)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		var entry types.MigrationHistoryEntry
		k.cdc.MustUnmarshalBinaryBare(iter.Value(), &entry)
		if cb(entry) {
			return
		}
	}
}

//---------------------------------------------------------------------------
// Sub-message dispatch / reply
//---------------------------------------------------------------------------

func (k Keeper) newQueryHandler(ctx sdk.Context, caller sdk.AccAddress) QueryHandler {
	return QueryHandler{Ctx: ctx, Plugins: k.queryPlugins, Keeper: &k, Caller: caller}
}

// handleContractResponse dispatches a Response's queued sub-messages and
// returns the data the top-level caller ultimately sees: the last reply's
// data if any sub-message overrode it, otherwise the response's own data.
func (k Keeper) handleContractResponse(ctx sdk.Context, contractAddr sdk.AccAddress, ibcPort string, resp *types.Response) ([]byte, error) {
	if resp == nil {
		return nil, nil
	}
	if len(resp.Messages) == 0 {
		return resp.Data, nil
	}
	dispatcher := NewMessageDispatcher(keeperMessenger{keeper: k}, k)
	rspData, err := dispatcher.DispatchSubmessages(ctx, contractAddr, ibcPort, resp.Messages)
	if err != nil {
		return nil, err
	}
	if rspData != nil {
		return rspData, nil
	}
	return resp.Data, nil
}

// reply invokes a contract's reply entry point and folds the result back
// through handleContractResponse, so a reply can itself queue further
// sub-messages.
func (k Keeper) reply(ctx sdk.Context, contractAddr sdk.AccAddress, reply types.Reply) ([]byte, error) {
	defer telemetry.MeasureSince(time.Now(), "compute", "keeper", "reply")

	info, ok := k.GetContractInfo(ctx, contractAddr)
	if !ok {
		return nil, sdkerrors.Wrap(types.ErrNotFound, "contract")
	}
	codeInfo, ok := k.GetCodeInfo(ctx, info.CodeID)
	if !ok {
		return nil, sdkerrors.Wrap(types.ErrNotFound, "code")
	}

	env := types.NewEnv(ctx, contractAddr)
	store := newStorageAdapter(ctx, k.storeKey, contractAddr, false)
	gasMeter := NewMultipliedGasMeter(ctx)
	querier := k.newQueryHandler(ctx, contractAddr)

	if _, err := k.resolveCodeAnalysis(codeInfo.CodeHash); err != nil {
		return nil, sdkerrors.Wrap(types.ErrReplyFailed, err.Error())
	}

	resp, gasUsed, err := k.engine.Reply(codeInfo.CodeHash, env, reply, store, defaultAPI, querier, gasMeter, gasForContract(ctx))
	consumeGas(ctx, gasUsed)
	if err != nil {
		moduleLogger(ctx).Error("reply contract", "error", err, "contract", contractAddr.String())
		return nil, sdkerrors.Wrap(types.ErrReplyFailed, err.Error())
	}
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		types.EventTypeReply,
		sdk.NewAttribute(types.AttributeKeyContractAddr, contractAddr.String()),
	))
	return k.handleContractResponse(ctx, contractAddr, info.IBCPortID, resp)
}

// keeperMessenger is the keeper's own Messenger: it decodes a contract's
// CosmosMsg and re-enters either the bank collaborator or the keeper itself
// (for a Wasm sub-message, i.e. one contract calling another).
type keeperMessenger struct {
	keeper Keeper
}

func (m keeperMessenger) DispatchMsg(ctx sdk.Context, contractAddr sdk.AccAddress, ibcPort string, msg types.CosmosMsg) ([]sdk.Event, [][]byte, error) {
	switch {
	case msg.Bank != nil && msg.Bank.Send != nil:
		toAddr, err := sdk.AccAddressFromBech32(msg.Bank.Send.ToAddress)
		if err != nil {
			return nil, nil, InvalidRequest{Err: err.Error()}
		}
		coins, err := coinsFromWire(msg.Bank.Send.Amount)
		if err != nil {
			return nil, nil, InvalidRequest{Err: err.Error()}
		}
		if err := m.keeper.bankKeeper.SendCoins(ctx, contractAddr, toAddr, coins); err != nil {
			return nil, nil, err
		}
		return ctx.EventManager().Events(), nil, nil

	case msg.Wasm != nil && msg.Wasm.Execute != nil:
		target, err := sdk.AccAddressFromBech32(msg.Wasm.Execute.ContractAddr)
		if err != nil {
			return nil, nil, InvalidRequest{Err: err.Error()}
		}
		coins, err := coinsFromWire(msg.Wasm.Execute.Funds)
		if err != nil {
			return nil, nil, InvalidRequest{Err: err.Error()}
		}
		data, err := m.keeper.Execute(ctx, target, contractAddr, msg.Wasm.Execute.Msg, coins)
		if err != nil {
			return nil, nil, err
		}
		return ctx.EventManager().Events(), [][]byte{data}, nil

	case msg.Wasm != nil && msg.Wasm.Instantiate != nil:
		var admin sdk.AccAddress
		if msg.Wasm.Instantiate.Admin != "" {
			admin, _ = sdk.AccAddressFromBech32(msg.Wasm.Instantiate.Admin)
		}
		coins, err := coinsFromWire(msg.Wasm.Instantiate.Funds)
		if err != nil {
			return nil, nil, InvalidRequest{Err: err.Error()}
		}
		_, data, err := m.keeper.Instantiate(ctx, msg.Wasm.Instantiate.CodeID, contractAddr, admin, msg.Wasm.Instantiate.Msg, msg.Wasm.Instantiate.Label, coins)
		if err != nil {
			return nil, nil, err
		}
		return ctx.EventManager().Events(), [][]byte{data}, nil

	case msg.Custom != nil:
		return nil, nil, UnsupportedRequest{Kind: "custom"}
	default:
		return nil, nil, UnsupportedRequest{Kind: "unknown cosmos msg"}
	}
}

func coinsFromWire(coins []types.Coin) (sdk.Coins, error) {
	out := make(sdk.Coins, 0, len(coins))
	for _, c := range coins {
		amt, ok := sdk.NewIntFromString(c.Amount)
		if !ok {
			return nil, fmt.Errorf("invalid coin amount %q", c.Amount)
		}
		out = append(out, sdk.NewCoin(c.Denom, amt))
	}
	return out, nil
}

//---------------------------------------------------------------------------
// Pin / unpin
//---------------------------------------------------------------------------

// PinCode pins a code's compiled module in memory, exempting it from the
// module cache's LRU eviction.
func (k Keeper) PinCode(ctx sdk.Context, codeID uint64) error {
	info, ok := k.GetCodeInfo(ctx, codeID)
	if !ok {
		return sdkerrors.Wrap(types.ErrNotFound, "code")
	}
	if err := k.engine.Pin(info.CodeHash); err != nil {
		return err
	}
	checksum := info.CodeHash
	return k.moduleCache.pin(string(checksum), func() (compiledModule, error) {
		report, err := k.engine.AnalyzeCode(checksum)
		return compiledModule{checksum: string(checksum), payload: report}, err
	})
}

// UnpinCode reverses PinCode.
func (k Keeper) UnpinCode(ctx sdk.Context, codeID uint64) error {
	info, ok := k.GetCodeInfo(ctx, codeID)
	if !ok {
		return sdkerrors.Wrap(types.ErrNotFound, "code")
	}
	k.moduleCache.unpin(string(info.CodeHash))
	return k.engine.Unpin(info.CodeHash)
}
