package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// AccessType defines who may instantiate a contract from a given code.
type AccessType int32

const (
	AccessTypeUnspecified AccessType = iota
	AccessTypeNobody
	AccessTypeOnlyAddress
	AccessTypeAnyOfAddresses
	AccessTypeEverybody
)

// AccessConfig is the instantiate permission attached to a Code, or the
// module-wide code upload access policy.
type AccessConfig struct {
	Permission AccessType       `json:"permission"`
	Address    sdk.AccAddress   `json:"address,omitempty"`
	Addresses  []sdk.AccAddress `json:"addresses,omitempty"`
}

// AllowEverybody is the default permissive instantiate policy.
func AllowEverybody() AccessConfig {
	return AccessConfig{Permission: AccessTypeEverybody}
}

// AllowNobody forbids everyone (used to close uploads entirely).
func AllowNobody() AccessConfig {
	return AccessConfig{Permission: AccessTypeNobody}
}

// AllowOnlyAddress restricts the action to a single address.
func AllowOnlyAddress(addr sdk.AccAddress) AccessConfig {
	return AccessConfig{Permission: AccessTypeOnlyAddress, Address: addr}
}

// Allowed reports whether actor satisfies this access policy.
func (a AccessConfig) Allowed(actor sdk.AccAddress) bool {
	switch a.Permission {
	case AccessTypeEverybody:
		return true
	case AccessTypeNobody:
		return false
	case AccessTypeOnlyAddress:
		return a.Address.Equals(actor)
	case AccessTypeAnyOfAddresses:
		for _, c := range a.Addresses {
			if c.Equals(actor) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// CodeInfo is the persisted metadata for an uploaded WASM code. The raw
// bytes themselves live under a separate key (GetCodeRawKey) so metadata
// reads never pull the whole module through the codec.
type CodeInfo struct {
	CodeHash              []byte         `json:"code_hash"`
	Creator               sdk.AccAddress `json:"creator"`
	Source                string         `json:"source"`
	Builder               string         `json:"builder"`
	InstantiatePermission AccessConfig   `json:"instantiate_permission"`
}

// NewCodeInfo constructs a CodeInfo record.
func NewCodeInfo(codeHash []byte, creator sdk.AccAddress, source, builder string, perm AccessConfig) CodeInfo {
	return CodeInfo{
		CodeHash:              codeHash,
		Creator:               creator,
		Source:                source,
		Builder:               builder,
		InstantiatePermission: perm,
	}
}

// AbsoluteTxPosition uniquely orders an action within the chain's history;
// used as a contract's created_height + intra-block tiebreaker.
type AbsoluteTxPosition struct {
	BlockHeight int64  `json:"block_height"`
	TxIndex     uint32 `json:"tx_index"`
}

// NewAbsoluteTxPosition captures the current position from ctx.
func NewAbsoluteTxPosition(ctx sdk.Context) *AbsoluteTxPosition {
	return &AbsoluteTxPosition{
		BlockHeight: ctx.BlockHeight(),
		TxIndex:     uint32(ctx.TxIndex()),
	}
}

// ContractInfo is the persisted metadata record for an instantiated
// contract. CodeID is mutated only by Migrate; Admin by UpdateAdmin/ClearAdmin.
type ContractInfo struct {
	CodeID    uint64              `json:"code_id"`
	Creator   sdk.AccAddress      `json:"creator"`
	Admin     sdk.AccAddress      `json:"admin,omitempty"`
	Label     string              `json:"label"`
	Created   *AbsoluteTxPosition `json:"created,omitempty"`
	IBCPortID string              `json:"ibc_port_id,omitempty"`
}

// NewContractInfo constructs a ContractInfo record.
func NewContractInfo(codeID uint64, creator, admin sdk.AccAddress, label string, createdAt *AbsoluteTxPosition) ContractInfo {
	return ContractInfo{
		CodeID:  codeID,
		Creator: creator,
		Admin:   admin,
		Label:   label,
		Created: createdAt,
	}
}

// AdminAddr returns the contract's admin, or nil if none is set.
func (c ContractInfo) AdminAddr() sdk.AccAddress {
	return c.Admin
}

// MigrationHistoryEntry is one append-only record of a completed migration.
type MigrationHistoryEntry struct {
	FromCodeID     uint64 `json:"from_code_id"`
	ToCodeID       uint64 `json:"to_code_id"`
	Height         int64  `json:"height"`
	MigrateMsgHash []byte `json:"migrate_msg_hash"`
}

// Model is a raw key/value pair of contract state, used by genesis
// import/export and by QueryRaw.
type Model struct {
	Key   []byte `json:"key"`
	Value []byte `json:"value"`
}

//---------- VM-facing environment records ----------

// Coin mirrors sdk.Coin using a string amount, matching the wire format the
// VM expects (portable across the host/guest boundary).
type Coin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

// NewCoinsFromSDK converts sdk.Coins into the VM's wire Coin slice.
func NewCoinsFromSDK(coins sdk.Coins) []Coin {
	out := make([]Coin, len(coins))
	for i, c := range coins {
		out[i] = Coin{Denom: c.Denom, Amount: c.Amount.String()}
	}
	return out
}

// BlockInfo carries the consensus-critical block context into env.
type BlockInfo struct {
	Height  int64  `json:"height"`
	Time    int64  `json:"time"`
	ChainID string `json:"chain_id"`
}

// MessageInfo carries the caller's identity and attached funds into env.
type MessageInfo struct {
	Sender    sdk.AccAddress `json:"sender"`
	SentFunds []Coin         `json:"sent_funds"`
}

// ContractEnvInfo carries the callee's own identity into env.
type ContractEnvInfo struct {
	Address sdk.AccAddress `json:"address"`
}

// Env is the environmental record passed to every contract entry point. It
// must contain only trusted, already-verified data.
type Env struct {
	Block    BlockInfo       `json:"block"`
	Contract ContractEnvInfo `json:"contract"`
	// QueryDepth is non-zero only for Query calls; it tracks recursion depth
	// through the Querier so the depth bound (<=10) can be enforced.
	QueryDepth uint32 `json:"query_depth,omitempty"`
}

// NewEnv builds the Env for an entry point invoked against contractAddr.
func NewEnv(ctx sdk.Context, contractAddr sdk.AccAddress) Env {
	return Env{
		Block: BlockInfo{
			Height:  ctx.BlockHeight(),
			Time:    ctx.BlockTime().Unix(),
			ChainID: ctx.ChainID(),
		},
		Contract: ContractEnvInfo{Address: contractAddr},
	}
}

// NewMessageInfo builds the Info record passed alongside Env to
// instantiate/execute calls.
func NewMessageInfo(sender sdk.AccAddress, funds sdk.Coins) MessageInfo {
	return MessageInfo{Sender: sender, SentFunds: NewCoinsFromSDK(funds)}
}

// WasmConfig groups the node-local (non-consensus) configuration for the
// engine: cache sizing and the smart-query gas ceiling.
type WasmConfig struct {
	SmartQueryGasLimit uint64
	MemoryCacheSize    uint32
	ContractDebugMode  bool
}

// DefaultWasmConfig returns conservative engine configuration defaults.
func DefaultWasmConfig() WasmConfig {
	return WasmConfig{
		SmartQueryGasLimit: 3_000_000,
		MemoryCacheSize:    100,
	}
}
