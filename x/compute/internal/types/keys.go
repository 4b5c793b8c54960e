package types

import (
	"encoding/binary"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// ModuleName is the name of the compute module.
	ModuleName = "compute"

	// StoreKey is the default store key for the module.
	StoreKey = ModuleName

	// QuerierRoute is the querier route for the module.
	QuerierRoute = ModuleName

	// RouterKey is the msg router key for the module.
	RouterKey = ModuleName
)

// Key space prefixes. Stable across releases: these bytes define on-disk
// compatibility and must never be reassigned.
var (
	CodeKeyPrefix            = []byte{0x01} // 0x01 | be64(code_id) -> CodeInfo
	CodeRawKeyPrefix         = []byte{0x02} // 0x02 | be64(code_id) -> raw wasm bytes
	ContractKeyPrefix        = []byte{0x03} // 0x03 | addr -> ContractInfo
	ContractStoreKeyPrefix   = []byte{0x04} // 0x04 | addr | key -> value
	CodeIndexKeyPrefix       = []byte{0x05} // 0x05 | be64(code_id) | addr -> sentinel
	MigrationHistoryKeyPrefix = []byte{0x06} // 0x06 | addr | be64(seq) -> MigrationHistoryEntry
	SequenceKeyLastCodeID     = []byte{0x07, 0x01}
	SequenceKeyLastInstanceID = []byte{0x07, 0x02}
	ContractLabelKeyPrefix    = []byte{0x09} // 0x09 | label -> addr
)

// GetCodeKey returns the store key for a code's metadata record.
func GetCodeKey(codeID uint64) []byte {
	return append(CodeKeyPrefix, sdk.Uint64ToBigEndian(codeID)...)
}

// GetCodeRawKey returns the store key for a code's raw wasm bytes.
func GetCodeRawKey(codeID uint64) []byte {
	return append(CodeRawKeyPrefix, sdk.Uint64ToBigEndian(codeID)...)
}

// GetContractAddressKey returns the store key for a contract's metadata.
func GetContractAddressKey(addr sdk.AccAddress) []byte {
	return append(ContractKeyPrefix, addr...)
}

// GetContractStorePrefixKey returns the prefix under which a contract's
// private key/value state lives.
func GetContractStorePrefixKey(addr sdk.AccAddress) []byte {
	return append(ContractStoreKeyPrefix, addr...)
}

// GetCodeIndexKey returns the store key marking membership of addr in the
// set of contracts instantiated from codeID.
func GetCodeIndexKey(codeID uint64, addr sdk.AccAddress) []byte {
	key := append(CodeIndexKeyPrefix, sdk.Uint64ToBigEndian(codeID)...)
	return append(key, addr...)
}

// GetCodeIndexIteratorPrefix returns the iteration prefix for all contracts
// instantiated from codeID.
func GetCodeIndexIteratorPrefix(codeID uint64) []byte {
	return append(CodeIndexKeyPrefix, sdk.Uint64ToBigEndian(codeID)...)
}

// GetMigrationHistoryKey returns the store key for the seq-th migration
// history entry of a contract.
func GetMigrationHistoryKey(addr sdk.AccAddress, seq uint64) []byte {
	key := append(MigrationHistoryKeyPrefix, addr...)
	return append(key, sdk.Uint64ToBigEndian(seq)...)
}

// GetMigrationHistoryIteratorPrefix returns the iteration prefix for all
// migration history entries of a contract.
func GetMigrationHistoryIteratorPrefix(addr sdk.AccAddress) []byte {
	return append(MigrationHistoryKeyPrefix, addr...)
}

// GetContractLabelKey returns the store key used to enforce label uniqueness.
func GetContractLabelKey(label string) []byte {
	return append(ContractLabelKeyPrefix, []byte(label)...)
}

// ParseCodeIDFromIndexKey extracts the code_id back out of a CodeIndex key
// (without its prefix byte).
func ParseCodeIDFromIndexKey(suffix []byte) uint64 {
	return binary.BigEndian.Uint64(suffix[:8])
}

// ParseAddrFromIndexKey extracts the contract address back out of a
// CodeIndex key suffix (after the 8-byte code_id).
func ParseAddrFromIndexKey(suffix []byte) sdk.AccAddress {
	return sdk.AccAddress(suffix[8:])
}
