package keeper

import (
	"crypto/sha256"
	"encoding/binary"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck
)

// sequentialContractAddress derives a contract address from the (codeID,
// instanceID) pair, following the module spec's domain-separated
// hash("wasm-seq" | u64_be(instance_id)) rule: the "wasm-seq" tag keeps this
// derivation out of the same hash space as predictableContractAddress's
// "wasm" tag, and codeID rides along (as the teacher's generateContractAddress
// does) so two codes can't ever collide even if instance sequences were
// reset. sha256 over the tag and big-endian-packed pair, then ripemd160 down
// to a 20-byte address. Two instantiations of the same code never collide
// because instanceID is a module-wide, strictly increasing sequence.
func sequentialContractAddress(codeID, instanceID uint64) sdk.AccAddress {
	buf := make([]byte, 16)
	binary.BigEndian.PutUint64(buf[:8], codeID)
	binary.BigEndian.PutUint64(buf[8:], instanceID)

	h := sha256.New()
	h.Write([]byte("wasm-seq"))
	h.Write(buf)
	return ripemd160Of(h.Sum(nil))
}

// predictableContractAddress implements Instantiate2's deterministic
// derivation: the address depends only on inputs the instantiating
// transaction fully controls up front (checksum, creator, salt, init msg),
// so a contract's future address can be computed and funded before it
// exists. This supplements the teacher, which only derives sequential
// addresses; the rule itself follows the module spec's
// hash("wasm" | checksum | creator | salt | init_msg_hash) construction.
func predictableContractAddress(checksum []byte, creator sdk.AccAddress, salt, initMsg []byte) sdk.AccAddress {
	initMsgHash := sha256Of(initMsg)

	h := sha256.New()
	h.Write([]byte("wasm"))
	h.Write(checksum)
	h.Write(creator)
	h.Write(salt)
	h.Write(initMsgHash)
	return ripemd160Of(h.Sum(nil))
}

func sha256Of(b []byte) []byte {
	sum := sha256.Sum256(b)
	return sum[:]
}

func ripemd160Of(b []byte) sdk.AccAddress {
	hasher := ripemd160.New()
	_, _ = hasher.Write(b)
	return sdk.AccAddress(hasher.Sum(nil))
}
