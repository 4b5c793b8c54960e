package keeper

import (
	"github.com/cosmos/cosmos-sdk/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/novachain/compute/x/compute/internal/types"
)

// Record is one key/value pair yielded by a Storage range iterator.
type Record struct {
	Key   []byte
	Value []byte
}

// Storage is the narrow KV surface handed to the engine for a single call.
// It is contract-prefixed by construction (see newStorageAdapter) so the
// contract sees only its own private namespace, and it refuses writes when
// the call is a read-only query.
type Storage interface {
	Get(key []byte) []byte
	Set(key, value []byte)
	Remove(key []byte)
	Scan(start, end []byte, descending bool) []Record
}

// storageAdapter is constructed fresh for every engine call and discarded
// when the call returns; it borrows ctx's KVStore for exactly that long.
type storageAdapter struct {
	prefixStore prefix.Store
	readOnly    bool
}

func newStorageAdapter(ctx sdk.Context, storeKey sdk.StoreKey, contractAddr sdk.AccAddress, readOnly bool) *storageAdapter {
	prefixKey := types.GetContractStorePrefixKey(contractAddr)
	return &storageAdapter{
		prefixStore: prefix.NewStore(ctx.KVStore(storeKey), prefixKey),
		readOnly:    readOnly,
	}
}

func (s *storageAdapter) Get(key []byte) []byte {
	return s.prefixStore.Get(key)
}

func (s *storageAdapter) Set(key, value []byte) {
	if s.readOnly {
		panic(sdkerrors.Wrap(types.ErrInternal, "storage write attempted during a read-only query"))
	}
	s.prefixStore.Set(key, value)
}

func (s *storageAdapter) Remove(key []byte) {
	if s.readOnly {
		panic(sdkerrors.Wrap(types.ErrInternal, "storage write attempted during a read-only query"))
	}
	s.prefixStore.Delete(key)
}

// Scan returns every key/value pair in [start, end) in lexicographic order,
// ascending or descending as requested. Ordering is deterministic: the
// underlying store guarantees byte-lexicographic iteration.
func (s *storageAdapter) Scan(start, end []byte, descending bool) []Record {
	var iter sdk.Iterator
	if descending {
		iter = s.prefixStore.ReverseIterator(start, end)
	} else {
		iter = s.prefixStore.Iterator(start, end)
	}
	defer iter.Close()

	var out []Record
	for ; iter.Valid(); iter.Next() {
		key := append([]byte{}, iter.Key()...)
		value := append([]byte{}, iter.Value()...)
		out = append(out, Record{Key: key, Value: value})
	}
	return out
}
