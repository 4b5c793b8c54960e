package types

// GenesisState is the full exported/imported state of the compute module.
type GenesisState struct {
	Params    Params     `json:"params"`
	Codes     []Code     `json:"codes"`
	Contracts []Contract `json:"contracts"`
	Sequences []Sequence `json:"sequences"`
}

// Code pairs a CodeInfo record with the raw bytes it was compiled from.
type Code struct {
	CodeID   uint64   `json:"code_id"`
	CodeInfo CodeInfo `json:"code_info"`
	CodeBytes []byte  `json:"code_bytes"`
}

// Contract pairs a ContractInfo record with its full key/value state.
type Contract struct {
	ContractAddress string       `json:"contract_address"`
	ContractInfo    ContractInfo `json:"contract_info"`
	ContractState   []Model      `json:"contract_state"`
}

// Sequence is one exported (key, next_value) counter pair.
type Sequence struct {
	IDKey   []byte `json:"id_key"`
	Value   uint64 `json:"value"`
}

// DefaultGenesis returns an empty genesis state with default params.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params: DefaultParams(),
	}
}

// Validate performs basic, stateless sanity checks over the genesis payload.
func (g GenesisState) Validate() error {
	if err := g.Params.Validate(); err != nil {
		return err
	}
	seen := make(map[uint64]bool, len(g.Codes))
	for _, c := range g.Codes {
		if seen[c.CodeID] {
			return ErrDuplicate.Wrap("duplicate code id in genesis")
		}
		seen[c.CodeID] = true
	}
	addrs := make(map[string]bool, len(g.Contracts))
	for _, c := range g.Contracts {
		if addrs[c.ContractAddress] {
			return ErrDuplicate.Wrap("duplicate contract address in genesis")
		}
		addrs[c.ContractAddress] = true
		if !seen[c.ContractInfo.CodeID] {
			return ErrNotFound.Wrap("contract references unknown code id")
		}
	}
	return nil
}
