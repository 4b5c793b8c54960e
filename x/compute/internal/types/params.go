package types

import (
	"fmt"

	paramtypes "github.com/cosmos/cosmos-sdk/x/params/types"
)

// ParamKeyTable returns the param key table for the compute module.
func ParamKeyTable() paramtypes.KeyTable {
	return paramtypes.NewKeyTable().RegisterParamSet(&Params{})
}

var (
	ParamStoreKeyUploadAccess             = []byte("uploadAccess")
	ParamStoreKeyInstantiateAccess        = []byte("instantiateAccess")
	ParamStoreKeyMaxWasmCodeSize          = []byte("maxWasmCodeSize")
	ParamStoreKeySmartQueryGasLimit       = []byte("smartQueryGasLimit")
	ParamStoreKeyMemoryCacheSize          = []byte("memoryCacheSize")
)

// Params is the compute module's governance-mutable configuration record.
type Params struct {
	CodeUploadAccess             AccessConfig `json:"code_upload_access"`
	InstantiateDefaultPermission AccessType   `json:"instantiate_default_permission"`
	MaxWasmCodeSize              uint64       `json:"max_wasm_code_size"`
	SmartQueryGasLimit           uint64       `json:"smart_query_gas_limit"`
	MemoryCacheSize              uint32       `json:"memory_cache_size"`
}

// DefaultParams returns the module's out-of-the-box parameter set.
func DefaultParams() Params {
	return Params{
		CodeUploadAccess:             AllowEverybody(),
		InstantiateDefaultPermission: AccessTypeEverybody,
		MaxWasmCodeSize:              800 * 1024,
		SmartQueryGasLimit:           3_000_000,
		MemoryCacheSize:              100,
	}
}

// ParamSetPairs implements paramtypes.ParamSet.
func (p *Params) ParamSetPairs() paramtypes.ParamSetPairs {
	return paramtypes.ParamSetPairs{
		paramtypes.NewParamSetPair(ParamStoreKeyUploadAccess, &p.CodeUploadAccess, validateAccessConfig),
		paramtypes.NewParamSetPair(ParamStoreKeyInstantiateAccess, &p.InstantiateDefaultPermission, validateAccessType),
		paramtypes.NewParamSetPair(ParamStoreKeyMaxWasmCodeSize, &p.MaxWasmCodeSize, validateMaxWasmCodeSize),
		paramtypes.NewParamSetPair(ParamStoreKeySmartQueryGasLimit, &p.SmartQueryGasLimit, validateGasLimit),
		paramtypes.NewParamSetPair(ParamStoreKeyMemoryCacheSize, &p.MemoryCacheSize, validateMemoryCacheSize),
	}
}

// Validate performs a fully self-contained sanity check of the param set.
func (p Params) Validate() error {
	if err := validateAccessConfig(p.CodeUploadAccess); err != nil {
		return err
	}
	if err := validateAccessType(p.InstantiateDefaultPermission); err != nil {
		return err
	}
	if err := validateMaxWasmCodeSize(p.MaxWasmCodeSize); err != nil {
		return err
	}
	if err := validateGasLimit(p.SmartQueryGasLimit); err != nil {
		return err
	}
	return validateMemoryCacheSize(p.MemoryCacheSize)
}

func validateAccessConfig(i interface{}) error {
	v, ok := i.(AccessConfig)
	if !ok {
		return fmt.Errorf("invalid parameter type: %T", i)
	}
	switch v.Permission {
	case AccessTypeNobody, AccessTypeEverybody, AccessTypeOnlyAddress, AccessTypeAnyOfAddresses:
		return nil
	default:
		return fmt.Errorf("invalid access type: %v", v.Permission)
	}
}

func validateAccessType(i interface{}) error {
	v, ok := i.(AccessType)
	if !ok {
		return fmt.Errorf("invalid parameter type: %T", i)
	}
	switch v {
	case AccessTypeNobody, AccessTypeEverybody, AccessTypeOnlyAddress, AccessTypeAnyOfAddresses:
		return nil
	default:
		return fmt.Errorf("invalid access type: %v", v)
	}
}

func validateMaxWasmCodeSize(i interface{}) error {
	v, ok := i.(uint64)
	if !ok {
		return fmt.Errorf("invalid parameter type: %T", i)
	}
	if v == 0 {
		return fmt.Errorf("max wasm code size must not be zero")
	}
	return nil
}

func validateGasLimit(i interface{}) error {
	v, ok := i.(uint64)
	if !ok {
		return fmt.Errorf("invalid parameter type: %T", i)
	}
	if v == 0 {
		return fmt.Errorf("smart query gas limit must not be zero")
	}
	return nil
}

func validateMemoryCacheSize(i interface{}) error {
	if _, ok := i.(uint32); !ok {
		return fmt.Errorf("invalid parameter type: %T", i)
	}
	return nil
}
