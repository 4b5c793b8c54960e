package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// Message route/type constants. The type strings are the stable wire tags
// referenced by §6 of the module spec.
const (
	TypeMsgStoreCode      = "store_code"
	TypeMsgInstantiate    = "instantiate_contract"
	TypeMsgExecute        = "execute_contract"
	TypeMsgMigrate        = "migrate_contract"
	TypeMsgUpdateAdmin    = "update_contract_admin"
	TypeMsgClearAdmin     = "clear_contract_admin"
)

const maxLabelLength = 128

// MsgStoreCode uploads raw WASM bytecode.
type MsgStoreCode struct {
	Sender                string       `json:"sender"`
	WASMByteCode           []byte       `json:"wasm_byte_code"`
	Source                 string       `json:"source,omitempty"`
	Builder                string       `json:"builder,omitempty"`
	InstantiatePermission  *AccessConfig `json:"instantiate_permission,omitempty"`
}

func (m MsgStoreCode) Reset()        {}
func (m MsgStoreCode) String() string { return TypeMsgStoreCode }
func (MsgStoreCode) ProtoMessage()    {}

func (m MsgStoreCode) Route() string { return RouterKey }
func (m MsgStoreCode) Type() string  { return TypeMsgStoreCode }

func (m MsgStoreCode) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Sender); err != nil {
		return sdkerrors.Wrap(ErrInvalidRequest, "sender: "+err.Error())
	}
	if len(m.WASMByteCode) == 0 {
		return sdkerrors.Wrap(ErrInvalidRequest, "empty wasm code")
	}
	if m.InstantiatePermission != nil {
		if err := validateAccessConfig(*m.InstantiatePermission); err != nil {
			return sdkerrors.Wrap(ErrInvalidRequest, err.Error())
		}
	}
	return nil
}

func (m MsgStoreCode) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(m.Sender)
	return []sdk.AccAddress{addr}
}

func (m MsgStoreCode) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(&m))
}

// MsgInstantiateContract instantiates a code into a new contract address.
type MsgInstantiateContract struct {
	Sender string `json:"sender"`
	Admin  string `json:"admin,omitempty"`
	CodeID uint64 `json:"code_id"`
	Label  string `json:"label"`
	InitMsg []byte `json:"init_msg"`
	Funds  sdk.Coins `json:"funds"`
	Salt   []byte    `json:"salt,omitempty"`
}

func (m MsgInstantiateContract) Reset()        {}
func (m MsgInstantiateContract) String() string { return TypeMsgInstantiate }
func (MsgInstantiateContract) ProtoMessage()    {}

func (m MsgInstantiateContract) Route() string { return RouterKey }
func (m MsgInstantiateContract) Type() string  { return TypeMsgInstantiate }

func (m MsgInstantiateContract) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Sender); err != nil {
		return sdkerrors.Wrap(ErrInvalidRequest, "sender: "+err.Error())
	}
	if m.Admin != "" {
		if _, err := sdk.AccAddressFromBech32(m.Admin); err != nil {
			return sdkerrors.Wrap(ErrInvalidRequest, "admin: "+err.Error())
		}
	}
	if m.CodeID == 0 {
		return sdkerrors.Wrap(ErrInvalidRequest, "code id is required")
	}
	if len(m.Label) == 0 {
		return sdkerrors.Wrap(ErrInvalidRequest, "label is required")
	}
	if len(m.Label) > maxLabelLength {
		return sdkerrors.Wrap(ErrInvalidRequest, "label too long")
	}
	if !m.Funds.IsValid() {
		return sdkerrors.Wrap(ErrInvalidRequest, "invalid funds")
	}
	if len(m.InitMsg) == 0 {
		return sdkerrors.Wrap(ErrInvalidRequest, "init msg is required")
	}
	return nil
}

func (m MsgInstantiateContract) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(m.Sender)
	return []sdk.AccAddress{addr}
}

func (m MsgInstantiateContract) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(&m))
}

// MsgExecuteContract calls an entry point on an existing contract.
type MsgExecuteContract struct {
	Sender   string    `json:"sender"`
	Contract string    `json:"contract"`
	Msg      []byte    `json:"msg"`
	Funds    sdk.Coins `json:"funds"`
}

func (m MsgExecuteContract) Reset()        {}
func (m MsgExecuteContract) String() string { return TypeMsgExecute }
func (MsgExecuteContract) ProtoMessage()    {}

func (m MsgExecuteContract) Route() string { return RouterKey }
func (m MsgExecuteContract) Type() string  { return TypeMsgExecute }

func (m MsgExecuteContract) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Sender); err != nil {
		return sdkerrors.Wrap(ErrInvalidRequest, "sender: "+err.Error())
	}
	if _, err := sdk.AccAddressFromBech32(m.Contract); err != nil {
		return sdkerrors.Wrap(ErrInvalidRequest, "contract: "+err.Error())
	}
	if len(m.Msg) == 0 {
		return sdkerrors.Wrap(ErrInvalidRequest, "msg is required")
	}
	if !m.Funds.IsValid() {
		return sdkerrors.Wrap(ErrInvalidRequest, "invalid funds")
	}
	return nil
}

func (m MsgExecuteContract) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(m.Sender)
	return []sdk.AccAddress{addr}
}

func (m MsgExecuteContract) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(&m))
}

// MsgMigrateContract migrates a contract to a new code id.
type MsgMigrateContract struct {
	Sender    string `json:"sender"`
	Contract  string `json:"contract"`
	NewCodeID uint64 `json:"new_code_id"`
	Msg       []byte `json:"msg"`
}

func (m MsgMigrateContract) Reset()        {}
func (m MsgMigrateContract) String() string { return TypeMsgMigrate }
func (MsgMigrateContract) ProtoMessage()    {}

func (m MsgMigrateContract) Route() string { return RouterKey }
func (m MsgMigrateContract) Type() string  { return TypeMsgMigrate }

func (m MsgMigrateContract) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Sender); err != nil {
		return sdkerrors.Wrap(ErrInvalidRequest, "sender: "+err.Error())
	}
	if _, err := sdk.AccAddressFromBech32(m.Contract); err != nil {
		return sdkerrors.Wrap(ErrInvalidRequest, "contract: "+err.Error())
	}
	if m.NewCodeID == 0 {
		return sdkerrors.Wrap(ErrInvalidRequest, "new code id is required")
	}
	return nil
}

func (m MsgMigrateContract) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(m.Sender)
	return []sdk.AccAddress{addr}
}

func (m MsgMigrateContract) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(&m))
}

// MsgUpdateAdmin transfers admin rights on a contract.
type MsgUpdateAdmin struct {
	Sender   string `json:"sender"`
	NewAdmin string `json:"new_admin"`
	Contract string `json:"contract"`
}

func (m MsgUpdateAdmin) Reset()        {}
func (m MsgUpdateAdmin) String() string { return TypeMsgUpdateAdmin }
func (MsgUpdateAdmin) ProtoMessage()    {}

func (m MsgUpdateAdmin) Route() string { return RouterKey }
func (m MsgUpdateAdmin) Type() string  { return TypeMsgUpdateAdmin }

func (m MsgUpdateAdmin) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Sender); err != nil {
		return sdkerrors.Wrap(ErrInvalidRequest, "sender: "+err.Error())
	}
	if _, err := sdk.AccAddressFromBech32(m.NewAdmin); err != nil {
		return sdkerrors.Wrap(ErrInvalidRequest, "new admin: "+err.Error())
	}
	if _, err := sdk.AccAddressFromBech32(m.Contract); err != nil {
		return sdkerrors.Wrap(ErrInvalidRequest, "contract: "+err.Error())
	}
	return nil
}

func (m MsgUpdateAdmin) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(m.Sender)
	return []sdk.AccAddress{addr}
}

func (m MsgUpdateAdmin) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(&m))
}

// MsgClearAdmin removes the admin from a contract, making it immutable.
type MsgClearAdmin struct {
	Sender   string `json:"sender"`
	Contract string `json:"contract"`
}

func (m MsgClearAdmin) Reset()        {}
func (m MsgClearAdmin) String() string { return TypeMsgClearAdmin }
func (MsgClearAdmin) ProtoMessage()    {}

func (m MsgClearAdmin) Route() string { return RouterKey }
func (m MsgClearAdmin) Type() string  { return TypeMsgClearAdmin }

func (m MsgClearAdmin) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(m.Sender); err != nil {
		return sdkerrors.Wrap(ErrInvalidRequest, "sender: "+err.Error())
	}
	if _, err := sdk.AccAddressFromBech32(m.Contract); err != nil {
		return sdkerrors.Wrap(ErrInvalidRequest, "contract: "+err.Error())
	}
	return nil
}

func (m MsgClearAdmin) GetSigners() []sdk.AccAddress {
	addr, _ := sdk.AccAddressFromBech32(m.Sender)
	return []sdk.AccAddress{addr}
}

func (m MsgClearAdmin) GetSignBytes() []byte {
	return sdk.MustSortJSON(ModuleCdc.MustMarshalJSON(&m))
}
