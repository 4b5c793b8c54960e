package cli

import (
	"io/ioutil"
	"strconv"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/novachain/compute/x/compute/internal/types"
)

const (
	flagAdmin   = "admin"
	flagSource  = "source"
	flagBuilder = "builder"
	flagLabel   = "label"
	flagAmount  = "amount"
	flagSalt    = "salt"
)

// GetTxCmd returns the root command for the module's transaction
// subcommands: store-code, instantiate, execute, migrate, set-contract-admin
// and clear-contract-admin.
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Compute module transaction subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}
	cmd.AddCommand(
		StoreCodeCmd(),
		InstantiateContractCmd(),
		ExecuteContractCmd(),
		MigrateContractCmd(),
		UpdateContractAdminCmd(),
		ClearContractAdminCmd(),
	)
	return cmd
}

// StoreCodeCmd uploads a wasm binary from a local file path.
func StoreCodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store [wasm-file]",
		Short: "Upload a wasm binary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			wasmCode, err := ioutil.ReadFile(args[0])
			if err != nil {
				return err
			}
			source, _ := cmd.Flags().GetString(flagSource)
			builder, _ := cmd.Flags().GetString(flagBuilder)

			msg := &types.MsgStoreCode{
				Sender:       clientCtx.GetFromAddress().String(),
				WASMByteCode: wasmCode,
				Source:       source,
				Builder:      builder,
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}
	cmd.Flags().String(flagSource, "", "code source URL")
	cmd.Flags().String(flagBuilder, "", "docker build tag reproducing this code")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// InstantiateContractCmd spawns a new contract instance from a code id.
func InstantiateContractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instantiate [code-id] [init-msg-json]",
		Short: "Instantiate a contract from an uploaded code id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			codeID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return err
			}
			amountStr, _ := cmd.Flags().GetString(flagAmount)
			funds, err := sdk.ParseCoinsNormalized(amountStr)
			if err != nil {
				return err
			}
			label, _ := cmd.Flags().GetString(flagLabel)
			admin, _ := cmd.Flags().GetString(flagAdmin)
			salt, _ := cmd.Flags().GetString(flagSalt)

			msg := &types.MsgInstantiateContract{
				Sender:  clientCtx.GetFromAddress().String(),
				Admin:   admin,
				CodeID:  codeID,
				Label:   label,
				InitMsg: []byte(args[1]),
				Funds:   funds,
			}
			if salt != "" {
				msg.Salt = []byte(salt)
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}
	cmd.Flags().String(flagAmount, "", "coins to send with the instantiate message, e.g. 100stake")
	cmd.Flags().String(flagLabel, "", "human-readable label for this contract instance (required)")
	cmd.Flags().String(flagAdmin, "", "address that may later migrate or update this contract's admin")
	cmd.Flags().String(flagSalt, "", "salt for predictable (Instantiate2) address derivation")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// ExecuteContractCmd calls an entry point on an existing contract.
func ExecuteContractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "execute [contract-addr] [exec-msg-json]",
		Short: "Execute a command on a contract",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			amountStr, _ := cmd.Flags().GetString(flagAmount)
			funds, err := sdk.ParseCoinsNormalized(amountStr)
			if err != nil {
				return err
			}
			msg := &types.MsgExecuteContract{
				Sender:   clientCtx.GetFromAddress().String(),
				Contract: args[0],
				Msg:      []byte(args[1]),
				Funds:    funds,
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}
	cmd.Flags().String(flagAmount, "", "coins to send with the execute message, e.g. 100stake")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// MigrateContractCmd moves a contract to a new code id.
func MigrateContractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate [contract-addr] [new-code-id] [migrate-msg-json]",
		Short: "Migrate a contract to a new code id",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			newCodeID, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return err
			}
			msg := &types.MsgMigrateContract{
				Sender:    clientCtx.GetFromAddress().String(),
				Contract:  args[0],
				NewCodeID: newCodeID,
				Msg:       []byte(args[2]),
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// UpdateContractAdminCmd transfers admin rights on a contract.
func UpdateContractAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-contract-admin [contract-addr] [new-admin]",
		Short: "Set a new admin for a contract",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			msg := &types.MsgUpdateAdmin{
				Sender:   clientCtx.GetFromAddress().String(),
				NewAdmin: args[1],
				Contract: args[0],
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// ClearContractAdminCmd removes a contract's admin permanently.
func ClearContractAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear-contract-admin [contract-addr]",
		Short: "Clear the admin for a contract, making it immutable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			msg := &types.MsgClearAdmin{
				Sender:   clientCtx.GetFromAddress().String(),
				Contract: args[0],
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
