package cli

import (
	"fmt"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/novachain/compute/x/compute/internal/keeper"
	"github.com/novachain/compute/x/compute/internal/types"
)

// GetQueryCmd returns the root command for the module's query subcommands.
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      "Compute module query subcommands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}
	cmd.AddCommand(
		GetCmdCodeInfo(),
		GetCmdListContractsByCode(),
		GetCmdContractInfo(),
		GetCmdSmartQuery(),
		GetCmdRawQuery(),
	)
	return cmd
}

// GetCmdCodeInfo looks up a single uploaded code's metadata.
func GetCmdCodeInfo() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "code [code-id]",
		Short: "Show metadata for an uploaded code id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}
			route := fmt.Sprintf("custom/%s/%s/%s", types.QuerierRoute, keeper.QueryGetCode, args[0])
			res, _, err := clientCtx.QueryWithData(route, nil)
			if err != nil {
				return err
			}
			return clientCtx.PrintBytes(res)
		},
	}
	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdListContractsByCode lists every contract instantiated from a code id.
func GetCmdListContractsByCode() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-contracts-by-code [code-id]",
		Short: "List contract addresses instantiated from a code id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}
			route := fmt.Sprintf("custom/%s/%s/%s", types.QuerierRoute, keeper.QueryListContractByCode, args[0])
			res, _, err := clientCtx.QueryWithData(route, nil)
			if err != nil {
				return err
			}
			return clientCtx.PrintBytes(res)
		},
	}
	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdContractInfo shows a contract's on-chain metadata (code id, creator,
// admin, label).
func GetCmdContractInfo() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contract-info [contract-addr]",
		Short: "Show a contract's metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}
			if _, err := sdk.AccAddressFromBech32(args[0]); err != nil {
				return err
			}
			route := fmt.Sprintf("custom/%s/%s/%s", types.QuerierRoute, keeper.QueryGetContract, args[0])
			res, _, err := clientCtx.QueryWithData(route, nil)
			if err != nil {
				return err
			}
			return clientCtx.PrintBytes(res)
		},
	}
	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdSmartQuery calls a contract's query entry point and prints its
// response verbatim.
func GetCmdSmartQuery() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "smart [contract-addr] [query-msg-json]",
		Short: "Calls a contract's query entry point with the given JSON query",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}
			if _, err := sdk.AccAddressFromBech32(args[0]); err != nil {
				return err
			}
			route := fmt.Sprintf("custom/%s/%s/%s", types.QuerierRoute, keeper.QuerySmartContractState, args[0])
			res, _, err := clientCtx.QueryWithData(route, []byte(args[1]))
			if err != nil {
				return err
			}
			return clientCtx.PrintBytes(res)
		},
	}
	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// GetCmdRawQuery reads a single key directly out of a contract's storage
// namespace, bypassing any contract-defined query logic.
func GetCmdRawQuery() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "raw [contract-addr] [key]",
		Short: "Reads a raw key out of a contract's storage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientQueryContext(cmd)
			if err != nil {
				return err
			}
			if _, err := sdk.AccAddressFromBech32(args[0]); err != nil {
				return err
			}
			route := fmt.Sprintf("custom/%s/%s/%s", types.QuerierRoute, keeper.QueryRawContractState, args[0])
			res, _, err := clientCtx.QueryWithData(route, []byte(args[1]))
			if err != nil {
				return err
			}
			return clientCtx.PrintBytes(res)
		},
	}
	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
