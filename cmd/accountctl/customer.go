package main

import (
	"context"

	"github.com/deploymenttheory/go-api-account-client/apiintegrations/accountapi"
	"github.com/spf13/cobra"
)

func newCustomerCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Look up and change customers",
	}
	cmd.AddCommand(newCustomerGetCmd(o), newCustomerSetPackageCmd(o))
	return cmd
}

func newCustomerGetCmd(o *rootOptions) *cobra.Command {
	var byReference bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one customer by cid, or by reference id with --reference",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, func(ctx context.Context, api *accountapi.AccountAPIHandler) (any, error) {
				return api.GetCustomerInfo(ctx, args[0], byReference)
			})
		},
	}
	cmd.Flags().BoolVar(&byReference, "reference", false, "treat <id> as the customer's reference id")
	return cmd
}

func newCustomerSetPackageCmd(o *rootOptions) *cobra.Command {
	var req accountapi.SetCustomerPackageRequest

	cmd := &cobra.Command{
		Use:   "set-package <cid> <package-id>",
		Short: "Move a customer onto a package",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.CustomerID, req.PackageID = args[0], args[1]
			return o.run(cmd, func(ctx context.Context, api *accountapi.AccountAPIHandler) (any, error) {
				return api.SetCustomerPackage(ctx, req)
			})
		},
	}
	flags := cmd.Flags()
	flags.StringSliceVar(&req.AddOnIDs, "add-on", nil, "add-on id (repeatable or comma separated)")
	flags.StringSliceVar(&req.PickPayChannelIDs, "pick-pay", nil, "pick-and-pay channel id (repeatable or comma separated)")
	flags.StringSliceVar(&req.StandaloneChannelIDs, "standalone", nil, "standalone channel id (repeatable or comma separated)")
	return cmd
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}
