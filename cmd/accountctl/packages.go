package main

import (
	"context"

	"github.com/deploymenttheory/go-api-account-client/apiintegrations/accountapi"
	"github.com/spf13/cobra"
)

func newPackagesCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "packages",
		Short: "Browse the package catalogue",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List every package",
			Args:  exactArgs(0),
			RunE: func(cmd *cobra.Command, _ []string) error {
				return o.run(cmd, func(ctx context.Context, api *accountapi.AccountAPIHandler) (any, error) {
					return api.GetAllPackages(ctx)
				})
			},
		},
		&cobra.Command{
			Use:   "channels <package-id>",
			Short: "List the channels of a package",
			Args:  exactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return o.run(cmd, func(ctx context.Context, api *accountapi.AccountAPIHandler) (any, error) {
					return api.GetPackageChannels(ctx, args[0])
				})
			},
		},
	)
	return cmd
}
