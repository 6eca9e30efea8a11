package main

import (
	"context"
	"fmt"

	"github.com/michaelpawlus/990-beacon/internal/api"
	"github.com/michaelpawlus/990-beacon/internal/cli"
	"github.com/michaelpawlus/990-beacon/internal/common"
	"github.com/spf13/cobra"
)

// accountCmd builds a command that fetches one value and prints it either as
// JSON or through render.
func accountCmd[T any](use, short string, fetch func(*api.Client, context.Context) (T, error), render func(T) string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(cmd.Context(), appConfig)
			if err != nil {
				return err
			}
			v, err := fetch(client, cmd.Context())
			if err != nil {
				return common.Explain(err)
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return cli.WriteJSON(cmd.OutOrStdout(), v)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), render(v))
			return err
		},
	}
	cmd.Flags().Bool("json", false, "print JSON")
	return cmd
}

func usageCmd() *cobra.Command {
	return accountCmd("usage", "Show your search and profile view counts", (*api.Client).UsageSummary, cli.RenderUsage)
}

func whoamiCmd() *cobra.Command {
	return accountCmd("whoami", "Show the signed-in account", (*api.Client).Me, cli.RenderUser)
}

func healthCmd() *cobra.Command {
	return accountCmd("health", "Check that the API and its database are up", (*api.Client).Health, cli.RenderHealth)
}
