package main

import (
	"fmt"
	"strings"

	"github.com/michaelpawlus/990-beacon/internal/cli"
	"github.com/michaelpawlus/990-beacon/internal/common"
	"github.com/spf13/cobra"
)

func orgCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "org <id>",
		Short: "Show an organization's financial profile",
		Long: `Show the profile of one organization: identity, mission, the latest
financial overview, year-over-year trends, computed metrics, people and grants.

The ID is the one shown in the last column of search results.`,
		Args: cobra.ExactArgs(1),
		RunE: runOrg,
	}
	cmd.Flags().Bool("json", false, "print JSON")
	return cmd
}

func runOrg(cmd *cobra.Command, args []string) error {
	id := strings.TrimSpace(args[0])
	if id == "" {
		return fmt.Errorf("%w: organization ID is required", common.ErrInvalidArgument)
	}

	client, err := newClient(cmd.Context(), appConfig)
	if err != nil {
		return err
	}

	profile, err := client.Organization(cmd.Context(), id)
	if err != nil {
		return notFound(err, "Organization")
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return cli.WriteJSON(cmd.OutOrStdout(), profile)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderOrganization(profile))
	return err
}

func suggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest <query>",
		Short: "Show typeahead suggestions for a partial name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := strings.TrimSpace(strings.Join(args, " "))
			if len([]rune(q)) < 2 {
				return fmt.Errorf("%w: suggestions need at least 2 characters", common.ErrInvalidArgument)
			}

			client, err := newClient(cmd.Context(), appConfig)
			if err != nil {
				return err
			}
			results, err := client.Typeahead(cmd.Context(), q)
			if err != nil {
				return common.Explain(err)
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return cli.WriteJSON(cmd.OutOrStdout(), results)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderSuggestions(results))
			return err
		},
	}
	cmd.Flags().Bool("json", false, "print JSON")
	return cmd
}
