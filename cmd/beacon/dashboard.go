package main

import (
	"github.com/michaelpawlus/990-beacon/internal/common"
	"github.com/michaelpawlus/990-beacon/internal/tui"
	"github.com/spf13/cobra"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive dashboard",
		Long: `Open the interactive terminal client.

The dashboard shows your account, usage and API health. Press / to search
organizations; results open a full financial profile.`,
		Annotations: map[string]string{interactiveAnnotation: "true"},
		RunE:        runDashboard,
	}
	dashboardFlags(cmd)
	return cmd
}

func dashboardFlags(cmd *cobra.Command) {
	cmd.Flags().String("search", "", "start on the search screen with this query")
	cmd.Flags().String("org", "", "start on the profile of this organization ID")
	cmd.Flags().Bool("no-mouse", false, "disable mouse support on the search screen")
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, err := newClient(ctx, appConfig)
	if err != nil {
		return err
	}

	query, _ := cmd.Flags().GetString("search")
	orgID, _ := cmd.Flags().GetString("org")
	noMouse, _ := cmd.Flags().GetBool("no-mouse")

	opts := []tui.Option{
		tui.WithBackend(client),
		tui.WithPageSize(appConfig.Search.PageSize),
		tui.WithDebounce(appConfig.Search.Debounce),
		tui.WithMouse(appConfig.Search.Mouse && !noMouse),
	}
	switch {
	case orgID != "":
		opts = append(opts, tui.WithStartOrganization(orgID))
	case query != "":
		opts = append(opts, tui.WithStartSearch(query))
	}

	if err := tui.Run(ctx, opts...); err != nil {
		return common.Explain(err)
	}
	return nil
}
