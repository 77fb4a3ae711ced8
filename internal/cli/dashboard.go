package cli

import (
	"github.com/spf13/cobra"
)

func newDashboardCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show chamado totals per status, area and priority",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dashboard, err := opts.client().Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, dashboard, func(p *printer) {
				p.dashboard(dashboard)
			})
		},
	}
}
