package cli

import (
	"github.com/spf13/cobra"
)

func newSearchCommand(opts *rootOptions) *cobra.Command {
	var params SearchParams

	cmd := &cobra.Command{
		Use:   "search [text]",
		Short: "Search, filter, sort and page chamados",
		Long: `Search matches text against titulo, descricao and equipamento (case-insensitive).
Filters combine with AND; values inside one filter combine with OR.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				params.Query = args[0]
			}
			result, err := opts.client().Search(cmd.Context(), params)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, result, func(p *printer) {
				p.chamadoTable(result.Data)
				p.pageFooter(result.Total, result.Page, result.PageSize, len(result.Data))
			})
		},
	}

	cmd.Flags().StringSliceVar(&params.Status, "status", nil, "status filter (repeatable or comma-separated)")
	cmd.Flags().StringSliceVar(&params.Prioridade, "prioridade", nil, "priority filter")
	cmd.Flags().StringSliceVar(&params.Area, "area", nil, "area filter")
	cmd.Flags().StringVar(&params.SortBy, "sort-by", "", "field to sort by, e.g. id, abertura, prioridade")
	cmd.Flags().StringVar(&params.SortOrder, "sort-order", "", "asc or desc")
	cmd.Flags().IntVar(&params.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&params.PageSize, "page-size", 10, "records per page")
	return cmd
}

func newGetCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get [id]",
		Short: "Show one chamado",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chamado, err := opts.client().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, chamado, func(p *printer) {
				p.chamadoDetail(chamado)
			})
		},
	}
}
