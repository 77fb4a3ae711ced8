package cli

import (
	"github.com/spf13/cobra"

	"github.com/spec-kit/chamados/internal/api/dto"
	"github.com/spec-kit/chamados/internal/domain"
)

func newCreateCommand(opts *rootOptions) *cobra.Command {
	var (
		req         dto.CreateChamadoRequest
		status      string
		prioridade  string
		area        string
		responsavel string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a new chamado",
		Long:  `Open a new chamado. The server assigns the id and timestamps; status defaults to Aberto.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Status = domain.ChamadoStatus(status)
			req.Prioridade = domain.ChamadoPrioridade(prioridade)
			req.Area = domain.ChamadoArea(area)
			if cmd.Flags().Changed("responsavel") {
				req.Responsavel = &responsavel
			}
			chamado, err := opts.client().Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, chamado, func(p *printer) {
				p.success("Chamado %s criado", chamado.ID)
				p.chamadoDetail(chamado)
			})
		},
	}

	cmd.Flags().StringVar(&req.Titulo, "titulo", "", "title (min 5 characters)")
	cmd.Flags().StringVar(&status, "status", "", "initial status (default Aberto)")
	cmd.Flags().StringVar(&prioridade, "prioridade", "", "priority: Crítica, Alta, Média or Baixa")
	cmd.Flags().StringVar(&area, "area", "", "area: Refrigeração, Energia, Ar-condicionado or Água")
	cmd.Flags().StringVar(&req.Equipamento, "equipamento", "", "equipment (min 3 characters)")
	cmd.Flags().StringVar(&req.Instalacao, "instalacao", "", "site (min 3 characters)")
	cmd.Flags().StringVar(&req.Descricao, "descricao", "", "description (min 10 characters)")
	cmd.Flags().StringVar(&responsavel, "responsavel", "", "assignee")
	_ = cmd.MarkFlagRequired("titulo")
	_ = cmd.MarkFlagRequired("prioridade")
	_ = cmd.MarkFlagRequired("area")
	return cmd
}
