// Package cli implements chamadosctl, a terminal client for the chamados API.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// DefaultURL is used when neither --url nor CHAMADOS_API_URL is set.
const DefaultURL = "http://localhost:8080"

type rootOptions struct {
	url    string
	output string
}

func (o *rootOptions) client() *Client {
	return NewClient(o.url)
}

// NewRootCommand builds the chamadosctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "chamadosctl",
		Short: "chamadosctl queries and opens maintenance chamados",
		Long: `chamadosctl is the command-line client for the chamados service.

Common workflows:

  List open critical chamados, newest first:
    chamadosctl search --status Aberto --prioridade Crítica --sort-by abertura --sort-order desc

  Open a new chamado:
    chamadosctl create --titulo "Câmara fria sem refrigerar" --prioridade Crítica \
      --area Refrigeração --equipamento "Câmara 2" --instalacao "CD Norte" \
      --descricao "Temperatura subiu para 8 graus"

  Show the manager dashboard:
    chamadosctl dashboard

Configuration:
  CHAMADOS_API_URL    API endpoint (default: ` + DefaultURL + `)`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.output {
			case "table", "json", "yaml":
				return nil
			default:
				return fmt.Errorf("unknown output format %q (want table, json or yaml)", opts.output)
			}
		},
	}

	defaultURL := DefaultURL
	if env := os.Getenv("CHAMADOS_API_URL"); env != "" {
		defaultURL = env
	}
	root.PersistentFlags().StringVar(&opts.url, "url", defaultURL, "chamados API URL")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "output format: table, json or yaml")

	root.AddCommand(newSearchCommand(opts))
	root.AddCommand(newGetCommand(opts))
	root.AddCommand(newCreateCommand(opts))
	root.AddCommand(newDashboardCommand(opts))
	return root
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCommand().Execute()
}
