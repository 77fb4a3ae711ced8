// Package main is the entry point for chamadosctl.
package main

import (
	"os"

	"github.com/spec-kit/chamados/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
