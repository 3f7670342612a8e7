package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "formbuilder",
		Short:         "FHIR questionnaire export and GDT mapping service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(gdtCmd())
	return rootCmd
}
