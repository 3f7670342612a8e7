package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/ehr/formbuilder/internal/platform/gdt"
)

func gdtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gdt",
		Short: "Inspect the GDT field registry",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all GDT field codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeMappings(cmd.OutOrStdout(), gdt.All())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "search <term>",
		Short: "Search GDT fields by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeMappings(cmd.OutOrStdout(), gdt.SearchByName(args[0]))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <code>",
		Short: "Show one GDT field as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, ok := gdt.GetMapping(args[0])
			if !ok {
				return fmt.Errorf("GDT code %s not found", args[0])
			}
			out, err := json.MarshalIndent(m, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "var <code>",
		Short: "Print the placeholder variable for a GDT code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, ok := gdt.CodeToVariable(args[0])
			if !ok {
				return fmt.Errorf("GDT code %s not found", args[0])
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), v)
			return err
		},
	})

	return cmd
}

func writeMappings(w io.Writer, mappings []gdt.Mapping) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tBEZEICHNUNG\tLEN\tTYPE")
	for _, m := range mappings {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", m.Code, m.Bezeichnung, m.Length, m.Type)
	}
	return tw.Flush()
}
