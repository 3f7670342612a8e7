package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ehr/formbuilder/internal/config"
	"github.com/ehr/formbuilder/internal/domain/formbuilder"
	"github.com/ehr/formbuilder/internal/platform/fhir"
)

type exportOptions struct {
	in       string
	out      string
	format   string
	enhanced bool
}

func exportCmd() *cobra.Command {
	opts := &exportOptions{}
	cmd := &cobra.Command{
		Use:       "export questionnaire|response|bundle",
		Short:     "Export a form document as FHIR JSON or XML",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"questionnaire", "response", "bundle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger := newLogger(cfg, cmd.ErrOrStderr())
			svc := newService(cfg, logger)
			return runExport(cmd.Context(), svc, args[0], opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.in, "in", "-", "form document to read, - for stdin")
	cmd.Flags().StringVar(&opts.out, "out", "", "file to write, stdout when empty")
	cmd.Flags().StringVar(&opts.format, "format", "json", "output format: json or xml")
	cmd.Flags().BoolVar(&opts.enhanced, "enhanced", false, "embed questionnaire item metadata in response XML")
	return cmd
}

func runExport(ctx context.Context, svc *formbuilder.Service, kindArg string, opts *exportOptions, stdin io.Reader, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	kind, err := formbuilder.ParseExportKind(kindArg)
	if err != nil {
		return err
	}
	format, ok := fhir.ParseFormat(opts.format)
	if !ok {
		return fmt.Errorf("unsupported format %q", opts.format)
	}

	data, err := readInput(opts.in, stdin)
	if err != nil {
		return err
	}
	doc, err := formbuilder.DecodeDocument(data)
	if err != nil {
		return err
	}

	body, err := svc.Render(ctx, kind, doc, format, opts.enhanced)
	if err != nil {
		return err
	}
	body = append(body, '\n')

	if opts.out == "" {
		_, err = stdout.Write(body)
		return err
	}
	if err := os.WriteFile(opts.out, body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.out, err)
	}
	return nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
