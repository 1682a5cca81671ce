package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"greenbutton/internal/codec"

	"github.com/spf13/cobra"
)

type parseOptions struct {
	format string
	policy string
	output string
}

func newParseCmd(a *app) *cobra.Command {
	var opts parseOptions

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Build the object feed of an Atom document and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, a, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "", "Output format: "+strings.Join(codec.Formats(), ", ")+" (default from config)")
	cmd.Flags().StringVar(&opts.policy, "policy", "", "Missing service kind policy: assume-gas, reject, missing (default from config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write to file instead of stdout")

	return cmd
}

func runParse(cmd *cobra.Command, a *app, path string, opts parseOptions) error {
	svc, err := a.newService(opts.policy)
	if err != nil {
		return err
	}

	res, err := svc.ParseFile(cmd.Context(), path)
	if err != nil {
		return err
	}

	format := opts.format
	if format == "" {
		format = a.cfg.Export.Format
	}
	output := opts.output
	if output == "" {
		output = a.cfg.Export.Path
	}

	export := func(w io.Writer) error {
		return svc.Export(cmd.Context(), res, w, format)
	}
	if output == "" {
		return export(cmd.OutOrStdout())
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}
	return writeAndClose(f, output, export)
}

// writeAndClose runs export against wc and closes it. A close failure is
// reported only when the export itself succeeded.
func writeAndClose(wc io.WriteCloser, name string, export func(io.Writer) error) (err error) {
	defer func() {
		if cerr := wc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", name, cerr)
		}
	}()
	return export(wc)
}
