package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"gridart/export"
	"gridart/render"
)

type convertOpts struct {
	renderFlags
	output      string
	inputFormat string
	to          string
}

func newConvertCmd(g *globalOpts) *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a diagram between formats",
		Example: `  gridart convert flow.mmd --to yaml
  gridart convert doc.json --to mermaid -o flow.mmd`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, g, &opts, args)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.inputFormat, "input-format", "f", "", "input format: mermaid, json, yaml (detected when empty)")
	cmd.Flags().StringVarP(&opts.to, "to", "t", string(export.FormatJSON), "output format: text, mermaid, json, yaml")

	return cmd
}

func runConvert(cmd *cobra.Command, g *globalOpts, opts *convertOpts, args []string) error {
	logger := loggerFromContext(cmd.Context())

	format, err := export.ParseFormat(opts.to)
	if err != nil {
		return err
	}
	s, err := loadSettings(cmd, g, &opts.renderFlags)
	if err != nil {
		return err
	}
	d, err := loadDiagram(cmd, args, opts.inputFormat)
	if err != nil {
		return err
	}
	if s.forceDirection {
		d.Direction = s.render.Direction
	}

	var e export.Exporter
	if format == export.FormatText {
		e = export.NewTextExporter(render.NewRenderer(logger), &s.render)
	} else if e, err = export.NewExporter(format); err != nil {
		return err
	}

	out, err := e.Export(d)
	if err != nil {
		return err
	}
	logger.Debug("converted diagram", "to", e.FormatName(), "nodes", len(d.Nodes))
	return writeOutput(cmd, opts.output, strings.TrimRight(out, "\n"))
}
