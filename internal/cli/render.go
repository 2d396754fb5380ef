package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"gridart/config"
	"gridart/errors"
	"gridart/render"
	"gridart/theme"
	"gridart/validation"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	renderFlags
	output      string // output file, stdout when empty
	inputFormat string // mermaid, json, yaml or auto
	validate    bool   // check the drawing's line connectivity
	strict      bool   // also reject straight lines that end in space
}

func newRenderCmd(g *globalOpts) *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a diagram as text",
		Long: `Render reads a Mermaid flowchart, JSON or YAML diagram document from a file or
standard input and draws it on a character grid.`,
		Example: `  gridart render flow.mmd
  echo 'graph LR; A --> B' | gridart render --ascii
  gridart render doc.yaml --color auto --validate`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, g, &opts, args)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.inputFormat, "input-format", "f", "", "input format: mermaid, json, yaml (detected when empty)")
	cmd.Flags().BoolVar(&opts.validate, "validate", false, "fail when the drawing has disconnected lines")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "with --validate, also reject lines ending in space")

	return cmd
}

func runRender(cmd *cobra.Command, g *globalOpts, opts *renderOpts, args []string) error {
	logger := loggerFromContext(cmd.Context())

	s, err := loadSettings(cmd, g, &opts.renderFlags)
	if err != nil {
		return err
	}
	d, err := loadDiagram(cmd, args, opts.inputFormat)
	if err != nil {
		return err
	}
	if s.forceDirection {
		d.Direction = ""
	}

	p := newProgress(logger)
	c, err := render.NewRenderer(logger).RenderCanvas(d, s.render)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Rendered %d nodes and %d edges", len(d.Nodes), len(d.Edges)))

	if c == nil {
		logger.Warn("diagram has no nodes")
		return writeOutput(cmd, opts.output, "")
	}

	plain := c.String()
	if opts.validate {
		if err := checkOutput(logger, plain, s.render, opts.strict); err != nil {
			return err
		}
	}

	out := plain
	if s.render.ColorMode != config.ColorNone {
		profile := theme.ProfileFor(s.render.ColorMode, cmd.OutOrStdout())
		out = theme.NewPainter(s.theme, profile).Paint(c)
	}
	return writeOutput(cmd, opts.output, out)
}

// checkOutput validates a drawing, logging each issue as a warning.
func checkOutput(logger *log.Logger, out string, cfg config.Render, strict bool) error {
	v := validation.NewLineValidator()
	v.SetStrictMode(strict)
	issues := v.Validate(out)
	if cfg.UseASCII {
		issues = append(issues, validation.CheckASCII(out)...)
	}
	for _, issue := range issues {
		logger.Warn("validation issue", "issue", issue.String())
	}
	if len(issues) > 0 {
		return errors.New(errors.ErrCodeInvalidOutput, "drawing has %d validation issues", len(issues))
	}
	logger.Debug("drawing validated", "strict", strict)
	return nil
}
