package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gridart/errors"
	"gridart/importer"
	"gridart/markdown"
	"gridart/render"
)

type markdownOpts struct {
	renderFlags
	write bool // rewrite the file in place
	check bool // fail when a drawing is missing or stale
	list  bool // list the diagram blocks
}

func newMarkdownCmd(g *globalOpts) *cobra.Command {
	var opts markdownOpts

	cmd := &cobra.Command{
		Use:   "markdown <file>",
		Short: "Render the diagram blocks of a Markdown file",
		Long: "Markdown finds ```mermaid and ```gridart blocks and places a rendered\n" +
			"```text gridart block after each one. Drawings whose source has not\n" +
			"changed are left alone.",
		Example: `  gridart markdown README.md --write
  gridart markdown docs/design.md --check`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMarkdown(cmd, g, &opts, args[0])
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "rewrite the file in place")
	cmd.Flags().BoolVar(&opts.check, "check", false, "fail when a drawing is missing or out of date")
	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "list diagram blocks and their status")

	return cmd
}

func runMarkdown(cmd *cobra.Command, g *globalOpts, opts *markdownOpts, path string) error {
	logger := loggerFromContext(cmd.Context())

	content, _, err := readInput(cmd, []string{path})
	if err != nil {
		return err
	}
	scanner := markdown.NewScanner(content)

	if opts.list || opts.check {
		stale := 0
		for i, b := range scanner.FindDiagramBlocks() {
			if !b.Fresh() {
				stale++
			}
			if opts.list {
				fmt.Fprintln(cmd.OutOrStdout(), markdown.FormatBlockInfo(b, i))
			}
		}
		if opts.check && stale > 0 {
			return errors.New(errors.ErrCodeInvalidOutput, "%s: %d diagram blocks need rendering", path, stale)
		}
		return nil
	}

	s, err := loadSettings(cmd, g, &opts.renderFlags)
	if err != nil {
		return err
	}
	reg := importer.NewRegistry()
	r := render.NewRenderer(logger)

	out, n, err := scanner.Annotate(func(b markdown.DiagramBlock) (string, error) {
		d, err := reg.Import(b.Content)
		if err != nil {
			return "", err
		}
		if s.forceDirection {
			d.Direction = ""
		}
		return r.Render(d, s.render)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	logger.Info("rendered diagram blocks", "file", path, "count", n)

	if !opts.write {
		_, err := fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	}
	if n == 0 {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(out), info.Mode().Perm())
}
