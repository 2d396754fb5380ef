package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev" // semantic version, set at build time
	commit  string  // git commit SHA
	date    string  // build timestamp
)

// SetVersion sets the version information displayed by --version. The main
// package calls it with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// globalOpts holds the persistent flags shared by every command.
type globalOpts struct {
	verbose    bool
	configPath string
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	var g globalOpts

	root := &cobra.Command{
		Use:          "gridart",
		Short:        "gridart draws flowcharts as ASCII or Unicode text",
		Long:         `gridart lays out flowcharts described in Mermaid, JSON or YAML on a character grid and draws them with box-drawing characters or plain ASCII.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.WarnLevel
			if g.verbose {
				level = log.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("gridart %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "TOML configuration file")

	root.AddCommand(newRenderCmd(&g))
	root.AddCommand(newConvertCmd(&g))
	root.AddCommand(newMarkdownCmd(&g))
	root.AddCommand(newShapesCmd(&g))

	return root
}

// Execute runs the gridart CLI.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
