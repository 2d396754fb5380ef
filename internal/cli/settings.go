package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gridart/config"
	"gridart/theme"
)

// lookupEnv reads GRIDART_* overrides. Tests replace it.
var lookupEnv = os.LookupEnv

// renderFlags are the render settings a command can override.
type renderFlags struct {
	ascii     bool
	direction string
	color     string
	paddingX  int
	paddingY  int
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.ascii, "ascii", false, "draw with plain ASCII characters")
	cmd.Flags().StringVarP(&f.direction, "direction", "d", "", "flow direction: TD, LR or BT (overrides the diagram)")
	cmd.Flags().StringVar(&f.color, "color", "", "colour mode: none, auto, ansi, ansi256, truecolor")
	cmd.Flags().IntVar(&f.paddingX, "padding-x", config.DefaultPaddingX, "columns between nodes")
	cmd.Flags().IntVar(&f.paddingY, "padding-y", config.DefaultPaddingY, "rows between nodes")
}

// settings is the resolved configuration of one command run.
type settings struct {
	render config.Render
	theme  *theme.Theme
	// forceDirection is set when --direction was given, so the flag wins
	// over the diagram's own direction.
	forceDirection bool
}

// loadSettings layers the defaults, the config file, the environment and
// the flags that were set on cmd.
func loadSettings(cmd *cobra.Command, g *globalOpts, f *renderFlags) (settings, error) {
	file := config.Default()
	if g.configPath != "" {
		var err error
		if file, err = config.Load(g.configPath); err != nil {
			return settings{}, err
		}
	}

	r, err := file.Render.ApplyEnv(lookupEnv)
	if err != nil {
		return settings{}, err
	}

	var s settings
	flags := cmd.Flags()
	if flags.Changed("ascii") {
		r.UseASCII = f.ascii
	}
	if flags.Changed("direction") {
		r.Direction = strings.ToUpper(f.direction)
		s.forceDirection = true
	}
	if flags.Changed("color") {
		r.ColorMode = strings.ToLower(f.color)
	}
	if flags.Changed("padding-x") {
		r.PaddingX = f.paddingX
	}
	if flags.Changed("padding-y") {
		r.PaddingY = f.paddingY
	}
	if err := r.Validate(); err != nil {
		return settings{}, err
	}

	t, err := theme.New(file.Theme)
	if err != nil {
		return settings{}, err
	}
	s.render, s.theme = r, t

	loggerFromContext(cmd.Context()).Debug("settings resolved",
		"config", g.configPath,
		"ascii", r.UseASCII,
		"direction", r.Direction,
		"color", r.ColorMode,
		"padding_x", r.PaddingX,
		"padding_y", r.PaddingY)
	return s, nil
}
