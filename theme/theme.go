// Package theme maps canvas roles to colours and paints a rendered canvas
// with ANSI escapes through lipgloss.
package theme

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"
	"github.com/muesli/termenv"

	"gridart/canvas"
	"gridart/config"
	"gridart/core"
	"gridart/errors"
)

// Theme assigns a colour to each role. Colours are "#rrggbb" strings or
// ANSI colour numbers; an empty colour leaves the role unstyled.
type Theme struct {
	colors map[core.Role]string
}

// Default returns the built-in theme.
func Default() *Theme {
	return &Theme{colors: map[core.Role]string{
		core.RoleNodeBorder:     "#4682b4", // steelblue
		core.RoleEdgeLine:       "#808080",
		core.RoleEdgeCorner:     "#808080",
		core.RoleArrowHead:      "#ffa500",
		core.RoleEdgeLabel:      "#ffd700",
		core.RoleSubgraphBorder: "#708090",
		core.RoleSubgraphLabel:  "#778899",
	}}
}

// New returns the default theme overridden by colors, which maps role names
// such as "edge_line" to colour names, hex strings or ANSI numbers.
func New(colors map[string]string) (*Theme, error) {
	t := Default()
	for name, value := range colors {
		role, ok := core.ParseRole(name)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "theme: unknown role %q", name)
		}
		c, ok := ResolveColor(value)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "theme: %s: unknown colour %q", name, value)
		}
		t.colors[role] = c
	}
	return t, nil
}

// Color returns the colour assigned to r, or "".
func (t *Theme) Color(r core.Role) string {
	return t.colors[r]
}

// ResolveColor normalizes a colour. ANSI numbers pass through, names and
// hex strings are looked up in tcell's colour table and returned as
// "#rrggbb". "none" and "" resolve to no colour.
func ResolveColor(s string) (string, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "none" {
		return "", true
	}
	if n, err := strconv.Atoi(s); err == nil {
		return s, n >= 0 && n <= 255
	}
	c := tcell.GetColor(s)
	if c == tcell.ColorDefault || !c.Valid() {
		return "", false
	}
	return fmt.Sprintf("#%06x", c.Hex()), true
}

// ProfileFor returns the colour profile for a colour mode. Auto mode
// inspects out and the environment.
func ProfileFor(mode string, out io.Writer) termenv.Profile {
	switch mode {
	case config.ColorANSI:
		return termenv.ANSI
	case config.ColorANSI256:
		return termenv.ANSI256
	case config.ColorTrueColor:
		return termenv.TrueColor
	case config.ColorAuto:
		if out == nil {
			return termenv.Ascii
		}
		return termenv.NewOutput(out).EnvColorProfile()
	default:
		return termenv.Ascii
	}
}

// Painter colours canvases for one profile.
type Painter struct {
	plain  bool
	styles map[core.Role]lipgloss.Style
}

// NewPainter builds the per-role styles of t for profile.
func NewPainter(t *Theme, profile termenv.Profile) *Painter {
	p := &Painter{plain: profile == termenv.Ascii, styles: map[core.Role]lipgloss.Style{}}
	if p.plain {
		return p
	}

	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)
	for _, role := range core.Roles() {
		if c := t.Color(role); c != "" {
			p.styles[role] = r.NewStyle().Foreground(lipgloss.Color(c))
		}
	}
	return p
}

// Paint serializes c like Canvas.String, wrapping each run of cells that
// share a styled role in that role's colour.
func (p *Painter) Paint(c *canvas.Canvas) string {
	if p.plain {
		return c.String()
	}

	var sb strings.Builder
	for y := 0; y <= c.MaxY(); y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		var run strings.Builder
		current := core.RoleNone
		flush := func() {
			if style, ok := p.styles[current]; ok {
				sb.WriteString(style.Render(run.String()))
			} else {
				sb.WriteString(run.String())
			}
			run.Reset()
		}
		for x := 0; x <= c.MaxX(); x++ {
			r := c.Get(x, y)
			if r == '\x00' {
				continue
			}
			role := c.Role(x, y)
			if r == ' ' {
				role = core.RoleNone
			}
			if role != current {
				flush()
				current = role
			}
			run.WriteRune(r)
		}
		flush()
	}
	return sb.String()
}
