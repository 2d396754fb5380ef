package canvas

// BoxStyle defines the characters used to draw a rectangular outline.
type BoxStyle struct {
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	Horizontal  rune
	Vertical    rune
}

// Named box styles, listed in field order. Node shapes and subgraph
// borders pick from these.
var (
	SharpBox   = BoxStyle{'┌', '┐', '└', '┘', '─', '│'}
	RoundedBox = BoxStyle{'╭', '╮', '╰', '╯', '─', '│'}
	DoubleBox  = BoxStyle{'╔', '╗', '╚', '╝', '═', '║'}
	ThickBox   = BoxStyle{'┏', '┓', '┗', '┛', '━', '┃'}
	ASCIIBox   = BoxStyle{'+', '+', '+', '+', '-', '|'}
)

// BoxStyles maps border style names to box styles.
var BoxStyles = map[string]BoxStyle{
	"sharp":   SharpBox,
	"rounded": RoundedBox,
	"double":  DoubleBox,
	"thick":   ThickBox,
	"ascii":   ASCIIBox,
}

// LookupBoxStyle returns the named style. ASCII output always gets ASCIIBox,
// and unknown names fall back to SharpBox.
func LookupBoxStyle(name string, useASCII bool) BoxStyle {
	if useASCII {
		return ASCIIBox
	}
	if style, ok := BoxStyles[name]; ok {
		return style
	}
	return SharpBox
}
