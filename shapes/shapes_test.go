package shapes

import (
	"strings"
	"testing"

	"gridart/core"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		tag  string
		want Kind
	}{
		{"rectangle", Rectangle},
		{"Diamond", Diamond},
		{" cylinder ", Cylinder},
		{"db", Cylinder},
		{"decision", Diamond},
		{"", Rectangle},
		{"trapezoid", Rectangle},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if got := ParseKind(tt.tag); got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}
}

func TestKindStringRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		if got := ParseKind(k.String()); got != k {
			t.Errorf("ParseKind(%q) = %v, want %v", k.String(), got, k)
		}
	}
	if got := Kind(99).String(); got != "rectangle" {
		t.Errorf("Kind(99).String() = %q, want rectangle", got)
	}
}

func TestLookupFallsBack(t *testing.T) {
	if Lookup(Kind(-1)) != Lookup(Rectangle) {
		t.Error("Lookup(-1) did not fall back to the rectangle renderer")
	}
}

func TestRectangleSize(t *testing.T) {
	d := Lookup(Rectangle).Size("A", 1)
	if d.Columns != [3]int{1, 3, 1} {
		t.Errorf("Columns = %v, want [1 3 1]", d.Columns)
	}
	if d.Rows != [3]int{1, 3, 1} {
		t.Errorf("Rows = %v, want [1 3 1]", d.Rows)
	}
	if d.Width != 5 || d.Height != 5 || d.LabelArea != 1 {
		t.Errorf("Size = %dx%d label %d, want 5x5 label 1", d.Width, d.Height, d.LabelArea)
	}

	wide := Lookup(Rectangle).Size("日本", 1)
	if wide.LabelArea != 4 {
		t.Errorf("wide LabelArea = %d, want 4", wide.LabelArea)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		style Style
		want  []string
	}{
		{
			name: "rectangle",
			kind: Rectangle,
			want: []string{
				"┌───┐",
				"│   │",
				"│ A │",
				"│   │",
				"└───┘",
			},
		},
		{
			name:  "rectangle ascii",
			kind:  Rectangle,
			style: Style{UseASCII: true},
			want: []string{
				"+---+",
				"|   |",
				"| A |",
				"|   |",
				"+---+",
			},
		},
		{
			name:  "rectangle double border",
			kind:  Rectangle,
			style: Style{Border: "double"},
			want: []string{
				"╔═══╗",
				"║   ║",
				"║ A ║",
				"║   ║",
				"╚═══╝",
			},
		},
		{
			name: "diamond",
			kind: Diamond,
			want: []string{
				"╱─────╲",
				"│     │",
				"<  A  >",
				"│     │",
				"╲─────╱",
			},
		},
		{
			name: "cylinder",
			kind: Cylinder,
			want: []string{
				"╭───╮",
				"├───┤",
				"│ A │",
				"│   │",
				"╰───╯",
			},
		},
		{
			name: "subroutine",
			kind: Subroutine,
			want: []string{
				"┌─────┐",
				"││   ││",
				"││ A ││",
				"││   ││",
				"└─────┘",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Lookup(tt.kind)
			c, _ := r.Render("A", r.Size("A", 1), tt.style)
			want := strings.Join(tt.want, "\n")
			if got := c.String(); got != want {
				t.Errorf("Render:\n%s\nwant:\n%s", got, want)
			}
		})
	}
}

func TestRenderRoles(t *testing.T) {
	r := Lookup(Rectangle)
	c, _ := r.Render("A", r.Size("A", 1), Style{})
	if got := c.Role(0, 0); got != core.RoleNodeBorder {
		t.Errorf("Role(0,0) = %v, want %v", got, core.RoleNodeBorder)
	}
	if got := c.Role(2, 2); got != core.RoleNodeText {
		t.Errorf("Role(2,2) = %v, want %v", got, core.RoleNodeText)
	}
}

func TestAttach(t *testing.T) {
	r := Lookup(Rectangle)
	_, attach := r.Render("A", r.Size("A", 1), Style{})

	tests := []struct {
		dir  core.Direction
		want core.DrawingCoord
	}{
		{core.Up, core.DrawingCoord{X: 2, Y: 0}},
		{core.Down, core.DrawingCoord{X: 2, Y: 4}},
		{core.Left, core.DrawingCoord{X: 0, Y: 2}},
		{core.Right, core.DrawingCoord{X: 4, Y: 2}},
		{core.LowerRight, core.DrawingCoord{X: 4, Y: 4}},
		{core.Middle, core.DrawingCoord{X: 2, Y: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			if got := attach(tt.dir); got != tt.want {
				t.Errorf("attach(%v) = %v, want %v", tt.dir, got, tt.want)
			}
		})
	}
}
