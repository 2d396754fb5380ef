package core

import "testing"

func TestDirectionValues(t *testing.T) {
	if Up.X != 1 || Up.Y != 0 {
		t.Errorf("Up = %v, want (1,0)", Up)
	}
	if Middle.X != 1 || Middle.Y != 1 {
		t.Errorf("Middle = %v, want (1,1)", Middle)
	}
}

func TestDirectionOpposite(t *testing.T) {
	tests := []struct {
		dir  Direction
		want Direction
	}{
		{Up, Down},
		{Down, Up},
		{Left, Right},
		{Right, Left},
		{UpperLeft, LowerRight},
		{UpperRight, LowerLeft},
		{LowerLeft, UpperRight},
		{LowerRight, UpperLeft},
		{Middle, Middle},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			if got := tt.dir.Opposite(); got != tt.want {
				t.Errorf("Opposite() = %v, want %v", got, tt.want)
			}
			if got := tt.dir.Opposite().Opposite(); got != tt.dir {
				t.Errorf("Opposite twice = %v, want %v", got, tt.dir)
			}
		})
	}
}

func TestDirectionBetween(t *testing.T) {
	tests := []struct {
		name     string
		from, to GridCoord
		want     Direction
	}{
		{"same", GridCoord{2, 2}, GridCoord{2, 2}, Middle},
		{"down", GridCoord{1, 1}, GridCoord{1, 5}, Down},
		{"up", GridCoord{1, 5}, GridCoord{1, 1}, Up},
		{"right", GridCoord{1, 1}, GridCoord{4, 1}, Right},
		{"left", GridCoord{4, 1}, GridCoord{1, 1}, Left},
		{"lower right", GridCoord{0, 0}, GridCoord{3, 3}, LowerRight},
		{"upper right", GridCoord{0, 3}, GridCoord{3, 0}, UpperRight},
		{"lower left", GridCoord{3, 0}, GridCoord{0, 3}, LowerLeft},
		{"upper left", GridCoord{3, 3}, GridCoord{0, 0}, UpperLeft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GridDirection(tt.from, tt.to); got != tt.want {
				t.Errorf("GridDirection(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestGridCoordOffset(t *testing.T) {
	c := GridCoord{4, 8}
	if got := c.Offset(Down); got != (GridCoord{5, 10}) {
		t.Errorf("Offset(Down) = %v, want (5,10)", got)
	}
	if got := c.Offset(UpperLeft); got != c {
		t.Errorf("Offset(UpperLeft) = %v, want %v", got, c)
	}
}

func TestRoleIsText(t *testing.T) {
	text := map[Role]bool{
		RoleNodeText:      true,
		RoleEdgeLabel:     true,
		RoleSubgraphLabel: true,
	}
	for r := RoleNone; r <= RoleSubgraphLabel; r++ {
		if got := r.IsText(); got != text[r] {
			t.Errorf("%s.IsText() = %v, want %v", r, got, text[r])
		}
	}
}

func TestParseRole(t *testing.T) {
	for _, r := range Roles() {
		got, ok := ParseRole(r.String())
		if !ok || got != r {
			t.Errorf("ParseRole(%q) = %v, %v; want %v, true", r.String(), got, ok, r)
		}
	}
	if _, ok := ParseRole("background"); ok {
		t.Error("ParseRole(background) succeeded")
	}
}
