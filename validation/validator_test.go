package validation

import (
	"strings"
	"testing"
)

func TestLineValidator(t *testing.T) {
	tests := []struct {
		name    string
		diagram string
		wantErr string // empty means valid
	}{
		{"horizontal line", "─────", ""},
		{"vertical line", "│\n│\n│", ""},
		{"broken horizontal line", "──│──", "Horizontal line cannot connect"},
		{"broken vertical line", "│\n─\n│", "Vertical line cannot connect"},
		{"box", "┌───┐\n│   │\n└───┘", ""},
		{"rounded box", "╭───╮\n│ A │\n╰───╯", ""},
		{"dangling corner", "┌\n │", "Top-left corner has nothing to connect to"},
		{"mismatched corner", "─┘\n│ ", "Bottom-right corner has nothing to connect to on the north"},
		{"cross", " │ \n─┼─\n │ ", ""},
		{"tee right", " │ \n ├─\n │ ", ""},
		{"tee right missing arm", " │ \n ├ \n │ ", "Tee-right has nothing to connect to on the east"},
		{"tee down", "─┬─\n │ ", ""},
		{"right arrow", "──►", ""},
		{"down arrow", "│\n▼", ""},
		{"lonely arrow", "  ▶", "Right arrow has nothing to connect to"},
		{"arrow on wrong line", "▲\n─", "Up arrow cannot connect to ─ on the south"},
		{"label on line", "──yes──", ""},
		{"ascii box", "+---+\n|   |\n+---+", ""},
		{"diamond", "╱───╲\n│   │\n< A >\n│   │\n╲───╱", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := NewLineValidator().Validate(tt.diagram)
			if tt.wantErr == "" {
				if len(errs) > 0 {
					t.Errorf("unexpected errors: %v", errs)
				}
				return
			}
			found := false
			for _, err := range errs {
				if strings.Contains(err.Message, tt.wantErr) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, errs)
			}
		})
	}
}

func TestLineValidator_RenderedDiagram(t *testing.T) {
	diagram := `
┌─────┐     ┌─────┐
│  A  ├────►│  B  │
└──┬──┘     └──┬──┘
   │           │
   │           │
   ▼           ▼
┌─────┐     ┌─────┐
│  C  │     │  D  │
└─────┘     └─────┘
`
	v := NewLineValidator()
	if errs := v.Validate(strings.Trim(diagram, "\n")); len(errs) > 0 {
		for _, err := range errs {
			t.Errorf("unexpected error: %s", err)
		}
	}
}

func TestLineValidator_StrictMode(t *testing.T) {
	diagram := "┌─┐\n└─┘\n ──"

	v := NewLineValidator()
	if errs := v.Validate(diagram); len(errs) > 0 {
		t.Errorf("normal mode: unexpected errors: %v", errs)
	}

	v.SetStrictMode(true)
	errs := v.Validate(diagram)
	if len(errs) == 0 {
		t.Fatal("strict mode: expected errors for loose line ends")
	}
	for _, err := range errs {
		if err.Y != 2 {
			t.Errorf("strict mode flagged the closed box: %s", err)
		}
	}
}

func TestCheckASCII(t *testing.T) {
	if errs := CheckASCII("+--+\n|AB|\n+--+"); len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
	errs := CheckASCII("+-┐\n| |")
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs))
	}
	if errs[0].X != 2 || errs[0].Y != 0 || errs[0].Char != '┐' {
		t.Errorf("error = %s, want (2,0) '┐'", errs[0])
	}
}

func TestValidationErrorString(t *testing.T) {
	e := ValidationError{X: 1, Y: 2, Char: '─', Context: "east=│", Message: "broken"}
	if got, want := e.String(), "(1,2) '─' [east=│]: broken"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
