package render

import (
	"sort"

	"github.com/mattn/go-runewidth"

	"gridart/canvas"
	"gridart/core"
	"gridart/layout"
)

// boxedSubgraphs returns the subgraphs with a border, outermost first.
func boxedSubgraphs(g *layout.Graph) []*layout.Subgraph {
	var boxed []*layout.Subgraph
	for _, sg := range g.Subgraphs {
		if sg.HasBox() {
			boxed = append(boxed, sg)
		}
	}
	sort.SliceStable(boxed, func(i, j int) bool {
		return boxed[i].Depth < boxed[j].Depth
	})
	return boxed
}

// subgraphBorders draws every subgraph border on one layer. Inner borders
// overwrite outer ones where they touch.
func subgraphBorders(g *layout.Graph) *canvas.Canvas {
	c := g.Canvas.Blank()
	style := canvas.LookupBoxStyle("sharp", g.Config.UseASCII)
	for _, sg := range boxedSubgraphs(g) {
		c.DrawBox(sg.MinX, sg.MinY, sg.MaxX, sg.MaxY, style, core.RoleSubgraphBorder)
	}
	return c
}

// subgraphLabelRows is how many rows below the top border a label may
// move down to stay clear of edges.
const subgraphLabelRows = 2

// subgraphLabels places each label inside the top of its border on cells
// that are still blank in drawn, so edges entering the subgraph stay
// visible. The centred spot on the first row is preferred, then the
// nearest free spot, then the second row. With no free spot the label is
// centred on the first row and skips the cells already drawn.
func subgraphLabels(g *layout.Graph, drawn *canvas.Canvas) *canvas.Canvas {
	c := g.Canvas.Blank()
	free := func(x, y, width int) bool {
		for i := 0; i < width; i++ {
			if drawn.Get(x+i, y) != ' ' || c.Get(x+i, y) != ' ' {
				return false
			}
		}
		return true
	}

	for _, sg := range boxedSubgraphs(g) {
		if sg.Label == "" {
			continue
		}
		width := runewidth.StringWidth(sg.Label)
		lo, hi := sg.MinX+1, sg.MaxX-width
		centre := max(sg.MinX+(sg.MaxX-sg.MinX+1-width)/2, lo)

		if x, y, ok := labelSpot(sg, centre, lo, hi, width, free); ok {
			c.DrawText(x, y, sg.Label, core.RoleSubgraphLabel)
			continue
		}
		x, y := centre, sg.MinY+1
		for _, r := range sg.Label {
			w := runewidth.RuneWidth(r)
			if w > 0 && free(x, y, w) {
				c.DrawText(x, y, string(r), core.RoleSubgraphLabel)
			}
			x += w
		}
	}
	return c
}

func labelSpot(sg *layout.Subgraph, centre, lo, hi, width int, free func(x, y, width int) bool) (x, y int, ok bool) {
	for row := sg.MinY + 1; row <= sg.MinY+subgraphLabelRows; row++ {
		for d := 0; centre-d >= lo || centre+d <= hi; d++ {
			for _, cand := range []int{centre - d, centre + d} {
				if cand >= lo && cand <= hi && free(cand, row, width) {
					return cand, row, true
				}
			}
		}
	}
	return 0, 0, false
}
