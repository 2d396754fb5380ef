package canvas

import (
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"gridart/core"
)

var flipAlphabet = []rune("▲▼^v┌└┐┘┬┴╭╰╮╯◤◣◥◢─│┼ *")

// randomCanvas fills a canvas from the alphabet using a seeded source.
func randomCanvas(maxX, maxY int, seed int64, alphabet []rune) *Canvas {
	rng := rand.New(rand.NewSource(seed))
	c := New(maxX, maxY)
	for x := 0; x <= maxX; x++ {
		for y := 0; y <= maxY; y++ {
			c.SetWithRole(x, y, alphabet[rng.Intn(len(alphabet))], core.Role(rng.Intn(int(core.RoleSubgraphLabel)+1)))
		}
	}
	return c
}

// TestCanvasProperties checks the canvas invariants over generated inputs.
func TestCanvasProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("resize is monotonic and content preserving", prop.ForAll(
		func(w, h, dw, dh int, seed int64) bool {
			c := randomCanvas(w, h, seed, flipAlphabet)
			before := c.Copy()

			c.Resize(w+dw, h+dh)
			if c.MaxX() != w+dw || c.MaxY() != h+dh {
				return false
			}
			for x := 0; x <= c.MaxX(); x++ {
				for y := 0; y <= c.MaxY(); y++ {
					if x <= w && y <= h {
						if c.Get(x, y) != before.Get(x, y) || c.Role(x, y) != before.Role(x, y) {
							return false
						}
					} else if c.Get(x, y) != ' ' {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(0, 12),
		gen.IntRange(0, 12),
		gen.IntRange(0, 6),
		gen.IntRange(0, 6),
		gen.Int64(),
	))

	properties.Property("merge of disjoint content is the union", prop.ForAll(
		func(w, h int, seed int64) bool {
			rng := rand.New(rand.NewSource(seed))
			base, overlay, union := New(w, h), New(w, h), New(w, h)
			for x := 0; x <= w; x++ {
				for y := 0; y <= h; y++ {
					r := flipAlphabet[rng.Intn(len(flipAlphabet))]
					switch rng.Intn(3) {
					case 0:
						base.Set(x, y, r)
						union.Set(x, y, r)
					case 1:
						overlay.Set(x, y, r)
						union.Set(x, y, r)
					}
				}
			}
			merged := Merge(base, core.DrawingCoord{}, MergeOptions{ProtectText: true}, overlay)
			return merged.String() == union.String()
		},
		gen.IntRange(0, 12),
		gen.IntRange(0, 12),
		gen.Int64(),
	))

	properties.Property("vertical flip is an involution", prop.ForAll(
		func(w, h int, seed int64) bool {
			c := randomCanvas(w, h, seed, flipAlphabet)
			before := c.Copy()

			c.FlipVertically()
			c.FlipVertically()

			for x := 0; x <= w; x++ {
				for y := 0; y <= h; y++ {
					if c.Get(x, y) != before.Get(x, y) || c.Role(x, y) != before.Role(x, y) {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(0, 12),
		gen.IntRange(0, 12),
		gen.Int64(),
	))

	properties.TestingRun(t)
}
