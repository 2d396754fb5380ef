package canvas

// flipGlyphs maps each direction-sensitive glyph to its vertical mirror.
var flipGlyphs = map[rune]rune{
	'▲': '▼', '▼': '▲',
	'^': 'v', 'v': '^',
	'┌': '└', '└': '┌',
	'┐': '┘', '┘': '┐',
	'┬': '┴', '┴': '┬',
	'╭': '╰', '╰': '╭',
	'╮': '╯', '╯': '╮',
	'╔': '╚', '╚': '╔',
	'╗': '╝', '╝': '╗',
	'┏': '┗', '┗': '┏',
	'┓': '┛', '┛': '┓',
	'◤': '◣', '◣': '◤',
	'◥': '◢', '◢': '◥',
	'╱': '╲', '╲': '╱',
	'/': '\\', '\\': '/',
}

// FlipVertically mirrors the canvas top to bottom in place and swaps every
// direction-sensitive glyph for its mirror. Cells tagged with a text role
// move with their row but keep their characters, so labels stay readable.
func (c *Canvas) FlipVertically() {
	for x := range c.cells {
		col, roles := c.cells[x], c.roles[x]
		for i, j := 0, len(col)-1; i < j; i, j = i+1, j-1 {
			col[i], col[j] = col[j], col[i]
			roles[i], roles[j] = roles[j], roles[i]
		}
		for y, r := range col {
			if roles[y].IsText() {
				continue
			}
			if m, ok := flipGlyphs[r]; ok {
				col[y] = m
			}
		}
	}
}
