package canvas

// Each box-drawing junction is described by the arms leaving its centre.
// Merging two junctions joins their arms, which keeps the merge table
// commutative and closed over the junction set.
type arms uint8

const (
	armUp arms = 1 << iota
	armDown
	armLeft
	armRight
)

var junctionArms = map[rune]arms{
	'─': armLeft | armRight,
	'│': armUp | armDown,
	'┌': armDown | armRight,
	'┐': armDown | armLeft,
	'└': armUp | armRight,
	'┘': armUp | armLeft,
	'├': armUp | armDown | armRight,
	'┤': armUp | armDown | armLeft,
	'┬': armLeft | armRight | armDown,
	'┴': armLeft | armRight | armUp,
	'┼': armUp | armDown | armLeft | armRight,
}

type junctionPair struct {
	a, b rune
}

// junctionTable is the fixed merge table, keyed by (existing, incoming).
var junctionTable = buildJunctionTable()

func buildJunctionTable() map[junctionPair]rune {
	byArms := make(map[arms]rune, len(junctionArms))
	for r, a := range junctionArms {
		byArms[a] = r
	}
	table := make(map[junctionPair]rune, len(junctionArms)*len(junctionArms))
	for a, armsA := range junctionArms {
		for b, armsB := range junctionArms {
			table[junctionPair{a, b}] = byArms[armsA|armsB]
		}
	}
	return table
}

// IsJunction reports whether r is one of the box-drawing line glyphs that
// participate in junction merging.
func IsJunction(r rune) bool {
	_, ok := junctionArms[r]
	return ok
}

// MergeJunctions combines two overlapping line glyphs, for example '─' and
// '│' become '┼'. Pairs outside the junction set return existing unchanged.
func MergeJunctions(existing, incoming rune) rune {
	if merged, ok := junctionTable[junctionPair{existing, incoming}]; ok {
		return merged
	}
	return existing
}

// isASCIILine reports whether r is an ASCII line glyph.
func isASCIILine(r rune) bool {
	return r == '-' || r == '|' || r == '+'
}

// mergeASCII joins crossing ASCII lines into '+'. Identical glyphs are kept.
func mergeASCII(existing, incoming rune) rune {
	if existing == incoming {
		return existing
	}
	return '+'
}
