// Package engine implements a rules-complete, variant-aware chess board state
// machine: legal move generation, make/undo, FEN/PGN/SAN serialization,
// Zobrist hashing, and perft.
package engine

import "math"

// Infinite marks a rider's unlimited range.
const Infinite = math.MaxInt32

// Descriptor is a single movement direction for a piece kind: a base vector
// (a, b) which the generator reflects/rotates into up to 8 concrete
// directions, plus a range.
//
// Range semantics:
//
//	1          leaper (single step)
//	Infinite   rider (slides until blocked)
//	>1         limited ranger
//	-1         hopper: must jump exactly one piece, landing on the next square
//	0.1/0.4/0.5 pawn sentinels: capture-only / non-capture-only / both
type Descriptor struct {
	A, B  int
	Range float64
}

const (
	RangeHopper        = -1
	RangePawnCapture   = 0.1
	RangePawnQuiet     = 0.4
	RangePawnBoth      = 0.5
)

// Kind is a catalogue entry: the fixed properties of a piece letter.
type Kind struct {
	Letter   rune
	Name     string
	Value    float64
	Movement []Descriptor
}

// IsPawnKind reports whether any movement descriptor uses a pawn-style
// fractional range, i.e. whether this kind needs pawn-special handling
// (promotion, en passant, starting-rank double step).
func (k Kind) IsPawnKind() bool {
	for _, d := range k.Movement {
		if d.Range == RangePawnCapture || d.Range == RangePawnQuiet || d.Range == RangePawnBoth {
			return true
		}
	}
	return false
}

// Catalogue is the process-wide, read-only table of every piece kind,
// keyed by its canonical letter exactly as in the reference catalogue:
// uppercase standard/fairy letters, the two case-sensitive neutral
// obstacles ('X' brick, 'x' transparent brick), the duck, and the four
// fairy pawns keyed by Greek letters. Unknown letters resolve to '?'.
var Catalogue = map[rune]Kind{
	'K': {'K', "king", 20, []Descriptor{{0, 1, 1}, {1, 1, 1}}},
	'Q': {'Q', "queen", 9, []Descriptor{{0, 1, Infinite}, {1, 1, Infinite}}},
	'R': {'R', "rook", 5, []Descriptor{{0, 1, Infinite}}},
	'B': {'B', "bishop", 5, []Descriptor{{1, 1, Infinite}}},
	'N': {'N', "knight", 3, []Descriptor{{1, 2, 1}}},
	'P': {'P', "pawn", 1, []Descriptor{{0, 1, RangePawnQuiet}, {1, 1, RangePawnCapture}}},

	'A': {'A', "amazon", 12, []Descriptor{{0, 1, Infinite}, {1, 1, Infinite}, {1, 2, 1}}},
	'C': {'C', "camel", 3, []Descriptor{{1, 3, 1}}},
	'D': {'D', "1-point queen", 1, []Descriptor{{0, 1, Infinite}, {1, 1, Infinite}}},
	'E': {'E', "chancellor", 7, []Descriptor{{0, 1, Infinite}, {1, 2, 1}}},
	'F': {'F', "ferz", 1, []Descriptor{{1, 1, 1}}},
	'G': {'G', "grasshopper", 3, []Descriptor{{0, 1, RangeHopper}, {1, 1, RangeHopper}}},
	'H': {'H', "archbishop", 7, []Descriptor{{1, 1, Infinite}, {1, 2, 1}}},
	'I': {'I', "alfil", 1, []Descriptor{{2, 2, 1}}},
	'J': {'J', "alfil-rider", 5, []Descriptor{{2, 2, Infinite}}},
	'L': {'L', "camel-rider", 7, []Descriptor{{1, 3, Infinite}}},
	'M': {'M', "general", 5, []Descriptor{{0, 1, 1}, {1, 1, 1}, {1, 2, 1}}},
	'O': {'O', "knight-rider", 7, []Descriptor{{1, 2, Infinite}}},
	'S': {'S', "dabbaba", 1, []Descriptor{{0, 2, 1}}},
	'T': {'T', "dabbaba-rider", 5, []Descriptor{{0, 2, Infinite}}},
	'U': {'U', "xiangqi horse", 3, []Descriptor{{1, 2, 1}}},
	'V': {'V', "wildebeest", 5, []Descriptor{{1, 2, 1}, {1, 3, 1}}},
	'W': {'W', "wazir", 1, []Descriptor{{0, 1, 1}}},
	'X': {'X', "brick", 0, nil},
	'x': {'x', "transparent brick", 0, nil},
	'Y': {'Y', "alibaba", 3, []Descriptor{{0, 2, 1}, {2, 2, 1}}},
	'Z': {'Z', "alibaba-rider", 7, []Descriptor{{0, 2, Infinite}, {2, 2, Infinite}}},

	'Λ': {'Λ', "dragon bishop", 7, []Descriptor{{1, 1, Infinite}, {1, 2, 1}}},
	'Θ': {'Θ', "duck", 0, nil},

	'Α': {'Α', "berolina", 1, []Descriptor{{1, 1, RangePawnQuiet}, {0, 1, RangePawnCapture}}},
	'Β': {'Β', "soldier", 1, []Descriptor{{0, 1, RangePawnBoth}}},
	'Γ': {'Γ', "stone general", 1, []Descriptor{{1, 1, RangePawnBoth}}},
	'Δ': {'Δ', "sergeant", 1, []Descriptor{{0, 1, RangePawnBoth}, {1, 1, RangePawnBoth}}},

	' ': {' ', "empty", 0, nil},
	'?': {'?', "unknown", 0, nil},
}

// neutralLetters identifies kinds with no color: obstacles that cannot be
// captured and the duck, which is relocated rather than moved by its owner.
var neutralLetters = map[rune]bool{'X': true, 'x': true, 'Θ': true}

// LookupKind returns the catalogue entry for a canonical letter, defaulting
// to the unknown entry for unrecognized letters.
func LookupKind(letter rune) Kind {
	if k, ok := Catalogue[letter]; ok {
		return k
	}
	return Catalogue['?']
}
