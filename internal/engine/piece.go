package engine

import "unicode"

// Side identifies which player, if any, owns a piece.
type Side int8

const (
	White Side = iota
	Black
	Neutral
)

// Other returns the opposing side. Calling Other on Neutral is a
// programming error and panics; callers never do this for a square that
// passed IsEmpty/IsNeutral checks.
func (s Side) Other() Side {
	switch s {
	case White:
		return Black
	case Black:
		return White
	default:
		panic("engine: Other() called on non-playing side")
	}
}

func (s Side) String() string {
	switch s {
	case White:
		return "w"
	case Black:
		return "b"
	default:
		return ""
	}
}

// Piece is a square's contents: a catalogue kind, an owning side, and the
// per-instance counters that determine castling eligibility after setup.
type Piece struct {
	KindKey rune
	Side    Side
	Moves   int
	Distance float64
}

// EmptyPiece is the zero-value "no piece" sentinel.
var EmptyPiece = Piece{KindKey: ' ', Side: Neutral}

// NewPieceFromLetter builds a Piece from a FEN/PGN-style letter, deriving
// side from letter case exactly as the reference catalogue does: the two
// brick letters and the duck are colorless regardless of case, uppercase
// is White, lowercase is Black, and the stored KindKey is always the
// catalogue's canonical (uppercase, or exact for bricks) form.
func NewPieceFromLetter(letter rune) Piece {
	switch letter {
	case 'X', 'x':
		return Piece{KindKey: letter, Side: Neutral}
	case 'Θ', 'θ':
		return Piece{KindKey: 'Θ', Side: Neutral}
	case ' ':
		return EmptyPiece
	}

	switch {
	case unicode.IsUpper(letter):
		return Piece{KindKey: letter, Side: White}
	case unicode.IsLower(letter):
		return Piece{KindKey: unicode.ToUpper(letter), Side: Black}
	default:
		return Piece{KindKey: '?', Side: Neutral}
	}
}

// Kind returns the catalogue entry for this piece.
func (p Piece) Kind() Kind {
	return LookupKind(p.KindKey)
}

// IsEmpty reports whether the square holds no piece.
func (p Piece) IsEmpty() bool {
	return p.KindKey == ' '
}

// IsNeutral reports whether this is an uncapturable obstacle or the duck.
func (p Piece) IsNeutral() bool {
	return !p.IsEmpty() && neutralLetters[p.KindKey]
}

// Letter returns the display letter for FEN/SAN purposes: uppercase for
// White, lowercase for Black, and the exact catalogue letter for neutrals.
func (p Piece) Letter() rune {
	if p.IsEmpty() {
		return ' '
	}
	switch p.Side {
	case White, Neutral:
		return p.KindKey
	default:
		return unicode.ToLower(p.KindKey)
	}
}

// unicodeGlyphs maps the six standard letters (White then Black) to their
// Unicode chess symbol code points, mirroring the reference's
// chr(9812 + index) lookup.
var unicodeGlyphs = []rune("♔♕♖♗♘♙♚♛♜♝♞♟")

// String returns the Unicode glyph for standard pieces, else the bare
// catalogue letter (fairy pieces and obstacles have no dedicated glyph).
func (p Piece) String() string {
	if p.IsEmpty() {
		return " "
	}
	const standard = "KQRBNP"
	for i, c := range standard {
		if c == p.KindKey {
			if p.Side == Black {
				return string(unicodeGlyphs[6+i])
			}
			return string(unicodeGlyphs[i])
		}
	}
	return string(p.Letter())
}
