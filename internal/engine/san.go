package engine

import (
	"fmt"
	"strings"
)

// normalizeCastling maps the digit-form castling tokens PGN readers
// sometimes emit ("0-0"/"0-0-0") onto the letter-O form this package's
// generator names its moves with (§4.9).
func normalizeCastling(s string) string {
	switch s {
	case "0-0":
		return "O-O"
	case "0-0-0":
		return "O-O-O"
	default:
		return s
	}
}

// ResolveSAN finds the legal move whose name matches s, normalizing
// castling tokens first and comparing verbatim otherwise (§4.9). The
// comparison ignores a trailing '+'/'#' on either side: Generate annotates
// a stored move's name with the check/mate suffix once it knows the move's
// outcome, but a user typing "O-O" or "Qh4" against a position has no way
// to know that suffix in advance, so the bare and annotated forms must both
// resolve to the same move. The board must already have legal moves
// generated (Generate(DepthLegal) or higher).
func (b *Board) ResolveSAN(s string) (Move, error) {
	name := normalizeCastling(s)
	if err := validateSANShape(name); err != nil {
		return Move{}, err
	}
	bare := strings.TrimRight(name, "+#")
	for _, m := range b.LegalMoves {
		if m.Name == name || strings.TrimRight(m.Name, "+#") == bare {
			return m, nil
		}
	}
	return Move{}, fmt.Errorf("%w: %q is not a legal move", ErrIllegalMove, s)
}

// validateSANShape applies the minimal shape check from §4.9 to a
// user-typed SAN string before it is looked up: length >= 2; a second
// character of '-' implies a king move (castling); an uppercase first
// character is a piece letter; otherwise it must be a pawn move.
func validateSANShape(s string) error {
	if len(s) < 2 {
		return fmt.Errorf("%w: SAN %q too short", ErrIllegalMove, s)
	}
	if s[1] == '-' {
		return nil // castling, e.g. "O-O"
	}
	first := rune(s[0])
	switch {
	case first >= 'A' && first <= 'Z':
		return nil // piece move
	case first >= 'a' && first <= 'z':
		return nil // pawn move, e.g. "e4", "exd5"
	default:
		return fmt.Errorf("%w: malformed SAN %q", ErrIllegalMove, s)
	}
}

// MakeSAN resolves s against the board's current legal moves and applies
// it, returning the applied Move. It is the primary user-facing entry
// point described by §4.9/§4.11: invalid or illegal strings return
// ErrIllegalMove and leave the board untouched.
func (b *Board) MakeSAN(s string) (Move, error) {
	if b.LegalMoves == nil {
		b.Generate(DepthDraws)
	}
	m, err := b.ResolveSAN(s)
	if err != nil {
		return Move{}, err
	}
	b.MakeMove(m, true)
	return m, nil
}

// stripAnnotation removes trailing '!'/'?' annotation characters from a
// raw move token, preserving '+'/'#' since the
// generator's own SAN names already carry them.
func stripAnnotation(tok string) string {
	return strings.TrimRight(tok, "!?")
}
