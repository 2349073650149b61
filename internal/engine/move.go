package engine

import "math"

// MoveType classifies the outcome a move produced, annotated at generation
// depths 2 and 3.
type MoveType string

const (
	TypeNone                MoveType = ""
	TypeCheckmate           MoveType = "checkmate"
	TypeStalemate           MoveType = "stalemate"
	TypeInsufficientMaterial MoveType = "insufficient_material"
	TypeFiftyMove           MoveType = "fifty_move"
	TypeRepetition          MoveType = "repetition"
)

// Square identifies a board coordinate. File/Rank are 0-based; Rank 0 is
// the top row as stored (Black's back rank by convention on a Standard
// board), matching the grid layout in §3 of the board-state data model.
type Square struct {
	File, Rank int
}

// Move is the immutable record of a single ply: its SAN name, its
// coordinates, the board fields captured *before* the move was applied
// (needed to undo exactly and to reconstruct legality context), and the
// outcome annotation produced by generation.
type Move struct {
	Name string

	From, To Square

	// Side is the side that made this move (the active color beforehand).
	Side Side

	// Pre-move snapshot, needed to undo exactly.
	CastlingRights string
	EnPassant      string
	HalfMoveClock  int
	FullMoveNumber int
	Hash           uint64

	// Capture is the piece removed by this move, or nil if none.
	Capture *Piece

	// Info carries the rook's origin square for castling, or the captured
	// pawn's square for en passant. Nil otherwise.
	Info *Square

	// Castle and CastleKingside identify a castling move structurally
	// rather than by the SAN name, which termination annotation mutates
	// with a trailing '+'/'#' (a checking castle's name is "O-O+", not
	// "O-O") — dispatch must not key on the exact string.
	Castle         bool
	CastleKingside bool

	Promotion    rune // catalogue letter promoted to, or 0
	PromotedFrom rune // the pawn kind's own catalogue letter, for undo

	Evaluation float64
	Type       MoveType
	Distance   float64

	// Optional analysis slots an external analyser may populate; the core
	// never writes to these itself.
	EvalChange     *float64
	WinChange      *float64
	Classification string
	Comment        string
}

// NewMove computes a Move's geometric distance and copies the board's
// pre-move fields, as the reference Move constructor does.
func NewMove(name string, from, to Square, b *Board) Move {
	dx := float64(to.File - from.File)
	dy := float64(to.Rank - from.Rank)
	return Move{
		Name:           name,
		From:           from,
		To:             to,
		Side:           b.Active,
		CastlingRights: b.CastlingRights,
		EnPassant:      b.EnPassant,
		HalfMoveClock:  b.HalfMoveClock,
		FullMoveNumber: b.FullMoveNumber,
		Hash:           b.Hash,
		Distance:       math.Hypot(dx, dy),
	}
}

// String returns the move's SAN name.
func (m Move) String() string {
	return m.Name
}

// EqualCoords reports whether the move's coordinates match a tuple prefix
// (x, y) or (x, y, nx, ny), mirroring the reference's tuple-prefix
// equality.
func (m Move) EqualCoords(coords ...int) bool {
	full := []int{m.From.File, m.From.Rank, m.To.File, m.To.Rank}
	if len(coords) > len(full) {
		return false
	}
	for i, c := range coords {
		if full[i] != c {
			return false
		}
	}
	return true
}

// EqualName reports whether the move's SAN name matches s, mirroring the
// reference's string equality.
func (m Move) EqualName(s string) bool {
	return m.Name == s
}
