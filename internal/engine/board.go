package engine

import (
	"fmt"
	"math/rand"
	"strings"
)

// reservedTags lists the PGN tag names the reference model calls out by
// name; TagPairs may hold others too.
var reservedTags = []string{
	"Event", "Site", "Date", "Round", "White", "Black", "Result", "Time",
	"WhiteElo", "BlackElo", "TimeControl", "Variant", "SetUp", "FEN",
	"Termination", "EndTime",
}

// TagPairs is an insertion-ordered string-to-string map, used for PGN tag
// pairs where emission order matters.
type TagPairs struct {
	keys   []string
	values map[string]string
}

// NewTagPairs returns an empty ordered tag map.
func NewTagPairs() *TagPairs {
	return &TagPairs{values: make(map[string]string)}
}

// Set inserts or updates a tag, preserving first-insertion order.
func (t *TagPairs) Set(key, value string) {
	if _, ok := t.values[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.values[key] = value
}

// Get returns a tag's value and whether it is present.
func (t *TagPairs) Get(key string) (string, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Keys returns tag names in insertion order.
func (t *TagPairs) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Clone returns a deep copy.
func (t *TagPairs) Clone() *TagPairs {
	n := NewTagPairs()
	for _, k := range t.keys {
		n.Set(k, t.values[k])
	}
	return n
}

// Board is the complete state of a chess game: a grid of piece instances,
// side to move, castling rights, en-passant target, move clocks, tag
// pairs, and the history/undo stacks that make/undo/redo operate on.
type Board struct {
	Files, Ranks int
	// Squares is indexed [rank][file]; rank 0 is the top row (Black's
	// back rank by convention on a Standard board).
	Squares [][]Piece

	Active         Side
	CastlingRights string // subset of "KQkq", or "-"
	EnPassant      string // algebraic square, or "-"
	HalfMoveClock  int
	FullMoveNumber int

	Variant string
	Tags    *TagPairs

	History []Move
	Undone  []Move

	LegalMoves   []Move
	IllegalMoves []Move

	Evaluation float64

	Hash uint64
	// hashLog records the position hash after every ply played so far
	// (index 0 is the starting position), mirroring the reference's
	// History list of position fingerprints used for repetition.
	hashLog []uint64

	// PromotionSet lists the letters emitted for pawn promotion, upper or
	// lower cased per side at generation time. Defaults to Q, N, R, B.
	PromotionSet []rune

	rng *rand.Rand
}

func newEmptyBoard(files, ranks int) *Board {
	squares := make([][]Piece, ranks)
	for r := range squares {
		row := make([]Piece, files)
		for f := range row {
			row[f] = EmptyPiece
		}
		squares[r] = row
	}
	b := &Board{
		Files:          files,
		Ranks:          ranks,
		Squares:        squares,
		Active:         White,
		CastlingRights: "-",
		EnPassant:      "-",
		HalfMoveClock:  0,
		FullMoveNumber: 1,
		Tags:           NewTagPairs(),
		PromotionSet:   []rune{'Q', 'N', 'R', 'B'},
	}
	b.Hash = ComputeHash(b)
	b.hashLog = []uint64{b.Hash}
	return b
}

// At returns the piece on a square, or the empty sentinel if out of
// bounds.
func (b *Board) At(sq Square) Piece {
	if !b.InBounds(sq) {
		return EmptyPiece
	}
	return b.Squares[sq.Rank][sq.File]
}

// Set places a piece on a square. Callers must ensure sq is in bounds.
func (b *Board) Set(sq Square, p Piece) {
	b.Squares[sq.Rank][sq.File] = p
}

// InBounds reports whether a square lies within the board's grid.
func (b *Board) InBounds(sq Square) bool {
	return sq.File >= 0 && sq.File < b.Files && sq.Rank >= 0 && sq.Rank < b.Ranks
}

// SquareString returns the algebraic notation for a square on this board
// (file letter, then rank counted 1-based from the bottom row).
func (b *Board) SquareString(sq Square) string {
	if !b.InBounds(sq) {
		return "-"
	}
	file := rune('a' + sq.File)
	rank := b.Ranks - sq.Rank
	return fmt.Sprintf("%c%d", file, rank)
}

// ParseSquare parses algebraic notation into a Square for this board's
// dimensions.
func (b *Board) ParseSquare(s string) (Square, bool) {
	if s == "-" || len(s) < 2 {
		return Square{}, false
	}
	file := int(s[0] - 'a')
	var rankNum int
	if _, err := fmt.Sscanf(s[1:], "%d", &rankNum); err != nil {
		return Square{}, false
	}
	rank := b.Ranks - rankNum
	sq := Square{File: file, Rank: rank}
	if !b.InBounds(sq) {
		return Square{}, false
	}
	return sq, true
}

// FindKing locates the (single, standard-variant) king of a side. Returns
// ok=false if none or more than one is present.
func (b *Board) FindKing(side Side) (Square, bool) {
	found := Square{}
	count := 0
	for r := 0; r < b.Ranks; r++ {
		for f := 0; f < b.Files; f++ {
			p := b.Squares[r][f]
			if p.KindKey == 'K' && p.Side == side {
				found = Square{File: f, Rank: r}
				count++
			}
		}
	}
	return found, count == 1
}

// Clone returns a deep, independent copy of the board, including history,
// undo stack, and tag pairs, so parallel search callers can own one Board
// per worker as required by the single-threaded core contract.
func (b *Board) Clone() *Board {
	n := *b
	n.Squares = make([][]Piece, b.Ranks)
	for r := range b.Squares {
		row := make([]Piece, b.Files)
		copy(row, b.Squares[r])
		n.Squares[r] = row
	}
	n.Tags = b.Tags.Clone()
	n.History = append([]Move(nil), b.History...)
	n.Undone = append([]Move(nil), b.Undone...)
	n.LegalMoves = append([]Move(nil), b.LegalMoves...)
	n.IllegalMoves = append([]Move(nil), b.IllegalMoves...)
	n.hashLog = append([]uint64(nil), b.hashLog...)
	n.PromotionSet = append([]rune(nil), b.PromotionSet...)
	n.rng = nil
	return &n
}

// standardBackrank is the piece order for the Standard variant's back
// rank, files a..h.
const standardBackrank = "RNBQKBNR"

// NewBoard constructs a board for one of the recognized variant names
// (§6): "Standard", "Chess960"/aliases, "8x<N>", "Duckboard<X>x<Y>",
// "[<backrank letters>]", "Empty", or a bare FEN string (auto-detected by
// the presence of a '/').
func NewBoard(name string) (*Board, error) {
	switch {
	case name == "" || name == "Standard":
		return newStandardBoard(), nil
	case isChess960Name(name):
		return newChess960Board(), nil
	case strings.HasPrefix(name, "8x"):
		n, err := parseTrailingInt(name, "8x")
		if err != nil {
			return nil, err
		}
		return newRectangularBoard(8, n), nil
	case strings.HasPrefix(name, "Duckboard"):
		x, y, err := parseDuckboardDims(name)
		if err != nil {
			return nil, err
		}
		return newDuckboard(x, y), nil
	case strings.HasPrefix(name, "[") && strings.HasSuffix(name, "]"):
		return newCustomBackrankBoard(name[1 : len(name)-1]), nil
	case name == "Empty":
		return newEmptyBoard(8, 8), nil
	case strings.Contains(name, "/"):
		return ParseFEN(name)
	default:
		return nil, fmt.Errorf("%w: unrecognized variant %q", ErrParse, name)
	}
}

func isChess960Name(name string) bool {
	switch name {
	case "Chess960", "960", "Fisherandom", "Fisher random", "Chess9LX":
		return true
	default:
		return false
	}
}

func parseTrailingInt(name, prefix string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(strings.TrimPrefix(name, prefix), "%d", &n); err != nil || n < 1 {
		return 0, fmt.Errorf("%w: bad dimension in %q", ErrParse, name)
	}
	return n, nil
}

func parseDuckboardDims(name string) (int, int, error) {
	rest := strings.TrimPrefix(name, "Duckboard")
	var x, y int
	if _, err := fmt.Sscanf(rest, "%dx%d", &x, &y); err != nil || x < 1 || y < 1 {
		return 0, 0, fmt.Errorf("%w: bad Duckboard dimensions in %q", ErrParse, name)
	}
	return x, y, nil
}

func newStandardBoard() *Board {
	b := newEmptyBoard(8, 8)
	b.Variant = "Standard"
	placeBackrank(b, standardBackrank)
	placePawns(b)
	b.CastlingRights = "KQkq"
	b.Hash = ComputeHash(b)
	b.hashLog = []uint64{b.Hash}
	return b
}

// newChess960Board performs the constrained random back-rank setup:
// bishops on opposite color squares, king strictly between the two rooks,
// mirroring original_source/board.py's Chess960 constructor exactly
// rather than merely recognizing the variant name.
func newChess960Board() *Board {
	b := newEmptyBoard(8, 8)
	b.Variant = "Chess960"
	b.rng = rand.New(rand.NewSource(chess960Seed()))

	backrank := make([]byte, 8)
	empty := func() []int {
		var idx []int
		for i, c := range backrank {
			if c == 0 {
				idx = append(idx, i)
			}
		}
		return idx
	}

	// Bishops on opposite-color squares.
	lightSquares := []int{0, 2, 4, 6}
	darkSquares := []int{1, 3, 5, 7}
	backrank[lightSquares[b.rng.Intn(4)]] = 'B'
	darkFree := darkSquaresFree(backrank, darkSquares)
	backrank[darkFree[b.rng.Intn(len(darkFree))]] = 'B'

	// Queen and knights on any three of the remaining six squares.
	for _, c := range []byte{'Q', 'N', 'N'} {
		free := empty()
		backrank[free[b.rng.Intn(len(free))]] = c
	}

	// Remaining three squares get rook, king, rook with the king strictly
	// between the two rooks.
	free := empty()
	// free has exactly 3 indices; sort ascending (they already are, since
	// empty() scans left to right) so the middle one is the king.
	backrank[free[0]] = 'R'
	backrank[free[1]] = 'K'
	backrank[free[2]] = 'R'

	placeBackrank(b, string(backrank))
	placePawns(b)
	b.CastlingRights = "KQkq"
	b.Hash = ComputeHash(b)
	b.hashLog = []uint64{b.Hash}
	return b
}

func darkSquaresFree(backrank []byte, darkSquares []int) []int {
	var free []int
	for _, i := range darkSquares {
		if backrank[i] == 0 {
			free = append(free, i)
		}
	}
	return free
}

// chess960Seed is a package-level counter-free seed source; tests that
// need determinism construct boards via a custom backrank string instead.
func chess960Seed() int64 {
	return int64(rand.Int63())
}

func placeBackrank(b *Board, letters string) {
	for f, c := range letters {
		b.Set(Square{File: f, Rank: 0}, NewPieceFromLetter(unicode960(c)))
		b.Set(Square{File: f, Rank: b.Ranks - 1}, NewPieceFromLetter(c))
	}
}

// unicode960 lower-cases a backrank letter for Black's row.
func unicode960(c rune) rune {
	return toLowerLetter(c)
}

func toLowerLetter(c rune) rune {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func placePawns(b *Board) {
	for f := 0; f < b.Files; f++ {
		b.Set(Square{File: f, Rank: 1}, NewPieceFromLetter('p'))
		b.Set(Square{File: f, Rank: b.Ranks - 2}, NewPieceFromLetter('P'))
	}
}

func newRectangularBoard(files, ranks int) *Board {
	b := newEmptyBoard(files, ranks)
	b.Variant = fmt.Sprintf("%dx%d", files, ranks)
	backrank := standardBackrank
	if files != 8 {
		backrank = fitBackrank(files)
	}
	for f := 0; f < files && f < len(backrank); f++ {
		b.Set(Square{File: f, Rank: 0}, NewPieceFromLetter(toLowerLetter(rune(backrank[f]))))
		b.Set(Square{File: f, Rank: ranks - 1}, NewPieceFromLetter(rune(backrank[f])))
	}
	if ranks > 2 {
		for f := 0; f < files; f++ {
			b.Set(Square{File: f, Rank: 1}, NewPieceFromLetter('p'))
			b.Set(Square{File: f, Rank: ranks - 2}, NewPieceFromLetter('P'))
		}
	}
	b.CastlingRights = "KQkq"
	b.Hash = ComputeHash(b)
	b.hashLog = []uint64{b.Hash}
	return b
}

// fitBackrank adapts the standard 8-piece backrank to a narrower or wider
// board by dropping pieces from both ends (the extra one from the right
// when the count is odd, so rooks go first) or padding with rooks.
func fitBackrank(files int) string {
	base := standardBackrank
	if files <= len(base) {
		trim := len(base) - files
		left := trim / 2
		return base[left : left+files]
	}
	pad := files - len(base)
	return strings.Repeat("R", pad/2) + base + strings.Repeat("R", pad-pad/2)
}

func newDuckboard(files, ranks int) *Board {
	b := newRectangularBoard(files, ranks)
	b.Variant = fmt.Sprintf("Duckboard%dx%d", files, ranks)
	mid := ranks / 2
	b.Set(Square{File: files / 2, Rank: mid}, NewPieceFromLetter('Θ'))
	b.Hash = ComputeHash(b)
	b.hashLog = []uint64{b.Hash}
	return b
}

func newCustomBackrankBoard(letters string) *Board {
	files := len([]rune(letters))
	b := newEmptyBoard(files, 8)
	b.Variant = "Fairy"
	runes := []rune(letters)
	for f, c := range runes {
		b.Set(Square{File: f, Rank: 0}, NewPieceFromLetter(toLowerLetter(c)))
		b.Set(Square{File: f, Rank: b.Ranks - 1}, NewPieceFromLetter(c))
	}
	for f := 0; f < files; f++ {
		b.Set(Square{File: f, Rank: 1}, NewPieceFromLetter('p'))
		b.Set(Square{File: f, Rank: b.Ranks - 2}, NewPieceFromLetter('P'))
	}
	b.CastlingRights = "-"
	b.Hash = ComputeHash(b)
	b.hashLog = []uint64{b.Hash}
	return b
}
