package engine

import (
	"fmt"
	"sort"
)

// Depth selects one of the five move-generation precision levels (§4.2).
type Depth float64

const (
	DepthPseudoLegal  Depth = 0
	DepthAnyLegal     Depth = 0.5
	DepthLegal        Depth = 1
	DepthTermination  Depth = 2
	DepthDraws        Depth = 3
)

// Generate returns the move list at the requested precision level,
// updating b.LegalMoves/b.IllegalMoves as a side effect for depth >= 1.
func (b *Board) Generate(depth Depth) []Move {
	if result, done := b.resultShortCircuit(depth); done {
		return result
	}

	pseudo := b.generatePseudoLegal()

	if depth == DepthPseudoLegal {
		return pseudo
	}

	var legal, illegal []Move
	for _, m := range pseudo {
		if b.isLegal(m) {
			legal = append(legal, m)
			if depth == DepthAnyLegal {
				return []Move{m}
			}
		} else {
			illegal = append(illegal, m)
		}
	}
	if depth == DepthAnyLegal {
		return nil
	}

	disambiguate(legal, b)

	if depth >= DepthTermination {
		b.annotateTermination(legal, depth)
	}

	b.LegalMoves = legal
	b.IllegalMoves = illegal
	return legal
}

// resultShortCircuit implements §4.2's short-circuit: a finished game (a
// set Result, no pending redo moves) returns no further moves at
// depth >= 2.
func (b *Board) resultShortCircuit(depth Depth) ([]Move, bool) {
	if depth < DepthTermination {
		return nil, false
	}
	if result, ok := b.Tags.Get("Result"); ok && result != "*" && len(b.Undone) == 0 {
		b.LegalMoves = nil
		b.IllegalMoves = nil
		return nil, true
	}
	return nil, false
}

// generatePseudoLegal dispatches over every square of the side to move,
// per descriptor kind, without checking whether the mover's king ends up
// attacked.
func (b *Board) generatePseudoLegal() []Move {
	var moves []Move
	for r := 0; r < b.Ranks; r++ {
		for f := 0; f < b.Files; f++ {
			p := b.Squares[r][f]
			if p.IsEmpty() || p.IsNeutral() || p.Side != b.Active {
				continue
			}
			from := Square{File: f, Rank: r}
			kind := p.Kind()
			switch {
			case kind.IsPawnKind():
				moves = append(moves, b.pawnMoves(from, p, kind)...)
			case p.KindKey == 'K':
				moves = append(moves, b.stepMoves(from, p, kind)...)
				moves = append(moves, b.castlingMoves(from, p)...)
			default:
				moves = append(moves, b.descriptorMoves(from, p, kind)...)
			}
		}
	}
	return moves
}

// expandDirections returns every distinct rotation/reflection of a base
// vector (a, b), suppressing duplicates that arise when a == b or either
// is zero (§3).
func expandDirections(a, b int) [][2]int {
	candidates := [][2]int{
		{a, b}, {a, -b}, {-a, b}, {-a, -b},
		{b, a}, {b, -a}, {-b, a}, {-b, -a},
	}
	seen := make(map[[2]int]bool, 8)
	var out [][2]int
	for _, c := range candidates {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// descriptorMoves generates candidates for non-pawn, non-king kinds by
// dispatching each descriptor to a leaper/rider/limited-ranger/hopper
// walk.
func (b *Board) descriptorMoves(from Square, p Piece, kind Kind) []Move {
	var moves []Move
	for _, d := range kind.Movement {
		for _, dir := range expandDirections(d.A, d.B) {
			switch {
			case d.Range == RangeHopper:
				moves = append(moves, b.hopperMove(from, p, dir)...)
			case d.Range == 1:
				moves = append(moves, b.rangedMoves(from, p, dir, 1)...)
			case d.Range == Infinite:
				moves = append(moves, b.rangedMoves(from, p, dir, -1)...)
			default:
				moves = append(moves, b.rangedMoves(from, p, dir, int(d.Range))...)
			}
		}
	}
	return moves
}

// stepMoves generates the king's ordinary one-square steps (castling is
// handled separately).
func (b *Board) stepMoves(from Square, p Piece, kind Kind) []Move {
	var moves []Move
	for _, d := range kind.Movement {
		for _, dir := range expandDirections(d.A, d.B) {
			moves = append(moves, b.rangedMoves(from, p, dir, 1)...)
		}
	}
	return moves
}

// rangedMoves walks from `from` in direction `dir` up to `limit` steps
// (limit < 0 means unlimited), stopping at the board edge, an own piece,
// or a neutral obstacle, and including a capture of the first enemy piece
// encountered.
func (b *Board) rangedMoves(from Square, p Piece, dir [2]int, limit int) []Move {
	var moves []Move
	cur := from
	for steps := 1; limit < 0 || steps <= limit; steps++ {
		cur = Square{File: cur.File + dir[0], Rank: cur.Rank + dir[1]}
		if !b.InBounds(cur) {
			break
		}
		target := b.At(cur)
		if target.IsEmpty() {
			moves = append(moves, b.plainMove(from, cur, p, nil))
			continue
		}
		if target.IsNeutral() || target.Side == p.Side {
			break
		}
		moves = append(moves, b.plainMove(from, cur, p, &target))
		break
	}
	return moves
}

// hopperMove implements the grasshopper-style hop: slide until the first
// occupied square (friend, foe, or obstacle) and land on the square
// immediately beyond it, if that square is empty or holds a capturable
// enemy.
func (b *Board) hopperMove(from Square, p Piece, dir [2]int) []Move {
	cur := from
	for {
		cur = Square{File: cur.File + dir[0], Rank: cur.Rank + dir[1]}
		if !b.InBounds(cur) {
			return nil
		}
		if !b.At(cur).IsEmpty() {
			break
		}
	}
	landing := Square{File: cur.File + dir[0], Rank: cur.Rank + dir[1]}
	if !b.InBounds(landing) {
		return nil
	}
	target := b.At(landing)
	if target.IsEmpty() {
		return []Move{b.plainMove(from, landing, p, nil)}
	}
	if target.IsNeutral() || target.Side == p.Side {
		return nil
	}
	return []Move{b.plainMove(from, landing, p, &target)}
}

// pawnMoves generates standard and fairy-pawn moves: forward (quiet),
// diagonal (capture, including en passant), and promotion, dispatched
// per the kind's fractional-range descriptors.
func (b *Board) pawnMoves(from Square, p Piece, kind Kind) []Move {
	var moves []Move
	forward := -1
	startRank := b.Ranks - 2
	farRank := 0
	if p.Side == Black {
		forward = 1
		startRank = 1
		farRank = b.Ranks - 1
	}

	for _, d := range kind.Movement {
		sideways := []int{0}
		if d.A != 0 {
			sideways = []int{d.A, -d.A}
		}
		for _, s := range sideways {
			to := Square{File: from.File + s, Rank: from.Rank + forward}
			if !b.InBounds(to) {
				continue
			}
			target := b.At(to)
			allowDouble := s == 0
			epSq, hasEP := b.ParseSquare(b.EnPassant)
			isEPTarget := hasEP && epSq == to

			switch d.Range {
			case RangePawnQuiet:
				if target.IsEmpty() {
					moves = append(moves, b.pawnAdvance(from, to, p, forward, startRank, farRank, allowDouble)...)
				}
			case RangePawnCapture:
				switch {
				case isEPTarget:
					captured := Square{File: to.File, Rank: from.Rank}
					moves = append(moves, b.enPassantMove(from, to, captured, p, farRank))
				case !target.IsEmpty() && !target.IsNeutral() && target.Side != p.Side:
					moves = append(moves, b.pawnCapture(from, to, p, &target, farRank)...)
				}
			case RangePawnBoth:
				switch {
				case isEPTarget:
					captured := Square{File: to.File, Rank: from.Rank}
					moves = append(moves, b.enPassantMove(from, to, captured, p, farRank))
				case target.IsEmpty():
					moves = append(moves, b.pawnAdvance(from, to, p, forward, startRank, farRank, allowDouble)...)
				case !target.IsNeutral() && target.Side != p.Side:
					moves = append(moves, b.pawnCapture(from, to, p, &target, farRank)...)
				}
			}
		}
	}
	return moves
}

func (b *Board) pawnAdvance(from, to Square, p Piece, forward, startRank, farRank int, allowDouble bool) []Move {
	var moves []Move
	if to.Rank == farRank {
		moves = append(moves, b.promotionMoves(from, to, p, nil)...)
	} else {
		moves = append(moves, b.plainMove(from, to, p, nil))
		if allowDouble && from.Rank == startRank {
			double := Square{File: to.File, Rank: to.Rank + forward}
			if b.InBounds(double) && b.At(double).IsEmpty() {
				moves = append(moves, b.plainMove(from, double, p, nil))
			}
		}
	}
	return moves
}

func (b *Board) pawnCapture(from, to Square, p Piece, target *Piece, farRank int) []Move {
	if to.Rank == farRank {
		return b.promotionMoves(from, to, p, target)
	}
	return []Move{b.plainMove(from, to, p, target)}
}

func (b *Board) promotionMoves(from, to Square, p Piece, target *Piece) []Move {
	var moves []Move
	for _, letter := range b.PromotionSet {
		m := b.plainMove(from, to, p, target)
		promo := letter
		if p.Side == Black {
			promo = toLowerLetter(letter)
		}
		pieceLetter := string(promo)
		m.Promotion = letter
		m.PromotedFrom = p.KindKey
		m.Name = sanBase(p, from, to, target != nil, b) + "=" + pieceLetter
		moves = append(moves, m)
	}
	return moves
}

func (b *Board) enPassantMove(from, to, captured Square, p Piece, farRank int) Move {
	m := NewMove(sanBase(p, from, to, true, b), from, to, b)
	capturedPiece := b.At(captured)
	m.Capture = &capturedPiece
	info := captured
	m.Info = &info
	return m
}

// plainMove builds a Move record for a non-special (non-castling,
// non-en-passant, non-promotion) step, deriving its SAN name.
func (b *Board) plainMove(from, to Square, p Piece, target *Piece) Move {
	m := NewMove(sanBase(p, from, to, target != nil, b), from, to, b)
	if target != nil {
		cp := *target
		m.Capture = &cp
	}
	return m
}

// sanBase renders the un-disambiguated SAN name for a move: piece letter
// (omitted for pawns) + optional 'x' + destination square.
func sanBase(p Piece, from, to Square, isCapture bool, b *Board) string {
	var out string
	if p.KindKey != 'P' && !p.Kind().IsPawnKind() {
		out += string(p.KindKey)
	} else if isCapture {
		out += string(rune('a' + from.File))
	}
	if isCapture {
		out += "x"
	}
	out += b.SquareString(to)
	return out
}

// castlingMoves generates the king's castling candidates for every right
// the moving side still holds, supporting Chess960 geometry: the closest
// eligible rook on the back rank, with the intervening range clear.
func (b *Board) castlingMoves(from Square, king Piece) []Move {
	var moves []Move
	rights := castlingLettersFor(king.Side)
	for _, right := range rights {
		if !containsRune(b.CastlingRights, right) {
			continue
		}
		rookSq, ok := b.findCastlingRook(from, king.Side, right)
		if !ok {
			continue
		}
		kingside := right == 'K' || right == 'k'
		kingDest := b.Files - 2
		rookDest := b.Files - 3
		if !kingside {
			kingDest = 2
			rookDest = 3
		}
		lo, hi := minMax(from.File, rookSq.File, kingDest)
		lo, hi = minMax(lo, hi, rookDest)
		clear := true
		for f := lo; f <= hi; f++ {
			if f == from.File || f == rookSq.File {
				continue
			}
			if !b.At(Square{File: f, Rank: from.Rank}).IsEmpty() {
				clear = false
				break
			}
		}
		if !clear {
			continue
		}
		name := "O-O"
		if !kingside {
			name = "O-O-O"
		}
		to := Square{File: kingDest, Rank: from.Rank}
		m := NewMove(name, from, to, b)
		rookOrigin := rookSq
		m.Info = &rookOrigin
		m.Castle = true
		m.CastleKingside = kingside
		moves = append(moves, m)
	}
	return moves
}

func castlingLettersFor(side Side) []rune {
	if side == White {
		return []rune{'K', 'Q'}
	}
	return []rune{'k', 'q'}
}

// findCastlingRook locates the closest never-moved rook of the given side
// on the king's rank, in the direction implied by the right letter.
func (b *Board) findCastlingRook(kingSq Square, side Side, right rune) (Square, bool) {
	kingside := right == 'K' || right == 'k'
	step := 1
	if !kingside {
		step = -1
	}
	for f := kingSq.File + step; f >= 0 && f < b.Files; f += step {
		sq := Square{File: f, Rank: kingSq.Rank}
		p := b.At(sq)
		if p.IsEmpty() {
			continue
		}
		if p.KindKey == 'R' && p.Side == side && p.Moves == 0 {
			return sq, true
		}
	}
	return Square{}, false
}

func minMax(values ...int) (int, int) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}

// isLegal applies a candidate move on a scratch copy (non-recording) and
// checks the moving side's king is not left attacked; castling
// additionally checks every square the king traverses.
func (b *Board) isLegal(m Move) bool {
	if m.Castle {
		if !b.castlingPathSafe(m) {
			return false
		}
	}
	scratch := b.Clone()
	scratch.applyMove(m, false)
	kingSq, ok := scratch.FindKing(m.Side)
	if !ok {
		return true // non-standard variant with no single king: nothing to filter
	}
	return !scratch.isAttackedBy(kingSq, m.Side.Other())
}

// castlingPathSafe checks that every square the king passes through
// (inclusive of origin and destination) is unattacked in the pre-move
// position.
func (b *Board) castlingPathSafe(m Move) bool {
	step := 1
	if m.To.File < m.From.File {
		step = -1
	}
	for f := m.From.File; ; f += step {
		sq := Square{File: f, Rank: m.From.Rank}
		if b.isAttackedBy(sq, m.Side.Other()) {
			return false
		}
		if f == m.To.File {
			break
		}
	}
	return true
}

// isAttackedBy reports whether `by` can reach `sq` with a pseudo-legal
// move, evaluated by temporarily making `by` the active side.
func (b *Board) isAttackedBy(sq Square, by Side) bool {
	scratch := b.Clone()
	scratch.Active = by
	for _, m := range scratch.generatePseudoLegal() {
		if m.To == sq {
			return true
		}
	}
	return false
}

// InCheck reports whether the side to move's king is currently attacked.
func (b *Board) InCheck() bool {
	kingSq, ok := b.FindKing(b.Active)
	if !ok {
		return false
	}
	return b.isAttackedBy(kingSq, b.Active.Other())
}

// disambiguate inserts file/rank/both qualifiers into SAN names that
// share a destination+piece within the group, per §4.2 step 4.
func disambiguate(moves []Move, b *Board) {
	type key struct {
		kind rune
		to   Square
	}
	groups := make(map[key][]int)
	for i, m := range moves {
		if len(m.Name) < 2 || m.Name[0] == 'O' {
			continue
		}
		pieceLetter := rune(m.Name[0])
		if pieceLetter >= 'a' {
			continue // pawn move, no piece-letter disambiguation needed
		}
		groups[key{pieceLetter, m.To}] = append(groups[key{pieceLetter, m.To}], i)
	}
	for _, idxs := range groups {
		if len(idxs) < 2 {
			continue
		}
		sameFile := true
		sameRank := true
		for i := 1; i < len(idxs); i++ {
			if moves[idxs[i]].From.File != moves[idxs[0]].From.File {
				sameFile = false
			}
			if moves[idxs[i]].From.Rank != moves[idxs[0]].From.Rank {
				sameRank = false
			}
		}
		for _, i := range idxs {
			from := moves[i].From
			fileLetter := string(rune('a' + from.File))
			rankDigits := fmt.Sprintf("%d", b.Ranks-from.Rank)
			var qualifier string
			switch {
			case !sameFile:
				qualifier = fileLetter
			case !sameRank:
				qualifier = rankDigits
			default:
				qualifier = fileLetter + rankDigits
			}
			moves[i].Name = moves[i].Name[:1] + qualifier + moves[i].Name[1:]
		}
	}
}

// annotateTermination marks checkmate/stalemate (depth >= 2) and, at
// depth 3, insufficient material / fifty-move / repetition (§4.2 step 5).
func (b *Board) annotateTermination(legal []Move, depth Depth) {
	for i := range legal {
		scratch := b.Clone()
		scratch.applyMove(legal[i], false)

		inCheck := scratch.InCheck()
		if len(scratch.Generate(DepthAnyLegal)) == 0 {
			if inCheck {
				legal[i].Name += "#"
				legal[i].Type = TypeCheckmate
			} else {
				legal[i].Type = TypeStalemate
			}
			continue
		}
		if inCheck {
			legal[i].Name += "+"
		}

		if depth < DepthDraws {
			continue
		}
		if legal[i].Capture != nil && insufficientMaterial(scratch) {
			legal[i].Type = TypeInsufficientMaterial
			continue
		}
		if scratch.HalfMoveClock >= 100 {
			legal[i].Type = TypeFiftyMove
			continue
		}
		if scratch.RepetitionCount() >= 3 {
			legal[i].Type = TypeRepetition
		}
	}
}

// insufficientMaterial classifies remaining material after a capture:
// king vs king, king vs king+minor, or same-color-complex bishops only.
// Preserved limitation (documented, not silently fixed): this is only
// ever checked on capture moves, per the source behavior.
func insufficientMaterial(b *Board) bool {
	var nonKing []Piece
	for r := 0; r < b.Ranks; r++ {
		for f := 0; f < b.Files; f++ {
			p := b.Squares[r][f]
			if p.IsEmpty() || p.IsNeutral() || p.KindKey == 'K' {
				continue
			}
			nonKing = append(nonKing, p)
		}
	}
	switch len(nonKing) {
	case 0:
		return true
	case 1:
		k := nonKing[0].KindKey
		return k == 'N' || k == 'B'
	default:
		for _, p := range nonKing {
			if p.KindKey != 'B' {
				return false
			}
		}
		return allSameColorComplex(b, nonKing)
	}
}

func allSameColorComplex(b *Board, bishops []Piece) bool {
	var complex int = -1
	for r := 0; r < b.Ranks; r++ {
		for f := 0; f < b.Files; f++ {
			p := b.Squares[r][f]
			if p.KindKey != 'B' || p.IsEmpty() {
				continue
			}
			c := (f + r) % 2
			if complex == -1 {
				complex = c
			} else if complex != c {
				return false
			}
		}
	}
	return true
}

// sortMovesByName orders moves by SAN name, giving a stable output
// ordering.
func sortMovesByName(moves []Move) {
	sort.Slice(moves, func(i, j int) bool { return moves[i].Name < moves[j].Name })
}

