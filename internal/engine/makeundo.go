package engine

import "strings"

// MakeMove applies a move, recording it in history, refreshing castling
// rights/en-passant/clocks, and (if updateLegal) recomputing legal_moves
// and the Result/Termination tags (§4.3).
func (b *Board) MakeMove(m Move, updateLegal bool) {
	b.applyMove(m, updateLegal)
	if !updateLegal {
		b.History = append(b.History, m)
		b.hashLog = append(b.hashLog, b.Hash)
	}
}

// applyMove is the shared mutator behind MakeMove and the non-recording
// scratch application used by legality filtering and perft.
func (b *Board) applyMove(m Move, updateLegal bool) {
	mover := b.At(m.From)
	mover.Moves++
	mover.Distance += m.Distance

	switch {
	case m.Castle:
		b.applyCastle(m, mover)
	case m.Info != nil && m.Capture != nil && m.Promotion == 0 && mover.Kind().IsPawnKind() && m.From.File != m.To.File && b.At(m.To).IsEmpty():
		// En passant: destination is empty but a capture + info square
		// were recorded.
		b.Set(*m.Info, EmptyPiece)
		b.Set(m.From, EmptyPiece)
		b.Set(m.To, mover)
	case m.Promotion != 0:
		promoted := Piece{KindKey: m.Promotion, Side: mover.Side, Moves: mover.Moves, Distance: mover.Distance}
		b.Set(m.From, EmptyPiece)
		b.Set(m.To, promoted)
	default:
		b.Set(m.From, EmptyPiece)
		b.Set(m.To, mover)
	}

	b.updateEnPassantTarget(m, mover)
	b.updateCastlingRights(m, mover)
	b.updateHalfMoveClock(m, mover)

	b.Active = b.Active.Other()
	if b.Active == White {
		b.FullMoveNumber++
	}

	b.Hash = ComputeHash(b)

	if !updateLegal {
		return
	}

	b.History = append(b.History, m)
	b.hashLog = append(b.hashLog, b.Hash)

	if len(b.Undone) > 0 && movesEqual(m, b.Undone[len(b.Undone)-1]) {
		b.Undone = b.Undone[:len(b.Undone)-1]
	} else {
		b.Undone = nil
	}

	b.refreshResultTag(m)
	b.Generate(DepthDraws)
}

func (b *Board) applyCastle(m Move, king Piece) {
	rookSq := *m.Info
	rook := b.At(rookSq)

	kingDest := b.Files - 2
	rookDest := b.Files - 3
	if !m.CastleKingside {
		kingDest = 2
		rookDest = 3
	}

	rook.Moves++
	rook.Distance += absInt(rookSq.File - rookDest)

	if m.From != (Square{File: kingDest, Rank: m.From.Rank}) {
		b.Set(m.From, EmptyPiece)
	}
	if rookSq != (Square{File: rookDest, Rank: rookSq.Rank}) {
		b.Set(rookSq, EmptyPiece)
	}
	b.Set(Square{File: kingDest, Rank: m.From.Rank}, king)
	b.Set(Square{File: rookDest, Rank: rookSq.Rank}, rook)
}

func absInt(n int) float64 {
	if n < 0 {
		return float64(-n)
	}
	return float64(n)
}

func (b *Board) updateEnPassantTarget(m Move, mover Piece) {
	b.EnPassant = "-"
	if mover.Kind().IsPawnKind() && absRankDelta(m) == 2 {
		behind := Square{File: m.To.File, Rank: (m.From.Rank + m.To.Rank) / 2}
		b.EnPassant = b.SquareString(behind)
	}
}

func absRankDelta(m Move) int {
	d := m.To.Rank - m.From.Rank
	if d < 0 {
		return -d
	}
	return d
}

// updateCastlingRights revokes rights per §4.3 step 5: both of a side's
// rights when its king moves; one side's right when the eligible rook on
// that side moves; and on capturing a rook on its original square, using
// the Chess960-safe rule (the lost right is whichever side of the king
// the captured rook stood on, provided no other eligible rook remains
// between the king and that edge).
func (b *Board) updateCastlingRights(m Move, mover Piece) {
	rights := b.CastlingRights
	if mover.KindKey == 'K' {
		rights = revoke(rights, castlingLettersFor(m.Side)...)
	}
	if mover.KindKey == 'R' && mover.Moves == 1 {
		rights = b.revokeRookRight(rights, m.From, m.Side)
	}
	if m.Capture != nil && m.Capture.KindKey == 'R' && m.Capture.Moves == 0 {
		rights = b.revokeRookRight(rights, m.To, m.Capture.Side)
	}
	if rights == "" {
		rights = "-"
	}
	b.CastlingRights = rights
}

func (b *Board) revokeRookRight(rights string, rookSq Square, side Side) string {
	kingSq, ok := b.FindKing(side)
	if !ok {
		return rights
	}
	step, letter := -1, queensideLetter(side)
	if rookSq.File > kingSq.File {
		step, letter = 1, kingsideLetter(side)
	}
	for f := kingSq.File + step; f >= 0 && f < b.Files; f += step {
		sq := Square{File: f, Rank: kingSq.Rank}
		if p := b.At(sq); sq != rookSq && p.KindKey == 'R' && p.Side == side && p.Moves == 0 {
			return rights
		}
	}
	return revoke(rights, letter)
}

func kingsideLetter(side Side) rune {
	if side == White {
		return 'K'
	}
	return 'k'
}

func queensideLetter(side Side) rune {
	if side == White {
		return 'Q'
	}
	return 'q'
}

func revoke(rights string, letters ...rune) string {
	var b strings.Builder
	for _, c := range rights {
		drop := false
		for _, l := range letters {
			if c == l {
				drop = true
			}
		}
		if !drop && c != '-' {
			b.WriteRune(c)
		}
	}
	out := b.String()
	if out == "" {
		return "-"
	}
	return out
}

// updateHalfMoveClock resets the clock on a pawn move or a capture,
// keying on the pre-move mover's kind (mirroring the original's
// `piece == 'P' or 'x' in name` check) rather than the post-move piece on
// the destination square, so a non-capturing promotion — which leaves a
// promoted piece, not a pawn, standing on m.To — still resets correctly.
func (b *Board) updateHalfMoveClock(m Move, mover Piece) {
	if strings.Contains(m.Name, "x") || m.Capture != nil || mover.KindKey == 'P' {
		b.HalfMoveClock = 0
		return
	}
	b.HalfMoveClock++
}

func (b *Board) refreshResultTag(m Move) {
	switch m.Type {
	case TypeCheckmate:
		if m.Side == White {
			b.Tags.Set("Result", "1-0")
		} else {
			b.Tags.Set("Result", "0-1")
		}
		b.Tags.Set("Termination", "normal")
	case TypeStalemate, TypeInsufficientMaterial, TypeFiftyMove, TypeRepetition:
		b.Tags.Set("Result", "1/2-1/2")
		b.Tags.Set("Termination", string(m.Type))
	}
}

func movesEqual(a, b Move) bool {
	return a.Name == b.Name && a.From == b.From && a.To == b.To
}

// Undo reverses the most recently made move exactly, restoring every
// pre-move field from the Move record (§4.3).
func (b *Board) Undo(updateLegal bool) {
	if len(b.History) == 0 {
		return
	}
	m := b.History[len(b.History)-1]
	b.History = b.History[:len(b.History)-1]
	b.hashLog = b.hashLog[:len(b.hashLog)-1]

	b.undoPlacement(m)

	b.Active = m.Side
	b.CastlingRights = m.CastlingRights
	b.EnPassant = m.EnPassant
	b.HalfMoveClock = m.HalfMoveClock
	b.FullMoveNumber = m.FullMoveNumber
	b.Hash = m.Hash

	if updateLegal {
		b.Undone = append(b.Undone, m)
		b.Generate(DepthDraws)
	}
}

func (b *Board) undoPlacement(m Move) {
	switch {
	case m.Castle:
		b.undoCastle(m)
	case m.Promotion != 0:
		pawn := b.At(m.To)
		pawn.KindKey = m.PromotedFrom
		pawn.Moves--
		pawn.Distance -= m.Distance
		b.Set(m.From, pawn)
		b.Set(m.To, EmptyPiece)
		if m.Capture != nil {
			b.Set(m.To, *m.Capture)
		}
	case m.Info != nil && m.Capture != nil && b.isEnPassantUndo(m):
		mover := b.At(m.To)
		mover.Moves--
		mover.Distance -= m.Distance
		b.Set(m.From, mover)
		b.Set(m.To, EmptyPiece)
		b.Set(*m.Info, *m.Capture)
	default:
		mover := b.At(m.To)
		mover.Moves--
		mover.Distance -= m.Distance
		b.Set(m.From, mover)
		if m.Capture != nil {
			b.Set(m.To, *m.Capture)
		} else {
			b.Set(m.To, EmptyPiece)
		}
	}
}

func (b *Board) isEnPassantUndo(m Move) bool {
	return m.From.File != m.To.File && m.Info.File == m.To.File && m.Info.Rank == m.From.Rank
}

func (b *Board) undoCastle(m Move) {
	king := b.At(m.To)
	king.Moves--
	king.Distance -= m.Distance
	kingDest := b.Files - 2
	rookDest := b.Files - 3
	if !m.CastleKingside {
		kingDest = 2
		rookDest = 3
	}
	rookSq := *m.Info
	rook := b.At(Square{File: rookDest, Rank: m.From.Rank})
	rook.Moves--
	rook.Distance -= absInt(rookSq.File - rookDest)

	b.Set(Square{File: kingDest, Rank: m.From.Rank}, EmptyPiece)
	b.Set(Square{File: rookDest, Rank: rookSq.Rank}, EmptyPiece)
	b.Set(m.From, king)
	b.Set(rookSq, rook)
}

// Redo re-applies the most recently undone move, if any.
func (b *Board) Redo() {
	if len(b.Undone) == 0 {
		return
	}
	m := b.Undone[len(b.Undone)-1]
	b.MakeMove(m, true)
}
