package engine

// Perft counts the leaf nodes of the depth-d game tree rooted at the
// current position, using non-recording make/undo throughout (§4.6). It
// is the standard move-generator correctness benchmark: the Standard
// starting position yields 20, 400, 8902, 197281, 4865609, 119060324 at
// depths 1 through 6.
func (b *Board) Perft(d int) uint64 {
	if d == 0 {
		return 1
	}
	moves := b.Generate(DepthTermination)
	if d == 1 {
		return uint64(len(moves))
	}
	var total uint64
	for _, m := range moves {
		b.applyMove(m, false)
		total += b.Perft(d - 1)
		b.undoScratch(m)
	}
	return total
}

// Divide returns, for each legal move from the current position, the
// perft count of the subtree below it at depth d-1 — the standard
// debugging aid for isolating a move-generation divergence.
func (b *Board) Divide(d int) map[string]uint64 {
	out := make(map[string]uint64)
	if d <= 0 {
		return out
	}
	for _, m := range b.Generate(DepthTermination) {
		b.applyMove(m, false)
		out[m.Name] = b.Perft(d - 1)
		b.undoScratch(m)
	}
	return out
}

// undoScratch reverses a non-recording applyMove, mirroring Undo's field
// restoration without touching History/Undone (which applyMove(m, false)
// never appended to).
func (b *Board) undoScratch(m Move) {
	b.undoPlacement(m)
	b.Active = m.Side
	b.CastlingRights = m.CastlingRights
	b.EnPassant = m.EnPassant
	b.HalfMoveClock = m.HalfMoveClock
	b.FullMoveNumber = m.FullMoveNumber
	b.Hash = m.Hash
}
