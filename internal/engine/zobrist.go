package engine

import "math/rand"

// zobristSeed is the fixed seed used for every Zobrist-style random value
// this package generates, so hashes are reproducible across runs and
// processes — the same property the teacher's zobrist.go relies on with
// its fixed-seed math/rand table.
const zobristSeed = 0x5D4E3C2B1A

// zobristValue deterministically derives a pseudo-random uint64 for a
// single (kind, side, square) combination. Unlike a fixed 8x8, 12-piece
// board, this catalogue's kind set and board dimensions both vary by
// variant, so precomputed [12][64]uint64 tables (as the teacher's
// zobrist.go builds in its init()) don't fit; instead each key is
// expanded into its own fixed-seed math/rand stream on demand, which is
// equivalent in spirit (same deterministic-fixed-seed construction) and
// exact in effect (same key always yields the same value).
func zobristValue(parts ...int64) uint64 {
	seed := int64(zobristSeed)
	for _, p := range parts {
		// A cheap, fixed mixing step so distinct part sequences diverge
		// immediately rather than only after rand.Source warms up.
		seed = seed*1000003 + p
	}
	return rand.New(rand.NewSource(seed)).Uint64()
}

func hashPieceAt(p Piece, sq Square) uint64 {
	return zobristValue(int64(p.KindKey), int64(p.Side), int64(sq.File), int64(sq.Rank))
}

func hashSideToMove(side Side) uint64 {
	if side == Black {
		return zobristValue(1 << 20)
	}
	return 0
}

func hashCastlingRight(c rune) uint64 {
	return zobristValue(1<<21, int64(c))
}

func hashEnPassantFile(file int) uint64 {
	return zobristValue(1<<22, int64(file))
}

// relevantEnPassant returns b.EnPassant only if an enemy pawn genuinely
// stands adjacent to it (i.e. the en-passant capture is reachable),
// otherwise "-". This avoids spurious non-repetition for EP targets no
// pawn could actually use, per §4.5.
func relevantEnPassant(b *Board) string {
	if b.EnPassant == "-" || b.EnPassant == "" {
		return "-"
	}
	sq, ok := b.ParseSquare(b.EnPassant)
	if !ok {
		return "-"
	}
	// The capturing pawn stands on the same rank as the moving side's
	// pawn that just advanced two squares, i.e. one step toward the
	// mover from the EP target, adjacent in file.
	capturerRank := sq.Rank
	if b.Active == White {
		capturerRank = sq.Rank + 1
	} else {
		capturerRank = sq.Rank - 1
	}
	for _, df := range []int{-1, 1} {
		adj := Square{File: sq.File + df, Rank: capturerRank}
		if !b.InBounds(adj) {
			continue
		}
		p := b.At(adj)
		if !p.IsEmpty() && p.KindKey == 'P' && p.Side == b.Active {
			return b.EnPassant
		}
	}
	return "-"
}

// ComputeHash returns the position fingerprint (§4.5): a function of side
// to move, the grid contents, castling rights, and the relevant en
// passant target only.
func ComputeHash(b *Board) uint64 {
	var h uint64
	for r := 0; r < b.Ranks; r++ {
		for f := 0; f < b.Files; f++ {
			p := b.Squares[r][f]
			if p.IsEmpty() {
				continue
			}
			h ^= hashPieceAt(p, Square{File: f, Rank: r})
		}
	}
	h ^= hashSideToMove(b.Active)
	for _, c := range b.CastlingRights {
		if c != '-' {
			h ^= hashCastlingRight(c)
		}
	}
	ep := relevantEnPassant(b)
	if sq, ok := b.ParseSquare(ep); ok {
		h ^= hashEnPassantFile(sq.File)
	}
	return h
}

// RepetitionCount returns how many times the current position's hash
// appears in the walked-back position history, stopping the walk at the
// first point where the halfmove clock reset to 0 or castling rights
// changed — prior positions beyond that point cannot recur (§4.2).
func (b *Board) RepetitionCount() int {
	count := 1 // the current position itself
	rights := b.CastlingRights
	for i := len(b.hashLog) - 2; i >= 0; i-- {
		if b.hashLog[i] == b.Hash {
			count++
		}
		// History[i] is the pre-move snapshot for the state at
		// hashLog[i]; positions before a halfmove-clock reset or a
		// castling-rights change cannot recur the current position, so
		// the walk stops there.
		snapshot := b.History[i]
		if snapshot.HalfMoveClock == 0 || snapshot.CastlingRights != rights {
			break
		}
	}
	return count
}
