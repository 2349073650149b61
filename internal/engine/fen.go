package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// standardLetters is the piece-letter set that keeps a position's variant
// tag "Standard".
const standardLetters = "KQRBNPkqrbnp"

// ToFEN emits the 6-field Forsyth-Edwards string for the current
// position: placement, side, castling, en-passant target, halfmove
// clock, fullmove number (§4.7).
func (b *Board) ToFEN() string {
	var rows []string
	for r := 0; r < b.Ranks; r++ {
		rows = append(rows, encodeRow(b.Squares[r], b.Files))
	}
	placement := strings.Join(rows, "/")

	castling := b.CastlingRights
	if castling == "" {
		castling = "-"
	}
	ep := b.EnPassant
	if ep == "" {
		ep = "-"
	}

	return fmt.Sprintf("%s %s %s %s %d %d",
		placement, b.Active.String(), castling, ep, b.HalfMoveClock, b.FullMoveNumber)
}

// encodeRow run-length encodes a row's empty squares greedily from the
// board width down to 1.
func encodeRow(row []Piece, files int) string {
	var sb strings.Builder
	run := 0
	flush := func() {
		if run > 0 {
			sb.WriteString(strconv.Itoa(run))
			run = 0
		}
	}
	for f := 0; f < files; f++ {
		p := row[f]
		if p.IsEmpty() {
			run++
			continue
		}
		flush()
		sb.WriteRune(p.Letter())
	}
	flush()
	return sb.String()
}

// ParseFEN parses a 6-field (or shorter, defaulted) FEN string into a new
// Board. It accepts irregular row counts / widths for rectangular and
// fairy boards, right-padding short rows with empties, and defaults
// missing trailing fields to "w", "-", "-", "0", "1" (§4.7).
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty FEN", ErrParse)
	}

	rows := strings.Split(fields[0], "/")
	maxFiles := 0
	parsed := make([][]Piece, len(rows))
	for i, row := range rows {
		parsed[i] = decodeRow(row)
		if len(parsed[i]) > maxFiles {
			maxFiles = len(parsed[i])
		}
	}
	for i := range parsed {
		for len(parsed[i]) < maxFiles {
			parsed[i] = append(parsed[i], EmptyPiece)
		}
	}

	b := newEmptyBoard(maxFiles, len(rows))
	b.Squares = parsed

	b.Active = White
	if len(fields) > 1 && fields[1] == "b" {
		b.Active = Black
	}

	b.CastlingRights = "-"
	if len(fields) > 2 {
		b.CastlingRights = fields[2]
	}

	b.EnPassant = "-"
	if len(fields) > 3 {
		b.EnPassant = fields[3]
	}

	b.HalfMoveClock = 0
	if len(fields) > 4 {
		if n, err := strconv.Atoi(fields[4]); err == nil {
			b.HalfMoveClock = n
		}
	}

	b.FullMoveNumber = 1
	if len(fields) > 5 {
		if n, err := strconv.Atoi(fields[5]); err == nil {
			b.FullMoveNumber = n
		}
	}

	b.Variant = classifyVariant(b)
	b.Tags.Set("SetUp", "1")
	b.Tags.Set("FEN", b.ToFEN())
	b.Tags.Set("Variant", b.Variant)

	b.Hash = ComputeHash(b)
	b.hashLog = []uint64{b.Hash}

	b.Generate(DepthDraws)
	if len(b.LegalMoves) == 0 {
		b.refreshNoMovesResult()
	}

	return b, nil
}

// decodeRow decodes one '/'-separated placement row, accumulating
// consecutive digits into a single multi-digit run length so boards wider
// than nine empty squares in a row (reachable via wide Duckboard/
// rectangular variants) round-trip symmetrically with encodeRow's
// strconv.Itoa-based emission.
func decodeRow(row string) []Piece {
	var out []Piece
	runes := []rune(row)
	digits := 0
	flush := func() {
		for i := 0; i < digits; i++ {
			out = append(out, EmptyPiece)
		}
		digits = 0
	}
	for _, c := range runes {
		if c >= '0' && c <= '9' {
			digits = digits*10 + int(c-'0')
			continue
		}
		flush()
		out = append(out, NewPieceFromLetter(c))
	}
	flush()
	return out
}

// classifyVariant picks "Standard" iff only KQRBNP letters are present and
// exactly one king per side exists; otherwise "Fairy" or
// "Bad number of kings".
func classifyVariant(b *Board) string {
	var whiteKings, blackKings int
	onlyStandard := true
	for r := 0; r < b.Ranks; r++ {
		for f := 0; f < b.Files; f++ {
			p := b.Squares[r][f]
			if p.IsEmpty() {
				continue
			}
			if !strings.ContainsRune(standardLetters, p.Letter()) {
				onlyStandard = false
			}
			if p.KindKey == 'K' {
				if p.Side == White {
					whiteKings++
				} else {
					blackKings++
				}
			}
		}
	}
	if whiteKings != 1 || blackKings != 1 {
		return "Bad number of kings"
	}
	if !onlyStandard {
		return "Fairy"
	}
	return "Standard"
}

func (b *Board) refreshNoMovesResult() {
	if b.InCheck() {
		if b.Active == White {
			b.Tags.Set("Result", "0-1")
		} else {
			b.Tags.Set("Result", "1-0")
		}
		b.Tags.Set("Termination", "normal")
		return
	}
	b.Tags.Set("Result", "1/2-1/2")
	b.Tags.Set("Termination", "stalemate")
}
