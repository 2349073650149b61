package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// ToPGN emits the tag-pair block, a blank line, and the move text: moves
// paired "N. W B", a ".." placeholder when Black moved first (derived from
// a FEN tag), castling tokens as the generator names them, and a trailing
// result token (§4.8).
func (b *Board) ToPGN() string {
	var sb strings.Builder
	for _, k := range b.Tags.Keys() {
		v, _ := b.Tags.Get(k)
		sb.WriteString(fmt.Sprintf("[%s %q]\n", k, v))
	}
	sb.WriteString("\n")

	startNumber, blackFirst := pgnStartingPoint(b.Tags)
	sb.WriteString(renderMoveText(b.History, startNumber, blackFirst))

	if result, ok := b.Tags.Get("Result"); ok {
		sb.WriteString(result)
	} else {
		sb.WriteString("*")
	}
	return sb.String()
}

// pgnStartingPoint derives the first move number and whether Black moves
// first, from a FEN tag if one is present (§4.8).
func pgnStartingPoint(tags *TagPairs) (int, bool) {
	fen, ok := tags.Get("FEN")
	if !ok || fen == "" {
		return 1, false
	}
	fields := strings.Fields(fen)
	startNumber := 1
	if len(fields) > 5 {
		if n, err := strconv.Atoi(fields[5]); err == nil {
			startNumber = n
		}
	}
	blackFirst := len(fields) > 1 && fields[1] == "b"
	return startNumber, blackFirst
}

func renderMoveText(history []Move, startNumber int, blackFirst bool) string {
	var sb strings.Builder
	number := startNumber
	i := 0
	if blackFirst && len(history) > 0 {
		sb.WriteString(fmt.Sprintf("%d. .. %s ", number, history[0].Name))
		number++
		i = 1
	}
	for i < len(history) {
		sb.WriteString(fmt.Sprintf("%d. %s ", number, history[i].Name))
		i++
		if i < len(history) {
			sb.WriteString(history[i].Name)
			sb.WriteString(" ")
			i++
		}
		number++
	}
	return sb.String()
}

// knownResults lists the result tokens PGN readers recognize as the
// game-terminating final token (§6).
var knownResults = map[string]bool{
	"1-0": true, "0-1": true, "1/2-1/2": true, "*": true,
}

// ParsePGN applies the move text of a PGN game from the standard starting
// position (or the FEN named by a SetUp/FEN tag pair, if present),
// returning the resulting Board. A move that fails SAN resolution aborts
// the parse, leaving the board at whatever prefix of moves was
// successfully applied (§4.8, §4.11).
func ParsePGN(pgn string) (*Board, error) {
	tags, body := splitTagsAndMovetext(pgn)

	b, err := boardFromTags(tags)
	if err != nil {
		return nil, err
	}
	for _, k := range tagOrder(tags) {
		b.Tags.Set(k, tags[k])
	}

	tokens := tokenizeMoveText(body)
	for _, tok := range tokens {
		tok = stripAnnotation(tok)
		if tok == "" || isMoveNumberToken(tok) || isNAGToken(tok) {
			continue
		}
		if knownResults[tok] {
			b.Tags.Set("Result", tok)
			continue
		}
		if _, err := b.MakeSAN(tok); err != nil {
			return b, nil
		}
	}
	return b, nil
}

// splitTagsAndMovetext parses the `[Tag "value"]` block into an ordered
// map and returns the remainder as the move-text body.
func splitTagsAndMovetext(pgn string) (map[string]string, string) {
	tags := make(map[string]string)
	var order []string
	lines := strings.Split(pgn, "\n")
	i := 0
	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			i++
			break
		}
		if !strings.HasPrefix(line, "[") {
			break
		}
		k, v, ok := parseTagLine(line)
		if !ok {
			continue
		}
		if _, seen := tags[k]; !seen {
			order = append(order, k)
		}
		tags[k] = v
	}
	tags["__order__"] = strings.Join(order, "\x00")
	body := strings.Join(lines[i:], "\n")
	return tags, body
}

func tagOrder(tags map[string]string) []string {
	raw := tags["__order__"]
	delete(tags, "__order__")
	if raw == "" {
		return nil
	}
	return strings.Split(raw, "\x00")
}

func parseTagLine(line string) (string, string, bool) {
	line = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
	sp := strings.IndexByte(line, ' ')
	if sp < 0 {
		return "", "", false
	}
	key := line[:sp]
	val := strings.TrimSpace(line[sp+1:])
	val = strings.Trim(val, "\"")
	return key, val, true
}

// boardFromTags constructs the starting board: from a FEN tag when
// SetUp/FEN are present, else the Standard starting position.
func boardFromTags(tags map[string]string) (*Board, error) {
	if fen, ok := tags["FEN"]; ok && fen != "" {
		return ParseFEN(fen)
	}
	return NewBoard("Standard")
}

// tokenizeMoveText strips {...} comments (honoring \{ and \\ escapes) and
// balanced (...) variations, then splits on whitespace (§4.8).
func tokenizeMoveText(body string) []string {
	stripped := stripComments(body)
	stripped = stripVariations(stripped)
	return strings.Fields(stripped)
}

func stripComments(s string) string {
	var sb strings.Builder
	inComment := false
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if inComment {
			if c == '\\' && i+1 < len(runes) {
				i++ // skip the escaped character entirely
				continue
			}
			if c == '}' {
				inComment = false
			}
			continue
		}
		if c == '{' {
			inComment = true
			continue
		}
		sb.WriteRune(c)
	}
	return sb.String()
}

func stripVariations(s string) string {
	var sb strings.Builder
	depth := 0
	for _, c := range s {
		switch c {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				sb.WriteRune(c)
			}
		}
	}
	return sb.String()
}

func isMoveNumberToken(tok string) bool {
	trimmed := strings.TrimRight(tok, ".")
	if trimmed == "" {
		return true
	}
	for _, c := range trimmed {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func isNAGToken(tok string) bool {
	return strings.HasPrefix(tok, "$")
}
