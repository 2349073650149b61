package adapter

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/Mgrdich/chesscore/internal/engine"
)

// MultiPVLine is one "info ... multipv N ... cp|mate X ... pv MOVE ..."
// reading: the Nth-best move the engine considered, its score from the
// side-to-move's perspective, and whether that score is a mate count.
// Grounded in the zurichess-lineage UCI client's sortable MultiPV list
// idiom (§10.5).
type MultiPVLine struct {
	Index  int
	Move   string
	Score  int
	IsMate bool
}

// centipawnValue normalizes a MultiPVLine to a single comparable
// centipawn figure, treating any mate-for-me score as effectively
// winning and any mate-against-me score as effectively losing.
func (l MultiPVLine) centipawnValue() int {
	if !l.IsMate {
		return l.Score
	}
	if l.Score >= 0 {
		return 100000 - l.Score
	}
	return -100000 - l.Score
}

// sortMultiPV orders lines best-first from the side to move's perspective.
func sortMultiPV(lines []MultiPVLine) {
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].centipawnValue() > lines[j].centipawnValue()
	})
}

// LastMultiPV returns the MultiPV lines read during the most recent
// SelectMove call, best-first.
func (e *UCIEngine) LastMultiPV() []MultiPVLine {
	return e.lastMultiPV
}

// selectByUCIString resolves a MultiPV line's "pv" field into one of the
// board's legal moves.
func selectByUCIString(board *engine.Board, legal []engine.Move, line MultiPVLine) (engine.Move, bool) {
	for _, m := range legal {
		if uciString(board, m) == line.Move {
			return m, true
		}
	}
	return engine.Move{}, false
}

// TaunterMove picks the worst move that still keeps the evaluation above
// +3 pawns for the side to move, falling back to the single best move if
// none qualifies (§4.10).
func TaunterMove(e *UCIEngine, board *engine.Board, legal []engine.Move) (engine.Move, error) {
	lines := e.LastMultiPV()
	if len(lines) == 0 {
		return engine.Move{}, fmt.Errorf("%w: no MultiPV lines available", ErrEngineUnavailable)
	}
	var worstQualifying *MultiPVLine
	for i := range lines {
		if lines[i].centipawnValue() >= 300 {
			worstQualifying = &lines[i]
		}
	}
	if worstQualifying == nil {
		worstQualifying = &lines[0]
	}
	m, ok := selectByUCIString(board, legal, *worstQualifying)
	if !ok {
		return engine.Move{}, fmt.Errorf("%w: taunter pick %q not legal", ErrEngineUnavailable, worstQualifying.Move)
	}
	return m, nil
}

// DrawfishMove picks the worst move that does not lose (centipawn value
// >= 0), falling back to the best available move if every line loses.
func DrawfishMove(e *UCIEngine, board *engine.Board, legal []engine.Move) (engine.Move, error) {
	lines := e.LastMultiPV()
	if len(lines) == 0 {
		return engine.Move{}, fmt.Errorf("%w: no MultiPV lines available", ErrEngineUnavailable)
	}
	var worstNonLosing *MultiPVLine
	for i := range lines {
		if lines[i].centipawnValue() >= 0 {
			worstNonLosing = &lines[i]
		}
	}
	if worstNonLosing == nil {
		worstNonLosing = &lines[0]
	}
	m, ok := selectByUCIString(board, legal, *worstNonLosing)
	if !ok {
		return engine.Move{}, fmt.Errorf("%w: drawfish pick %q not legal", ErrEngineUnavailable, worstNonLosing.Move)
	}
	return m, nil
}

// BadfishMove always picks the single worst-scored move in the MultiPV
// list.
func BadfishMove(e *UCIEngine, board *engine.Board, legal []engine.Move) (engine.Move, error) {
	lines := e.LastMultiPV()
	if len(lines) == 0 {
		return engine.Move{}, fmt.Errorf("%w: no MultiPV lines available", ErrEngineUnavailable)
	}
	worst := lines[len(lines)-1]
	m, ok := selectByUCIString(board, legal, worst)
	if !ok {
		return engine.Move{}, fmt.Errorf("%w: badfish pick %q not legal", ErrEngineUnavailable, worst.Move)
	}
	return m, nil
}

// PercentBot randomly delegates each move to one of two engines and
// sleeps so total latency is at least 50ms, regardless of which
// sub-engine answered (§4.10).
type PercentBot struct {
	A, B    Engine
	PercentA int // 0-100, chance of delegating to A
	rng     *rand.Rand
}

// NewPercentBot constructs a PercentBot delegating to a with probability
// percentA/100, else to b.
func NewPercentBot(a, b Engine, percentA int) *PercentBot {
	return &PercentBot{A: a, B: b, PercentA: percentA, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (p *PercentBot) Name() string {
	return fmt.Sprintf("PercentBot(%d%% %s / %s)", p.PercentA, p.A.Name(), p.B.Name())
}

func (p *PercentBot) Close() error {
	errA := p.A.Close()
	errB := p.B.Close()
	if errA != nil {
		return errA
	}
	return errB
}

func (p *PercentBot) SelectMove(ctx context.Context, board *engine.Board) (engine.Move, error) {
	start := time.Now()
	delegate := p.B
	if p.rng.Intn(100) < p.PercentA {
		delegate = p.A
	}
	m, err := delegate.SelectMove(ctx, board)
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		time.Sleep(50*time.Millisecond - elapsed)
	}
	return m, err
}
