package adapter

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/Mgrdich/chesscore/internal/engine"
)

// FirstMoveEngine always returns the first legal move, exactly as the
// Python original's first_move() does (§10.6). It is a dependency-free
// smoke-test fixture for the Engine contract, not a search engine.
type FirstMoveEngine struct {
	closed bool
}

func NewFirstMoveEngine() *FirstMoveEngine { return &FirstMoveEngine{} }

func (e *FirstMoveEngine) SelectMove(_ context.Context, board *engine.Board) (engine.Move, error) {
	if e.closed {
		return engine.Move{}, fmt.Errorf("adapter: engine closed")
	}
	legal := board.LegalMoves
	if legal == nil {
		legal = board.Generate(engine.DepthLegal)
	}
	if len(legal) == 0 {
		return engine.Move{}, fmt.Errorf("%w: no legal moves", ErrEngineUnavailable)
	}
	return legal[0], nil
}

func (e *FirstMoveEngine) Name() string { return "FirstMove" }
func (e *FirstMoveEngine) Close() error { e.closed = true; return nil }
func (e *FirstMoveEngine) Info() Info {
	return Info{Name: "FirstMove", Author: "core", Type: TypeTrivial}
}

// RandomEngine picks a legal move with a tactical bias: 70% chance of a
// capture when one exists, else 50% chance of a check, else any legal
// move — generalized from the teacher's internal/bot/random.go weighted
// selection and computer.py's random_move() (§10.6).
type RandomEngine struct {
	rng    *rand.Rand
	closed bool
}

func NewRandomEngine() *RandomEngine {
	return &RandomEngine{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (e *RandomEngine) SelectMove(_ context.Context, board *engine.Board) (engine.Move, error) {
	if e.closed {
		return engine.Move{}, fmt.Errorf("adapter: engine closed")
	}
	legal := board.LegalMoves
	if legal == nil {
		legal = board.Generate(engine.DepthLegal)
	}
	if len(legal) == 0 {
		return engine.Move{}, fmt.Errorf("%w: no legal moves", ErrEngineUnavailable)
	}
	if len(legal) == 1 {
		return legal[0], nil
	}

	captures := filterCaptures(board, legal)
	checks := filterChecks(board, legal)

	if e.rng.Float64() < 0.7 && len(captures) > 0 {
		return captures[e.rng.Intn(len(captures))], nil
	}
	if e.rng.Float64() < 0.5 && len(checks) > 0 {
		return checks[e.rng.Intn(len(checks))], nil
	}
	return legal[e.rng.Intn(len(legal))], nil
}

func (e *RandomEngine) Name() string { return "Random" }
func (e *RandomEngine) Close() error { e.closed = true; return nil }
func (e *RandomEngine) Info() Info {
	return Info{Name: "Random", Author: "core", Type: TypeTrivial, Features: map[string]bool{
		"tactical_bias": true,
	}}
}

func filterCaptures(board *engine.Board, moves []engine.Move) []engine.Move {
	var out []engine.Move
	for _, m := range moves {
		if m.Capture != nil {
			out = append(out, m)
		}
	}
	return out
}

// filterChecks returns moves annotated with a check or checkmate suffix;
// the board's own generator already appends "+"/"#" at generation depths
// >= 2, so no extra make/undo is needed here.
func filterChecks(board *engine.Board, moves []engine.Move) []engine.Move {
	var out []engine.Move
	for _, m := range moves {
		if len(m.Name) > 0 {
			last := m.Name[len(m.Name)-1]
			if last == '+' || last == '#' {
				out = append(out, m)
			}
		}
	}
	return out
}
