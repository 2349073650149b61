package adapter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/Mgrdich/chesscore/internal/engine"
)

// UCIEngine is a long-lived subprocess client speaking a UCI-like
// protocol (§4.10). It lazily spawns the engine process on first use and
// serializes requests with a mutex, since at most one outstanding "go"
// command is allowed per subprocess (§5).
type UCIEngine struct {
	cfg *uciConfig

	mu      sync.Mutex
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	lines   chan string
	started bool

	lastMultiPV []MultiPVLine
}

// NewUCIEngine constructs a client for the engine binary at path. The
// process is not started until the first SelectMove call (§5: lazy-open
// on first use).
func NewUCIEngine(path string, opts ...Option) (*UCIEngine, error) {
	cfg := defaultUCIConfig(path)
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return &UCIEngine{cfg: cfg}, nil
}

func (e *UCIEngine) Name() string {
	return "UCI(" + e.cfg.path + ")"
}

// spawn launches the subprocess and consumes its initial greeting line.
// Callers must hold e.mu.
func (e *UCIEngine) spawn() error {
	if e.started {
		return nil
	}
	cmd := exec.Command(e.cfg.path)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}

	lines := make(chan string, 64)
	go func() {
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			line := scanner.Text()
			e.debug("< " + line)
			lines <- line
		}
		close(lines)
	}()

	e.cmd = cmd
	e.stdin = stdin
	e.lines = lines
	e.started = true
	return nil
}

func (e *UCIEngine) debug(line string) {
	if e.cfg.debugLog != nil {
		fmt.Fprintln(e.cfg.debugLog, line)
	}
}

func (e *UCIEngine) write(line string) error {
	e.debug("> " + line)
	_, err := io.WriteString(e.stdin, line+"\n")
	return err
}

// SelectMove drives one full UCI exchange: strength/MultiPV options,
// position, go movetime, then reads info lines (recording the latest
// score) until bestmove arrives. The subprocess read races ctx.Done() via
// the background line-reader goroutine feeding e.lines (§5).
func (e *UCIEngine) SelectMove(ctx context.Context, board *engine.Board) (engine.Move, error) {
	if board.Variant != "Standard" {
		return engine.Move{}, fmt.Errorf("%w: non-Standard variant %q", ErrEngineUnavailable, board.Variant)
	}
	legal := board.LegalMoves
	if legal == nil {
		legal = board.Generate(engine.DepthLegal)
	}
	if len(legal) == 0 {
		return engine.Move{}, fmt.Errorf("%w: no legal moves", ErrEngineUnavailable)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.spawn(); err != nil {
		return engine.Move{}, err
	}

	if err := e.configureStrength(); err != nil {
		return engine.Move{}, err
	}
	if err := e.write(fmt.Sprintf("setoption name MultiPV value %d", e.cfg.multiPV)); err != nil {
		return engine.Move{}, fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	if err := e.write("position fen " + board.ToFEN()); err != nil {
		return engine.Move{}, fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	if err := e.write(fmt.Sprintf("go movetime %d", e.cfg.moveTimeMs)); err != nil {
		return engine.Move{}, fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}

	best, multipv, err := e.readUntilBestmove(ctx)
	if err != nil {
		return engine.Move{}, err
	}
	e.lastMultiPV = multipv

	e.applyEvaluation(board, multipv)

	return resolveUCIMove(board, legal, best)
}

func (e *UCIEngine) configureStrength() error {
	if e.cfg.elo > 2850 {
		return e.write("setoption name UCI_LimitStrength value false")
	}
	elo := e.cfg.elo
	if elo < 1350 {
		elo = 1350
	}
	if err := e.write("setoption name UCI_LimitStrength value true"); err != nil {
		return err
	}
	return e.write(fmt.Sprintf("setoption name UCI_Elo value %d", elo))
}

// readUntilBestmove consumes info lines (tracking the latest score per
// MultiPV slot) until a bestmove line arrives, or ctx is cancelled.
func (e *UCIEngine) readUntilBestmove(ctx context.Context) (string, []MultiPVLine, error) {
	slots := make(map[int]MultiPVLine)
	for {
		select {
		case <-ctx.Done():
			return "", nil, fmt.Errorf("%w: %v", ErrEngineUnavailable, ctx.Err())
		case line, ok := <-e.lines:
			if !ok {
				return "", nil, fmt.Errorf("%w: engine process ended", ErrEngineUnavailable)
			}
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			if fields[0] == "bestmove" {
				return fields[1], flattenMultiPV(slots), nil
			}
			if fields[0] == "info" {
				if pv, ok := parseInfoLine(fields); ok {
					slots[pv.Index] = pv
				}
			}
		}
	}
}

func flattenMultiPV(slots map[int]MultiPVLine) []MultiPVLine {
	out := make([]MultiPVLine, 0, len(slots))
	for _, v := range slots {
		out = append(out, v)
	}
	sortMultiPV(out)
	return out
}

// parseInfoLine extracts "multipv N ... cp|mate X ... pv MOVE ..." fields.
func parseInfoLine(fields []string) (MultiPVLine, bool) {
	var pv MultiPVLine
	pv.Index = 1
	found := false
	for i, f := range fields {
		switch f {
		case "multipv":
			if i+1 < len(fields) {
				if n, err := strconv.Atoi(fields[i+1]); err == nil {
					pv.Index = n
				}
			}
		case "cp":
			if i+1 < len(fields) {
				if n, err := strconv.Atoi(fields[i+1]); err == nil {
					pv.Score = n
					pv.IsMate = false
					found = true
				}
			}
		case "mate":
			if i+1 < len(fields) {
				if n, err := strconv.Atoi(fields[i+1]); err == nil {
					pv.Score = n
					pv.IsMate = true
					found = true
				}
			}
		case "pv":
			if i+1 < len(fields) {
				pv.Move = fields[i+1]
			}
		}
	}
	return pv, found
}

// applyEvaluation converts the top MultiPV line's score into the board's
// evaluation convention: negated if Black to move, cp/100, integer mate
// count kept, mate-in-0 becomes +/-Inf by side (§4.10).
func (e *UCIEngine) applyEvaluation(board *engine.Board, multipv []MultiPVLine) {
	if len(multipv) == 0 {
		return
	}
	top := multipv[0]
	for _, pv := range multipv {
		if pv.Index < top.Index {
			top = pv
		}
	}
	score := float64(top.Score)
	if board.Active == engine.Black {
		score = -score
	}
	if !top.IsMate {
		board.Evaluation = score / 100
		return
	}
	if top.Score == 0 {
		if board.Active == engine.Black {
			board.Evaluation = math.Inf(1)
		} else {
			board.Evaluation = math.Inf(-1)
		}
		return
	}
	board.Evaluation = score
}

// resolveUCIMove reconstructs each legal move's UCI long-algebraic string
// and compares it against best, rather than parsing best into
// coordinates directly — the same reconstruct-and-compare algorithm the
// Python original's stockfish() tail loop uses (§10.6).
func resolveUCIMove(board *engine.Board, legal []engine.Move, best string) (engine.Move, error) {
	for _, m := range legal {
		if uciString(board, m) == best {
			return m, nil
		}
	}
	return engine.Move{}, fmt.Errorf("%w: engine move %q not in legal set", ErrEngineUnavailable, best)
}

func uciString(board *engine.Board, m engine.Move) string {
	promote := ""
	if idx := strings.IndexByte(m.Name, '='); idx >= 0 && idx+1 < len(m.Name) {
		promote = strings.ToLower(string(m.Name[idx+1]))
	}
	return board.SquareString(m.From) + board.SquareString(m.To) + promote
}

// Close terminates the subprocess, if running. Idempotent.
func (e *UCIEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.started || e.cmd.Process == nil {
		return nil
	}
	if e.stdin != nil {
		_ = e.stdin.Close()
	}
	err := e.cmd.Process.Kill()
	_ = e.cmd.Wait()
	e.started = false
	return err
}

// Info reports engine metadata for display/debugging.
func (e *UCIEngine) Info() Info {
	return Info{
		Name:   e.Name(),
		Author: "external",
		Type:   TypeUCI,
		Features: map[string]bool{
			"multipv": e.cfg.multiPV > 1,
		},
	}
}
