package selfplay

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Mgrdich/chesscore/internal/adapter"
	"github.com/Mgrdich/chesscore/internal/engine"
)

// maxMoveCount is the maximum number of moves before a forced draw,
// guarding against engines that loop a non-terminating position.
const maxMoveCount = 500

// moveTimeout bounds how long a single SelectMove call may block.
const moveTimeout = 30 * time.Second

// GameSession drives a single game between two adapter.Engine instances.
// It runs the game loop in a goroutine and provides thread-safe access to
// the current board state and move history.
type GameSession struct {
	mu          sync.Mutex
	gameNumber  int
	board       *engine.Board
	variant     string
	whiteEngine adapter.Engine
	blackEngine adapter.Engine
	whiteName   string
	blackName   string
	moveHistory []engine.Move
	state       SessionState
	paused      bool
	result      *GameResult
	startTime   time.Time
	speed       *PlaybackSpeed
	stopCh      chan struct{}
	pauseCh     chan struct{}
	resumeCh    chan struct{}
}

// NewGameSession creates a new session ready to be run over a board of the
// given variant. speed is a pointer to a shared PlaybackSpeed value that
// can be modified externally to change the delay between moves.
func NewGameSession(gameNumber int, variant string, whiteEngine, blackEngine adapter.Engine, whiteName, blackName string, speed *PlaybackSpeed) (*GameSession, error) {
	board, err := engine.NewBoard(variant)
	if err != nil {
		return nil, fmt.Errorf("selfplay: %w", err)
	}
	return &GameSession{
		gameNumber:  gameNumber,
		board:       board,
		variant:     variant,
		whiteEngine: whiteEngine,
		blackEngine: blackEngine,
		whiteName:   whiteName,
		blackName:   blackName,
		moveHistory: make([]engine.Move, 0, 80),
		state:       StateRunning,
		speed:       speed,
		stopCh:      make(chan struct{}),
		pauseCh:     make(chan struct{}, 1),
		resumeCh:    make(chan struct{}, 1),
	}, nil
}

// Run executes the game loop. Intended to be called as a goroutine; it
// plays moves alternately until the game ends, an engine errors, or the
// session is stopped.
func (s *GameSession) Run() {
	s.mu.Lock()
	s.startTime = time.Now()
	s.mu.Unlock()

	defer s.cleanup()

	for {
		select {
		case <-s.stopCh:
			s.finish(StateFinished)
			return
		default:
		}

		select {
		case <-s.pauseCh:
			select {
			case <-s.resumeCh:
			case <-s.stopCh:
				s.finish(StateFinished)
				return
			}
		case <-s.stopCh:
			s.finish(StateFinished)
			return
		default:
		}

		s.mu.Lock()
		activeSide := s.board.Active
		var currentEngine adapter.Engine
		var currentName string
		if activeSide == engine.White {
			currentEngine = s.whiteEngine
			currentName = s.whiteName
		} else {
			currentEngine = s.blackEngine
			currentName = s.blackName
		}
		boardCopy := s.board.Clone()
		s.mu.Unlock()

		moveCtx, cancel := context.WithTimeout(context.Background(), moveTimeout)
		move, err := currentEngine.SelectMove(moveCtx, boardCopy)
		cancel()
		if err != nil {
			s.finishWithError(currentName, activeSide, err)
			return
		}

		s.mu.Lock()
		s.board.MakeMove(move, true)
		s.moveHistory = append(s.moveHistory, move)
		moveCount := len(s.moveHistory)

		if result, ok := s.board.Tags.Get("Result"); ok && result != "*" {
			s.recordResult(result, moveCount)
			s.mu.Unlock()
			return
		}

		if moveCount >= maxMoveCount {
			s.result = &GameResult{
				GameNumber:  s.gameNumber,
				Winner:      "Draw",
				EndReason:   "move limit exceeded",
				MoveCount:   moveCount,
				Duration:    time.Since(s.startTime),
				FinalFEN:    s.board.ToFEN(),
				MoveHistory: s.copyMoveHistory(),
			}
			s.state = StateFinished
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		s.mu.Lock()
		delay := s.speed.Duration()
		s.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-s.stopCh:
				s.finish(StateFinished)
				return
			}
		}
	}
}

// Pause signals the session to pause. Safe to call multiple times; a
// no-op if already paused or finished.
func (s *GameSession) Pause() {
	s.mu.Lock()
	if s.paused || s.state == StateFinished {
		s.mu.Unlock()
		return
	}
	s.paused = true
	s.state = StatePaused
	s.mu.Unlock()

	select {
	case s.pauseCh <- struct{}{}:
	default:
	}
}

// Resume signals the session to continue after a pause.
func (s *GameSession) Resume() {
	s.mu.Lock()
	if !s.paused {
		s.mu.Unlock()
		return
	}
	s.paused = false
	s.state = StateRunning
	s.mu.Unlock()

	select {
	case s.resumeCh <- struct{}{}:
	default:
	}
}

// SetSpeed updates the playback speed for this session.
func (s *GameSession) SetSpeed(speed PlaybackSpeed) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*s.speed = speed
}

// Abort signals the session to stop immediately. Safe to call multiple
// times.
func (s *GameSession) Abort() {
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
}

// CurrentBoard returns a deep copy of the current board state.
func (s *GameSession) CurrentBoard() *engine.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Clone()
}

// CurrentMoveHistory returns a copy of the move history so far.
func (s *GameSession) CurrentMoveHistory() []engine.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyMoveHistory()
}

// IsFinished reports whether the session has completed.
func (s *GameSession) IsFinished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateFinished
}

// Result returns the game result, or nil if the game is not finished.
func (s *GameSession) Result() *GameResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// GameNumber returns the sequence number of this game.
func (s *GameSession) GameNumber() int { return s.gameNumber }

// Duration returns the elapsed time since the game started, or the final
// duration once finished.
func (s *GameSession) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.startTime.IsZero() {
		return 0
	}
	if s.state == StateFinished && s.result != nil {
		return s.result.Duration
	}
	return time.Since(s.startTime)
}

// State returns the current session state.
func (s *GameSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// finish transitions to the given state. Must not be called with s.mu held.
func (s *GameSession) finish(state SessionState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// recordResult translates a Result tag value into a GameResult. Must be
// called with s.mu held.
func (s *GameSession) recordResult(result string, moveCount int) {
	termination, _ := s.board.Tags.Get("Termination")

	winner := "Draw"
	var winnerColor engine.Side
	switch result {
	case "1-0":
		winner = s.whiteName
		winnerColor = engine.White
	case "0-1":
		winner = s.blackName
		winnerColor = engine.Black
	}

	s.result = &GameResult{
		GameNumber:  s.gameNumber,
		Winner:      winner,
		WinnerColor: winnerColor,
		EndReason:   termination,
		MoveCount:   moveCount,
		Duration:    time.Since(s.startTime),
		FinalFEN:    s.board.ToFEN(),
		MoveHistory: s.copyMoveHistory(),
	}
	s.state = StateFinished
}

// finishWithError records the game result when an engine fails to produce
// a move; the opponent of the failing side wins.
func (s *GameSession) finishWithError(engineName string, engineSide engine.Side, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var winner string
	var winnerColor engine.Side
	if engineSide == engine.White {
		winner = s.blackName
		winnerColor = engine.Black
	} else {
		winner = s.whiteName
		winnerColor = engine.White
	}

	s.result = &GameResult{
		GameNumber:  s.gameNumber,
		Winner:      winner,
		WinnerColor: winnerColor,
		EndReason:   fmt.Sprintf("engine error (%s): %v", engineName, err),
		MoveCount:   len(s.moveHistory),
		Duration:    time.Since(s.startTime),
		FinalFEN:    s.board.ToFEN(),
		MoveHistory: s.copyMoveHistory(),
	}
	s.state = StateFinished
}

// copyMoveHistory returns a copy of the move history slice. Must be
// called with s.mu held.
func (s *GameSession) copyMoveHistory() []engine.Move {
	moves := make([]engine.Move, len(s.moveHistory))
	copy(moves, s.moveHistory)
	return moves
}

// cleanup closes both engines. Idempotent.
func (s *GameSession) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.whiteEngine != nil {
		_ = s.whiteEngine.Close()
		s.whiteEngine = nil
	}
	if s.blackEngine != nil {
		_ = s.blackEngine.Close()
		s.blackEngine = nil
	}
}
