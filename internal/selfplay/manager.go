package selfplay

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/Mgrdich/chesscore/internal/adapter"
)

// maxConcurrentGames limits how many games run simultaneously, bounding
// CPU and subprocess usage when running a large series.
const maxConcurrentGames = 50

// MaxConcurrentGames returns the hard cap on concurrent games.
func MaxConcurrentGames() int { return maxConcurrentGames }

// CalculateDefaultConcurrency recommends a concurrency level from the
// host's CPU count: up to 2 CPUs use numCPU, up to 4 use numCPU*1.5,
// beyond that numCPU*2, capped at maxConcurrentGames.
func CalculateDefaultConcurrency() int {
	return calculateDefaultConcurrencyWithCPU(runtime.NumCPU())
}

func calculateDefaultConcurrencyWithCPU(numCPU int) int {
	var concurrency int
	switch {
	case numCPU <= 2:
		concurrency = numCPU
	case numCPU <= 4:
		concurrency = int(float64(numCPU) * 1.5)
	default:
		concurrency = numCPU * 2
	}
	if concurrency > maxConcurrentGames {
		concurrency = maxConcurrentGames
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return concurrency
}

// EngineFactory constructs a fresh adapter.Engine for one game. Sessions
// call it once per side per game, since a UCI subprocess is not safely
// shared across concurrent games.
type EngineFactory func() (adapter.Engine, error)

// SessionManager orchestrates N parallel game sessions between two engine
// factories.
type SessionManager struct {
	mu          sync.Mutex
	sessions    []*GameSession
	state       SessionState
	speed       PlaybackSpeed
	variant     string
	whiteFactory EngineFactory
	blackFactory EngineFactory
	whiteName   string
	blackName   string
	gameCount   int
	concurrency int
	semaphore   chan struct{}
	abortCh     chan struct{}
	activeCount int32
}

// NewSessionManager creates a manager configured for the given matchup.
// If concurrency is 0, it auto-detects from CPU count; values above
// maxConcurrentGames are capped.
func NewSessionManager(variant string, whiteFactory, blackFactory EngineFactory, whiteName, blackName string, gameCount, concurrency int) *SessionManager {
	effectiveConcurrency := concurrency
	if effectiveConcurrency == 0 {
		effectiveConcurrency = CalculateDefaultConcurrency()
	}
	if effectiveConcurrency > maxConcurrentGames {
		effectiveConcurrency = maxConcurrentGames
	}
	if effectiveConcurrency < 1 {
		effectiveConcurrency = 1
	}

	return &SessionManager{
		state:        StateRunning,
		speed:        SpeedNormal,
		variant:      variant,
		whiteFactory: whiteFactory,
		blackFactory: blackFactory,
		whiteName:    whiteName,
		blackName:    blackName,
		gameCount:    gameCount,
		concurrency:  effectiveConcurrency,
	}
}

// Start creates a session (and its engines) for each game and launches a
// coordinator goroutine that runs up to concurrency games at once, in
// order.
func (m *SessionManager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions = make([]*GameSession, m.gameCount)

	semaphoreSize := m.concurrency
	if m.gameCount < semaphoreSize {
		semaphoreSize = m.gameCount
	}
	m.semaphore = make(chan struct{}, semaphoreSize)
	m.abortCh = make(chan struct{})

	for i := 0; i < m.gameCount; i++ {
		whiteEngine, err := m.whiteFactory()
		if err != nil {
			m.abortSessions()
			return fmt.Errorf("selfplay: white engine: %w", err)
		}
		blackEngine, err := m.blackFactory()
		if err != nil {
			_ = whiteEngine.Close()
			m.abortSessions()
			return fmt.Errorf("selfplay: black engine: %w", err)
		}

		sessionSpeed := new(PlaybackSpeed)
		*sessionSpeed = m.speed
		session, err := NewGameSession(i+1, m.variant, whiteEngine, blackEngine, m.whiteName, m.blackName, sessionSpeed)
		if err != nil {
			_ = whiteEngine.Close()
			_ = blackEngine.Close()
			m.abortSessions()
			return err
		}
		m.sessions[i] = session
	}

	go m.coordinateGames()
	return nil
}

// coordinateGames starts games sequentially as semaphore slots free up,
// so game 1 always starts before game 2, etc.
func (m *SessionManager) coordinateGames() {
	for i := 0; i < m.gameCount; i++ {
		select {
		case m.semaphore <- struct{}{}:
			atomic.AddInt32(&m.activeCount, 1)
			go func(idx int) {
				defer func() {
					atomic.AddInt32(&m.activeCount, -1)
					<-m.semaphore
				}()
				m.sessions[idx].Run()
			}(i)
		case <-m.abortCh:
			return
		}
	}
}

// Pause pauses all running sessions.
func (m *SessionManager) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StatePaused
	for _, s := range m.sessions {
		if s != nil && !s.IsFinished() {
			s.Pause()
		}
	}
}

// Resume resumes all paused sessions.
func (m *SessionManager) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateRunning
	for _, s := range m.sessions {
		if s != nil && s.State() == StatePaused {
			s.Resume()
		}
	}
}

// SetSpeed updates the playback speed for all sessions.
func (m *SessionManager) SetSpeed(speed PlaybackSpeed) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.speed = speed
	for _, s := range m.sessions {
		if s != nil {
			s.SetSpeed(speed)
		}
	}
}

// Abort stops all sessions without waiting for their engines to close.
func (m *SessionManager) Abort() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateFinished
	m.closeAbortChannel()
	m.abortSessions()
}

// Stop aborts all sessions and closes every engine, then releases the
// session slice. Prefer this over Abort for graceful shutdown.
func (m *SessionManager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = StateFinished
	m.closeAbortChannel()
	m.abortSessions()
	m.cleanupAllSessions()
	m.sessions = nil
}

func (m *SessionManager) closeAbortChannel() {
	if m.abortCh != nil {
		select {
		case <-m.abortCh:
		default:
			close(m.abortCh)
		}
	}
}

func (m *SessionManager) abortSessions() {
	for _, s := range m.sessions {
		if s != nil && !s.IsFinished() {
			s.Abort()
		}
	}
}

func (m *SessionManager) cleanupAllSessions() {
	for _, s := range m.sessions {
		if s != nil {
			s.cleanup()
		}
	}
}

// Sessions returns the list of game sessions.
func (m *SessionManager) Sessions() []*GameSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*GameSession, len(m.sessions))
	copy(result, m.sessions)
	return result
}

// AllFinished reports whether every session has completed.
func (m *SessionManager) AllFinished() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sessions) == 0 {
		return false
	}
	for _, s := range m.sessions {
		if s == nil || !s.IsFinished() {
			return false
		}
	}
	return true
}

// State returns the current manager state.
func (m *SessionManager) State() SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Speed returns the current playback speed.
func (m *SessionManager) Speed() PlaybackSpeed {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.speed
}

// Concurrency returns the effective concurrency setting.
func (m *SessionManager) Concurrency() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.concurrency
}

// RunningCount returns the number of games currently executing.
func (m *SessionManager) RunningCount() int {
	return int(atomic.LoadInt32(&m.activeCount))
}

// QueuedCount returns the number of games waiting to start.
func (m *SessionManager) QueuedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	finished := 0
	for _, s := range m.sessions {
		if s != nil && s.IsFinished() {
			finished++
		}
	}
	running := int(atomic.LoadInt32(&m.activeCount))
	queued := m.gameCount - finished - running
	if queued < 0 {
		queued = 0
	}
	return queued
}

// Stats computes aggregate statistics from all finished sessions.
func (m *SessionManager) Stats() *AggregateStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	var results []GameResult
	for _, s := range m.sessions {
		if s != nil && s.IsFinished() {
			if r := s.Result(); r != nil {
				results = append(results, *r)
			}
		}
	}

	return ComputeStats(results, m.whiteName, m.blackName)
}
