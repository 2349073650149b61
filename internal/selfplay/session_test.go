package selfplay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mgrdich/chesscore/internal/adapter"
)

func newInstantSpeed() *PlaybackSpeed {
	s := SpeedInstant
	return &s
}

func TestNewGameSession_InvalidVariant(t *testing.T) {
	_, err := NewGameSession(1, "NotAVariant", adapter.NewRandomEngine(), adapter.NewRandomEngine(), "White", "Black", newInstantSpeed())
	assert.Error(t, err)
}

func TestGameSession_RunCompletesWithResult(t *testing.T) {
	s, err := NewGameSession(1, "Standard", adapter.NewRandomEngine(), adapter.NewRandomEngine(), "White", "Black", newInstantSpeed())
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		s.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		s.Abort()
		t.Fatal("game did not finish within timeout")
	}

	assert.True(t, s.IsFinished())
	result := s.Result()
	require.NotNil(t, result)
	assert.NotEmpty(t, result.FinalFEN)
	assert.NotEmpty(t, result.EndReason)
	assert.Equal(t, len(result.MoveHistory), result.MoveCount)
}

func TestGameSession_AbortStopsRun(t *testing.T) {
	s, err := NewGameSession(1, "Standard", adapter.NewRandomEngine(), adapter.NewRandomEngine(), "White", "Black", newInstantSpeed())
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		s.Run()
		close(done)
	}()

	s.Abort()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("aborted session did not stop")
	}
	assert.True(t, s.IsFinished())
}

func TestGameSession_PauseResume(t *testing.T) {
	normal := SpeedNormal
	s, err := NewGameSession(1, "Standard", adapter.NewRandomEngine(), adapter.NewRandomEngine(), "White", "Black", &normal)
	require.NoError(t, err)

	go s.Run()
	time.Sleep(20 * time.Millisecond)

	s.Pause()
	assert.Equal(t, StatePaused, s.State())

	s.Resume()
	assert.Equal(t, StateRunning, s.State())

	s.Abort()
	time.Sleep(50 * time.Millisecond)
}

func TestGameSession_CurrentBoardIsACopy(t *testing.T) {
	s, err := NewGameSession(1, "Standard", adapter.NewFirstMoveEngine(), adapter.NewFirstMoveEngine(), "White", "Black", newInstantSpeed())
	require.NoError(t, err)

	b1 := s.CurrentBoard()
	b2 := s.CurrentBoard()
	assert.NotSame(t, b1, b2)
	assert.Equal(t, b1.ToFEN(), b2.ToFEN())
}
