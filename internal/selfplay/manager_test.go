package selfplay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mgrdich/chesscore/internal/adapter"
)

func randomFactory() (adapter.Engine, error) {
	return adapter.NewRandomEngine(), nil
}

func firstMoveFactory() (adapter.Engine, error) {
	return adapter.NewFirstMoveEngine(), nil
}

func TestNewSessionManager(t *testing.T) {
	m := NewSessionManager("Standard", randomFactory, randomFactory, "White", "Black", 3, 0)
	require.NotNil(t, m)
	assert.Equal(t, 3, m.gameCount)
	assert.Equal(t, StateRunning, m.State())
}

func TestSessionManagerStartLaunchesSessions(t *testing.T) {
	m := NewSessionManager("Standard", randomFactory, randomFactory, "White", "Black", 3, 0)
	require.NoError(t, m.Start())
	defer m.Stop()

	sessions := m.Sessions()
	require.Len(t, sessions, 3)
	for _, s := range sessions {
		assert.NotNil(t, s)
	}
}

func TestSessionManagerAllComplete(t *testing.T) {
	m := NewSessionManager("Standard", randomFactory, firstMoveFactory, "Random", "FirstMove", 3, 0)
	m.speed = SpeedInstant
	require.NoError(t, m.Start())

	deadline := time.After(60 * time.Second)
	for !m.AllFinished() {
		select {
		case <-deadline:
			m.Abort()
			t.Fatal("games did not complete within timeout")
		default:
			time.Sleep(20 * time.Millisecond)
		}
	}

	stats := m.Stats()
	assert.Equal(t, 3, stats.TotalGames)
}

func TestSessionManagerAbortStopsGames(t *testing.T) {
	m := NewSessionManager("Standard", randomFactory, randomFactory, "White", "Black", 50, 4)
	m.speed = SpeedNormal
	require.NoError(t, m.Start())

	time.Sleep(30 * time.Millisecond)
	m.Abort()

	time.Sleep(100 * time.Millisecond)
	assert.LessOrEqual(t, m.RunningCount(), 4)
}

func TestCalculateDefaultConcurrency(t *testing.T) {
	assert.Equal(t, 2, calculateDefaultConcurrencyWithCPU(2))
	assert.Equal(t, 6, calculateDefaultConcurrencyWithCPU(4))
	assert.Equal(t, 16, calculateDefaultConcurrencyWithCPU(8))
	assert.Equal(t, maxConcurrentGames, calculateDefaultConcurrencyWithCPU(1000))
	assert.Equal(t, 1, calculateDefaultConcurrencyWithCPU(0))
}

func TestNewSessionManager_FactoryErrorAbortsStart(t *testing.T) {
	failing := func() (adapter.Engine, error) {
		return nil, assert.AnError
	}
	m := NewSessionManager("Standard", failing, randomFactory, "White", "Black", 2, 1)
	err := m.Start()
	assert.Error(t, err)
}
