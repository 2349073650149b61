package adapter

import (
	"fmt"
	"io"
	"time"
)

// uciConfig holds the tunables a UCIEngine is built from, assembled via
// the functional-options idiom the teacher's internal/bot/factory.go uses
// for its own engine construction.
type uciConfig struct {
	path       string
	elo        int
	multiPV    int
	moveTimeMs int
	debugLog   io.Writer
}

func defaultUCIConfig(path string) *uciConfig {
	return &uciConfig{
		path:       path,
		elo:        3600,
		multiPV:    1,
		moveTimeMs: 50,
	}
}

// Option configures a UCIEngine at construction time.
type Option func(*uciConfig) error

// WithElo caps the engine's playing strength; per §4.10, Elo <= 2850
// limits strength, above that the engine plays uncapped.
func WithElo(elo int) Option {
	return func(c *uciConfig) error {
		if elo < 1 {
			return fmt.Errorf("adapter: elo must be positive, got %d", elo)
		}
		c.elo = elo
		return nil
	}
}

// WithMultiPV sets how many principal variations the engine reports,
// which the Taunter/Drawfish/Badfish selectors read from (§4.10).
func WithMultiPV(k int) Option {
	return func(c *uciConfig) error {
		if k < 1 {
			return fmt.Errorf("adapter: multipv must be positive, got %d", k)
		}
		c.multiPV = k
		return nil
	}
}

// WithMoveTime sets the "go movetime" budget in milliseconds.
func WithMoveTime(ms int) Option {
	return func(c *uciConfig) error {
		if ms < 1 {
			return fmt.Errorf("adapter: movetime must be positive, got %d", ms)
		}
		c.moveTimeMs = ms
		return nil
	}
}

// WithDebugLog mirrors every line sent to and read from the engine
// subprocess to w, opt-in and caller-controlled (§10.2).
func WithDebugLog(w io.Writer) Option {
	return func(c *uciConfig) error {
		c.debugLog = w
		return nil
	}
}

// WithMoveTimeBudget is a convenience wrapper over WithMoveTime accepting
// a time.Duration, for callers that think in durations rather than
// milliseconds.
func WithMoveTimeBudget(d time.Duration) Option {
	return WithMoveTime(int(d.Milliseconds()))
}
