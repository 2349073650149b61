// Package adapter provides the external-engine client (C10): a text
// protocol bridge to a UCI-style subprocess, plus a couple of trivial
// dependency-free move-selection engines used to smoke-test the same
// interface.
package adapter

import (
	"context"

	"github.com/Mgrdich/chesscore/internal/engine"
)

// ErrEngineUnavailable is returned when the external engine subprocess
// cannot be launched or communicated with (§7); callers decide whether to
// fall back to a trivial engine.
var ErrEngineUnavailable = engine.ErrEngineUnavailable

// Engine selects a move for the side to move on a board. The context
// allows callers to cancel or time out a blocking subprocess exchange.
type Engine interface {
	SelectMove(ctx context.Context, board *engine.Board) (engine.Move, error)
	Name() string
	Close() error
}

// Configurable engines accept free-form options after construction (UCI
// engines use this for things like Threads/Hash/Contempt).
type Configurable interface {
	Engine
	Configure(options map[string]any) error
}

// Inspectable engines can report metadata about themselves.
type Inspectable interface {
	Engine
	Info() Info
}

// EngineType categorizes engine implementations.
type EngineType int

const (
	TypeTrivial EngineType = iota
	TypeUCI
)

func (t EngineType) String() string {
	switch t {
	case TypeUCI:
		return "UCI"
	default:
		return "Trivial"
	}
}

// Info describes an engine for display/debugging purposes.
type Info struct {
	Name     string
	Author   string
	Type     EngineType
	Features map[string]bool
}
