package engine

import "errors"

// Sentinel errors for the three failure kinds the core surfaces (§7).
// Callers use errors.Is to distinguish them; wrapped context is added with
// fmt.Errorf("...: %w", ...) at the call site, matching the teacher's
// internal/config error style.
var (
	// ErrIllegalMove is returned when a requested move is not in the
	// current legal set, including malformed SAN strings and type
	// mismatches.
	ErrIllegalMove = errors.New("engine: illegal move")

	// ErrParse is returned for malformed FEN/PGN input.
	ErrParse = errors.New("engine: parse error")

	// ErrEngineUnavailable is returned by the adapter package when the
	// external engine subprocess cannot be launched or communicated with.
	ErrEngineUnavailable = errors.New("engine: external engine unavailable")
)
