package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mgrdich/chesscore/internal/engine"
)

func TestSortMultiPV_OrdersBestFirst(t *testing.T) {
	lines := []MultiPVLine{
		{Index: 1, Move: "e2e4", Score: 20},
		{Index: 2, Move: "d2d4", Score: 350},
		{Index: 3, Move: "g1f3", Score: -10},
	}
	sortMultiPV(lines)
	assert.Equal(t, "d2d4", lines[0].Move)
	assert.Equal(t, "e2e4", lines[1].Move)
	assert.Equal(t, "g1f3", lines[2].Move)
}

func TestCentipawnValue_MateScoresDominate(t *testing.T) {
	matingForMe := MultiPVLine{Score: 2, IsMate: true}
	matedAgainstMe := MultiPVLine{Score: -2, IsMate: true}
	bigCentipawn := MultiPVLine{Score: 900}

	assert.Greater(t, matingForMe.centipawnValue(), bigCentipawn.centipawnValue())
	assert.Less(t, matedAgainstMe.centipawnValue(), bigCentipawn.centipawnValue())
}

func newTestEngineWithLines(lines []MultiPVLine) *UCIEngine {
	e := &UCIEngine{cfg: defaultUCIConfig("stub")}
	sortMultiPV(lines)
	e.lastMultiPV = lines
	return e
}

func TestTaunterMove_PicksWorstAboveThreePawns(t *testing.T) {
	b, err := engine.NewBoard("Standard")
	require.NoError(t, err)
	legal := b.Generate(engine.DepthLegal)
	require.NotEmpty(t, legal)

	m0, m1 := legal[0], legal[1]
	lines := []MultiPVLine{
		{Move: uciString(b, m0), Score: 500},
		{Move: uciString(b, m1), Score: 320},
	}
	e := newTestEngineWithLines(lines)

	picked, err := TaunterMove(e, b, legal)
	require.NoError(t, err)
	assert.Equal(t, m1.Name, picked.Name)
}

func TestDrawfishMove_PicksWorstNonLosing(t *testing.T) {
	b, err := engine.NewBoard("Standard")
	require.NoError(t, err)
	legal := b.Generate(engine.DepthLegal)
	require.NotEmpty(t, legal)

	m0, m1 := legal[0], legal[1]
	lines := []MultiPVLine{
		{Move: uciString(b, m0), Score: 50},
		{Move: uciString(b, m1), Score: -5},
	}
	e := newTestEngineWithLines(lines)

	picked, err := DrawfishMove(e, b, legal)
	require.NoError(t, err)
	assert.Equal(t, m0.Name, picked.Name)
}

func TestBadfishMove_PicksAbsoluteWorst(t *testing.T) {
	b, err := engine.NewBoard("Standard")
	require.NoError(t, err)
	legal := b.Generate(engine.DepthLegal)
	require.NotEmpty(t, legal)

	m0, m1 := legal[0], legal[1]
	lines := []MultiPVLine{
		{Move: uciString(b, m0), Score: 500},
		{Move: uciString(b, m1), Score: -900},
	}
	e := newTestEngineWithLines(lines)

	picked, err := BadfishMove(e, b, legal)
	require.NoError(t, err)
	assert.Equal(t, m1.Name, picked.Name)
}
