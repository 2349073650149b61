package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupKind_UnknownLetterFallsBackToUnknownEntry(t *testing.T) {
	k := LookupKind('?')
	assert.Equal(t, "unknown", k.Name)
	assert.Empty(t, k.Movement)

	k2 := LookupKind('9')
	assert.Equal(t, k, k2)
}

func TestLookupKind_StandardSixArePresent(t *testing.T) {
	for _, letter := range []rune{'K', 'Q', 'R', 'B', 'N', 'P'} {
		k := LookupKind(letter)
		assert.NotEmpty(t, k.Name, "letter %c", letter)
		assert.NotEmpty(t, k.Movement, "letter %c", letter)
	}
}

func TestLookupKind_FairyPawnsArePawnKinds(t *testing.T) {
	for _, letter := range []rune{'Α', 'Β', 'Γ', 'Δ'} {
		k := LookupKind(letter)
		assert.True(t, k.IsPawnKind(), "letter %c should be a pawn-style kind", letter)
	}
}

func TestLookupKind_ObstaclesAndDuckAreNeutral(t *testing.T) {
	for _, letter := range []rune{'X', 'x', 'Θ'} {
		p := NewPieceFromLetter(letter)
		assert.True(t, p.IsNeutral(), "letter %c should be neutral", letter)
	}
}

func TestCatalogue_HasTwentyFiveOrMoreNonStandardKinds(t *testing.T) {
	standard := map[rune]bool{'K': true, 'Q': true, 'R': true, 'B': true, 'N': true, 'P': true, ' ': true, '?': true}
	count := 0
	for letter := range Catalogue {
		if !standard[letter] {
			count++
		}
	}
	assert.GreaterOrEqual(t, count, 25, "catalogue should carry roughly 30 fairy/obstacle/pawn-variant kinds")
}
