package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixCzechEncoding_Triggers(t *testing.T) {
	// "Mrtvá schránka" mis-saved as Windows-1250 then misread as Latin-1.
	misencoded := "Mrtvá schránka òteø "
	repaired := FixCzechEncoding(misencoded)
	assert.NotEqual(t, misencoded, repaired)
	assert.True(t, containsAny(repaired, czechSpecific))
}

func TestFixCzechEncoding_LeavesCorrectTextAlone(t *testing.T) {
	s := "Mrtvá schránka"
	assert.Equal(t, s, FixCzechEncoding(s))
}

func TestFixCzechEncoding_LeavesPlainAsciiAlone(t *testing.T) {
	s := "Fellowship of the Ring"
	assert.Equal(t, s, FixCzechEncoding(s))
}

func TestRemoveDiacritics(t *testing.T) {
	assert.Equal(t, "Legie", RemoveDiacritics("Legie"))
	assert.Equal(t, "Mrtva schranka", RemoveDiacritics("Mrtvá schránka"))
}

func TestRemoveDiacritics_IdempotentTwice(t *testing.T) {
	once := RemoveDiacritics("Mrtvá schránka")
	twice := RemoveDiacritics(once)
	assert.Equal(t, once, twice)
}

func TestAreEquivalent(t *testing.T) {
	n := New()
	assert.True(t, n.AreEquivalent("Mrtvá schránka", "mrtva   schranka"))
	assert.True(t, n.AreEquivalent("  Andrzej Sapkowski ", "andrzej sapkowski"))
	assert.False(t, n.AreEquivalent("Mrtvá schránka", "Legie"))
}

func TestSimilarity_Identical(t *testing.T) {
	n := New()
	assert.Equal(t, 1.0, n.Similarity("Legie", "Legie"))
}

func TestSimilarity_Empty(t *testing.T) {
	n := New()
	assert.Equal(t, 1.0, n.Similarity("", ""))
	assert.Equal(t, 0.0, n.Similarity("", "Legie"))
}

func TestSimilarity_PartialMatch(t *testing.T) {
	n := New()
	s := n.Similarity("Mrtva schranka", "Mrtva schrnka")
	assert.Greater(t, s, 0.8)
	assert.Less(t, s, 1.0)
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", CollapseWhitespace("  a   b\tc  "))
}
