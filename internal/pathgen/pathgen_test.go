package pathgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pavelvrba/bookorganizer/internal/model"
)

func TestSanitizeComponent(t *testing.T) {
	assert.Equal(t, "Legie_VII - Mrtva schranka", SanitizeComponent("Legie/VII - Mrtva schranka"))
	assert.Equal(t, "Unknown", SanitizeComponent("   "))
	assert.Equal(t, "a b", SanitizeComponent("a    b"))
	assert.Equal(t, "Title - Part", SanitizeComponent(`Title: Part`))
}

func TestNormalizeAuthor(t *testing.T) {
	assert.Equal(t, "Andrzej Sapkowski", NormalizeAuthor("Sapkowski, Andrzej"))
	assert.Equal(t, "Unknown Author", NormalizeAuthor(""))
	assert.Equal(t, "Andrzej Sapkowski", NormalizeAuthor("andrzej sapkowski; Petr Stach"))
}

func TestBookLeaf(t *testing.T) {
	assert.Equal(t, "07 - Mrtva schranka", BookLeaf("7", "Mrtva schranka"))
	assert.Equal(t, "Special Edition - Title", BookLeaf("Special Edition", "Title"))
	assert.Equal(t, "Title", BookLeaf("", "Title"))
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", 50)
	short := Truncate(long, 20)
	assert.LessOrEqual(t, len([]rune(short)), 20)
	assert.Contains(t, short, "…")
	assert.Equal(t, "short", Truncate("short", 20))
}

func TestEnsureUnique(t *testing.T) {
	existing := map[string]bool{}
	p1, ok := EnsureUnique("/lib/Author/Book", 0, existing)
	assert.True(t, ok)
	assert.Equal(t, "/lib/Author/Book", p1)

	existing["/lib/Author/Book"] = true
	p2, ok := EnsureUnique("/lib/Author/Book", 2020, existing)
	assert.True(t, ok)
	assert.Equal(t, "/lib/Author/Book (2020)", p2)

	existing["/lib/Author/Book (2020)"] = true
	p3, ok := EnsureUnique("/lib/Author/Book", 2020, existing)
	assert.True(t, ok)
	assert.Equal(t, "/lib/Author/Book (2)", p3)
}

func TestGenerate_SeriesOmittedWhenAbsent(t *testing.T) {
	g := New(nil)
	meta := model.BookMetadata{Author: "Andrzej Sapkowski", Title: "Mrtva schranka"}
	path := g.Generate("/lib", meta, Options{})
	assert.Equal(t, "/lib/Andrzej Sapkowski/Mrtva schranka", path)
}

func TestGenerate_DiacriticsStrippedByDefault(t *testing.T) {
	g := New(nil)
	meta := model.BookMetadata{Author: "Andrzej Sapkowski", Series: "Legie", SeriesNumber: "7", Title: "Mrtvá schránka"}
	path := g.Generate("/lib", meta, Options{})
	assert.Equal(t, "/lib/Andrzej Sapkowski/Legie/07 - Mrtva schranka", path)
}

func TestGenerate_PreserveDiacritics(t *testing.T) {
	g := New(nil)
	meta := model.BookMetadata{Author: "Andrzej Sapkowski", Title: "Mrtvá schránka"}
	path := g.Generate("/lib", meta, Options{PreserveDiacritics: true})
	assert.Equal(t, "/lib/Andrzej Sapkowski/Mrtvá schránka", path)
}

func TestGenerateUnique_ResolvesCollision(t *testing.T) {
	g := New(nil)
	meta := model.BookMetadata{Author: "Andrzej Sapkowski", Title: "Mrtva schranka"}
	existing := map[string]bool{}
	first := g.GenerateUnique("/lib", meta, Options{}, existing)
	second := g.GenerateUnique("/lib", meta, Options{}, existing)
	assert.NotEqual(t, first, second)
}
