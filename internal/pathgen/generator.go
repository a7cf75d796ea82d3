package pathgen

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/pavelvrba/bookorganizer/internal/model"
)

// Options mirrors PathGenerator's OrganizationOptions: the one recognised
// knob is whether to keep diacritics in the generated path.
type Options struct {
	PreserveDiacritics bool
}

// Generator synthesises target paths from consolidated metadata.
type Generator struct {
	log *zap.Logger
}

// New builds a Generator. A nil logger is replaced with zap's no-op logger.
func New(log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{log: log}
}

// Generate produces {root}/{author}[/{series}]/{book_leaf} from meta,
// applying sanitisation, the diacritics policy, and the length budget, but
// not uniqueness resolution — call EnsureUnique on the result separately
// once the caller knows the full set of already-claimed paths.
func (g *Generator) Generate(root string, meta model.BookMetadata, opts Options) string {
	author := NormalizeAuthor(meta.Author)
	author = SanitizeComponent(author)
	author = ApplyDiacriticsPolicy(author, opts.PreserveDiacritics)

	series := ""
	if meta.Series != "" {
		series = SanitizeComponent(meta.Series)
		series = ApplyDiacriticsPolicy(series, opts.PreserveDiacritics)
	}

	title := meta.Title
	if title == "" {
		title = "Unknown Title"
	}
	leaf := BookLeaf(meta.SeriesNumber, title)
	leaf = SanitizeComponent(leaf)
	leaf = ApplyDiacriticsPolicy(leaf, opts.PreserveDiacritics)

	if componentIsEmpty(series) {
		return FitPath(root, author, "", leaf)
	}
	return FitPath(root, author, series, leaf)
}

// GenerateUnique calls Generate and then resolves uniqueness against
// existing, returning the final path and recording it into existing on
// success so subsequent calls see it as claimed.
func (g *Generator) GenerateUnique(root string, meta model.BookMetadata, opts Options, existing map[string]bool) string {
	base := g.Generate(root, meta, opts)
	final, ok := EnsureUnique(base, meta.Year, existing)
	if !ok {
		g.log.Warn("pathgen: exhausted uniqueness suffixes", zap.String("base", base))
	}
	existing[final] = true
	return final
}

// Join is a small helper so callers building sub-paths match filepath.Join
// semantics without importing path/filepath themselves.
func Join(parts ...string) string {
	return filepath.Join(parts...)
}
