// Package config loads an OrganizerConfig from viper-bound cobra flags
// with BOOKORGANIZER_* / AO_* environment aliases, the way the teacher's
// cmd/root.go binds flags to viper keys. Only the CLI adapter reads the
// environment; core packages always receive configuration by parameter.
package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// OrganizerConfig mirrors the teacher's OrganizerConfig, narrowed and
// extended to this domain's field-mapping and undo-log needs.
type OrganizerConfig struct {
	SourceDir           string
	OutputDir           string
	Verbose             bool
	DryRun              bool
	RemoveEmpty         bool
	Flat                bool
	PreserveDiacritics  bool
	Layout              string // "author-series-title", "author-title", "author-only"
	UseSeriesAsTitle    bool
	Operation           string // "copy", "move", "hard_link", "symbolic_link"
	DetectDuplicates    bool
	ValidateIntegrity   bool
	LibraryIndexPath    string // optional SQLite read-through cache; "" disables it
	AudiobookshelfURL   string
	AudiobookshelfToken string
	AudiobookshelfLib   string
	LogLevel            string
}

// envAliases maps viper config keys to the environment variable names
// that may supply them, following the teacher's dir/input + out/output
// alias table in cmd/root.go.
var envAliases = map[string][]string{
	"source-dir":           {"BOOKORGANIZER_SOURCE_DIR", "AO_DIR", "AO_INPUT"},
	"output-dir":           {"BOOKORGANIZER_OUTPUT_DIR", "AO_OUT", "AO_OUTPUT"},
	"verbose":              {"BOOKORGANIZER_VERBOSE", "AO_VERBOSE"},
	"dry-run":              {"BOOKORGANIZER_DRY_RUN", "AO_DRY_RUN"},
	"remove-empty":         {"BOOKORGANIZER_REMOVE_EMPTY", "AO_REMOVE_EMPTY"},
	"flat":                 {"BOOKORGANIZER_FLAT", "AO_FLAT"},
	"preserve-diacritics":  {"BOOKORGANIZER_PRESERVE_DIACRITICS"},
	"layout":               {"BOOKORGANIZER_LAYOUT", "AO_LAYOUT"},
	"use-series-as-title":  {"BOOKORGANIZER_USE_SERIES_AS_TITLE", "AO_USE_SERIES_AS_TITLE"},
	"operation":            {"BOOKORGANIZER_OPERATION", "AO_OPERATION"},
	"detect-duplicates":    {"BOOKORGANIZER_DETECT_DUPLICATES"},
	"validate-integrity":   {"BOOKORGANIZER_VALIDATE_INTEGRITY"},
	"library-index-path":   {"BOOKORGANIZER_LIBRARY_INDEX_PATH"},
	"log-level":            {"BOOKORGANIZER_LOG_LEVEL"},
	"audiobookshelf-url":   {"AUDIOBOOKSHELF_URL"},
	"audiobookshelf-token": {"AUDIOBOOKSHELF_TOKEN"},
	"audiobookshelf-lib":   {"AUDIOBOOKSHELF_LIBRARY"},
}

// BindEnv registers every alias above against v, so viper.Get* resolves
// the first set environment variable when the flag itself was not
// passed. Call once per cobra command during its init.
func BindEnv(v *viper.Viper) {
	for key, aliases := range envAliases {
		for _, alias := range aliases {
			if val, ok := os.LookupEnv(alias); ok {
				v.SetDefault(key, val)
				break
			}
		}
	}
}

// FromViper materializes an OrganizerConfig from a bound viper instance.
func FromViper(v *viper.Viper) OrganizerConfig {
	return OrganizerConfig{
		SourceDir:           v.GetString("source-dir"),
		OutputDir:           v.GetString("output-dir"),
		Verbose:             v.GetBool("verbose"),
		DryRun:              v.GetBool("dry-run"),
		RemoveEmpty:         v.GetBool("remove-empty"),
		Flat:                v.GetBool("flat"),
		PreserveDiacritics:  v.GetBool("preserve-diacritics"),
		Layout:              normalizeLayout(v.GetString("layout")),
		UseSeriesAsTitle:    v.GetBool("use-series-as-title"),
		Operation:           normalizeOperation(v.GetString("operation")),
		DetectDuplicates:    v.GetBool("detect-duplicates"),
		ValidateIntegrity:   v.GetBool("validate-integrity"),
		LibraryIndexPath:    v.GetString("library-index-path"),
		AudiobookshelfURL:   v.GetString("audiobookshelf-url"),
		AudiobookshelfToken: v.GetString("audiobookshelf-token"),
		AudiobookshelfLib:   v.GetString("audiobookshelf-lib"),
		LogLevel:            v.GetString("log-level"),
	}
}

func normalizeLayout(layout string) string {
	layout = strings.ToLower(strings.TrimSpace(layout))
	switch layout {
	case "author-series-title", "author-title", "author-only":
		return layout
	case "":
		return "author-series-title"
	default:
		return "author-series-title"
	}
}

func normalizeOperation(op string) string {
	op = strings.ToLower(strings.TrimSpace(op))
	switch op {
	case "copy", "move", "hard_link", "symbolic_link":
		return op
	default:
		return "copy"
	}
}
