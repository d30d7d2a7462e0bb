package types

// Default directory names used when no flag or config value is given.
const (
	DefaultInputDir  = "example_input"
	DefaultOutputDir = "example_output"
)

// SplitConfig holds the resolved settings for a split run.
type SplitConfig struct {
	// InputDir is the flat folder of source prospectus PDFs.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir is the base directory for split PDFs and sidecars
	// (<output_dir>/<basename>/...).
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Workers is the number of files processed concurrently (default: CPU count).
	Workers int `json:"workers" yaml:"workers"`

	// Types restricts the run to a subset of extraction types. Empty means all.
	Types []ExtractionType `json:"types,omitempty" yaml:"types,omitempty"`

	// RulesFile is an optional YAML file replacing the default keyword rules.
	RulesFile string `json:"rules_file,omitempty" yaml:"rules_file,omitempty"`
}

// LedgerConfig holds settings for the run history database.
type LedgerConfig struct {
	// Path is the SQLite database file. Empty disables the ledger.
	Path string `json:"path" yaml:"path"`

	// MaxRuns is the number of runs listed by the history command (default 20).
	MaxRuns int `json:"max_runs" yaml:"max_runs"`
}
