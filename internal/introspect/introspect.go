// Package introspect drives a single introspection run: resolve the path,
// read the source, extract, and assemble the output document. Each run is
// synchronous and self-contained; callers that supersede a run simply discard
// its result.
package introspect

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/robert-at-pretension-io/dspy-introspect/internal/config"
	"github.com/robert-at-pretension-io/dspy-introspect/internal/extractor"
	"github.com/robert-at-pretension-io/dspy-introspect/internal/facts"
)

// Runner performs introspection runs over single Python files.
type Runner struct {
	Config *config.Config

	// Verbose enables diagnostic output on stderr.
	Verbose bool

	extractor *extractor.Extractor
}

// New creates a Runner with the default configuration.
func New() *Runner {
	return NewWithConfig(config.DefaultConfig())
}

// NewWithConfig creates a Runner using the given recognizer configuration.
func NewWithConfig(cfg *config.Config) *Runner {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	rec := extractor.NewRecognizers(
		cfg.Recognize.Builders,
		cfg.Recognize.SignatureBases,
		cfg.Recognize.InputFields,
		cfg.Recognize.OutputFields,
	)
	return &Runner{
		Config:    cfg,
		extractor: extractor.NewWithRecognizers(rec),
	}
}

// Run introspects one Python file and returns its document. A missing file
// and unparsable source both yield the canonical empty document with a nil
// error: the tool runs against files that may be mid-edit, and "always return
// something usable" wins over precise failure reporting. Only real I/O
// failures (for example a directory or an unreadable file) surface as errors.
func (r *Runner) Run(path string) (facts.Document, error) {
	resolved, err := filepath.Abs(path)
	if err != nil {
		resolved = path
	}

	source, err := os.ReadFile(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			if r.Verbose {
				fmt.Fprintf(os.Stderr, "dspy-introspect: %s does not exist, returning empty result\n", resolved)
			}
			return facts.EmptyDocument(resolved), nil
		}
		return facts.EmptyDocument(resolved), fmt.Errorf("reading %s: %w", resolved, err)
	}

	res := r.extractor.ExtractSource(resolved, source)
	if r.Verbose {
		fmt.Fprintf(os.Stderr, "dspy-introspect: %s: %d signatures, %d modules, %d predictions\n",
			resolved, len(res.Signatures), len(res.Modules), len(res.Predictions))
	}

	return facts.BuildDocument(resolved, res), nil
}
