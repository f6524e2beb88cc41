// Package pipeline provides the core hierarchy pipeline for ontomat.
//
// This package implements the complete load → construct → render pipeline
// that can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read the class-hierarchy snapshot from its source file
//  2. Construct: Build the index, asserted matrix, and configured closure
//  3. Render: Generate output in various formats (DOT, SVG)
//
// Each stage can be run independently or as part of the complete pipeline.
// The construct and render stages are cached: identical snapshots under
// identical options are never recomputed.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source: "animals.json",
//	    Mode:   "warshall",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	matrix, names := result.Hierarchy.Results()
package pipeline

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ontomat/pkg/cache"
	"github.com/matzehuels/ontomat/pkg/errors"
	"github.com/matzehuels/ontomat/pkg/hierarchy"
	"github.com/matzehuels/ontomat/pkg/hierarchy/closure"
)

// Default values shared by CLI and API.
const (
	// DefaultMode is the transitivity mode used when none is requested.
	DefaultMode = string(closure.ModeAsserted)

	// DefaultScope is the reflexivity scope used when none is requested.
	DefaultScope = string(closure.ScopeClosure)

	// DefaultBudget caps longest-path DFS visits per query. Zero in
	// Options means "use this"; use a negative value for unbounded.
	DefaultBudget = 1_000_000
)

// Source format constants.
const (
	SourceJSON = "json"
	SourceTOML = "toml"
)

// Output format constants.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
}

// Options contains all configuration for the hierarchy pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Source string `json:"source,omitempty"`
	Format string `json:"format,omitempty"` // json or toml; inferred from the source extension when empty

	// Construct options
	Mode      string `json:"mode,omitempty"`
	Reflexive bool   `json:"reflexive,omitempty"`
	Scope     string `json:"scope,omitempty"`
	Refresh   bool   `json:"refresh,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	ShortNames bool     `json:"short_names,omitempty"`
	SelfLoops  bool     `json:"self_loops,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// Provider overrides file loading, e.g. for in-memory snapshots.
	Provider hierarchy.Provider `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Hierarchy is the constructed, frozen hierarchy.
	Hierarchy *hierarchy.Hierarchy

	// SnapshotHash is the content hash of the loaded snapshot.
	SnapshotHash string

	// MatrixHash is the content hash of the result matrix.
	MatrixHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ClassCount    int
	EdgeCount     int
	LoadTime      time.Duration
	ConstructTime time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ConstructHit bool // Whether the matrices came from cache
	RenderHit    bool // Whether all artifacts came from cache
}

// ValidateFormat checks that an output format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid format: %q (must be one of: dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all output formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForConstruct(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for the load stage.
func (o *Options) ValidateForLoad() error {
	if o.Source == "" && o.Provider == nil {
		return errors.New(errors.ErrCodeInvalidInput, "source is required")
	}
	if o.Format == "" && o.Source != "" {
		switch strings.ToLower(filepath.Ext(o.Source)) {
		case ".json":
			o.Format = SourceJSON
		case ".toml":
			o.Format = SourceTOML
		default:
			return errors.New(errors.ErrCodeInvalidInput,
				"cannot infer format from %q, pass json or toml explicitly", o.Source)
		}
	}
	if o.Format != "" && o.Format != SourceJSON && o.Format != SourceTOML {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid source format: %q (must be json or toml)", o.Format)
	}
	o.setLogger()
	return nil
}

// ValidateForConstruct checks and defaults the construction options.
func (o *Options) ValidateForConstruct() error {
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if _, err := closure.ParseMode(o.Mode); err != nil {
		return err
	}
	if o.Scope == "" {
		o.Scope = DefaultScope
	}
	if _, err := closure.ParseScope(o.Scope); err != nil {
		return err
	}
	o.setLogger()
	return nil
}

// ValidateForRender checks and defaults the rendering options.
func (o *Options) ValidateForRender() error {
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.setLogger()
	return nil
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Config converts the options to a construction config.
func (o *Options) Config() hierarchy.Config {
	reflexivity := closure.ReflexivityOff
	if o.Reflexive {
		reflexivity = closure.ReflexivityOn
	}
	return hierarchy.Config{
		Transitivity: closure.Mode(o.Mode),
		Reflexivity:  reflexivity,
		Scope:        closure.Scope(o.Scope),
	}
}

// MatrixKeyOpts returns cache key options for the construct stage.
func (o *Options) MatrixKeyOpts() cache.MatrixKeyOpts {
	reflexive := string(closure.ReflexivityOff)
	if o.Reflexive {
		reflexive = string(closure.ReflexivityOn)
	}
	return cache.MatrixKeyOpts{
		Mode:      o.Mode,
		Reflexive: reflexive,
		Scope:     o.Scope,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		ShortNames: o.ShortNames,
		SelfLoops:  o.SelfLoops,
	}
}
