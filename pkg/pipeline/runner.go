package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ontomat/pkg/cache"
	"github.com/matzehuels/ontomat/pkg/errors"
	"github.com/matzehuels/ontomat/pkg/hierarchy"
	"github.com/matzehuels/ontomat/pkg/hierarchy/closure"
	"github.com/matzehuels/ontomat/pkg/matrix"
	"github.com/matzehuels/ontomat/pkg/observability"
	"github.com/matzehuels/ontomat/pkg/render"
	"github.com/matzehuels/ontomat/pkg/source"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → construct → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.Format, opts.Source)
	snap, err := r.Load(ctx, opts)
	observability.Pipeline().OnLoadComplete(ctx, opts.Format, opts.Source, len(snap.Edges), time.Since(loadStart), err)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.SnapshotHash = snapshotHash(snap)

	r.Logger.Info("loaded snapshot",
		"classes", len(snap.Classes),
		"edges", len(snap.Edges),
		"duration", result.Stats.LoadTime)

	// Stage 2: Construct
	constructStart := time.Now()
	observability.Pipeline().OnConstructStart(ctx, opts.Mode, len(snap.Classes))
	h, constructHit, err := r.ConstructWithCacheInfo(ctx, snap, opts)
	observability.Pipeline().OnConstructComplete(ctx, opts.Mode, time.Since(constructStart), err)
	if err != nil {
		return nil, err
	}
	result.Hierarchy = h
	result.Stats.ConstructTime = time.Since(constructStart)
	result.Stats.ClassCount = h.ClassCount()
	result.Stats.EdgeCount = h.EdgeCount()
	result.CacheInfo.ConstructHit = constructHit
	result.MatrixHash = matrixHash(h)

	r.Logger.Info("constructed hierarchy",
		"classes", h.ClassCount(),
		"edges", h.EdgeCount(),
		"mode", opts.Mode,
		"cached", constructHit,
		"duration", result.Stats.ConstructTime)

	// Stage 3: Render (only when formats requested)
	if len(opts.Formats) > 0 {
		renderStart := time.Now()
		observability.Pipeline().OnRenderStart(ctx, opts.Formats)
		artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, h, opts)
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
		if err != nil {
			return nil, err
		}
		result.Artifacts = artifacts
		result.Stats.RenderTime = time.Since(renderStart)
		result.CacheInfo.RenderHit = renderHit

		r.Logger.Info("rendered outputs",
			"formats", opts.Formats,
			"cached", renderHit,
			"duration", result.Stats.RenderTime)
	}

	return result, nil
}

// Load reads the snapshot from the configured provider or source file.
// File loads are cached keyed by path and modification time, so an edited
// file is always re-read.
func (r *Runner) Load(ctx context.Context, opts Options) (source.Snapshot, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return source.Snapshot{}, err
	}

	var cacheKey string
	p := opts.Provider
	if p == nil {
		if fi, err := os.Stat(opts.Source); err == nil {
			cacheKey = r.Keyer.SnapshotKey(
				opts.Source+"|"+fi.ModTime().UTC().Format(time.RFC3339Nano), opts.Format)
		}
		switch opts.Format {
		case SourceTOML:
			p = source.NewTOMLFile(opts.Source)
		default:
			p = source.NewJSONFile(opts.Source)
		}
	}

	if cacheKey != "" && !opts.Refresh && opts.Mode != string(closure.ModeReasoning) {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var snap source.Snapshot
			if err := json.Unmarshal(data, &snap); err == nil {
				observability.Cache().OnCacheHit(ctx, "snapshot")
				return snap, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "snapshot")
	}

	names, edges, err := p.Load(ctx)
	if err != nil {
		return source.Snapshot{}, err
	}
	snap := source.Snapshot{Classes: names, Edges: edges}

	// Reasoning mode needs the materialized edge set in the snapshot so the
	// construct stage (and its cache key) sees the full input.
	if opts.Mode == string(closure.ModeReasoning) {
		mat, ok := p.(hierarchy.Materializer)
		if !ok {
			return source.Snapshot{}, errors.New(errors.ErrCodeInvalidMode,
				"reasoning mode requires a source with materialized edges")
		}
		entailed, err := mat.Materialize(ctx)
		if err != nil {
			return source.Snapshot{}, err
		}
		snap.Entailed = entailed
	}

	// Materialized edge sets are cheap to reload, so only plain snapshots
	// are cached.
	if cacheKey != "" && opts.Mode != string(closure.ModeReasoning) {
		if data, err := json.Marshal(snap); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLSnapshot)
			observability.Cache().OnCacheSet(ctx, "snapshot", len(data))
		}
	}

	return snap, nil
}

// ConstructWithCacheInfo builds the hierarchy with caching and reports
// whether the matrices came from cache.
func (r *Runner) ConstructWithCacheInfo(ctx context.Context, snap source.Snapshot, opts Options) (*hierarchy.Hierarchy, bool, error) {
	if err := opts.ValidateForConstruct(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.MatrixKey(snapshotHash(snap), opts.MatrixKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if h, err := decodeMatrices(data, opts.Config()); err == nil {
				observability.Cache().OnCacheHit(ctx, "matrix")
				return h, true, nil // Cache hit
			}
			// Corrupt entry: fall through to reconstruct
		}
	}
	observability.Cache().OnCacheMiss(ctx, "matrix")

	h, err := hierarchy.Construct(ctx, source.NewStatic(snap), opts.Config())
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := encodeMatrices(h); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLMatrix)
		observability.Cache().OnCacheSet(ctx, "matrix", len(data))
	}

	return h, false, nil // Cache miss
}

// Construct is a convenience wrapper that discards the cache hit info.
func (r *Runner) Construct(ctx context.Context, snap source.Snapshot, opts Options) (*hierarchy.Hierarchy, error) {
	h, _, err := r.ConstructWithCacheInfo(ctx, snap, opts)
	return h, err
}

// RenderWithCacheInfo generates artifacts with caching and reports whether
// every artifact came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, h *hierarchy.Hierarchy, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	hash := matrixHash(h)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	m, names := h.Results()
	dot := render.ToDOT(m, names, render.Options{
		ShortNames: opts.ShortNames,
		SelfLoops:  opts.SelfLoops,
	})

	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatDOT:
			rendered[format] = []byte(dot)
		case FormatSVG:
			svg, err := render.RenderSVG(ctx, dot)
			if err != nil {
				return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
			}
			rendered[format] = svg
		}
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, h *hierarchy.Hierarchy, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, h, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// snapshotHash computes the content hash of a snapshot.
func snapshotHash(snap source.Snapshot) string {
	data, _ := json.Marshal(snap)
	return cache.Hash(data)
}

// matrixHash computes the content hash of the result matrix plus the class
// order, so renames invalidate artifacts even when the bits match.
func matrixHash(h *hierarchy.Hierarchy) string {
	m, names := h.Results()
	data, _ := m.MarshalBinary()
	nameData, _ := json.Marshal(names)
	return cache.Hash(append(data, nameData...))
}

// cachedMatrices is the cache envelope for the construct stage.
type cachedMatrices struct {
	Classes  []string `json:"classes"`
	Asserted []byte   `json:"asserted"`
	Closed   []byte   `json:"closed"`
}

func encodeMatrices(h *hierarchy.Hierarchy) ([]byte, error) {
	asserted, err := h.Asserted().MarshalBinary()
	if err != nil {
		return nil, err
	}
	closed, err := h.Closed().MarshalBinary()
	if err != nil {
		return nil, err
	}
	return json.Marshal(cachedMatrices{
		Classes:  h.Index().Names(),
		Asserted: asserted,
		Closed:   closed,
	})
}

func decodeMatrices(data []byte, cfg hierarchy.Config) (*hierarchy.Hierarchy, error) {
	var env cachedMatrices
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	var asserted, closed matrix.Matrix
	if err := asserted.UnmarshalBinary(env.Asserted); err != nil {
		return nil, err
	}
	if err := closed.UnmarshalBinary(env.Closed); err != nil {
		return nil, err
	}
	return hierarchy.FromParts(hierarchy.NewIndex(env.Classes), &asserted, &closed, cfg)
}
