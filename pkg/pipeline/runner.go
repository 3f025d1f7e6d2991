package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/tinypnr/pkg/cache"
	"github.com/matzehuels/tinypnr/pkg/def"
	"github.com/matzehuels/tinypnr/pkg/errors"
	"github.com/matzehuels/tinypnr/pkg/netlist"
	"github.com/matzehuels/tinypnr/pkg/place"
	"github.com/matzehuels/tinypnr/pkg/route"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Runner{
		Cache:  c,
		Logger: applyLogger(logger),
		TTL:    DefaultTTL,
	}
}

// Close releases the runner's cache backend.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// Execute runs the complete extract → place → route → serialize pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{RunID: uuid.NewString()}
	logger := r.Logger.With("run", result.RunID)

	// Stage 1: Extract
	extractStart := time.Now()
	d, extractHit, err := r.Extract(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	result.Design = d
	result.Stats.ExtractTime = time.Since(extractStart)
	result.Stats.CellCount = d.CellCount()
	result.CacheInfo.ExtractHit = extractHit

	if data, err := netlist.MarshalDesign(d); err == nil {
		result.DesignHash = cache.Hash(data)
	}

	logger.Info("extracted netlist",
		"module", d.Module,
		"cells", d.CellCount(),
		"duration", result.Stats.ExtractTime)

	if d.Empty() {
		// Not fatal: the remaining stages all accept an empty design and
		// the output is a well-formed empty layout.
		logger.Warn("design has no cells", "code", "EMPTY_DESIGN")
	}

	// Stage 2: Place
	placeStart := time.Now()
	place.Place(d, opts.Die)
	result.Stats.PlaceTime = time.Since(placeStart)
	result.Stats.GridSide = place.GridSide(d.CellCount())

	logger.Info("placed cells",
		"grid", result.Stats.GridSide,
		"die", fmt.Sprintf("%gx%g", opts.Die.Width, opts.Die.Height),
		"duration", result.Stats.PlaceTime)

	// Stage 3+4: Route and serialize. Routing runs inside DEF generation
	// so routes always reflect the current placement; the route count is
	// derived separately for stats.
	serializeStart := time.Now()
	out, serializeHit, err := r.Serialize(ctx, d, result.DesignHash, opts)
	if err != nil {
		return nil, fmt.Errorf("serialize: %w", err)
	}
	result.DEF = out
	result.Stats.SerializeTime = time.Since(serializeStart)
	result.Stats.RouteCount = len(route.Routes(d))
	result.CacheInfo.SerializeHit = serializeHit

	logger.Info("serialized layout",
		"routes", result.Stats.RouteCount,
		"duration", result.Stats.SerializeTime)

	return result, nil
}

// Extract scans the netlist text with caching. The cached value is the
// design as extracted, before placement. The second return reports a
// cache hit.
func (r *Runner) Extract(ctx context.Context, opts Options) (*netlist.Design, bool, error) {
	if opts.Netlist == "" {
		return nil, false, errors.New(errors.ErrCodeInvalidInput, "netlist text is required")
	}

	key := cache.DesignKey([]byte(opts.Netlist))
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if d, err := netlist.ReadDesign(bytes.NewReader(data)); err == nil {
				return d, true, nil
			}
			// Unreadable entry: fall through and re-extract.
		}
	}

	d, err := netlist.Extract(opts.Netlist)
	if err != nil {
		return nil, false, err
	}

	if data, err := netlist.MarshalDesign(d); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Debug("cache write failed", "key", key, "err", err)
		}
	}
	return d, false, nil
}

// Serialize renders the placed design as DEF with caching. designHash
// identifies the extracted design; geometry and header options are part
// of the cache key so different die sizes cache separately.
func (r *Runner) Serialize(ctx context.Context, d *netlist.Design, designHash string, opts Options) (string, bool, error) {
	opts.SetGeometryDefaults()

	key := cache.DEFKey(designHash, opts.Die.Width, opts.Die.Height, opts.DesignName, opts.Units)
	if !opts.Refresh && designHash != "" {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			return string(data), true, nil
		}
	}

	out := def.Generate(d, opts.Die, opts.DEFOptions())

	if designHash != "" {
		if err := r.Cache.Set(ctx, key, []byte(out), r.TTL); err != nil {
			r.Logger.Debug("cache write failed", "key", key, "err", err)
		}
	}
	return out, false, nil
}
