// Package pipeline provides the core place-and-route pipeline for tinypnr.
//
// This package implements the complete extract → place → route → serialize
// flow used by both the CLI and the HTTP API. Centralizing it here keeps
// behavior identical across entry points.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Extract: scan the netlist text into a cell/pin design
//  2. Place: assign every cell a die coordinate on a uniform grid
//  3. Route: derive nets by pin-name matching and compute Manhattan paths
//  4. Serialize: render placed cells and routes as a simplified DEF document
//
// Stages run strictly in order with no parallelism inside a stage; the
// pipeline either completes or fails at extraction. Extraction results are
// cached by netlist content hash, DEF output by design hash plus geometry.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Netlist: src,
//	    Die:     place.DefaultDie(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(result.DEF)
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tinypnr/pkg/def"
	"github.com/matzehuels/tinypnr/pkg/errors"
	"github.com/matzehuels/tinypnr/pkg/netlist"
	"github.com/matzehuels/tinypnr/pkg/place"
)

// DefaultTTL is how long cached stage results stay valid.
const DefaultTTL = 24 * time.Hour

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Netlist is the raw netlist source text.
	Netlist string `json:"netlist"`

	// DesignName overrides the DEF DESIGN statement. Defaults to "top".
	DesignName string `json:"design_name,omitempty"`

	// Units is the DEF DISTANCE MICRONS factor. Defaults to 1000.
	Units int `json:"units,omitempty"`

	// Die is the chip boundary. Zero dimensions fall back to the
	// 100x100 default.
	Die place.Die `json:"die,omitempty"`

	// Refresh bypasses the cache for this run.
	Refresh bool `json:"refresh,omitempty"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Netlist == "" {
		return errors.New(errors.ErrCodeInvalidInput, "netlist text is required")
	}
	o.SetGeometryDefaults()
	return nil
}

// SetGeometryDefaults applies defaults for the geometry and header fields
// only. Serialization from a saved design has no netlist text and uses
// this instead of ValidateAndSetDefaults.
func (o *Options) SetGeometryDefaults() {
	if o.DesignName == "" {
		o.DesignName = def.DefaultDesignName
	}
	if o.Units == 0 {
		o.Units = def.DefaultUnits
	}
	if o.Die.Width <= 0 || o.Die.Height <= 0 {
		o.Die = place.DefaultDie()
	}
}

// DEFOptions returns the serializer options for this run.
func (o *Options) DEFOptions() def.Options {
	return def.Options{DesignName: o.DesignName, Units: o.Units}
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this pipeline execution.
	RunID string

	// Design is the extracted and placed design.
	Design *netlist.Design

	// DesignHash is the content hash of the extracted design.
	DesignHash string

	// DEF is the rendered layout document.
	DEF string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	CellCount     int
	RouteCount    int
	GridSide      int
	ExtractTime   time.Duration
	PlaceTime     time.Duration
	SerializeTime time.Duration
}

// CacheInfo tracks cache hits for each cached pipeline stage. Placement
// and routing are pure in-memory computation and are never cached.
type CacheInfo struct {
	ExtractHit   bool // Whether the extracted design came from cache
	SerializeHit bool // Whether the DEF document came from cache
}

// applyLogger returns the runner's logger or the package default.
func applyLogger(l *log.Logger) *log.Logger {
	if l == nil {
		return log.Default()
	}
	return l
}
