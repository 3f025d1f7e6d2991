// Package pkg provides the core libraries for tinypnr place-and-route.
//
// # Overview
//
// tinypnr turns a gate-level netlist into a simplified DEF layout. The pkg
// directory is organized into five main areas:
//
//  1. [netlist] - Netlist scanning and the cell/pin design model
//  2. [place] - Grid placement of cells on the die
//  3. [route] - Net derivation and Manhattan routing
//  4. [def] - DEF serialization of placed-and-routed designs
//  5. [pipeline] - Orchestration (extract → place → route → serialize)
//
// Supporting packages: [cache] (pluggable result caching), [config] (TOML
// configuration), [errors] (machine-readable error codes), [render]
// (Graphviz connectivity diagrams), [buildinfo] (version metadata).
//
// # Architecture
//
// The typical data flow through tinypnr:
//
//	Yosys-style netlist text
//	         ↓
//	    [netlist] package (extract cells and pins)
//	         ↓
//	    [place] package (uniform grid placement)
//	         ↓
//	    [route] package (name-matched nets, Manhattan paths)
//	         ↓
//	    [def] package (simplified DEF document)
//
// # Quick Start
//
// Run the full pipeline on a netlist:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/tinypnr/pkg/cache"
//	    "github.com/matzehuels/tinypnr/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Netlist: src,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(result.DEF)
//
// Or drive the stages directly:
//
//	design, err := netlist.Extract(src)
//	place.Place(design, place.DefaultDie())
//	out := def.Generate(design, place.DefaultDie(), def.Options{})
package pkg
