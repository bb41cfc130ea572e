// Package pkg holds the libraries behind cartesian, a layout engine for
// category charts.
//
// # Overview
//
// Cartesian decides where the axes of a column, bar, line or combo chart
// go before anything is drawn: how much margin each axis needs, whether
// the category labels fit, wrap or rotate, whether two value axes can
// share one domain, and whether the category axis has to scroll. The pkg
// directory is organized into four areas:
//
//  1. [chart] - Domain logic (scales, axes, domain merging, negotiation)
//  2. [chartfile] - TOML chart definitions and CSV, XLSX or JSON data
//  3. [render] - SVG and JSON output for a negotiated frame
//  4. [pipeline] - Orchestration (load → negotiate → render) with caching
//
// # Architecture
//
//	chart.toml + data
//	         ↓
//	    [chartfile] package (parse, validate, load sources)
//	         ↓
//	    [chart/layers] package (one layer per series group)
//	         ↓
//	    [chart/cartesian] package (negotiate axes, scroll window)
//	         ↓
//	    [render/svg], [render/jsonout]
//
// # Quick Start
//
//	f, _ := chartfile.Load("sales.toml")
//	sources, _ := f.ReadSources()
//	ls, _ := chartfile.BuildLayers(sources)
//	layout := cartesian.NegotiateAxes(f.Input(ls))
//
// Most callers go through [pipeline.Runner] instead, which adds option
// defaults, caching and observability hooks.
//
// # Supporting Packages
//
// [cache] - Render cache backends: local files, Redis, or none.
//
// [errors] - Coded errors shared by the CLI and the HTTP API.
//
// [observability] - Hook interfaces for the pipeline, cache and HTTP layers.
//
// [buildinfo] - Version information injected at build time.
package pkg
