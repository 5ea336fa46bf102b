// Package pkg holds the asciigraph libraries.
//
// # Overview
//
// asciigraph turns labeled numeric data into bar and scatter charts drawn
// with ordinary characters. The packages split into three layers:
//
//  1. [chart] and [colour] - the engine: scale resolution, column
//     pagination, row grids and text output
//  2. [io], [httputil] and [cache] - getting datasets in and keeping
//     rendered charts around
//  3. [pipeline] and [server] - orchestration for the CLI and the HTTP API
//
// # Data Flow
//
//	file / stdin / URL
//	        ↓
//	io.Import (json, csv, toml, yaml, xlsx)
//	        ↓
//	chart.Dataset
//	        ↓
//	pipeline.Runner (cache lookup by dataset hash and options)
//	        ↓
//	chart.Render → one chart per page
//
// Errors carry a machine-readable code from [errors]; [observability]
// exposes hooks around loading, rendering and cache access.
package pkg
