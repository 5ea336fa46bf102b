// Package io reads and writes chart datasets.
//
// # Formats
//
// Datasets can be imported from five formats. All of them describe the same
// thing: an optional title and an ordered list of points, each with a label,
// a numeric value and an optional colour.
//
// JSON (parsed with gjson so a dataset can be pulled out of a larger
// document):
//
//	{
//	  "title": "Fruit",
//	  "points": [
//	    {"label": "apples", "value": 5, "colour": "red"},
//	    {"label": "oranges", "value": 3}
//	  ]
//	}
//
// A bare array of point objects or of [label, value, colour?] tuples is
// accepted as well. [ImportOptions.JSONPath] selects the points array with
// gjson path syntax (e.g. "data.items").
//
// CSV and XLSX: one point per row with columns label, value and optional
// colour. A first row whose value column is not numeric is a header.
//
// TOML and YAML: a top-level "title" and a "points" list of tables/maps
// with the same keys as JSON.
//
// # Validation
//
// Labels must be non-empty and free of control characters, values must be
// finite and colours must parse with [colour.Parse]. Violations are returned
// as *errors.Error values (INVALID_LABEL, INVALID_VALUE, INVALID_INPUT) that
// name the offending point. An input with no points is not an error here;
// the chart engine reports it as NO_DATA.
//
// # Export
//
// [WriteJSON] and [ExportJSON] write the JSON form above, which [ReadJSON]
// reads back unchanged.
package io
