package io

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/matzehuels/asciigraph/pkg/chart"
	"github.com/matzehuels/asciigraph/pkg/errors"
)

// ReadJSON decodes a dataset from r. If path is non-empty it is a gjson path
// selecting the points array; the title is then read from the document's
// top-level "title" key when present.
func ReadJSON(r io.Reader, path string) (chart.Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return chart.Dataset{}, fmt.Errorf("read: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return chart.Dataset{}, errors.New(errors.ErrCodeInvalidInput, "decode: invalid JSON")
	}

	root := gjson.ParseBytes(data)
	title := root.Get("title").String()
	var points gjson.Result
	switch {
	case path != "":
		points = root.Get(path)
		if !points.Exists() {
			return chart.Dataset{}, errors.New(errors.ErrCodeInvalidInput, "path %q not found", path)
		}
	case root.IsArray():
		points, title = root, ""
	default:
		points = root.Get("points")
		if !points.Exists() {
			return chart.Dataset{}, errors.New(errors.ErrCodeInvalidInput, `missing "points" array`)
		}
	}
	if !points.IsArray() {
		return chart.Dataset{}, errors.New(errors.ErrCodeInvalidInput, "points must be an array, got %s", points.Type)
	}

	var (
		records []record
		decErr  error
	)
	points.ForEach(func(_, v gjson.Result) bool {
		rec, err := jsonRecord(v, len(records)+1)
		if err != nil {
			decErr = err
			return false
		}
		records = append(records, rec)
		return true
	})
	if decErr != nil {
		return chart.Dataset{}, decErr
	}
	return toDataset(title, records)
}

// jsonRecord accepts {"label","value","colour"} objects and
// [label, value, colour?] tuples.
func jsonRecord(v gjson.Result, n int) (record, error) {
	var label, val, col gjson.Result
	switch {
	case v.IsObject():
		label, val = v.Get("label"), v.Get("value")
		col = v.Get("colour")
		if !col.Exists() {
			col = v.Get("color")
		}
	case v.IsArray():
		items := v.Array()
		if len(items) < 2 {
			return record{}, errors.New(errors.ErrCodeInvalidInput, "point %d: tuple needs label and value", n)
		}
		label, val = items[0], items[1]
		if len(items) > 2 {
			col = items[2]
		}
	default:
		return record{}, errors.New(errors.ErrCodeInvalidInput, "point %d: expected object or array, got %s", n, v.Type)
	}

	f, err := jsonNumber(val)
	if err != nil {
		return record{}, errors.Wrap(errors.ErrCodeInvalidValue, err, "point %d (%s)", n, label.String())
	}
	return record{Label: label.String(), Value: f, Colour: col.String()}, nil
}

func jsonNumber(v gjson.Result) (float64, error) {
	switch v.Type {
	case gjson.Number:
		return v.Float(), nil
	case gjson.String:
		return strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
	case gjson.Null:
		if !v.Exists() {
			return 0, fmt.Errorf("missing value")
		}
	}
	return 0, fmt.Errorf("value %s is not a number", v.Raw)
}
