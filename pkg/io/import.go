package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/asciigraph/pkg/chart"
	"github.com/matzehuels/asciigraph/pkg/colour"
	"github.com/matzehuels/asciigraph/pkg/errors"
)

// Format identifies a dataset encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
)

// ValidFormats is the set of supported dataset formats.
var ValidFormats = map[Format]bool{
	FormatJSON: true,
	FormatCSV:  true,
	FormatTOML: true,
	FormatYAML: true,
	FormatXLSX: true,
}

// ImportOptions controls how a dataset is decoded.
type ImportOptions struct {
	// Format overrides detection from the file extension. Required when
	// reading from stdin or a bare io.Reader.
	Format Format

	// JSONPath selects the points array inside a JSON document (gjson syntax).
	JSONPath string

	// Sheet names the XLSX worksheet to read. Defaults to the first sheet.
	Sheet string

	// Title, when set, replaces any title found in the input.
	Title string
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "yml" {
		f = FormatYAML
	}
	if !ValidFormats[f] {
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, csv, toml, yaml, xlsx)", s)
	}
	return f, nil
}

// DetectFormat derives the format from the file extension of path.
func DetectFormat(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot detect format of %q (no extension)", path)
	}
	return ParseFormat(ext)
}

// Import reads the dataset at path. A path of "-" reads standard input, in
// which case opts.Format must be set.
func Import(path string, opts ImportOptions) (chart.Dataset, error) {
	if opts.Format == "" {
		if path == "-" {
			return chart.Dataset{}, errors.New(errors.ErrCodeInvalidFormat, "format is required when reading stdin")
		}
		f, err := DetectFormat(path)
		if err != nil {
			return chart.Dataset{}, err
		}
		opts.Format = f
	}

	if path == "-" {
		return Read(bufio.NewReader(os.Stdin), opts)
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return chart.Dataset{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return chart.Dataset{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	ds, err := Read(f, opts)
	if err != nil {
		return chart.Dataset{}, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Read decodes a dataset from r in opts.Format.
func Read(r io.Reader, opts ImportOptions) (chart.Dataset, error) {
	var (
		ds  chart.Dataset
		err error
	)
	switch opts.Format {
	case FormatJSON:
		ds, err = ReadJSON(r, opts.JSONPath)
	case FormatCSV:
		ds, err = ReadCSV(r)
	case FormatTOML:
		ds, err = ReadTOML(r)
	case FormatYAML:
		ds, err = ReadYAML(r)
	case FormatXLSX:
		ds, err = ReadXLSX(r, opts.Sheet)
	default:
		_, err = ParseFormat(string(opts.Format))
	}
	if err != nil {
		return chart.Dataset{}, err
	}
	if opts.Title != "" {
		ds.Title = opts.Title
	}
	return ds, nil
}

// record is the format-independent shape of one point before validation.
type record struct {
	Label  string  `json:"label" toml:"label" yaml:"label"`
	Value  float64 `json:"value" toml:"value" yaml:"value"`
	Colour string  `json:"colour,omitempty" toml:"colour" yaml:"colour"`
}

// document is the shared TOML/YAML layout.
type document struct {
	Title  string   `toml:"title" yaml:"title"`
	Points []record `toml:"points" yaml:"points"`
}

// toPoint validates r and converts it. n is the 1-based position used in
// error messages.
func (r record) toPoint(n int) (chart.DataPoint, error) {
	label := strings.TrimSpace(r.Label)
	if err := errors.ValidateLabel(label); err != nil {
		return chart.DataPoint{}, fmt.Errorf("point %d: %w", n, err)
	}
	if err := errors.ValidateValue(label, r.Value); err != nil {
		return chart.DataPoint{}, fmt.Errorf("point %d: %w", n, err)
	}
	c, err := colour.Parse(r.Colour)
	if err != nil {
		return chart.DataPoint{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "point %d (%s)", n, label)
	}
	return chart.DataPoint{Label: label, Value: r.Value, Colour: c}, nil
}

func toDataset(title string, records []record) (chart.Dataset, error) {
	ds := chart.Dataset{Title: strings.TrimSpace(title), Points: make([]chart.DataPoint, 0, len(records))}
	for i, r := range records {
		p, err := r.toPoint(i + 1)
		if err != nil {
			return chart.Dataset{}, err
		}
		ds.Points = append(ds.Points, p)
	}
	return ds, nil
}

// ValidateDataset applies the import checks to a dataset built elsewhere
// (for example decoded from an HTTP request body).
func ValidateDataset(ds chart.Dataset) error {
	for i, p := range ds.Points {
		if err := errors.ValidateLabel(p.Label); err != nil {
			return fmt.Errorf("point %d: %w", i+1, err)
		}
		if err := errors.ValidateValue(p.Label, p.Value); err != nil {
			return fmt.Errorf("point %d: %w", i+1, err)
		}
	}
	return nil
}

// rowsToRecords converts spreadsheet-like rows (CSV, XLSX) into records.
// Blank rows are skipped; a first row with a non-numeric value column is a
// header.
func rowsToRecords(rows [][]string) ([]record, error) {
	var records []record
	first := true
	for i, row := range rows {
		if isBlank(row) {
			continue
		}
		if len(row) < 2 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "row %d: need label and value columns", i+1)
		}
		raw := strings.TrimSpace(row[1])
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			if first {
				first = false
				continue
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidValue, err, "row %d: value %q", i+1, raw)
		}
		first = false

		r := record{Label: row[0], Value: v}
		if len(row) > 2 {
			r.Colour = row[2]
		}
		records = append(records, r)
	}
	return records, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
