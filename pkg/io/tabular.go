package io

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/asciigraph/pkg/chart"
	"github.com/matzehuels/asciigraph/pkg/errors"
)

// ReadCSV decodes label,value[,colour] rows. The title is left empty.
func ReadCSV(r io.Reader) (chart.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return chart.Dataset{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode csv")
	}
	records, err := rowsToRecords(rows)
	if err != nil {
		return chart.Dataset{}, err
	}
	return toDataset("", records)
}

// ReadXLSX decodes a worksheet laid out like CSV. sheet selects the
// worksheet by name; empty means the first one. The sheet name becomes the
// title.
func ReadXLSX(r io.Reader, sheet string) (chart.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return chart.Dataset{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open workbook")
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return chart.Dataset{}, errors.New(errors.ErrCodeInvalidInput, "workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return chart.Dataset{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read sheet %q", sheet)
	}
	records, err := rowsToRecords(rows)
	if err != nil {
		return chart.Dataset{}, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	return toDataset(sheet, records)
}
