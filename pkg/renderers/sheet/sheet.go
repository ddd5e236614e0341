// Package sheet exports collections as spreadsheets: XLSX through excelize
// and plain CSV.
package sheet

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-recipebook/pkg/model"
	"github.com/goliatone/go-recipebook/pkg/render"
)

const defaultSheet = "Sheet1"

// Columns returns the header row of a collection export.
func Columns(col model.Collection) []string {
	if col.ShowInstructions {
		return []string{"id", model.FieldName, model.FieldInstructions}
	}
	return []string{"id", model.FieldName}
}

func row(col model.Collection, item model.Item) []string {
	if col.ShowInstructions {
		return []string{item.ID.String(), item.Name, item.Instructions}
	}
	return []string{item.ID.String(), item.Name}
}

// XLSX writes one worksheet named after the collection.
type XLSX struct{}

var _ render.Renderer = XLSX{}

// NewXLSX returns the xlsx renderer.
func NewXLSX() XLSX {
	return XLSX{}
}

func (XLSX) Name() string {
	return "xlsx"
}

func (XLSX) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Render writes a header row followed by one row per item, in order.
func (XLSX) Render(ctx context.Context, list render.List) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	sheet := list.Collection.Name
	if sheet == "" {
		sheet = defaultSheet
	} else if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return nil, fmt.Errorf("sheet: rename worksheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("sheet: header style: %w", err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return nil, fmt.Errorf("sheet: stream writer: %w", err)
	}
	if list.Collection.ShowInstructions {
		if err := sw.SetColWidth(3, 3, 60); err != nil {
			return nil, err
		}
	}
	if err := sw.SetColWidth(2, 2, 30); err != nil {
		return nil, err
	}

	columns := Columns(list.Collection)
	if err := sw.SetRow("A1", toCells(columns), excelize.RowOpts{StyleID: bold}); err != nil {
		return nil, fmt.Errorf("sheet: header row: %w", err)
	}
	for i, item := range list.Items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := sw.SetRow(cell, toCells(row(list.Collection, item))); err != nil {
			return nil, fmt.Errorf("sheet: row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("sheet: flush: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("sheet: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func toCells(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// CSV writes comma separated values with a header row.
type CSV struct{}

var _ render.Renderer = CSV{}

// NewCSV returns the csv renderer.
func NewCSV() CSV {
	return CSV{}
}

func (CSV) Name() string {
	return "csv"
}

func (CSV) ContentType() string {
	return "text/csv; charset=utf-8"
}

func (CSV) Render(ctx context.Context, list render.List) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Columns(list.Collection)); err != nil {
		return nil, err
	}
	for _, item := range list.Items {
		if err := w.Write(row(list.Collection, item)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("sheet: write csv: %w", err)
	}
	return buf.Bytes(), nil
}
