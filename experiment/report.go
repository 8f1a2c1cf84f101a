package experiment

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Format selects how WriteReport serializes records.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ErrUnknownFormat is returned for report formats other than csv and xlsx.
var ErrUnknownFormat = errors.New("unknown report format")

// ParseFormat accepts "csv" or "xlsx", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownFormat, s)
	}
}

// Header is the column set of every report.
var Header = []string{
	"Agent",
	"Probability",
	"Solvable",
	"Runtime",
	"Path Length",
	"Number of Cells Processed",
	"Number of Bumps",
	"Number of Planning Steps",
	"Number of Cells Determined",
}

// runtimeMillis keeps sub-millisecond precision for small grids.
func runtimeMillis(r Record) float64 {
	return float64(r.Runtime.Microseconds()) / 1000
}

// Row formats a record as text columns matching Header.
func (r Record) Row() []string {
	return []string{
		r.Sensor,
		strconv.Itoa(r.Density),
		strconv.FormatBool(r.Solvable),
		strconv.FormatFloat(runtimeMillis(r), 'f', 3, 64),
		strconv.FormatFloat(r.TrajectoryLength, 'f', -1, 64),
		strconv.Itoa(r.CellsProcessed),
		strconv.Itoa(r.Bumps),
		strconv.Itoa(r.Plans),
		strconv.Itoa(r.CellsDetermined),
	}
}

// WriteCSV writes a header line and one line per record.
func WriteCSV(w io.Writer, records []Record) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		if err := writer.Write(r.Row()); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteXLSX writes the records to the first sheet of a new workbook.
// Failed runs leave the path length cell empty.
func WriteXLSX(w io.Writer, records []Record) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}

	for i, r := range records {
		var length any
		if !math.IsNaN(r.TrajectoryLength) {
			length = r.TrajectoryLength
		}
		row := []any{
			r.Sensor,
			r.Density,
			r.Solvable,
			runtimeMillis(r),
			length,
			r.CellsProcessed,
			r.Bumps,
			r.Plans,
			r.CellsDetermined,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write xlsx row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// WriteReport serializes records in the given format.
func WriteReport(w io.Writer, format Format, records []Record) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, records)
	case FormatXLSX:
		return WriteXLSX(w, records)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}
