package spreadsheet

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var ErrNothingToExport = errors.New("nothing to export")

const bom = "\ufeff"

// Column maps a record field to its header label.
type Column struct {
	Field string
	Label string
}

// Record exposes field values by name for export.
type Record interface {
	ExportValue(field string) any
}

// WriteCSV writes a BOM-prefixed CSV with the labels as header row.
func WriteCSV[T Record](w io.Writer, records []T, cols []Column) error {
	if len(records) == 0 {
		return ErrNothingToExport
	}
	bw := bufio.NewWriter(w)
	bw.WriteString(bom)

	labels := make([]string, len(cols))
	for i, c := range cols {
		labels[i] = c.Label
	}
	writeLine(bw, labels)

	fields := make([]string, len(cols))
	for _, rec := range records {
		for i, c := range cols {
			fields[i] = stringify(rec.ExportValue(c.Field))
		}
		writeLine(bw, fields)
	}
	return bw.Flush()
}

func writeLine(w *bufio.Writer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			w.WriteByte(',')
		}
		w.WriteString(quote(f))
	}
	w.WriteByte('\n')
}

func quote(s string) string {
	if !strings.ContainsAny(s, ",\"\r\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// WriteXLSX writes a single-sheet workbook with the labels in row 1.
func WriteXLSX[T Record](w io.Writer, records []T, cols []Column, sheet string) error {
	if len(records) == 0 {
		return ErrNothingToExport
	}
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c.Label
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for r, rec := range records {
		row := make([]any, len(cols))
		for i, c := range cols {
			row[i] = stringify(rec.ExportValue(c.Field))
		}
		addr, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, addr, &row); err != nil {
			return fmt.Errorf("write row %d: %w", r+2, err)
		}
	}
	return f.Write(w)
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		v = rv.Elem().Interface()
	}
	switch x := v.(type) {
	case string:
		return x
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
