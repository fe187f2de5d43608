// Package spreadsheet reads POS client sheets and writes CSV and XLSX exports.
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

var (
	ErrNoRows              = errors.New("spreadsheet has no data rows")
	ErrUnsupportedWorkbook = errors.New("only .xlsx and .xls workbooks are supported")
)

// Header aliases per field; the Arabic labels come from the team's own sheets.
var headerAliases = map[string][]string{
	"client_code": {"كود العميل", "client_code"},
	"client_name": {"اسم العميل", "client_name"},
	"department":  {"القسم", "department"},
	"phone":       {"رقم التليفون", "phone"},
}

// POSRow is one accepted sheet row. Line is the 1-based sheet row number.
type POSRow struct {
	ClientCode string
	ClientName string
	Department *string
	Phone      *string
	Line       int
}

type ParseResult struct {
	Rows []POSRow
	// TotalRows counts non-blank data rows, accepted or not.
	TotalRows int
}

// ParseWorkbook picks the reader from the file extension: .xlsx or legacy .xls.
func ParseWorkbook(r io.ReadSeeker, filename string) (*ParseResult, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return ParsePOSClients(r)
	case ".xls":
		return ParsePOSClientsXLS(r)
	}
	return nil, ErrUnsupportedWorkbook
}

// ParsePOSClients reads the first sheet of an XLSX workbook. Rows without a
// client code or name are dropped; blank optional cells become nil.
func ParsePOSClients(r io.Reader) (*ParseResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoRows
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return parseRows(rows)
}

// ParsePOSClientsXLS reads the first sheet of a BIFF (.xls) workbook.
func ParsePOSClientsXLS(r io.ReadSeeker) (res *ParseResult, err error) {
	// the BIFF reader panics on some malformed files
	defer func() {
		if p := recover(); p != nil {
			res, err = nil, fmt.Errorf("open workbook: malformed xls: %v", p)
		}
	}()
	wb, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	if wb.NumSheets() == 0 {
		return nil, ErrNoRows
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, ErrNoRows
	}
	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, 0, row.LastCol())
		for c := 0; c < row.LastCol(); c++ {
			cells = append(cells, row.Col(c))
		}
		rows = append(rows, cells)
	}
	return parseRows(rows)
}

// parseRows maps a header row plus data rows onto POS records.
func parseRows(rows [][]string) (*ParseResult, error) {
	if len(rows) < 2 {
		return nil, ErrNoRows
	}

	index := headerIndex(rows[0])
	if _, ok := index["client_code"]; !ok {
		return nil, fmt.Errorf("missing column %q", headerAliases["client_code"][0])
	}
	if _, ok := index["client_name"]; !ok {
		return nil, fmt.Errorf("missing column %q", headerAliases["client_name"][0])
	}

	res := &ParseResult{}
	for i, cells := range rows[1:] {
		if blank(cells) {
			continue
		}
		res.TotalRows++

		code := cell(cells, index, "client_code")
		name := cell(cells, index, "client_name")
		if code == "" || name == "" {
			continue
		}
		res.Rows = append(res.Rows, POSRow{
			ClientCode: code,
			ClientName: name,
			Department: optional(cell(cells, index, "department")),
			Phone:      optional(cell(cells, index, "phone")),
			Line:       i + 2,
		})
	}
	if res.TotalRows == 0 {
		return nil, ErrNoRows
	}
	return res, nil
}

func headerIndex(header []string) map[string]int {
	index := make(map[string]int)
	for col, h := range header {
		h = strings.TrimSpace(h)
		for field, aliases := range headerAliases {
			if _, seen := index[field]; seen {
				continue
			}
			for _, alias := range aliases {
				if strings.EqualFold(h, alias) {
					index[field] = col
				}
			}
		}
	}
	return index
}

func cell(cells []string, index map[string]int, field string) string {
	col, ok := index[field]
	if !ok || col >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[col])
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
