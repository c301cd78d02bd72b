package gradesheet

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrInvalidSpreadsheet = errors.New("invalid spreadsheet")
	ErrEmptySheet         = errors.New("spreadsheet has no data rows")
)

// ReadRows opens a workbook and returns the data rows of its first sheet.
// Row 1 is the header row; columns with a blank header and fully blank rows are skipped.
func ReadRows(data []byte) ([]Row, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpreadsheet, err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}

	raw, err := file.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: read rows: %v", ErrInvalidSpreadsheet, err)
	}
	if len(raw) < 2 { // Header + at least one data row
		return nil, ErrEmptySheet
	}

	header := make([]string, len(raw[0]))
	for i, h := range raw[0] {
		header[i] = strings.TrimSpace(h)
	}

	rows := make([]Row, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		row := make(Row, 0, len(header))
		blank := true
		for i, h := range header {
			if h == "" {
				continue
			}
			v := ""
			if i < len(cells) {
				v = cells[i]
			}
			if strings.TrimSpace(v) != "" {
				blank = false
			}
			row = append(row, Cell{Header: h, Value: v})
		}
		if blank {
			continue
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}
	return rows, nil
}
