package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/tinoosan/workshop/internal/errs"
)

// ReadWorkbook extracts raw rows from the first sheet of an xlsx workbook.
// The first worksheet line is treated as the header; short rows are padded by
// omission (missing cells simply stay absent from the map). A workbook with no
// sheet, or a sheet without a header line, fails with errs.ErrNoTable; input
// that is not an xlsx workbook at all fails with errs.ErrUnprocessable.
func ReadWorkbook(r io.Reader) ([]RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook: %v", errs.ErrUnprocessable, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errs.ErrNoTable
	}
	sheet := sheets[0]
	lines, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(lines) == 0 {
		return nil, errs.ErrNoTable
	}

	header := make([]string, len(lines[0]))
	for i, h := range lines[0] {
		header[i] = strings.TrimSpace(h)
	}
	rows := make([]RawRow, 0, len(lines)-1)
	for i, cells := range lines[1:] {
		m := make(map[string]string, len(header))
		for j, h := range header {
			if h == "" || j >= len(cells) {
				continue
			}
			m[h] = cells[j]
		}
		rows = append(rows, RawRow{Sheet: sheet, Line: i + 2, Cells: m})
	}
	return rows, nil
}
