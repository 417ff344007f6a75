// Package export renders document data into the two spreadsheet shapes the
// office works with: the raw flat table (same columns as an upload, with the
// derived position column) and a per-order detail table with grouping context.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/tinoosan/workshop/internal/ingest"
	"github.com/tinoosan/workshop/internal/repair"
)

var flatHeader = []string{
	ingest.ColService, ingest.ColItem, ingest.ColWorkGroup, ingest.ColKind,
	ingest.ColPrice, ingest.ColQuantity, ingest.ColPosition,
}

func kindLabel(k repair.TxKind) string {
	if k == repair.TxIncome {
		return ingest.LabelIncome
	}
	return ingest.LabelExpense
}

func flatRecords(items []repair.LineItem) [][]string {
	out := make([][]string, 0, len(items)+1)
	out = append(out, flatHeader)
	for _, li := range items {
		out = append(out, []string{
			li.OrderLabel,
			li.RawName,
			li.WorkGroup,
			kindLabel(li.Kind),
			li.UnitPrice.String(),
			strconv.Itoa(li.Quantity),
			strconv.Itoa(li.OrderKey),
		})
	}
	return out
}

// FlatCSV writes the flat table as CSV.
func FlatCSV(w io.Writer, items []repair.LineItem) error {
	cw := csv.NewWriter(w)
	for _, rec := range flatRecords(items) {
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// FlatWorkbook writes the flat table as an xlsx workbook.
func FlatWorkbook(items []repair.LineItem) (*bytes.Buffer, error) {
	return writeWorkbook(flatRecords(items))
}

var detailHeader = []string{
	ingest.ColWorkGroup, ingest.ColPosition + " (группа)", ingest.ColKind,
	ingest.ColItem, ingest.ColPrice, ingest.ColQuantity, "Сумма",
}

// OrderDetailWorkbook renders one order's hierarchy as a detail table: one
// line per stacked item with its grouping context, followed by order totals.
func OrderDetailWorkbook(og repair.OrderGroup) (*bytes.Buffer, error) {
	records := [][]string{detailHeader}
	appendItems := func(wg repair.WorkGroup, pg repair.PositionGroup, tg repair.TransactionGroup) {
		for _, it := range tg.Items {
			records = append(records, []string{
				wg.Name,
				pg.BaseName,
				kindLabel(tg.Kind),
				it.Name,
				it.UnitPrice.String(),
				strconv.Itoa(it.Quantity),
				it.Total.String(),
			})
		}
	}
	for _, wg := range og.WorkGroups {
		for _, pg := range wg.Positions {
			appendItems(wg, pg, pg.Income)
			appendItems(wg, pg, pg.Expense)
		}
	}
	records = append(records,
		[]string{},
		[]string{"Итого доходы", "", "", "", "", "", og.TotalIncome.String()},
		[]string{"Итого расходы", "", "", "", "", "", og.TotalExpense.String()},
		[]string{"Прибыль", "", "", "", "", "", og.TotalProfit.String()},
	)
	return writeWorkbook(records)
}

func writeWorkbook(records [][]string) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetList()[0]
	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		line := make([]interface{}, len(rec))
		for j, v := range rec {
			line[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &line); err != nil {
			return nil, fmt.Errorf("write line %d: %w", i+1, err)
		}
	}
	return f.WriteToBuffer()
}
