package ingest

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/tinoosan/workshop/internal/errs"
)

func workbookBytes(t *testing.T, lines [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetList()[0]
	for i, line := range lines {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &line); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf
}

func TestReadWorkbook(t *testing.T) {
	buf := workbookBytes(t, [][]interface{}{
		{ColService, ColItem, ColWorkGroup, ColKind, ColPrice, ColQuantity, ColPosition},
		{"Ремонт двигателя", "Подшипник_ID_1", "Замена запчастей", LabelIncome, "350.50", 2, 1},
		{"Ремонт двигателя", "Сальник", "Замена запчастей", LabelExpense, 45, 1, 1},
	})
	rows, err := ReadWorkbook(buf)
	if err != nil {
		t.Fatalf("read workbook: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Line != 2 || rows[1].Line != 3 {
		t.Fatalf("line numbers wrong: %d, %d", rows[0].Line, rows[1].Line)
	}
	if rows[0].Cells[ColItem] != "Подшипник_ID_1" || rows[1].Cells[ColPrice] != "45" {
		t.Fatalf("cells not keyed by header: %+v", rows)
	}
}

func TestReadWorkbook_EmptySheet(t *testing.T) {
	f := excelize.NewFile()
	buf, err := f.WriteToBuffer()
	_ = f.Close()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	if _, err := ReadWorkbook(buf); !errors.Is(err, errs.ErrNoTable) {
		t.Fatalf("expected ErrNoTable, got %v", err)
	}
}

func TestReadWorkbook_NotAWorkbook(t *testing.T) {
	if _, err := ReadWorkbook(bytes.NewReader([]byte("definitely not xlsx"))); err == nil {
		t.Fatalf("expected error for malformed input")
	}
}

func TestReadWorkbook_Normalizes(t *testing.T) {
	buf := workbookBytes(t, [][]interface{}{
		{ColService, ColItem, ColWorkGroup, ColKind, ColPrice, ColQuantity, ColPosition},
		{"Ремонт", "Анализ", "Разборка", LabelIncome, 100, 1, 1},
	})
	rows, err := ReadWorkbook(buf)
	if err != nil {
		t.Fatalf("read workbook: %v", err)
	}
	items, dropped := NewNormalizer(testLogger()).Normalize(uuid.New(), rows)
	if dropped != 0 || len(items) != 1 {
		t.Fatalf("expected 1 item, got %d (%d dropped)", len(items), dropped)
	}
	if items[0].Metadata["sheet"] == "" {
		t.Fatalf("sheet provenance missing")
	}
}
