package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/tinoosan/workshop/internal/ingest"
	"github.com/tinoosan/workshop/internal/storage/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := memory.New()
	srv := New(store, store, testLogger())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

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

func sampleWorkbook(t *testing.T) *bytes.Buffer {
	t.Helper()
	return workbookBytes(t, [][]interface{}{
		{ingest.ColService, ingest.ColItem, ingest.ColWorkGroup, ingest.ColKind, ingest.ColPrice, ingest.ColQuantity, ingest.ColPosition},
		{"Ремонт двигателя", "Подшипник_ID_1", "Замена запчастей", ingest.LabelIncome, "350.50", 2, 1},
		{"Ремонт двигателя", "Подшипник_ID_1", "Замена запчастей", ingest.LabelExpense, "210", 2, 1},
		{"Ремонт двигателя", "Анализ", "Разборка", ingest.LabelIncome, "100", 1, 1},
		{"Перемотка статора", "Мойка", "Разборка", ingest.LabelIncome, "50", 1, 2},
	})
}

func uploadWorkbook(t *testing.T, ts *httptest.Server, docID uuid.UUID, wb *bytes.Buffer) *http.Response {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "doc.xlsx")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := io.Copy(fw, wb); err != nil {
		t.Fatalf("copy workbook: %v", err)
	}
	_ = mw.Close()
	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/v1/documents/"+docID.String()+"/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestImportAndTree(t *testing.T) {
	ts := newTestServer(t)
	docID := uuid.New()

	resp := uploadWorkbook(t, ts, docID, sampleWorkbook(t))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("import status %d", resp.StatusCode)
	}
	var imported importResponse
	decodeJSON(t, resp, &imported)
	if imported.Accepted != 4 || imported.Dropped != 0 {
		t.Fatalf("unexpected import result: %+v", imported)
	}

	resp, err := ts.Client().Get(ts.URL + "/v1/documents/" + docID.String() + "/tree")
	if err != nil {
		t.Fatalf("get tree: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("tree status %d", resp.StatusCode)
	}
	var tree []orderGroupResponse
	decodeJSON(t, resp, &tree)
	if len(tree) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(tree))
	}
	if tree[0].Key != 1 || tree[0].Label != "Ремонт двигателя" {
		t.Fatalf("orders not sorted by key: %+v", tree[0])
	}
	// 350.50*2 + 100 income on order 1
	if tree[0].TotalIncome.Cmp(decimal.MustParse("801")) != 0 {
		t.Fatalf("order income = %s, want 801", tree[0].TotalIncome)
	}
	if tree[0].TotalExpense.Cmp(decimal.MustParse("420")) != 0 {
		t.Fatalf("order expense = %s, want 420", tree[0].TotalExpense)
	}
}

func TestImportRejectsNonWorkbook(t *testing.T) {
	ts := newTestServer(t)
	docID := uuid.New()
	resp := uploadWorkbook(t, ts, docID, bytes.NewBufferString("not a workbook"))
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for malformed upload, got %d", resp.StatusCode)
	}
}

func TestGetOrderAndExport(t *testing.T) {
	ts := newTestServer(t)
	docID := uuid.New()
	uploadWorkbook(t, ts, docID, sampleWorkbook(t)).Body.Close()

	resp, err := ts.Client().Get(ts.URL + "/v1/documents/" + docID.String() + "/orders/2")
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("get order: %v (status %d)", err, resp.StatusCode)
	}
	var og orderGroupResponse
	decodeJSON(t, resp, &og)
	if og.Label != "Перемотка статора" {
		t.Fatalf("wrong order: %+v", og)
	}

	resp, err = ts.Client().Get(ts.URL + "/v1/documents/" + docID.String() + "/orders/99")
	if err != nil {
		t.Fatalf("get missing order: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown order, got %d", resp.StatusCode)
	}

	resp, err = ts.Client().Get(ts.URL + "/v1/documents/" + docID.String() + "/export")
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("export: %v (status %d)", err, resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), ingest.ColService) || !strings.Contains(string(body), "Подшипник_ID_1") {
		t.Fatalf("csv export missing expected content")
	}

	resp, err = ts.Client().Get(ts.URL + "/v1/documents/" + docID.String() + "/orders/1/export")
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("order export: %v (status %d)", err, resp.StatusCode)
	}
	wb, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if _, err := excelize.OpenReader(bytes.NewReader(wb)); err != nil {
		t.Fatalf("order export is not a workbook: %v", err)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	docID, motorID := uuid.New(), uuid.New()
	uploadWorkbook(t, ts, docID, sampleWorkbook(t)).Body.Close()

	body, _ := json.Marshal(snapshotRequest{MotorID: motorID})
	resp, err := ts.Client().Post(ts.URL+"/v1/documents/"+docID.String()+"/snapshot", "application/json", bytes.NewReader(body))
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("snapshot: %v (status %d)", err, resp.StatusCode)
	}
	var rows []reportRowResponse
	decodeJSON(t, resp, &rows)
	if len(rows) == 0 || rows[0].Level != 0 {
		t.Fatalf("snapshot rows malformed: %+v", rows)
	}
	for i, rr := range rows {
		if rr.OrderIndex != i {
			t.Fatalf("order index must follow traversal order")
		}
	}

	resp, err = ts.Client().Get(ts.URL + "/v1/documents/" + docID.String() + "/snapshot")
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("get snapshot: %v (status %d)", err, resp.StatusCode)
	}
	var stored []reportRowResponse
	decodeJSON(t, resp, &stored)
	if len(stored) != len(rows) {
		t.Fatalf("stored snapshot has %d rows, want %d", len(stored), len(rows))
	}
	if stored[0].MotorID != motorID {
		t.Fatalf("motor id not stamped: %+v", stored[0])
	}
}

func TestPatchQuantity(t *testing.T) {
	ts := newTestServer(t)
	docID := uuid.New()
	uploadWorkbook(t, ts, docID, sampleWorkbook(t)).Body.Close()

	resp, _ := ts.Client().Get(ts.URL + "/v1/documents/" + docID.String() + "/items")
	var items []lineItemResponse
	decodeJSON(t, resp, &items)
	if len(items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(items))
	}

	patch := func(itemID uuid.UUID, body string, contentType string) *http.Response {
		req, _ := http.NewRequest(http.MethodPatch,
			ts.URL+"/v1/documents/"+docID.String()+"/items/"+itemID.String()+"/quantity",
			strings.NewReader(body))
		req.Header.Set("Content-Type", contentType)
		resp, err := ts.Client().Do(req)
		if err != nil {
			t.Fatalf("patch: %v", err)
		}
		return resp
	}

	resp = patch(items[0].ID, `{"quantity": 5}`, "application/json")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("patch status %d", resp.StatusCode)
	}

	resp = patch(items[0].ID, `{"quantity": 0}`, "application/json")
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for quantity 0, got %d", resp.StatusCode)
	}

	resp = patch(uuid.New(), `{"quantity": 2}`, "application/json")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown item, got %d", resp.StatusCode)
	}

	resp = patch(items[0].ID, `{"quantity": 2}`, "text/plain")
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415 for wrong content type, got %d", resp.StatusCode)
	}

	resp, _ = ts.Client().Get(ts.URL + "/v1/documents/" + docID.String() + "/items")
	decodeJSON(t, resp, &items)
	if items[0].Quantity != 5 {
		t.Fatalf("quantity not persisted: %+v", items[0])
	}
}

func TestPatchSubstitute(t *testing.T) {
	ts := newTestServer(t)
	docID := uuid.New()
	uploadWorkbook(t, ts, docID, sampleWorkbook(t)).Body.Close()

	resp, _ := ts.Client().Get(ts.URL + "/v1/documents/" + docID.String() + "/items")
	var items []lineItemResponse
	decodeJSON(t, resp, &items)

	body := `{"name": "Подшипник_ID_2", "unit_price": "399,90"}`
	req, _ := http.NewRequest(http.MethodPatch,
		ts.URL+"/v1/documents/"+docID.String()+"/items/"+items[0].ID.String()+"/substitute",
		strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("substitute: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("substitute status %d", resp.StatusCode)
	}

	resp, _ = ts.Client().Get(ts.URL + "/v1/documents/" + docID.String() + "/items")
	decodeJSON(t, resp, &items)
	if items[0].Name != "Подшипник_ID_2" || items[0].UnitPrice.String() != "399.90" {
		t.Fatalf("substitution not applied: %+v", items[0])
	}
}

func TestDictionary(t *testing.T) {
	ts := newTestServer(t)
	resp, err := ts.Client().Get(ts.URL + "/v1/dictionary/work-groups")
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("dictionary: %v (status %d)", err, resp.StatusCode)
	}
	var defs []workGroupDefResponse
	decodeJSON(t, resp, &defs)
	if len(defs) == 0 || defs[0].Code == "" {
		t.Fatalf("dictionary empty or malformed: %+v", defs)
	}
}

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		resp, err := ts.Client().Get(ts.URL + path)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s status %d", path, resp.StatusCode)
		}
	}
}

func TestInvalidDocumentID(t *testing.T) {
	ts := newTestServer(t)
	resp, err := ts.Client().Get(ts.URL + "/v1/documents/not-a-uuid/tree")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", resp.StatusCode)
	}
}
