// Export handlers: flat CSV/XLSX of the raw line items and per-order detail
// workbooks.
package httpapi

import (
	"bytes"
	"net/http"
	"strconv"

	chi "github.com/go-chi/chi/v5"

	"github.com/tinoosan/workshop/internal/export"
)

const (
	mimeCSV  = "text/csv; charset=utf-8"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// exportFlat streams the document's line items back in the upload column
// layout. format=csv (default) or format=xlsx.
func (s *Server) exportFlat(w http.ResponseWriter, r *http.Request) {
	docID, ok := documentID(w, r)
	if !ok {
		return
	}
	items, err := s.svc.Items(r.Context(), docID)
	if err != nil {
		writeSvcErr(w, err)
		return
	}
	switch format := r.URL.Query().Get("format"); format {
	case "", "csv":
		var buf bytes.Buffer
		if err := export.FlatCSV(&buf, items); err != nil {
			writeSvcErr(w, err)
			return
		}
		w.Header().Set("Content-Type", mimeCSV)
		w.Header().Set("Content-Disposition", `attachment; filename="document.csv"`)
		_, _ = w.Write(buf.Bytes())
	case "xlsx":
		buf, err := export.FlatWorkbook(items)
		if err != nil {
			writeSvcErr(w, err)
			return
		}
		w.Header().Set("Content-Type", mimeXLSX)
		w.Header().Set("Content-Disposition", `attachment; filename="document.xlsx"`)
		_, _ = w.Write(buf.Bytes())
	default:
		badRequest(w, "unknown format")
	}
}

// exportOrder writes one order's stacked items with income/expense/profit
// summary rows as an xlsx workbook.
func (s *Server) exportOrder(w http.ResponseWriter, r *http.Request) {
	docID, ok := documentID(w, r)
	if !ok {
		return
	}
	key, err := strconv.Atoi(chi.URLParam(r, "key"))
	if err != nil {
		badRequest(w, "invalid order key")
		return
	}
	og, err := s.svc.Order(r.Context(), docID, key)
	if err != nil {
		writeSvcErr(w, err)
		return
	}
	buf, err := export.OrderDetailWorkbook(og)
	if err != nil {
		writeSvcErr(w, err)
		return
	}
	w.Header().Set("Content-Type", mimeXLSX)
	w.Header().Set("Content-Disposition", `attachment; filename="order-`+strconv.Itoa(key)+`.xlsx"`)
	_, _ = w.Write(buf.Bytes())
}
