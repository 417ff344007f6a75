// Document handlers: upload, derived hierarchy reads and snapshots.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tinoosan/workshop/internal/ingest"
)

const maxUploadBytes = 16 << 20

func documentID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "invalid document id")
		return uuid.Nil, false
	}
	return id, true
}

// importDocument accepts a multipart upload with a single "file" part holding
// the xlsx workbook and replaces the document's line items with its rows.
func (s *Server) importDocument(w http.ResponseWriter, r *http.Request) {
	docID, ok := documentID(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		badRequest(w, "expected multipart form with a file part")
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		badRequest(w, "missing file part")
		return
	}
	defer file.Close()

	rows, err := ingest.ReadWorkbook(file)
	if err != nil {
		writeSvcErr(w, err)
		return
	}
	res, err := s.svc.Import(r.Context(), docID, rows)
	if err != nil {
		writeSvcErr(w, err)
		return
	}
	toJSON(w, http.StatusCreated, importResponse{DocumentID: docID, Accepted: res.Accepted, Dropped: res.Dropped})
}

func (s *Server) listItems(w http.ResponseWriter, r *http.Request) {
	docID, ok := documentID(w, r)
	if !ok {
		return
	}
	items, err := s.svc.Items(r.Context(), docID)
	if err != nil {
		writeSvcErr(w, err)
		return
	}
	out := make([]lineItemResponse, 0, len(items))
	for _, li := range items {
		out = append(out, toLineItem(li))
	}
	toJSON(w, http.StatusOK, out)
}

// getTree returns the grouped hierarchy, rebuilt from the flat items.
func (s *Server) getTree(w http.ResponseWriter, r *http.Request) {
	docID, ok := documentID(w, r)
	if !ok {
		return
	}
	groups, err := s.svc.Tree(r.Context(), docID)
	if err != nil {
		writeSvcErr(w, err)
		return
	}
	out := make([]orderGroupResponse, 0, len(groups))
	for _, og := range groups {
		out = append(out, toOrderGroup(og))
	}
	toJSON(w, http.StatusOK, out)
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
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
	toJSON(w, http.StatusOK, toOrderGroup(og))
}

// postSnapshot flattens the current hierarchy and persists the rows.
func (s *Server) postSnapshot(w http.ResponseWriter, r *http.Request) {
	docID, ok := documentID(w, r)
	if !ok {
		return
	}
	if !requireJSON(w, r) {
		return
	}
	var req snapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	rows, err := s.svc.Snapshot(r.Context(), docID, req.MotorID)
	if err != nil {
		writeSvcErr(w, err)
		return
	}
	out := make([]reportRowResponse, 0, len(rows))
	for _, rr := range rows {
		out = append(out, toReportRow(rr))
	}
	toJSON(w, http.StatusCreated, out)
}

func (s *Server) getSnapshot(w http.ResponseWriter, r *http.Request) {
	docID, ok := documentID(w, r)
	if !ok {
		return
	}
	rows, err := s.svc.LatestSnapshot(r.Context(), docID)
	if err != nil {
		writeSvcErr(w, err)
		return
	}
	out := make([]reportRowResponse, 0, len(rows))
	for _, rr := range rows {
		out = append(out, toReportRow(rr))
	}
	toJSON(w, http.StatusOK, out)
}
