// Item mutation handlers: quantity changes and substitutions.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/govalues/decimal"
)

func itemID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		badRequest(w, "invalid item id")
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) patchQuantity(w http.ResponseWriter, r *http.Request) {
	docID, ok := documentID(w, r)
	if !ok {
		return
	}
	id, ok := itemID(w, r)
	if !ok {
		return
	}
	if !requireJSON(w, r) {
		return
	}
	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if err := s.svc.SetQuantity(r.Context(), docID, id, req.Quantity); err != nil {
		writeSvcErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) patchSubstitute(w http.ResponseWriter, r *http.Request) {
	docID, ok := documentID(w, r)
	if !ok {
		return
	}
	id, ok := itemID(w, r)
	if !ok {
		return
	}
	if !requireJSON(w, r) {
		return
	}
	var req substituteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	price, err := decimal.Parse(strings.ReplaceAll(req.UnitPrice, ",", "."))
	if err != nil {
		badRequest(w, "invalid unit_price")
		return
	}
	if err := s.svc.Substitute(r.Context(), docID, id, req.Name, price); err != nil {
		writeSvcErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
