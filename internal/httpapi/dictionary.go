package httpapi

import (
	"net/http"

	"github.com/tinoosan/workshop/internal/dictionary"
)

// listWorkGroups returns the curated work-group dictionary.
func (s *Server) listWorkGroups(w http.ResponseWriter, r *http.Request) {
	defs := dictionary.Groups()
	out := make([]workGroupDefResponse, 0, len(defs))
	for _, d := range defs {
		out = append(out, workGroupDefResponse{Code: d.Code, Label: d.Label})
	}
	toJSON(w, http.StatusOK, out)
}
