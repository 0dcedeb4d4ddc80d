package httptransport

import (
	"net/http"
)

func (h *Handler) handleAuditList(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 50)
	if err != nil {
		writeError(w, err)
		return
	}
	entries, err := h.audit.List(r.Context(), r.URL.Query().Get("table"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
