package httptransport

import (
	"net/http"

	"curator/internal/museum"
)

type createMuseumRequest struct {
	Name         string `json:"name"`
	City         string `json:"city"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	OpeningHours string `json:"opening_hours"`
}

func (h *Handler) handleCreateMuseum(w http.ResponseWriter, r *http.Request) {
	var req createMuseumRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	id, err := h.museums.Create(r.Context(), req.Name, req.City, museum.CreateParams{
		Address:      req.Address,
		Phone:        req.Phone,
		OpeningHours: req.OpeningHours,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"museum_id": id})
}

func (h *Handler) handleListMuseums(w http.ResponseWriter, r *http.Request) {
	museums, err := h.museums.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, museums)
}

func (h *Handler) handleMuseumPerformance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "museumID")
	if err != nil {
		writeError(w, err)
		return
	}
	report, err := h.museums.Performance(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
