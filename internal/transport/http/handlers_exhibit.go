package httptransport

import (
	"net/http"

	"curator/internal/domain"
	"curator/internal/exhibit"
)

type addExhibitRequest struct {
	MuseumID     int64   `json:"museum_id"`
	Title        string  `json:"title"`
	Category     string  `json:"category"`
	DateAcquired string  `json:"date_acquired"`
	Description  string  `json:"description"`
	Condition    string  `json:"condition"`
	Value        float64 `json:"value"`
}

func (h *Handler) handleAddExhibit(w http.ResponseWriter, r *http.Request) {
	var req addExhibitRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	id, err := h.exhibits.Add(r.Context(), req.MuseumID, req.Title, req.Category, req.DateAcquired, exhibit.AddParams{
		Description: req.Description,
		Condition:   domain.Condition(req.Condition),
		Value:       req.Value,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	h.metrics.ExhibitsRegistered.Inc()
	writeJSON(w, http.StatusCreated, map[string]int64{"exhibit_id": id})
}

type updateConditionRequest struct {
	Condition string `json:"condition"`
}

func (h *Handler) handleUpdateCondition(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "exhibitID")
	if err != nil {
		writeError(w, err)
		return
	}
	var req updateConditionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.exhibits.UpdateCondition(r.Context(), id, domain.Condition(req.Condition)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleFlagRestoration(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "exhibitID")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.exhibits.FlagForRestoration(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRemoveExhibit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "exhibitID")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.exhibits.Remove(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSearchExhibits(w http.ResponseWriter, r *http.Request) {
	found, err := h.exhibits.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (h *Handler) handleExhibitsByCondition(w http.ResponseWriter, r *http.Request) {
	condition := r.URL.Query().Get("condition")
	if condition == "" {
		badRequest(w, "condition query parameter is required")
		return
	}
	found, err := h.exhibits.ByCondition(r.Context(), domain.Condition(condition))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (h *Handler) handleValuableExhibits(w http.ResponseWriter, r *http.Request) {
	minValue, err := queryFloat(r, "min_value", 5000)
	if err != nil {
		writeError(w, err)
		return
	}
	found, err := h.exhibits.Valuable(r.Context(), minValue)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (h *Handler) handleTopExhibits(w http.ResponseWriter, r *http.Request) {
	ranked, err := h.exhibits.Top(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ranked)
}
