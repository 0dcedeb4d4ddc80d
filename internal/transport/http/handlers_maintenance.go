package httptransport

import (
	"net/http"

	"curator/internal/maintenance"
)

type scheduleMaintenanceRequest struct {
	ExhibitID  int64   `json:"exhibit_id"`
	Action     string  `json:"action"`
	Date       string  `json:"date"`
	Specialist string  `json:"specialist"`
	Cost       float64 `json:"cost"`
	Notes      string  `json:"notes"`
}

func (h *Handler) handleScheduleMaintenance(w http.ResponseWriter, r *http.Request) {
	var req scheduleMaintenanceRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	id, err := h.maintenance.Schedule(r.Context(), req.ExhibitID, req.Action, req.Date, req.Specialist,
		maintenance.ScheduleParams{Cost: req.Cost, Notes: req.Notes})
	if err != nil {
		writeError(w, err)
		return
	}
	h.metrics.MaintenanceScheduled.Inc()
	writeJSON(w, http.StatusCreated, map[string]int64{"maintenance_id": id})
}

func (h *Handler) handleMaintenancePlan(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", 365)
	if err != nil {
		writeError(w, err)
		return
	}
	plan, err := h.maintenance.Plan(r.Context(), days)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *Handler) handleMaintenanceBudget(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	summary, err := h.maintenance.Budget(r.Context(), q.Get("start"), q.Get("end"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) handleMaintenanceSummary(w http.ResponseWriter, r *http.Request) {
	rows, err := h.maintenance.Summary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
