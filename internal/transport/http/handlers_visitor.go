package httptransport

import (
	"net/http"

	"curator/internal/domain"
	"curator/internal/visitor"
)

type registerVisitorRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Membership string `json:"membership"`
}

func (h *Handler) handleRegisterVisitor(w http.ResponseWriter, r *http.Request) {
	var req registerVisitorRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	id, err := h.visitors.Register(r.Context(), req.Name, req.Email, visitor.RegisterParams{
		Phone:      req.Phone,
		Membership: domain.Membership(req.Membership),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"visitor_id": id})
}

type logVisitRequest struct {
	VisitorID  int64  `json:"visitor_id"`
	MuseumID   int64  `json:"museum_id"`
	VisitDate  string `json:"visit_date"`
	Membership string `json:"membership"`
	Rating     *int   `json:"rating"`
}

func (h *Handler) handleLogVisit(w http.ResponseWriter, r *http.Request) {
	var req logVisitRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	id, err := h.visitors.LogVisit(r.Context(), req.VisitorID, req.MuseumID, req.VisitDate,
		domain.Membership(req.Membership), req.Rating)
	if err != nil {
		writeError(w, err)
		return
	}
	h.metrics.VisitsLogged.Inc()
	writeJSON(w, http.StatusCreated, map[string]int64{"visit_id": id})
}

func (h *Handler) handleVisitorStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.visitors.Statistics(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) handleVIPs(w http.ResponseWriter, r *http.Request) {
	minVisits, err := queryInt(r, "min_visits", 5)
	if err != nil {
		writeError(w, err)
		return
	}
	vips, err := h.visitors.VIPs(r.Context(), minVisits)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vips)
}

func (h *Handler) handleVisitorByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		badRequest(w, "email query parameter is required")
		return
	}
	v, err := h.visitors.ByEmail(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}
