package httptransport

import (
	"net/http"

	"curator/internal/domain"
	"curator/pkg/requestcontext"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	identity, err := h.auth.Login(r.Context(), req.Username, req.Password)
	h.metrics.RecordLogin(err == nil)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.tokens.Issue(identity, requestcontext.Now(r.Context()))
	if err != nil {
		h.logger.Printf("issue token for user %d: %v", identity.UserID, err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:    token,
		UserID:   identity.UserID,
		Username: identity.Username,
		Role:     string(identity.Role),
	})
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	requesterRole := domain.Role(requestcontext.ActorRole(r.Context()))
	id, err := h.auth.CreateUser(r.Context(), req.Username, req.Password, domain.Role(req.Role), requesterRole)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"user_id": id})
}
