package handlers

import (
	"errors"
	"net/http"
	"strings"

	"packaging/db"
	"packaging/internal/auth"
	"packaging/models"
)

type loginResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
	Token   string       `json:"token"`
}

// LoginHandler handles POST /api/auth/login. On a credential match it issues
// a session token; the password hash never appears in the response.
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var input models.LoginInput
	if !decodeBody(w, r, &input) {
		return
	}
	if err := validate.Struct(input); err != nil {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.Store.GetUserByUsername(r.Context(), input.Username)
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to look up user")
		return
	}
	if err := auth.CheckPassword(user.PasswordHash, input.Password); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	sess := auth.NewSession(user.ID, h.SessionTTL)
	if err := h.Store.CreateSession(r.Context(), sess); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Success: true,
		User:    user,
		Token:   sess.Token,
	})
}

// LogoutHandler handles POST /api/auth/logout, revoking the bearer token.
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}
	if err := h.Store.DeleteSession(r.Context(), token); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// MeHandler handles GET /api/auth/me, resolving the bearer token to its user.
func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	user, err := h.Store.GetSessionUser(r.Context(), token)
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "session expired or unknown")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to look up session")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
