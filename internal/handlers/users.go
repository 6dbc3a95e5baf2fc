package handlers

import "net/http"

// GetUsersHandler returns the user directory ordered by id. Password hashes
// are excluded by the model's JSON tags.
func (h *Handler) GetUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.GetUsers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}
