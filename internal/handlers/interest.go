package handlers

import (
	"errors"
	"net/http"

	"packaging/db"
	"packaging/models"
)

type interestResponse struct {
	Success        bool            `json:"success"`
	Message        string          `json:"message,omitempty"`
	UpdatedRequest *models.Request `json:"updatedRequest,omitempty"`
}

// UpdateInterestHandler handles PATCH /api/requests/interest. The toggle is
// idempotent in both directions: repeating the same value changes nothing,
// and different suppliers' toggles are independent.
func (h *Handler) UpdateInterestHandler(w http.ResponseWriter, r *http.Request) {
	var input models.InterestInput
	if !decodeBody(w, r, &input) {
		return
	}
	if err := validate.Struct(input); err != nil {
		writeJSON(w, http.StatusBadRequest, interestResponse{
			Success: false,
			Message: "requestId, supplierId and interested are required",
		})
		return
	}

	supplier, err := h.Store.GetUserByID(r.Context(), input.SupplierID)
	if errors.Is(err, db.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, interestResponse{Success: false, Message: "supplier not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, interestResponse{Success: false, Message: "failed to look up supplier"})
		return
	}
	if supplier.Role != models.RoleSupplier {
		writeJSON(w, http.StatusBadRequest, interestResponse{Success: false, Message: "supplierId must reference a supplier"})
		return
	}

	updated, err := h.Store.SetInterest(r.Context(), input.RequestID, input.SupplierID, *input.Interested)
	if errors.Is(err, db.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, interestResponse{Success: false, Message: "request not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, interestResponse{Success: false, Message: "failed to update interest"})
		return
	}
	h.Events.InterestChanged(r.Context(), updated, input.SupplierID, *input.Interested)

	writeJSON(w, http.StatusOK, interestResponse{Success: true, UpdatedRequest: updated})
}
