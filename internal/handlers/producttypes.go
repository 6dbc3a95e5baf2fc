package handlers

import (
	"net/http"
	"strings"

	"packaging/models"
)

// GetProductTypesHandler returns the catalog, read-through cached when a
// cache is configured.
func (h *Handler) GetProductTypesHandler(w http.ResponseWriter, r *http.Request) {
	if types, ok := h.Cache.GetProductTypes(r.Context()); ok {
		writeJSON(w, http.StatusOK, types)
		return
	}

	types, err := h.Store.GetProductTypes(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get product types")
		return
	}
	h.Cache.SetProductTypes(r.Context(), types)
	writeJSON(w, http.StatusOK, types)
}

// CreateProductTypeHandler appends a catalog entry with the next sequential
// id and invalidates the cached catalog.
func (h *Handler) CreateProductTypeHandler(w http.ResponseWriter, r *http.Request) {
	var input models.CreateProductTypeInput
	if !decodeBody(w, r, &input) {
		return
	}
	input.Name = strings.TrimSpace(input.Name)
	if err := validate.Struct(input); err != nil {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	pt, err := h.Store.CreateProductType(r.Context(), input.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create product type")
		return
	}
	h.Cache.InvalidateProductTypes(r.Context())

	writeJSON(w, http.StatusCreated, pt)
}
