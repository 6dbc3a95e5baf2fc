package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"packaging/db"
	"packaging/internal/enrich"
	"packaging/models"
)

// parseProductTypeIDs reads the productTypeIds csv query param. Entries that
// do not parse as positive integers are ignored.
func parseProductTypeIDs(r *http.Request) []int {
	raw := r.URL.Query().Get("productTypeIds")
	if raw == "" {
		return nil
	}
	var ids []int
	for _, part := range strings.Split(raw, ",") {
		if id, err := strconv.Atoi(strings.TrimSpace(part)); err == nil && id > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// GetRequestsHandler returns the ledger, optionally filtered by product type.
// An empty filter set means no filtering.
func (h *Handler) GetRequestsHandler(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Store.GetRequests(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get requests")
		return
	}
	writeJSON(w, http.StatusOK, enrich.FilterByProductTypes(requests, parseProductTypeIDs(r)))
}

// GetRequestHandler returns a single ledger entry by id.
func (h *Handler) GetRequestHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "requestId"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid requestId")
		return
	}

	request, err := h.Store.GetRequest(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, "request not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get request")
		return
	}
	writeJSON(w, http.StatusOK, request)
}

// GetEnrichedRequestsHandler returns the ledger joined against the user
// directory and product catalog, with the same optional product-type filter.
func (h *Handler) GetEnrichedRequestsHandler(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Store.GetRequests(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get requests")
		return
	}
	users, err := h.Store.GetUsers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get users")
		return
	}
	types, err := h.Store.GetProductTypes(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get product types")
		return
	}

	filtered := enrich.FilterByProductTypes(requests, parseProductTypeIDs(r))
	writeJSON(w, http.StatusOK, enrich.Requests(filtered, users, types))
}

// CreateRequestHandler handles POST /api/requests. Everything is validated
// before the ledger is touched: body shape, positive quantities, the customer
// reference, and every product-type reference.
func (h *Handler) CreateRequestHandler(w http.ResponseWriter, r *http.Request) {
	var input models.CreateRequestInput
	if !decodeBody(w, r, &input) {
		return
	}
	if err := validate.Struct(input); err != nil {
		writeError(w, http.StatusBadRequest, "customerId and a non-empty products list with positive quantities are required")
		return
	}

	customer, err := h.Store.GetUserByID(r.Context(), input.CustomerID)
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusBadRequest, "customerId does not reference an existing user")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to look up customer")
		return
	}
	if customer.Role != models.RoleCustomer {
		writeError(w, http.StatusBadRequest, "customerId must reference a customer")
		return
	}

	types, err := h.Store.GetProductTypes(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get product types")
		return
	}
	known := make(map[int]struct{}, len(types))
	for _, pt := range types {
		known[pt.ID] = struct{}{}
	}

	products := make([]models.ProductLine, 0, len(input.Products))
	for _, p := range input.Products {
		if _, ok := known[p.ProductTypeID]; !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown productTypeId %d", p.ProductTypeID))
			return
		}
		products = append(products, models.ProductLine{ProductTypeID: p.ProductTypeID, Quantity: p.Quantity})
	}

	request, err := h.Store.CreateRequest(r.Context(), input.CustomerID, products)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create request")
		return
	}
	h.Events.RequestCreated(r.Context(), request)

	writeJSON(w, http.StatusCreated, request)
}
