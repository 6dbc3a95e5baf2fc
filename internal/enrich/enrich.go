// Package enrich holds the read-side joins over the request ledger: resolving
// ids to display names and filtering by product type. All functions are pure;
// dangling references resolve to fallback labels instead of failing the view.
package enrich

import "packaging/models"

// Fallback labels for ids that no longer resolve.
const (
	UnknownCustomer = "Unknown customer"
	UnknownProduct  = "Unknown product"
	UnknownSupplier = "Unknown supplier"
)

// Requests joins each ledger entry against the user directory and product
// catalog. The input slices are not modified.
func Requests(requests []models.Request, users []models.User, types []models.ProductType) []models.EnrichedRequest {
	names := make(map[int]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Username
	}
	typeNames := make(map[int]string, len(types))
	for _, pt := range types {
		typeNames[pt.ID] = pt.Name
	}

	out := make([]models.EnrichedRequest, 0, len(requests))
	for _, r := range requests {
		er := models.EnrichedRequest{
			ID:                  r.ID,
			Customer:            lookup(names, r.CustomerID, UnknownCustomer),
			Products:            make([]models.EnrichedProductLine, 0, len(r.Products)),
			InterestedSuppliers: make([]string, 0, len(r.InterestedSupplierIDs)),
			CreatedAt:           r.CreatedAt,
		}
		for _, p := range r.Products {
			er.Products = append(er.Products, models.EnrichedProductLine{
				ProductTypeID: p.ProductTypeID,
				Name:          lookup(typeNames, p.ProductTypeID, UnknownProduct),
				Quantity:      p.Quantity,
			})
		}
		for _, id := range r.InterestedSupplierIDs {
			er.InterestedSuppliers = append(er.InterestedSuppliers, lookup(names, id, UnknownSupplier))
		}
		out = append(out, er)
	}
	return out
}

// FilterByProductTypes keeps requests with at least one product line whose
// type id is in the set. An empty set means no filtering: the full ledger
// comes back, not an empty result.
func FilterByProductTypes(requests []models.Request, typeIDs []int) []models.Request {
	if len(typeIDs) == 0 {
		return requests
	}
	wanted := make(map[int]struct{}, len(typeIDs))
	for _, id := range typeIDs {
		wanted[id] = struct{}{}
	}

	out := []models.Request{}
	for _, r := range requests {
		for _, p := range r.Products {
			if _, ok := wanted[p.ProductTypeID]; ok {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

func lookup(names map[int]string, id int, fallback string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return fallback
}
