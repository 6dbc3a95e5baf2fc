package models

import "time"

// User roles as stored in the directory.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
	RoleSupplier = "supplier"
)

// User is a directory record. PasswordHash never leaves the server.
type User struct {
	ID           int       `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// ProductType is a catalog entry.
type ProductType struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// ProductLine is one ordered line of a request.
type ProductLine struct {
	ProductTypeID int `db:"product_type_id" json:"productTypeId"`
	Quantity      int `db:"quantity" json:"quantity"`
}

// Request is a ledger entry. Products keeps submission order;
// InterestedSupplierIDs is a set (each supplier at most once).
type Request struct {
	ID                    int           `db:"id" json:"id"`
	CustomerID            int           `db:"customer_id" json:"customerId"`
	Products              []ProductLine `json:"products"`
	InterestedSupplierIDs []int         `json:"interestedSupplierIds"`
	CreatedAt             time.Time     `db:"created_at" json:"createdAt"`
}

// Session is an issued login token.
type Session struct {
	Token     string    `db:"token" json:"token"`
	UserID    int       `db:"user_id" json:"userId"`
	ExpiresAt time.Time `db:"expires_at" json:"expiresAt"`
}

// EnrichedProductLine is a product line with the type id resolved to a name.
type EnrichedProductLine struct {
	ProductTypeID int    `json:"productTypeId"`
	Name          string `json:"name"`
	Quantity      int    `json:"quantity"`
}

// EnrichedRequest is the read-side join of a request against the user
// directory and product catalog.
type EnrichedRequest struct {
	ID                  int                   `json:"id"`
	Customer            string                `json:"customer"`
	Products            []EnrichedProductLine `json:"products"`
	InterestedSuppliers []string              `json:"interestedSuppliers"`
	CreatedAt           time.Time             `json:"createdAt"`
}

// LoginInput is the POST /auth/login body.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateProductTypeInput is the POST /product-types body.
type CreateProductTypeInput struct {
	Name string `json:"name" validate:"required"`
}

// ProductLineInput is one product line of a submission.
type ProductLineInput struct {
	ProductTypeID int `json:"productTypeId" validate:"required,gt=0"`
	Quantity      int `json:"quantity" validate:"required,gt=0"`
}

// CreateRequestInput is the POST /requests body.
type CreateRequestInput struct {
	CustomerID int                `json:"customerId" validate:"required,gt=0"`
	Products   []ProductLineInput `json:"products" validate:"required,min=1,dive"`
}

// InterestInput is the PATCH /requests/interest body. Interested is a pointer
// so a missing field is rejected instead of defaulting to false.
type InterestInput struct {
	RequestID  int   `json:"requestId" validate:"required,gt=0"`
	SupplierID int   `json:"supplierId" validate:"required,gt=0"`
	Interested *bool `json:"interested" validate:"required"`
}
