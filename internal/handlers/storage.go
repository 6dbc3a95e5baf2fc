package handlers

import (
	"context"

	"packaging/models"
)

type StorageInterface interface {
	GetUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	GetProductTypes(ctx context.Context) ([]models.ProductType, error)
	CreateProductType(ctx context.Context, name string) (*models.ProductType, error)

	GetRequests(ctx context.Context) ([]models.Request, error)
	GetRequest(ctx context.Context, id int) (*models.Request, error)
	CreateRequest(ctx context.Context, customerID int, products []models.ProductLine) (*models.Request, error)
	SetInterest(ctx context.Context, requestID, supplierID int, interested bool) (*models.Request, error)

	CreateSession(ctx context.Context, sess *models.Session) error
	GetSessionUser(ctx context.Context, token string) (*models.User, error)
	DeleteSession(ctx context.Context, token string) error
}
