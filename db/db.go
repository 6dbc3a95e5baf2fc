package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"packaging/models"
)

// ErrNotFound is returned when a referenced id does not exist.
var ErrNotFound = errors.New("not found")

type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

// Users (directory)

func (s *Storage) GetUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	query := `SELECT id, username, password_hash, role, created_at FROM users ORDER BY id ASC`
	err := s.db.SelectContext(ctx, &users, query)
	return users, err
}

func (s *Storage) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	u := &models.User{}
	query := `SELECT id, username, password_hash, role, created_at FROM users WHERE id=$1`
	err := s.db.GetContext(ctx, u, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	u := &models.User{}
	query := `SELECT id, username, password_hash, role, created_at FROM users WHERE username=$1`
	err := s.db.GetContext(ctx, u, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

func (s *Storage) CreateUser(ctx context.Context, u *models.User) error {
	query := `
        INSERT INTO users (id, username, password_hash, role)
        VALUES ((SELECT COALESCE(MAX(id), 0) + 1 FROM users), $1, $2, $3)
        RETURNING id, created_at`
	return s.db.QueryRowContext(ctx, query, u.Username, u.PasswordHash, u.Role).
		Scan(&u.ID, &u.CreatedAt)
}

// ProductTypes (catalog)

func (s *Storage) GetProductTypes(ctx context.Context) ([]models.ProductType, error) {
	types := []models.ProductType{}
	query := `SELECT id, name FROM product_types ORDER BY id ASC`
	err := s.db.SelectContext(ctx, &types, query)
	return types, err
}

// CreateProductType assigns id = max(existing)+1, or 1 for an empty catalog.
// The table lock serializes concurrent creates so the numbering has no gaps.
func (s *Storage) CreateProductType(ctx context.Context, name string) (*models.ProductType, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `LOCK TABLE product_types IN EXCLUSIVE MODE`); err != nil {
		return nil, err
	}

	pt := &models.ProductType{Name: name}
	query := `
        INSERT INTO product_types (id, name)
        SELECT COALESCE(MAX(id), 0) + 1, $1 FROM product_types
        RETURNING id`
	if err := tx.QueryRowContext(ctx, query, name).Scan(&pt.ID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return pt, nil
}

// Requests (ledger)

type requestProductRow struct {
	RequestID     int `db:"request_id"`
	ProductTypeID int `db:"product_type_id"`
	Quantity      int `db:"quantity"`
}

type requestInterestRow struct {
	RequestID  int `db:"request_id"`
	SupplierID int `db:"supplier_id"`
}

func (s *Storage) GetRequests(ctx context.Context) ([]models.Request, error) {
	requests := []models.Request{}
	query := `SELECT id, customer_id, created_at FROM requests ORDER BY id ASC`
	if err := s.db.SelectContext(ctx, &requests, query); err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return requests, nil
	}

	products := []requestProductRow{}
	query = `SELECT request_id, product_type_id, quantity FROM request_products ORDER BY request_id, position ASC`
	if err := s.db.SelectContext(ctx, &products, query); err != nil {
		return nil, err
	}

	interests := []requestInterestRow{}
	query = `SELECT request_id, supplier_id FROM request_interests ORDER BY request_id, supplier_id ASC`
	if err := s.db.SelectContext(ctx, &interests, query); err != nil {
		return nil, err
	}

	byID := make(map[int]*models.Request, len(requests))
	for i := range requests {
		requests[i].Products = []models.ProductLine{}
		requests[i].InterestedSupplierIDs = []int{}
		byID[requests[i].ID] = &requests[i]
	}
	for _, p := range products {
		if r, ok := byID[p.RequestID]; ok {
			r.Products = append(r.Products, models.ProductLine{ProductTypeID: p.ProductTypeID, Quantity: p.Quantity})
		}
	}
	for _, in := range interests {
		if r, ok := byID[in.RequestID]; ok {
			r.InterestedSupplierIDs = append(r.InterestedSupplierIDs, in.SupplierID)
		}
	}
	return requests, nil
}

func (s *Storage) GetRequest(ctx context.Context, id int) (*models.Request, error) {
	r := &models.Request{}
	query := `SELECT id, customer_id, created_at FROM requests WHERE id=$1`
	err := s.db.GetContext(ctx, r, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	r.Products = []models.ProductLine{}
	query = `SELECT product_type_id, quantity FROM request_products WHERE request_id=$1 ORDER BY position ASC`
	if err := s.db.SelectContext(ctx, &r.Products, query, id); err != nil {
		return nil, err
	}

	r.InterestedSupplierIDs = []int{}
	query = `SELECT supplier_id FROM request_interests WHERE request_id=$1 ORDER BY supplier_id ASC`
	if err := s.db.SelectContext(ctx, &r.InterestedSupplierIDs, query, id); err != nil {
		return nil, err
	}
	return r, nil
}

// CreateRequest appends to the ledger with id = max(existing)+1 and an empty
// interest set. Product lines keep their submitted order.
func (s *Storage) CreateRequest(ctx context.Context, customerID int, products []models.ProductLine) (*models.Request, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `LOCK TABLE requests IN EXCLUSIVE MODE`); err != nil {
		return nil, err
	}

	r := &models.Request{CustomerID: customerID}
	query := `
        INSERT INTO requests (id, customer_id)
        SELECT COALESCE(MAX(id), 0) + 1, $1 FROM requests
        RETURNING id, created_at`
	if err := tx.QueryRowContext(ctx, query, customerID).Scan(&r.ID, &r.CreatedAt); err != nil {
		return nil, err
	}

	for i, p := range products {
		query = `INSERT INTO request_products (request_id, position, product_type_id, quantity) VALUES ($1, $2, $3, $4)`
		if _, err := tx.ExecContext(ctx, query, r.ID, i, p.ProductTypeID, p.Quantity); err != nil {
			return nil, fmt.Errorf("insert product line %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	r.Products = append([]models.ProductLine{}, products...)
	r.InterestedSupplierIDs = []int{}
	return r, nil
}

// SetInterest moves the (request, supplier) pair between NOT_INTERESTED and
// INTERESTED. Both directions are idempotent single statements, so concurrent
// toggles by different suppliers cannot lose each other's updates.
func (s *Storage) SetInterest(ctx context.Context, requestID, supplierID int, interested bool) (*models.Request, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM requests WHERE id=$1)`
	if err := s.db.GetContext(ctx, &exists, query, requestID); err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	if interested {
		query = `INSERT INTO request_interests (request_id, supplier_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	} else {
		query = `DELETE FROM request_interests WHERE request_id=$1 AND supplier_id=$2`
	}
	if _, err := s.db.ExecContext(ctx, query, requestID, supplierID); err != nil {
		return nil, err
	}
	return s.GetRequest(ctx, requestID)
}

// Sessions

func (s *Storage) CreateSession(ctx context.Context, sess *models.Session) error {
	query := `INSERT INTO sessions (token, user_id, expires_at) VALUES ($1, $2, $3)`
	_, err := s.db.ExecContext(ctx, query, sess.Token, sess.UserID, sess.ExpiresAt)
	return err
}

func (s *Storage) GetSessionUser(ctx context.Context, token string) (*models.User, error) {
	u := &models.User{}
	query := `
        SELECT u.id, u.username, u.password_hash, u.role, u.created_at
        FROM sessions s
        JOIN users u ON u.id = s.user_id
        WHERE s.token = $1 AND s.expires_at > $2`
	err := s.db.GetContext(ctx, u, query, token, time.Now())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

func (s *Storage) DeleteSession(ctx context.Context, token string) error {
	query := `DELETE FROM sessions WHERE token=$1`
	_, err := s.db.ExecContext(ctx, query, token)
	return err
}

// DeleteExpiredSessions drops sessions past their expiry, returning the count.
func (s *Storage) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, time.Now())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
