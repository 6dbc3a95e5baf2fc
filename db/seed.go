package db

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"packaging/models"
)

type seedUser struct {
	username string
	password string
	role     string
}

var demoUsers = []seedUser{
	{"admin", "admin123", models.RoleAdmin},
	{"customer1", "customer123", models.RoleCustomer},
	{"supplier1", "supplier123", models.RoleSupplier},
	{"supplier2", "supplier123", models.RoleSupplier},
}

// SeedDemoUsers creates the demo directory if the users are missing.
// Safe to call on every startup.
func (s *Storage) SeedDemoUsers(ctx context.Context) error {
	for _, su := range demoUsers {
		_, err := s.GetUserByUsername(ctx, su.username)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("seed lookup %q: %w", su.username, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed hash %q: %w", su.username, err)
		}
		u := &models.User{
			Username:     su.username,
			PasswordHash: string(hash),
			Role:         su.role,
		}
		if err := s.CreateUser(ctx, u); err != nil {
			return fmt.Errorf("seed create %q: %w", su.username, err)
		}
	}
	return nil
}
