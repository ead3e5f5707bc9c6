// Package session keeps the "logged in as" identifiers of a browser.
//
// The identifiers are the only credential retained after login: there is
// no token and no expiry. Anyone able to set the cookie can act as that
// company or employee.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/terra-clan/levelup-web/internal/models"
)

const (
	KeyCompanyID  = "empresaId"
	KeyEmployeeID = "usuarioId"
)

// Backend is a string key/value store scoped to one browser
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Store reads and writes the two session identifiers
type Store struct {
	backend Backend
}

// NewStore creates a store over a backend
func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// Backend returns the underlying key/value store
func (s *Store) Backend() Backend {
	return s.backend
}

// SetCompanyID records a company login
func (s *Store) SetCompanyID(ctx context.Context, id int64) error {
	return s.set(ctx, KeyCompanyID, id)
}

// CompanyID returns the stored company id, false when absent or unparseable
func (s *Store) CompanyID(ctx context.Context) (int64, bool) {
	return s.get(ctx, KeyCompanyID)
}

// RemoveCompanyID forgets the company login
func (s *Store) RemoveCompanyID(ctx context.Context) error {
	return s.remove(ctx, KeyCompanyID)
}

// SetEmployeeID records an employee login
func (s *Store) SetEmployeeID(ctx context.Context, id int64) error {
	return s.set(ctx, KeyEmployeeID, id)
}

// EmployeeID returns the stored employee id, false when absent or unparseable
func (s *Store) EmployeeID(ctx context.Context) (int64, bool) {
	return s.get(ctx, KeyEmployeeID)
}

// RemoveEmployeeID forgets the employee login
func (s *Store) RemoveEmployeeID(ctx context.Context) error {
	return s.remove(ctx, KeyEmployeeID)
}

// Clear forgets both identifiers
func (s *Store) Clear(ctx context.Context) error {
	if err := s.RemoveCompanyID(ctx); err != nil {
		return err
	}
	return s.RemoveEmployeeID(ctx)
}

// Role returns who the browser is logged in as. Both identifiers can be
// set at once; the company wins in that case.
func (s *Store) Role(ctx context.Context) models.Role {
	if _, ok := s.CompanyID(ctx); ok {
		return models.RoleCompany
	}
	if _, ok := s.EmployeeID(ctx); ok {
		return models.RoleEmployee
	}
	return models.RoleNone
}

func (s *Store) set(ctx context.Context, key string, id int64) error {
	slog.Debug("saving session id", "key", key, "value", id)
	if err := s.backend.Set(ctx, key, strconv.FormatInt(id, 10)); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func (s *Store) get(ctx context.Context, key string) (int64, bool) {
	raw, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		slog.Warn("failed to read session id", "key", key, "error", err)
		return 0, false
	}
	if !ok || raw == "" {
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func (s *Store) remove(ctx context.Context, key string) error {
	slog.Debug("removing session id", "key", key)
	if err := s.backend.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}
