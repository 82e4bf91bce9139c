package ports

import (
	"context"

	"github.com/workforcehq/employee-api/internal/core/domain"
)

// EmployeeFilter carries the optional equality constraints for listing
// employees. Non-empty fields are AND-combined.
type EmployeeFilter struct {
	Department string
	Position   string
}

// EmployeeRepository defines persistence operations for employee records.
type EmployeeRepository interface {
	Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	// FindByID returns domain.ErrEmployeeNotFound when the id is unknown or
	// not a valid record id.
	FindByID(ctx context.Context, id string) (*domain.Employee, error)
	// List returns all records matching filter, newest-created first.
	List(ctx context.Context, filter EmployeeFilter) ([]*domain.Employee, error)
	Update(ctx context.Context, e *domain.Employee) error
	Delete(ctx context.Context, id string) error
}
