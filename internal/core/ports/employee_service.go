package ports

import (
	"context"
	"io"
	"time"

	"github.com/workforcehq/employee-api/internal/core/domain"
)

// FileUpload carries an incoming profile picture. Filename is only used to
// preserve the extension; the store generates its own collision-resistant name.
type FileUpload struct {
	Filename string
	Content  io.Reader
}

// CreateEmployeeInput carries all data needed to create an employee record.
// Every field except Picture is mandatory.
type CreateEmployeeInput struct {
	EmployeeID    string
	FirstName     string
	LastName      string
	Email         string
	Position      string
	Salary        float64
	DateOfJoining time.Time
	Department    string
	Picture       *FileUpload
}

// UpdateEmployeeInput models a partial update. A nil field was absent from
// the request and leaves the stored value untouched; a non-nil field
// overwrites it. Absence and empty string are deliberately distinct.
type UpdateEmployeeInput struct {
	EmployeeID    *string
	FirstName     *string
	LastName      *string
	Email         *string
	Position      *string
	Salary        *float64
	DateOfJoining *time.Time
	Department    *string
	Picture       *FileUpload
}

// EmployeeService defines use-case operations over employee records,
// including the attached-file lifecycle.
type EmployeeService interface {
	Create(ctx context.Context, input CreateEmployeeInput) (*domain.Employee, error)
	Get(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]*domain.Employee, error)
	Update(ctx context.Context, id string, input UpdateEmployeeInput) (*domain.Employee, error)
	Delete(ctx context.Context, id string) error
	// ExportXLSX writes the filtered roster as an xlsx workbook to w.
	ExportXLSX(ctx context.Context, filter EmployeeFilter, w io.Writer) error
}

// FileStore abstracts where uploaded profile pictures live.
type FileStore interface {
	// Save stores content under a generated name derived from originalName's
	// extension and returns the relative path recorded on the employee.
	Save(ctx context.Context, originalName string, content io.Reader) (string, error)
	// Remove deletes a previously stored file. Removing a path that no longer
	// exists is not an error; any other failure is.
	Remove(ctx context.Context, path string) error
}
