package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/workforcehq/employee-api/internal/metrics"
	"github.com/workforcehq/employee-api/internal/core/domain"
	"github.com/workforcehq/employee-api/internal/core/ports"
)

func nowUTC() time.Time { return time.Now().UTC() }

// EmployeeService implements CRUD and filtered search over employee records,
// including the lifecycle of the attached profile picture.
type EmployeeService struct {
	repo   ports.EmployeeRepository
	files  ports.FileStore
	logger zerolog.Logger
}

func NewEmployeeService(repo ports.EmployeeRepository, files ports.FileStore, logger zerolog.Logger) *EmployeeService {
	return &EmployeeService{repo: repo, files: files, logger: logger}
}

func (s *EmployeeService) Create(ctx context.Context, input ports.CreateEmployeeInput) (*domain.Employee, error) {
	if input.EmployeeID == "" || input.FirstName == "" || input.LastName == "" ||
		input.Email == "" || input.Position == "" || input.Department == "" ||
		input.DateOfJoining.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	now := nowUTC()
	emp := &domain.Employee{
		EmployeeID:    input.EmployeeID,
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Email:         input.Email,
		Position:      input.Position,
		Salary:        input.Salary,
		DateOfJoining: input.DateOfJoining,
		Department:    input.Department,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if input.Picture != nil {
		path, err := s.files.Save(ctx, input.Picture.Filename, input.Picture.Content)
		if err != nil {
			return nil, err
		}
		emp.ProfilePicture = path
		metrics.UploadsStoredTotal.Inc()
	}

	created, err := s.repo.Create(ctx, emp)
	if err != nil {
		s.logger.Error().Err(err).Str("employee_id", input.EmployeeID).Msg("failed to create employee")
		return nil, err
	}

	metrics.EmployeesCreatedTotal.WithLabelValues(created.Department).Inc()
	s.logger.Info().Str("id", created.ID).Str("employee_id", created.EmployeeID).Msg("employee created")
	return created, nil
}

func (s *EmployeeService) Get(ctx context.Context, id string) (*domain.Employee, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns all records matching filter, newest-created first. Both the
// list and search endpoints resolve here.
func (s *EmployeeService) List(ctx context.Context, filter ports.EmployeeFilter) ([]*domain.Employee, error) {
	return s.repo.List(ctx, filter)
}

// Update applies only the fields present in input. When a new picture is
// supplied, the previous stored file is removed before the new path is
// recorded; a missing old file is tolerated, any other removal error aborts
// the update.
func (s *EmployeeService) Update(ctx context.Context, id string, input ports.UpdateEmployeeInput) (*domain.Employee, error) {
	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.EmployeeID != nil {
		emp.EmployeeID = *input.EmployeeID
	}
	if input.FirstName != nil {
		emp.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		emp.LastName = *input.LastName
	}
	if input.Email != nil {
		emp.Email = *input.Email
	}
	if input.Position != nil {
		emp.Position = *input.Position
	}
	if input.Salary != nil {
		emp.Salary = *input.Salary
	}
	if input.DateOfJoining != nil {
		emp.DateOfJoining = *input.DateOfJoining
	}
	if input.Department != nil {
		emp.Department = *input.Department
	}

	if input.Picture != nil {
		path, err := s.files.Save(ctx, input.Picture.Filename, input.Picture.Content)
		if err != nil {
			return nil, err
		}
		if emp.ProfilePicture != "" {
			if err := s.files.Remove(ctx, emp.ProfilePicture); err != nil {
				return nil, err
			}
			metrics.UploadsRemovedTotal.Inc()
		}
		emp.ProfilePicture = path
		metrics.UploadsStoredTotal.Inc()
	}

	emp.UpdatedAt = nowUTC()
	if err := s.repo.Update(ctx, emp); err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("failed to update employee")
		return nil, err
	}

	s.logger.Info().Str("id", id).Msg("employee updated")
	return emp, nil
}

// Delete removes the record and its stored picture, if any.
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if emp.ProfilePicture != "" {
		if err := s.files.Remove(ctx, emp.ProfilePicture); err != nil {
			return err
		}
		metrics.UploadsRemovedTotal.Inc()
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("failed to delete employee")
		return err
	}

	s.logger.Info().Str("id", id).Msg("employee deleted")
	return nil
}
