package service

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/workforcehq/employee-api/internal/core/ports"
)

const reportSheet = "Employees"

var reportHeaders = []string{
	"Employee ID", "First Name", "Last Name", "Email",
	"Position", "Department", "Salary", "Date of Joining",
}

// ExportXLSX writes the filtered roster as an xlsx workbook to w, one row per
// employee in the same newest-first order as the list endpoint.
func (s *EmployeeService) ExportXLSX(ctx context.Context, filter ports.EmployeeFilter, w io.Writer) error {
	employees, err := s.repo.List(ctx, filter)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, header := range reportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(reportSheet, cell, header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for row, emp := range employees {
		values := []interface{}{
			emp.EmployeeID,
			emp.FirstName,
			emp.LastName,
			emp.Email,
			emp.Position,
			emp.Department,
			emp.Salary,
			emp.DateOfJoining.Format("2006-01-02"),
		}
		for col, v := range values {
			cell := fmt.Sprintf("%c%d", 'A'+col, row+2)
			if err := f.SetCellValue(reportSheet, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", row+2, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
