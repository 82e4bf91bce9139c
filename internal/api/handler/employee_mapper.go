package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/workforcehq/employee-api/internal/core/domain"
)

// toEmployeeView maps a domain record to its external shape. The absolute
// picture URL is derived from the current request's scheme and host rather
// than stored verbatim, so responses stay correct behind any hostname.
func toEmployeeView(c echo.Context, e *domain.Employee) employeeView {
	view := employeeView{
		ID:            e.ID,
		EmployeeID:    e.EmployeeID,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		Email:         e.Email,
		Position:      e.Position,
		Salary:        e.Salary,
		DateOfJoining: e.DateOfJoining.UTC().Format(time.RFC3339),
		Department:    e.Department,
	}

	if e.ProfilePicture != "" {
		path := e.ProfilePicture
		url := c.Scheme() + "://" + c.Request().Host + "/" + path
		view.ProfilePicture = &path
		view.ProfilePictureURL = &url
	}

	return view
}

func toEmployeeViews(c echo.Context, employees []*domain.Employee) []employeeView {
	views := make([]employeeView, 0, len(employees))
	for _, e := range employees {
		views = append(views, toEmployeeView(c, e))
	}
	return views
}
