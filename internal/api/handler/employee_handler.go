package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/workforcehq/employee-api/internal/core/ports"
)

const (
	pictureField = "profilePicture"
	xlsxMIME     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	missingFieldsMessage = "All fields (employeeId, firstName, lastName, email, position, salary, date_of_joining, department) are required"
)

// EmployeeHandler handles HTTP requests for employee records.
type EmployeeHandler struct {
	service ports.EmployeeService
}

func NewEmployeeHandler(service ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// Create handles POST /api/v1/emp/employees.
//
// @Summary      Create an employee
// @Tags         employees
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        employeeId       formData  string  true   "Business employee identifier"
// @Param        firstName        formData  string  true   "First name"
// @Param        lastName         formData  string  true   "Last name"
// @Param        email            formData  string  true   "Email"
// @Param        position         formData  string  true   "Position"
// @Param        salary           formData  number  true   "Salary"
// @Param        date_of_joining  formData  string  true   "Date of joining (YYYY-MM-DD)"
// @Param        department       formData  string  true   "Department"
// @Param        profilePicture   formData  file    false  "Profile picture"
// @Success      201  {object}  createEmployeeResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /emp/employees [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	if _, err := ctxUsername(c); err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Multipart form data is required")
	}

	employeeID := formValue(form, "employeeId")
	firstName := formValue(form, "firstName")
	lastName := formValue(form, "lastName")
	email := formValue(form, "email")
	position := formValue(form, "position")
	salaryStr := formValue(form, "salary")
	dateStr := formValue(form, "date_of_joining")
	department := formValue(form, "department")

	if employeeID == "" || firstName == "" || lastName == "" || email == "" ||
		position == "" || salaryStr == "" || dateStr == "" || department == "" {
		return echo.NewHTTPError(http.StatusBadRequest, missingFieldsMessage)
	}

	salary, err := strconv.ParseFloat(salaryStr, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "salary must be a number")
	}
	dateOfJoining, err := parseJoinDate(dateStr)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date_of_joining must be a valid date (YYYY-MM-DD)")
	}

	input := ports.CreateEmployeeInput{
		EmployeeID:    employeeID,
		FirstName:     firstName,
		LastName:      lastName,
		Email:         email,
		Position:      position,
		Salary:        salary,
		DateOfJoining: dateOfJoining,
		Department:    department,
	}

	picture, closePicture, err := openUpload(form)
	if err != nil {
		return err
	}
	if picture != nil {
		defer closePicture()
		input.Picture = picture
	}

	emp, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createEmployeeResponse{
		Message:  "Employee created successfully",
		Employee: toEmployeeView(c, emp),
	})
}

// List handles GET /api/v1/emp/employees.
//
// @Summary      List employees
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        department  query  string  false  "Filter by department (exact match)"
// @Param        position    query  string  false  "Filter by position (exact match)"
// @Success      200  {array}  employeeView
// @Failure      401  {object}  map[string]string
// @Router       /emp/employees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	return h.listEmployees(c)
}

// Search handles GET /api/v1/emp/employees/search. Identical contract to
// List; both routes resolve to the same service operation.
//
// @Summary      Search employees
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        department  query  string  false  "Filter by department (exact match)"
// @Param        position    query  string  false  "Filter by position (exact match)"
// @Success      200  {array}  employeeView
// @Failure      401  {object}  map[string]string
// @Router       /emp/employees/search [get]
func (h *EmployeeHandler) Search(c echo.Context) error {
	return h.listEmployees(c)
}

func (h *EmployeeHandler) listEmployees(c echo.Context) error {
	filter := ports.EmployeeFilter{
		Department: c.QueryParam("department"),
		Position:   c.QueryParam("position"),
	}

	employees, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toEmployeeViews(c, employees))
}

// Get handles GET /api/v1/emp/employees/:id.
//
// @Summary      Get an employee by id
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Record id"
// @Success      200  {object}  employeeView
// @Failure      404  {object}  map[string]string
// @Router       /emp/employees/{id} [get]
func (h *EmployeeHandler) Get(c echo.Context) error {
	emp, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEmployeeView(c, emp))
}

// Update handles PUT /api/v1/emp/employees/:id. Only fields present in the
// multipart form are applied; an absent field never clears a stored value.
//
// @Summary      Update an employee
// @Tags         employees
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id               path      string  true   "Record id"
// @Param        employeeId       formData  string  false  "Business employee identifier"
// @Param        firstName        formData  string  false  "First name"
// @Param        lastName         formData  string  false  "Last name"
// @Param        email            formData  string  false  "Email"
// @Param        position         formData  string  false  "Position"
// @Param        salary           formData  number  false  "Salary"
// @Param        date_of_joining  formData  string  false  "Date of joining (YYYY-MM-DD)"
// @Param        department       formData  string  false  "Department"
// @Param        profilePicture   formData  file    false  "Replacement profile picture"
// @Success      200  {object}  updateEmployeeResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /emp/employees/{id} [put]
func (h *EmployeeHandler) Update(c echo.Context) error {
	if _, err := ctxUsername(c); err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Multipart form data is required")
	}

	input := ports.UpdateEmployeeInput{
		EmployeeID: formPresent(form, "employeeId"),
		FirstName:  formPresent(form, "firstName"),
		LastName:   formPresent(form, "lastName"),
		Email:      formPresent(form, "email"),
		Position:   formPresent(form, "position"),
		Department: formPresent(form, "department"),
	}

	if salaryStr := formPresent(form, "salary"); salaryStr != nil {
		salary, err := strconv.ParseFloat(*salaryStr, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "salary must be a number")
		}
		input.Salary = &salary
	}
	if dateStr := formPresent(form, "date_of_joining"); dateStr != nil {
		date, err := parseJoinDate(*dateStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date_of_joining must be a valid date (YYYY-MM-DD)")
		}
		input.DateOfJoining = &date
	}

	picture, closePicture, err := openUpload(form)
	if err != nil {
		return err
	}
	if picture != nil {
		defer closePicture()
		input.Picture = picture
	}

	emp, err := h.service.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updateEmployeeResponse{
		Message:  "Employee updated successfully",
		Employee: toEmployeeView(c, emp),
	})
}

// Delete handles DELETE /api/v1/emp/employees/:id.
//
// @Summary      Delete an employee
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Record id"
// @Success      200  {object}  deleteEmployeeResponse
// @Failure      404  {object}  map[string]string
// @Router       /emp/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c echo.Context) error {
	if _, err := ctxUsername(c); err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deleteEmployeeResponse{
		Message: "Employee deleted successfully",
	})
}

// Export handles GET /api/v1/emp/employees/export, streaming the filtered
// roster as an xlsx attachment. The workbook is buffered first so a late
// failure still produces a proper error response.
//
// @Summary      Export employees as XLSX
// @Tags         employees
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        department  query  string  false  "Filter by department (exact match)"
// @Param        position    query  string  false  "Filter by position (exact match)"
// @Success      200  {file}  file
// @Failure      401  {object}  map[string]string
// @Router       /emp/employees/export [get]
func (h *EmployeeHandler) Export(c echo.Context) error {
	filter := ports.EmployeeFilter{
		Department: c.QueryParam("department"),
		Position:   c.QueryParam("position"),
	}

	var buf bytes.Buffer
	if err := h.service.ExportXLSX(c.Request().Context(), filter, &buf); err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="employees.xlsx"`)
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}

// --- multipart helpers ---

// formValue returns the first value for name, or "" when absent.
func formValue(form *multipart.Form, name string) string {
	if vs, ok := form.Value[name]; ok && len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// formPresent distinguishes an absent field (nil) from a present one,
// including a present-but-empty value.
func formPresent(form *multipart.Form, name string) *string {
	if vs, ok := form.Value[name]; ok && len(vs) > 0 {
		v := vs[0]
		return &v
	}
	return nil
}

// openUpload opens the optional profile picture part. The returned closer is
// non-nil whenever the upload is.
func openUpload(form *multipart.Form) (*ports.FileUpload, func(), error) {
	fhs, ok := form.File[pictureField]
	if !ok || len(fhs) == 0 {
		return nil, nil, nil
	}

	src, err := fhs[0].Open()
	if err != nil {
		return nil, nil, err
	}
	return &ports.FileUpload{Filename: fhs[0].Filename, Content: src}, func() { _ = src.Close() }, nil
}

// parseJoinDate accepts a plain date or a full RFC 3339 timestamp.
func parseJoinDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
