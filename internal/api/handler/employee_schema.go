package handler

// Response-only types owned by the transport layer. Field names follow the
// external JSON contract (`employeeId`, `date_of_joining`), not Go convention,
// and are intentionally decoupled from the domain entity.

// employeeView is the mapped view of a single record. ProfilePicture holds the
// raw stored relative path; ProfilePictureURL is derived per request from the
// caller's scheme and host. Both are null when no file is stored.
type employeeView struct {
	ID                string  `json:"id"`
	EmployeeID        string  `json:"employeeId"`
	FirstName         string  `json:"firstName"`
	LastName          string  `json:"lastName"`
	Email             string  `json:"email"`
	Position          string  `json:"position"`
	Salary            float64 `json:"salary"`
	DateOfJoining     string  `json:"date_of_joining"`
	Department        string  `json:"department"`
	ProfilePicture    *string `json:"profilePicture"`
	ProfilePictureURL *string `json:"profilePictureUrl"`
}

type createEmployeeResponse struct {
	Message  string       `json:"message"`
	Employee employeeView `json:"employee"`
}

type updateEmployeeResponse struct {
	Message  string       `json:"message"`
	Employee employeeView `json:"employee"`
}

type deleteEmployeeResponse struct {
	Message string `json:"message"`
}
