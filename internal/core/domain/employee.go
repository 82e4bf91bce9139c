package domain

import "time"

// Employee is the core record managed by the API.
//
// ID is the store-assigned identity; EmployeeID is the caller-supplied
// business identifier and is not required to be unique. ProfilePicture holds
// the relative path of the stored upload ("" when none); the file's lifetime
// is tied to the record.
type Employee struct {
	ID             string
	EmployeeID     string
	FirstName      string
	LastName       string
	Email          string
	Position       string
	Salary         float64
	DateOfJoining  time.Time
	Department     string
	ProfilePicture string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
