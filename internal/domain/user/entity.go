package user

import "time"

type Role string

const (
	RoleEmployee Role = "Employee"
	RoleHR       Role = "HR"
	RoleAdmin    Role = "Admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleEmployee, RoleHR, RoleAdmin:
		return true
	}
	return false
}

// CanApprove reports whether the role may act as an approver for
// leave, payroll and attendance overrides.
func (r Role) CanApprove() bool {
	return r == RoleHR || r == RoleAdmin
}

// User entity. One row per employee account.
type User struct {
	ID           string
	EmployeeCode string
	Email        string
	PasswordHash string
	Role         Role
	FirstName    string
	LastName     string
	Department   *string
	Designation  *string
	Phone        *string
	JoiningDate  *time.Time
	BaseSalary   *float64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
