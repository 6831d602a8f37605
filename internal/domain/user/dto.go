package user

import (
	"github.com/peoplehq/hrms-backend-go/internal/pkg/validator"
)

type RegisterRequest struct {
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	EmployeeCode string  `json:"employee_code"`
	Role         string  `json:"role,omitempty"`
	Department   *string `json:"department,omitempty"`
	Designation  *string `json:"designation,omitempty"`
	JoiningDate  *string `json:"joining_date,omitempty"`
	BaseSalary   *float64 `json:"base_salary,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name is required",
		})
	}

	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "last_name is required",
		})
	}

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code must match EMP followed by 3-6 digits",
		})
	}

	if r.Role != "" && !Role(r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of Employee, HR, Admin",
		})
	}

	if r.JoiningDate != nil {
		if _, ok := validator.IsValidDate(*r.JoiningDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "joining_date",
				Message: "joining_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if r.BaseSalary != nil && *r.BaseSalary < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base_salary must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateProfileRequest edits mutable profile fields. Absent fields keep
// their current values.
type UpdateProfileRequest struct {
	ID          string   `json:"id"`
	FirstName   *string  `json:"first_name,omitempty"`
	LastName    *string  `json:"last_name,omitempty"`
	Department  *string  `json:"department,omitempty"`
	Designation *string  `json:"designation,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	BaseSalary  *float64 `json:"base_salary,omitempty"`
	Role        *string  `json:"role,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.FirstName != nil && validator.IsEmpty(*r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name must not be empty",
		})
	}

	if r.LastName != nil && validator.IsEmpty(*r.LastName) {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "last_name must not be empty",
		})
	}

	if r.BaseSalary != nil && *r.BaseSalary < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base_salary must not be negative",
		})
	}

	if r.Role != nil && !Role(*r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of Employee, HR, Admin",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UserResponse is the public projection of a user; it never carries the
// password hash.
type UserResponse struct {
	ID           string  `json:"id"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email"`
	EmployeeCode string  `json:"employee_code"`
	Role         Role    `json:"role"`
	Department   *string `json:"department,omitempty"`
	Designation  *string `json:"designation,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	JoiningDate  *string `json:"joining_date,omitempty"`
	IsActive     bool    `json:"is_active"`
}

func ToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		EmployeeCode: u.EmployeeCode,
		Role:         u.Role,
		Department:   u.Department,
		Designation:  u.Designation,
		Phone:        u.Phone,
		IsActive:     u.IsActive,
	}
	if u.JoiningDate != nil {
		d := u.JoiningDate.Format("2006-01-02")
		resp.JoiningDate = &d
	}
	return resp
}
