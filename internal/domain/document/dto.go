package document

import (
	"github.com/peoplehq/hrms-backend-go/internal/pkg/validator"
)

// UploadDocumentRequest carries the metadata half of a multipart
// upload; the file part is handled by the handler.
type UploadDocumentRequest struct {
	EmployeeID string `json:"employee_id"`
	Type       string `json:"type"`
	Title      string `json:"title"`
}

func (r *UploadDocumentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !DocumentType(r.Type).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be a known document type",
		})
	}

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DocumentFilter narrows list queries.
type DocumentFilter struct {
	EmployeeID *string
	Type       *string
	Page       int
	Limit      int
}
