package document

import "time"

type DocumentType string

const (
	TypeIDProof      DocumentType = "id_proof"
	TypeAddressProof DocumentType = "address_proof"
	TypeEducation    DocumentType = "education"
	TypeExperience   DocumentType = "experience"
	TypeMedical      DocumentType = "medical"
	TypeContract     DocumentType = "contract"
	TypeOther        DocumentType = "other"
)

func (t DocumentType) IsValid() bool {
	switch t {
	case TypeIDProof, TypeAddressProof, TypeEducation, TypeExperience,
		TypeMedical, TypeContract, TypeOther:
		return true
	}
	return false
}

// MaxFileSize caps uploads at 10 MiB.
const MaxFileSize = 10 << 20

// Document is file metadata; the bytes live in the configured storage
// backend under StorageKey.
type Document struct {
	ID          string
	EmployeeID  string
	Type        DocumentType
	Title       string
	FileName    string
	ContentType string
	SizeBytes   int64
	StorageKey  string
	UploadedBy  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
