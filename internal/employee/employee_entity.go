package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EmploymentPermanent = "Permanent"
	EmploymentContract  = "Contract"
	EmploymentDaily     = "Daily"
)

// Employee is the directory record payslips reference. Email, national id and
// tax id are globally unique; the nullable ones only when present (Postgres
// unique indexes ignore NULLs).
type Employee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	DepartmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	PositionID   uuid.UUID `gorm:"type:uuid;not null;index"`

	FullName      string     `gorm:"size:255;not null"`
	Email         string     `gorm:"size:255;not null;uniqueIndex:uq_employee_email"`
	NationalID    *string    `gorm:"size:16;uniqueIndex:uq_employee_national_id"`
	TaxID         *string    `gorm:"size:20;uniqueIndex:uq_employee_tax_id"`
	TaxStatusCode *string    `gorm:"size:10"`
	JoinDate      *time.Time `gorm:"type:date"`

	// Smallest currency unit (whole rupiah), never floats.
	BaseSalary int64 `gorm:"type:bigint;not null;default:0"`

	BankAccountNumber *string `gorm:"size:50"`
	BankName          *string `gorm:"size:100"`
	EmploymentStatus  *string `gorm:"type:varchar(20)"`
	IsActive          bool    `gorm:"not null;default:true"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func ValidEmploymentStatus(s string) bool {
	switch s {
	case EmploymentPermanent, EmploymentContract, EmploymentDaily:
		return true
	default:
		return false
	}
}
