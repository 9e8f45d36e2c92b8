package payrollrun

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PayrollRun is one named payroll cycle. Period is a free-text label
// ("July 2025"); duplicate periods are allowed so a mistaken run can be redone
// under the same label.
type PayrollRun struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Period        string    `gorm:"size:100;not null"`
	ExecutionDate time.Time `gorm:"type:date;not null"`
	Status        string    `gorm:"type:varchar(20);not null;default:'Draft'"`
	ExecutedBy    uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
