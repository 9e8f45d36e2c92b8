package payslip

import (
	"time"

	"github.com/google/uuid"
)

// Payslip is the computed pay record for one employee in one payroll run.
// All monetary fields are int64 in the smallest currency unit (whole rupiah).
// GrossIncome and NetPay are derived server-side and never trusted from
// callers. The (payroll_run_id, employee_id) pair is unique: one payslip per
// employee per run.
type Payslip struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	PayrollRunID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_payslip_run_employee"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payslip_run_employee"`

	Employee *SlipEmployee `gorm:"foreignKey:EmployeeID;references:ID"`

	BaseSalary      int64 `gorm:"type:bigint;not null;default:0"`
	TotalAllowances int64 `gorm:"type:bigint;not null;default:0"`
	OtherDeductions int64 `gorm:"type:bigint;not null;default:0"`
	GrossIncome     int64 `gorm:"type:bigint;not null;default:0"`
	IncomeTax       int64 `gorm:"type:bigint;not null;default:0"`
	HealthInsurance int64 `gorm:"type:bigint;not null;default:0"`
	// NetPay may go negative when deductions exceed gross income; the engine
	// stores the arithmetic result as-is.
	NetPay int64 `gorm:"type:bigint;not null;default:0"`

	// Serialized JSON payload, re-materialized before responses.
	Detail *string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// SlipEmployee is a read-side projection of the employees table, just enough
// for payslip responses and report formatting.
type SlipEmployee struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName          string    `gorm:"column:full_name"`
	Email             string    `gorm:"column:email"`
	PositionID        uuid.UUID `gorm:"column:position_id"`
	BankAccountNumber *string   `gorm:"column:bank_account_number"`
	BankName          *string   `gorm:"column:bank_name"`

	Position *SlipPosition `gorm:"foreignKey:PositionID;references:ID"`
}

func (SlipEmployee) TableName() string {
	return "employees"
}

type SlipPosition struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (SlipPosition) TableName() string {
	return "positions"
}
