package payslip

import (
	"encoding/json"
	"time"
)

// CreatePayslipRequest carries the caller-supplied inputs for a new payslip.
// BaseSalary and TotalAllowances use pointers so an explicit zero passes the
// required check. Derived figures (gross, total deductions, net) are never
// accepted from the caller.
type CreatePayslipRequest struct {
	PayrollRunID    string          `json:"payroll_run_id" binding:"required,uuid"`
	EmployeeID      string          `json:"employee_id" binding:"required,uuid"`
	BaseSalary      *int64          `json:"base_salary" binding:"required,min=0"`
	TotalAllowances *int64          `json:"total_allowances" binding:"required,min=0"`
	OtherDeductions *int64          `json:"other_deductions" binding:"omitempty,min=0"`
	IncomeTax       *int64          `json:"income_tax" binding:"omitempty,min=0"`
	HealthInsurance *int64          `json:"health_insurance" binding:"omitempty,min=0"`
	Detail          json.RawMessage `json:"detail" binding:"omitempty"`
}

// UpdatePayslipRequest supports partial updates: nil fields keep their stored
// values, present fields replace them, and every derived figure is recomputed
// from the merged inputs.
type UpdatePayslipRequest struct {
	PayrollRunID    *string         `json:"payroll_run_id" binding:"omitempty,uuid"`
	EmployeeID      *string         `json:"employee_id" binding:"omitempty,uuid"`
	BaseSalary      *int64          `json:"base_salary" binding:"omitempty,min=0"`
	TotalAllowances *int64          `json:"total_allowances" binding:"omitempty,min=0"`
	OtherDeductions *int64          `json:"other_deductions" binding:"omitempty,min=0"`
	IncomeTax       *int64          `json:"income_tax" binding:"omitempty,min=0"`
	HealthInsurance *int64          `json:"health_insurance" binding:"omitempty,min=0"`
	Detail          json.RawMessage `json:"detail" binding:"omitempty"`
}

type PayslipQueryFilter struct {
	PayrollRunID *string `form:"payroll_run_id" binding:"omitempty,uuid"`
	EmployeeID   *string `form:"employee_id" binding:"omitempty,uuid"`
	Page         int     `form:"page" binding:"omitempty,min=1"`
	Limit        int     `form:"limit" binding:"omitempty,min=1,max=100"`
}

type PayslipEmployeeResponse struct {
	ID                string  `json:"id"`
	FullName          string  `json:"full_name"`
	Email             string  `json:"email"`
	Position          string  `json:"position,omitempty"`
	BankAccountNumber *string `json:"bank_account_number,omitempty"`
	BankName          *string `json:"bank_name,omitempty"`
}

type PayslipResponse struct {
	ID              string                   `json:"id"`
	PayrollRunID    string                   `json:"payroll_run_id"`
	EmployeeID      string                   `json:"employee_id"`
	Employee        *PayslipEmployeeResponse `json:"employee,omitempty"`
	BaseSalary      int64                    `json:"base_salary"`
	TotalAllowances int64                    `json:"total_allowances"`
	OtherDeductions int64                    `json:"other_deductions"`
	GrossIncome     int64                    `json:"gross_income"`
	IncomeTax       int64                    `json:"income_tax"`
	HealthInsurance int64                    `json:"health_insurance"`
	TotalDeductions int64                    `json:"total_deductions"`
	NetPay          int64                    `json:"net_pay"`
	Detail          any                      `json:"detail"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

func toPayslipResponse(p *Payslip) PayslipResponse {
	resp := PayslipResponse{
		ID:              p.ID.String(),
		PayrollRunID:    p.PayrollRunID.String(),
		EmployeeID:      p.EmployeeID.String(),
		BaseSalary:      p.BaseSalary,
		TotalAllowances: p.TotalAllowances,
		OtherDeductions: p.OtherDeductions,
		GrossIncome:     p.GrossIncome,
		IncomeTax:       p.IncomeTax,
		HealthInsurance: p.HealthInsurance,
		TotalDeductions: p.OtherDeductions + p.IncomeTax + p.HealthInsurance,
		NetPay:          p.NetPay,
		Detail:          materializeDetail(p.Detail),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.Employee != nil {
		emp := &PayslipEmployeeResponse{
			ID:                p.Employee.ID.String(),
			FullName:          p.Employee.FullName,
			Email:             p.Employee.Email,
			BankAccountNumber: p.Employee.BankAccountNumber,
			BankName:          p.Employee.BankName,
		}
		if p.Employee.Position != nil {
			emp.Position = p.Employee.Position.Name
		}
		resp.Employee = emp
	}
	return resp
}

// materializeDetail decodes the stored detail text back into structured JSON.
// A payload that no longer parses is returned as the raw string rather than
// failing the whole read.
func materializeDetail(stored *string) any {
	if stored == nil || *stored == "" {
		return nil
	}
	var out any
	if err := json.Unmarshal([]byte(*stored), &out); err != nil {
		return *stored
	}
	return out
}
