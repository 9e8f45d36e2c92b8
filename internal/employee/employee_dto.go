package employee

type CreateEmployeeRequest struct {
	FullName          string `json:"full_name" binding:"required"`
	Email             string `json:"email" binding:"required,email"`
	PositionID        string `json:"position_id" binding:"required,uuid"`
	NationalID        string `json:"national_id"`
	TaxID             string `json:"tax_id"`
	TaxStatusCode     string `json:"tax_status_code"`
	JoinDate          string `json:"join_date"`
	BaseSalary        int64  `json:"base_salary" binding:"min=0"`
	BankAccountNumber string `json:"bank_account_number"`
	BankName          string `json:"bank_name"`
	EmploymentStatus  string `json:"employment_status" binding:"omitempty,oneof=Permanent Contract Daily"`
}

type UpdateEmployeeRequest struct {
	FullName          string `json:"full_name" binding:"required"`
	Email             string `json:"email" binding:"required,email"`
	PositionID        string `json:"position_id" binding:"required,uuid"`
	NationalID        string `json:"national_id"`
	TaxID             string `json:"tax_id"`
	TaxStatusCode     string `json:"tax_status_code"`
	JoinDate          string `json:"join_date"`
	BaseSalary        int64  `json:"base_salary" binding:"min=0"`
	BankAccountNumber string `json:"bank_account_number"`
	BankName          string `json:"bank_name"`
	EmploymentStatus  string `json:"employment_status" binding:"omitempty,oneof=Permanent Contract Daily"`
	IsActive          *bool  `json:"is_active"`
}

type EmployeeResponse struct {
	ID                string  `json:"id"`
	DepartmentID      string  `json:"department_id"`
	PositionID        string  `json:"position_id"`
	FullName          string  `json:"full_name"`
	Email             string  `json:"email"`
	NationalID        *string `json:"national_id,omitempty"`
	TaxID             *string `json:"tax_id,omitempty"`
	TaxStatusCode     *string `json:"tax_status_code,omitempty"`
	JoinDate          *string `json:"join_date,omitempty"`
	BaseSalary        int64   `json:"base_salary"`
	BankAccountNumber *string `json:"bank_account_number,omitempty"`
	BankName          *string `json:"bank_name,omitempty"`
	EmploymentStatus  *string `json:"employment_status,omitempty"`
	IsActive          bool    `json:"is_active"`
}

// EmployeeOption is the lightweight shape used by client dropdowns when
// prefilling payslip forms. Served from cache.
type EmployeeOption struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	BaseSalary int64  `json:"base_salary"`
}
