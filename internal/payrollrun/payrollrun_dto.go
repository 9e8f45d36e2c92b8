package payrollrun

type CreatePayrollRunRequest struct {
	Period        string `json:"period" binding:"required"`
	ExecutionDate string `json:"execution_date" binding:"required"`
	Status        string `json:"status" binding:"omitempty,oneof=Draft Final Approve Failed"`
}

// UpdatePayrollRunRequest uses pointer fields: absent fields keep their stored
// value, a status change goes through the transition check.
type UpdatePayrollRunRequest struct {
	Period        *string `json:"period"`
	ExecutionDate *string `json:"execution_date"`
	Status        *string `json:"status" binding:"omitempty,oneof=Draft Final Approve Failed"`
}

type PayrollRunResponse struct {
	ID            string `json:"id"`
	Period        string `json:"period"`
	ExecutionDate string `json:"execution_date"`
	Status        string `json:"status"`
	ExecutedBy    string `json:"executed_by"`
}
