package events

import "time"

const PayslipCreatedTopic = "hr.payslip.created.v1"

type PayslipCreatedEvent struct {
	EventType    string    `json:"event_type"`
	PayslipID    string    `json:"payslip_id"`
	PayrollRunID string    `json:"payroll_run_id"`
	EmployeeID   string    `json:"employee_id"`
	NetPay       int64     `json:"net_pay"`
	OccurredAt   time.Time `json:"occurred_at"`
}
