package events

import "time"

const PayrollRunFinalizedTopic = "hr.payroll_run.finalized.v1"

type PayrollRunFinalizedEvent struct {
	EventType    string    `json:"event_type"`
	PayrollRunID string    `json:"payroll_run_id"`
	Period       string    `json:"period"`
	Status       string    `json:"status"`
	ExecutedBy   string    `json:"executed_by"`
	OccurredAt   time.Time `json:"occurred_at"`
}
