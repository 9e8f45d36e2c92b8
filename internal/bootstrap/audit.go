package bootstrap

import "context"

// AuditLog is one audited action: who did what, and how it ended.
type AuditLog struct {
	Action  string
	Actor   string
	Message string
	Meta    map[string]any
}

// AuditLogger records domain-significant actions (payslip writes, payroll run
// status changes, server lifecycle). Implementations must not fail the
// business operation.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
