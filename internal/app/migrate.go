package app

import (
	"github.com/AndraZero121/lomba-bank-jateng/internal/department"
	"github.com/AndraZero121/lomba-bank-jateng/internal/employee"
	"github.com/AndraZero121/lomba-bank-jateng/internal/payrollrun"
	"github.com/AndraZero121/lomba-bank-jateng/internal/payslip"
	"github.com/AndraZero121/lomba-bank-jateng/internal/position"

	"gorm.io/gorm"
)

// outboxTableDDL matches the columns the outbox repository reads and writes.
// The table is kept out of AutoMigrate because the producer worker also runs
// migrations-free against it with raw SQL.
const outboxTableDDL = `
CREATE TABLE IF NOT EXISTS outbox_events (
	id             UUID PRIMARY KEY,
	request_id     TEXT,
	aggregate_type TEXT NOT NULL,
	aggregate_id   UUID NOT NULL,
	event_type     TEXT NOT NULL,
	topic          TEXT NOT NULL,
	payload        JSONB NOT NULL,
	status         TEXT NOT NULL DEFAULT 'pending',
	retry_count    INT NOT NULL DEFAULT 0,
	error_message  TEXT,
	next_retry_at  TIMESTAMPTZ,
	processed_at   TIMESTAMPTZ,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const outboxStatusIndexDDL = `
CREATE INDEX IF NOT EXISTS idx_outbox_events_status_created
ON outbox_events (status, created_at)`

func runMigrations(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(
		&department.Department{},
		&position.Position{},
		&employee.Employee{},
		&payrollrun.PayrollRun{},
		&payslip.Payslip{},
	); err != nil {
		return err
	}

	if err := gormDB.Exec(outboxTableDDL).Error; err != nil {
		return err
	}
	return gormDB.Exec(outboxStatusIndexDDL).Error
}
