package payslip

import (
	"errors"
	"strings"

	paysliperrors "github.com/AndraZero121/lomba-bank-jateng/internal/payslip/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return paysliperrors.ErrPayslipNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			if pgErr.ConstraintName == "uq_payslip_run_employee" {
				return paysliperrors.ErrPayslipAlreadyExists
			}
		case "23503":
			// Foreign key raced away between the existence check and the write.
			if strings.Contains(pgErr.ConstraintName, "employee") {
				return paysliperrors.ErrEmployeeNotFound
			}
			return paysliperrors.ErrPayrollRunNotFound
		}
	}

	// Drivers that do not surface *pgconn.PgError still carry the constraint
	// name in the message.
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") &&
		strings.Contains(errMsg, "uq_payslip_run_employee") {
		return paysliperrors.ErrPayslipAlreadyExists
	}

	return err
}
