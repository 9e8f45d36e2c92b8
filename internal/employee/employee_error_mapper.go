package employee

import (
	"errors"
	"strings"

	employeeerrors "github.com/AndraZero121/lomba-bank-jateng/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_employee_email":
				return employeeerrors.ErrEmailAlreadyExists
			case "uq_employee_national_id":
				return employeeerrors.ErrNationalIDAlreadyExists
			case "uq_employee_tax_id":
				return employeeerrors.ErrTaxIDAlreadyExists
			}
		}
	}

	// Drivers that do not surface *pgconn.PgError still carry the constraint
	// name in the message.
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		switch {
		case strings.Contains(errMsg, "uq_employee_email"):
			return employeeerrors.ErrEmailAlreadyExists
		case strings.Contains(errMsg, "uq_employee_national_id"):
			return employeeerrors.ErrNationalIDAlreadyExists
		case strings.Contains(errMsg, "uq_employee_tax_id"):
			return employeeerrors.ErrTaxIDAlreadyExists
		}
	}

	return err
}
