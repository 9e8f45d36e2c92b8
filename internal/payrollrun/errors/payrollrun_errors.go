package payrollrunerrors

import (
	"net/http"

	"github.com/AndraZero121/lomba-bank-jateng/internal/shared/apperror"
)

var (
	ErrPayrollRunNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll run not found",
		http.StatusNotFound,
	)
	ErrInvalidPayrollRunID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll run id",
		http.StatusBadRequest,
	)
	ErrInvalidExecutorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid executor id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid execution_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll run status",
		http.StatusBadRequest,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid payroll run status transition",
		http.StatusBadRequest,
	)
	ErrRunHasPayslips = apperror.New(
		apperror.CodeConflict,
		"payroll run still has payslips",
		http.StatusConflict,
	)
)
