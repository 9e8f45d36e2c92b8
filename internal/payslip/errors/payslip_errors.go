package paysliperrors

import (
	"net/http"

	"github.com/AndraZero121/lomba-bank-jateng/internal/shared/apperror"
)

var (
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"payslip not found",
		http.StatusNotFound,
	)

	ErrPayrollRunNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll run not found",
		http.StatusNotFound,
	)

	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)

	ErrPayslipAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"payslip for this employee already exists in the payroll run",
		http.StatusConflict,
	)

	ErrInvalidPayslipID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payslip id",
		http.StatusBadRequest,
	)

	ErrInvalidPayrollRunID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll run id",
		http.StatusBadRequest,
	)

	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)

	ErrInvalidDetailPayload = apperror.New(
		apperror.CodeInvalidInput,
		"detail must be a valid JSON object or array",
		http.StatusBadRequest,
	)
)
