package payroll

import "errors"

var (
	ErrPayrollNotFound     = errors.New("payroll record not found")
	ErrPayrollExists       = errors.New("payroll already generated for this month")
	ErrPayrollFrozen       = errors.New("payroll record can no longer be modified")
	ErrPayrollStateInvalid = errors.New("payroll record is not in a payable state")
	ErrNoBaseSalary        = errors.New("employee has no base salary configured")
	ErrAlreadyPaid         = errors.New("payroll is already marked as paid")
)
