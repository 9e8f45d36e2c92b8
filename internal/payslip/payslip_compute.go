package payslip

// computeDerived recalculates every derived figure from the five caller
// inputs. The order is fixed: gross income first, then the deduction total,
// then net pay. Net pay is the plain difference and is not clamped at zero.
func computeDerived(baseSalary, totalAllowances, otherDeductions, incomeTax, healthInsurance int64) (grossIncome, totalDeductions, netPay int64) {
	grossIncome = baseSalary + totalAllowances
	totalDeductions = otherDeductions + incomeTax + healthInsurance
	netPay = grossIncome - totalDeductions
	return grossIncome, totalDeductions, netPay
}

// applyDerived writes the recomputed figures back onto the record.
func applyDerived(slip *Payslip) {
	gross, _, net := computeDerived(
		slip.BaseSalary,
		slip.TotalAllowances,
		slip.OtherDeductions,
		slip.IncomeTax,
		slip.HealthInsurance,
	)
	slip.GrossIncome = gross
	slip.NetPay = net
}
