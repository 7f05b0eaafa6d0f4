package payroll

import (
	"math"
	"os"
	"strconv"
)

// DeductionRates are flat percentages applied to gross pay. Statutory rates
// change yearly, so they load from the environment with current defaults.
type DeductionRates struct {
	FederalPct        float64
	StatePct          float64
	SocialSecurityPct float64
	MedicarePct       float64
}

func DefaultDeductionRates() DeductionRates {
	return DeductionRates{
		FederalPct:        10.0,
		StatePct:          4.0,
		SocialSecurityPct: 6.2,
		MedicarePct:       1.45,
	}
}

func DeductionRatesFromEnv() DeductionRates {
	r := DefaultDeductionRates()
	if v, err := strconv.ParseFloat(os.Getenv("PAYROLL_FEDERAL_TAX_PCT"), 64); err == nil && v >= 0 {
		r.FederalPct = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("PAYROLL_STATE_TAX_PCT"), 64); err == nil && v >= 0 {
		r.StatePct = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("PAYROLL_SOCIAL_SECURITY_PCT"), 64); err == nil && v >= 0 {
		r.SocialSecurityPct = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("PAYROLL_MEDICARE_PCT"), 64); err == nil && v >= 0 {
		r.MedicarePct = v
	}
	return r
}

func pctOf(cents int64, pct float64) int64 {
	return int64(math.Round(float64(cents) * pct / 100))
}
