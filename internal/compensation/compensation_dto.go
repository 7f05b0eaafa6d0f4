package compensation

type CreatePlanRequest struct {
	EmployeeID        string `json:"employee_id" binding:"required"`
	Type              string `json:"type" binding:"required"`
	HourlyRateCents   int64  `json:"hourly_rate_cents"`
	AnnualSalaryCents int64  `json:"annual_salary_cents"`
	PayFrequency      string `json:"pay_frequency" binding:"required"`
	EffectiveDate     string `json:"effective_date" binding:"required"`
}

type PlanResponse struct {
	ID                string `json:"id"`
	EmployeeID        string `json:"employee_id"`
	Type              string `json:"type"`
	HourlyRateCents   int64  `json:"hourly_rate_cents"`
	AnnualSalaryCents int64  `json:"annual_salary_cents"`
	PayFrequency      string `json:"pay_frequency"`
	EffectiveDate     string `json:"effective_date"`
}
