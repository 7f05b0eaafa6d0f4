package benefits

type EnrollRequest struct {
	EmployeeID                string `json:"employee_id" binding:"required"`
	PlanName                  string `json:"plan_name" binding:"required"`
	EmployeeContributionCents int64  `json:"employee_contribution_cents" binding:"min=0"`
}

type EnrollmentResponse struct {
	ID                        string `json:"id"`
	EmployeeID                string `json:"employee_id"`
	PlanName                  string `json:"plan_name"`
	EmployeeContributionCents int64  `json:"employee_contribution_cents"`
	Active                    bool   `json:"active"`
}
