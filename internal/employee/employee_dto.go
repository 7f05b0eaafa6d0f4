package employee

type CreateEmployeeRequest struct {
	FullName  string  `json:"full_name" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	ManagerID *string `json:"manager_id"`
}

type UpdateEmployeeRequest struct {
	FullName  string  `json:"full_name" binding:"required"`
	ManagerID *string `json:"manager_id"`
	Status    string  `json:"status" binding:"required,oneof=ACTIVE INACTIVE"`
}

type EmployeeResponse struct {
	ID        string  `json:"id"`
	FullName  string  `json:"full_name"`
	Email     string  `json:"email"`
	ManagerID *string `json:"manager_id,omitempty"`
	Status    string  `json:"status"`
}

type EmployeeOption struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}
