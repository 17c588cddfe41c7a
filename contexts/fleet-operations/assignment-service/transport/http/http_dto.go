package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type AssignOperatorRequest struct {
	OperatorID string `json:"operator_id"`
	StartDate  string `json:"start_date"` // YYYY-MM-DD
	Notes      string `json:"notes,omitempty"`
}

type ReleaseOperatorRequest struct {
	EndDate string `json:"end_date"` // YYYY-MM-DD
	Notes   string `json:"notes,omitempty"`
}

type AssignmentDTO struct {
	AssignmentID string  `json:"id"`
	CarID        string  `json:"car_id"`
	OperatorID   string  `json:"operator_id"`
	StartDate    string  `json:"start_date"`
	EndDate      *string `json:"end_date"`
	Notes        string  `json:"notes,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

type AssignmentResponse struct {
	Status string        `json:"status"`
	Data   AssignmentDTO `json:"data"`
}

type OperatorSummaryDTO struct {
	OperatorID     string `json:"operator_id"`
	EmployeeNumber string `json:"employee_number"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Since          string `json:"since"`
}

type CarSummaryDTO struct {
	CarID        string `json:"car_id"`
	LicensePlate string `json:"license_plate"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	Since        string `json:"since"`
}

// CarAssignmentData is null in the response when the car has no active
// assignment.
type CarAssignmentData struct {
	Assignment AssignmentDTO      `json:"assignment"`
	Operator   OperatorSummaryDTO `json:"operator"`
}

type CarAssignmentResponse struct {
	Status string             `json:"status"`
	Data   *CarAssignmentData `json:"data"`
}

type OperatorAssignmentData struct {
	Assignment AssignmentDTO `json:"assignment"`
	Car        CarSummaryDTO `json:"car"`
}

type OperatorAssignmentResponse struct {
	Status string                  `json:"status"`
	Data   *OperatorAssignmentData `json:"data"`
}

type AssignmentHistoryResponse struct {
	Status string          `json:"status"`
	Data   []AssignmentDTO `json:"data"`
}
