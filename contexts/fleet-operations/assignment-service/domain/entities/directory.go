package entities

type CarStatus string

const (
	CarStatusActive      CarStatus = "active"
	CarStatusMaintenance CarStatus = "maintenance"
	CarStatusRetired     CarStatus = "retired"
)

// CarSummary is the slice of the externally owned car record this module
// needs: identity, display fields for projections, and assignability.
type CarSummary struct {
	CarID        string
	LicensePlate string
	Brand        string
	Model        string
	Status       CarStatus
}

func (c CarSummary) Assignable() bool {
	return c.Status == CarStatusActive
}

// OperatorSummary is the externally owned operator record slice.
type OperatorSummary struct {
	OperatorID     string
	EmployeeNumber string
	FirstName      string
	LastName       string
	IsActive       bool
}
