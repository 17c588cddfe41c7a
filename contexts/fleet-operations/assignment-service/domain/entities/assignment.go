package entities

import "time"

// Assignment records one interval during which an operator drives a car.
// A nil EndDate means the assignment is active; once EndDate is set the
// record is a closed, immutable piece of history.
type Assignment struct {
	AssignmentID string
	CarID        string
	OperatorID   string
	StartDate    time.Time
	EndDate      *time.Time
	Notes        string
	CreatedAt    time.Time
}

func (a Assignment) Active() bool {
	return a.EndDate == nil
}
