package errors

import "errors"

var (
	ErrCarNotFound             = errors.New("car not found")
	ErrOperatorNotFound        = errors.New("operator not found")
	ErrCarNotAssignable        = errors.New("car must be active to take an operator")
	ErrOperatorNotAssignable   = errors.New("operator must be active to be assigned")
	ErrCarAlreadyAssigned      = errors.New("car already has an active operator assignment")
	ErrOperatorAlreadyAssigned = errors.New("operator already has an active car assignment")
	ErrNoActiveAssignment      = errors.New("no active assignment for this car")
	ErrInvalidEndDate          = errors.New("end date must be on or after the assignment start date")
	ErrStartDateTooOld         = errors.New("start date cannot be more than 7 days in the past")
	ErrInvalidAssignmentInput  = errors.New("invalid assignment input")
)
