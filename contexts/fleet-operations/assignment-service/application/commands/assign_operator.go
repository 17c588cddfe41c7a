package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "motorpool/contexts/fleet-operations/assignment-service/application"
	"motorpool/contexts/fleet-operations/assignment-service/domain/entities"
	domainerrors "motorpool/contexts/fleet-operations/assignment-service/domain/errors"
	"motorpool/contexts/fleet-operations/assignment-service/ports"
)

// Assignments older than this are assumed to be data-entry mistakes.
const maxStartDateBackfill = 7 * 24 * time.Hour

type AssignOperatorCommand struct {
	CarID      string
	OperatorID string
	StartDate  time.Time
	Notes      string
}

type AssignOperatorUseCase struct {
	Assignments ports.AssignmentRepository
	Cars        ports.CarDirectory
	Operators   ports.OperatorDirectory
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

func (uc AssignOperatorUseCase) Execute(ctx context.Context, cmd AssignOperatorCommand) (entities.Assignment, error) {
	logger := application.ResolveLogger(uc.Logger)

	carID := strings.TrimSpace(cmd.CarID)
	operatorID := strings.TrimSpace(cmd.OperatorID)
	if carID == "" || operatorID == "" || cmd.StartDate.IsZero() {
		return entities.Assignment{}, domainerrors.ErrInvalidAssignmentInput
	}

	now := uc.Clock.Now().UTC()
	if cmd.StartDate.Before(now.Add(-maxStartDateBackfill)) {
		return entities.Assignment{}, domainerrors.ErrStartDateTooOld
	}

	car, err := uc.Cars.GetCar(ctx, carID)
	if err != nil {
		return entities.Assignment{}, err
	}
	if !car.Assignable() {
		return entities.Assignment{}, domainerrors.ErrCarNotAssignable
	}

	operator, err := uc.Operators.GetOperator(ctx, operatorID)
	if err != nil {
		return entities.Assignment{}, err
	}
	if !operator.IsActive {
		return entities.Assignment{}, domainerrors.ErrOperatorNotAssignable
	}

	assignmentID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Assignment{}, err
	}

	assignment := entities.Assignment{
		AssignmentID: strings.TrimSpace(assignmentID),
		CarID:        carID,
		OperatorID:   operatorID,
		StartDate:    cmd.StartDate,
		Notes:        strings.TrimSpace(cmd.Notes),
		CreatedAt:    now,
	}
	if err := uc.Assignments.CreateAssignment(ctx, assignment); err != nil {
		return entities.Assignment{}, err
	}

	logger.Info("operator assigned to car",
		"event", "assignment_created",
		"module", "fleet-operations/assignment-service",
		"layer", "application",
		"assignment_id", assignment.AssignmentID,
		"car_id", carID,
		"operator_id", operatorID,
		"start_date", assignment.StartDate.Format("2006-01-02"),
	)
	return assignment, nil
}
