package queries

import (
	"context"
	"log/slog"
	"strings"

	application "motorpool/contexts/fleet-operations/assignment-service/application"
	"motorpool/contexts/fleet-operations/assignment-service/domain/entities"
	domainerrors "motorpool/contexts/fleet-operations/assignment-service/domain/errors"
	"motorpool/contexts/fleet-operations/assignment-service/ports"
)

// OperatorAssignmentView is the "current car for operator" projection.
type OperatorAssignmentView struct {
	Operator   entities.OperatorSummary
	Assignment *entities.Assignment
	Car        *entities.CarSummary
}

type GetOperatorAssignmentUseCase struct {
	Assignments ports.AssignmentRepository
	Cars        ports.CarDirectory
	Operators   ports.OperatorDirectory
	Logger      *slog.Logger
}

func (uc GetOperatorAssignmentUseCase) Execute(ctx context.Context, operatorID string) (OperatorAssignmentView, error) {
	logger := application.ResolveLogger(uc.Logger)

	operatorID = strings.TrimSpace(operatorID)
	if operatorID == "" {
		return OperatorAssignmentView{}, domainerrors.ErrOperatorNotFound
	}

	operator, err := uc.Operators.GetOperator(ctx, operatorID)
	if err != nil {
		return OperatorAssignmentView{}, err
	}
	view := OperatorAssignmentView{Operator: operator}

	var (
		assignment entities.Assignment
		found      bool
	)
	err = withReadRetry(ctx, func(ctx context.Context) error {
		var readErr error
		assignment, found, readErr = uc.Assignments.FindActiveByOperator(ctx, operatorID)
		return readErr
	})
	if err != nil {
		logger.Error("active assignment lookup failed",
			"event", "operator_assignment_read_failed",
			"module", "fleet-operations/assignment-service",
			"layer", "application",
			"operator_id", operatorID,
			"error", err.Error(),
		)
		return OperatorAssignmentView{}, err
	}
	if !found {
		return view, nil
	}

	car, err := uc.Cars.GetCar(ctx, assignment.CarID)
	if err != nil {
		return OperatorAssignmentView{}, err
	}
	view.Assignment = &assignment
	view.Car = &car
	return view, nil
}
