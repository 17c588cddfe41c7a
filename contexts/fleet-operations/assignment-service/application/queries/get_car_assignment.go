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

// CarAssignmentView is the "current operator for car" projection: the car,
// and when an active assignment exists, the assignment and its operator.
type CarAssignmentView struct {
	Car        entities.CarSummary
	Assignment *entities.Assignment
	Operator   *entities.OperatorSummary
}

type GetCarAssignmentUseCase struct {
	Assignments ports.AssignmentRepository
	Cars        ports.CarDirectory
	Operators   ports.OperatorDirectory
	Logger      *slog.Logger
}

func (uc GetCarAssignmentUseCase) Execute(ctx context.Context, carID string) (CarAssignmentView, error) {
	logger := application.ResolveLogger(uc.Logger)

	carID = strings.TrimSpace(carID)
	if carID == "" {
		return CarAssignmentView{}, domainerrors.ErrCarNotFound
	}

	car, err := uc.Cars.GetCar(ctx, carID)
	if err != nil {
		return CarAssignmentView{}, err
	}
	view := CarAssignmentView{Car: car}

	var (
		assignment entities.Assignment
		found      bool
	)
	err = withReadRetry(ctx, func(ctx context.Context) error {
		var readErr error
		assignment, found, readErr = uc.Assignments.FindActiveByCar(ctx, carID)
		return readErr
	})
	if err != nil {
		logger.Error("active assignment lookup failed",
			"event", "car_assignment_read_failed",
			"module", "fleet-operations/assignment-service",
			"layer", "application",
			"car_id", carID,
			"error", err.Error(),
		)
		return CarAssignmentView{}, err
	}
	if !found {
		return view, nil
	}

	operator, err := uc.Operators.GetOperator(ctx, assignment.OperatorID)
	if err != nil {
		return CarAssignmentView{}, err
	}
	view.Assignment = &assignment
	view.Operator = &operator
	return view, nil
}
