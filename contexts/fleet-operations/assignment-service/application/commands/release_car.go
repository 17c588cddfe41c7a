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

type ReleaseCarCommand struct {
	CarID   string
	EndDate time.Time
	Notes   string
}

type ReleaseCarUseCase struct {
	Assignments ports.AssignmentRepository
	Cars        ports.CarDirectory
	Logger      *slog.Logger
}

// Execute closes the car's active assignment. The end-date ordering check
// runs inside the repository transaction, against the locked active row.
func (uc ReleaseCarUseCase) Execute(ctx context.Context, cmd ReleaseCarCommand) (entities.Assignment, error) {
	logger := application.ResolveLogger(uc.Logger)

	carID := strings.TrimSpace(cmd.CarID)
	if carID == "" || cmd.EndDate.IsZero() {
		return entities.Assignment{}, domainerrors.ErrInvalidAssignmentInput
	}

	if _, err := uc.Cars.GetCar(ctx, carID); err != nil {
		return entities.Assignment{}, err
	}

	closed, err := uc.Assignments.CloseAssignment(ctx, carID, cmd.EndDate, strings.TrimSpace(cmd.Notes))
	if err != nil {
		return entities.Assignment{}, err
	}

	logger.Info("car released from operator",
		"event", "assignment_closed",
		"module", "fleet-operations/assignment-service",
		"layer", "application",
		"assignment_id", closed.AssignmentID,
		"car_id", carID,
		"operator_id", closed.OperatorID,
		"end_date", cmd.EndDate.Format("2006-01-02"),
	)
	return closed, nil
}
