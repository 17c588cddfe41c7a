package queries

import (
	"context"
	"log/slog"
	"strings"

	"motorpool/contexts/fleet-operations/assignment-service/domain/entities"
	domainerrors "motorpool/contexts/fleet-operations/assignment-service/domain/errors"
	"motorpool/contexts/fleet-operations/assignment-service/ports"
)

type CarHistoryUseCase struct {
	Assignments ports.AssignmentRepository
	Cars        ports.CarDirectory
	Logger      *slog.Logger
}

func (uc CarHistoryUseCase) Execute(ctx context.Context, carID string) ([]entities.Assignment, error) {
	carID = strings.TrimSpace(carID)
	if carID == "" {
		return nil, domainerrors.ErrCarNotFound
	}
	if _, err := uc.Cars.GetCar(ctx, carID); err != nil {
		return nil, err
	}

	var history []entities.Assignment
	err := withReadRetry(ctx, func(ctx context.Context) error {
		var readErr error
		history, readErr = uc.Assignments.ListByCar(ctx, carID)
		return readErr
	})
	if err != nil {
		return nil, err
	}
	return history, nil
}

type OperatorHistoryUseCase struct {
	Assignments ports.AssignmentRepository
	Operators   ports.OperatorDirectory
	Logger      *slog.Logger
}

func (uc OperatorHistoryUseCase) Execute(ctx context.Context, operatorID string) ([]entities.Assignment, error) {
	operatorID = strings.TrimSpace(operatorID)
	if operatorID == "" {
		return nil, domainerrors.ErrOperatorNotFound
	}
	if _, err := uc.Operators.GetOperator(ctx, operatorID); err != nil {
		return nil, err
	}

	var history []entities.Assignment
	err := withReadRetry(ctx, func(ctx context.Context) error {
		var readErr error
		history, readErr = uc.Assignments.ListByOperator(ctx, operatorID)
		return readErr
	})
	if err != nil {
		return nil, err
	}
	return history, nil
}
