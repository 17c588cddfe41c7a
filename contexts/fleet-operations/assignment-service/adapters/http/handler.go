package httpadapter

import (
	"context"
	"log/slog"
	"time"

	application "motorpool/contexts/fleet-operations/assignment-service/application"
	"motorpool/contexts/fleet-operations/assignment-service/application/commands"
	"motorpool/contexts/fleet-operations/assignment-service/application/queries"
	"motorpool/contexts/fleet-operations/assignment-service/domain/entities"
	domainerrors "motorpool/contexts/fleet-operations/assignment-service/domain/errors"
	httptransport "motorpool/contexts/fleet-operations/assignment-service/transport/http"
)

const dateLayout = "2006-01-02"

type Handler struct {
	AssignOperator        commands.AssignOperatorUseCase
	ReleaseCar            commands.ReleaseCarUseCase
	GetCarAssignment      queries.GetCarAssignmentUseCase
	GetOperatorAssignment queries.GetOperatorAssignmentUseCase
	CarHistory            queries.CarHistoryUseCase
	OperatorHistory       queries.OperatorHistoryUseCase
	Logger                *slog.Logger
}

// AssignOperatorHandler godoc
// @Summary Assign an operator to a car
// @Description Creates a new active assignment. Fails when either side already has one.
// @Tags assignments
// @Accept json
// @Produce json
// @Param car_id path string true "Car id"
// @Param request body httptransport.AssignOperatorRequest true "Assignment request"
// @Success 201 {object} httptransport.AssignmentResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /api/v1/cars/{car_id}/assign [post]
func (h Handler) AssignOperatorHandler(
	ctx context.Context,
	carID string,
	req httptransport.AssignOperatorRequest,
) (httptransport.AssignmentResponse, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return httptransport.AssignmentResponse{}, domainerrors.ErrInvalidAssignmentInput
	}

	assignment, err := h.AssignOperator.Execute(ctx, commands.AssignOperatorCommand{
		CarID:      carID,
		OperatorID: req.OperatorID,
		StartDate:  startDate,
		Notes:      req.Notes,
	})
	if err != nil {
		application.ResolveLogger(h.Logger).Error("assign operator failed",
			"event", "http_assign_operator_failed",
			"module", "fleet-operations/assignment-service",
			"layer", "transport",
			"car_id", carID,
			"error", err.Error(),
		)
		return httptransport.AssignmentResponse{}, err
	}
	return httptransport.AssignmentResponse{
		Status: "success",
		Data:   toAssignmentDTO(assignment),
	}, nil
}

// ReleaseOperatorHandler godoc
// @Summary Release a car from its operator
// @Description Closes the car's active assignment by setting its end date.
// @Tags assignments
// @Accept json
// @Produce json
// @Param car_id path string true "Car id"
// @Param request body httptransport.ReleaseOperatorRequest true "Release request"
// @Success 200 {object} httptransport.AssignmentResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /api/v1/cars/{car_id}/unassign [post]
func (h Handler) ReleaseOperatorHandler(
	ctx context.Context,
	carID string,
	req httptransport.ReleaseOperatorRequest,
) (httptransport.AssignmentResponse, error) {
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return httptransport.AssignmentResponse{}, domainerrors.ErrInvalidAssignmentInput
	}

	closed, err := h.ReleaseCar.Execute(ctx, commands.ReleaseCarCommand{
		CarID:   carID,
		EndDate: endDate,
		Notes:   req.Notes,
	})
	if err != nil {
		application.ResolveLogger(h.Logger).Error("release operator failed",
			"event", "http_release_operator_failed",
			"module", "fleet-operations/assignment-service",
			"layer", "transport",
			"car_id", carID,
			"error", err.Error(),
		)
		return httptransport.AssignmentResponse{}, err
	}
	return httptransport.AssignmentResponse{
		Status: "success",
		Data:   toAssignmentDTO(closed),
	}, nil
}

// GetCarAssignmentHandler godoc
// @Summary Current assignment for a car
// @Description Returns the active assignment and operator summary, data null when unassigned.
// @Tags assignments
// @Produce json
// @Param car_id path string true "Car id"
// @Success 200 {object} httptransport.CarAssignmentResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/v1/cars/{car_id}/assignment [get]
func (h Handler) GetCarAssignmentHandler(ctx context.Context, carID string) (httptransport.CarAssignmentResponse, error) {
	view, err := h.GetCarAssignment.Execute(ctx, carID)
	if err != nil {
		return httptransport.CarAssignmentResponse{}, err
	}

	resp := httptransport.CarAssignmentResponse{Status: "success"}
	if view.Assignment == nil {
		return resp, nil
	}
	resp.Data = &httptransport.CarAssignmentData{
		Assignment: toAssignmentDTO(*view.Assignment),
		Operator: httptransport.OperatorSummaryDTO{
			OperatorID:     view.Operator.OperatorID,
			EmployeeNumber: view.Operator.EmployeeNumber,
			FirstName:      view.Operator.FirstName,
			LastName:       view.Operator.LastName,
			Since:          view.Assignment.StartDate.Format(dateLayout),
		},
	}
	return resp, nil
}

// GetOperatorAssignmentHandler godoc
// @Summary Current assignment for an operator
// @Description Returns the active assignment and car summary, data null when unassigned.
// @Tags assignments
// @Produce json
// @Param operator_id path string true "Operator id"
// @Success 200 {object} httptransport.OperatorAssignmentResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/v1/operators/{operator_id}/assignment [get]
func (h Handler) GetOperatorAssignmentHandler(ctx context.Context, operatorID string) (httptransport.OperatorAssignmentResponse, error) {
	view, err := h.GetOperatorAssignment.Execute(ctx, operatorID)
	if err != nil {
		return httptransport.OperatorAssignmentResponse{}, err
	}

	resp := httptransport.OperatorAssignmentResponse{Status: "success"}
	if view.Assignment == nil {
		return resp, nil
	}
	resp.Data = &httptransport.OperatorAssignmentData{
		Assignment: toAssignmentDTO(*view.Assignment),
		Car: httptransport.CarSummaryDTO{
			CarID:        view.Car.CarID,
			LicensePlate: view.Car.LicensePlate,
			Brand:        view.Car.Brand,
			Model:        view.Car.Model,
			Since:        view.Assignment.StartDate.Format(dateLayout),
		},
	}
	return resp, nil
}

// CarHistoryHandler godoc
// @Summary Assignment history for a car
// @Description Returns all assignment intervals, most recent start date first.
// @Tags assignments
// @Produce json
// @Param car_id path string true "Car id"
// @Success 200 {object} httptransport.AssignmentHistoryResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/v1/cars/{car_id}/assignment-history [get]
func (h Handler) CarHistoryHandler(ctx context.Context, carID string) (httptransport.AssignmentHistoryResponse, error) {
	history, err := h.CarHistory.Execute(ctx, carID)
	if err != nil {
		return httptransport.AssignmentHistoryResponse{}, err
	}
	return toHistoryResponse(history), nil
}

// OperatorHistoryHandler godoc
// @Summary Assignment history for an operator
// @Description Returns all assignment intervals, most recent start date first.
// @Tags assignments
// @Produce json
// @Param operator_id path string true "Operator id"
// @Success 200 {object} httptransport.AssignmentHistoryResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/v1/operators/{operator_id}/assignment-history [get]
func (h Handler) OperatorHistoryHandler(ctx context.Context, operatorID string) (httptransport.AssignmentHistoryResponse, error) {
	history, err := h.OperatorHistory.Execute(ctx, operatorID)
	if err != nil {
		return httptransport.AssignmentHistoryResponse{}, err
	}
	return toHistoryResponse(history), nil
}

func toHistoryResponse(history []entities.Assignment) httptransport.AssignmentHistoryResponse {
	resp := httptransport.AssignmentHistoryResponse{
		Status: "success",
		Data:   make([]httptransport.AssignmentDTO, 0, len(history)),
	}
	for _, assignment := range history {
		resp.Data = append(resp.Data, toAssignmentDTO(assignment))
	}
	return resp
}

func toAssignmentDTO(assignment entities.Assignment) httptransport.AssignmentDTO {
	dto := httptransport.AssignmentDTO{
		AssignmentID: assignment.AssignmentID,
		CarID:        assignment.CarID,
		OperatorID:   assignment.OperatorID,
		StartDate:    assignment.StartDate.Format(dateLayout),
		Notes:        assignment.Notes,
		CreatedAt:    assignment.CreatedAt.UTC().Format(time.RFC3339),
	}
	if assignment.EndDate != nil {
		end := assignment.EndDate.Format(dateLayout)
		dto.EndDate = &end
	}
	return dto
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse(dateLayout, raw)
}
