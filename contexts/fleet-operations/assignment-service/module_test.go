package assignmentservice_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	assignmentservice "motorpool/contexts/fleet-operations/assignment-service"
	"motorpool/contexts/fleet-operations/assignment-service/adapters/memory"
	"motorpool/contexts/fleet-operations/assignment-service/domain/entities"
	domainerrors "motorpool/contexts/fleet-operations/assignment-service/domain/errors"
	httptransport "motorpool/contexts/fleet-operations/assignment-service/transport/http"
)

// fixedClock pins "now" so the fixture dates below stay valid against the
// start-date backfill limit.
type fixedClock struct{}

func (fixedClock) Now() time.Time {
	return time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)
}

func newTestModule() assignmentservice.Module {
	store := memory.NewStore(
		[]entities.CarSummary{
			{CarID: "car-1", LicensePlate: "AB-123-CD", Brand: "Renault", Model: "Clio", Status: entities.CarStatusActive},
			{CarID: "car-2", LicensePlate: "EF-456-GH", Brand: "Peugeot", Model: "208", Status: entities.CarStatusActive},
			{CarID: "car-3", LicensePlate: "IJ-789-KL", Brand: "Citroen", Model: "C3", Status: entities.CarStatusMaintenance},
		},
		[]entities.OperatorSummary{
			{OperatorID: "op-10", EmployeeNumber: "E-010", FirstName: "Nadia", LastName: "Benali", IsActive: true},
			{OperatorID: "op-11", EmployeeNumber: "E-011", FirstName: "Marc", LastName: "Dupont", IsActive: true},
			{OperatorID: "op-12", EmployeeNumber: "E-012", FirstName: "Ana", LastName: "Silva", IsActive: false},
		},
	)
	module := assignmentservice.NewModule(assignmentservice.Dependencies{
		Assignments: store,
		Cars:        store,
		Operators:   store,
		Clock:       fixedClock{},
		IDGenerator: store,
		Logger:      nil,
	})
	module.Store = store
	return module
}

func assign(t *testing.T, module assignmentservice.Module, carID, operatorID, startDate string) httptransport.AssignmentResponse {
	t.Helper()
	resp, err := module.Handler.AssignOperatorHandler(context.Background(), carID, httptransport.AssignOperatorRequest{
		OperatorID: operatorID,
		StartDate:  startDate,
	})
	if err != nil {
		t.Fatalf("assign %s -> %s failed: %v", operatorID, carID, err)
	}
	return resp
}

func release(t *testing.T, module assignmentservice.Module, carID, endDate string) httptransport.AssignmentResponse {
	t.Helper()
	resp, err := module.Handler.ReleaseOperatorHandler(context.Background(), carID, httptransport.ReleaseOperatorRequest{
		EndDate: endDate,
	})
	if err != nil {
		t.Fatalf("release %s failed: %v", carID, err)
	}
	return resp
}

func TestAssignReleaseLifecycle(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	created := assign(t, module, "car-1", "op-10", "2024-01-01")
	if created.Data.EndDate != nil {
		t.Fatalf("new assignment should be active, got end_date %v", *created.Data.EndDate)
	}

	current, err := module.Handler.GetCarAssignmentHandler(ctx, "car-1")
	if err != nil {
		t.Fatalf("get current assignment failed: %v", err)
	}
	if current.Data == nil {
		t.Fatalf("expected an active assignment for car-1")
	}
	if current.Data.Assignment.AssignmentID != created.Data.AssignmentID {
		t.Fatalf("current assignment id mismatch: %s vs %s", current.Data.Assignment.AssignmentID, created.Data.AssignmentID)
	}
	if current.Data.Operator.EmployeeNumber != "E-010" {
		t.Fatalf("unexpected operator summary: %+v", current.Data.Operator)
	}

	closed := release(t, module, "car-1", "2024-06-01")
	if closed.Data.EndDate == nil || *closed.Data.EndDate != "2024-06-01" {
		t.Fatalf("expected closed assignment with end_date 2024-06-01, got %+v", closed.Data)
	}

	current, err = module.Handler.GetCarAssignmentHandler(ctx, "car-1")
	if err != nil {
		t.Fatalf("get current assignment after release failed: %v", err)
	}
	if current.Data != nil {
		t.Fatalf("expected no active assignment after release, got %+v", current.Data)
	}

	history, err := module.Handler.CarHistoryHandler(ctx, "car-1")
	if err != nil {
		t.Fatalf("car history failed: %v", err)
	}
	if len(history.Data) != 1 {
		t.Fatalf("expected 1 history row, got %d", len(history.Data))
	}
	row := history.Data[0]
	if row.StartDate != "2024-01-01" || row.EndDate == nil || *row.EndDate != "2024-06-01" {
		t.Fatalf("unexpected history row: %+v", row)
	}
}

func TestReassignmentGrowsHistory(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	assign(t, module, "car-1", "op-10", "2024-01-01")
	release(t, module, "car-1", "2024-03-01")
	assign(t, module, "car-1", "op-11", "2024-03-02")

	history, err := module.Handler.CarHistoryHandler(ctx, "car-1")
	if err != nil {
		t.Fatalf("car history failed: %v", err)
	}
	if len(history.Data) != 2 {
		t.Fatalf("expected 2 history rows, got %d", len(history.Data))
	}
	if history.Data[0].OperatorID != "op-11" || history.Data[0].EndDate != nil {
		t.Fatalf("most recent row should be the active op-11 assignment: %+v", history.Data[0])
	}
	if history.Data[1].OperatorID != "op-10" || history.Data[1].EndDate == nil {
		t.Fatalf("older row should be the closed op-10 assignment: %+v", history.Data[1])
	}
}

func TestAssignRejectsBusyCar(t *testing.T) {
	module := newTestModule()

	assign(t, module, "car-1", "op-10", "2024-01-01")
	_, err := module.Handler.AssignOperatorHandler(context.Background(), "car-1", httptransport.AssignOperatorRequest{
		OperatorID: "op-11",
		StartDate:  "2024-02-01",
	})
	if !errors.Is(err, domainerrors.ErrCarAlreadyAssigned) {
		t.Fatalf("expected ErrCarAlreadyAssigned, got %v", err)
	}
}

func TestAssignRejectsBusyOperatorAndLeavesTargetCarUntouched(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	assign(t, module, "car-1", "op-10", "2024-01-01")
	_, err := module.Handler.AssignOperatorHandler(ctx, "car-2", httptransport.AssignOperatorRequest{
		OperatorID: "op-10",
		StartDate:  "2024-02-01",
	})
	if !errors.Is(err, domainerrors.ErrOperatorAlreadyAssigned) {
		t.Fatalf("expected ErrOperatorAlreadyAssigned, got %v", err)
	}

	current, err := module.Handler.GetCarAssignmentHandler(ctx, "car-2")
	if err != nil {
		t.Fatalf("get car-2 assignment failed: %v", err)
	}
	if current.Data != nil {
		t.Fatalf("car-2 should remain unassigned, got %+v", current.Data)
	}
}

func TestReleaseBeforeStartDateLeavesAssignmentActive(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	created := assign(t, module, "car-1", "op-10", "2024-01-10")
	_, err := module.Handler.ReleaseOperatorHandler(ctx, "car-1", httptransport.ReleaseOperatorRequest{
		EndDate: "2024-01-05",
	})
	if !errors.Is(err, domainerrors.ErrInvalidEndDate) {
		t.Fatalf("expected ErrInvalidEndDate, got %v", err)
	}

	current, err := module.Handler.GetCarAssignmentHandler(ctx, "car-1")
	if err != nil {
		t.Fatalf("get current assignment failed: %v", err)
	}
	if current.Data == nil || current.Data.Assignment.AssignmentID != created.Data.AssignmentID {
		t.Fatalf("assignment should still be active and unmodified, got %+v", current.Data)
	}
	if current.Data.Assignment.EndDate != nil {
		t.Fatalf("assignment should have no end date, got %v", *current.Data.Assignment.EndDate)
	}
}

func TestReleaseWithoutActiveAssignment(t *testing.T) {
	module := newTestModule()

	_, err := module.Handler.ReleaseOperatorHandler(context.Background(), "car-1", httptransport.ReleaseOperatorRequest{
		EndDate: "2024-02-01",
	})
	if !errors.Is(err, domainerrors.ErrNoActiveAssignment) {
		t.Fatalf("expected ErrNoActiveAssignment, got %v", err)
	}
}

func TestAssignUnknownCarAndOperator(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	_, err := module.Handler.AssignOperatorHandler(ctx, "car-missing", httptransport.AssignOperatorRequest{
		OperatorID: "op-10",
		StartDate:  "2024-01-01",
	})
	if !errors.Is(err, domainerrors.ErrCarNotFound) {
		t.Fatalf("expected ErrCarNotFound, got %v", err)
	}

	_, err = module.Handler.AssignOperatorHandler(ctx, "car-1", httptransport.AssignOperatorRequest{
		OperatorID: "op-missing",
		StartDate:  "2024-01-01",
	})
	if !errors.Is(err, domainerrors.ErrOperatorNotFound) {
		t.Fatalf("expected ErrOperatorNotFound, got %v", err)
	}
}

func TestAssignRejectsNotAssignableEntities(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	_, err := module.Handler.AssignOperatorHandler(ctx, "car-3", httptransport.AssignOperatorRequest{
		OperatorID: "op-10",
		StartDate:  "2024-01-01",
	})
	if !errors.Is(err, domainerrors.ErrCarNotAssignable) {
		t.Fatalf("expected ErrCarNotAssignable for car in maintenance, got %v", err)
	}

	_, err = module.Handler.AssignOperatorHandler(ctx, "car-1", httptransport.AssignOperatorRequest{
		OperatorID: "op-12",
		StartDate:  "2024-01-01",
	})
	if !errors.Is(err, domainerrors.ErrOperatorNotAssignable) {
		t.Fatalf("expected ErrOperatorNotAssignable for inactive operator, got %v", err)
	}
}

func TestAssignRejectsStaleStartDate(t *testing.T) {
	module := newTestModule()

	// Clock is pinned at 2024-01-02; anything before 2023-12-26 is stale.
	_, err := module.Handler.AssignOperatorHandler(context.Background(), "car-1", httptransport.AssignOperatorRequest{
		OperatorID: "op-10",
		StartDate:  "2023-12-01",
	})
	if !errors.Is(err, domainerrors.ErrStartDateTooOld) {
		t.Fatalf("expected ErrStartDateTooOld, got %v", err)
	}
}

func TestScenarioHistoryOrdering(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	assign(t, module, "car-1", "op-10", "2024-01-01")

	_, err := module.Handler.AssignOperatorHandler(ctx, "car-1", httptransport.AssignOperatorRequest{
		OperatorID: "op-11",
		StartDate:  "2024-02-01",
	})
	if !errors.Is(err, domainerrors.ErrCarAlreadyAssigned) {
		t.Fatalf("expected ErrCarAlreadyAssigned, got %v", err)
	}

	release(t, module, "car-1", "2024-03-01")
	assign(t, module, "car-1", "op-11", "2024-03-02")

	history, err := module.Handler.CarHistoryHandler(ctx, "car-1")
	if err != nil {
		t.Fatalf("car history failed: %v", err)
	}
	if len(history.Data) != 2 {
		t.Fatalf("expected 2 history rows, got %d", len(history.Data))
	}
	first, second := history.Data[0], history.Data[1]
	if first.OperatorID != "op-11" || first.StartDate != "2024-03-02" || first.EndDate != nil {
		t.Fatalf("unexpected newest row: %+v", first)
	}
	if second.OperatorID != "op-10" || second.StartDate != "2024-01-01" || second.EndDate == nil || *second.EndDate != "2024-03-01" {
		t.Fatalf("unexpected oldest row: %+v", second)
	}
}

func TestConcurrentAssignsProduceSingleActiveRow(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	operators := []string{"op-10", "op-11"}
	var wg sync.WaitGroup
	results := make(chan error, len(operators)*4)
	for i := 0; i < len(operators)*4; i++ {
		operatorID := operators[i%len(operators)]
		wg.Add(1)
		go func(operatorID string) {
			defer wg.Done()
			_, err := module.Handler.AssignOperatorHandler(ctx, "car-1", httptransport.AssignOperatorRequest{
				OperatorID: operatorID,
				StartDate:  "2024-01-01",
			})
			results <- err
		}(operatorID)
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		if !errors.Is(err, domainerrors.ErrCarAlreadyAssigned) && !errors.Is(err, domainerrors.ErrOperatorAlreadyAssigned) {
			t.Fatalf("unexpected concurrent assign error: %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly one successful assign, got %d", successes)
	}

	history, err := module.Handler.CarHistoryHandler(ctx, "car-1")
	if err != nil {
		t.Fatalf("car history failed: %v", err)
	}
	if len(history.Data) != 1 {
		t.Fatalf("expected a single assignment row, got %d", len(history.Data))
	}
}

func TestCurrentAssignmentReadIsStable(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	assign(t, module, "car-1", "op-10", "2024-01-01")

	first, err := module.Handler.GetCarAssignmentHandler(ctx, "car-1")
	if err != nil {
		t.Fatalf("first read failed: %v", err)
	}
	if _, err := module.Handler.GetOperatorAssignmentHandler(ctx, "op-11"); err != nil {
		t.Fatalf("unrelated read failed: %v", err)
	}
	second, err := module.Handler.GetCarAssignmentHandler(ctx, "car-1")
	if err != nil {
		t.Fatalf("second read failed: %v", err)
	}
	if first.Data == nil || second.Data == nil {
		t.Fatalf("expected active assignment on both reads")
	}
	if *first.Data != *second.Data {
		t.Fatalf("reads diverged: %+v vs %+v", *first.Data, *second.Data)
	}
}

func TestOperatorProjectionCarriesCarSummary(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	assign(t, module, "car-1", "op-10", "2024-01-01")

	view, err := module.Handler.GetOperatorAssignmentHandler(ctx, "op-10")
	if err != nil {
		t.Fatalf("operator assignment failed: %v", err)
	}
	if view.Data == nil {
		t.Fatalf("expected active assignment for op-10")
	}
	car := view.Data.Car
	if car.LicensePlate != "AB-123-CD" || car.Brand != "Renault" || car.Model != "Clio" || car.Since != "2024-01-01" {
		t.Fatalf("unexpected car summary: %+v", car)
	}
}

func TestMutationsJournalOutboxEvents(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	assign(t, module, "car-1", "op-10", "2024-01-01")
	release(t, module, "car-1", "2024-02-01")

	pending, err := module.Store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("list outbox failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 outbox events, got %d", len(pending))
	}
	types := map[string]bool{}
	for _, message := range pending {
		types[message.EventType] = true
		if message.PartitionKey != "car-1" {
			t.Fatalf("expected partition key car-1, got %s", message.PartitionKey)
		}
	}
	if !types["assignment.created"] || !types["assignment.closed"] {
		t.Fatalf("expected created and closed events, got %v", types)
	}
}
