package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"motorpool/contexts/fleet-operations/assignment-service/domain/entities"
	domainerrors "motorpool/contexts/fleet-operations/assignment-service/domain/errors"
	"motorpool/contexts/fleet-operations/assignment-service/ports"

	"github.com/google/uuid"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

// Store is the in-memory adapter backing NewInMemoryModule and tests. The
// mutex serializes the check-then-insert paths the same way the postgres
// adapter's row locks do.
type Store struct {
	mu sync.RWMutex

	assignments map[string]entities.Assignment
	cars        map[string]entities.CarSummary
	operators   map[string]entities.OperatorSummary
	outbox      map[string]outboxRecord
}

type outboxRecord struct {
	Message     ports.OutboxMessage
	Status      string
	PublishedAt *time.Time
}

func NewStore(cars []entities.CarSummary, operators []entities.OperatorSummary) *Store {
	s := &Store{
		assignments: make(map[string]entities.Assignment),
		cars:        make(map[string]entities.CarSummary),
		operators:   make(map[string]entities.OperatorSummary),
		outbox:      make(map[string]outboxRecord),
	}
	for _, car := range cars {
		s.cars[car.CarID] = car
	}
	for _, operator := range operators {
		s.operators[operator.OperatorID] = operator
	}
	return s
}

func (s *Store) SeedCar(car entities.CarSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cars[car.CarID] = car
}

func (s *Store) SeedOperator(operator entities.OperatorSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.operators[operator.OperatorID] = operator
}

func (s *Store) CreateAssignment(_ context.Context, assignment entities.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(assignment.AssignmentID) == "" {
		return domainerrors.ErrInvalidAssignmentInput
	}
	for _, existing := range s.assignments {
		if !existing.Active() {
			continue
		}
		if existing.CarID == assignment.CarID {
			return domainerrors.ErrCarAlreadyAssigned
		}
		if existing.OperatorID == assignment.OperatorID {
			return domainerrors.ErrOperatorAlreadyAssigned
		}
	}

	s.assignments[assignment.AssignmentID] = assignment
	s.appendOutboxLocked("assignment.created", assignment.CarID, map[string]any{
		"assignment_id": assignment.AssignmentID,
		"car_id":        assignment.CarID,
		"operator_id":   assignment.OperatorID,
		"start_date":    assignment.StartDate.Format("2006-01-02"),
	}, assignment.CreatedAt)
	return nil
}

func (s *Store) CloseAssignment(_ context.Context, carID string, endDate time.Time, notes string) (entities.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var active *entities.Assignment
	for id := range s.assignments {
		assignment := s.assignments[id]
		if assignment.Active() && assignment.CarID == carID {
			active = &assignment
			break
		}
	}
	if active == nil {
		return entities.Assignment{}, domainerrors.ErrNoActiveAssignment
	}
	if endDate.Before(active.StartDate) {
		return entities.Assignment{}, domainerrors.ErrInvalidEndDate
	}

	closed := *active
	end := endDate
	closed.EndDate = &end
	closed.Notes = mergeNotes(closed.Notes, notes)
	s.assignments[closed.AssignmentID] = closed

	s.appendOutboxLocked("assignment.closed", closed.CarID, map[string]any{
		"assignment_id": closed.AssignmentID,
		"car_id":        closed.CarID,
		"operator_id":   closed.OperatorID,
		"end_date":      endDate.Format("2006-01-02"),
	}, s.Now())
	return closed, nil
}

func (s *Store) FindActiveByCar(_ context.Context, carID string) (entities.Assignment, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, assignment := range s.assignments {
		if assignment.Active() && assignment.CarID == carID {
			return assignment, true, nil
		}
	}
	return entities.Assignment{}, false, nil
}

func (s *Store) FindActiveByOperator(_ context.Context, operatorID string) (entities.Assignment, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, assignment := range s.assignments {
		if assignment.Active() && assignment.OperatorID == operatorID {
			return assignment, true, nil
		}
	}
	return entities.Assignment{}, false, nil
}

func (s *Store) ListByCar(_ context.Context, carID string) ([]entities.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Assignment, 0)
	for _, assignment := range s.assignments {
		if assignment.CarID == carID {
			items = append(items, assignment)
		}
	}
	sortHistory(items)
	return items, nil
}

func (s *Store) ListByOperator(_ context.Context, operatorID string) ([]entities.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Assignment, 0)
	for _, assignment := range s.assignments {
		if assignment.OperatorID == operatorID {
			items = append(items, assignment)
		}
	}
	sortHistory(items)
	return items, nil
}

func (s *Store) GetCar(_ context.Context, carID string) (entities.CarSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	car, ok := s.cars[strings.TrimSpace(carID)]
	if !ok {
		return entities.CarSummary{}, domainerrors.ErrCarNotFound
	}
	return car, nil
}

func (s *Store) GetOperator(_ context.Context, operatorID string) (entities.OperatorSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	operator, ok := s.operators[strings.TrimSpace(operatorID)]
	if !ok {
		return entities.OperatorSummary{}, domainerrors.ErrOperatorNotFound
	}
	return operator, nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	items := make([]ports.OutboxMessage, 0)
	for _, record := range s.outbox {
		if record.Status == outboxStatusPending {
			items = append(items, record.Message)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.outbox[outboxID]
	if !ok {
		return nil
	}
	record.Status = outboxStatusPublished
	record.PublishedAt = &publishedAt
	s.outbox[outboxID] = record
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) appendOutboxLocked(eventType string, carID string, data map[string]any, occurredAt time.Time) {
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	eventID := uuid.NewString()
	envelope := ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt,
		SourceService:    "assignment-service",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "car_id",
		PartitionKey:     carID,
		Data:             payload,
	}
	raw, err := json.Marshal(envelope)
	if err != nil {
		return
	}

	outboxID := uuid.NewString()
	s.outbox[outboxID] = outboxRecord{
		Message: ports.OutboxMessage{
			OutboxID:     outboxID,
			EventType:    eventType,
			PartitionKey: carID,
			Payload:      raw,
			CreatedAt:    occurredAt,
		},
		Status: outboxStatusPending,
	}
}

func sortHistory(items []entities.Assignment) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].StartDate.Equal(items[j].StartDate) {
			return items[i].StartDate.After(items[j].StartDate)
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func mergeNotes(existing string, release string) string {
	release = strings.TrimSpace(release)
	if release == "" {
		return existing
	}
	if strings.TrimSpace(existing) == "" {
		return release
	}
	return existing + "\n" + release
}
