package ports

import (
	"context"
	"time"

	"motorpool/contexts/fleet-operations/assignment-service/domain/entities"
	contractsv1 "motorpool/contracts/events/v1"
)

// AssignmentRepository owns the assignment table and the exclusivity
// invariant. CreateAssignment and CloseAssignment are transactional
// check-then-act operations: the adapter must serialize them per car and
// per operator so the "at most one active row" checks and the write behave
// as a single atomic step, and must surface conflicts as domain errors.
type AssignmentRepository interface {
	// CreateAssignment inserts a new active row. Fails with
	// ErrCarAlreadyAssigned or ErrOperatorAlreadyAssigned when an active
	// row already exists for either key.
	CreateAssignment(ctx context.Context, assignment entities.Assignment) error

	// CloseAssignment sets the end date on the car's active row and appends
	// release notes. Fails with ErrNoActiveAssignment when the car has no
	// active row and ErrInvalidEndDate when endDate precedes the row's
	// start date. Returns the closed record.
	CloseAssignment(ctx context.Context, carID string, endDate time.Time, notes string) (entities.Assignment, error)

	FindActiveByCar(ctx context.Context, carID string) (entities.Assignment, bool, error)
	FindActiveByOperator(ctx context.Context, operatorID string) (entities.Assignment, bool, error)

	// List methods return history ordered by start date descending, ties
	// broken by creation time descending.
	ListByCar(ctx context.Context, carID string) ([]entities.Assignment, error)
	ListByOperator(ctx context.Context, operatorID string) ([]entities.Assignment, error)
}

// CarDirectory and OperatorDirectory are read-only views onto the externally
// owned car and operator records.
type CarDirectory interface {
	GetCar(ctx context.Context, carID string) (entities.CarSummary, error)
}

type OperatorDirectory interface {
	GetOperator(ctx context.Context, operatorID string) (entities.OperatorSummary, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type EventEnvelope = contractsv1.Envelope

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type EventSubscriber interface {
	Subscribe(
		ctx context.Context,
		topic string,
		consumerGroup string,
		handler func(context.Context, EventEnvelope) error,
	) error
}
