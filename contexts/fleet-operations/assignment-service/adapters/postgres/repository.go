package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"motorpool/contexts/fleet-operations/assignment-service/domain/entities"
	domainerrors "motorpool/contexts/fleet-operations/assignment-service/domain/errors"
	"motorpool/contexts/fleet-operations/assignment-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

// Partial unique index names, defined in migrations/0001_assignment_schema.sql.
const (
	uniqueActiveCarIndex      = "uniq_active_assignment_car"
	uniqueActiveOperatorIndex = "uniq_active_assignment_operator"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// CreateAssignment inserts a new active row under the exclusivity invariant.
// The car and operator directory rows are locked FOR UPDATE before the
// active-existence checks, which serializes concurrent assigns per key; the
// partial unique indexes on (car_id) and (operator_id) WHERE end_date IS NULL
// backstop the invariant against writers outside this path.
func (r *Repository) CreateAssignment(ctx context.Context, assignment entities.Assignment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var car carModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", assignment.CarID).
			First(&car).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrCarNotFound
			}
			return err
		}

		var operator operatorModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", assignment.OperatorID).
			First(&operator).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrOperatorNotFound
			}
			return err
		}

		var activeCount int64
		if err := tx.Model(&assignmentModel{}).
			Where("car_id = ? AND end_date IS NULL", assignment.CarID).
			Count(&activeCount).
			Error; err != nil {
			return err
		}
		if activeCount > 0 {
			return domainerrors.ErrCarAlreadyAssigned
		}

		if err := tx.Model(&assignmentModel{}).
			Where("operator_id = ? AND end_date IS NULL", assignment.OperatorID).
			Count(&activeCount).
			Error; err != nil {
			return err
		}
		if activeCount > 0 {
			return domainerrors.ErrOperatorAlreadyAssigned
		}

		row := assignmentModelFromEntity(assignment)
		if err := tx.Create(&row).Error; err != nil {
			if conflict, ok := conflictFromUniqueViolation(err); ok {
				return conflict
			}
			return err
		}

		return insertOutboxEnvelopeTx(tx, assignmentEnvelope(
			"assignment.created",
			assignment.CarID,
			assignment.CreatedAt,
			map[string]any{
				"assignment_id": assignment.AssignmentID,
				"car_id":        assignment.CarID,
				"operator_id":   assignment.OperatorID,
				"start_date":    assignment.StartDate.Format("2006-01-02"),
			},
		))
	})
}

// CloseAssignment sets the end date on the car's active row. The active row
// is locked FOR UPDATE so the date check and the update are atomic; the
// update itself is guarded by end_date IS NULL so a closed row can never be
// rewritten.
func (r *Repository) CloseAssignment(ctx context.Context, carID string, endDate time.Time, notes string) (entities.Assignment, error) {
	var closed entities.Assignment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row assignmentModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("car_id = ? AND end_date IS NULL", carID).
			First(&row).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrNoActiveAssignment
			}
			return err
		}
		if endDate.Before(row.StartDate) {
			return domainerrors.ErrInvalidEndDate
		}

		mergedNotes := mergeNotes(row.Notes, notes)
		result := tx.Model(&assignmentModel{}).
			Where("assignment_id = ? AND end_date IS NULL", row.AssignmentID).
			Updates(map[string]any{
				"end_date": endDate,
				"notes":    mergedNotes,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrNoActiveAssignment
		}

		end := endDate
		row.EndDate = &end
		row.Notes = mergedNotes
		closed = row.toEntity()

		return insertOutboxEnvelopeTx(tx, assignmentEnvelope(
			"assignment.closed",
			closed.CarID,
			time.Now().UTC(),
			map[string]any{
				"assignment_id": closed.AssignmentID,
				"car_id":        closed.CarID,
				"operator_id":   closed.OperatorID,
				"end_date":      endDate.Format("2006-01-02"),
			},
		))
	})
	if err != nil {
		return entities.Assignment{}, err
	}
	return closed, nil
}

func (r *Repository) FindActiveByCar(ctx context.Context, carID string) (entities.Assignment, bool, error) {
	var row assignmentModel
	err := r.db.WithContext(ctx).
		Where("car_id = ? AND end_date IS NULL", strings.TrimSpace(carID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Assignment{}, false, nil
		}
		return entities.Assignment{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) FindActiveByOperator(ctx context.Context, operatorID string) (entities.Assignment, bool, error) {
	var row assignmentModel
	err := r.db.WithContext(ctx).
		Where("operator_id = ? AND end_date IS NULL", strings.TrimSpace(operatorID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Assignment{}, false, nil
		}
		return entities.Assignment{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListByCar(ctx context.Context, carID string) ([]entities.Assignment, error) {
	var rows []assignmentModel
	err := r.db.WithContext(ctx).
		Where("car_id = ?", strings.TrimSpace(carID)).
		Order("start_date DESC, created_at DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Assignment, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListByOperator(ctx context.Context, operatorID string) ([]entities.Assignment, error) {
	var rows []assignmentModel
	err := r.db.WithContext(ctx).
		Where("operator_id = ?", strings.TrimSpace(operatorID)).
		Order("start_date DESC, created_at DESC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]entities.Assignment, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetCar(ctx context.Context, carID string) (entities.CarSummary, error) {
	var row carModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(carID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.CarSummary{}, domainerrors.ErrCarNotFound
		}
		return entities.CarSummary{}, err
	}
	return row.toSummary(), nil
}

func (r *Repository) GetOperator(ctx context.Context, operatorID string) (entities.OperatorSummary, error) {
	var row operatorModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(operatorID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.OperatorSummary{}, domainerrors.ErrOperatorNotFound
		}
		return entities.OperatorSummary{}, err
	}
	return row.toSummary(), nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      row.Payload,
			CreatedAt:    row.CreatedAt,
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ? AND status = ?", outboxID, outboxStatusPending).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt,
		}).
		Error
}

func insertOutboxEnvelopeTx(tx *gorm.DB, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:     uuid.NewString(),
		EventType:    envelope.EventType,
		PartitionKey: envelope.PartitionKey,
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    time.Now().UTC(),
	}
	return tx.Create(&row).Error
}

func assignmentEnvelope(eventType string, carID string, occurredAt time.Time, data map[string]any) ports.EventEnvelope {
	payload, _ := json.Marshal(data)
	eventID := uuid.NewString()
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "assignment-service",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "car_id",
		PartitionKey:     carID,
		Data:             payload,
	}
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

// conflictFromUniqueViolation maps a violation of one of the active-assignment
// partial unique indexes to the matching domain conflict.
func conflictFromUniqueViolation(err error) (error, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil, false
	}
	if pgErr.ConstraintName == uniqueActiveOperatorIndex {
		return domainerrors.ErrOperatorAlreadyAssigned, true
	}
	return domainerrors.ErrCarAlreadyAssigned, true
}
