package postgresadapter

import (
	"time"

	"motorpool/contexts/fleet-operations/assignment-service/domain/entities"
)

type assignmentModel struct {
	AssignmentID string     `gorm:"column:assignment_id;primaryKey"`
	CarID        string     `gorm:"column:car_id"`
	OperatorID   string     `gorm:"column:operator_id"`
	StartDate    time.Time  `gorm:"column:start_date"`
	EndDate      *time.Time `gorm:"column:end_date"`
	Notes        string     `gorm:"column:notes"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
}

func (assignmentModel) TableName() string {
	return "car_operator_assignments"
}

func (m assignmentModel) toEntity() entities.Assignment {
	return entities.Assignment{
		AssignmentID: m.AssignmentID,
		CarID:        m.CarID,
		OperatorID:   m.OperatorID,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		Notes:        m.Notes,
		CreatedAt:    m.CreatedAt,
	}
}

func assignmentModelFromEntity(a entities.Assignment) assignmentModel {
	return assignmentModel{
		AssignmentID: a.AssignmentID,
		CarID:        a.CarID,
		OperatorID:   a.OperatorID,
		StartDate:    a.StartDate,
		EndDate:      a.EndDate,
		Notes:        a.Notes,
		CreatedAt:    a.CreatedAt,
	}
}

// carModel and operatorModel are read-only views onto tables owned by the
// fleet CRUD services; this module never writes them.
type carModel struct {
	ID           string `gorm:"column:id;primaryKey"`
	LicensePlate string `gorm:"column:license_plate"`
	Brand        string `gorm:"column:brand"`
	Model        string `gorm:"column:model"`
	Status       string `gorm:"column:status"`
}

func (carModel) TableName() string {
	return "cars"
}

func (m carModel) toSummary() entities.CarSummary {
	return entities.CarSummary{
		CarID:        m.ID,
		LicensePlate: m.LicensePlate,
		Brand:        m.Brand,
		Model:        m.Model,
		Status:       entities.CarStatus(m.Status),
	}
}

type operatorModel struct {
	ID             string `gorm:"column:id;primaryKey"`
	EmployeeNumber string `gorm:"column:employee_number"`
	FirstName      string `gorm:"column:first_name"`
	LastName       string `gorm:"column:last_name"`
	IsActive       bool   `gorm:"column:is_active"`
}

func (operatorModel) TableName() string {
	return "car_operators"
}

func (m operatorModel) toSummary() entities.OperatorSummary {
	return entities.OperatorSummary{
		OperatorID:     m.ID,
		EmployeeNumber: m.EmployeeNumber,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		IsActive:       m.IsActive,
	}
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "assignment_outbox"
}
