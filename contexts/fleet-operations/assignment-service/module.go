package assignmentservice

import (
	"log/slog"

	httpadapter "motorpool/contexts/fleet-operations/assignment-service/adapters/http"
	"motorpool/contexts/fleet-operations/assignment-service/adapters/memory"
	"motorpool/contexts/fleet-operations/assignment-service/application/commands"
	"motorpool/contexts/fleet-operations/assignment-service/application/queries"
	"motorpool/contexts/fleet-operations/assignment-service/domain/entities"
	"motorpool/contexts/fleet-operations/assignment-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Assignments ports.AssignmentRepository
	Cars        ports.CarDirectory
	Operators   ports.OperatorDirectory
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	assignOperator := commands.AssignOperatorUseCase{
		Assignments: deps.Assignments,
		Cars:        deps.Cars,
		Operators:   deps.Operators,
		Clock:       deps.Clock,
		IDGen:       deps.IDGenerator,
		Logger:      deps.Logger,
	}
	releaseCar := commands.ReleaseCarUseCase{
		Assignments: deps.Assignments,
		Cars:        deps.Cars,
		Logger:      deps.Logger,
	}

	getCarAssignment := queries.GetCarAssignmentUseCase{
		Assignments: deps.Assignments,
		Cars:        deps.Cars,
		Operators:   deps.Operators,
		Logger:      deps.Logger,
	}
	getOperatorAssignment := queries.GetOperatorAssignmentUseCase{
		Assignments: deps.Assignments,
		Cars:        deps.Cars,
		Operators:   deps.Operators,
		Logger:      deps.Logger,
	}
	carHistory := queries.CarHistoryUseCase{
		Assignments: deps.Assignments,
		Cars:        deps.Cars,
		Logger:      deps.Logger,
	}
	operatorHistory := queries.OperatorHistoryUseCase{
		Assignments: deps.Assignments,
		Operators:   deps.Operators,
		Logger:      deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			AssignOperator:        assignOperator,
			ReleaseCar:            releaseCar,
			GetCarAssignment:      getCarAssignment,
			GetOperatorAssignment: getOperatorAssignment,
			CarHistory:            carHistory,
			OperatorHistory:       operatorHistory,
			Logger:                deps.Logger,
		},
	}
}

func NewInMemoryModule(
	cars []entities.CarSummary,
	operators []entities.OperatorSummary,
	logger *slog.Logger,
) Module {
	store := memory.NewStore(cars, operators)
	module := NewModule(Dependencies{
		Assignments: store,
		Cars:        store,
		Operators:   store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
