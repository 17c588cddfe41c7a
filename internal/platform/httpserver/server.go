package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	assignmentservice "motorpool/contexts/fleet-operations/assignment-service"
	domainerrors "motorpool/contexts/fleet-operations/assignment-service/domain/errors"
	assignmenthttp "motorpool/contexts/fleet-operations/assignment-service/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "motorpool/internal/platform/httpserver/docs"
)

type Server struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	addr        string
	assignments assignmentservice.Module
	health      func(context.Context) error
}

func New(
	assignments assignmentservice.Module,
	health func(context.Context) error,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:         http.NewServeMux(),
		logger:      logger,
		addr:        addr,
		assignments: assignments,
		health:      health,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /health", s.handleHealth)

	s.mux.HandleFunc("POST /api/v1/cars/{car_id}/assign", s.handleAssignOperator)
	s.mux.HandleFunc("POST /api/v1/cars/{car_id}/unassign", s.handleReleaseOperator)
	s.mux.HandleFunc("GET /api/v1/cars/{car_id}/assignment", s.handleGetCarAssignment)
	s.mux.HandleFunc("GET /api/v1/cars/{car_id}/assignment-history", s.handleCarHistory)
	s.mux.HandleFunc("GET /api/v1/operators/{operator_id}/assignment", s.handleGetOperatorAssignment)
	s.mux.HandleFunc("GET /api/v1/operators/{operator_id}/assignment-history", s.handleOperatorHistory)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":  "error",
				"message": "storage unavailable",
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAssignOperator(w http.ResponseWriter, r *http.Request) {
	var req assignmenthttp.AssignOperatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	carID := r.PathValue("car_id")
	resp, err := s.assignments.Handler.AssignOperatorHandler(r.Context(), carID, req)
	if err != nil {
		writeAssignmentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleReleaseOperator(w http.ResponseWriter, r *http.Request) {
	var req assignmenthttp.ReleaseOperatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	carID := r.PathValue("car_id")
	resp, err := s.assignments.Handler.ReleaseOperatorHandler(r.Context(), carID, req)
	if err != nil {
		writeAssignmentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCarAssignment(w http.ResponseWriter, r *http.Request) {
	resp, err := s.assignments.Handler.GetCarAssignmentHandler(r.Context(), r.PathValue("car_id"))
	if err != nil {
		writeAssignmentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetOperatorAssignment(w http.ResponseWriter, r *http.Request) {
	resp, err := s.assignments.Handler.GetOperatorAssignmentHandler(r.Context(), r.PathValue("operator_id"))
	if err != nil {
		writeAssignmentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCarHistory(w http.ResponseWriter, r *http.Request) {
	resp, err := s.assignments.Handler.CarHistoryHandler(r.Context(), r.PathValue("car_id"))
	if err != nil {
		writeAssignmentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleOperatorHistory(w http.ResponseWriter, r *http.Request) {
	resp, err := s.assignments.Handler.OperatorHistoryHandler(r.Context(), r.PathValue("operator_id"))
	if err != nil {
		writeAssignmentDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeAssignmentDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domainerrors.ErrCarNotFound):
		writeError(w, http.StatusNotFound, "car_not_found", err.Error())
	case errors.Is(err, domainerrors.ErrOperatorNotFound):
		writeError(w, http.StatusNotFound, "operator_not_found", err.Error())
	case errors.Is(err, domainerrors.ErrCarAlreadyAssigned):
		writeError(w, http.StatusConflict, "car_already_assigned", err.Error())
	case errors.Is(err, domainerrors.ErrOperatorAlreadyAssigned):
		writeError(w, http.StatusConflict, "operator_already_assigned", err.Error())
	case errors.Is(err, domainerrors.ErrNoActiveAssignment):
		writeError(w, http.StatusConflict, "no_active_assignment", err.Error())
	case errors.Is(err, domainerrors.ErrCarNotAssignable):
		writeError(w, http.StatusUnprocessableEntity, "car_not_assignable", err.Error())
	case errors.Is(err, domainerrors.ErrOperatorNotAssignable):
		writeError(w, http.StatusUnprocessableEntity, "operator_not_assignable", err.Error())
	case errors.Is(err, domainerrors.ErrInvalidEndDate):
		writeError(w, http.StatusBadRequest, "invalid_end_date", err.Error())
	case errors.Is(err, domainerrors.ErrStartDateTooOld):
		writeError(w, http.StatusBadRequest, "start_date_too_old", err.Error())
	case errors.Is(err, domainerrors.ErrInvalidAssignmentInput):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, assignmenthttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
