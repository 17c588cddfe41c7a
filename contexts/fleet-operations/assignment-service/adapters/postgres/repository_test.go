package postgresadapter

import (
	"errors"
	"testing"

	domainerrors "motorpool/contexts/fleet-operations/assignment-service/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestConflictFromUniqueViolation(t *testing.T) {
	carErr := &pgconn.PgError{Code: "23505", ConstraintName: uniqueActiveCarIndex}
	conflict, ok := conflictFromUniqueViolation(carErr)
	if !ok || !errors.Is(conflict, domainerrors.ErrCarAlreadyAssigned) {
		t.Fatalf("expected car conflict, got %v (ok=%v)", conflict, ok)
	}

	operatorErr := &pgconn.PgError{Code: "23505", ConstraintName: uniqueActiveOperatorIndex}
	conflict, ok = conflictFromUniqueViolation(operatorErr)
	if !ok || !errors.Is(conflict, domainerrors.ErrOperatorAlreadyAssigned) {
		t.Fatalf("expected operator conflict, got %v (ok=%v)", conflict, ok)
	}

	if _, ok := conflictFromUniqueViolation(&pgconn.PgError{Code: "23503"}); ok {
		t.Fatalf("foreign key violations must not map to assignment conflicts")
	}
	if _, ok := conflictFromUniqueViolation(errors.New("connection reset")); ok {
		t.Fatalf("plain errors must not map to assignment conflicts")
	}
}
