package interfaces

import (
	"context"

	"clinica_xpto/internal/domain/entities"
)

// IBudgetRepository abstracts DynamoDB persistence for Budget.
//
// Lookups return a zero Budget (empty ID) when nothing matches; Update and
// UpdateStatus do the same when the budget does not exist.

type IBudgetRepository interface {
	Create(ctx context.Context, b entities.Budget) (entities.Budget, error)
	GetByID(ctx context.Context, id string) (entities.Budget, error)
	ListByPatientID(ctx context.Context, patientID string) ([]entities.Budget, error)
	Update(ctx context.Context, b entities.Budget) (entities.Budget, error)
	UpdateStatus(ctx context.Context, id string, status entities.BudgetStatus) (entities.Budget, error)
}
