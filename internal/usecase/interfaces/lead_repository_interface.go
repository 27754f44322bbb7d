package interfaces

import (
	"context"

	"clinica_xpto/internal/domain/entities"
)

// ILeadRepository abstracts DynamoDB persistence for Lead.

type ILeadRepository interface {
	Create(ctx context.Context, l entities.Lead) (entities.Lead, error)
	GetByID(ctx context.Context, id string) (entities.Lead, error)
	UpdateStatus(ctx context.Context, id string, status entities.KanbanStatus) (entities.Lead, error)
}

// IClinicSettingsRepository stores per-clinic configuration. found is false
// when the clinic never saved thresholds.

type IClinicSettingsRepository interface {
	GetLeadThresholds(ctx context.Context, clinicID string) (t entities.LeadThresholds, found bool, err error)
	SaveLeadThresholds(ctx context.Context, clinicID string, t entities.LeadThresholds) error
}
