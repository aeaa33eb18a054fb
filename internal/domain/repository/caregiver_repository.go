package repository

import (
	"context"

	"github.com/patientpal/patientpal-server/internal/domain/entity"
)

// CaregiverRepository defines persistence operations for caregiver
// profiles.
type CaregiverRepository interface {
	Create(ctx context.Context, cg *entity.Caregiver) error
	GetByID(ctx context.Context, id string) (*entity.Caregiver, error)
	GetByMemberID(ctx context.Context, memberID string) (*entity.Caregiver, error)
	GetByRRN(ctx context.Context, rrn string) (*entity.Caregiver, error)
	Update(ctx context.Context, cg *entity.Caregiver) error
	SetMatchListed(ctx context.Context, id string, listed bool) error
	Delete(ctx context.Context, id string) error
}
