package repository

import (
	"context"

	"github.com/patientpal/patientpal-server/internal/domain/entity"
)

// PatientRepository defines persistence operations for patient profiles.
// Delete removes the patient together with all of its matches inside a
// single transaction.
type PatientRepository interface {
	Create(ctx context.Context, p *entity.Patient) error
	GetByMemberID(ctx context.Context, memberID string) (*entity.Patient, error)
	GetByRRN(ctx context.Context, rrn string) (*entity.Patient, error)
	Update(ctx context.Context, p *entity.Patient) error
	SetMatchListed(ctx context.Context, id string, listed bool) error
	Delete(ctx context.Context, id string) error
}
