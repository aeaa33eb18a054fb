package repository

import (
	"context"

	"github.com/patientpal/patientpal-server/internal/domain/entity"
)

// MatchRepository defines persistence operations for match associations.
// Match rows are removed by PatientRepository.Delete when their owning
// patient goes away.
type MatchRepository interface {
	Create(ctx context.Context, m *entity.Match) error
	ListByPatientID(ctx context.Context, patientID string) ([]entity.Match, error)
}
