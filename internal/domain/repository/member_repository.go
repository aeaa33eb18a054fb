package repository

import (
	"context"

	"github.com/patientpal/patientpal-server/internal/domain/entity"
)

// MemberRepository defines persistence operations for authentication
// identities.
type MemberRepository interface {
	Create(ctx context.Context, m *entity.Member) error
	GetByID(ctx context.Context, id string) (*entity.Member, error)
	GetByUsername(ctx context.Context, username string) (*entity.Member, error)
}
