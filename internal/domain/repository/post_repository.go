package repository

import (
	"context"

	"github.com/patientpal/patientpal-server/internal/domain/entity"
)

// PostRepository defines persistence operations for notice-board posts.
type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	List(ctx context.Context) ([]entity.Post, error)
	ListByType(ctx context.Context, t entity.PostType) ([]entity.Post, error)
	Update(ctx context.Context, p *entity.Post) error
	Delete(ctx context.Context, id string) error
}
