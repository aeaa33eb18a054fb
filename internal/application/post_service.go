package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/patientpal/patientpal-server/internal/domain/entity"
	repo "github.com/patientpal/patientpal-server/internal/domain/repository"
)

// PostService is plain CRUD over notice-board posts.
type PostService struct {
	Posts  repo.PostRepository
	Logger *logrus.Logger
}

func NewPostService(posts repo.PostRepository, logger *logrus.Logger) *PostService {
	return &PostService{Posts: posts, Logger: logger}
}

func (s *PostService) GetPosts(ctx context.Context) ([]entity.Post, error) {
	return s.Posts.List(ctx)
}

func (s *PostService) GetNotices(ctx context.Context) ([]entity.Post, error) {
	return s.Posts.ListByType(ctx, entity.PostNotice)
}

func (s *PostService) GetPost(ctx context.Context, id string) (*entity.Post, error) {
	p, err := s.Posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFound(CodePostNotFound, "post does not exist")
		}
		return nil, err
	}
	return p, nil
}

func (s *PostService) CreatePost(ctx context.Context, title, content string) (*entity.Post, error) {
	p := &entity.Post{
		Title:    title,
		Content:  content,
		PostType: entity.PostNotice,
	}
	if err := s.Posts.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdatePost overwrites title and content only.
func (s *PostService) UpdatePost(ctx context.Context, id, title, content string) (*entity.Post, error) {
	p, err := s.Posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFound(CodePostNotFound, "post does not exist")
		}
		return nil, err
	}
	p.Title = title
	p.Content = content
	if err := s.Posts.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeletePost removes the post by id. Deleting an absent post is a
// no-op, mirroring delete-by-id semantics at the store.
func (s *PostService) DeletePost(ctx context.Context, id string) error {
	return s.Posts.Delete(ctx, id)
}
