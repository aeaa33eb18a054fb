package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/patientpal/patientpal-server/internal/domain/entity"
	"github.com/patientpal/patientpal-server/internal/domain/repository"
)

type MemberRepository struct {
	pool *pgxpool.Pool
}

func NewMemberRepository(pool *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{pool: pool}
}

func (r *MemberRepository) Create(ctx context.Context, m *entity.Member) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO members (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, m.Username, m.Email, m.Password, m.Role)

	return mapErr(row.Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt))
}

func (r *MemberRepository) GetByID(ctx context.Context, id string) (*entity.Member, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `
		SELECT id, username, email, password_hash, role, created_at, updated_at
		FROM members
		WHERE id = $1
	`, id))
}

func (r *MemberRepository) GetByUsername(ctx context.Context, username string) (*entity.Member, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `
		SELECT id, username, email, password_hash, role, created_at, updated_at
		FROM members
		WHERE username = $1
	`, username))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *MemberRepository) scanOne(row rowScanner) (*entity.Member, error) {
	m := &entity.Member{}
	if err := row.Scan(&m.ID, &m.Username, &m.Email, &m.Password, &m.Role,
		&m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return m, nil
}

var _ repository.MemberRepository = (*MemberRepository)(nil)
