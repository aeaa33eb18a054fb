package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/patientpal/patientpal-server/internal/domain/entity"
	"github.com/patientpal/patientpal-server/internal/domain/repository"
)

type MatchRepository struct {
	pool *pgxpool.Pool
}

func NewMatchRepository(pool *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{pool: pool}
}

func (r *MatchRepository) Create(ctx context.Context, m *entity.Match) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO matches (patient_id, caregiver_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, m.PatientID, m.CaregiverID, m.Status)

	return mapErr(row.Scan(&m.ID, &m.CreatedAt))
}

func (r *MatchRepository) ListByPatientID(ctx context.Context, patientID string) ([]entity.Match, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, patient_id, caregiver_id, status, created_at
		FROM matches
		WHERE patient_id = $1
		ORDER BY created_at
	`, patientID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []entity.Match
	for rows.Next() {
		var m entity.Match
		if err := rows.Scan(&m.ID, &m.PatientID, &m.CaregiverID, &m.Status, &m.CreatedAt); err != nil {
			return nil, mapErr(err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

var _ repository.MatchRepository = (*MatchRepository)(nil)
