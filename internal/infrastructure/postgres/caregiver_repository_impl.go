package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/patientpal/patientpal-server/internal/domain/entity"
	"github.com/patientpal/patientpal-server/internal/domain/repository"
)

type CaregiverRepository struct {
	pool *pgxpool.Pool
}

func NewCaregiverRepository(pool *pgxpool.Pool) *CaregiverRepository {
	return &CaregiverRepository{pool: pool}
}

const caregiverColumns = `
	id, member_id, name, resident_registration_number, contact, gender,
	street, address_detail, zip,
	rating, experience_years, specialization, caregiver_significant,
	profile_image_url, is_in_match_list, created_at, updated_at
`

func (r *CaregiverRepository) Create(ctx context.Context, cg *entity.Caregiver) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO caregivers (
			member_id, name, resident_registration_number, contact, gender,
			street, address_detail, zip,
			rating, experience_years, specialization, caregiver_significant
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, profile_image_url, is_in_match_list, created_at, updated_at
	`, cg.MemberID, cg.Name, cg.ResidentRegistrationNumber, cg.Contact, cg.Gender,
		cg.Address.Street, cg.Address.Detail, cg.Address.Zip,
		cg.Rating, cg.ExperienceYears, cg.Specialization, cg.CaregiverSignificant)

	return mapErr(row.Scan(&cg.ID, &cg.ProfileImageURL, &cg.IsInMatchList, &cg.CreatedAt, &cg.UpdatedAt))
}

func (r *CaregiverRepository) GetByID(ctx context.Context, id string) (*entity.Caregiver, error) {
	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT `+caregiverColumns+` FROM caregivers WHERE id = $1`, id))
}

func (r *CaregiverRepository) GetByMemberID(ctx context.Context, memberID string) (*entity.Caregiver, error) {
	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT `+caregiverColumns+` FROM caregivers WHERE member_id = $1`, memberID))
}

func (r *CaregiverRepository) GetByRRN(ctx context.Context, rrn string) (*entity.Caregiver, error) {
	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT `+caregiverColumns+` FROM caregivers WHERE resident_registration_number = $1`, rrn))
}

func (r *CaregiverRepository) Update(ctx context.Context, cg *entity.Caregiver) error {
	cg.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE caregivers
		SET contact = $1, street = $2, address_detail = $3, zip = $4,
		    rating = $5, experience_years = $6, specialization = $7,
		    caregiver_significant = $8, profile_image_url = $9,
		    updated_at = $10
		WHERE id = $11
	`, cg.Contact, cg.Address.Street, cg.Address.Detail, cg.Address.Zip,
		cg.Rating, cg.ExperienceYears, cg.Specialization,
		cg.CaregiverSignificant, cg.ProfileImageURL,
		cg.UpdatedAt, cg.ID)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CaregiverRepository) SetMatchListed(ctx context.Context, id string, listed bool) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE caregivers SET is_in_match_list = $1, updated_at = now() WHERE id = $2
	`, listed, id)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CaregiverRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM caregivers WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CaregiverRepository) scanOne(row rowScanner) (*entity.Caregiver, error) {
	cg := &entity.Caregiver{}
	if err := row.Scan(&cg.ID, &cg.MemberID, &cg.Name, &cg.ResidentRegistrationNumber,
		&cg.Contact, &cg.Gender,
		&cg.Address.Street, &cg.Address.Detail, &cg.Address.Zip,
		&cg.Rating, &cg.ExperienceYears, &cg.Specialization, &cg.CaregiverSignificant,
		&cg.ProfileImageURL, &cg.IsInMatchList, &cg.CreatedAt, &cg.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return cg, nil
}

var _ repository.CaregiverRepository = (*CaregiverRepository)(nil)
