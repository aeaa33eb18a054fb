package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/patientpal/patientpal-server/internal/domain/entity"
	"github.com/patientpal/patientpal-server/internal/domain/repository"
)

type PatientRepository struct {
	pool *pgxpool.Pool
}

func NewPatientRepository(pool *pgxpool.Pool) *PatientRepository {
	return &PatientRepository{pool: pool}
}

const patientColumns = `
	id, member_id, name, resident_registration_number,
	street, address_detail, zip,
	nok_name, nok_contact, patient_significant, care_requirements,
	is_in_match_list, created_at, updated_at
`

func (r *PatientRepository) Create(ctx context.Context, p *entity.Patient) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO patients (
			member_id, name, resident_registration_number,
			street, address_detail, zip,
			nok_name, nok_contact, patient_significant, care_requirements
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, is_in_match_list, created_at, updated_at
	`, p.MemberID, p.Name, p.ResidentRegistrationNumber,
		p.Address.Street, p.Address.Detail, p.Address.Zip,
		p.NokName, p.NokContact, p.PatientSignificant, p.CareRequirements)

	return mapErr(row.Scan(&p.ID, &p.IsInMatchList, &p.CreatedAt, &p.UpdatedAt))
}

func (r *PatientRepository) GetByMemberID(ctx context.Context, memberID string) (*entity.Patient, error) {
	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT `+patientColumns+` FROM patients WHERE member_id = $1`, memberID))
}

func (r *PatientRepository) GetByRRN(ctx context.Context, rrn string) (*entity.Patient, error) {
	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT `+patientColumns+` FROM patients WHERE resident_registration_number = $1`, rrn))
}

func (r *PatientRepository) Update(ctx context.Context, p *entity.Patient) error {
	p.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE patients
		SET street = $1, address_detail = $2, zip = $3,
		    nok_name = $4, nok_contact = $5,
		    patient_significant = $6, care_requirements = $7,
		    updated_at = $8
		WHERE id = $9
	`, p.Address.Street, p.Address.Detail, p.Address.Zip,
		p.NokName, p.NokContact, p.PatientSignificant, p.CareRequirements,
		p.UpdatedAt, p.ID)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PatientRepository) SetMatchListed(ctx context.Context, id string, listed bool) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE patients SET is_in_match_list = $1, updated_at = now() WHERE id = $2
	`, listed, id)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the patient and its matches in one transaction. The
// schema also declares ON DELETE CASCADE, but the two-step delete keeps
// the behavior explicit and portable.
func (r *PatientRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM matches WHERE patient_id = $1`, id); err != nil {
		return mapErr(err)
	}
	res, err := tx.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return tx.Commit(ctx)
}

func (r *PatientRepository) scanOne(row rowScanner) (*entity.Patient, error) {
	p := &entity.Patient{}
	if err := row.Scan(&p.ID, &p.MemberID, &p.Name, &p.ResidentRegistrationNumber,
		&p.Address.Street, &p.Address.Detail, &p.Address.Zip,
		&p.NokName, &p.NokContact, &p.PatientSignificant, &p.CareRequirements,
		&p.IsInMatchList, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return p, nil
}

var _ repository.PatientRepository = (*PatientRepository)(nil)
