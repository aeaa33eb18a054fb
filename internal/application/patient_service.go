package application

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/patientpal/patientpal-server/internal/domain/entity"
	repo "github.com/patientpal/patientpal-server/internal/domain/repository"
	"github.com/patientpal/patientpal-server/pkg/helpers"
	"github.com/patientpal/patientpal-server/pkg/mailer"
	"github.com/patientpal/patientpal-server/pkg/rrn"
)

func patientCacheKey(memberID string) string {
	return "patient:profile:" + memberID
}

// PatientService orchestrates patient profile CRUD and match-list
// registration. Each method performs at most one read-modify-write
// sequence; atomicity comes from the repository's transaction boundary.
type PatientService struct {
	Members  repo.MemberRepository
	Patients repo.PatientRepository
	Redis    *redis.Client
	Logger   *logrus.Logger
	Pub      *helpers.RabbitPublisher
	CacheTTL time.Duration
}

func NewPatientService(members repo.MemberRepository, patients repo.PatientRepository, rdb *redis.Client, logger *logrus.Logger, pub *helpers.RabbitPublisher, cacheTTL time.Duration) *PatientService {
	return &PatientService{
		Members:  members,
		Patients: patients,
		Redis:    rdb,
		Logger:   logger,
		Pub:      pub,
		CacheTTL: cacheTTL,
	}
}

type CreatePatientInput struct {
	Name                       string
	ResidentRegistrationNumber string
	Address                    entity.Address
	NokName                    string
	NokContact                 string
	PatientSignificant         string
	CareRequirements           string
}

type UpdatePatientInput struct {
	Address            entity.Address
	NokName            string
	NokContact         string
	PatientSignificant string
	CareRequirements   string
}

// CreateProfile persists a new patient linked to the member behind
// memberID. It fails with a conflict when the member already has a
// profile or the RRN is in use.
func (s *PatientService) CreateProfile(ctx context.Context, memberID string, in CreatePatientInput) (*entity.Patient, error) {
	member, err := s.Members.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFound(CodeMemberNotExist, "member does not exist")
		}
		return nil, err
	}
	if err := rrn.Validate(in.ResidentRegistrationNumber); err != nil {
		return nil, badRequest(CodeInvalidRRN, "malformed resident registration number")
	}
	if _, err := s.Patients.GetByMemberID(ctx, memberID); err == nil {
		return nil, conflict(CodeProfileAlreadyExists, "member already has a patient profile")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if _, err := s.Patients.GetByRRN(ctx, in.ResidentRegistrationNumber); err == nil {
		return nil, conflict(CodeDuplicateRRN, "resident registration number already registered")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	p := &entity.Patient{
		MemberID:                   member.ID,
		Name:                       in.Name,
		ResidentRegistrationNumber: in.ResidentRegistrationNumber,
		Address:                    in.Address,
		NokName:                    in.NokName,
		NokContact:                 in.NokContact,
		PatientSignificant:         in.PatientSignificant,
		CareRequirements:           in.CareRequirements,
	}
	if err := s.Patients.Create(ctx, p); err != nil {
		// Unique index is the backstop for the race between the
		// pre-checks above and the insert.
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, conflict(CodeDuplicateRRN, "resident registration number already registered")
		}
		return nil, err
	}

	s.Logger.WithFields(logrus.Fields{"member_id": member.ID, "patient_id": p.ID}).Info("patient profile created")
	publishProfileEvent(ctx, s.Pub, s.Logger, member, mailer.TemplateProfileCreated, p.Name)
	return p, nil
}

// GetProfile loads the patient profile for the member, consulting the
// Redis cache first.
func (s *PatientService) GetProfile(ctx context.Context, memberID string) (*entity.Patient, error) {
	if s.Redis != nil {
		var cached entity.Patient
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, patientCacheKey(memberID), &cached); err == nil && ok {
			return &cached, nil
		}
	}

	p, err := s.Patients.GetByMemberID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFound(CodePatientNotExist, "patient profile does not exist")
		}
		return nil, err
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, patientCacheKey(memberID), p, s.CacheTTL); err != nil {
			s.Logger.WithError(err).Warn("patient profile cache write failed")
		}
	}
	return p, nil
}

// UpdateProfile overwrites the mutable detail fields in place. Identity
// fields (name, RRN, owning member) never change.
func (s *PatientService) UpdateProfile(ctx context.Context, memberID string, in UpdatePatientInput) error {
	p, err := s.Patients.GetByMemberID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(CodePatientNotExist, "patient profile does not exist")
		}
		return err
	}

	p.Address = in.Address
	p.NokName = in.NokName
	p.NokContact = in.NokContact
	p.PatientSignificant = in.PatientSignificant
	p.CareRequirements = in.CareRequirements

	if err := s.Patients.Update(ctx, p); err != nil {
		return err
	}
	s.invalidateCache(ctx, memberID)
	return nil
}

// DeleteProfile deletes the patient; the repository removes its matches
// in the same transaction.
func (s *PatientService) DeleteProfile(ctx context.Context, memberID string) error {
	p, err := s.Patients.GetByMemberID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(CodePatientNotExist, "patient profile does not exist")
		}
		return err
	}
	if err := s.Patients.Delete(ctx, p.ID); err != nil {
		return err
	}
	s.invalidateCache(ctx, memberID)
	s.Logger.WithFields(logrus.Fields{"member_id": memberID, "patient_id": p.ID}).Info("patient profile deleted")

	if member, merr := s.Members.GetByID(ctx, memberID); merr == nil {
		publishProfileEvent(ctx, s.Pub, s.Logger, member, mailer.TemplateProfileDeleted, p.Name)
	}
	return nil
}

// RegisterToMatchList publishes the profile to the matching subsystem.
// Registering an already-listed profile is a no-op.
func (s *PatientService) RegisterToMatchList(ctx context.Context, memberID string) error {
	return s.setMatchListed(ctx, memberID, true)
}

// UnregisterFromMatchList withdraws the profile from the matching
// subsystem. Unregistering an unlisted profile is a no-op.
func (s *PatientService) UnregisterFromMatchList(ctx context.Context, memberID string) error {
	return s.setMatchListed(ctx, memberID, false)
}

func (s *PatientService) setMatchListed(ctx context.Context, memberID string, listed bool) error {
	p, err := s.Patients.GetByMemberID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(CodePatientNotExist, "patient profile does not exist")
		}
		return err
	}
	if p.IsInMatchList == listed {
		return nil
	}
	if err := s.Patients.SetMatchListed(ctx, p.ID, listed); err != nil {
		return err
	}
	s.invalidateCache(ctx, memberID)
	return nil
}

func (s *PatientService) invalidateCache(ctx context.Context, memberID string) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, patientCacheKey(memberID)); err != nil {
		s.Logger.WithError(err).Warn("patient profile cache invalidation failed")
	}
}
