package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/patientpal/patientpal-server/internal/domain/entity"
	repo "github.com/patientpal/patientpal-server/internal/domain/repository"
)

// MatchService creates match requests between a patient and a published
// caregiver and reads the patient's match history.
type MatchService struct {
	Patients   repo.PatientRepository
	Caregivers repo.CaregiverRepository
	Matches    repo.MatchRepository
	Logger     *logrus.Logger
}

func NewMatchService(patients repo.PatientRepository, caregivers repo.CaregiverRepository, matches repo.MatchRepository, logger *logrus.Logger) *MatchService {
	return &MatchService{Patients: patients, Caregivers: caregivers, Matches: matches, Logger: logger}
}

// RequestMatch files a PENDING match from the member's patient profile
// to the caregiver. Both profiles must be published to the match list.
func (s *MatchService) RequestMatch(ctx context.Context, memberID, caregiverID string) (*entity.Match, error) {
	p, err := s.Patients.GetByMemberID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFound(CodePatientNotExist, "patient profile does not exist")
		}
		return nil, err
	}
	if !p.IsInMatchList {
		return nil, conflict(CodeNotInMatchList, "patient profile is not registered to the match list")
	}

	caregiver, err := s.Caregivers.GetByID(ctx, caregiverID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFound(CodeCaregiverNotExist, "caregiver does not exist")
		}
		return nil, err
	}
	if !caregiver.IsInMatchList {
		return nil, conflict(CodeNotInMatchList, "caregiver is not registered to the match list")
	}

	m := &entity.Match{
		PatientID:   p.ID,
		CaregiverID: caregiver.ID,
		Status:      entity.MatchPending,
	}
	if err := s.Matches.Create(ctx, m); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{
		"patient_id":   p.ID,
		"caregiver_id": caregiver.ID,
		"match_id":     m.ID,
	}).Info("match requested")
	return m, nil
}

// ListForPatient returns the member's match history, oldest first.
func (s *MatchService) ListForPatient(ctx context.Context, memberID string) ([]entity.Match, error) {
	p, err := s.Patients.GetByMemberID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFound(CodePatientNotExist, "patient profile does not exist")
		}
		return nil, err
	}
	return s.Matches.ListByPatientID(ctx, p.ID)
}
