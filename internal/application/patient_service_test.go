package application

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patientpal/patientpal-server/internal/domain/entity"
	repo "github.com/patientpal/patientpal-server/internal/domain/repository"
)

const validRRN = "900101-1234567"

func newPatientService(members *memberRepoMock, patients *patientRepoMock) *PatientService {
	return NewPatientService(members, patients, nil, logrus.New(), nil, 0)
}

func TestPatientCreateProfile(t *testing.T) {
	members := &memberRepoMock{
		GetByIDFn: func(ctx context.Context, id string) (*entity.Member, error) {
			return memberFixture(id, entity.RolePatient), nil
		},
	}
	patients := &patientRepoMock{
		GetByMemberIDFn: func(ctx context.Context, memberID string) (*entity.Patient, error) {
			return nil, repo.ErrNotFound
		},
		GetByRRNFn: func(ctx context.Context, rrn string) (*entity.Patient, error) {
			return nil, repo.ErrNotFound
		},
		CreateFn: func(ctx context.Context, p *entity.Patient) error {
			p.ID = "patient-1"
			return nil
		},
	}

	svc := newPatientService(members, patients)
	p, err := svc.CreateProfile(context.Background(), "member-1", CreatePatientInput{
		Name:                       "Kim Minjun",
		ResidentRegistrationNumber: validRRN,
		Address:                    entity.Address{Street: "12 Teheran-ro", Zip: "06234"},
		NokName:                    "Kim Jiwoo",
		NokContact:                 "010-1234-5678",
	})

	require.NoError(t, err)
	assert.Equal(t, "patient-1", p.ID)
	assert.Equal(t, "member-1", p.MemberID)
	assert.False(t, p.IsInMatchList)
}

func TestPatientCreateProfileMemberMissing(t *testing.T) {
	members := &memberRepoMock{
		GetByIDFn: func(ctx context.Context, id string) (*entity.Member, error) {
			return nil, repo.ErrNotFound
		},
	}

	svc := newPatientService(members, &patientRepoMock{})
	_, err := svc.CreateProfile(context.Background(), "ghost", CreatePatientInput{
		ResidentRegistrationNumber: validRRN,
	})

	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, CodeMemberNotExist, appErr.Code)
	assert.Equal(t, 404, appErr.Status)
}

func TestPatientCreateProfileInvalidRRN(t *testing.T) {
	members := &memberRepoMock{
		GetByIDFn: func(ctx context.Context, id string) (*entity.Member, error) {
			return memberFixture(id, entity.RolePatient), nil
		},
	}

	svc := newPatientService(members, &patientRepoMock{})
	_, err := svc.CreateProfile(context.Background(), "member-1", CreatePatientInput{
		ResidentRegistrationNumber: "badrrn",
	})

	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, CodeInvalidRRN, appErr.Code)
}

func TestPatientCreateProfileAlreadyExists(t *testing.T) {
	members := &memberRepoMock{
		GetByIDFn: func(ctx context.Context, id string) (*entity.Member, error) {
			return memberFixture(id, entity.RolePatient), nil
		},
	}
	patients := &patientRepoMock{
		GetByMemberIDFn: func(ctx context.Context, memberID string) (*entity.Patient, error) {
			return &entity.Patient{ID: "patient-1", MemberID: memberID}, nil
		},
	}

	svc := newPatientService(members, patients)
	_, err := svc.CreateProfile(context.Background(), "member-1", CreatePatientInput{
		ResidentRegistrationNumber: validRRN,
	})

	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, CodeProfileAlreadyExists, appErr.Code)
	assert.Equal(t, 409, appErr.Status)
}

func TestPatientCreateProfileDuplicateRRN(t *testing.T) {
	members := &memberRepoMock{
		GetByIDFn: func(ctx context.Context, id string) (*entity.Member, error) {
			return memberFixture(id, entity.RolePatient), nil
		},
	}
	patients := &patientRepoMock{
		GetByMemberIDFn: func(ctx context.Context, memberID string) (*entity.Patient, error) {
			return nil, repo.ErrNotFound
		},
		GetByRRNFn: func(ctx context.Context, rrn string) (*entity.Patient, error) {
			return &entity.Patient{ID: "other", ResidentRegistrationNumber: rrn}, nil
		},
	}

	svc := newPatientService(members, patients)
	_, err := svc.CreateProfile(context.Background(), "member-1", CreatePatientInput{
		ResidentRegistrationNumber: validRRN,
	})

	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, CodeDuplicateRRN, appErr.Code)
}

func TestPatientCreateProfileDuplicateRRNRace(t *testing.T) {
	members := &memberRepoMock{
		GetByIDFn: func(ctx context.Context, id string) (*entity.Member, error) {
			return memberFixture(id, entity.RolePatient), nil
		},
	}
	patients := &patientRepoMock{
		GetByMemberIDFn: func(ctx context.Context, memberID string) (*entity.Patient, error) {
			return nil, repo.ErrNotFound
		},
		GetByRRNFn: func(ctx context.Context, rrn string) (*entity.Patient, error) {
			return nil, repo.ErrNotFound
		},
		CreateFn: func(ctx context.Context, p *entity.Patient) error {
			return repo.ErrDuplicate
		},
	}

	svc := newPatientService(members, patients)
	_, err := svc.CreateProfile(context.Background(), "member-1", CreatePatientInput{
		ResidentRegistrationNumber: validRRN,
	})

	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, CodeDuplicateRRN, appErr.Code)
}

func TestPatientGetProfileNotFound(t *testing.T) {
	patients := &patientRepoMock{
		GetByMemberIDFn: func(ctx context.Context, memberID string) (*entity.Patient, error) {
			return nil, repo.ErrNotFound
		},
	}

	svc := newPatientService(&memberRepoMock{}, patients)
	_, err := svc.GetProfile(context.Background(), "member-1")

	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, CodePatientNotExist, appErr.Code)
	assert.Equal(t, 404, appErr.Status)
}

func TestPatientUpdateProfileKeepsIdentityFields(t *testing.T) {
	var updated *entity.Patient
	patients := &patientRepoMock{
		GetByMemberIDFn: func(ctx context.Context, memberID string) (*entity.Patient, error) {
			return &entity.Patient{
				ID:                         "patient-1",
				MemberID:                   memberID,
				Name:                       "Kim Minjun",
				ResidentRegistrationNumber: validRRN,
				NokName:                    "Old Nok",
			}, nil
		},
		UpdateFn: func(ctx context.Context, p *entity.Patient) error {
			updated = p
			return nil
		},
	}

	svc := newPatientService(&memberRepoMock{}, patients)
	err := svc.UpdateProfile(context.Background(), "member-1", UpdatePatientInput{
		Address:          entity.Address{Street: "99 New St", Zip: "12345"},
		NokName:          "New Nok",
		CareRequirements: "Night care",
	})

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Kim Minjun", updated.Name)
	assert.Equal(t, validRRN, updated.ResidentRegistrationNumber)
	assert.Equal(t, "New Nok", updated.NokName)
	assert.Equal(t, "99 New St", updated.Address.Street)
	assert.Equal(t, "Night care", updated.CareRequirements)
}

func TestPatientDeleteProfile(t *testing.T) {
	var deletedID string
	members := &memberRepoMock{
		GetByIDFn: func(ctx context.Context, id string) (*entity.Member, error) {
			return memberFixture(id, entity.RolePatient), nil
		},
	}
	patients := &patientRepoMock{
		GetByMemberIDFn: func(ctx context.Context, memberID string) (*entity.Patient, error) {
			return &entity.Patient{ID: "patient-1", MemberID: memberID}, nil
		},
		DeleteFn: func(ctx context.Context, id string) error {
			deletedID = id
			return nil
		},
	}

	svc := newPatientService(members, patients)
	require.NoError(t, svc.DeleteProfile(context.Background(), "member-1"))
	assert.Equal(t, "patient-1", deletedID)
}

func TestPatientMatchListToggle(t *testing.T) {
	listed := false
	var setCalls int
	patients := &patientRepoMock{
		GetByMemberIDFn: func(ctx context.Context, memberID string) (*entity.Patient, error) {
			return &entity.Patient{ID: "patient-1", MemberID: memberID, IsInMatchList: listed}, nil
		},
		SetMatchListedFn: func(ctx context.Context, id string, l bool) error {
			setCalls++
			listed = l
			return nil
		},
	}

	svc := newPatientService(&memberRepoMock{}, patients)
	ctx := context.Background()

	require.NoError(t, svc.RegisterToMatchList(ctx, "member-1"))
	assert.True(t, listed)
	assert.Equal(t, 1, setCalls)

	// Re-registering an already listed profile is a no-op.
	require.NoError(t, svc.RegisterToMatchList(ctx, "member-1"))
	assert.Equal(t, 1, setCalls)

	require.NoError(t, svc.UnregisterFromMatchList(ctx, "member-1"))
	assert.False(t, listed)
	assert.Equal(t, 2, setCalls)

	require.NoError(t, svc.UnregisterFromMatchList(ctx, "member-1"))
	assert.Equal(t, 2, setCalls)
}
