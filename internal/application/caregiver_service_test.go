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

func newCaregiverService(members *memberRepoMock, caregivers *caregiverRepoMock) *CaregiverService {
	return NewCaregiverService(members, caregivers, nil, logrus.New(), nil, nil, "", nil, "", 0)
}

func TestCaregiverCreateProfile(t *testing.T) {
	members := &memberRepoMock{
		GetByIDFn: func(ctx context.Context, id string) (*entity.Member, error) {
			return memberFixture(id, entity.RoleCaregiver), nil
		},
	}
	caregivers := &caregiverRepoMock{
		GetByMemberIDFn: func(ctx context.Context, memberID string) (*entity.Caregiver, error) {
			return nil, repo.ErrNotFound
		},
		GetByRRNFn: func(ctx context.Context, rrn string) (*entity.Caregiver, error) {
			return nil, repo.ErrNotFound
		},
		CreateFn: func(ctx context.Context, cg *entity.Caregiver) error {
			cg.ID = "caregiver-1"
			return nil
		},
	}

	svc := newCaregiverService(members, caregivers)
	cg, err := svc.CreateProfile(context.Background(), "member-1", CreateCaregiverInput{
		Name:                       "Lee Seoyeon",
		ResidentRegistrationNumber: "800505-2345678",
		Contact:                    "010-9876-5432",
		Gender:                     entity.GenderFemale,
		ExperienceYears:            12,
		Specialization:             "Post-operative care",
	})

	require.NoError(t, err)
	assert.Equal(t, "caregiver-1", cg.ID)
	assert.Equal(t, entity.GenderFemale, cg.Gender)
	assert.False(t, cg.IsInMatchList)
}

func TestCaregiverCreateProfileDuplicateRRN(t *testing.T) {
	members := &memberRepoMock{
		GetByIDFn: func(ctx context.Context, id string) (*entity.Member, error) {
			return memberFixture(id, entity.RoleCaregiver), nil
		},
	}
	caregivers := &caregiverRepoMock{
		GetByMemberIDFn: func(ctx context.Context, memberID string) (*entity.Caregiver, error) {
			return nil, repo.ErrNotFound
		},
		GetByRRNFn: func(ctx context.Context, rrn string) (*entity.Caregiver, error) {
			return &entity.Caregiver{ID: "other"}, nil
		},
	}

	svc := newCaregiverService(members, caregivers)
	_, err := svc.CreateProfile(context.Background(), "member-1", CreateCaregiverInput{
		ResidentRegistrationNumber: "800505-2345678",
	})

	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, CodeDuplicateRRN, appErr.Code)
}

func TestCaregiverGetProfileNotFound(t *testing.T) {
	caregivers := &caregiverRepoMock{
		GetByMemberIDFn: func(ctx context.Context, memberID string) (*entity.Caregiver, error) {
			return nil, repo.ErrNotFound
		},
	}

	svc := newCaregiverService(&memberRepoMock{}, caregivers)
	_, err := svc.GetProfile(context.Background(), "member-1")

	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, CodeCaregiverNotExist, appErr.Code)
	assert.Equal(t, 404, appErr.Status)
}

func TestCaregiverMatchListToggleIdempotent(t *testing.T) {
	listed := false
	var setCalls int
	caregivers := &caregiverRepoMock{
		GetByMemberIDFn: func(ctx context.Context, memberID string) (*entity.Caregiver, error) {
			return &entity.Caregiver{ID: "caregiver-1", MemberID: memberID, IsInMatchList: listed}, nil
		},
		SetMatchListedFn: func(ctx context.Context, id string, l bool) error {
			setCalls++
			listed = l
			return nil
		},
	}

	svc := newCaregiverService(&memberRepoMock{}, caregivers)
	ctx := context.Background()

	require.NoError(t, svc.RegisterToMatchList(ctx, "member-1"))
	require.NoError(t, svc.RegisterToMatchList(ctx, "member-1"))
	assert.True(t, listed)
	assert.Equal(t, 1, setCalls)

	require.NoError(t, svc.UnregisterFromMatchList(ctx, "member-1"))
	require.NoError(t, svc.UnregisterFromMatchList(ctx, "member-1"))
	assert.False(t, listed)
	assert.Equal(t, 2, setCalls)
}

func TestCaregiverSearchWithoutIndex(t *testing.T) {
	svc := newCaregiverService(&memberRepoMock{}, &caregiverRepoMock{})

	hits, err := svc.Search(context.Background(), "dementia", 10)

	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestCaregiverUploadImageWithoutStorage(t *testing.T) {
	caregivers := &caregiverRepoMock{
		GetByMemberIDFn: func(ctx context.Context, memberID string) (*entity.Caregiver, error) {
			return &entity.Caregiver{ID: "caregiver-1", MemberID: memberID}, nil
		},
	}
	svc := newCaregiverService(&memberRepoMock{}, caregivers)

	_, err := svc.UploadProfileImage(context.Background(), "member-1", nil, "photo.png", "image/png")

	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, CodeStorageNotConfigured, appErr.Code)
	assert.Equal(t, 503, appErr.Status)
}
