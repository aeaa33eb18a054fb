package application

import (
	"context"

	"github.com/patientpal/patientpal-server/internal/domain/entity"
	repo "github.com/patientpal/patientpal-server/internal/domain/repository"
)

// Function-field mocks so each test only stubs the calls it expects.

type memberRepoMock struct {
	CreateFn        func(ctx context.Context, m *entity.Member) error
	GetByIDFn       func(ctx context.Context, id string) (*entity.Member, error)
	GetByUsernameFn func(ctx context.Context, username string) (*entity.Member, error)
}

func (m *memberRepoMock) Create(ctx context.Context, mm *entity.Member) error {
	return m.CreateFn(ctx, mm)
}

func (m *memberRepoMock) GetByID(ctx context.Context, id string) (*entity.Member, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *memberRepoMock) GetByUsername(ctx context.Context, username string) (*entity.Member, error) {
	return m.GetByUsernameFn(ctx, username)
}

type patientRepoMock struct {
	CreateFn         func(ctx context.Context, p *entity.Patient) error
	GetByMemberIDFn  func(ctx context.Context, memberID string) (*entity.Patient, error)
	GetByRRNFn       func(ctx context.Context, rrn string) (*entity.Patient, error)
	UpdateFn         func(ctx context.Context, p *entity.Patient) error
	SetMatchListedFn func(ctx context.Context, id string, listed bool) error
	DeleteFn         func(ctx context.Context, id string) error
}

func (m *patientRepoMock) Create(ctx context.Context, p *entity.Patient) error {
	return m.CreateFn(ctx, p)
}

func (m *patientRepoMock) GetByMemberID(ctx context.Context, memberID string) (*entity.Patient, error) {
	return m.GetByMemberIDFn(ctx, memberID)
}

func (m *patientRepoMock) GetByRRN(ctx context.Context, rrn string) (*entity.Patient, error) {
	return m.GetByRRNFn(ctx, rrn)
}

func (m *patientRepoMock) Update(ctx context.Context, p *entity.Patient) error {
	return m.UpdateFn(ctx, p)
}

func (m *patientRepoMock) SetMatchListed(ctx context.Context, id string, listed bool) error {
	return m.SetMatchListedFn(ctx, id, listed)
}

func (m *patientRepoMock) Delete(ctx context.Context, id string) error {
	return m.DeleteFn(ctx, id)
}

type caregiverRepoMock struct {
	CreateFn         func(ctx context.Context, cg *entity.Caregiver) error
	GetByIDFn        func(ctx context.Context, id string) (*entity.Caregiver, error)
	GetByMemberIDFn  func(ctx context.Context, memberID string) (*entity.Caregiver, error)
	GetByRRNFn       func(ctx context.Context, rrn string) (*entity.Caregiver, error)
	UpdateFn         func(ctx context.Context, cg *entity.Caregiver) error
	SetMatchListedFn func(ctx context.Context, id string, listed bool) error
	DeleteFn         func(ctx context.Context, id string) error
}

func (m *caregiverRepoMock) Create(ctx context.Context, cg *entity.Caregiver) error {
	return m.CreateFn(ctx, cg)
}

func (m *caregiverRepoMock) GetByID(ctx context.Context, id string) (*entity.Caregiver, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *caregiverRepoMock) GetByMemberID(ctx context.Context, memberID string) (*entity.Caregiver, error) {
	return m.GetByMemberIDFn(ctx, memberID)
}

func (m *caregiverRepoMock) GetByRRN(ctx context.Context, rrn string) (*entity.Caregiver, error) {
	return m.GetByRRNFn(ctx, rrn)
}

func (m *caregiverRepoMock) Update(ctx context.Context, cg *entity.Caregiver) error {
	return m.UpdateFn(ctx, cg)
}

func (m *caregiverRepoMock) SetMatchListed(ctx context.Context, id string, listed bool) error {
	return m.SetMatchListedFn(ctx, id, listed)
}

func (m *caregiverRepoMock) Delete(ctx context.Context, id string) error {
	return m.DeleteFn(ctx, id)
}

type matchRepoMock struct {
	CreateFn          func(ctx context.Context, m *entity.Match) error
	ListByPatientIDFn func(ctx context.Context, patientID string) ([]entity.Match, error)
}

func (m *matchRepoMock) Create(ctx context.Context, mm *entity.Match) error {
	return m.CreateFn(ctx, mm)
}

func (m *matchRepoMock) ListByPatientID(ctx context.Context, patientID string) ([]entity.Match, error) {
	return m.ListByPatientIDFn(ctx, patientID)
}

type postRepoMock struct {
	CreateFn     func(ctx context.Context, p *entity.Post) error
	GetByIDFn    func(ctx context.Context, id string) (*entity.Post, error)
	ListFn       func(ctx context.Context) ([]entity.Post, error)
	ListByTypeFn func(ctx context.Context, t entity.PostType) ([]entity.Post, error)
	UpdateFn     func(ctx context.Context, p *entity.Post) error
	DeleteFn     func(ctx context.Context, id string) error
}

func (m *postRepoMock) Create(ctx context.Context, p *entity.Post) error {
	return m.CreateFn(ctx, p)
}

func (m *postRepoMock) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *postRepoMock) List(ctx context.Context) ([]entity.Post, error) {
	return m.ListFn(ctx)
}

func (m *postRepoMock) ListByType(ctx context.Context, t entity.PostType) ([]entity.Post, error) {
	return m.ListByTypeFn(ctx, t)
}

func (m *postRepoMock) Update(ctx context.Context, p *entity.Post) error {
	return m.UpdateFn(ctx, p)
}

func (m *postRepoMock) Delete(ctx context.Context, id string) error {
	return m.DeleteFn(ctx, id)
}

var (
	_ repo.MemberRepository    = (*memberRepoMock)(nil)
	_ repo.PatientRepository   = (*patientRepoMock)(nil)
	_ repo.CaregiverRepository = (*caregiverRepoMock)(nil)
	_ repo.MatchRepository     = (*matchRepoMock)(nil)
	_ repo.PostRepository      = (*postRepoMock)(nil)
)

func memberFixture(id string, role entity.Role) *entity.Member {
	return &entity.Member{ID: id, Username: "user-" + id, Email: "user@example.com", Role: role}
}
