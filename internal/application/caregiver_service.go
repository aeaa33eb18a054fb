package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/patientpal/patientpal-server/internal/domain/entity"
	repo "github.com/patientpal/patientpal-server/internal/domain/repository"
	"github.com/patientpal/patientpal-server/pkg/helpers"
	"github.com/patientpal/patientpal-server/pkg/mailer"
	"github.com/patientpal/patientpal-server/pkg/rrn"
)

const esTimeout = 3 * time.Second

func caregiverCacheKey(memberID string) string {
	return "caregiver:profile:" + memberID
}

// CaregiverService orchestrates caregiver profile CRUD, match-list
// publication, profile image upload and the search index. Caregivers
// are indexed in Elasticsearch only while they are on the match list.
type CaregiverService struct {
	Members    repo.MemberRepository
	Caregivers repo.CaregiverRepository
	Redis      *redis.Client
	Logger     *logrus.Logger
	Pub        *helpers.RabbitPublisher
	ES         *elasticsearch.Client
	ESIndex    string
	GCS        *storage.Client
	GCSBucket  string
	CacheTTL   time.Duration
}

func NewCaregiverService(members repo.MemberRepository, caregivers repo.CaregiverRepository, rdb *redis.Client, logger *logrus.Logger, pub *helpers.RabbitPublisher, es *elasticsearch.Client, esIndex string, gcs *storage.Client, gcsBucket string, cacheTTL time.Duration) *CaregiverService {
	return &CaregiverService{
		Members:    members,
		Caregivers: caregivers,
		Redis:      rdb,
		Logger:     logger,
		Pub:        pub,
		ES:         es,
		ESIndex:    esIndex,
		GCS:        gcs,
		GCSBucket:  gcsBucket,
		CacheTTL:   cacheTTL,
	}
}

type CreateCaregiverInput struct {
	Name                       string
	ResidentRegistrationNumber string
	Contact                    string
	Gender                     entity.Gender
	Address                    entity.Address
	Rating                     float32
	ExperienceYears            int
	Specialization             string
	CaregiverSignificant       string
}

type UpdateCaregiverInput struct {
	Contact              string
	Address              entity.Address
	Rating               float32
	ExperienceYears      int
	Specialization       string
	CaregiverSignificant string
}

func (s *CaregiverService) CreateProfile(ctx context.Context, memberID string, in CreateCaregiverInput) (*entity.Caregiver, error) {
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
	if _, err := s.Caregivers.GetByMemberID(ctx, memberID); err == nil {
		return nil, conflict(CodeProfileAlreadyExists, "member already has a caregiver profile")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if _, err := s.Caregivers.GetByRRN(ctx, in.ResidentRegistrationNumber); err == nil {
		return nil, conflict(CodeDuplicateRRN, "resident registration number already registered")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	cg := &entity.Caregiver{
		MemberID:                   member.ID,
		Name:                       in.Name,
		ResidentRegistrationNumber: in.ResidentRegistrationNumber,
		Contact:                    in.Contact,
		Gender:                     in.Gender,
		Address:                    in.Address,
		Rating:                     in.Rating,
		ExperienceYears:            in.ExperienceYears,
		Specialization:             in.Specialization,
		CaregiverSignificant:       in.CaregiverSignificant,
	}
	if err := s.Caregivers.Create(ctx, cg); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, conflict(CodeDuplicateRRN, "resident registration number already registered")
		}
		return nil, err
	}

	s.Logger.WithFields(logrus.Fields{"member_id": member.ID, "caregiver_id": cg.ID}).Info("caregiver profile created")
	publishProfileEvent(ctx, s.Pub, s.Logger, member, mailer.TemplateProfileCreated, cg.Name)
	return cg, nil
}

func (s *CaregiverService) GetProfile(ctx context.Context, memberID string) (*entity.Caregiver, error) {
	if s.Redis != nil {
		var cached entity.Caregiver
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, caregiverCacheKey(memberID), &cached); err == nil && ok {
			return &cached, nil
		}
	}

	cg, err := s.Caregivers.GetByMemberID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFound(CodeCaregiverNotExist, "caregiver profile does not exist")
		}
		return nil, err
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, caregiverCacheKey(memberID), cg, s.CacheTTL); err != nil {
			s.Logger.WithError(err).Warn("caregiver profile cache write failed")
		}
	}
	return cg, nil
}

// UpdateProfile overwrites the mutable fields. Name, RRN and gender are
// identity fields and stay untouched. A profile that is currently on
// the match list is re-indexed so search reflects the new data.
func (s *CaregiverService) UpdateProfile(ctx context.Context, memberID string, in UpdateCaregiverInput) error {
	cg, err := s.Caregivers.GetByMemberID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(CodeCaregiverNotExist, "caregiver profile does not exist")
		}
		return err
	}

	cg.Contact = in.Contact
	cg.Address = in.Address
	cg.Rating = in.Rating
	cg.ExperienceYears = in.ExperienceYears
	cg.Specialization = in.Specialization
	cg.CaregiverSignificant = in.CaregiverSignificant

	if err := s.Caregivers.Update(ctx, cg); err != nil {
		return err
	}
	s.invalidateCache(ctx, memberID)
	if cg.IsInMatchList {
		s.indexCaregiver(ctx, cg)
	}
	return nil
}

func (s *CaregiverService) DeleteProfile(ctx context.Context, memberID string) error {
	cg, err := s.Caregivers.GetByMemberID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(CodeCaregiverNotExist, "caregiver profile does not exist")
		}
		return err
	}
	if err := s.Caregivers.Delete(ctx, cg.ID); err != nil {
		return err
	}
	s.invalidateCache(ctx, memberID)
	s.removeFromIndex(ctx, cg.ID)
	s.Logger.WithFields(logrus.Fields{"member_id": memberID, "caregiver_id": cg.ID}).Info("caregiver profile deleted")

	if member, merr := s.Members.GetByID(ctx, memberID); merr == nil {
		publishProfileEvent(ctx, s.Pub, s.Logger, member, mailer.TemplateProfileDeleted, cg.Name)
	}
	return nil
}

// RegisterToMatchList publishes the profile and indexes it for search.
// Idempotent: an already-listed profile stays listed.
func (s *CaregiverService) RegisterToMatchList(ctx context.Context, memberID string) error {
	cg, err := s.Caregivers.GetByMemberID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(CodeCaregiverNotExist, "caregiver profile does not exist")
		}
		return err
	}
	if cg.IsInMatchList {
		return nil
	}
	if err := s.Caregivers.SetMatchListed(ctx, cg.ID, true); err != nil {
		return err
	}
	cg.IsInMatchList = true
	s.invalidateCache(ctx, memberID)
	s.indexCaregiver(ctx, cg)
	return nil
}

// UnregisterFromMatchList withdraws the profile and drops it from the
// search index. Idempotent.
func (s *CaregiverService) UnregisterFromMatchList(ctx context.Context, memberID string) error {
	cg, err := s.Caregivers.GetByMemberID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound(CodeCaregiverNotExist, "caregiver profile does not exist")
		}
		return err
	}
	if !cg.IsInMatchList {
		return nil
	}
	if err := s.Caregivers.SetMatchListed(ctx, cg.ID, false); err != nil {
		return err
	}
	s.invalidateCache(ctx, memberID)
	s.removeFromIndex(ctx, cg.ID)
	return nil
}

// UploadProfileImage stores the image in GCS and records its public URL
// on the profile.
func (s *CaregiverService) UploadProfileImage(ctx context.Context, memberID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", &Error{Status: 503, Code: CodeStorageNotConfigured, Message: "image storage is not configured"}
	}
	cg, err := s.Caregivers.GetByMemberID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", notFound(CodeCaregiverNotExist, "caregiver profile does not exist")
		}
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("profiles", memberID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}

	cg.ProfileImageURL = url
	if err := s.Caregivers.Update(ctx, cg); err != nil {
		return "", err
	}
	s.invalidateCache(ctx, memberID)
	if cg.IsInMatchList {
		s.indexCaregiver(ctx, cg)
	}
	return url, nil
}

// CaregiverSearchHit is a search result projected from the index.
type CaregiverSearchHit struct {
	CaregiverID     string  `json:"caregiver_id"`
	Name            string  `json:"name"`
	Specialization  string  `json:"specialization"`
	ExperienceYears int     `json:"experience_years"`
	Rating          float32 `json:"rating"`
	Street          string  `json:"street"`
}

// Search queries published caregivers by name and specialization. With
// no index configured it returns an empty result rather than failing.
func (s *CaregiverService) Search(ctx context.Context, q string, size int) ([]CaregiverSearchHit, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []CaregiverSearchHit{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "specialization"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, esTimeout)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source CaregiverSearchHit `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]CaregiverSearchHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *CaregiverService) indexCaregiver(ctx context.Context, cg *entity.Caregiver) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := CaregiverSearchHit{
		CaregiverID:     cg.ID,
		Name:            cg.Name,
		Specialization:  cg.Specialization,
		ExperienceYears: cg.ExperienceYears,
		Rating:          cg.Rating,
		Street:          cg.Address.Street,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: cg.ID, Body: strings.NewReader(string(b)), Refresh: "false"}

	c, cancel := context.WithTimeout(ctx, esTimeout)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("caregiver_id", cg.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("caregiver_id", cg.ID).Warn("es index response error")
	}
}

func (s *CaregiverService) removeFromIndex(ctx context.Context, caregiverID string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: caregiverID}

	c, cancel := context.WithTimeout(ctx, esTimeout)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("caregiver_id", caregiverID).Warn("es delete failed")
		return
	}
	_ = res.Body.Close()
}

func (s *CaregiverService) invalidateCache(ctx context.Context, memberID string) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, caregiverCacheKey(memberID)); err != nil {
		s.Logger.WithError(err).Warn("caregiver profile cache invalidation failed")
	}
}
