package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/patientpal/patientpal-server/internal/domain/entity"
	repo "github.com/patientpal/patientpal-server/internal/domain/repository"
	"github.com/patientpal/patientpal-server/pkg/helpers"
	"github.com/patientpal/patientpal-server/pkg/mailer"
)

const sessionTTL = 24 * time.Hour

func sessionKey(memberID string) string {
	return "member:session:" + memberID
}

// AuthService resolves the authenticated principal the profile services
// consume: signup, login with a jwt cookie pair, session-backed refresh
// and logout.
type AuthService struct {
	Members repo.MemberRepository
	JWT     *helpers.JWTManager
	Redis   *redis.Client
	Logger  *logrus.Logger
	Pub     *helpers.RabbitPublisher
}

func NewAuthService(members repo.MemberRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, pub *helpers.RabbitPublisher) *AuthService {
	return &AuthService{Members: members, JWT: jwt, Redis: rdb, Logger: logger, Pub: pub}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func (s *AuthService) Signup(ctx context.Context, username, email, password string, role entity.Role) (*entity.Member, error) {
	if _, err := s.Members.GetByUsername(ctx, username); err == nil {
		return nil, conflict(CodeUsernameTaken, "username already exists")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	m := &entity.Member{
		Username: username,
		Email:    email,
		Password: hash,
		Role:     role,
	}
	if err := s.Members.Create(ctx, m); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, conflict(CodeUsernameTaken, "username already exists")
		}
		return nil, err
	}

	s.Logger.WithFields(logrus.Fields{"member_id": m.ID, "role": m.Role}).Info("member signed up")
	publishProfileEvent(ctx, s.Pub, s.Logger, m, mailer.TemplateWelcome, m.Username)
	return m, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*entity.Member, TokenPair, error) {
	m, err := s.Members.GetByUsername(ctx, username)
	if err != nil {
		return nil, TokenPair{}, unauthorized(CodeInvalidCredentials, "invalid credentials")
	}
	if !helpers.CompareHashAndPassword(m.Password, password) {
		return nil, TokenPair{}, unauthorized(CodeInvalidCredentials, "invalid credentials")
	}
	pair, err := s.issueTokens(ctx, m)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return m, pair, nil
}

// Refresh validates the refresh token against the active session and
// rotates both the session id and the token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*entity.Member, TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, TokenPair{}, unauthorized(CodeInvalidCredentials, "invalid refresh token")
	}
	m, err := s.Members.GetByID(ctx, claims.MemberID)
	if err != nil {
		return nil, TokenPair{}, unauthorized(CodeInvalidCredentials, "invalid refresh token")
	}
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, sessionKey(m.ID)).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return nil, TokenPair{}, unauthorized(CodeInvalidCredentials, "session expired")
		}
	}
	pair, err := s.issueTokens(ctx, m)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return m, pair, nil
}

func (s *AuthService) Logout(ctx context.Context, memberID string) {
	if s.Redis == nil || memberID == "" {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, sessionKey(memberID)); err != nil {
		s.Logger.WithError(err).WithField("member_id", memberID).Warn("session delete failed")
	}
}

func (s *AuthService) issueTokens(ctx context.Context, m *entity.Member) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(m.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(m.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := sessionKey(m.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"member_id":  m.ID,
			"username":   m.Username,
			"role":       string(m.Role),
			"sid":        sid,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		})
		pipe.Expire(ctx, key, sessionTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}
