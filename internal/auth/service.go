package auth

import (
	"context"
	"strings"
	"time"

	"github.com/cmbeauty/storefront-backend/internal/users"
	pkgauth "github.com/cmbeauty/storefront-backend/pkg/auth"
	"github.com/cmbeauty/storefront-backend/pkg/auth/session"
	"github.com/cmbeauty/storefront-backend/pkg/config"
	pkgerrors "github.com/cmbeauty/storefront-backend/pkg/errors"
	"github.com/cmbeauty/storefront-backend/pkg/logger"
	"github.com/google/uuid"
)

// sessionRegistry is the session manager surface the login flow needs.
type sessionRegistry interface {
	Register(ctx context.Context, accessID string, userID uuid.UUID) error
	Revoke(ctx context.Context, accessID string) error
}

// LoginResult pairs the signed access token with the authenticated profile.
type LoginResult struct {
	Token string         `json:"token"`
	User  *users.Profile `json:"user"`
}

// Service signs shoppers in and out.
type Service interface {
	Login(ctx context.Context, login, password string) (*LoginResult, error)
	Logout(ctx context.Context, accessID string) error
}

type service struct {
	users    users.Service
	sessions sessionRegistry
	jwt      config.JWTConfig
	now      func() time.Time
	logg     *logger.Logger
}

func NewService(userSvc users.Service, sessions sessionRegistry, jwt config.JWTConfig, logg *logger.Logger) Service {
	return &service{
		users:    userSvc,
		sessions: sessions,
		jwt:      jwt,
		now:      time.Now,
		logg:     logg,
	}
}

// Login verifies credentials, mints a JWT, and records its jti as an active
// session. The token is only valid while the session entry lives.
func (s *service) Login(ctx context.Context, login, password string) (*LoginResult, error) {
	profile, err := s.users.Authenticate(ctx, login, password)
	if err != nil {
		return nil, err
	}

	accessID := session.NewAccessID()
	token, err := pkgauth.MintAccessToken(s.jwt, s.now(), pkgauth.AccessTokenPayload{
		UserID:   profile.ID,
		Username: profile.Username,
		JTI:      accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	if err := s.sessions.Register(ctx, accessID, profile.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "registering session")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithUserID(ctx, profile.ID.String()), "shopper signed in")
	}
	return &LoginResult{Token: token, User: profile}, nil
}

// Logout revokes the session for the provided access id. Revoking an already
// absent session is not an error.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "access id is required")
	}
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoking session")
	}
	return nil
}
