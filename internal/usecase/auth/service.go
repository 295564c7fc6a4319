// Package auth authenticates editorial accounts and issues session tokens.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"magazine-backoffice/internal/domain/entity"
	"magazine-backoffice/internal/repository"
)

// Service exchanges login credentials for a signed JWT. Unknown logins, bad
// passwords, removed accounts and unconfirmed logins all fail with the same
// Forbidden error so the caller cannot probe which part was wrong.
type Service struct {
	Users  *repository.UserRepository
	Logger *slog.Logger

	// Secret signs tokens with HS256.
	Secret []byte

	// TokenTTL bounds session lifetime.
	TokenTTL time.Duration

	// Now is the clock, overridable in tests.
	Now func() time.Time
}

// NewService builds the authentication service.
func NewService(users *repository.UserRepository, logger *slog.Logger, secret []byte, tokenTTL time.Duration) *Service {
	return &Service{
		Users:    users,
		Logger:   logger,
		Secret:   secret,
		TokenTTL: tokenTTL,
		Now:      time.Now,
	}
}

// errInvalidCredentials is the uniform failure for every login problem.
func errInvalidCredentials() error {
	return entity.Forbiddenf("invalid credentials")
}

// Login checks the credentials and returns a signed session token carrying
// the user id and role.
func (s *Service) Login(ctx context.Context, login, password string) (string, error) {
	if login == "" || password == "" {
		return "", entity.Validationf("login and password must not be empty")
	}
	user, err := s.Users.GetByLogin(ctx, login)
	if err != nil {
		if entity.KindOf(err) == entity.KindNotFound {
			return "", errInvalidCredentials()
		}
		return "", fmt.Errorf("load user by login: %w", err)
	}
	if user.Removed() || !user.Verified() || !user.CheckPassword(password) {
		s.Logger.WarnContext(ctx, "authentication failed", slog.Int64("user_id", user.ID()))
		return "", errInvalidCredentials()
	}

	now := s.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  strconv.FormatInt(user.ID(), 10),
		"role": user.Role(),
		"iat":  now.Unix(),
		"exp":  now.Add(s.TokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	s.Logger.InfoContext(ctx, "authentication successful", slog.Int64("user_id", user.ID()))
	return signed, nil
}

// Verify parses a session token and returns the user id and role it carries.
// Expired or tampered tokens fail with Forbidden.
func (s *Service) Verify(tokenString string) (userID, role int64, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.Secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.Now() }))
	if err != nil || !token.Valid {
		return 0, 0, entity.Forbiddenf("invalid session token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, 0, entity.Forbiddenf("invalid session token")
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return 0, 0, entity.Forbiddenf("invalid session token")
	}
	userID, err = strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, 0, entity.Forbiddenf("invalid session token")
	}
	if r, ok := claims["role"].(float64); ok {
		role = int64(r)
	}
	return userID, role, nil
}
