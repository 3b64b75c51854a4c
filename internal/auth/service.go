// Package auth issues access tokens for the seeded credential set. The service
// only attributes actions; user records themselves are unauthenticated data.
package auth

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"userdir/internal/jwttoken"
	dErrors "userdir/pkg/domain-errors"
)

// Credentials maps usernames to plaintext passwords at seed time. Passwords
// are bcrypt-hashed immediately and never retained.
type Credentials map[string]string

// DefaultCredentials mirrors the demo users of the original deployment.
func DefaultCredentials() Credentials {
	return Credentials{
		"admin":    "password",
		"testuser": "testpass",
	}
}

// Service authenticates usernames against the seeded credential store and
// mints access tokens.
type Service struct {
	hashes map[string][]byte
	tokens *jwttoken.JWTService
	logger *slog.Logger
}

func NewService(creds Credentials, tokens *jwttoken.JWTService, logger *slog.Logger) (*Service, error) {
	hashes := make(map[string][]byte, len(creds))
	for username, password := range creds {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashes[username] = hash
	}
	return &Service{hashes: hashes, tokens: tokens, logger: logger}, nil
}

// TokenTTLSeconds reports the access token lifetime for login responses.
func (s *Service) TokenTTLSeconds() int {
	return int(s.tokens.TTL().Seconds())
}

// Login verifies the credentials and returns a signed access token. Unknown
// users and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	hash, ok := s.hashes[username]
	if !ok {
		// Burn a comparison anyway so missing users cost the same as wrong
		// passwords.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		s.logger.WarnContext(ctx, "login failed: unknown user", "username", username)
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		s.logger.WarnContext(ctx, "login failed: wrong password", "username", username)
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid username or password")
	}

	token, err := s.tokens.GenerateAccessToken(username)
	if err != nil {
		s.logger.ErrorContext(ctx, "token generation failed", "username", username, "error", err)
		return "", dErrors.New(dErrors.CodeInternal, "could not create access token")
	}
	s.logger.InfoContext(ctx, "user logged in", "username", username)
	return token, nil
}

var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("timing-equalizer"), bcrypt.DefaultCost)
