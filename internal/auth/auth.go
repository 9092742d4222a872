// Package auth verifies the dashboard's shared password and issues the
// session tokens stored in the login cookie.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/cashflow-dashboard/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	// CookieName is the session cookie set on login
	CookieName = "vdcoder_token"

	subject = "dashboard"
	issuer  = "cashflow-dashboard"
)

// Authenticator checks the shared password and signs session tokens
type Authenticator struct {
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
}

// NewAuthenticator builds an authenticator from a bcrypt hash of the shared
// password. When hash is empty the plaintext password is hashed instead.
func NewAuthenticator(hash, password, secret string, ttl time.Duration) (*Authenticator, error) {
	if hash == "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		hash = string(hashed)
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid password hash: %w", err)
	}
	return &Authenticator{
		passwordHash: []byte(hash),
		secret:       []byte(secret),
		ttl:          ttl,
		now:          time.Now,
	}, nil
}

// TTL is how long an issued session stays valid
func (a *Authenticator) TTL() time.Duration {
	return a.ttl
}

// Verify checks a password against the shared one
func (a *Authenticator) Verify(password string) error {
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		return models.ErrInvalidCredentials
	}
	return nil
}

// IssueToken signs a new session token
func (a *Authenticator) IssueToken() (string, error) {
	now := a.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
	})
	tokenString, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ParseToken validates a session token and returns its ID
func (a *Authenticator) ParseToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithSubject(subject),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return "", errors.Join(models.ErrUnauthorized, err)
	}
	return claims.ID, nil
}
