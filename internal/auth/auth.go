// Package auth issues and verifies the bearer tokens guarding the
// price endpoints. Credentials are static configuration entries;
// there is no user management beyond login.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"price-resolution-api/internal/config"
)

var (
	// ErrInvalidCredentials is returned when the username is unknown
	// or the password does not match its stored hash.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned for malformed, mis-signed, or
	// expired tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// Service authenticates users and signs session tokens.
type Service struct {
	secret   []byte
	tokenTTL time.Duration
	users    map[string]string
	now      func() time.Time
}

// NewService builds a Service from auth configuration.
func NewService(cfg config.AuthConfig) (*Service, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret is required")
	}

	users := make(map[string]string, len(cfg.Users))
	for _, user := range cfg.Users {
		users[user.Username] = user.PasswordHash
	}

	return &Service{
		secret:   []byte(cfg.JWTSecret),
		tokenTTL: cfg.TokenTTL,
		users:    users,
		now:      time.Now,
	}, nil
}

// Login checks the credentials and returns a signed token for the
// user. Unknown users and wrong passwords are indistinguishable to
// the caller.
func (s *Service) Login(username, password string) (string, error) {
	hash, ok := s.users[username]
	if !ok {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates a token and returns the subject username.
func (s *Service) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
