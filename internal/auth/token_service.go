package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// SessionTokenExpiry is the lifetime of a signin session.
	SessionTokenExpiry = 24 * time.Hour
	// ActivationTokenExpiry bounds how long an emailed activation link works.
	ActivationTokenExpiry = 10 * time.Minute
	// ResetTokenExpiry bounds how long an emailed password-reset link works.
	ResetTokenExpiry = 10 * time.Minute
)

// ErrInvalidToken is returned when a token fails verification for its purpose.
var ErrInvalidToken = errors.New("invalid or expired token")

// SessionClaims identifies an authenticated user.
type SessionClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// ActivationClaims carries the pending signup. No user row exists until the
// token is redeemed; the submitted fields live entirely in the token.
type ActivationClaims struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	jwt.RegisteredClaims
}

// ResetClaims identifies the user whose password may be overwritten.
type ResetClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies the three token families. Each purpose has
// its own secret, so an activation token can never pass as a session token.
type TokenService struct {
	sessionSecret    []byte
	activationSecret []byte
	resetSecret      []byte
}

// NewTokenService creates a token service from the three purpose secrets.
func NewTokenService(sessionSecret, activationSecret, resetSecret string) *TokenService {
	return &TokenService{
		sessionSecret:    []byte(sessionSecret),
		activationSecret: []byte(activationSecret),
		resetSecret:      []byte(resetSecret),
	}
}

// SessionSecret exposes the session signing key for the echo-jwt middleware.
func (s *TokenService) SessionSecret() []byte {
	return s.sessionSecret
}

// GenerateSessionToken issues a 24h session token for the user.
func (s *TokenService) GenerateSessionToken(userID uint) (string, error) {
	claims := &SessionClaims{
		UserID:           userID,
		RegisteredClaims: registered(SessionTokenExpiry),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.sessionSecret)
}

// ParseSessionToken verifies a session token and returns its claims.
func (s *TokenService) ParseSessionToken(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := s.parse(token, claims, s.sessionSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// GenerateActivationToken signs the pending signup fields for 10 minutes.
func (s *TokenService) GenerateActivationToken(name, email, password string) (string, error) {
	claims := &ActivationClaims{
		Name:             name,
		Email:            email,
		Password:         password,
		RegisteredClaims: registered(ActivationTokenExpiry),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.activationSecret)
}

// ParseActivationToken verifies an activation token and returns the pending signup.
func (s *TokenService) ParseActivationToken(token string) (*ActivationClaims, error) {
	claims := &ActivationClaims{}
	if err := s.parse(token, claims, s.activationSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// GenerateResetToken issues a 10 minute password-reset token for the user.
func (s *TokenService) GenerateResetToken(userID uint) (string, error) {
	claims := &ResetClaims{
		UserID:           userID,
		RegisteredClaims: registered(ResetTokenExpiry),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.resetSecret)
}

// ParseResetToken verifies a reset token and returns its claims.
func (s *TokenService) ParseResetToken(token string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	if err := s.parse(token, claims, s.resetSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *TokenService) parse(token string, claims jwt.Claims, secret []byte) error {
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return ErrInvalidToken
	}
	return nil
}

func registered(expiry time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
}
