package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// sessionTokenTTL bounds how long an issued session token stays valid.
const sessionTokenTTL = 24 * time.Hour

// SessionClaims are the JWT claims stamped on a session token.
type SessionClaims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// SessionService issues opaque session identifiers and, when auth is
// enabled, signed session tokens.
type SessionService struct {
	secret []byte
}

// NewSessionService creates the service. secret may be empty when auth is
// disabled; IssueToken then fails.
func NewSessionService(secret string) *SessionService {
	return &SessionService{secret: []byte(secret)}
}

// NewSessionID returns a fresh opaque session identifier.
func (s *SessionService) NewSessionID() string {
	return uuid.New().String()
}

// IssueToken signs a session token for the given session id.
func (s *SessionService) IssueToken(sessionID string) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("session token secret not configured")
	}

	now := time.Now()
	claims := SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and validates a session token, returning its claims.
func (s *SessionService) VerifyToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}
