package auth

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/matias-dev/api-rest/internal/app/models"
	"github.com/matias-dev/api-rest/internal/pkg/config"
)

// sessionClaims is the wire shape of a session token: the registered claim
// set plus the role.
type sessionClaims struct {
	Rol string `json:"rol"`
	jwt.RegisteredClaims
}

// Session is the identity derived from a verified token.
type Session struct {
	UserID string // account id, decimal string (token id claim)
	Email  string // subject claim
	Rol    models.Rol
}

// TokenService creates and verifies signed session tokens. It is a pure
// function of its immutable configuration and safe for concurrent use.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	logger *slog.Logger
}

func NewTokenService(cfg config.JWTConfig, logger *slog.Logger) *TokenService {
	return &TokenService{
		secret: []byte(cfg.SecretKey),
		issuer: cfg.Issuer,
		ttl:    cfg.TTL,
		logger: logger,
	}
}

// Create issues a signed HS256 token for the account. The expiry claim is
// only set when the configured ttl is positive.
func (s *TokenService) Create(userID int64, email string, rol models.Rol) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Rol: rol.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       strconv.FormatInt(userID, 10),
			Subject:  email,
			Issuer:   s.issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		s.logger.Error("Failed to sign token", slog.Any("error", err))
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify checks signature and expiry in one pass and returns the derived
// session. Any failure (bad signature, malformed structure, expired) is
// logged and reported as not-ok; verification never errors to the caller.
func (s *TokenService) Verify(tokenString string) (Session, bool) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		s.logger.Warn("Token verification failed", slog.Any("error", err))
		return Session{}, false
	}

	return Session{
		UserID: claims.ID,
		Email:  claims.Subject,
		Rol:    models.ParseRol(claims.Rol),
	}, true
}

// Subject returns the subject claim of a valid token, or "" when
// verification fails.
func (s *TokenService) Subject(tokenString string) string {
	sess, ok := s.Verify(tokenString)
	if !ok {
		return ""
	}
	return sess.Email
}

// UserID returns the token id claim of a valid token, or "" when
// verification fails.
func (s *TokenService) UserID(tokenString string) string {
	sess, ok := s.Verify(tokenString)
	if !ok {
		return ""
	}
	return sess.UserID
}

// Rol returns the role claim of a valid token; RolUnknown when verification
// fails or the claim is unparsable.
func (s *TokenService) Rol(tokenString string) models.Rol {
	sess, ok := s.Verify(tokenString)
	if !ok {
		return models.RolUnknown
	}
	return sess.Rol
}
