package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"tableside/internal/domain"
	"tableside/internal/errors"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Service struct {
	users  UserRepository
	secret []byte
	ttl    time.Duration
	logger *zap.Logger
}

func NewService(users UserRepository, secret string, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
	}
}

// Login verifies the credential pair and issues a signed session token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if _, ok := errors.IsNotFoundError(err); ok {
			return "", errors.NewUnauthorizedError("invalid credentials")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", errors.NewUnauthorizedError("invalid credentials")
	}

	now := time.Now()
	claims := Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.NewInternalError("signing session token", err)
	}

	s.logger.Info("user logged in", zap.String("email", email), zap.String("role", user.Role))
	return signed, nil
}

// VerifyToken fails closed: absent, malformed, wrongly signed and
// expired tokens all come back as UnauthorizedError.
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.NewUnauthorizedError("missing token")
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.NewUnauthorizedError("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.NewUnauthorizedError("invalid or expired token")
	}

	return &claims, nil
}
