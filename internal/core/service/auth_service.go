package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/workforcehq/employee-api/internal/metrics"
	"github.com/workforcehq/employee-api/internal/core/domain"
	"github.com/workforcehq/employee-api/internal/core/ports"
)

// AuthService implements signup, login and token verification.
type AuthService struct {
	repo      ports.UserRepository
	throttle  ports.LoginThrottle
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

// NewAuthService builds an AuthService. throttle may be nil, in which case
// failed-login lockout is disabled.
func NewAuthService(repo ports.UserRepository, throttle ports.LoginThrottle, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &AuthService{repo: repo, throttle: throttle, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

func (s *AuthService) Signup(ctx context.Context, username, email, password string) (*domain.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	// Pre-insert existence check on either identifier. The user collection
	// additionally carries unique indexes, so a concurrent duplicate signup
	// still fails at insert time with the same conflict error.
	_, err := s.repo.FindByEmailOrUsername(ctx, email, username)
	if err == nil {
		return nil, domain.ErrUserExists
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.SignupsTotal.Inc()
	s.logger.Info().Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login authenticates by email or username and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, username, password string) (string, error) {
	if password == "" || (email == "" && username == "") {
		return "", domain.ErrInvalidInput
	}

	identifier := email
	if identifier == "" {
		identifier = username
	}

	if locked := s.isLocked(ctx, identifier); locked {
		metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		return "", domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByEmailOrUsername(ctx, email, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, identifier)
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, identifier)
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, identifier); err != nil {
			s.logger.Warn().Err(err).Msg("login throttle reset failed")
		}
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("username", user.Username).Msg("login successful")
	return token, nil
}

// VerifyToken validates signature and expiry and returns the embedded claims.
func (s *AuthService) VerifyToken(token string) (*domain.Claims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrTokenInvalid
	}

	id, _ := claims["id"].(string)
	username, _ := claims["username"].(string)
	email, _ := claims["email"].(string)
	return &domain.Claims{UserID: id, Username: username, Email: email}, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// isLocked fails open: a broken throttle backend must not take logins down.
func (s *AuthService) isLocked(ctx context.Context, identifier string) bool {
	if s.throttle == nil {
		return false
	}
	locked, err := s.throttle.IsLocked(ctx, identifier)
	if err != nil {
		s.logger.Warn().Err(err).Msg("login throttle check failed")
		return false
	}
	return locked
}

func (s *AuthService) recordFailure(ctx context.Context, identifier string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, identifier); err != nil {
		s.logger.Warn().Err(err).Msg("login throttle record failed")
	}
}
