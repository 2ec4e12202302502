package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/agors/historiography/internal/core/domain"
	"github.com/agors/historiography/internal/core/ports"
	"github.com/agors/historiography/internal/core/validation"
	"github.com/agors/historiography/internal/metrics"
)

// AuthService implements registration, login and the admin second factor.
type AuthService struct {
	repo     ports.AccountRepository
	adminKey string
	logger   zerolog.Logger
}

// NewAuthService builds an AuthService. An empty adminKey falls back to
// domain.DefaultAdminKey.
func NewAuthService(repo ports.AccountRepository, adminKey string, logger zerolog.Logger) *AuthService {
	if adminKey == "" {
		adminKey = domain.DefaultAdminKey
	}
	return &AuthService{repo: repo, adminKey: adminKey, logger: logger}
}

// Register checks required fields, then field syntax, then uniqueness, and
// stops at the first failure.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	if err := validation.RequiredFieldsNonEmpty(
		validation.Field{Name: "username", Value: username},
		validation.Field{Name: "email", Value: email},
		validation.Field{Name: "password", Value: input.Password},
	); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	role, ok := domain.ParseRole(string(input.Role))
	if !ok {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return nil, &validation.FieldError{Field: "role", Reason: "role must be User or Admin"}
	}

	for _, check := range []func() error{
		func() error { return validation.ValidUsername(username) },
		func() error { return validation.ValidEmail(email) },
		func() error { return validation.ValidPassword(input.Password) },
	} {
		if err := check(); err != nil {
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
			return nil, err
		}
	}

	if err := s.ensureUnique(ctx, username, email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	account := domain.Account{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.repo.Add(ctx, account); err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registrationResult(err)).Inc()
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	s.logger.Info().Str("username", username).Str("role", string(role)).Msg("account registered")
	return &account, nil
}

func (s *AuthService) ensureUnique(ctx context.Context, username, email string) error {
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		metrics.RegistrationsTotal.WithLabelValues("username_taken").Inc()
		return domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return err
	}
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		metrics.RegistrationsTotal.WithLabelValues("email_taken").Inc()
		return domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return err
	}
	return nil
}

func registrationResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrUsernameTaken):
		return "username_taken"
	case errors.Is(err, domain.ErrEmailTaken):
		return "email_taken"
	default:
		return "error"
	}
}

// Login resolves identifier as a username first and as an email second. An
// unknown identifier and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*domain.Account, error) {
	identifier = strings.TrimSpace(identifier)
	if err := validation.RequiredFieldsNonEmpty(
		validation.Field{Name: "username or email", Value: identifier},
		validation.Field{Name: "password", Value: password},
	); err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	account, err := s.lookup(ctx, identifier)
	if errors.Is(err, domain.ErrAccountNotFound) {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		s.logger.Warn().Str("identifier", identifier).Msg("login for unknown account")
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		s.logger.Warn().Str("username", account.Username).Msg("login with wrong password")
		return nil, domain.ErrInvalidCredentials
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("username", account.Username).Str("role", string(account.Role)).Msg("login succeeded")
	return account, nil
}

func (s *AuthService) lookup(ctx context.Context, identifier string) (*domain.Account, error) {
	account, err := s.repo.FindByUsername(ctx, identifier)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return s.repo.FindByEmail(ctx, identifier)
	}
	return account, err
}

// VerifyAdminKey compares key with the configured admin key.
func (s *AuthService) VerifyAdminKey(key string) error {
	if subtle.ConstantTimeCompare([]byte(key), []byte(s.adminKey)) != 1 {
		metrics.AdminKeyChecksTotal.WithLabelValues("rejected").Inc()
		s.logger.Warn().Msg("admin key rejected")
		return domain.ErrInvalidAdminKey
	}
	metrics.AdminKeyChecksTotal.WithLabelValues("accepted").Inc()
	return nil
}
