package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agors/historiography/internal/core/domain"
	"github.com/agors/historiography/internal/core/ports"
	"github.com/agors/historiography/internal/metrics"
)

// AccountService is what the admin user list talks to.
type AccountService struct {
	repo   ports.AccountRepository
	logger zerolog.Logger
}

func NewAccountService(repo ports.AccountRepository, logger zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, logger: logger}
}

func (s *AccountService) List(ctx context.Context) ([]domain.Account, error) {
	return s.repo.All(ctx)
}

// Delete removes a User account. Admin accounts are always refused.
func (s *AccountService) Delete(ctx context.Context, username string) error {
	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		metrics.AccountDeletionsTotal.WithLabelValues("error").Inc()
		return err
	}
	if account.IsAdmin() {
		metrics.AccountDeletionsTotal.WithLabelValues("refused").Inc()
		s.logger.Warn().Str("username", username).Msg("refused to delete admin account")
		return domain.ErrAdminProtected
	}
	if err := s.repo.Delete(ctx, username); err != nil {
		metrics.AccountDeletionsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.AccountDeletionsTotal.WithLabelValues("deleted").Inc()
	s.logger.Info().Str("username", username).Msg("account deleted")
	return nil
}
