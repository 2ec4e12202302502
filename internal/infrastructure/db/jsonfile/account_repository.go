package jsonfile

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agors/historiography/internal/core/domain"
)

// AccountRepository stores accounts as one JSON object keyed by username.
type AccountRepository struct {
	mu       sync.RWMutex
	doc      document
	accounts map[string]domain.Account
}

func NewAccountRepository(path string, logger zerolog.Logger) *AccountRepository {
	doc := newDocument(path, "users", logger)
	loaded := load[map[string]domain.Account](doc)

	accounts := make(map[string]domain.Account, len(loaded))
	for username, a := range loaded {
		a.Username = username
		if role, ok := domain.ParseRole(string(a.Role)); ok {
			a.Role = role
		} else {
			doc.logger.Warn().Str("username", username).Str("role", string(a.Role)).Msg("unknown role, treating as User")
			a.Role = domain.RoleUser
		}
		accounts[username] = a
	}
	return &AccountRepository{doc: doc, accounts: accounts}
}

// All returns the accounts ordered by username.
func (r *AccountRepository) All(_ context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(), nil
}

func (r *AccountRepository) sorted() []domain.Account {
	out := make([]domain.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

func (r *AccountRepository) FindBy(_ context.Context, match func(domain.Account) bool) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.sorted() {
		if match(a) {
			return &a, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

// FindByUsername is an exact, case-sensitive lookup.
func (r *AccountRepository) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[username]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &a, nil
}

// FindByEmail ignores case.
func (r *AccountRepository) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if a, ok := r.byEmail(email); ok {
		return &a, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (r *AccountRepository) byEmail(email string) (domain.Account, bool) {
	for _, a := range r.accounts {
		if strings.EqualFold(a.Email, email) {
			return a, true
		}
	}
	return domain.Account{}, false
}

// Add inserts account and saves. Username and email must both be unused.
func (r *AccountRepository) Add(_ context.Context, account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.Username]; exists {
		return domain.ErrUsernameTaken
	}
	if _, exists := r.byEmail(account.Email); exists {
		return domain.ErrEmailTaken
	}

	r.accounts[account.Username] = account
	if err := r.doc.save(r.accounts); err != nil {
		delete(r.accounts, account.Username)
		return err
	}
	return nil
}

func (r *AccountRepository) Delete(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed, ok := r.accounts[username]
	if !ok {
		return domain.ErrAccountNotFound
	}
	delete(r.accounts, username)
	if err := r.doc.save(r.accounts); err != nil {
		r.accounts[username] = removed
		return err
	}
	return nil
}
