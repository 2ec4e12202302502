package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/agors/historiography/internal/core/domain"
	"github.com/agors/historiography/internal/core/ports"
	"github.com/agors/historiography/internal/core/validation"
)

type stubAccountRepo struct {
	accounts map[string]domain.Account
	addErr   error
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]domain.Account)}
}

func (r *stubAccountRepo) All(_ context.Context) ([]domain.Account, error) {
	out := make([]domain.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *stubAccountRepo) FindBy(_ context.Context, match func(domain.Account) bool) (*domain.Account, error) {
	for _, a := range r.accounts {
		if match(a) {
			found := a
			return &found, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.FindBy(ctx, func(a domain.Account) bool { return a.Username == username })
}

func (r *stubAccountRepo) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.FindBy(ctx, func(a domain.Account) bool { return a.Email == email })
}

func (r *stubAccountRepo) Add(_ context.Context, account domain.Account) error {
	if r.addErr != nil {
		return r.addErr
	}
	if _, exists := r.accounts[account.Username]; exists {
		return domain.ErrUsernameTaken
	}
	r.accounts[account.Username] = account
	return nil
}

func (r *stubAccountRepo) Delete(_ context.Context, username string) error {
	if _, exists := r.accounts[username]; !exists {
		return domain.ErrAccountNotFound
	}
	delete(r.accounts, username)
	return nil
}

func register(t *testing.T, svc *AuthService, username, email, password string, role domain.Role) {
	t.Helper()
	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: username, Email: email, Password: password, Role: role,
	}); err != nil {
		t.Fatalf("register %s failed: %v", username, err)
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAuthService(repo, "", zerolog.Nop())

	account, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice", Email: "alice@x.com", Password: "secret1", Role: domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if account.PasswordHash == "secret1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	stored, ok := repo.accounts["alice"]
	if !ok {
		t.Fatalf("account not stored")
	}
	if stored.Role != domain.RoleUser {
		t.Fatalf("unexpected role: %s", stored.Role)
	}
}

func TestAuthService_Register_ValidationOrder(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAuthService(repo, "", zerolog.Nop())
	register(t, svc, "alice", "alice@x.com", "secret1", domain.RoleUser)

	tests := []struct {
		name      string
		input     ports.RegisterInput
		wantField string
		wantErr   error
	}{
		{"missing email wins over bad username", ports.RegisterInput{Username: "a", Password: "x", Role: domain.RoleUser}, "email", nil},
		{"syntax before uniqueness", ports.RegisterInput{Username: "alice", Email: "nope", Password: "secret1", Role: domain.RoleUser}, "email", nil},
		{"short password", ports.RegisterInput{Username: "bob", Email: "bob@x.com", Password: "123", Role: domain.RoleUser}, "password", nil},
		{"unknown role", ports.RegisterInput{Username: "bob", Email: "bob@x.com", Password: "secret1", Role: "Guest"}, "role", nil},
		{"username taken", ports.RegisterInput{Username: "alice", Email: "other@x.com", Password: "secret1", Role: domain.RoleUser}, "", domain.ErrUsernameTaken},
		{"email taken", ports.RegisterInput{Username: "bob", Email: "alice@x.com", Password: "secret1", Role: domain.RoleUser}, "", domain.ErrEmailTaken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.input)
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			var fe *validation.FieldError
			if !errors.As(err, &fe) || fe.Field != tt.wantField {
				t.Fatalf("expected failure on %q, got %v", tt.wantField, err)
			}
		})
	}
	if len(repo.accounts) != 1 {
		t.Fatalf("expected only alice to be stored, got %d accounts", len(repo.accounts))
	}
}

func TestAuthService_Register_StorageFailure(t *testing.T) {
	repo := newStubAccountRepo()
	repo.addErr = domain.ErrStorage
	svc := NewAuthService(repo, "", zerolog.Nop())

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "alice", Email: "alice@x.com", Password: "secret1", Role: domain.RoleUser,
	})
	if !errors.Is(err, domain.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}

func TestAuthService_Login_ByUsernameOrEmail(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAuthService(repo, "", zerolog.Nop())
	register(t, svc, "carol", "carol@example.com", "s3cret!", domain.RoleAdmin)

	for _, id := range []string{"carol", "carol@example.com", "  carol "} {
		account, err := svc.Login(context.Background(), id, "s3cret!")
		if err != nil {
			t.Fatalf("login with %q failed: %v", id, err)
		}
		if account.Username != "carol" || !account.IsAdmin() {
			t.Fatalf("unexpected account: %+v", account)
		}
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAuthService(repo, "", zerolog.Nop())
	register(t, svc, "dave", "dave@example.com", "goodpass", domain.RoleUser)

	if _, err := svc.Login(context.Background(), "dave", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "ghost", "goodpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown account, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "dave", ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for empty password, got %v", err)
	}
}

func TestAuthService_VerifyAdminKey(t *testing.T) {
	svc := NewAuthService(newStubAccountRepo(), "", zerolog.Nop())
	if err := svc.VerifyAdminKey(domain.DefaultAdminKey); err != nil {
		t.Fatalf("default key rejected: %v", err)
	}
	if err := svc.VerifyAdminKey("1234"); err != domain.ErrInvalidAdminKey {
		t.Fatalf("expected ErrInvalidAdminKey, got %v", err)
	}

	custom := NewAuthService(newStubAccountRepo(), "open-sesame", zerolog.Nop())
	if err := custom.VerifyAdminKey(domain.DefaultAdminKey); err != domain.ErrInvalidAdminKey {
		t.Fatalf("default key must not pass when overridden, got %v", err)
	}
	if err := custom.VerifyAdminKey("open-sesame"); err != nil {
		t.Fatalf("configured key rejected: %v", err)
	}
}
