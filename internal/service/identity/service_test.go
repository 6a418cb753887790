package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"russo-backend/internal/domain"
	tokenrepo "russo-backend/internal/repository/token"
)

type memoryUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: map[string]*domain.User{}}
}

func (m *memoryUserRepo) Create(_ context.Context, u domain.User) (*domain.User, error) {
	for _, existing := range m.users {
		if existing.CountryCode == u.CountryCode && existing.Phone == u.Phone {
			return nil, domain.ErrAlreadyExists
		}
	}
	m.nextID++
	u.ID = fmt.Sprintf("u%d", m.nextID)
	m.users[u.ID] = &u
	copied := u
	return &copied, nil
}

func (m *memoryUserRepo) GetByPhone(_ context.Context, countryCode, phone string) (*domain.User, error) {
	for _, u := range m.users {
		if u.CountryCode == countryCode && u.Phone == phone {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memoryUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memoryUserRepo) SetVerificationCode(_ context.Context, id, code string, expiresAt time.Time) error {
	u, ok := m.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.VerificationCode = code
	u.VerificationExpiresAt = &expiresAt
	return nil
}

func (m *memoryUserRepo) MarkVerified(_ context.Context, id string) error {
	u, ok := m.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Verified = true
	u.VerificationCode = ""
	u.VerificationExpiresAt = nil
	return nil
}

func (m *memoryUserRepo) UpdatePreferences(_ context.Context, id, theme, locale string) error {
	u, ok := m.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.Theme = theme
	u.Locale = locale
	return nil
}

type memoryTokenRepo struct {
	tokens map[string]tokenrepo.Token
}

func newMemoryTokenRepo() *memoryTokenRepo {
	return &memoryTokenRepo{tokens: map[string]tokenrepo.Token{}}
}

func (m *memoryTokenRepo) Create(_ context.Context, t tokenrepo.Token) error {
	if _, ok := m.tokens[t.Token]; ok {
		return domain.ErrAlreadyExists
	}
	m.tokens[t.Token] = t
	return nil
}

func (m *memoryTokenRepo) Get(_ context.Context, token string) (*tokenrepo.Token, error) {
	t, ok := m.tokens[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := t
	return &copied, nil
}

func (m *memoryTokenRepo) Delete(_ context.Context, token string) error {
	delete(m.tokens, token)
	return nil
}

type recordingSender struct {
	messages []string
	err      error
}

func (r *recordingSender) Send(_ context.Context, countryCode, phone, message string) error {
	r.messages = append(r.messages, countryCode+phone+": "+message)
	return r.err
}

func newTestService() (*Service, *memoryUserRepo, *recordingSender) {
	users := newMemoryUserRepo()
	sender := &recordingSender{}
	svc := New(users, newMemoryTokenRepo(), sender, nil)
	return svc, users, sender
}

func register(t *testing.T, svc *Service) *domain.User {
	t.Helper()
	u, err := svc.Register(context.Background(), RegisterInput{
		CountryCode: "+1",
		Phone:       "5550101",
		Password:    "secret1",
		FirstName:   "Mara",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return u
}

func TestRegisterSendsCode(t *testing.T) {
	svc, users, sender := newTestService()

	u := register(t, svc)
	if u.Verified {
		t.Error("new account should start unverified")
	}
	if u.Role != domain.RoleCustomer {
		t.Errorf("role = %q, want %q", u.Role, domain.RoleCustomer)
	}

	stored := users.users[u.ID]
	if len(stored.VerificationCode) != 6 {
		t.Errorf("verification code = %q, want 6 digits", stored.VerificationCode)
	}
	if stored.PasswordHash == "secret1" {
		t.Error("password stored in plain text")
	}
	if len(sender.messages) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.messages))
	}
	if !strings.Contains(sender.messages[0], stored.VerificationCode) {
		t.Errorf("SMS %q does not carry the code %q", sender.messages[0], stored.VerificationCode)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestService()

	var validationErr *domain.ValidationError

	_, err := svc.Register(context.Background(), RegisterInput{CountryCode: "+1", Password: "secret1"})
	if !errors.As(err, &validationErr) {
		t.Errorf("missing phone: err = %v, want validation error", err)
	}

	_, err = svc.Register(context.Background(), RegisterInput{CountryCode: "+1", Phone: "5550101", Password: "short"})
	if !errors.As(err, &validationErr) {
		t.Errorf("short password: err = %v, want validation error", err)
	}
}

func TestRegisterDuplicatePhone(t *testing.T) {
	svc, _, _ := newTestService()
	register(t, svc)

	_, err := svc.Register(context.Background(), RegisterInput{
		CountryCode: "+1",
		Phone:       "5550101",
		Password:    "another1",
	})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("err = %v, want ErrAlreadyExists", err)
	}
}

func TestRegisterSurvivesSMSFailure(t *testing.T) {
	svc, _, sender := newTestService()
	sender.err = errors.New("gateway down")

	if u := register(t, svc); u.ID == "" {
		t.Error("account should be created even when the SMS fails")
	}
}

func TestVerify(t *testing.T) {
	svc, users, _ := newTestService()
	u := register(t, svc)
	code := users.users[u.ID].VerificationCode

	verified, token, err := svc.Verify(context.Background(), "+1", "5550101", code)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !verified.Verified {
		t.Error("user should be verified")
	}
	if token == "" {
		t.Error("verify should issue a session token")
	}

	got, err := svc.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("authenticated user = %s, want %s", got.ID, u.ID)
	}
}

func TestVerifyWrongCode(t *testing.T) {
	svc, _, _ := newTestService()
	register(t, svc)

	var validationErr *domain.ValidationError
	if _, _, err := svc.Verify(context.Background(), "+1", "5550101", "000000"); !errors.As(err, &validationErr) {
		t.Errorf("err = %v, want validation error", err)
	}
	if _, _, err := svc.Verify(context.Background(), "+1", "5550199", "000000"); !errors.As(err, &validationErr) {
		t.Errorf("unknown phone: err = %v, want validation error", err)
	}
}

func TestVerifyExpiredCode(t *testing.T) {
	svc, users, _ := newTestService()
	u := register(t, svc)

	stored := users.users[u.ID]
	past := time.Now().Add(-time.Minute)
	stored.VerificationExpiresAt = &past

	var validationErr *domain.ValidationError
	if _, _, err := svc.Verify(context.Background(), "+1", "5550101", stored.VerificationCode); !errors.As(err, &validationErr) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestVerifyCodeIsSingleUse(t *testing.T) {
	svc, users, _ := newTestService()
	u := register(t, svc)
	code := users.users[u.ID].VerificationCode

	if _, _, err := svc.Verify(context.Background(), "+1", "5550101", code); err != nil {
		t.Fatalf("first verify: %v", err)
	}

	var validationErr *domain.ValidationError
	if _, _, err := svc.Verify(context.Background(), "+1", "5550101", code); !errors.As(err, &validationErr) {
		t.Errorf("second verify: err = %v, want validation error", err)
	}
}

func TestLogin(t *testing.T) {
	svc, users, _ := newTestService()
	u := register(t, svc)

	// Unverified accounts cannot log in even with the right password.
	if _, _, err := svc.Login(context.Background(), "+1", "5550101", "secret1"); !errors.Is(err, domain.ErrVerificationRequired) {
		t.Errorf("unverified login: err = %v, want ErrVerificationRequired", err)
	}

	code := users.users[u.ID].VerificationCode
	if _, _, err := svc.Verify(context.Background(), "+1", "5550101", code); err != nil {
		t.Fatalf("verify: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "+1", "5550101", "wrongpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(context.Background(), "+1", "5550199", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown phone: err = %v, want ErrInvalidCredentials", err)
	}

	got, token, err := svc.Login(context.Background(), "+1", "5550101", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != u.ID || token == "" {
		t.Errorf("login returned user %s, token %q", got.ID, token)
	}
}

func TestResendCodeReplacesPending(t *testing.T) {
	svc, users, sender := newTestService()
	u := register(t, svc)
	first := users.users[u.ID].VerificationCode

	if err := svc.ResendCode(context.Background(), "+1", "5550101"); err != nil {
		t.Fatalf("resend: %v", err)
	}
	second := users.users[u.ID].VerificationCode
	if second == "" {
		t.Fatal("resend should store a fresh code")
	}
	if len(sender.messages) != 2 {
		t.Errorf("sent %d messages, want 2", len(sender.messages))
	}

	// The old code is gone; only the latest one verifies. Codes can
	// collide by chance, so only assert when they differ.
	if first != second {
		var validationErr *domain.ValidationError
		if _, _, err := svc.Verify(context.Background(), "+1", "5550101", first); !errors.As(err, &validationErr) {
			t.Errorf("stale code: err = %v, want validation error", err)
		}
	}
}

func TestResendCodeOnVerifiedAccount(t *testing.T) {
	svc, users, _ := newTestService()
	u := register(t, svc)
	if _, _, err := svc.Verify(context.Background(), "+1", "5550101", users.users[u.ID].VerificationCode); err != nil {
		t.Fatalf("verify: %v", err)
	}

	var validationErr *domain.ValidationError
	if err := svc.ResendCode(context.Background(), "+1", "5550101"); !errors.As(err, &validationErr) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestAuthenticateRejectsBadAndExpiredTokens(t *testing.T) {
	tokens := newMemoryTokenRepo()
	users := newMemoryUserRepo()
	svc := New(users, tokens, &recordingSender{}, nil)

	if _, err := svc.Authenticate(context.Background(), "no-such-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("unknown token: err = %v, want ErrInvalidToken", err)
	}

	tokens.tokens["stale"] = tokenrepo.Token{
		Token:     "stale",
		UserID:    "u1",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	if _, err := svc.Authenticate(context.Background(), "stale"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token: err = %v, want ErrInvalidToken", err)
	}
	if _, ok := tokens.tokens["stale"]; ok {
		t.Error("expired token should be deleted on validation")
	}
}

func TestSavePreferences(t *testing.T) {
	svc, users, _ := newTestService()
	u := register(t, svc)

	if err := svc.SavePreferences(context.Background(), u.ID, "dark", "ru"); err != nil {
		t.Fatalf("save preferences: %v", err)
	}
	stored := users.users[u.ID]
	if stored.Theme != "dark" || stored.Locale != "ru" {
		t.Errorf("stored theme/locale = %q/%q", stored.Theme, stored.Locale)
	}
}
