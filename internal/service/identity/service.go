package identity

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"russo-backend/internal/domain"
	tokenrepo "russo-backend/internal/repository/token"
	userrepo "russo-backend/internal/repository/user"
	"russo-backend/internal/sms"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when phone/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

// Service handles phone-based registration, verification, and login.
type Service struct {
	repo        userrepo.Repository
	tokens      *tokenManager
	sender      sms.Sender
	logger      *log.Logger
	tokenTTL    time.Duration
	codeTTL     time.Duration
	passwordMin int
}

// New creates a Service with the documented defaults: 30-day sessions and
// 10-minute one-time codes.
func New(repo userrepo.Repository, tokens tokenrepo.Repository, sender sms.Sender, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		repo:        repo,
		tokens:      newTokenManager(tokens),
		sender:      sender,
		logger:      logger,
		tokenTTL:    30 * 24 * time.Hour,
		codeTTL:     10 * time.Minute,
		passwordMin: 6,
	}
}

// RegisterInput captures fields expected by the register endpoint.
type RegisterInput struct {
	CountryCode string `json:"country_code"`
	Phone       string `json:"phone"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
}

// Register creates an unverified account and sends a one-time code to the
// phone. Duplicate phones surface as domain.ErrAlreadyExists.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	countryCode := strings.TrimSpace(in.CountryCode)
	phone := strings.TrimSpace(in.Phone)
	if countryCode == "" || phone == "" {
		return nil, domain.Validationf("country code and phone required")
	}
	password := strings.TrimSpace(in.Password)
	if len(password) < s.passwordMin {
		return nil, domain.Validationf("password must be at least %d characters", s.passwordMin)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	code, err := randomCode()
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().Add(s.codeTTL)

	created, err := s.repo.Create(ctx, domain.User{
		CountryCode:           countryCode,
		Phone:                 phone,
		PasswordHash:          string(hashed),
		FirstName:             strings.TrimSpace(in.FirstName),
		LastName:              strings.TrimSpace(in.LastName),
		Role:                  domain.RoleCustomer,
		VerificationCode:      code,
		VerificationExpiresAt: &expiresAt,
	})
	if err != nil {
		return nil, err
	}

	s.sendCode(ctx, created.CountryCode, created.Phone, code)
	return created, nil
}

// Verify consumes the one-time code and issues a session token on success.
func (s *Service) Verify(ctx context.Context, countryCode, phone, code string) (*domain.User, string, error) {
	u, err := s.repo.GetByPhone(ctx, strings.TrimSpace(countryCode), strings.TrimSpace(phone))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.Validationf("invalid verification code")
		}
		return nil, "", err
	}
	code = strings.TrimSpace(code)
	if u.VerificationCode == "" || code == "" || u.VerificationCode != code {
		return nil, "", domain.Validationf("invalid verification code")
	}
	if u.VerificationExpiresAt == nil || time.Now().After(*u.VerificationExpiresAt) {
		return nil, "", domain.Validationf("verification code expired")
	}

	if err := s.repo.MarkVerified(ctx, u.ID); err != nil {
		return nil, "", err
	}
	u.Verified = true
	u.VerificationCode = ""
	u.VerificationExpiresAt = nil

	tok, err := s.tokens.Issue(ctx, u.ID, u.CountryCode+u.Phone, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}

// Login validates credentials. Unverified accounts are rejected even with a
// correct password.
func (s *Service) Login(ctx context.Context, countryCode, phone, password string) (*domain.User, string, error) {
	u, err := s.repo.GetByPhone(ctx, strings.TrimSpace(countryCode), strings.TrimSpace(phone))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if !u.Verified {
		return nil, "", domain.ErrVerificationRequired
	}

	tok, err := s.tokens.Issue(ctx, u.ID, u.CountryCode+u.Phone, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}

// ResendCode replaces the pending one-time code for an unverified account.
func (s *Service) ResendCode(ctx context.Context, countryCode, phone string) error {
	u, err := s.repo.GetByPhone(ctx, strings.TrimSpace(countryCode), strings.TrimSpace(phone))
	if err != nil {
		return err
	}
	if u.Verified {
		return domain.Validationf("account already verified")
	}
	code, err := randomCode()
	if err != nil {
		return err
	}
	if err := s.repo.SetVerificationCode(ctx, u.ID, code, time.Now().Add(s.codeTTL)); err != nil {
		return err
	}
	s.sendCode(ctx, u.CountryCode, u.Phone, code)
	return nil
}

// Authenticate resolves a bearer token to its user.
func (s *Service) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	meta, ok := s.tokens.Validate(ctx, token)
	if !ok {
		return nil, ErrInvalidToken
	}
	u, err := s.repo.GetByID(ctx, meta.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}

// SavePreferences stores the client's theme/locale choice.
func (s *Service) SavePreferences(ctx context.Context, userID, theme, locale string) error {
	return s.repo.UpdatePreferences(ctx, userID, theme, locale)
}

func (s *Service) sendCode(ctx context.Context, countryCode, phone, code string) {
	if s.sender == nil {
		return
	}
	msg := fmt.Sprintf("Your Russo verification code is %s. It expires in %d minutes.", code, int(s.codeTTL.Minutes()))
	if err := s.sender.Send(ctx, countryCode, phone, msg); err != nil {
		s.logger.Printf("identity: send code to %s%s failed: %v", countryCode, phone, err)
	}
}

func randomCode() (string, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", binary.BigEndian.Uint32(buf[:])%1000000), nil
}
