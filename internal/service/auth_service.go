package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/quanghtran/myapp-backend/internal/domain"
	"github.com/quanghtran/myapp-backend/internal/repository/ports"
	"github.com/quanghtran/myapp-backend/internal/util"
)

// Mailer delivers a single message. Implementations must honour the context
// deadline; the service caps every send so a stalled SMTP server cannot hold
// a request open.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type RegisterInput struct {
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Email       string
	Password    string
}

type AuthService struct {
	accounts ports.AccountRepository
	roles    ports.RoleRepository
	resets   ports.ResetTokenRepository
	mailer   Mailer
	jwt      *util.JWTManager

	resetTTL    time.Duration
	mailTimeout time.Duration
	now         func() time.Time
	newToken    func() string
}

func NewAuthService(
	accounts ports.AccountRepository,
	roles ports.RoleRepository,
	resets ports.ResetTokenRepository,
	mailer Mailer,
	jwtManager *util.JWTManager,
	resetTTL time.Duration,
) *AuthService {
	if resetTTL <= 0 {
		resetTTL = time.Hour
	}
	return &AuthService{
		accounts:    accounts,
		roles:       roles,
		resets:      resets,
		mailer:      mailer,
		jwt:         jwtManager,
		resetTTL:    resetTTL,
		mailTimeout: 15 * time.Second,
		now:         time.Now,
		newToken:    util.NewResetToken,
	}
}

// Register creates the account and its customer profile in one transaction.
// The welcome mail is best-effort: by the time it is sent the registration has
// already committed, so a delivery failure is logged and the caller still gets
// a success.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	email := normalizeEmail(input.Email)

	role, err := s.roles.FindByName(ctx, domain.RoleUser)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrRoleMissing
		}
		return nil, err
	}

	hash, err := util.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.CreateWithCustomer(ctx, ports.NewAccount{
		Email:        email,
		PasswordHash: hash,
		RoleID:       role.ID,
		Profile: domain.Customer{
			FirstName:   strings.TrimSpace(input.FirstName),
			LastName:    strings.TrimSpace(input.LastName),
			DateOfBirth: input.DateOfBirth,
		},
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	account.RoleName = role.Name

	body := fmt.Sprintf("Chào %s %s,\n\nCảm ơn bạn đã đăng ký tài khoản tại MyApp!",
		strings.TrimSpace(input.FirstName), strings.TrimSpace(input.LastName))
	if err := s.sendMail(ctx, email, "Welcome to MyApp", body); err != nil {
		log.Printf("register: welcome mail to %s failed: %v", email, err)
	}

	return account, nil
}

// Login returns a signed session token. A missing account and a wrong password
// map to the same error so callers cannot probe which emails exist. The login
// notification never blocks the token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	account, err := s.accounts.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return "", time.Time{}, ErrInvalidCredentials
		}
		return "", time.Time{}, err
	}
	if !util.VerifyPassword(password, account.PasswordHash) {
		return "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwt.Generate(account)
	if err != nil {
		return "", time.Time{}, err
	}

	body := fmt.Sprintf("Chào %s,\n\nBạn vừa đăng nhập vào tài khoản MyApp lúc %s. Nếu không phải bạn, hãy liên hệ với chúng tôi ngay lập tức.",
		account.Email, s.now().UTC().Format(time.RFC1123))
	if err := s.sendMail(ctx, account.Email, "Login Notification", body); err != nil {
		log.Printf("login: notification mail to %s failed: %v", account.Email, err)
	}

	return token, expiresAt, nil
}

// ForgotPassword issues a fresh reset token, replacing any earlier live tokens
// for the account. The token only reaches the user by mail, so unlike the
// other flows a delivery failure here is surfaced to the caller even though
// the token row has already committed.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	account, err := s.accounts.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return ErrAccountNotFound
		}
		return err
	}

	if err := s.resets.DeleteByAccount(ctx, account.ID); err != nil {
		return err
	}

	token := s.newToken()
	if _, err := s.resets.Create(ctx, token, account.ID, s.now().Add(s.resetTTL)); err != nil {
		return err
	}

	body := fmt.Sprintf("Your reset token: %s", token)
	if err := s.sendMail(ctx, account.Email, "Password Reset", body); err != nil {
		log.Printf("forgot-password: reset mail to %s failed: %v", account.Email, err)
		return ErrMailDelivery
	}
	return nil
}

// ResetPassword redeems the token and overwrites the account's password hash.
// Redemption deletes the token row in the same statement that matches it, so
// a token can be used exactly once.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	accountID, err := s.resets.Redeem(ctx, token, s.now())
	if err != nil {
		if isNotFound(err) {
			return ErrResetTokenInvalid
		}
		return err
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.accounts.UpdatePassword(ctx, accountID, hash)
}

// Authenticate validates a session token and loads the account it names.
// Inactive or deleted accounts are rejected even while their tokens are still
// within their 24 hour window.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Account, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, err
	}
	account, err := s.accounts.FindByID(ctx, claims.AccountID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !account.IsActive {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}

func (s *AuthService) sendMail(ctx context.Context, to, subject, body string) error {
	mailCtx, cancel := context.WithTimeout(ctx, s.mailTimeout)
	defer cancel()
	return s.mailer.Send(mailCtx, to, subject, body)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
