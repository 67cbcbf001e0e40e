package http

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"

	"github.com/quanghtran/myapp-backend/internal/domain"
	"github.com/quanghtran/myapp-backend/internal/repository/ports"
	"github.com/quanghtran/myapp-backend/internal/service"
	"github.com/quanghtran/myapp-backend/internal/util"
)

type stubAccountRepo struct {
	accounts map[string]*domain.Account
	byID     map[uuid.UUID]*domain.Account
}

func newStubAccountRepo(accounts ...*domain.Account) *stubAccountRepo {
	repo := &stubAccountRepo{accounts: map[string]*domain.Account{}, byID: map[uuid.UUID]*domain.Account{}}
	for _, account := range accounts {
		repo.accounts[account.Email] = account
		repo.byID[account.ID] = account
	}
	return repo
}

func (s *stubAccountRepo) CreateWithCustomer(ctx context.Context, input ports.NewAccount) (*domain.Account, error) {
	if _, exists := s.accounts[input.Email]; exists {
		return nil, &pgconn.PgError{Code: "23505"}
	}
	account := &domain.Account{ID: uuid.New(), Email: input.Email, PasswordHash: input.PasswordHash, RoleID: input.RoleID, IsActive: true}
	s.accounts[account.Email] = account
	s.byID[account.ID] = account
	return account, nil
}

func (s *stubAccountRepo) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	account, ok := s.accounts[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return account, nil
}

func (s *stubAccountRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	account, ok := s.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return account, nil
}

func (s *stubAccountRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	if account, ok := s.byID[id]; ok {
		account.PasswordHash = passwordHash
	}
	return nil
}

type stubRoleRepo struct {
	role *domain.Role
}

func (s *stubRoleRepo) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	if s.role == nil || s.role.Name != name {
		return nil, sql.ErrNoRows
	}
	return s.role, nil
}

func (s *stubRoleRepo) EnsureRole(ctx context.Context, name string) (*domain.Role, error) {
	return s.role, nil
}

type stubResetRepo struct {
	tokens map[string]domain.ResetToken
}

func newStubResetRepo() *stubResetRepo {
	return &stubResetRepo{tokens: map[string]domain.ResetToken{}}
}

func (s *stubResetRepo) Create(ctx context.Context, token string, accountID uuid.UUID, expiresAt time.Time) (*domain.ResetToken, error) {
	reset := domain.ResetToken{Token: token, AccountID: accountID, ExpiresAt: expiresAt}
	s.tokens[token] = reset
	return &reset, nil
}

func (s *stubResetRepo) Redeem(ctx context.Context, token string, now time.Time) (uuid.UUID, error) {
	reset, ok := s.tokens[token]
	if !ok || !reset.ExpiresAt.After(now) {
		return uuid.Nil, sql.ErrNoRows
	}
	delete(s.tokens, token)
	return reset.AccountID, nil
}

func (s *stubResetRepo) DeleteByAccount(ctx context.Context, accountID uuid.UUID) error {
	for token, reset := range s.tokens {
		if reset.AccountID == accountID {
			delete(s.tokens, token)
		}
	}
	return nil
}

type stubMailer struct {
	err error
}

func (s *stubMailer) Send(ctx context.Context, to, subject, body string) error {
	return s.err
}

type handlerFixture struct {
	e        *echo.Echo
	accounts *stubAccountRepo
	resets   *stubResetRepo
	mailer   *stubMailer
	auth     *service.AuthService
}

func newHandlerFixture(accounts ...*domain.Account) *handlerFixture {
	repo := newStubAccountRepo(accounts...)
	resets := newStubResetRepo()
	mailer := &stubMailer{}
	role := &domain.Role{ID: uuid.New(), Name: domain.RoleUser}
	jwtManager := util.NewJWTManager("test-secret", "myapp", "myapp-clients", time.Hour)
	auth := service.NewAuthService(repo, &stubRoleRepo{role: role}, resets, mailer, jwtManager, time.Hour)

	e := echo.New()
	NewAuthHandler(auth).Register(e)
	return &handlerFixture{e: e, accounts: repo, resets: resets, mailer: mailer, auth: auth}
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := util.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	return hash
}

func TestRegisterEndpoint(t *testing.T) {
	fx := newHandlerFixture()

	rec := doJSON(fx.e, http.MethodPost, "/api/auth/register",
		`{"firstName":"An","lastName":"Nguyen","dateOfBirth":"1998-04-21T00:00:00Z","email":"a@x.com","password":"pw1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Đăng ký thành công.") {
		t.Fatalf("expected success message, got %s", rec.Body.String())
	}
}

func TestRegisterEndpointDuplicateEmail(t *testing.T) {
	fx := newHandlerFixture(&domain.Account{ID: uuid.New(), Email: "a@x.com", IsActive: true})

	rec := doJSON(fx.e, http.MethodPost, "/api/auth/register",
		`{"firstName":"An","lastName":"Nguyen","dateOfBirth":"1998-04-21T00:00:00Z","email":"a@x.com","password":"pw1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Email đã tồn tại.") {
		t.Fatalf("expected duplicate email message, got %s", rec.Body.String())
	}
}

func TestLoginEndpoint(t *testing.T) {
	account := &domain.Account{
		ID:           uuid.New(),
		Email:        "a@x.com",
		PasswordHash: mustHash(t, "pw1"),
		RoleName:     domain.RoleUser,
		IsActive:     true,
	}
	fx := newHandlerFixture(account)

	t.Run("success", func(t *testing.T) {
		rec := doJSON(fx.e, http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"pw1"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), `"token"`) {
			t.Fatalf("expected token in response, got %s", rec.Body.String())
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := doJSON(fx.e, http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"wrong"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Thông tin đăng nhập không chính xác.") {
			t.Fatalf("expected generic credentials message, got %s", rec.Body.String())
		}
	})

	t.Run("unknown email uses same message", func(t *testing.T) {
		rec := doJSON(fx.e, http.MethodPost, "/api/auth/login", `{"email":"none@x.com","password":"pw1"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Thông tin đăng nhập không chính xác.") {
			t.Fatalf("expected generic credentials message, got %s", rec.Body.String())
		}
	})
}

func TestForgotPasswordEndpoint(t *testing.T) {
	account := &domain.Account{ID: uuid.New(), Email: "a@x.com", IsActive: true}
	fx := newHandlerFixture(account)

	t.Run("success", func(t *testing.T) {
		rec := doJSON(fx.e, http.MethodPost, "/api/auth/forgot-password", `{"email":"a@x.com"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(fx.resets.tokens) != 1 {
			t.Fatalf("expected a live reset token")
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		rec := doJSON(fx.e, http.MethodPost, "/api/auth/forgot-password", `{"email":"none@x.com"}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("mail failure", func(t *testing.T) {
		fx.mailer.err = errMailDown
		defer func() { fx.mailer.err = nil }()
		rec := doJSON(fx.e, http.MethodPost, "/api/auth/forgot-password", `{"email":"a@x.com"}`)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Lỗi khi gửi email.") {
			t.Fatalf("expected mail failure message, got %s", rec.Body.String())
		}
	})
}

var errMailDown = errors.New("smtp down")

func TestResetPasswordEndpoint(t *testing.T) {
	account := &domain.Account{ID: uuid.New(), Email: "a@x.com", PasswordHash: mustHash(t, "pw1"), IsActive: true}
	fx := newHandlerFixture(account)
	fx.resets.tokens["tok-1"] = domain.ResetToken{Token: "tok-1", AccountID: account.ID, ExpiresAt: time.Now().Add(time.Hour)}

	t.Run("success", func(t *testing.T) {
		rec := doJSON(fx.e, http.MethodPost, "/api/auth/reset-password", `{"token":"tok-1","newPassword":"pw2"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if !util.VerifyPassword("pw2", account.PasswordHash) {
			t.Fatalf("expected password to be replaced")
		}
	})

	t.Run("reuse rejected", func(t *testing.T) {
		rec := doJSON(fx.e, http.MethodPost, "/api/auth/reset-password", `{"token":"tok-1","newPassword":"pw3"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Mã không hợp lệ hoặc đã hết hạn.") {
			t.Fatalf("expected invalid token message, got %s", rec.Body.String())
		}
	})
}

func TestRequireAuthMiddleware(t *testing.T) {
	account := &domain.Account{ID: uuid.New(), Email: "a@x.com", RoleName: domain.RoleUser, IsActive: true}
	fx := newHandlerFixture(account)
	fx.e.GET("/protected", func(c echo.Context) error {
		current, ok := CurrentAccount(c)
		if !ok {
			t.Fatal("expected account in context")
		}
		return c.JSON(http.StatusOK, echo.Map{"email": current.Email})
	}, RequireAuth(fx.auth))
	fx.e.DELETE("/admin-only", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, RequireAuth(fx.auth), RequireAdmin())

	jwtManager := util.NewJWTManager("test-secret", "myapp", "myapp-clients", time.Hour)
	signed, _, err := jwtManager.Generate(account)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		rec := httptest.NewRecorder()
		fx.e.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()
		fx.e.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("non-admin blocked from admin route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/admin-only", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()
		fx.e.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})
}
