package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/quanghtran/myapp-backend/internal/service"
	"github.com/quanghtran/myapp-backend/internal/util"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Register(e *echo.Echo) {
	g := e.Group("/api/auth")
	g.POST("/register", h.register)
	g.POST("/login", h.login)
	g.POST("/forgot-password", h.forgotPassword)
	g.POST("/reset-password", h.resetPassword)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	_, err := h.auth.Register(c.Request().Context(), service.RegisterInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		Email:       req.Email,
		Password:    req.Password,
	})
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		return c.JSON(http.StatusBadRequest, util.Error("Email đã tồn tại."))
	case errors.Is(err, service.ErrRoleMissing):
		return c.JSON(http.StatusInternalServerError, util.Error("Role mặc định không tồn tại."))
	case err != nil:
		return c.JSON(http.StatusInternalServerError, util.Error("unable to register"))
	}
	return c.JSON(http.StatusOK, util.Message("Đăng ký thành công."))
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	token, expiresAt, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, util.Error("Thông tin đăng nhập không chính xác."))
	case err != nil:
		return c.JSON(http.StatusInternalServerError, util.Error("unable to log in"))
	}
	return c.JSON(http.StatusOK, TokenResponse{Token: token, ExpiresAt: expiresAt.UTC().Format(time.RFC3339)})
}

func (h *AuthHandler) forgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	err := h.auth.ForgotPassword(c.Request().Context(), req.Email)
	switch {
	case errors.Is(err, service.ErrAccountNotFound):
		return c.JSON(http.StatusNotFound, util.Error("Email không tồn tại."))
	case errors.Is(err, service.ErrMailDelivery):
		return c.JSON(http.StatusInternalServerError, util.Error("Lỗi khi gửi email."))
	case err != nil:
		return c.JSON(http.StatusInternalServerError, util.Error("unable to issue reset token"))
	}
	return c.JSON(http.StatusOK, util.Message("Mã đặt lại mật khẩu đã được gửi qua email."))
}

func (h *AuthHandler) resetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	err := h.auth.ResetPassword(c.Request().Context(), req.Token, req.NewPassword)
	switch {
	case errors.Is(err, service.ErrResetTokenInvalid):
		return c.JSON(http.StatusBadRequest, util.Error("Mã không hợp lệ hoặc đã hết hạn."))
	case err != nil:
		return c.JSON(http.StatusInternalServerError, util.Error("unable to reset password"))
	}
	return c.JSON(http.StatusOK, util.Message("Mật khẩu đã được đặt lại."))
}
