package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
	"github.com/labstack/echo/v4"
)

// UserService is the workflow the handlers drive. *services.UserService
// implements it.
type UserService interface {
	Signup(ctx context.Context, in services.SignupInput) (string, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	Refresh(ctx context.Context, userID, refreshToken string) (*services.TokenPair, error)
	GetInfo(ctx context.Context, userID string) (*services.UserInfo, error)
	Logout(ctx context.Context, userID string) (bool, error)
}

// UserHandler serves the /api/user routes.
type UserHandler struct {
	users UserService
}

func NewUserHandler(users UserService) *UserHandler {
	return &UserHandler{users: users}
}

// bind decodes the JSON body into req and validates it. Both decoding and
// validation failures wrap common.ErrorValidation.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return c.Validate(req)
}

func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return loginErrors.resolve(err)
	}

	res, err := h.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return loginErrors.resolve(err)
	}

	return c.JSON(http.StatusOK, loginResponse{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		UserID:       res.UserID,
		Name:         res.Name,
	})
}

func (h *UserHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := bind(c, &req); err != nil {
		return signupErrors.resolve(err)
	}

	email, err := h.users.Signup(c.Request().Context(), services.SignupInput{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Name:            req.Name,
	})
	if err != nil {
		return signupErrors.resolve(err)
	}

	return c.JSON(http.StatusOK, signupResponse{Email: email})
}

func (h *UserHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := bind(c, &req); err != nil {
		return refreshErrors.resolve(err)
	}

	pair, err := h.users.Refresh(c.Request().Context(), req.UserID, req.RefreshToken)
	if err != nil {
		return refreshErrors.resolve(err)
	}

	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Info returns the profile of the bearer's user.
func (h *UserHandler) Info(c echo.Context) error {
	info, err := h.users.GetInfo(c.Request().Context(), UserIDFrom(c))
	if err != nil {
		return infoErrors.resolve(err)
	}

	return c.JSON(http.StatusOK, infoResponse{Email: info.Email, Name: info.Name})
}

// Logout revokes the bearer's refresh token.
func (h *UserHandler) Logout(c echo.Context) error {
	revoked, err := h.users.Logout(c.Request().Context(), UserIDFrom(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, logoutResponse{Revoked: revoked})
}

func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}
