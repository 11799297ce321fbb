package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-booking/internal/middleware"
	"github.com/iliyamo/venue-booking/internal/model"
	"github.com/iliyamo/venue-booking/internal/repository"
	"github.com/iliyamo/venue-booking/internal/utils"
)

// UserStore reads back-office accounts.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// TokenStore persists hashed refresh tokens.
type TokenStore interface {
	StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error
	Rotate(ctx context.Context, oldHash, newHash string, exp time.Time) (uint64, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID uint64) error
}

// TokenSettings carries the signing secret and token lifetimes.
type TokenSettings struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// AuthHandler serves the back-office session endpoints.
type AuthHandler struct {
	Tokens TokenSettings
	Users  UserStore
	Store  TokenStore
}

func NewAuthHandler(ts TokenSettings, u UserStore, t TokenStore) *AuthHandler {
	return &AuthHandler{Tokens: ts, Users: u, Store: t}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
type authResp struct {
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

// issue signs an access token for u and pairs it with refresh.
func (h *AuthHandler) issue(u model.User, refresh utils.RefreshToken) (authResp, error) {
	access, err := utils.NewAccessToken(h.Tokens.Secret, u.ID, u.Role, h.Tokens.AccessTTL)
	if err != nil {
		return authResp{}, err
	}
	return authResp{
		User:    userPart{ID: u.ID, Email: u.Email, Role: u.Role},
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
	}, nil
}

// Login checks staff credentials and starts a session.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	case !u.IsActive, !utils.VerifyPassword(u.PasswordHash, req.Password):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	refresh, err := utils.NewRefreshToken(h.Tokens.RefreshTTL)
	if err == nil {
		err = h.Store.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "start session failed"})
	}
	resp, err := h.issue(u, refresh)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "sign token failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Refresh trades a refresh token for a new pair.  The old token is revoked
// in the same transaction, so each one works once.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	next, err := utils.NewRefreshToken(h.Tokens.RefreshTTL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "start session failed"})
	}
	oldHash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))
	userID, err := h.Store.Rotate(ctx, oldHash, utils.HashRefreshRaw(next.Raw), next.Exp)
	switch {
	case errors.Is(err, repository.ErrRefreshInvalid):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "rotate refresh failed"})
	}

	u, err := h.Users.GetByID(ctx, userID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	case !u.IsActive:
		_ = h.Store.RevokeAllForUser(ctx, u.ID)
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}

	resp, err := h.issue(u, next)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "sign token failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout revokes the refresh token in the body, or every refresh token of
// the authenticated user when the body carries none.  Runs behind JWTAuth.
func (h *AuthHandler) Logout(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req refreshReq
	_ = c.Bind(&req)
	raw := strings.TrimSpace(req.RefreshToken)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var err error
	if raw != "" {
		err = h.Store.RevokeByHash(ctx, utils.HashRefreshRaw(raw))
	} else {
		err = h.Store.RevokeAllForUser(ctx, uid)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated user's id and role.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, _ := middleware.UserID(c)
	return c.JSON(http.StatusOK, echo.Map{
		"user_id": uid,
		"role":    middleware.Role(c),
	})
}
