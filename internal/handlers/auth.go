package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dimitrije/taskapp-api/internal/apperr"
	"github.com/dimitrije/taskapp-api/internal/config"
	"github.com/dimitrije/taskapp-api/internal/i18n"
	"github.com/dimitrije/taskapp-api/internal/middleware"
	"github.com/dimitrije/taskapp-api/internal/models"
	"github.com/dimitrije/taskapp-api/internal/respond"
	"github.com/dimitrije/taskapp-api/internal/services"
	"github.com/dimitrije/taskapp-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type AuthHandler struct {
	cfg          *config.Config
	userService  UserServiceInterface
	tokenService TokenServiceInterface
	jwtService   JWTServiceInterface
	r            *respond.Renderer
}

func NewAuthHandler(
	cfg *config.Config,
	userService UserServiceInterface,
	tokenService TokenServiceInterface,
	jwtService JWTServiceInterface,
	r *respond.Renderer,
) *AuthHandler {
	return &AuthHandler{
		cfg:          cfg,
		userService:  userService,
		tokenService: tokenService,
		jwtService:   jwtService,
		r:            r,
	}
}

func (h *AuthHandler) Register(c *drift.Context) {
	var req dto.RegisterRequest
	if !bind(c, h.r, &req) {
		return
	}

	user, err := h.userService.Register(c.Request.Context(), services.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		h.r.Error(c, err)
		return
	}

	h.r.Created(c, i18n.SucRegistered, dto.NewUserResponse(user))
}

func (h *AuthHandler) Login(c *drift.Context) {
	var req dto.LoginRequest
	if !bind(c, h.r, &req) {
		return
	}

	ctx := c.Request.Context()

	user, err := h.userService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		h.r.Error(c, err)
		return
	}

	resp, err := h.issueTokens(ctx, user)
	if err != nil {
		h.r.Error(c, err)
		return
	}

	middleware.WriteCookie(c, middleware.AuthCookie, resp.AccessToken, h.jwtService.AccessExpiry(), h.cfg.CookiesSecure)
	h.r.OK(c, i18n.SucLoggedIn, resp)
}

func (h *AuthHandler) RefreshToken(c *drift.Context) {
	var req dto.RefreshTokenRequest
	if err := c.BindJSON(&req); err != nil || req.RefreshToken == "" {
		h.r.Error(c, apperr.Validation(i18n.ErrMissingField))
		return
	}

	unauthenticated := apperr.Unauthenticated(i18n.ErrNotAuthenticated)

	userID, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		h.r.Error(c, unauthenticated.Wrap(err))
		return
	}

	tokenHash := services.HashToken(req.RefreshToken)
	ctx := c.Request.Context()

	storedUserID, err := h.tokenService.ValidateRefreshToken(ctx, tokenHash)
	if err != nil || storedUserID != userID {
		if err != nil && !errors.Is(err, services.ErrNotFound) {
			h.r.Error(c, err)
			return
		}
		h.r.Error(c, unauthenticated)
		return
	}

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			h.r.Error(c, unauthenticated)
			return
		}
		h.r.Error(c, err)
		return
	}
	if user.IsBlocked {
		h.r.Error(c, apperr.Forbidden(i18n.ErrBlocked))
		return
	}

	if err := h.tokenService.RevokeRefreshToken(ctx, tokenHash); err != nil {
		h.r.Error(c, err)
		return
	}

	resp, err := h.issueTokens(ctx, user)
	if err != nil {
		h.r.Error(c, err)
		return
	}

	middleware.WriteCookie(c, middleware.AuthCookie, resp.AccessToken, h.jwtService.AccessExpiry(), h.cfg.CookiesSecure)
	h.r.OK(c, i18n.SucTokenRefreshed, resp)
}

// Logout revokes the given refresh token, if any, and clears the cookie.
func (h *AuthHandler) Logout(c *drift.Context) {
	var req dto.RefreshTokenRequest
	_ = c.BindJSON(&req)

	if req.RefreshToken != "" {
		tokenHash := services.HashToken(req.RefreshToken)
		_ = h.tokenService.RevokeRefreshToken(c.Request.Context(), tokenHash)
	}

	middleware.WriteCookie(c, middleware.AuthCookie, "", -1, h.cfg.CookiesSecure)
	h.r.OK(c, i18n.SucLoggedOut, nil)
}

func (h *AuthHandler) LogoutAll(c *drift.Context) {
	p, ok := principal(c, h.r)
	if !ok {
		return
	}

	if err := h.tokenService.RevokeAllUserTokens(c.Request.Context(), p.UserID); err != nil {
		h.r.Error(c, err)
		return
	}

	middleware.WriteCookie(c, middleware.AuthCookie, "", -1, h.cfg.CookiesSecure)
	h.r.OK(c, i18n.SucLoggedOut, nil)
}

func (h *AuthHandler) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	pair, err := h.jwtService.GenerateTokenPair(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, err
	}

	tokenHash := services.HashToken(pair.RefreshToken)
	expiresAt := time.Now().Add(h.jwtService.RefreshExpiry())
	if err := h.tokenService.StoreRefreshToken(ctx, user.ID, tokenHash, expiresAt); err != nil {
		return nil, err
	}

	userResp := dto.NewUserResponse(user)
	return &dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		User:         &userResp,
	}, nil
}

// Locale reports the negotiated locale and, when ?locale= names a supported
// one, remembers it in a cookie.
func (h *AuthHandler) Locale(c *drift.Context) {
	locale := h.r.Locale(c)
	if requested := c.QueryParam("locale"); requested != "" && h.r.Catalog().Supports(requested) {
		middleware.WriteCookie(c, middleware.LocaleCookie, requested, 365*24*time.Hour, h.cfg.CookiesSecure)
		locale = requested
	}
	_ = c.JSON(http.StatusOK, dto.LocaleResponse{Locale: locale})
}
