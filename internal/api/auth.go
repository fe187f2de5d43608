package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"smart-fuel-crm/internal/auth"
	"smart-fuel-crm/internal/logger"
	"smart-fuel-crm/internal/models"
	"smart-fuel-crm/internal/repository"
	dto "smart-fuel-crm/pkg/models"
)

type AuthHandler struct {
	profiles *repository.ProfileRepository
	issuer   *auth.Issuer
}

func NewAuthHandler(profiles *repository.ProfileRepository, issuer *auth.Issuer) *AuthHandler {
	return &AuthHandler{profiles: profiles, issuer: issuer}
}

type RegisterRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=6"`
	FullName *string `json:"full_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SessionResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	User      *models.Profile `json:"user"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	_, err := h.profiles.GetByEmail(c.Request.Context(), email)
	if err == nil {
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "Email is already registered"})
		return
	}
	if !errors.Is(err, repository.ErrNotFound) {
		respondError(c, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	p := &models.Profile{Email: email, PasswordHash: hash, FullName: trimmed(req.FullName)}
	if err := h.profiles.Create(c.Request.Context(), p); err != nil {
		respondError(c, err)
		return
	}
	logger.Infow("user registered", "user_id", p.ID)
	h.session(c, http.StatusCreated, p)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.profiles.GetByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		respondError(c, err)
		return
	}
	if p == nil || !auth.CheckPassword(p.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Invalid email or password"})
		return
	}
	h.session(c, http.StatusOK, p)
}

func (h *AuthHandler) session(c *gin.Context, code int, p *models.Profile) {
	token, exp, err := h.issuer.Issue(p.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(code, SessionResponse{Token: token, ExpiresAt: exp, User: p})
}

type ProfileHandler struct {
	profiles *repository.ProfileRepository
}

func NewProfileHandler(profiles *repository.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name"`
}

func (h *ProfileHandler) Get(c *gin.Context) {
	p, err := h.profiles.Get(c.Request.Context(), auth.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	userID := auth.UserID(c)
	if err := h.profiles.UpdateFullName(c.Request.Context(), userID, trimmed(req.FullName)); err != nil {
		respondError(c, err)
		return
	}
	h.Get(c)
}
