package controller

import (
	"errors"

	"tutorhub_backend/internal/model"
	"tutorhub_backend/internal/service"
	"tutorhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
	UserService *service.UserService
}

func NewAuthController(authService *service.AuthService, userService *service.UserService) *AuthController {
	return &AuthController{
		AuthService: authService,
		UserService: userService,
	}
}

// RegisterRequest defines the registration payload.
// swagger:model RegisterRequest
type RegisterRequest struct {
	Username        string `json:"username" binding:"required,min=3,max=100"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
	FirstName       string `json:"first_name" binding:"required"`
	LastName        string `json:"last_name" binding:"required"`
	Role            string `json:"role" binding:"required,oneof=student tutor"`
	Bio             string `json:"bio"`
	GradeLevel      *int   `json:"grade_level" binding:"omitempty,min=1,max=12"`
}

// Register godoc
// @Summary Register a new user
// @Description Creates a student or tutor account and returns the profile with a token pair
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "Registration payload"
// @Success 201 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if req.Password != req.PasswordConfirm {
		util.BadRequest(ctx, "passwords do not match")
		return
	}

	user, tokens, err := c.AuthService.Register(ctx.Request.Context(), service.RegisterInput{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Role:       model.UserRole(req.Role),
		Bio:        req.Bio,
		GradeLevel: req.GradeLevel,
	})
	if err != nil {
		switch {
		case errors.Is(err, util.ErrUsernameTaken),
			errors.Is(err, util.ErrEmailRegistered),
			errors.Is(err, util.ErrInvalidRole):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{
		"user":   service.NewProfileView(user),
		"tokens": tokens,
	})
}

// swagger:model LoginRequest
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials and returns the profile with a fresh token pair
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "Credentials"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, tokens, err := c.AuthService.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidCredentials),
			errors.Is(err, util.ErrAccountInactive):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"user":   service.NewProfileView(user),
		"tokens": tokens,
	})
}

// swagger:model RefreshRequest
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// Refresh godoc
// @Summary Rotate a refresh token
// @Description Exchanges a valid refresh token for a new token pair; the old refresh token is revoked
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body RefreshRequest true "Refresh token"
// @Success 200 {object} util.Response{data=util.TokenPair}
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/auth/refresh [post]
func (c *AuthController) Refresh(ctx *gin.Context) {
	var req RefreshRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	_, tokens, err := c.AuthService.Refresh(ctx.Request.Context(), req.Refresh)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidRefreshToken),
			errors.Is(err, util.ErrAccountInactive):
			util.Error(ctx, 401, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"tokens": tokens})
}
