package controller

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"tutorhub_backend/internal/service"
	"tutorhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	AuthService    *service.AuthService
	UserService    *service.UserService
	StorageService *service.StorageService
}

func NewUserController(authService *service.AuthService, userService *service.UserService, storageService *service.StorageService) *UserController {
	return &UserController{
		AuthService:    authService,
		UserService:    userService,
		StorageService: storageService,
	}
}

// GetProfile godoc
// @Summary Get own profile
// @Tags profile
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.ProfileView}
// @Failure 401 {object} util.Response
// @Router /api/me [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	claims := util.GetClaimsFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	profile, err := c.UserService.GetProfile(claims.UserID)
	if err != nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, profile)
}

// UpdateProfileRequest lists the self-service fields. Username, role,
// rating and lesson counters cannot be changed here. Fields absent from
// the payload keep their current value.
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	Email      *string `json:"email" binding:"omitempty,email"`
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Bio        *string `json:"bio"`
	GradeLevel *int    `json:"grade_level" binding:"omitempty,min=1,max=12"`
}

// UpdateProfile godoc
// @Summary Update own profile
// @Tags profile
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} util.Response{data=service.ProfileView}
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/me [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetClaimsFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile, err := c.UserService.UpdateProfile(claims.UserID, service.UpdateProfileInput{
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Bio:        req.Bio,
		GradeLevel: req.GradeLevel,
	})
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEmailRegistered):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrUserNotFound):
			util.Unauthorized(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, profile)
}

// UploadAvatar godoc
// @Summary Upload an avatar image
// @Tags profile
// @Accept  mpfd
// @Produce  json
// @Security ApiKeyAuth
// @Param   avatar formData file true "Avatar image"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Router /api/me/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	claims := util.GetClaimsFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	fileHeader, err := ctx.FormFile("avatar")
	if err != nil {
		util.BadRequest(ctx, "avatar file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	allowed := false
	for _, e := range util.AllowedAvatarExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		util.BadRequest(ctx, "unsupported image format")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("avatars/%d_%d%s", claims.UserID, time.Now().UnixNano(), ext)
	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := c.UserService.UpdateAvatar(claims.UserID, url); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"avatar": url})
}
