package controller

import (
	"errors"
	"strconv"

	"tutorhub_backend/internal/permission"
	"tutorhub_backend/internal/service"
	"tutorhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TutorController struct {
	AuthService  *service.AuthService
	TutorService *service.TutorService
}

func NewTutorController(authService *service.AuthService, tutorService *service.TutorService) *TutorController {
	return &TutorController{
		AuthService:  authService,
		TutorService: tutorService,
	}
}

// ListTutors godoc
// @Summary Public tutor directory
// @Description Lists tutors with their subjects; supports subject filter, free-text search and ordering
// @Tags tutors
// @Produce  json
// @Param   subject query int false "Filter by subject id"
// @Param   search query string false "Search username, first name, last name and bio"
// @Param   ordering query string false "rating, -rating, total_lessons, -total_lessons, created_at, -created_at (default -rating)"
// @Param   page query int false "Page" default(1)
// @Param   pageSize query int false "Page size" default(10)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/tutors [get]
func (c *TutorController) ListTutors(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("pageSize", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	filter := service.TutorFilter{
		SubjectID: util.ParseUintOrZero(ctx.Query("subject")),
		Search:    ctx.Query("search"),
		Ordering:  ctx.Query("ordering"),
	}

	tutors, total, err := c.TutorService.List(filter, page, pageSize)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		Items: tutors,
		Total: total,
		Page:  page,
		Pages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	})
}

// GetTutor godoc
// @Summary Tutor detail
// @Tags tutors
// @Produce  json
// @Param   id path int true "Tutor id"
// @Success 200 {object} util.Response{data=service.TutorDetailView}
// @Failure 404 {object} util.Response
// @Router /api/tutors/{id} [get]
func (c *TutorController) GetTutor(ctx *gin.Context) {
	id := util.ParseUintOrZero(ctx.Param("id"))
	tutor, err := c.TutorService.GetByID(id)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, tutor)
}

// AddSubjectRequest attaches a subject to the calling tutor.
// swagger:model AddSubjectRequest
type AddSubjectRequest struct {
	SubjectID       uint `json:"subject_id" binding:"required"`
	ExperienceYears int  `json:"experience_years" binding:"min=0"`
}

// AddSubject godoc
// @Summary List a subject as teachable
// @Tags tutors
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body AddSubjectRequest true "Subject and experience"
// @Success 201 {object} util.Response{data=service.TutorSubjectView}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/me/subjects [post]
func (c *TutorController) AddSubject(ctx *gin.Context) {
	caller, err := c.AuthService.GetCurrentUser(util.GetClaimsFromContext(ctx))
	if err != nil {
		util.Unauthorized(ctx)
		return
	}

	if !permission.TutorCanWrite(caller, ctx.Request.Method) {
		util.Forbidden(ctx)
		return
	}

	var req AddSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.TutorService.AddSubject(caller, req.SubjectID, req.ExperienceYears)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSubjectNotFound),
			errors.Is(err, util.ErrSubjectAlreadyListed):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, view)
}

// RemoveSubject godoc
// @Summary Remove a listed subject
// @Tags tutors
// @Produce  json
// @Security ApiKeyAuth
// @Param   subjectId path int true "Subject id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/me/subjects/{subjectId} [delete]
func (c *TutorController) RemoveSubject(ctx *gin.Context) {
	caller, err := c.AuthService.GetCurrentUser(util.GetClaimsFromContext(ctx))
	if err != nil {
		util.Unauthorized(ctx)
		return
	}

	if !permission.TutorCanWrite(caller, ctx.Request.Method) {
		util.Forbidden(ctx)
		return
	}

	subjectID := util.ParseUintOrZero(ctx.Param("subjectId"))
	if err := c.TutorService.RemoveSubject(caller, subjectID); err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
