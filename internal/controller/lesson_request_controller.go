package controller

import (
	"errors"
	"strconv"
	"time"

	"tutorhub_backend/internal/model"
	"tutorhub_backend/internal/permission"
	"tutorhub_backend/internal/service"
	"tutorhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonRequestController struct {
	AuthService          *service.AuthService
	LessonRequestService *service.LessonRequestService
}

func NewLessonRequestController(authService *service.AuthService, lessonRequestService *service.LessonRequestService) *LessonRequestController {
	return &LessonRequestController{
		AuthService:          authService,
		LessonRequestService: lessonRequestService,
	}
}

// CreateLessonRequestRequest is the student's proposal payload. The
// student is always the authenticated caller; it cannot be supplied.
// swagger:model CreateLessonRequestRequest
type CreateLessonRequestRequest struct {
	TutorID       uint      `json:"tutor_id" binding:"required"`
	SubjectID     uint      `json:"subject_id" binding:"required"`
	Message       string    `json:"message" binding:"required"`
	PreferredDate time.Time `json:"preferred_date" binding:"required"`
	DurationHours int       `json:"duration_hours" binding:"required,min=1,max=8"`
}

// Create godoc
// @Summary Create a lesson request
// @Description Students propose a session to a tutor; the request starts out pending
// @Tags lesson-requests
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateLessonRequestRequest true "Request payload"
// @Success 201 {object} util.Response{data=service.LessonRequestView}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response "Caller is not a student"
// @Router /api/lesson-requests/create [post]
func (c *LessonRequestController) Create(ctx *gin.Context) {
	caller, err := c.AuthService.GetCurrentUser(util.GetClaimsFromContext(ctx))
	if err != nil {
		util.Unauthorized(ctx)
		return
	}

	if !permission.StudentCanWrite(caller, ctx.Request.Method) {
		util.Forbidden(ctx)
		return
	}

	var req CreateLessonRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.LessonRequestService.Create(caller, service.CreateLessonRequestInput{
		TutorID:       req.TutorID,
		SubjectID:     req.SubjectID,
		Message:       req.Message,
		PreferredDate: req.PreferredDate,
		DurationHours: req.DurationHours,
	})
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNotATutor),
			errors.Is(err, util.ErrSubjectNotFound):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, view)
}

// List godoc
// @Summary List own lesson requests
// @Description Students see requests they created, tutors see requests addressed to them
// @Tags lesson-requests
// @Produce  json
// @Security ApiKeyAuth
// @Param   role query string false "student or tutor; honored only when it matches the caller's role"
// @Param   status query string false "pending, approved or rejected"
// @Param   page query int false "Page" default(1)
// @Param   pageSize query int false "Page size" default(10)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 401 {object} util.Response
// @Router /api/lesson-requests [get]
func (c *LessonRequestController) List(ctx *gin.Context) {
	caller, err := c.AuthService.GetCurrentUser(util.GetClaimsFromContext(ctx))
	if err != nil {
		util.Unauthorized(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("pageSize", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	status := model.LessonRequestStatus(ctx.Query("status"))

	views, total, err := c.LessonRequestService.List(caller, ctx.Query("role"), status, page, pageSize)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		Items: views,
		Total: total,
		Page:  page,
		Pages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	})
}

// Get godoc
// @Summary Fetch a single lesson request
// @Description Visible only to the request's student and tutor
// @Tags lesson-requests
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Request id"
// @Success 200 {object} util.Response{data=service.LessonRequestView}
// @Failure 404 {object} util.Response
// @Router /api/lesson-requests/{id} [get]
func (c *LessonRequestController) Get(ctx *gin.Context) {
	caller, err := c.AuthService.GetCurrentUser(util.GetClaimsFromContext(ctx))
	if err != nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.ParseUintOrZero(ctx.Param("id"))
	view, err := c.LessonRequestService.Get(caller, id)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, view)
}

// UpdateLessonRequestRequest carries the tutor's decision.
// swagger:model UpdateLessonRequestRequest
type UpdateLessonRequestRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

// UpdateStatus godoc
// @Summary Decide a lesson request
// @Description The request's tutor approves or rejects a pending request; anyone else gets 404
// @Tags lesson-requests
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Request id"
// @Param   body body UpdateLessonRequestRequest true "Decision"
// @Success 200 {object} util.Response{data=service.LessonRequestView}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/lesson-requests/{id} [patch]
func (c *LessonRequestController) UpdateStatus(ctx *gin.Context) {
	caller, err := c.AuthService.GetCurrentUser(util.GetClaimsFromContext(ctx))
	if err != nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateLessonRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	id := util.ParseUintOrZero(ctx.Param("id"))
	view, err := c.LessonRequestService.Decide(caller, id, model.LessonRequestStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrLessonRequestNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidDecision),
			errors.Is(err, util.ErrRequestAlreadyDecided):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, view)
}
