package service

import (
	"time"

	"tutorhub_backend/internal/model"
	"tutorhub_backend/internal/permission"
	"tutorhub_backend/internal/repository"
	"tutorhub_backend/internal/util"
	"tutorhub_backend/pkg/monitoring"
)

// LessonRequestView is the enriched record answered by every
// lesson-request endpoint: participant and subject names are
// denormalized so clients need no follow-up lookups.
//
// swagger:model LessonRequestView
type LessonRequestView struct {
	ID              uint                      `json:"id"`
	StudentID       uint                      `json:"studentId"`
	StudentName     string                    `json:"studentName"`
	StudentUsername string                    `json:"studentUsername"`
	TutorID         uint                      `json:"tutorId"`
	TutorName       string                    `json:"tutorName"`
	TutorUsername   string                    `json:"tutorUsername"`
	SubjectID       uint                      `json:"subjectId"`
	SubjectName     string                    `json:"subjectName"`
	Status          model.LessonRequestStatus `json:"status"`
	StatusDisplay   string                    `json:"statusDisplay"`
	Message         string                    `json:"message"`
	PreferredDate   time.Time                 `json:"preferredDate"`
	DurationHours   int                       `json:"durationHours"`
	CreatedAt       time.Time                 `json:"createdAt"`
	UpdatedAt       time.Time                 `json:"updatedAt"`
}

func newLessonRequestView(lr *model.LessonRequest) LessonRequestView {
	return LessonRequestView{
		ID:              lr.ID,
		StudentID:       lr.StudentID,
		StudentName:     lr.Student.FullName(),
		StudentUsername: lr.Student.Username,
		TutorID:         lr.TutorID,
		TutorName:       lr.Tutor.FullName(),
		TutorUsername:   lr.Tutor.Username,
		SubjectID:       lr.SubjectID,
		SubjectName:     lr.Subject.Name,
		Status:          lr.Status,
		StatusDisplay:   lr.Status.Display(),
		Message:         lr.Message,
		PreferredDate:   lr.PreferredDate,
		DurationHours:   lr.DurationHours,
		CreatedAt:       lr.CreatedAt,
		UpdatedAt:       lr.UpdatedAt,
	}
}

type LessonRequestService struct {
	LessonRequestRepo *repository.LessonRequestRepository
	UserRepo          *repository.UserRepository
	SubjectRepo       *repository.SubjectRepository
}

func NewLessonRequestService(lessonRequestRepo *repository.LessonRequestRepository, userRepo *repository.UserRepository, subjectRepo *repository.SubjectRepository) *LessonRequestService {
	return &LessonRequestService{
		LessonRequestRepo: lessonRequestRepo,
		UserRepo:          userRepo,
		SubjectRepo:       subjectRepo,
	}
}

type CreateLessonRequestInput struct {
	TutorID       uint
	SubjectID     uint
	Message       string
	PreferredDate time.Time
	DurationHours int
}

// Create records a new pending request. The student is always the
// caller, never taken from the body. The referenced user must be a
// tutor; the subject must exist, but does not have to be one the tutor
// has listed.
func (s *LessonRequestService) Create(caller *model.User, in CreateLessonRequestInput) (*LessonRequestView, error) {
	tutor, err := s.UserRepo.FindByID(in.TutorID)
	if err != nil || !tutor.IsTutor() {
		return nil, util.ErrNotATutor
	}

	subject, err := s.SubjectRepo.FindByID(in.SubjectID)
	if err != nil {
		return nil, util.ErrSubjectNotFound
	}

	lr := &model.LessonRequest{
		StudentID:     caller.ID,
		TutorID:       tutor.ID,
		SubjectID:     subject.ID,
		Status:        model.LessonPending,
		Message:       in.Message,
		PreferredDate: in.PreferredDate,
		DurationHours: in.DurationHours,
	}
	if err := s.LessonRequestRepo.Create(lr); err != nil {
		return nil, err
	}

	lr.Student = *caller
	lr.Tutor = *tutor
	lr.Subject = *subject

	view := newLessonRequestView(lr)
	return &view, nil
}

// List returns the caller's side of the workflow. The role query
// parameter is honored only when it matches the caller's actual role;
// otherwise scoping falls back to the actual role, and a caller with
// neither role sees nothing.
func (s *LessonRequestService) List(caller *model.User, roleParam string, status model.LessonRequestStatus, page, pageSize int) ([]LessonRequestView, int64, error) {
	filter := repository.LessonRequestFilter{Status: status}

	switch {
	case roleParam == string(model.RoleStudent) && caller.IsStudent():
		filter.StudentID = caller.ID
	case roleParam == string(model.RoleTutor) && caller.IsTutor():
		filter.TutorID = caller.ID
	case caller.IsStudent():
		filter.StudentID = caller.ID
	case caller.IsTutor():
		filter.TutorID = caller.ID
	default:
		return []LessonRequestView{}, 0, nil
	}

	requests, total, err := s.LessonRequestRepo.List(filter, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	views := make([]LessonRequestView, 0, len(requests))
	for i := range requests {
		views = append(views, newLessonRequestView(&requests[i]))
	}
	return views, total, nil
}

// Get returns a single request, visible to its two participants only.
// Anyone else gets not-found, never a hint that the record exists.
func (s *LessonRequestService) Get(caller *model.User, id uint) (*LessonRequestView, error) {
	lr, err := s.LessonRequestRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrLessonRequestNotFound
	}
	if !permission.CanReadLessonRequest(caller, lr) {
		return nil, util.ErrLessonRequestNotFound
	}
	view := newLessonRequestView(lr)
	return &view, nil
}

// Decide moves a pending request to approved or rejected. Authorization
// is explicit: the request is fetched first, then the caller is checked
// against it, and a caller who is not the request's tutor is answered
// with not-found. Decided requests are final.
func (s *LessonRequestService) Decide(caller *model.User, id uint, status model.LessonRequestStatus) (*LessonRequestView, error) {
	if !status.Decision() {
		return nil, util.ErrInvalidDecision
	}

	lr, err := s.LessonRequestRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrLessonRequestNotFound
	}
	if !permission.CanUpdateLessonRequest(caller, lr) {
		return nil, util.ErrLessonRequestNotFound
	}
	if lr.Status != model.LessonPending {
		return nil, util.ErrRequestAlreadyDecided
	}

	if err := s.LessonRequestRepo.UpdateStatus(lr, status); err != nil {
		return nil, err
	}
	lr.Status = status

	monitoring.LessonRequestDecisions.WithLabelValues(string(status)).Inc()

	view := newLessonRequestView(lr)
	return &view, nil
}
