package service

import (
	"errors"
	"strings"
	"time"

	"tutorhub_backend/internal/model"
	"tutorhub_backend/internal/repository"
	"tutorhub_backend/internal/util"

	"gorm.io/gorm"
)

// TutorSubjectView annotates a subject with the tutor's experience.
//
// swagger:model TutorSubjectView
type TutorSubjectView struct {
	Subject         model.Subject `json:"subject"`
	ExperienceYears int           `json:"experienceYears"`
}

// swagger:model TutorView
type TutorView struct {
	ID           uint               `json:"id"`
	Username     string             `json:"username"`
	FirstName    string             `json:"firstName"`
	LastName     string             `json:"lastName"`
	Role         model.UserRole     `json:"role"`
	RoleDisplay  string             `json:"roleDisplay"`
	Bio          string             `json:"bio"`
	Avatar       string             `json:"avatar,omitempty"`
	Rating       float64            `json:"rating"`
	TotalLessons int                `json:"totalLessons"`
	Subjects     []TutorSubjectView `json:"subjects"`
}

// swagger:model TutorDetailView
type TutorDetailView struct {
	TutorView
	Email      string    `json:"email"`
	DateJoined time.Time `json:"dateJoined"`
}

func newTutorView(u *model.User) TutorView {
	view := TutorView{
		ID:          u.ID,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		RoleDisplay: u.Role.Display(),
		Bio:         u.Bio,
		Avatar:      u.Avatar,
		Subjects:    make([]TutorSubjectView, 0, len(u.Subjects)),
	}
	if u.Tutor != nil {
		view.Rating = u.Tutor.Rating
		view.TotalLessons = u.Tutor.TotalLessons
	}
	for _, ts := range u.Subjects {
		view.Subjects = append(view.Subjects, TutorSubjectView{
			Subject:         ts.Subject,
			ExperienceYears: ts.ExperienceYears,
		})
	}
	return view
}

// TutorFilter narrows and orders the public directory.
type TutorFilter struct {
	SubjectID uint
	Search    string
	Ordering  string
}

// orderColumns whitelists the sortable fields. Anything else falls back
// to the default rating-descending order.
var orderColumns = map[string]string{
	"rating":        "tutor_profiles.rating",
	"total_lessons": "tutor_profiles.total_lessons",
	"created_at":    "users.created_at",
}

type TutorService struct {
	UserRepo         *repository.UserRepository
	SubjectRepo      *repository.SubjectRepository
	TutorSubjectRepo *repository.TutorSubjectRepository
}

func NewTutorService(userRepo *repository.UserRepository, subjectRepo *repository.SubjectRepository, tutorSubjectRepo *repository.TutorSubjectRepository) *TutorService {
	return &TutorService{
		UserRepo:         userRepo,
		SubjectRepo:      subjectRepo,
		TutorSubjectRepo: tutorSubjectRepo,
	}
}

// List returns the public tutor directory with subject filter, free-text
// search and whitelisted ordering.
func (s *TutorService) List(filter TutorFilter, page, pageSize int) ([]TutorView, int64, error) {
	query := s.UserRepo.DB.Model(&model.User{}).
		Where("users.role = ?", model.RoleTutor).
		Joins("LEFT JOIN tutor_profiles ON tutor_profiles.user_id = users.id")

	if filter.SubjectID != 0 {
		query = query.
			Joins("JOIN tutor_subjects ON tutor_subjects.tutor_id = users.id").
			Where("tutor_subjects.subject_id = ?", filter.SubjectID)
	}

	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		query = query.Where(
			"users.username LIKE ? OR users.first_name LIKE ? OR users.last_name LIKE ? OR users.bio LIKE ?",
			term, term, term, term,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	ordering := filter.Ordering
	if ordering == "" {
		ordering = "-rating"
	}
	direction := "ASC"
	if strings.HasPrefix(ordering, "-") {
		direction = "DESC"
		ordering = ordering[1:]
	}
	column, ok := orderColumns[ordering]
	if !ok {
		column, direction = orderColumns["rating"], "DESC"
	}

	var tutors []model.User
	offset := (page - 1) * pageSize
	err := query.
		Select("users.*").
		Preload("Tutor").
		Preload("Subjects.Subject").
		Order(column + " " + direction).
		Offset(offset).Limit(pageSize).
		Find(&tutors).Error
	if err != nil {
		return nil, 0, err
	}

	views := make([]TutorView, 0, len(tutors))
	for i := range tutors {
		views = append(views, newTutorView(&tutors[i]))
	}
	return views, total, nil
}

// GetByID returns the tutor detail, 404 when the id is unknown or does
// not belong to a tutor.
func (s *TutorService) GetByID(id uint) (*TutorDetailView, error) {
	var tutor model.User
	err := s.UserRepo.DB.
		Preload("Tutor").
		Preload("Subjects.Subject").
		Where("role = ?", model.RoleTutor).
		First(&tutor, id).Error
	if err != nil {
		return nil, util.ErrTutorNotFound
	}

	view := &TutorDetailView{
		TutorView:  newTutorView(&tutor),
		Email:      tutor.Email,
		DateJoined: tutor.CreatedAt,
	}
	return view, nil
}

// AddSubject attaches a subject to the calling tutor. The (tutor,
// subject) pair is unique.
func (s *TutorService) AddSubject(tutor *model.User, subjectID uint, experienceYears int) (*TutorSubjectView, error) {
	subject, err := s.SubjectRepo.FindByID(subjectID)
	if err != nil {
		return nil, util.ErrSubjectNotFound
	}

	exists, err := s.TutorSubjectRepo.Exists(tutor.ID, subjectID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrSubjectAlreadyListed
	}

	ts := &model.TutorSubject{
		TutorID:         tutor.ID,
		SubjectID:       subjectID,
		ExperienceYears: experienceYears,
	}
	if err := s.TutorSubjectRepo.Create(ts); err != nil {
		return nil, err
	}

	return &TutorSubjectView{Subject: *subject, ExperienceYears: experienceYears}, nil
}

func (s *TutorService) RemoveSubject(tutor *model.User, subjectID uint) error {
	err := s.TutorSubjectRepo.Delete(tutor.ID, subjectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrSubjectNotFound
	}
	return err
}
