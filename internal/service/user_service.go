package service

import (
	"errors"
	"time"

	"tutorhub_backend/internal/model"
	"tutorhub_backend/internal/repository"
	"tutorhub_backend/internal/util"

	"gorm.io/gorm"
)

// ProfileView is the flattened profile shape the API answers with. The
// role-specific payload is merged in: grade level for students, rating
// and lesson counters for tutors.
//
// swagger:model ProfileView
type ProfileView struct {
	ID                uint           `json:"id"`
	Username          string         `json:"username"`
	Email             string         `json:"email"`
	FirstName         string         `json:"firstName"`
	LastName          string         `json:"lastName"`
	Role              model.UserRole `json:"role"`
	RoleDisplay       string         `json:"roleDisplay"`
	Bio               string         `json:"bio"`
	Avatar            string         `json:"avatar,omitempty"`
	GradeLevel        *int           `json:"gradeLevel,omitempty"`
	GradeLevelDisplay string         `json:"gradeLevelDisplay,omitempty"`
	Rating            *float64       `json:"rating,omitempty"`
	TotalLessons      *int           `json:"totalLessons,omitempty"`
	DateJoined        time.Time      `json:"dateJoined"`
}

func NewProfileView(u *model.User) ProfileView {
	view := ProfileView{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		RoleDisplay: u.Role.Display(),
		Bio:         u.Bio,
		Avatar:      u.Avatar,
		DateJoined:  u.CreatedAt,
	}
	if u.Student != nil {
		view.GradeLevel = u.Student.GradeLevel
		view.GradeLevelDisplay = u.Student.GradeLevelDisplay()
	}
	if u.Tutor != nil {
		view.Rating = &u.Tutor.Rating
		view.TotalLessons = &u.Tutor.TotalLessons
	}
	return view
}

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetProfile(userID uint) (*ProfileView, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	view := NewProfileView(user)
	return &view, nil
}

// UpdateProfileInput carries the self-service fields. Every field is a
// pointer so a partial update touches only what the payload supplied;
// nil means "leave as is".
type UpdateProfileInput struct {
	Email      *string
	FirstName  *string
	LastName   *string
	Bio        *string
	GradeLevel *int
}

// UpdateProfile mutates the self-service fields only. Username, role,
// rating and lesson counters are immutable through this path; grade
// level is applied only when the caller is a student.
func (s *UserService) UpdateProfile(userID uint, in UpdateProfileInput) (*ProfileView, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	if in.Email != nil && *in.Email != "" && *in.Email != user.Email {
		if _, err := s.UserRepo.FindByEmail(*in.Email); err == nil {
			return nil, util.ErrEmailRegistered
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *in.Email
	}

	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}

	if user.IsStudent() && in.GradeLevel != nil {
		if user.Student == nil {
			user.Student = &model.StudentProfile{UserID: user.ID}
		}
		user.Student.GradeLevel = in.GradeLevel
		if err := s.UserRepo.SaveStudentProfile(user.Student); err != nil {
			return nil, err
		}
	}

	view := NewProfileView(user)
	return &view, nil
}

func (s *UserService) UpdateAvatar(userID uint, url string) error {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return util.ErrUserNotFound
	}
	user.Avatar = url
	return s.UserRepo.Update(user)
}
