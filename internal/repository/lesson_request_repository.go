package repository

import (
	"tutorhub_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRequestRepository struct {
	DB *gorm.DB
}

func NewLessonRequestRepository(db *gorm.DB) *LessonRequestRepository {
	return &LessonRequestRepository{DB: db}
}

func (r *LessonRequestRepository) Create(lr *model.LessonRequest) error {
	return r.DB.Create(lr).Error
}

// FindByID loads a request with its participants and subject so the
// response can be denormalized without extra queries.
func (r *LessonRequestRepository) FindByID(id uint) (*model.LessonRequest, error) {
	var lr model.LessonRequest
	err := r.DB.Preload("Student").Preload("Tutor").Preload("Subject").
		First(&lr, id).Error
	if err != nil {
		return nil, err
	}
	return &lr, nil
}

// LessonRequestFilter narrows a listing. Exactly one of StudentID or
// TutorID is set by the service, driven by the caller's role.
type LessonRequestFilter struct {
	StudentID uint
	TutorID   uint
	Status    model.LessonRequestStatus
}

func (r *LessonRequestRepository) List(filter LessonRequestFilter, page, pageSize int) ([]model.LessonRequest, int64, error) {
	query := r.DB.Model(&model.LessonRequest{})

	if filter.StudentID != 0 {
		query = query.Where("student_id = ?", filter.StudentID)
	}
	if filter.TutorID != 0 {
		query = query.Where("tutor_id = ?", filter.TutorID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []model.LessonRequest
	offset := (page - 1) * pageSize
	err := query.
		Preload("Student").Preload("Tutor").Preload("Subject").
		Order("created_at DESC").
		Offset(offset).Limit(pageSize).
		Find(&requests).Error

	return requests, total, err
}

// UpdateStatus persists a decision. The caller has already verified the
// transition; this only touches status and updated_at.
func (r *LessonRequestRepository) UpdateStatus(lr *model.LessonRequest, status model.LessonRequestStatus) error {
	return r.DB.Model(lr).Update("status", status).Error
}
