package repository

import (
	"tutorhub_backend/internal/model"

	"gorm.io/gorm"
)

type TutorSubjectRepository struct {
	DB *gorm.DB
}

func NewTutorSubjectRepository(db *gorm.DB) *TutorSubjectRepository {
	return &TutorSubjectRepository{DB: db}
}

func (r *TutorSubjectRepository) Create(ts *model.TutorSubject) error {
	return r.DB.Create(ts).Error
}

func (r *TutorSubjectRepository) FindByTutor(tutorID uint) ([]model.TutorSubject, error) {
	var list []model.TutorSubject
	err := r.DB.Preload("Subject").Where("tutor_id = ?", tutorID).Find(&list).Error
	return list, err
}

func (r *TutorSubjectRepository) Exists(tutorID, subjectID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.TutorSubject{}).
		Where("tutor_id = ? AND subject_id = ?", tutorID, subjectID).
		Count(&count).Error
	return count > 0, err
}

func (r *TutorSubjectRepository) Delete(tutorID, subjectID uint) error {
	result := r.DB.Where("tutor_id = ? AND subject_id = ?", tutorID, subjectID).
		Delete(&model.TutorSubject{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
