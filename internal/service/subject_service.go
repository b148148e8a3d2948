package service

import (
	"tutorhub_backend/internal/model"
	"tutorhub_backend/internal/repository"
)

type SubjectService struct {
	SubjectRepo *repository.SubjectRepository
}

func NewSubjectService(subjectRepo *repository.SubjectRepository) *SubjectService {
	return &SubjectService{SubjectRepo: subjectRepo}
}

func (s *SubjectService) List() ([]model.Subject, error) {
	return s.SubjectRepo.FindAll()
}
