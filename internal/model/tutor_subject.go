package model

// TutorSubject records that a tutor teaches a subject, with years of
// experience. A tutor lists a subject at most once.
//
// swagger:model TutorSubject
type TutorSubject struct {
	BaseModel
	TutorID         uint    `gorm:"not null;uniqueIndex:idx_tutor_subject" json:"tutorId"`
	SubjectID       uint    `gorm:"not null;uniqueIndex:idx_tutor_subject" json:"subjectId"`
	ExperienceYears int     `gorm:"default:0;check:experience_years >= 0" json:"experienceYears"`
	Subject         Subject `gorm:"foreignKey:SubjectID" json:"subject"`
}

func (TutorSubject) TableName() string {
	return "tutor_subjects"
}
