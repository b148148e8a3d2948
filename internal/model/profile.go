package model

import "fmt"

// StudentProfile is the student-only payload. GradeLevel is nullable:
// a student may register without declaring a grade.
//
// swagger:model StudentProfile
type StudentProfile struct {
	BaseModel
	UserID     uint `gorm:"uniqueIndex;not null" json:"userId"`
	GradeLevel *int `gorm:"check:grade_level >= 1 AND grade_level <= 12" json:"gradeLevel"`
}

func (StudentProfile) TableName() string {
	return "student_profiles"
}

// GradeLevelDisplay renders "7th Grade" style labels, empty when unset.
func (p *StudentProfile) GradeLevelDisplay() string {
	if p == nil || p.GradeLevel == nil {
		return ""
	}
	n := *p.GradeLevel
	suffix := "th"
	switch n {
	case 1:
		suffix = "st"
	case 2:
		suffix = "nd"
	case 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s Grade", n, suffix)
}

// TutorProfile is the tutor-only payload. Rating and TotalLessons are
// maintained by the platform, never writable through profile updates.
//
// swagger:model TutorProfile
type TutorProfile struct {
	BaseModel
	UserID       uint    `gorm:"uniqueIndex;not null" json:"userId"`
	Rating       float64 `gorm:"default:0;check:rating >= 0 AND rating <= 5" json:"rating"`
	TotalLessons int     `gorm:"default:0" json:"totalLessons"`
}

func (TutorProfile) TableName() string {
	return "tutor_profiles"
}
