package model

import "time"

type LessonRequestStatus string

const (
	LessonPending  LessonRequestStatus = "pending"
	LessonApproved LessonRequestStatus = "approved"
	LessonRejected LessonRequestStatus = "rejected"
)

// Decision reports whether the status is one a tutor may set. Only the
// two terminal states are valid decisions; a request can never be moved
// back to pending.
func (s LessonRequestStatus) Decision() bool {
	return s == LessonApproved || s == LessonRejected
}

func (s LessonRequestStatus) Display() string {
	switch s {
	case LessonPending:
		return "Pending"
	case LessonApproved:
		return "Approved"
	case LessonRejected:
		return "Rejected"
	}
	return string(s)
}

// LessonRequest is a student's proposal for a tutoring session.
// StudentID is taken from the authenticated caller at creation and never
// changes; only the referenced tutor may move Status out of pending.
// Requests are never deleted through the API.
//
// swagger:model LessonRequest
type LessonRequest struct {
	BaseModel
	StudentID     uint                `gorm:"not null;index" json:"studentId"`
	TutorID       uint                `gorm:"not null;index" json:"tutorId"`
	SubjectID     uint                `gorm:"not null" json:"subjectId"`
	Status        LessonRequestStatus `gorm:"type:varchar(10);default:'pending';index" json:"status"`
	Message       string              `gorm:"type:text;not null" json:"message"`
	PreferredDate time.Time           `json:"preferredDate"`
	DurationHours int                 `gorm:"default:1;check:duration_hours >= 1 AND duration_hours <= 8" json:"durationHours"`

	Student User    `gorm:"foreignKey:StudentID" json:"-"`
	Tutor   User    `gorm:"foreignKey:TutorID" json:"-"`
	Subject Subject `gorm:"foreignKey:SubjectID" json:"-"`
}

func (LessonRequest) TableName() string {
	return "lesson_requests"
}
