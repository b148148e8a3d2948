package model

import (
	"fmt"
	"time"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTutor   UserRole = "tutor"
)

// Valid reports whether the role is one the platform accepts at
// registration time.
func (r UserRole) Valid() bool {
	return r == RoleStudent || r == RoleTutor
}

func (r UserRole) Display() string {
	switch r {
	case RoleStudent:
		return "Student"
	case RoleTutor:
		return "Tutor"
	}
	return string(r)
}

// User carries the profile fields shared by both roles. Role-specific
// payloads live in StudentProfile and TutorProfile; exactly one of the
// two associations is populated, matching the user's role.
//
// swagger:model User
type User struct {
	BaseModel
	Username  string    `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	FirstName string    `gorm:"size:100" json:"firstName"`
	LastName  string    `gorm:"size:100" json:"lastName"`
	Role      UserRole  `gorm:"type:varchar(10);not null;index" json:"role"`
	Bio       string    `gorm:"type:text" json:"bio"`
	Avatar    string    `gorm:"size:255" json:"avatar"`
	Active    bool      `gorm:"default:true" json:"-"`
	LastSeen  time.Time `gorm:"autoCreateTime" json:"-"`

	Student  *StudentProfile `gorm:"foreignKey:UserID" json:"-"`
	Tutor    *TutorProfile   `gorm:"foreignKey:UserID" json:"-"`
	Subjects []TutorSubject  `gorm:"foreignKey:TutorID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}

func (u *User) IsStudent() bool { return u.Role == RoleStudent }
func (u *User) IsTutor() bool   { return u.Role == RoleTutor }
