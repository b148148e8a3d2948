package util

import "errors"

var (
	ErrUsernameTaken         = errors.New("username already taken")
	ErrEmailRegistered       = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrAccountInactive       = errors.New("account is inactive")
	ErrInvalidRole           = errors.New("invalid role, choose 'student' or 'tutor'")
	ErrUserNotFound          = errors.New("user not found")
	ErrTutorNotFound         = errors.New("tutor not found")
	ErrSubjectNotFound       = errors.New("subject not found")
	ErrSubjectAlreadyListed  = errors.New("subject already listed by this tutor")
	ErrNotATutor             = errors.New("selected user is not a tutor")
	ErrLessonRequestNotFound = errors.New("lesson request not found")
	ErrRequestAlreadyDecided = errors.New("lesson request has already been decided")
	ErrInvalidDecision       = errors.New("status must be 'approved' or 'rejected'")
	ErrInvalidRefreshToken   = errors.New("invalid or expired refresh token")
	ErrPermissionDenied      = errors.New("permission denied")
)
