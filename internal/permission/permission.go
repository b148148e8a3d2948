// Package permission holds the access-control predicates shared by every
// endpoint. All of them are pure functions over the authenticated caller
// and (optionally) a target object; handlers evaluate them explicitly
// before touching data, and a deny is reported through the normal
// response path, never a panic.
package permission

import (
	"net/http"

	"tutorhub_backend/internal/model"
)

// SafeMethod reports whether the HTTP method is read-only.
func SafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// StudentCanWrite gates write operations to authenticated students.
// Read operations pass for anyone.
func StudentCanWrite(caller *model.User, method string) bool {
	if SafeMethod(method) {
		return true
	}
	return caller != nil && caller.IsStudent()
}

// TutorCanWrite gates write operations to authenticated tutors.
// Read operations pass for anyone.
func TutorCanWrite(caller *model.User, method string) bool {
	if SafeMethod(method) {
		return true
	}
	return caller != nil && caller.IsTutor()
}

// CanReadLessonRequest allows only the two participants of a request to
// see it.
func CanReadLessonRequest(caller *model.User, lr *model.LessonRequest) bool {
	if caller == nil || lr == nil {
		return false
	}
	return caller.ID == lr.StudentID || caller.ID == lr.TutorID
}

// CanUpdateLessonRequest allows only the referenced tutor to decide a
// request. The student who created it cannot update it through any path.
func CanUpdateLessonRequest(caller *model.User, lr *model.LessonRequest) bool {
	if caller == nil || lr == nil {
		return false
	}
	return caller.IsTutor() && caller.ID == lr.TutorID
}

// IsSelf allows an operation only when the target identity is the caller.
func IsSelf(caller *model.User, targetID uint) bool {
	return caller != nil && caller.ID == targetID
}
