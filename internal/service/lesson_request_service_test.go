package service

import (
	"testing"
	"time"

	"tutorhub_backend/internal/model"
	"tutorhub_backend/internal/repository"
	"tutorhub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type lessonRequestFixture struct {
	svc     *LessonRequestService
	db      *gorm.DB
	student *model.User
	tutor   *model.User
	subject *model.Subject
}

func newLessonRequestFixture(t *testing.T) *lessonRequestFixture {
	t.Helper()
	db := newTestDB(t)
	return &lessonRequestFixture{
		svc: NewLessonRequestService(
			repository.NewLessonRequestRepository(db),
			repository.NewUserRepository(db),
			repository.NewSubjectRepository(db),
		),
		db:      db,
		student: createStudent(t, db, "nora"),
		tutor:   createTutor(t, db, "amelia", 4.8, 150),
		subject: createSubject(t, db, "Mathematics"),
	}
}

func (f *lessonRequestFixture) createRequest(t *testing.T) *LessonRequestView {
	t.Helper()
	view, err := f.svc.Create(f.student, CreateLessonRequestInput{
		TutorID:       f.tutor.ID,
		SubjectID:     f.subject.ID,
		Message:       "Need help with calculus",
		PreferredDate: time.Now().Add(48 * time.Hour),
		DurationHours: 2,
	})
	require.NoError(t, err)
	return view
}

func TestCreateLessonRequest(t *testing.T) {
	f := newLessonRequestFixture(t)

	view := f.createRequest(t)
	assert.NotZero(t, view.ID)
	assert.Equal(t, f.student.ID, view.StudentID)
	assert.Equal(t, f.tutor.ID, view.TutorID)
	assert.Equal(t, model.LessonPending, view.Status)
	assert.Equal(t, "Pending", view.StatusDisplay)
	assert.Equal(t, "nora", view.StudentUsername)
	assert.Equal(t, "amelia", view.TutorUsername)
	assert.Equal(t, "Mathematics", view.SubjectName)
}

func TestCreateLessonRequestTargetMustBeTutor(t *testing.T) {
	f := newLessonRequestFixture(t)
	other := createStudent(t, f.db, "tom")

	_, err := f.svc.Create(f.student, CreateLessonRequestInput{
		TutorID:       other.ID,
		SubjectID:     f.subject.ID,
		Message:       "hi",
		PreferredDate: time.Now(),
		DurationHours: 1,
	})
	assert.ErrorIs(t, err, util.ErrNotATutor)

	_, err = f.svc.Create(f.student, CreateLessonRequestInput{
		TutorID:       9999,
		SubjectID:     f.subject.ID,
		Message:       "hi",
		PreferredDate: time.Now(),
		DurationHours: 1,
	})
	assert.ErrorIs(t, err, util.ErrNotATutor)
}

func TestCreateLessonRequestUnknownSubject(t *testing.T) {
	f := newLessonRequestFixture(t)

	_, err := f.svc.Create(f.student, CreateLessonRequestInput{
		TutorID:       f.tutor.ID,
		SubjectID:     9999,
		Message:       "hi",
		PreferredDate: time.Now(),
		DurationHours: 1,
	})
	assert.ErrorIs(t, err, util.ErrSubjectNotFound)
}

func TestListLessonRequestsScoping(t *testing.T) {
	f := newLessonRequestFixture(t)
	f.createRequest(t)

	// a second student's request to the same tutor
	other := createStudent(t, f.db, "tom")
	_, err := f.svc.Create(other, CreateLessonRequestInput{
		TutorID:       f.tutor.ID,
		SubjectID:     f.subject.ID,
		Message:       "me too",
		PreferredDate: time.Now().Add(24 * time.Hour),
		DurationHours: 1,
	})
	require.NoError(t, err)

	views, total, err := f.svc.List(f.student, "", "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, views, 1)
	assert.Equal(t, f.student.ID, views[0].StudentID)

	// the tutor sees everything addressed to them
	views, total, err = f.svc.List(f.tutor, "tutor", "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, views, 2)

	// a role parameter that does not match the caller's role falls back
	// to the caller's actual side
	views, total, err = f.svc.List(f.student, "tutor", "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, views, 1)
	assert.Equal(t, f.student.ID, views[0].StudentID)
}

func TestListLessonRequestsStatusFilter(t *testing.T) {
	f := newLessonRequestFixture(t)
	view := f.createRequest(t)

	_, err := f.svc.Decide(f.tutor, view.ID, model.LessonApproved)
	require.NoError(t, err)

	other := createStudent(t, f.db, "tom")
	_, err = f.svc.Create(other, CreateLessonRequestInput{
		TutorID:       f.tutor.ID,
		SubjectID:     f.subject.ID,
		Message:       "another one",
		PreferredDate: time.Now().Add(24 * time.Hour),
		DurationHours: 1,
	})
	require.NoError(t, err)

	views, total, err := f.svc.List(f.tutor, "tutor", model.LessonApproved, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, views, 1)
	assert.Equal(t, model.LessonApproved, views[0].Status)

	_, total, err = f.svc.List(f.tutor, "tutor", model.LessonPending, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestGetLessonRequestVisibility(t *testing.T) {
	f := newLessonRequestFixture(t)
	created := f.createRequest(t)

	for _, caller := range []*model.User{f.student, f.tutor} {
		view, err := f.svc.Get(caller, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, view.ID)
	}

	// outsiders get not-found, not forbidden
	outsiderStudent := createStudent(t, f.db, "tom")
	outsiderTutor := createTutor(t, f.db, "felix", 4.9, 200)
	for _, caller := range []*model.User{outsiderStudent, outsiderTutor} {
		_, err := f.svc.Get(caller, created.ID)
		assert.ErrorIs(t, err, util.ErrLessonRequestNotFound)
	}

	_, err := f.svc.Get(f.student, 9999)
	assert.ErrorIs(t, err, util.ErrLessonRequestNotFound)
}

func TestDecideLessonRequest(t *testing.T) {
	f := newLessonRequestFixture(t)
	created := f.createRequest(t)

	view, err := f.svc.Decide(f.tutor, created.ID, model.LessonApproved)
	require.NoError(t, err)
	assert.Equal(t, model.LessonApproved, view.Status)
	assert.Equal(t, "Approved", view.StatusDisplay)

	// persisted
	fetched, err := f.svc.Get(f.student, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.LessonApproved, fetched.Status)
	assert.Equal(t, created.CreatedAt.Unix(), fetched.CreatedAt.Unix())
}

func TestDecideLessonRequestAuthorization(t *testing.T) {
	f := newLessonRequestFixture(t)
	created := f.createRequest(t)

	// the student participant cannot decide, and is told nothing exists
	_, err := f.svc.Decide(f.student, created.ID, model.LessonApproved)
	assert.ErrorIs(t, err, util.ErrLessonRequestNotFound)

	// neither can an unrelated tutor
	otherTutor := createTutor(t, f.db, "felix", 4.9, 200)
	_, err = f.svc.Decide(otherTutor, created.ID, model.LessonRejected)
	assert.ErrorIs(t, err, util.ErrLessonRequestNotFound)

	// still pending after the denied attempts
	view, err := f.svc.Get(f.student, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.LessonPending, view.Status)
}

func TestDecideLessonRequestInvalidStatus(t *testing.T) {
	f := newLessonRequestFixture(t)
	created := f.createRequest(t)

	for _, status := range []model.LessonRequestStatus{model.LessonPending, "cancelled", ""} {
		_, err := f.svc.Decide(f.tutor, created.ID, status)
		assert.ErrorIs(t, err, util.ErrInvalidDecision)
	}
}

func TestDecideLessonRequestIsFinal(t *testing.T) {
	f := newLessonRequestFixture(t)
	created := f.createRequest(t)

	_, err := f.svc.Decide(f.tutor, created.ID, model.LessonRejected)
	require.NoError(t, err)

	_, err = f.svc.Decide(f.tutor, created.ID, model.LessonApproved)
	assert.ErrorIs(t, err, util.ErrRequestAlreadyDecided)

	view, err := f.svc.Get(f.tutor, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.LessonRejected, view.Status)
}
