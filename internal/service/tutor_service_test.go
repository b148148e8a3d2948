package service

import (
	"testing"

	"tutorhub_backend/internal/model"
	"tutorhub_backend/internal/repository"
	"tutorhub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type tutorFixture struct {
	svc  *TutorService
	db   *gorm.DB
	math *model.Subject
	eng  *model.Subject
}

// newTutorFixture seeds three tutors: amelia (math, rating 4.8),
// felix (english, 4.9) and marco (math, 4.5).
func newTutorFixture(t *testing.T) *tutorFixture {
	t.Helper()
	db := newTestDB(t)
	f := &tutorFixture{
		svc: NewTutorService(
			repository.NewUserRepository(db),
			repository.NewSubjectRepository(db),
			repository.NewTutorSubjectRepository(db),
		),
		db:   db,
		math: createSubject(t, db, "Mathematics"),
		eng:  createSubject(t, db, "English"),
	}

	amelia := createTutor(t, db, "amelia", 4.8, 150)
	felix := createTutor(t, db, "felix", 4.9, 200)
	marco := createTutor(t, db, "marco", 4.5, 85)
	require.NoError(t, db.Model(marco).Update("bio", "Exam preparation specialist").Error)

	for _, ts := range []model.TutorSubject{
		{TutorID: amelia.ID, SubjectID: f.math.ID, ExperienceYears: 10},
		{TutorID: felix.ID, SubjectID: f.eng.ID, ExperienceYears: 8},
		{TutorID: marco.ID, SubjectID: f.math.ID, ExperienceYears: 5},
	} {
		require.NoError(t, db.Create(&ts).Error)
	}

	// a student must never show up in the directory
	createStudent(t, db, "nora")
	return f
}

func usernames(views []TutorView) []string {
	names := make([]string, 0, len(views))
	for _, v := range views {
		names = append(names, v.Username)
	}
	return names
}

func TestListTutorsDefaultOrdering(t *testing.T) {
	f := newTutorFixture(t)

	views, total, err := f.svc.List(TutorFilter{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, []string{"felix", "amelia", "marco"}, usernames(views))
}

func TestListTutorsOrdering(t *testing.T) {
	f := newTutorFixture(t)

	views, _, err := f.svc.List(TutorFilter{Ordering: "rating"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"marco", "amelia", "felix"}, usernames(views))

	views, _, err = f.svc.List(TutorFilter{Ordering: "-total_lessons"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"felix", "amelia", "marco"}, usernames(views))

	// anything outside the whitelist falls back to rating descending
	views, _, err = f.svc.List(TutorFilter{Ordering: "password"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"felix", "amelia", "marco"}, usernames(views))
}

func TestListTutorsSubjectFilter(t *testing.T) {
	f := newTutorFixture(t)

	views, total, err := f.svc.List(TutorFilter{SubjectID: f.math.ID}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, []string{"amelia", "marco"}, usernames(views))
}

func TestListTutorsSearch(t *testing.T) {
	f := newTutorFixture(t)

	views, total, err := f.svc.List(TutorFilter{Search: "fel"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, []string{"felix"}, usernames(views))

	// bio text is searched too
	views, total, err = f.svc.List(TutorFilter{Search: "exam"}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, []string{"marco"}, usernames(views))
}

func TestListTutorsPagination(t *testing.T) {
	f := newTutorFixture(t)

	views, total, err := f.svc.List(TutorFilter{}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, []string{"marco"}, usernames(views))
}

func TestListTutorsIncludesSubjects(t *testing.T) {
	f := newTutorFixture(t)

	views, _, err := f.svc.List(TutorFilter{Search: "amelia"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Len(t, views[0].Subjects, 1)
	assert.Equal(t, "Mathematics", views[0].Subjects[0].Subject.Name)
	assert.Equal(t, 10, views[0].Subjects[0].ExperienceYears)
	assert.Equal(t, 4.8, views[0].Rating)
	assert.Equal(t, 150, views[0].TotalLessons)
}

func TestGetTutorByID(t *testing.T) {
	f := newTutorFixture(t)

	var amelia model.User
	require.NoError(t, f.db.Where("username = ?", "amelia").First(&amelia).Error)

	view, err := f.svc.GetByID(amelia.ID)
	require.NoError(t, err)
	assert.Equal(t, "amelia", view.Username)
	assert.Equal(t, "amelia@example.com", view.Email)
	assert.Len(t, view.Subjects, 1)
	assert.False(t, view.DateJoined.IsZero())
}

func TestGetTutorByIDRejectsNonTutors(t *testing.T) {
	f := newTutorFixture(t)

	var nora model.User
	require.NoError(t, f.db.Where("username = ?", "nora").First(&nora).Error)

	_, err := f.svc.GetByID(nora.ID)
	assert.ErrorIs(t, err, util.ErrTutorNotFound)

	_, err = f.svc.GetByID(9999)
	assert.ErrorIs(t, err, util.ErrTutorNotFound)
}

func TestAddSubject(t *testing.T) {
	f := newTutorFixture(t)
	tutor := createTutor(t, f.db, "ines", 4.7, 120)

	view, err := f.svc.AddSubject(tutor, f.math.ID, 9)
	require.NoError(t, err)
	assert.Equal(t, "Mathematics", view.Subject.Name)
	assert.Equal(t, 9, view.ExperienceYears)

	// the pair is unique
	_, err = f.svc.AddSubject(tutor, f.math.ID, 3)
	assert.ErrorIs(t, err, util.ErrSubjectAlreadyListed)

	_, err = f.svc.AddSubject(tutor, 9999, 1)
	assert.ErrorIs(t, err, util.ErrSubjectNotFound)
}

func TestRemoveSubject(t *testing.T) {
	f := newTutorFixture(t)
	tutor := createTutor(t, f.db, "ines", 4.7, 120)

	_, err := f.svc.AddSubject(tutor, f.math.ID, 9)
	require.NoError(t, err)

	require.NoError(t, f.svc.RemoveSubject(tutor, f.math.ID))

	// already gone
	assert.ErrorIs(t, f.svc.RemoveSubject(tutor, f.math.ID), util.ErrSubjectNotFound)
}
