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

func newUserFixture(t *testing.T) (*UserService, *gorm.DB, *model.User) {
	t.Helper()
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	student := createStudent(t, db, "nora")
	require.NoError(t, db.Model(student).Updates(map[string]interface{}{
		"first_name": "Nora",
		"last_name":  "Lindqvist",
		"bio":        "Year 11 student",
	}).Error)
	return svc, db, student
}

func strp(s string) *string { return &s }

func TestUpdateProfilePartialKeepsOmittedFields(t *testing.T) {
	svc, _, student := newUserFixture(t)

	// only the email travels; everything else must survive
	view, err := svc.UpdateProfile(student.ID, UpdateProfileInput{
		Email: strp("nora.updated@example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "nora.updated@example.com", view.Email)
	assert.Equal(t, "Nora", view.FirstName)
	assert.Equal(t, "Lindqvist", view.LastName)
	assert.Equal(t, "Year 11 student", view.Bio)
	require.NotNil(t, view.GradeLevel)
	assert.Equal(t, 10, *view.GradeLevel)
}

func TestUpdateProfileGradeLevelOnly(t *testing.T) {
	svc, _, student := newUserFixture(t)

	grade := 12
	view, err := svc.UpdateProfile(student.ID, UpdateProfileInput{GradeLevel: &grade})
	require.NoError(t, err)
	require.NotNil(t, view.GradeLevel)
	assert.Equal(t, 12, *view.GradeLevel)
	assert.Equal(t, "12th Grade", view.GradeLevelDisplay)
	assert.Equal(t, "Nora", view.FirstName)
	assert.Equal(t, "Year 11 student", view.Bio)
}

func TestUpdateProfileExplicitEmptyClears(t *testing.T) {
	svc, _, student := newUserFixture(t)

	// an empty string sent on purpose is an update, not an omission
	view, err := svc.UpdateProfile(student.ID, UpdateProfileInput{Bio: strp("")})
	require.NoError(t, err)
	assert.Empty(t, view.Bio)
	assert.Equal(t, "Nora", view.FirstName)
	assert.Equal(t, "Lindqvist", view.LastName)
}

func TestUpdateProfileEmailConflict(t *testing.T) {
	svc, db, student := newUserFixture(t)
	createStudent(t, db, "tom")

	_, err := svc.UpdateProfile(student.ID, UpdateProfileInput{
		Email: strp("tom@example.com"),
	})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)

	// nothing was written
	view, err := svc.GetProfile(student.ID)
	require.NoError(t, err)
	assert.Equal(t, "nora@example.com", view.Email)
	assert.Equal(t, "Nora", view.FirstName)
}

func TestUpdateProfileGradeLevelIgnoredForTutors(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	tutor := createTutor(t, db, "amelia", 4.8, 150)

	grade := 9
	view, err := svc.UpdateProfile(tutor.ID, UpdateProfileInput{GradeLevel: &grade})
	require.NoError(t, err)
	assert.Nil(t, view.GradeLevel)

	var count int64
	require.NoError(t, db.Model(&model.StudentProfile{}).Where("user_id = ?", tutor.ID).Count(&count).Error)
	assert.Zero(t, count)
}
