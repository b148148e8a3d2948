package service

import (
	"context"
	"testing"

	"tutorhub_backend/internal/model"
	"tutorhub_backend/internal/repository"
	"tutorhub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) (*AuthService, *memoryTokenStore) {
	t.Helper()
	db := newTestDB(t)
	store := newMemoryTokenStore()
	return NewAuthService(repository.NewUserRepository(db), store, testConfig()), store
}

func TestRegisterStudent(t *testing.T) {
	svc, store := newAuthService(t)
	grade := 11

	user, tokens, err := svc.Register(context.Background(), RegisterInput{
		Username:   "nora",
		Email:      "nora@example.com",
		Password:   "supersecret",
		FirstName:  "Nora",
		LastName:   "Lindqvist",
		Role:       model.RoleStudent,
		GradeLevel: &grade,
	})
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.True(t, user.Active)

	// stored hashed, never in the clear
	assert.NotEqual(t, "supersecret", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("supersecret")))

	require.NotNil(t, user.Student)
	require.NotNil(t, user.Student.GradeLevel)
	assert.Equal(t, 11, *user.Student.GradeLevel)
	assert.Nil(t, user.Tutor)

	assert.NotEmpty(t, tokens.Access)
	assert.NotEmpty(t, tokens.Refresh)
	assert.Equal(t, 1, store.len())
}

func TestRegisterTutor(t *testing.T) {
	svc, _ := newAuthService(t)

	user, _, err := svc.Register(context.Background(), RegisterInput{
		Username:  "amelia",
		Email:     "amelia@example.com",
		Password:  "supersecret",
		FirstName: "Amelia",
		LastName:  "Ward",
		Role:      model.RoleTutor,
		Bio:       "Math tutor",
	})
	require.NoError(t, err)

	require.NotNil(t, user.Tutor)
	assert.Zero(t, user.Tutor.Rating)
	assert.Zero(t, user.Tutor.TotalLessons)
	assert.Nil(t, user.Student)
}

func TestRegisterDuplicates(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{
		Username: "nora", Email: "nora@example.com", Password: "supersecret", Role: model.RoleStudent,
	})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, RegisterInput{
		Username: "nora", Email: "other@example.com", Password: "supersecret", Role: model.RoleStudent,
	})
	assert.ErrorIs(t, err, util.ErrUsernameTaken)

	_, _, err = svc.Register(ctx, RegisterInput{
		Username: "other", Email: "nora@example.com", Password: "supersecret", Role: model.RoleStudent,
	})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestRegisterInvalidRole(t *testing.T) {
	svc, _ := newAuthService(t)

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Username: "nora", Email: "nora@example.com", Password: "supersecret", Role: model.UserRole("admin"),
	})
	assert.ErrorIs(t, err, util.ErrInvalidRole)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{
		Username: "nora", Email: "nora@example.com", Password: "supersecret", Role: model.RoleStudent,
	})
	require.NoError(t, err)

	user, tokens, err := svc.Login(ctx, "nora", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, "nora", user.Username)
	assert.NotEmpty(t, tokens.Access)

	claims, err := util.ParseJWT(tokens.Access, svc.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, util.TokenAccess, claims.TokenType)
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{
		Username: "nora", Email: "nora@example.com", Password: "supersecret", Role: model.RoleStudent,
	})
	require.NoError(t, err)

	// wrong password and unknown user answer identically
	_, _, err = svc.Login(ctx, "nora", "wrongpassword")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody", "supersecret")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, RegisterInput{
		Username: "nora", Email: "nora@example.com", Password: "supersecret", Role: model.RoleStudent,
	})
	require.NoError(t, err)
	require.NoError(t, svc.UserRepo.DB.Model(user).Update("active", false).Error)

	_, _, err = svc.Login(ctx, "nora", "supersecret")
	assert.ErrorIs(t, err, util.ErrAccountInactive)
}

func TestRefreshRotation(t *testing.T) {
	svc, store := newAuthService(t)
	ctx := context.Background()

	_, tokens, err := svc.Register(ctx, RegisterInput{
		Username: "nora", Email: "nora@example.com", Password: "supersecret", Role: model.RoleStudent,
	})
	require.NoError(t, err)

	_, rotated, err := svc.Refresh(ctx, tokens.Refresh)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.Refresh, rotated.Refresh)
	assert.Equal(t, 1, store.len())

	// the consumed token is revoked and cannot be replayed
	_, _, err = svc.Refresh(ctx, tokens.Refresh)
	assert.ErrorIs(t, err, util.ErrInvalidRefreshToken)

	// the rotated token still works
	_, _, err = svc.Refresh(ctx, rotated.Refresh)
	require.NoError(t, err)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, tokens, err := svc.Register(ctx, RegisterInput{
		Username: "nora", Email: "nora@example.com", Password: "supersecret", Role: model.RoleStudent,
	})
	require.NoError(t, err)

	_, _, err = svc.Refresh(ctx, tokens.Access)
	assert.ErrorIs(t, err, util.ErrInvalidRefreshToken)

	_, _, err = svc.Refresh(ctx, "not-a-token")
	assert.ErrorIs(t, err, util.ErrInvalidRefreshToken)
}
