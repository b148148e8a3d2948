package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"tutorhub_backend/internal/config"
	"tutorhub_backend/internal/model"
	"tutorhub_backend/pkg/database"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestDB opens a fresh in-memory database per test. The name keeps
// the shared-cache connection pool pointed at the same database while
// isolating tests from each other.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		JWT: config.JWTConfig{
			Secret:            "test-secret-not-for-production-use",
			AccessExpireTime:  time.Hour,
			RefreshExpireTime: 24 * time.Hour,
		},
	}
}

// memoryTokenStore is a TokenStore for tests, backed by a plain map.
type memoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]struct{}
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{tokens: make(map[string]struct{})}
}

func (s *memoryTokenStore) key(userID uint, tokenID string) string {
	return fmt.Sprintf("%d:%s", userID, tokenID)
}

func (s *memoryTokenStore) Save(ctx context.Context, userID uint, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[s.key(userID, tokenID)] = struct{}{}
	return nil
}

func (s *memoryTokenStore) Exists(ctx context.Context, userID uint, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tokens[s.key(userID, tokenID)]
	return ok, nil
}

func (s *memoryTokenStore) Delete(ctx context.Context, userID uint, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, s.key(userID, tokenID))
	return nil
}

func (s *memoryTokenStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func createStudent(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()

	grade := 10
	user := &model.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  hashPassword(t, "testpass123"),
		FirstName: "Test",
		LastName:  "Student",
		Role:      model.RoleStudent,
		Active:    true,
	}
	require.NoError(t, db.Create(user).Error)
	user.Student = &model.StudentProfile{UserID: user.ID, GradeLevel: &grade}
	require.NoError(t, db.Create(user.Student).Error)
	return user
}

func createTutor(t *testing.T, db *gorm.DB, username string, rating float64, totalLessons int) *model.User {
	t.Helper()

	user := &model.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  hashPassword(t, "testpass123"),
		FirstName: "Test",
		LastName:  "Tutor",
		Role:      model.RoleTutor,
		Active:    true,
	}
	require.NoError(t, db.Create(user).Error)
	user.Tutor = &model.TutorProfile{UserID: user.ID, Rating: rating, TotalLessons: totalLessons}
	require.NoError(t, db.Create(user.Tutor).Error)
	return user
}

func createSubject(t *testing.T, db *gorm.DB, name string) *model.Subject {
	t.Helper()

	subject := &model.Subject{Name: name, Description: name + " lessons"}
	require.NoError(t, db.Create(subject).Error)
	return subject
}
