package service

import (
	"context"
	"errors"
	"time"

	"tutorhub_backend/internal/config"
	"tutorhub_backend/internal/model"
	"tutorhub_backend/internal/repository"
	"tutorhub_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenStore tracks valid refresh-token IDs. The production
// implementation is Redis-backed; tests substitute an in-memory one.
type TokenStore interface {
	Save(ctx context.Context, userID uint, tokenID string, ttl time.Duration) error
	Exists(ctx context.Context, userID uint, tokenID string) (bool, error)
	Delete(ctx context.Context, userID uint, tokenID string) error
}

type AuthService struct {
	UserRepo *repository.UserRepository
	Tokens   TokenStore
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, tokens TokenStore, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Tokens:   tokens,
		Cfg:      cfg,
	}
}

type RegisterInput struct {
	Username   string
	Email      string
	Password   string
	FirstName  string
	LastName   string
	Role       model.UserRole
	Bio        string
	GradeLevel *int
}

// Register creates the identity plus its role-specific profile and
// issues the first token pair. The password arrives already validated
// for strength at the binding layer; it is hashed here and never stored
// in the clear.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, *util.TokenPair, error) {
	if !in.Role.Valid() {
		return nil, nil, util.ErrInvalidRole
	}

	if _, err := s.UserRepo.FindByUsername(in.Username); err == nil {
		return nil, nil, util.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	if _, err := s.UserRepo.FindByEmail(in.Email); err == nil {
		return nil, nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &model.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  string(hashedPassword),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Role:      in.Role,
		Bio:       in.Bio,
		Active:    true,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, nil, err
	}

	switch in.Role {
	case model.RoleStudent:
		user.Student = &model.StudentProfile{UserID: user.ID, GradeLevel: in.GradeLevel}
		if err := s.UserRepo.CreateStudentProfile(user.Student); err != nil {
			return nil, nil, err
		}
	case model.RoleTutor:
		user.Tutor = &model.TutorProfile{UserID: user.ID}
		if err := s.UserRepo.CreateTutorProfile(user.Tutor); err != nil {
			return nil, nil, err
		}
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// Login verifies credentials and issues a fresh token pair. A wrong
// username and a wrong password answer identically.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, *util.TokenPair, error) {
	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		return nil, nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, util.ErrInvalidCredentials
	}

	if !user.Active {
		return nil, nil, util.ErrAccountInactive
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// Refresh rotates a refresh token: the presented token must be of
// refresh type, unexpired, and still registered in the store. The old
// ID is revoked before the new pair is handed out.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*model.User, *util.TokenPair, error) {
	claims, err := util.ParseJWT(refreshToken, s.Cfg.JWT.Secret)
	if err != nil || claims.TokenType != util.TokenRefresh {
		return nil, nil, util.ErrInvalidRefreshToken
	}

	ok, err := s.Tokens.Exists(ctx, claims.UserID, claims.ID)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, util.ErrInvalidRefreshToken
	}

	user, err := s.UserRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, nil, util.ErrInvalidRefreshToken
	}
	if !user.Active {
		return nil, nil, util.ErrAccountInactive
	}

	if err := s.Tokens.Delete(ctx, claims.UserID, claims.ID); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// GetCurrentUser resolves the full identity behind a set of parsed
// claims. Handlers call this once and pass the result down explicitly.
func (s *AuthService) GetCurrentUser(claims *util.Claims) (*model.User, error) {
	if claims == nil {
		return nil, util.ErrUserNotFound
	}
	user, err := s.UserRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *model.User) (*util.TokenPair, error) {
	tokens, err := util.GenerateTokenPair(user, s.Cfg.JWT.Secret, s.Cfg.JWT.AccessExpireTime, s.Cfg.JWT.RefreshExpireTime)
	if err != nil {
		return nil, err
	}
	if err := s.Tokens.Save(ctx, user.ID, tokens.RefreshID, s.Cfg.JWT.RefreshExpireTime); err != nil {
		return nil, err
	}
	return tokens, nil
}
