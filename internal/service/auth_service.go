package service

import (
	"errors"
	"satbank_backend/internal/config"
	"satbank_backend/internal/model"
	"satbank_backend/internal/repository"
	"satbank_backend/internal/util"
	"satbank_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	JWT      config.JWTConfig
}

func NewAuthService(userRepo *repository.UserRepository, jwtCfg config.JWTConfig) *AuthService {
	return &AuthService{UserRepo: userRepo, JWT: jwtCfg}
}

// Register creates a user with a bcrypt-hashed password. Unknown or empty
// roles default to student.
func (s *AuthService) Register(req *model.RegisterRequest) (*model.User, error) {
	existing, err := s.UserRepo.FindByEmail(req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, util.ErrEmailRegistered
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	switch role {
	case model.Student, model.Instructor, model.Admin:
	default:
		role = model.Student
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     role,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Log.Info("Registered user",
		zap.Uint("userId", user.ID),
		zap.String("role", string(user.Role)),
	)
	return user, nil
}

// Login verifies credentials and issues a JWT. A wrong email and a wrong
// password return the same error.
func (s *AuthService) Login(req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.UserRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}
	if user.Disabled {
		return nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.JWT.Secret, s.JWT.Expiration)
	if err != nil {
		return nil, err
	}

	if err := s.UserRepo.UpdateLastLogin(user.ID); err != nil {
		logger.Log.Warn("Failed to update last login", zap.Uint("userId", user.ID), zap.Error(err))
	}

	return &model.LoginResponse{Token: token, User: user}, nil
}

func (s *AuthService) UserByID(id uint) (*model.User, error) {
	return s.UserRepo.FindByID(id)
}
