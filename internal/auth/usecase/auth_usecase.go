package usecase

import (
	"errors"

	"rentdesk/internal/auth/repo/persistent"
	"rentdesk/pkg/apperr"
	"rentdesk/pkg/jwt"
	"rentdesk/pkg/logger"
	"rentdesk/pkg/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthUseCase interface {
	Register(email, name, password string, role models.UserRole) (*models.User, string, error)
	Login(email, password string) (*models.User, string, error)
	GetUser(userID string) (*models.User, error)
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	logger     *logger.Logger
}

func NewAuthUseCase(userRepo persistent.UserRepository, jwtService *jwt.Service, logger *logger.Logger) AuthUseCase {
	return &authUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

func (uc *authUseCase) Register(email, name, password string, role models.UserRole) (*models.User, string, error) {
	if role != models.RoleLandlord && role != models.RoleTenant {
		return nil, "", apperr.Validation("role must be landlord or tenant")
	}

	if _, err := uc.userRepo.GetByEmail(email); err == nil {
		return nil, "", apperr.Conflict("a user with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, "", apperr.Internal(err)
	}

	user := &models.User{
		Email:    email,
		Name:     name,
		Password: string(hashedPassword),
		Role:     role,
		IsActive: true,
	}

	if err := uc.userRepo.Create(user); err != nil {
		uc.logger.Error("Failed to create user: %v", err)
		return nil, "", apperr.Internal(err)
	}

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", apperr.Internal(err)
	}

	uc.logger.Info("User %s registered as %s", user.ID, user.Role)
	return user, token, nil
}

func (uc *authUseCase) Login(email, password string) (*models.User, string, error) {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		// Same answer for a wrong password and an unknown email
		return nil, "", apperr.Unauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", apperr.Unauthorized("invalid credentials")
	}

	if !user.IsActive {
		return nil, "", apperr.Forbidden("account is deactivated")
	}

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", apperr.Internal(err)
	}

	return user, token, nil
}

func (uc *authUseCase) GetUser(userID string) (*models.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}
