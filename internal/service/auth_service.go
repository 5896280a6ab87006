package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"daytrack/internal/auth"
	"daytrack/internal/errors"
	"daytrack/internal/model"
	"daytrack/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration, login, and the password reset flow.
type AuthService interface {
	Register(ctx context.Context, username, password, role string) (token string, user *model.User, err error)
	Login(ctx context.Context, username, password string) (token string, user *model.User, err error)
	CheckUsername(ctx context.Context, username string) (resetToken string, err error)
	ChangePassword(ctx context.Context, username, resetToken, newPassword string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Register creates a new user with a hashed password and returns a session
// token so the client is logged in immediately.
func (s *authService) Register(ctx context.Context, username, password, role string) (string, *model.User, error) {
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return "", nil, errors.ErrUserAlreadyExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return "", nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	if role == "" {
		role = model.RoleUser
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, user, nil
}

// Login authenticates a user and returns a session token. Admins log in
// through the same path as everyone else; the admin account is a regular
// credential row provisioned by the seed tool.
func (s *authService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, user, nil
}

// CheckUsername confirms the username exists and mints a short-lived reset
// token for the change-password step.
func (s *authService) CheckUsername(ctx context.Context, username string) (string, error) {
	if _, err := s.userRepo.FindByUsername(ctx, username); err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", errors.ErrUserNotFound
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	resetToken, err := s.tokenStore.StoreResetToken(ctx, username, auth.ResetTokenExpiry)
	if err != nil {
		return "", fmt.Errorf("issue reset token: %w", err)
	}
	return resetToken, nil
}

// ChangePassword consumes a valid reset token and stores a new password hash.
func (s *authService) ChangePassword(ctx context.Context, username, resetToken, newPassword string) error {
	if err := s.tokenStore.ConsumeResetToken(ctx, username, resetToken); err != nil {
		return errors.ErrInvalidResetToken
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hashedPassword)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
