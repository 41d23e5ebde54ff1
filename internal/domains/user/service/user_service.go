package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/domains/user/repository"
	"library-backend/pkg/jwt"
)

// bcrypt cost 12 balances security and login latency.
const bcryptCost = 12

// UserService implements ServiceInterface.
type UserService struct {
	repo         repository.RepositoryInterface
	jwtManager   *jwt.Manager
	accessExpiry time.Duration
}

// NewService creates a new user service.
func NewService(repo repository.RepositoryInterface, jwtManager *jwt.Manager, accessExpiry time.Duration) ServiceInterface {
	return &UserService{
		repo:         repo,
		jwtManager:   jwtManager,
		accessExpiry: accessExpiry,
	}
}

// Register implements ServiceInterface.Register.
func (s *UserService) Register(ctx context.Context, req model.RegisterRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, model.ErrUserAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := model.RoleUser
	if req.Role == model.RoleAdmin.String() {
		role = model.RoleAdmin
	}

	now := time.Now()
	newUser := &model.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		Name:         req.Name,
		Phone:        stringPtr(req.Phone),
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	return s.issueTokens(newUser)
}

// Login implements ServiceInterface.Login.
func (s *UserService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		// Do not reveal whether the username exists.
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	if !u.Active {
		return nil, model.ErrUserInactive
	}

	return s.issueTokens(u)
}

// RefreshToken implements ServiceInterface.RefreshToken.
func (s *UserService) RefreshToken(ctx context.Context, req model.RefreshTokenRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	claims, err := s.jwtManager.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	if !u.Active {
		return nil, model.ErrUserInactive
	}

	return s.issueTokens(u)
}

// GetProfile implements ServiceInterface.GetProfile.
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.UserDTO, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

// UpdateProfile implements ServiceInterface.UpdateProfile.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req model.UpdateProfileRequest) (*model.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		u.Name = req.Name
	}
	if req.Email != "" && req.Email != u.Email {
		exists, err := s.repo.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return nil, fmt.Errorf("check email exists: %w", err)
		}
		if exists {
			return nil, model.ErrEmailInUse
		}
		u.Email = req.Email
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}

	if req.NewPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
			return nil, model.ErrWrongPassword
		}

		newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = string(newHash)
	}

	u.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

func (s *UserService) issueTokens(u *model.User) (*model.LoginResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Email, u.Role.String())
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &model.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.accessExpiry),
		User:         u.ToDTO(),
	}, nil
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
