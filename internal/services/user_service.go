package services

import (
	"context"
	"fmt"
	"strings"

	"sevensmile-backend/internal/auth"
	"sevensmile-backend/internal/cache"
	"sevensmile-backend/internal/models"
	"sevensmile-backend/internal/repositories"
)

type UserService struct {
	Repo       *repositories.UserRepository
	JWTManager *auth.JWTManager
}

func NewUserService(repo *repositories.UserRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{
		Repo:       repo,
		JWTManager: jwtManager,
	}
}

func validRole(role string) bool {
	switch role {
	case "admin", "employee", "viewer":
		return true
	}
	return false
}

// Signup creates a new user account. The first account should be an
// admin; after that, signup is admin-only at the routing layer.
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.LoginResponse, error) {
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		return nil, fmt.Errorf("%w: full name, email, and password are required", ErrInvalidArgument)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidArgument)
	}
	role := req.Role
	if role == "" {
		role = "employee"
	}
	if !validRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidArgument, role)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrInvalidArgument)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         role,
		IsActive:     true,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, User: user}, nil
}

// Login authenticates by email and password and returns a JWT.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidArgument)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", ErrInvalidArgument)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is disabled", ErrInvalidArgument)
	}

	// Recently verified credentials skip the bcrypt check.
	if cachedID, ok := cache.GetCachedAuth(ctx, email, req.Password); !ok || cachedID != int64(user.ID) {
		if !auth.VerifyPassword(user.PasswordHash, req.Password) {
			return nil, fmt.Errorf("%w: invalid email or password", ErrInvalidArgument)
		}
		cache.CacheAuth(ctx, email, req.Password, int64(user.ID))
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, User: user}, nil
}

// IssueToken mints a full session token for an already-verified user,
// the final step of the two-factor login flow.
func (s *UserService) IssueToken(ctx context.Context, userID int) (*models.LoginResponse, error) {
	user, err := s.Repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is disabled", ErrInvalidArgument)
	}
	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, User: user}, nil
}

func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	return s.Repo.Get(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.Repo.List(ctx)
}

func (s *UserService) ToggleActive(ctx context.Context, id int) error {
	if _, err := s.Repo.Get(ctx, id); err != nil {
		return err
	}
	return s.Repo.ToggleActive(ctx, id)
}
