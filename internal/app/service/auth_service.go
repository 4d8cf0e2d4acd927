package service

import (
	"context"
	"fmt"
	"net/http"

	"contacts_api/internal/common"
	"contacts_api/internal/common/security"
	"contacts_api/internal/domain/model"
	"contacts_api/internal/domain/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type AuthService struct {
	userRepo   repository.UserRepository
	tokens     *security.TokenService
	bcryptCost int
	validate   *validator.Validate
}

func NewAuthService(userRepo repository.UserRepository, tokens *security.TokenService, bcryptCost int) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		validate:   validator.New(),
	}
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CurrentUserResponse struct {
	User model.AuthUser `json:"user"`
}

type LoginResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	AccessToken string `json:"accessToken"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, common.WrapError(http.StatusBadRequest, "Please fill in all fields", err)
	}

	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil && !common.HasStatus(err, http.StatusNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return nil, common.BadRequest("User already exists")
	}

	hashedPassword, err := security.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hashedPassword,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo classifies the unique-violation race to 400 itself.
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &RegisterResponse{Email: user.Email, Username: user.Username}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, common.WrapError(http.StatusBadRequest, "Email and password are required", err)
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if common.HasStatus(err, http.StatusNotFound) {
			// Same message as a wrong password, nothing to enumerate accounts with.
			return nil, common.Unauthorized("Invalid email or password")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.Unauthorized("Invalid email or password")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResponse{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		AccessToken: token,
	}, nil
}
