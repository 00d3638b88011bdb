package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/lms/internal/app/models"
	"github.com/yigit/lms/internal/app/models/dto"
	"github.com/yigit/lms/internal/app/repositories"
	"github.com/yigit/lms/internal/pkg/apperrors"
	"github.com/yigit/lms/internal/pkg/auth"
)

// errBadCredentials is shared by the unknown-email and wrong-password paths
// so the response does not reveal which one failed.
var errBadCredentials = &apperrors.CustomError{
	Err:     apperrors.ErrInvalidCredentials,
	Message: "invalid email or password",
}

// TokenIssuer signs access tokens
type TokenIssuer interface {
	Issue(identity auth.Identity) (string, error)
}

// PasswordHasher hashes and checks passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, passwordHash string) bool
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type authServiceImpl struct {
	userRepo repositories.IUserRepository
	tokens   TokenIssuer
	hasher   PasswordHasher
	logger   zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	tokens TokenIssuer,
	hasher PasswordHasher,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo: userRepo,
		tokens:   tokens,
		hasher:   hasher,
		logger:   logger,
	}
}

// Register creates an account and signs the caller in. A duplicate email is
// detected by the insert itself.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)

	switch {
	case name == "":
		return nil, apperrors.NewValidationError("name is required")
	case email == "":
		return nil, apperrors.NewValidationError("email is required")
	case req.Password == "":
		return nil, apperrors.NewValidationError("password is required")
	case !req.Role.Valid():
		return nil, apperrors.NewValidationError("role must be Student or Teacher")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.logger.Info().Str("email", email).Msg("Registration rejected: email already in use")
		}
		return nil, err
	}

	s.logger.Info().Str("userID", user.ID.String()).Str("role", string(user.Role)).Msg("User registered")
	return s.authResponse(user)
}

// Login verifies credentials and issues a token.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, apperrors.NewValidationError("email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, errBadCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		s.logger.Debug().Str("userID", user.ID.String()).Msg("Login rejected: wrong password")
		return nil, errBadCredentials
	}

	return s.authResponse(user)
}

func (s *authServiceImpl) authResponse(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.tokens.Issue(auth.Identity{ID: user.ID, Role: user.Role, Name: user.Name})
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}
	return &dto.AuthResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}
