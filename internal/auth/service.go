package auth

import (
	"errors"
	"os"
	"time"

	"harborcrm/pkg/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service handles authentication logic
type Service struct {
	userRepo UserRepository
}

// UserRepository interface for user data access
type UserRepository interface {
	GetByEmail(email string) (*models.User, error)
	GetByID(id uuid.UUID) (*models.User, error)
	Update(user *models.User) error
	GetMembership(userID, workspaceID uuid.UUID) (*models.WorkspaceMember, error)
}

// NewService creates a new auth service
func NewService(userRepo UserRepository) *Service {
	return &Service{userRepo: userRepo}
}

// LoginRequest represents login request data
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents login response data
type LoginResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         models.User `json:"user"`
	ExpiresIn    int64       `json:"expires_in"`
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Type   string    `json:"type"` // access or refresh
	jwt.RegisteredClaims
}

// Login authenticates a user and returns tokens
func (s *Service) Login(req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}

	if !user.IsActive {
		return nil, errors.New("user account is disabled")
	}

	if !s.verifyPassword(req.Password, user.Password) {
		return nil, errors.New("invalid credentials")
	}

	now := time.Now()
	user.LastLoginAt = &now
	s.userRepo.Update(user)

	return s.issueTokens(user)
}

// RefreshToken generates new tokens from a refresh token
func (s *Service) RefreshToken(tokenString string) (*LoginResponse, error) {
	claims, err := s.validateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Type != "refresh" {
		return nil, errors.New("invalid token type")
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, errors.New("user not found")
	}
	if !user.IsActive {
		return nil, errors.New("user account is disabled")
	}

	return s.issueTokens(user)
}

// ValidateToken validates and parses a JWT token
func (s *Service) ValidateToken(tokenString string) (*TokenClaims, error) {
	return s.validateToken(tokenString)
}

// AuthorizeWorkspace checks that the user belongs to the workspace.
// The returned membership carries the role for write checks downstream.
func (s *Service) AuthorizeWorkspace(userID, workspaceID uuid.UUID) (*models.WorkspaceMember, error) {
	member, err := s.userRepo.GetMembership(userID, workspaceID)
	if err != nil || member == nil {
		return nil, errors.New("not a member of this workspace")
	}
	return member, nil
}

// HashPassword hashes a password with bcrypt
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *Service) verifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *Service) issueTokens(user *models.User) (*LoginResponse, error) {
	accessDuration := parseDurationEnv("JWT_ACCESS_DURATION", 15*time.Minute)
	refreshDuration := parseDurationEnv("JWT_REFRESH_DURATION", 24*time.Hour)

	accessToken, err := s.generateToken(user, "access", accessDuration)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, "refresh", refreshDuration)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         *user,
		ExpiresIn:    int64(accessDuration.Seconds()),
	}, nil
}

func (s *Service) generateToken(user *models.User, tokenType string, duration time.Duration) (string, error) {
	claims := TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "harborcrm",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func (s *Service) validateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func parseDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
