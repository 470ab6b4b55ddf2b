package service

import (
	"alcyxob/fitness-bot/internal/domain"
	"alcyxob/fitness-bot/internal/repository" // Import repository package
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4" // Import JWT library
	"golang.org/x/crypto/bcrypt"   // Import bcrypt
)

// --- Error Definitions ---
var (
	ErrInvalidGatewaySecret = errors.New("invalid gateway secret")
	ErrInvalidUserID        = errors.New("user id must be positive")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// AuthService exchanges a chat user id presented by the trusted gateway for
// an API token.
type AuthService interface {
	IssueToken(ctx context.Context, gatewaySecret string, userID int64) (token string, role domain.Role, err error)
	GetJWTSecret() string
}

// authService implements the AuthService interface.
type authService struct {
	userRepo      repository.UserRepository
	secretHash    []byte
	adminIDs      map[int64]struct{}
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, gatewaySecretHash string, adminIDs []int64, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour * 1 // Default to 1 hour if not set properly
	}
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &authService{
		userRepo:      userRepo,
		secretHash:    []byte(gatewaySecretHash),
		adminIDs:      admins,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// IssueToken checks the gateway secret, registers the user on first contact
// and signs a token carrying the user id and role.
func (s *authService) IssueToken(ctx context.Context, gatewaySecret string, userID int64) (string, domain.Role, error) {
	// 1. Authenticate the gateway
	if len(s.secretHash) == 0 || gatewaySecret == "" {
		return "", "", ErrInvalidGatewaySecret
	}
	if err := bcrypt.CompareHashAndPassword(s.secretHash, []byte(gatewaySecret)); err != nil {
		return "", "", ErrInvalidGatewaySecret
	}
	if userID <= 0 {
		return "", "", ErrInvalidUserID
	}

	// 2. Register the user if this is the first contact
	if _, err := s.userRepo.GetByUserID(ctx, userID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return "", "", err
		}
		if err := s.userRepo.Upsert(ctx, &domain.User{UserID: userID}); err != nil {
			return "", "", err
		}
	}

	// 3. Generate JWT
	role := domain.RoleUser
	if _, ok := s.adminIDs[userID]; ok {
		role = domain.RoleAdmin
	}
	token, err := s.generateJWT(userID, role)
	if err != nil {
		return "", "", ErrTokenGeneration
	}
	return token, role, nil
}

// --- JWT Helper ---

// JWTClaims defines the structure of the JWT payload.
type JWTClaims struct {
	UserID int64       `json:"uid"`  // Chat platform user id
	Role   domain.Role `json:"role"` // User Role
	jwt.RegisteredClaims
}

func (s *authService) generateJWT(userID int64, role domain.Role) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "fitness-bot",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
