package iam

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mentcare/records/pkg/config"
	"github.com/mentcare/records/pkg/logger"
	"github.com/mentcare/records/pkg/repository"
	"github.com/mentcare/records/pkg/types"
)

// Service implements authentication and user lookups
type Service struct {
	config   *config.Config
	logger   *logger.Logger
	userRepo repository.UserRepositoryInterface
}

// NewService creates a new IAM service instance
func NewService(cfg *config.Config, log *logger.Logger, userRepo repository.UserRepositoryInterface) *Service {
	return &Service{
		config:   cfg,
		logger:   log,
		userRepo: userRepo,
	}
}

// Claims are the JWT claims issued on login
type Claims struct {
	Username    string         `json:"username"`
	Role        types.UserRole `json:"role"`
	Permissions []string       `json:"permissions"`
	jwt.RegisteredClaims
}

// Login authenticates the credentials and issues an access token. The
// credential check itself is the repository's plaintext equality match;
// a failed login is an authentication error, never logged as a fault.
func (s *Service) Login(credentials *types.Credentials) (*types.AuthToken, *types.User, error) {
	user, ok := s.userRepo.Authenticate(credentials.Username, credentials.Password)
	if !ok {
		return nil, nil, types.NewAuthenticationError(
			types.ErrCodeAuthenticationFailed,
			"Invalid username or password",
		)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, nil, types.NewInternalError(types.ErrCodeInternalError, "Failed to generate token", err)
	}

	s.logger.Audit(user.ID, "login", "session", true, map[string]interface{}{
		"role": user.Role,
	})

	return token, user, nil
}

// GetUser returns a user by id
func (s *Service) GetUser(id string) (*types.User, error) {
	user, ok := s.userRepo.FindByID(id)
	if !ok {
		return nil, types.NewNotFoundError(types.ErrCodeNotFound, "User not found")
	}
	return user, nil
}

// ListUsers returns every user
func (s *Service) ListUsers() []*types.User {
	return s.userRepo.GetAll()
}

// ValidateToken parses and validates an access token, returning its claims
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, types.NewAuthenticationError(types.ErrCodeAuthenticationFailed, "Invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, types.NewAuthenticationError(types.ErrCodeAuthenticationFailed, "Invalid token claims")
	}

	return claims, nil
}

// generateToken issues a signed JWT carrying the user's identity, role and
// permission set
func (s *Service) generateToken(user *types.User) (*types.AuthToken, error) {
	ttl := time.Duration(s.config.JWT.AccessTokenTTL) * time.Second
	now := time.Now()

	claims := &Claims{
		Username:    user.Username,
		Role:        user.Role,
		Permissions: Permissions(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    s.config.JWT.Issuer,
			Audience:  jwt.ClaimStrings{s.config.JWT.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWT.SecretKey))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &types.AuthToken{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(ttl.Seconds()),
	}, nil
}
