package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"heritage-archive-api/internal/domain"
	"heritage-archive-api/internal/dto"
	"heritage-archive-api/internal/repository"
	"heritage-archive-api/internal/response"
)

// blacklistKeyPrefix namespaces revoked tokens in Redis
const blacklistKeyPrefix = "auth:blacklist:"

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error)
	Signin(ctx context.Context, req *dto.SigninRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, tokenString string) error
	GetMe(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdateUserRole(ctx context.Context, userID uuid.UUID, role domain.UserRole) (*dto.UserResponse, error)
	ValidateToken(ctx context.Context, tokenString string) (uuid.UUID, error)
}

// authServiceImpl is the implementation of AuthService
type authServiceImpl struct {
	userRepo  repository.UserRepository
	redis     *redis.Client
	jwtSecret string
	tokenTTL  time.Duration
	logger    *zap.Logger
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(
	userRepo repository.UserRepository,
	redisClient *redis.Client,
	jwtSecret string,
	tokenTTL time.Duration,
	logger *zap.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:  userRepo,
		redis:     redisClient,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Signup registers a new account with the default user role
func (s *authServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, response.NewStorageError("Failed to check email availability", err)
	}
	if exists {
		return nil, response.NewAppError(response.ErrCodeAlreadyExists, "Email is already registered", "")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, response.NewStorageError("Failed to hash password", err)
	}

	locale := req.Locale
	if locale == "" {
		locale = "en"
	}

	user := &domain.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		DisplayName:  req.DisplayName,
		Role:         domain.UserRoleUser,
		Locale:       locale,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, response.NewStorageError("Failed to create user", err)
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// Signin verifies credentials and issues a signed access token.
// Unknown email and wrong password return the same error so callers cannot
// probe which addresses are registered.
func (s *authServiceImpl) Signin(ctx context.Context, req *dto.SigninRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeInvalidCredential, "Invalid email or password", "")
		}
		return nil, response.NewStorageError("Failed to fetch user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, response.NewAppError(response.ErrCodeInvalidCredential, "Invalid email or password", "")
	}

	if !user.IsActive {
		return nil, response.NewAppError(response.ErrCodeIdentityUnavailable, "Account is deactivated", "")
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    string(user.Role),
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, response.NewStorageError("Failed to sign token", err)
	}

	return &dto.AuthResponse{
		AccessToken: signed,
		ExpiresAt:   expiresAt.Unix(),
		User:        dto.ToUserResponse(user),
	}, nil
}

// Logout blacklists the token in Redis for the remainder of its lifetime
func (s *authServiceImpl) Logout(ctx context.Context, tokenString string) error {
	token, err := s.parseToken(tokenString)
	if err != nil {
		return response.NewAppError(response.ErrCodeInvalidCredential, "Invalid or expired token", "")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return response.NewAppError(response.ErrCodeInvalidCredential, "Invalid token claims", "")
	}

	ttl := s.tokenTTL
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		ttl = time.Until(exp.Time)
	}
	if ttl <= 0 {
		// Already expired, nothing to revoke
		return nil
	}

	if err := s.redis.Set(ctx, blacklistKeyPrefix+tokenString, "1", ttl).Err(); err != nil {
		return response.NewStorageError("Failed to revoke token", err)
	}
	return nil
}

// GetMe returns the profile of the authenticated user
func (s *authServiceImpl) GetMe(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("User not found")
		}
		return nil, response.NewStorageError("Failed to fetch user", err)
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// UpdateUserRole changes a user's role. The handler restricts this to admins.
func (s *authServiceImpl) UpdateUserRole(ctx context.Context, userID uuid.UUID, role domain.UserRole) (*dto.UserResponse, error) {
	if !role.IsValid() {
		return nil, response.NewValidationError("Unknown role")
	}

	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("User not found")
		}
		return nil, response.NewStorageError("Failed to update role", err)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, response.NewStorageError("Failed to fetch user", err)
	}

	s.logger.Info("User role updated",
		zap.String("user_id", userID.String()),
		zap.String("role", string(role)))

	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// ValidateToken verifies the signature, expiry and blacklist state of the
// token and returns the user ID it carries.
func (s *authServiceImpl) ValidateToken(ctx context.Context, tokenString string) (uuid.UUID, error) {
	if s.redis != nil {
		revoked, err := s.redis.Exists(ctx, blacklistKeyPrefix+tokenString).Result()
		if err != nil {
			s.logger.Warn("Blacklist lookup failed, continuing with signature check", zap.Error(err))
		} else if revoked > 0 {
			return uuid.Nil, errors.New("token has been revoked")
		}
	}

	token, err := s.parseToken(tokenString)
	if err != nil || !token.Valid {
		return uuid.Nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid token claims")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, errors.New("user id not found in token")
	}
	return uuid.Parse(userIDStr)
}

func (s *authServiceImpl) parseToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
}
