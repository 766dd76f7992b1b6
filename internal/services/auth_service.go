package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"bookstore/internal/caching"
	"bookstore/internal/common"
	"bookstore/internal/events"
	"bookstore/internal/models"
	"bookstore/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer   = "bookstore"
	resetTokenTTL = 15 * time.Minute
)

// AuthService handles login, JWT access tokens and password resets.
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error)
	// Logout revokes the token until it would have expired anyway.
	Logout(ctx context.Context, claims *models.TokenClaims) error
	Me(ctx context.Context, userID int64) (*models.User, error)
	ValidateToken(ctx context.Context, token string) (*models.TokenClaims, error)
	// ForgotPassword issues a reset token and hands it to the mailer through
	// the event stream. Unknown emails are not reported to the caller.
	ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) error
	// ResetPassword sets a new password; each reset token works once.
	ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error
}

type authService struct {
	userRepo  repositories.UserRepository
	cacheSvc  caching.CacheService
	publisher events.Publisher
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo repositories.UserRepository, cacheSvc caching.CacheService, publisher events.Publisher,
	jwtSecret string, tokenTTL time.Duration) AuthService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &authService{
		userRepo:  userRepo,
		cacheSvc:  cacheSvc,
		publisher: publisher,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}
	if user.Status != 1 {
		log.Printf("WARN: login refused for disabled user %d", user.ID)
		return nil, common.ErrInvalidCredentials
	}

	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)
	claims := &models.TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &models.TokenResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.tokenTTL.Seconds()),
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}

func (s *authService) Logout(ctx context.Context, claims *models.TokenClaims) error {
	if claims == nil || claims.ID == "" {
		return common.ErrInvalidCredentials
	}
	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if err := s.cacheSvc.RevokeToken(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *authService) Me(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// ValidateToken parses and verifies a token and checks it has not been revoked.
func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*models.TokenClaims, error) {
	claims := &models.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tokenIssuer))
	if err != nil || !token.Valid || claims.UserID == 0 {
		return nil, common.ErrInvalidCredentials
	}

	revoked, err := s.cacheSvc.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, common.ErrInvalidCredentials
	}
	return claims, nil
}

func (s *authService) ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) error {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := common.ValidateStruct(req); err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			log.Printf("Password reset requested for unknown email %s", req.Email)
			return nil
		}
		return err
	}

	now := time.Now()
	expiresAt := now.Add(resetTokenTTL)
	claims := &models.PasswordResetClaims{
		Email:   user.Email,
		Purpose: models.PasswordResetPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return fmt.Errorf("failed to sign reset token: %w", err)
	}

	event := &models.PasswordResetEvent{UserID: user.ID, Email: user.Email, Token: signed, ExpiresAt: expiresAt}
	if err := s.publisher.Publish(ctx, models.PasswordResetRequestedEvent, claims.Subject, event); err != nil {
		return fmt.Errorf("failed to queue reset email: %w", err)
	}
	log.Printf("Password reset issued for user %d", user.ID)
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	if err := common.ValidateStruct(req); err != nil {
		return err
	}

	claims := &models.PasswordResetClaims{}
	token, err := jwt.ParseWithClaims(req.Token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid || claims.Purpose != models.PasswordResetPurpose || claims.ID == "" {
		return common.NewValidationError("token", "is invalid or expired")
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return common.NewValidationError("token", "is invalid or expired")
	}

	used, err := s.cacheSvc.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		return err
	}
	if used {
		return common.NewValidationError("token", "has already been used")
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.SetPassword(ctx, userID, hash); err != nil {
		return err
	}
	if err := s.cacheSvc.RevokeToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
		log.Printf("WARN: reset token for user %d not revoked: %v", userID, err)
	}
	log.Printf("Password reset for user %d", userID)
	return nil
}
