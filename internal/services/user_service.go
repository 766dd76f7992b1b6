package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"bookstore/internal/common"
	"bookstore/internal/models"
	"bookstore/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context, filters []common.FieldValue, paging common.Paging) ([]*models.User, int64, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) error
	// Delete removes the user along with their order lines, orders and cart in one transaction.
	Delete(ctx context.Context, id int64) error
	UploadAvatar(ctx context.Context, id int64, upload *ImageUpload) (string, error)
}

type userService struct {
	userRepo     repositories.UserRepository
	minioService MinioService
	stats        StatisticsInvalidator
	bucket       string
}

func NewUserService(userRepo repositories.UserRepository, minioService MinioService, stats StatisticsInvalidator, bucket string) UserService {
	return &userService{
		userRepo:     userRepo,
		minioService: minioService,
		stats:        stats,
		bucket:       bucket,
	}
}

// HashPassword hashes a plain password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *userService) Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Phone:        req.Phone,
		Address:      *req.Address,
		Status:       req.Status,
		Role:         req.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	log.Printf("User %d registered (%s)", user.ID, user.Email)
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) List(ctx context.Context, filters []common.FieldValue, paging common.Paging) ([]*models.User, int64, error) {
	paging = paging.Clamp(common.DefaultMaxPageSize)
	return s.userRepo.List(ctx, filters, paging.Limit, paging.Offset)
}

func (s *userService) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	assignments, err := repositories.UserUpdateColumns.Assignments(fields)
	if err != nil {
		return err
	}
	for _, a := range assignments {
		if a.Column == "status" || a.Column == "role" {
			if v := a.Value.(int64); v != 0 && v != 1 {
				return common.NewValidationError(a.Column, "must be one of [0 1]")
			}
		}
	}
	return s.userRepo.Update(ctx, id, assignments)
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if err := s.userRepo.DeleteCascade(ctx, id); err != nil {
		return err
	}
	log.Printf("User %d deleted with their orders and cart", id)
	effectCtx, cancel := detach(ctx, sideEffectTimeout)
	defer cancel()
	s.stats.Invalidate(effectCtx)
	return nil
}

func (s *userService) UploadAvatar(ctx context.Context, id int64, upload *ImageUpload) (string, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	objectName := imageObjectName("avatars", user.Name, upload.Filename)
	if err := s.minioService.UploadImage(ctx, s.bucket, objectName, upload.Reader, upload.Size, upload.ContentType); err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	path := objectPath(s.bucket, objectName)
	if err := s.userRepo.SetAvatar(ctx, id, path); err != nil {
		if delErr := s.minioService.DeleteImage(ctx, s.bucket, objectName); delErr != nil {
			log.Printf("WARN: orphaned object %s: %v", objectName, delErr)
		}
		return "", err
	}
	return path, nil
}
