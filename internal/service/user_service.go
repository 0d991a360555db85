package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/globetrotter-app/globetrotter-api/internal/domain"
	"github.com/globetrotter-app/globetrotter-api/internal/media"
	"github.com/globetrotter-app/globetrotter-api/internal/repository/ports"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUnsupportedImage   = errors.New("unsupported image type")
	ErrProfileImageTooBig = errors.New("profile image too large")
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type UserServiceConfig struct {
	ProfileBucket     string
	ImageMaxBytes     int64
	ImageMaxDimension int
}

type UserService struct {
	users     ports.UserRepository
	storage   ports.ObjectStorage
	processor media.Processor
	cfg       UserServiceConfig
}

func NewUserService(users ports.UserRepository, storage ports.ObjectStorage, processor media.Processor, cfg UserServiceConfig) *UserService {
	return &UserService{users: users, storage: storage, processor: processor, cfg: cfg}
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile merges the provided fields over the stored row; nil
// pointers leave the current values untouched.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, update ports.UserProfileUpdate) (*domain.User, error) {
	user, err := s.users.UpdateProfile(ctx, id, update)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UploadProfileImage validates and size-caps the upload, stores it in the
// profile bucket under a fresh object name, and persists the URL.
func (s *UserService) UploadProfileImage(ctx context.Context, userID uuid.UUID, upload media.Upload) (*domain.User, error) {
	contentType := strings.ToLower(strings.TrimSpace(upload.ContentType))
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		ext = strings.ToLower(filepath.Ext(upload.FileName))
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" {
			return nil, ErrUnsupportedImage
		}
	}
	if s.cfg.ImageMaxBytes > 0 && upload.Size > s.cfg.ImageMaxBytes {
		return nil, ErrProfileImageTooBig
	}

	reader, size, contentType, err := prepareImageForUpload(ctx, s.processor, upload, s.cfg.ImageMaxDimension)
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("%s/%s%s", userID, uuid.NewString(), ext)
	url, err := s.storage.Upload(ctx, s.cfg.ProfileBucket, objectName, contentType, reader, size)
	if err != nil {
		return nil, err
	}

	return s.UpdateProfile(ctx, userID, ports.UserProfileUpdate{ProfileImageURL: &url})
}

func (s *UserService) List(ctx context.Context, limit, offset int) ([]domain.User, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
