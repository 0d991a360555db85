package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/globetrotter-app/globetrotter-api/internal/media"
	"github.com/globetrotter-app/globetrotter-api/internal/repository/ports"
)

type captureStorage struct {
	bucket      string
	objectName  string
	contentType string
	data        []byte
	url         string
}

func (s *captureStorage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	s.bucket = bucket
	s.objectName = objectName
	s.contentType = contentType
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	s.data = data
	s.url = "https://cdn.example.com/" + bucket + "/" + objectName
	return s.url, nil
}

type stubProcessor struct {
	called bool
	result *media.Result
}

func (p *stubProcessor) Process(ctx context.Context, upload media.Upload, maxDimension int) (*media.Result, error) {
	p.called = true
	if p.result != nil {
		return p.result, nil
	}
	data, err := io.ReadAll(upload.Reader)
	if err != nil {
		return nil, err
	}
	return &media.Result{Bytes: data, ContentType: upload.ContentType}, nil
}

func newUserFixture(processor media.Processor) (*UserService, *memoryUserRepo, *captureStorage) {
	users := newMemoryUserRepo()
	storage := &captureStorage{}
	svc := NewUserService(users, storage, processor, UserServiceConfig{
		ProfileBucket:     "profile-images",
		ImageMaxBytes:     1 << 20,
		ImageMaxDimension: 800,
	})
	return svc, users, storage
}

func str(s string) *string { return &s }

func TestUserServiceUpdateProfileMergesFields(t *testing.T) {
	svc, users, _ := newUserFixture(nil)
	ctx := context.Background()

	seeded, err := users.Create(ctx, "Ada Lovelace", "ada@example.com", []byte("h"), []byte("s"), ports.UserProfileUpdate{
		Phone: str("+44 1234"),
		City:  str("London"),
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	updated, err := svc.UpdateProfile(ctx, seeded.ID, ports.UserProfileUpdate{
		City:  str("Cambridge"),
		About: str("Analyst"),
	})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if updated.City == nil || *updated.City != "Cambridge" {
		t.Fatalf("expected city updated, got %v", updated.City)
	}
	if updated.About == nil || *updated.About != "Analyst" {
		t.Fatalf("expected about set, got %v", updated.About)
	}
	// Fields absent from the update keep their stored values.
	if updated.Phone == nil || *updated.Phone != "+44 1234" {
		t.Fatalf("expected phone untouched, got %v", updated.Phone)
	}
	if updated.FullName != "Ada Lovelace" {
		t.Fatalf("expected name untouched, got %q", updated.FullName)
	}
}

func TestUserServiceUploadProfileImage(t *testing.T) {
	processor := &stubProcessor{}
	svc, users, storage := newUserFixture(processor)
	ctx := context.Background()

	seeded, err := users.Create(ctx, "Ada", "ada@example.com", []byte("h"), []byte("s"), ports.UserProfileUpdate{})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	payload := []byte("fake-jpeg-bytes")
	updated, err := svc.UploadProfileImage(ctx, seeded.ID, media.Upload{
		Reader:      bytes.NewReader(payload),
		Size:        int64(len(payload)),
		FileName:    "me.jpg",
		ContentType: "image/jpeg",
	})
	if err != nil {
		t.Fatalf("UploadProfileImage returned error: %v", err)
	}

	if !processor.called {
		t.Fatalf("expected the image processor to run")
	}
	if storage.bucket != "profile-images" {
		t.Fatalf("expected uploads in the profile bucket, got %q", storage.bucket)
	}
	if !strings.HasPrefix(storage.objectName, seeded.ID.String()+"/") {
		t.Fatalf("expected object name scoped by user id, got %q", storage.objectName)
	}
	if !strings.HasSuffix(storage.objectName, ".jpg") {
		t.Fatalf("expected .jpg object name, got %q", storage.objectName)
	}
	if updated.ProfileImageURL == nil || *updated.ProfileImageURL != storage.url {
		t.Fatalf("expected profile image URL %q persisted, got %v", storage.url, updated.ProfileImageURL)
	}
}

func TestUserServiceUploadRejectsUnsupportedType(t *testing.T) {
	svc, users, _ := newUserFixture(nil)
	ctx := context.Background()

	seeded, err := users.Create(ctx, "Ada", "ada@example.com", []byte("h"), []byte("s"), ports.UserProfileUpdate{})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	_, err = svc.UploadProfileImage(ctx, seeded.ID, media.Upload{
		Reader:      strings.NewReader("%PDF-1.4"),
		Size:        8,
		FileName:    "resume.pdf",
		ContentType: "application/pdf",
	})
	if !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("expected ErrUnsupportedImage, got %v", err)
	}
}

func TestUserServiceUploadRejectsOversizedImage(t *testing.T) {
	svc, users, _ := newUserFixture(nil)
	ctx := context.Background()

	seeded, err := users.Create(ctx, "Ada", "ada@example.com", []byte("h"), []byte("s"), ports.UserProfileUpdate{})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	_, err = svc.UploadProfileImage(ctx, seeded.ID, media.Upload{
		Reader:      strings.NewReader("x"),
		Size:        2 << 20,
		FileName:    "huge.png",
		ContentType: "image/png",
	})
	if !errors.Is(err, ErrProfileImageTooBig) {
		t.Fatalf("expected ErrProfileImageTooBig, got %v", err)
	}
}

func TestUserServiceListClampsPaging(t *testing.T) {
	svc, users, _ := newUserFixture(nil)
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com"} {
		if _, err := users.Create(ctx, "User", email, []byte("h"), []byte("s"), ports.UserProfileUpdate{}); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	listed, total, err := svc.List(ctx, -5, -1)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected total 2, got %d", total)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 users, got %d", len(listed))
	}
}
