package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ronrevv/wolverinez-workout-planner/internal/domain"
	"github.com/ronrevv/wolverinez-workout-planner/internal/repository"
	"github.com/ronrevv/wolverinez-workout-planner/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrNoDocument = errors.New("no document linked to this user")
)

// --- Service Interface ---
type AccessService interface {
	// HasSiteAccess reports whether the user may use gated features. A
	// missing access row means no access has been granted.
	HasSiteAccess(ctx context.Context, userID primitive.ObjectID) (bool, error)
	GetAccess(ctx context.Context, userID primitive.ObjectID) (*domain.AccessControl, error)
	// Grant and Revoke flip the site-access flag with bookkeeping of who
	// acted and when. Both are idempotent.
	Grant(ctx context.Context, userID, grantedBy primitive.ObjectID) error
	Revoke(ctx context.Context, userID primitive.ObjectID) error

	// RequestDocumentUpload returns a presigned PUT URL for the user's
	// verification document and links the object key to the access row.
	RequestDocumentUpload(ctx context.Context, userID primitive.ObjectID, contentType string) (uploadURL, objectKey string, err error)
	// DocumentDownloadURL returns a presigned GET URL for the linked document.
	DocumentDownloadURL(ctx context.Context, userID primitive.ObjectID) (string, error)
}

// --- Service Implementation ---

type accessService struct {
	accessRepo  repository.AccessRepository
	fileStorage storage.FileStorage
}

// NewAccessService creates a new instance of accessService.
func NewAccessService(accessRepo repository.AccessRepository, fileStorage storage.FileStorage) AccessService {
	return &accessService{
		accessRepo:  accessRepo,
		fileStorage: fileStorage,
	}
}

// HasSiteAccess resolves the flag for a user, treating a missing row as false.
func (s *accessService) HasSiteAccess(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	access, err := s.accessRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return access.HasSiteAccess, nil
}

// GetAccess returns the full access row. A missing row comes back as an
// unsaved row with HasSiteAccess false.
func (s *accessService) GetAccess(ctx context.Context, userID primitive.ObjectID) (*domain.AccessControl, error) {
	access, err := s.accessRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &domain.AccessControl{UserID: userID}, nil
		}
		return nil, err
	}
	return access, nil
}

// Grant enables site access for a user.
func (s *accessService) Grant(ctx context.Context, userID, grantedBy primitive.ObjectID) error {
	access, err := s.GetAccess(ctx, userID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	access.HasSiteAccess = true
	access.AccessGrantedAt = &now
	access.AccessGrantedBy = &grantedBy
	access.AccessRevokedAt = nil
	return s.accessRepo.Upsert(ctx, access)
}

// Revoke disables site access for a user. Revoking a user who never had
// access still records the revocation time.
func (s *accessService) Revoke(ctx context.Context, userID primitive.ObjectID) error {
	access, err := s.GetAccess(ctx, userID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	access.HasSiteAccess = false
	access.AccessRevokedAt = &now
	return s.accessRepo.Upsert(ctx, access)
}

// RequestDocumentUpload presigns a direct upload and links the key. A
// replaced document's old object is removed best-effort.
func (s *accessService) RequestDocumentUpload(ctx context.Context, userID primitive.ObjectID, contentType string) (string, string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	objectKey := fmt.Sprintf("access-documents/%s/%s", userID.Hex(), uuid.NewString())

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", "", fmt.Errorf("failed to presign upload: %w", err)
	}

	if existing, err := s.accessRepo.GetByUserID(ctx, userID); err == nil && existing.DocumentKey != "" {
		if err := s.fileStorage.DeleteObject(ctx, existing.DocumentKey); err != nil {
			log.Printf("WARN: failed to delete replaced document %s: %v", existing.DocumentKey, err)
		}
	}

	if err := s.accessRepo.SetDocumentKey(ctx, userID, objectKey); err != nil {
		return "", "", err
	}
	return uploadURL, objectKey, nil
}

// DocumentDownloadURL presigns a download of the user's linked document.
func (s *accessService) DocumentDownloadURL(ctx context.Context, userID primitive.ObjectID) (string, error) {
	access, err := s.accessRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrNoDocument
		}
		return "", err
	}
	if access.DocumentKey == "" {
		return "", ErrNoDocument
	}

	downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, access.DocumentKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign download: %w", err)
	}
	return downloadURL, nil
}
