package service

import (
	"alcyxob/fittrack/internal/domain"
	"alcyxob/fittrack/internal/repository"
	"alcyxob/fittrack/internal/storage"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid" // For generating unique identifiers for S3 keys
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrUploadURLError         = errors.New("failed to generate upload URL")
	ErrDownloadURLError       = errors.New("failed to generate download URL")
	ErrUnsupportedContentType = invalid("photo must be an image")
	ErrObjectKeyMismatch      = invalid("object key does not belong to this progress entry")
	ErrPhotoNotUploaded       = ruleViolation("photo has not been uploaded yet")
)

// UploadURLResponse structure for returning URL and object key
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"` // The key client needs to report back on confirm
}

// ProgressInput carries one body measurement. Zero RecordedAt means now.
type ProgressInput struct {
	RecordedAt     time.Time
	WeightKg       float64
	BodyFatPercent *float64
	Notes          string
}

type ProgressService interface {
	CreateEntry(ctx context.Context, userID primitive.ObjectID, in ProgressInput) (*domain.ProgressEntry, error)
	GetEntry(ctx context.Context, userID, entryID primitive.ObjectID) (*domain.ProgressEntry, error)
	ListEntries(ctx context.Context, userID primitive.ObjectID) ([]domain.ProgressEntry, error)

	// Photos go straight from the client to object storage.
	RequestPhotoUploadURL(ctx context.Context, userID, entryID primitive.ObjectID, contentType string) (*UploadURLResponse, error)
	ConfirmPhoto(ctx context.Context, userID, entryID primitive.ObjectID, objectKey, contentType string) (*domain.ProgressEntry, error)
	GetPhotoDownloadURL(ctx context.Context, userID, entryID primitive.ObjectID) (string, error)
}

type progressService struct {
	profileRepo  repository.ProfileRepository
	progressRepo repository.ProgressRepository
	fileStorage  storage.FileStorage
	urlExpiry    time.Duration
	now          func() time.Time
}

func NewProgressService(
	profileRepo repository.ProfileRepository,
	progressRepo repository.ProgressRepository,
	fileStorage storage.FileStorage,
	urlExpiry time.Duration,
) ProgressService {
	if urlExpiry <= 0 {
		urlExpiry = storage.DefaultPresignedURLExpiry
	}
	return &progressService{
		profileRepo:  profileRepo,
		progressRepo: progressRepo,
		fileStorage:  fileStorage,
		urlExpiry:    urlExpiry,
		now:          time.Now,
	}
}

func (s *progressService) CreateEntry(ctx context.Context, userID primitive.ObjectID, in ProgressInput) (*domain.ProgressEntry, error) {
	if in.WeightKg <= 0 {
		return nil, invalid("weight must be positive")
	}
	if in.BodyFatPercent != nil && (*in.BodyFatPercent < 0 || *in.BodyFatPercent > 100) {
		return nil, invalid("body fat must be between 0 and 100 percent")
	}
	profile, err := profileOf(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	recordedAt := in.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = s.now()
	}
	entry := &domain.ProgressEntry{
		ProfileID:      profile.ID,
		RecordedAt:     recordedAt.UTC(),
		WeightKg:       in.WeightKg,
		BodyFatPercent: in.BodyFatPercent,
		Notes:          in.Notes,
	}

	id, err := s.progressRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id
	return entry, nil
}

func (s *progressService) GetEntry(ctx context.Context, userID, entryID primitive.ObjectID) (*domain.ProgressEntry, error) {
	profile, err := profileOf(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	return s.owned(ctx, profile.ID, entryID)
}

// ListEntries returns the profile's entries, newest first.
func (s *progressService) ListEntries(ctx context.Context, userID primitive.ObjectID) ([]domain.ProgressEntry, error) {
	profile, err := profileOf(ctx, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	return s.progressRepo.ListByProfile(ctx, profile.ID)
}

func (s *progressService) owned(ctx context.Context, profileID, entryID primitive.ObjectID) (*domain.ProgressEntry, error) {
	entry, err := s.progressRepo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}
	if entry.ProfileID != profileID {
		return nil, ErrProgressAccessDenied
	}
	return entry, nil
}

// photoPrefix is the key prefix all photos of one entry share.
func photoPrefix(entry *domain.ProgressEntry) string {
	return path.Join("progress", entry.ProfileID.Hex(), entry.ID.Hex()) + "/"
}

func (s *progressService) RequestPhotoUploadURL(ctx context.Context, userID, entryID primitive.ObjectID, contentType string) (*UploadURLResponse, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrUnsupportedContentType
	}
	entry, err := s.GetEntry(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}

	fileExtension := strings.TrimPrefix(contentType, "image/")
	objectKey := photoPrefix(entry) + fmt.Sprintf("%s.%s", uuid.NewString(), fileExtension)

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, s.urlExpiry)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUploadURLError, err)
	}
	return &UploadURLResponse{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

// ConfirmPhoto attaches an uploaded object to the entry. A previous photo
// is removed from storage.
func (s *progressService) ConfirmPhoto(ctx context.Context, userID, entryID primitive.ObjectID, objectKey, contentType string) (*domain.ProgressEntry, error) {
	if objectKey == "" {
		return nil, invalid("object key is required")
	}
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return nil, ErrUnsupportedContentType
	}
	entry, err := s.GetEntry(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}
	if path.Clean(objectKey) != objectKey || path.Dir(objectKey)+"/" != photoPrefix(entry) {
		return nil, ErrObjectKeyMismatch
	}
	if objectKey == entry.PhotoKey {
		return entry, nil
	}

	exists, err := s.fileStorage.ObjectExists(ctx, objectKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPhotoNotUploaded
	}

	previous := entry.PhotoKey
	entry.PhotoKey = objectKey
	entry.PhotoType = contentType
	if err := s.progressRepo.Update(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, err
	}

	if previous != "" {
		// The entry already points at the new photo; a stale object is only wasted space.
		_ = s.fileStorage.DeleteObject(ctx, previous)
	}
	return entry, nil
}

func (s *progressService) GetPhotoDownloadURL(ctx context.Context, userID, entryID primitive.ObjectID) (string, error) {
	entry, err := s.GetEntry(ctx, userID, entryID)
	if err != nil {
		return "", err
	}
	if !entry.HasPhoto() {
		return "", ErrPhotoNotFound
	}

	downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, entry.PhotoKey, s.urlExpiry)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDownloadURLError, err)
	}
	return downloadURL, nil
}
