package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"memories-backend/application/ports"
	"memories-backend/domain/events"
	"memories-backend/domain/memory"
	apperrors "memories-backend/pkg/errors"
)

// Characters preserved in the human-readable suffix of a storage key.
// Everything else is replaced to keep path structure out of client hands.
var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]`)

// MemoryService implements the memory-record lifecycle and the
// upload-coordination protocol: the client requests an upload authorization,
// transfers bytes directly to storage, then creates a record referencing the
// minted key(s). The record write and the blob operations are independent
// calls with no atomicity between them; a client that abandons the flow
// after presigning leaves an orphaned blob behind.
type MemoryService struct {
	repo      ports.MemoryRepository
	blobs     ports.BlobStore
	publisher ports.EventPublisher
	uploadTTL time.Duration
	logger    *zap.Logger
}

// NewMemoryService creates a new memory service
func NewMemoryService(
	repo ports.MemoryRepository,
	blobs ports.BlobStore,
	publisher ports.EventPublisher,
	uploadTTL time.Duration,
	logger *zap.Logger,
) *MemoryService {
	return &MemoryService{
		repo:      repo,
		blobs:     blobs,
		publisher: publisher,
		uploadTTL: uploadTTL,
		logger:    logger,
	}
}

// PresignResult is the upload authorization returned to the client.
type PresignResult struct {
	UploadURL string `json:"uploadUrl"`
	FileKey   string `json:"fileKey"`
}

// MemoryView is a record enriched with retrieval URLs derived from its
// storage keys. URLs are recomputed on every read, never persisted.
type MemoryView struct {
	memory.Memory
	FileURLs []string `json:"fileUrls"`
}

// CreateMemoryInput carries the client-controlled fields of a create call.
// FileKey is the legacy single-photo shape and is folded into StorageKeys.
type CreateMemoryInput struct {
	StorageKeys []string
	FileKey     string
	MemoryDate  string
	Title       string
	Description string
}

// PresignUpload mints an owner-namespaced storage key and a time-limited
// authorization for exactly one upload of the declared content type. Each
// call mints a fresh key, so a retry after a transient failure is idempotent
// at the storage layer.
func (s *MemoryService) PresignUpload(ctx context.Context, userID, filename, contentType string) (*PresignResult, error) {
	if userID == "" {
		return nil, apperrors.NewUnauthorizedError("Unauthorized")
	}
	if filename == "" || contentType == "" {
		return nil, apperrors.NewValidationError("filename and contentType are required")
	}

	key := BuildStorageKey(userID, filename)
	uploadURL, err := s.blobs.PresignUpload(ctx, key, contentType, s.uploadTTL)
	if err != nil {
		s.logger.Error("Failed to presign upload",
			zap.String("userID", userID),
			zap.String("fileKey", key),
			zap.Error(err),
		)
		return nil, apperrors.NewInternalError("Failed to create upload URL").WithCause(err)
	}

	return &PresignResult{UploadURL: uploadURL, FileKey: key}, nil
}

// BuildStorageKey derives the storage key for an upload. The owner identity
// is the first path segment, so no two owners can collide; the timestamp and
// uuid make repeated uploads of the same filename distinct.
func BuildStorageKey(userID, filename string) string {
	safeName := unsafeNameChars.ReplaceAllString(filename, "_")
	return fmt.Sprintf("%s/%d-%s-%s", userID, time.Now().UnixMilli(), uuid.New().String(), safeName)
}

// CreateMemory validates and persists a new record owned by userID. The
// referenced storage keys are not checked for existence: the client uploaded
// them moments ago and the accepted failure mode is a record pointing at a
// blob deleted independently. A retried create after an ambiguous failure
// may produce a duplicate record; creation carries no idempotency key.
func (s *MemoryService) CreateMemory(ctx context.Context, userID string, input CreateMemoryInput) (*MemoryView, error) {
	keys := input.StorageKeys
	if len(keys) == 0 && input.FileKey != "" {
		keys = []string{input.FileKey}
	}

	m, err := memory.New(userID, memory.NewInput{
		StorageKeys: keys,
		MemoryDate:  input.MemoryDate,
		Title:       input.Title,
		Description: input.Description,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, m); err != nil {
		s.logger.Error("Failed to save memory",
			zap.String("userID", userID),
			zap.String("memoryID", m.ID),
			zap.Error(err),
		)
		return nil, apperrors.NewInternalError("Failed to create memory").WithCause(err)
	}

	s.publish(ctx, events.NewMemoryCreated(m.ID, m.UserID, m.MemoryDate, m.StorageKeys))

	return s.view(m), nil
}

// GetMemory returns a single record with derived URLs. Absent records and
// records owned by someone else produce the same not-found outcome.
func (s *MemoryService) GetMemory(ctx context.Context, userID, memoryID string) (*MemoryView, error) {
	if userID == "" {
		return nil, apperrors.NewUnauthorizedError("Unauthorized")
	}
	if memoryID == "" {
		return nil, apperrors.NewValidationError("memory id is required")
	}

	m, err := s.repo.FindByID(ctx, userID, memoryID)
	if err != nil {
		return nil, err
	}
	return s.view(m), nil
}

// ListMemories returns every record of the owner, newest memory date first.
// The store's partition order is unspecified, so the result is re-sorted
// per response.
func (s *MemoryService) ListMemories(ctx context.Context, userID string) ([]*MemoryView, error) {
	if userID == "" {
		return nil, apperrors.NewUnauthorizedError("Unauthorized")
	}

	memories, err := s.repo.FindByOwner(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list memories",
			zap.String("userID", userID),
			zap.Error(err),
		)
		return nil, apperrors.NewInternalError("Failed to list memories").WithCause(err)
	}

	memory.SortDescending(memories)

	views := make([]*MemoryView, 0, len(memories))
	for _, m := range memories {
		views = append(views, s.view(m))
	}
	return views, nil
}

// DeleteMemory removes the record, then best-effort deletes each referenced
// blob. The record goes first: a blob-delete failure afterwards leaves an
// orphaned object with no surviving reference, which is the accepted gap.
// A repeat call on a deleted id returns not found; clients treat that as a
// settled end state.
func (s *MemoryService) DeleteMemory(ctx context.Context, userID, memoryID string) error {
	if userID == "" {
		return apperrors.NewUnauthorizedError("Unauthorized")
	}
	if memoryID == "" {
		return apperrors.NewValidationError("memory id is required")
	}

	existing, err := s.repo.FindByID(ctx, userID, memoryID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, userID, memoryID); err != nil {
		s.logger.Error("Failed to delete memory",
			zap.String("userID", userID),
			zap.String("memoryID", memoryID),
			zap.Error(err),
		)
		return apperrors.NewInternalError("Failed to delete memory").WithCause(err)
	}

	for _, key := range existing.StorageKeys {
		if err := s.blobs.Delete(ctx, key); err != nil {
			// The record is already gone; failing the request now would
			// only invite a retry that can no longer find it.
			s.logger.Warn("Failed to delete blob for removed memory",
				zap.String("userID", userID),
				zap.String("memoryID", memoryID),
				zap.String("fileKey", key),
				zap.Error(err),
			)
		}
	}

	s.publish(ctx, events.NewMemoryDeleted(memoryID, userID, existing.StorageKeys))

	return nil
}

func (s *MemoryService) view(m *memory.Memory) *MemoryView {
	urls := make([]string, 0, len(m.StorageKeys))
	for _, key := range m.StorageKeys {
		urls = append(urls, s.blobs.PublicURL(key))
	}
	return &MemoryView{Memory: *m, FileURLs: urls}
}

func (s *MemoryService) publish(ctx context.Context, event events.DomainEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish event",
			zap.String("eventType", event.GetEventType()),
			zap.String("aggregateID", event.GetAggregateID()),
			zap.Error(err),
		)
	}
}
