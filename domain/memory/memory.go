package memory

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "memories-backend/pkg/errors"
)

// DateLayout is the canonical representation of a memory date, on the wire
// and on disk: a plain calendar date. Full RFC3339 timestamps are accepted
// on input and truncated to their date part.
const DateLayout = "2006-01-02"

// Memory is a single diary entry. ID, UserID and CreatedAt are generated
// server-side at creation and are immutable; client-supplied values for them
// are ignored. StorageKeys reference previously-uploaded blobs in display
// order and may be empty.
type Memory struct {
	ID          string   `json:"id"`
	UserID      string   `json:"userId"`
	StorageKeys []string `json:"storageKeys"`
	CreatedAt   string   `json:"createdAt"`
	MemoryDate  string   `json:"memoryDate"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
}

// NewInput carries the client-controlled fields of a new memory.
type NewInput struct {
	StorageKeys []string
	MemoryDate  string
	Title       string
	Description string
}

// New validates input and builds a Memory owned by userID. The record id and
// creation timestamp are always minted here, never taken from the caller.
func New(userID string, input NewInput) (*Memory, error) {
	if userID == "" {
		return nil, apperrors.NewUnauthorizedError("Unauthorized")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidationError("title is required")
	}
	if input.MemoryDate == "" {
		return nil, apperrors.NewValidationError("memoryDate is required")
	}

	date, err := NormalizeDate(input.MemoryDate)
	if err != nil {
		return nil, err
	}

	keys := input.StorageKeys
	if keys == nil {
		keys = []string{}
	}

	return &Memory{
		ID:          uuid.New().String(),
		UserID:      userID,
		StorageKeys: keys,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		MemoryDate:  date,
		Title:       input.Title,
		Description: input.Description,
	}, nil
}

// NormalizeDate parses a memory date and returns it in the canonical
// calendar-date form. RFC3339 timestamps are truncated to their date part.
func NormalizeDate(s string) (string, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t.Format(DateLayout), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format(DateLayout), nil
	}
	return "", apperrors.NewValidationError("memoryDate must be a valid date string")
}

// SortDescending orders memories by memory date, newest first, falling back
// to creation time when dates are absent or equal. The store returns
// partition order, which is unspecified, so callers re-sort every response.
func SortDescending(memories []*Memory) {
	sort.SliceStable(memories, func(i, j int) bool {
		ki, kj := memories[i].sortKey(), memories[j].sortKey()
		if ki != kj {
			return ki > kj
		}
		return memories[i].CreatedAt > memories[j].CreatedAt
	})
}

// sortKey favors the user-chosen date; records predating the memoryDate
// field fall back to their creation time. Both layouts compare
// chronologically as strings.
func (m *Memory) sortKey() string {
	if m.MemoryDate != "" {
		return m.MemoryDate
	}
	return m.CreatedAt
}
