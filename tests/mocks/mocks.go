// Package mocks provides testify mocks for the application ports.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"memories-backend/application/services"
	"memories-backend/domain/events"
	"memories-backend/domain/memory"
)

// MockMemoryRepository mocks ports.MemoryRepository
type MockMemoryRepository struct {
	mock.Mock
}

func (m *MockMemoryRepository) Save(ctx context.Context, mem *memory.Memory) error {
	args := m.Called(ctx, mem)
	return args.Error(0)
}

func (m *MockMemoryRepository) FindByID(ctx context.Context, userID, memoryID string) (*memory.Memory, error) {
	args := m.Called(ctx, userID, memoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*memory.Memory), args.Error(1)
}

func (m *MockMemoryRepository) FindByOwner(ctx context.Context, userID string) ([]*memory.Memory, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*memory.Memory), args.Error(1)
}

func (m *MockMemoryRepository) Delete(ctx context.Context, userID, memoryID string) error {
	args := m.Called(ctx, userID, memoryID)
	return args.Error(0)
}

// MockBlobStore mocks ports.BlobStore
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) PresignUpload(ctx context.Context, key, contentType string, expires time.Duration) (string, error) {
	args := m.Called(ctx, key, contentType, expires)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockBlobStore) PublicURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}

// MockMemoryService mocks the handler-facing application service
type MockMemoryService struct {
	mock.Mock
}

func (m *MockMemoryService) PresignUpload(ctx context.Context, userID, filename, contentType string) (*services.PresignResult, error) {
	args := m.Called(ctx, userID, filename, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.PresignResult), args.Error(1)
}

func (m *MockMemoryService) CreateMemory(ctx context.Context, userID string, input services.CreateMemoryInput) (*services.MemoryView, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.MemoryView), args.Error(1)
}

func (m *MockMemoryService) GetMemory(ctx context.Context, userID, memoryID string) (*services.MemoryView, error) {
	args := m.Called(ctx, userID, memoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.MemoryView), args.Error(1)
}

func (m *MockMemoryService) ListMemories(ctx context.Context, userID string) ([]*services.MemoryView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*services.MemoryView), args.Error(1)
}

func (m *MockMemoryService) DeleteMemory(ctx context.Context, userID, memoryID string) error {
	args := m.Called(ctx, userID, memoryID)
	return args.Error(0)
}

// MockEventPublisher mocks ports.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
