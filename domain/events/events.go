package events

import "time"

// Event source for all events published by this service
const SourceBackend = "memories.backend"

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }

// MemoryCreated is raised after a memory record has been persisted
type MemoryCreated struct {
	BaseEvent
	UserID      string   `json:"user_id"`
	MemoryDate  string   `json:"memory_date"`
	StorageKeys []string `json:"storage_keys"`
}

// NewMemoryCreated creates a MemoryCreated event
func NewMemoryCreated(memoryID, userID, memoryDate string, storageKeys []string) MemoryCreated {
	return MemoryCreated{
		BaseEvent: BaseEvent{
			AggregateID: memoryID,
			EventType:   "memory.created",
			Timestamp:   time.Now().UTC(),
		},
		UserID:      userID,
		MemoryDate:  memoryDate,
		StorageKeys: storageKeys,
	}
}

// MemoryDeleted is raised after a memory record has been removed. The
// referenced blobs may outlive the record when their deletion fails.
type MemoryDeleted struct {
	BaseEvent
	UserID      string   `json:"user_id"`
	StorageKeys []string `json:"storage_keys"`
}

// NewMemoryDeleted creates a MemoryDeleted event
func NewMemoryDeleted(memoryID, userID string, storageKeys []string) MemoryDeleted {
	return MemoryDeleted{
		BaseEvent: BaseEvent{
			AggregateID: memoryID,
			EventType:   "memory.deleted",
			Timestamp:   time.Now().UTC(),
		},
		UserID:      userID,
		StorageKeys: storageKeys,
	}
}
