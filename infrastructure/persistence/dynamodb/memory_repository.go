package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"memories-backend/application/ports"
	"memories-backend/domain/memory"
	apperrors "memories-backend/pkg/errors"
)

// MemoryAPI is the subset of the DynamoDB client used by the repository.
// Tests substitute a fake.
type MemoryAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// MemoryRepository implements ports.MemoryRepository using DynamoDB.
// Tenant isolation is purely key construction: every item lives in the
// owner's partition, so a foreign record cannot be addressed at all.
type MemoryRepository struct {
	client    MemoryAPI
	tableName string
	logger    *zap.Logger
}

// NewMemoryRepository creates a new MemoryRepository
func NewMemoryRepository(client MemoryAPI, tableName string, logger *zap.Logger) ports.MemoryRepository {
	return &MemoryRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// memoryItem represents the DynamoDB item structure for a memory record
type memoryItem struct {
	PK          string   `dynamodbav:"PK"`
	SK          string   `dynamodbav:"SK"`
	EntityType  string   `dynamodbav:"EntityType"`
	MemoryID    string   `dynamodbav:"MemoryID"`
	UserID      string   `dynamodbav:"UserID"`
	StorageKeys []string `dynamodbav:"StorageKeys"`
	CreatedAt   string   `dynamodbav:"CreatedAt"`
	MemoryDate  string   `dynamodbav:"MemoryDate"`
	Title       string   `dynamodbav:"Title"`
	Description string   `dynamodbav:"Description,omitempty"`
}

func userPK(userID string) string { return fmt.Sprintf("USER#%s", userID) }
func memorySK(id string) string   { return fmt.Sprintf("MEMORY#%s", id) }

func toItem(m *memory.Memory) memoryItem {
	return memoryItem{
		PK:          userPK(m.UserID),
		SK:          memorySK(m.ID),
		EntityType:  "MEMORY",
		MemoryID:    m.ID,
		UserID:      m.UserID,
		StorageKeys: m.StorageKeys,
		CreatedAt:   m.CreatedAt,
		MemoryDate:  m.MemoryDate,
		Title:       m.Title,
		Description: m.Description,
	}
}

func (it memoryItem) toMemory() *memory.Memory {
	keys := it.StorageKeys
	if keys == nil {
		keys = []string{}
	}
	return &memory.Memory{
		ID:          it.MemoryID,
		UserID:      it.UserID,
		StorageKeys: keys,
		CreatedAt:   it.CreatedAt,
		MemoryDate:  it.MemoryDate,
		Title:       it.Title,
		Description: it.Description,
	}
}

// Save persists a memory record to DynamoDB
func (r *MemoryRepository) Save(ctx context.Context, m *memory.Memory) error {
	av, err := attributevalue.MarshalMap(toItem(m))
	if err != nil {
		return fmt.Errorf("failed to marshal memory: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		r.logger.Error("Failed to save memory to DynamoDB",
			zap.String("memoryID", m.ID),
			zap.String("userID", m.UserID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to save memory: %w", err)
	}

	return nil
}

// FindByID fetches a memory record from the owner's partition
func (r *MemoryRepository) FindByID(ctx context.Context, userID, memoryID string) (*memory.Memory, error) {
	key, err := attributevalue.MarshalMap(map[string]string{
		"PK": userPK(userID),
		"SK": memorySK(memoryID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal key: %w", err)
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       key,
	})
	if err != nil {
		r.logger.Error("Failed to get memory from DynamoDB",
			zap.String("memoryID", memoryID),
			zap.String("userID", userID),
			zap.Error(err),
		)
		return nil, apperrors.NewInternalError("Failed to retrieve memory").WithCause(err)
	}

	if len(out.Item) == 0 {
		return nil, apperrors.NewNotFoundError("Memory")
	}

	var item memoryItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal memory: %w", err)
	}

	return item.toMemory(), nil
}

// FindByOwner returns every memory record in the owner's partition.
// DynamoDB returns them in sort-key order, which is meaningless here;
// callers re-sort.
func (r *MemoryRepository) FindByOwner(ctx context.Context, userID string) ([]*memory.Memory, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(userPK(userID))).
		And(expression.Key("SK").BeginsWith("MEMORY#"))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query expression: %w", err)
	}

	var memories []*memory.Memory
	var lastKey map[string]types.AttributeValue

	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			r.logger.Error("Failed to query memories from DynamoDB",
				zap.String("userID", userID),
				zap.Error(err),
			)
			return nil, fmt.Errorf("failed to query memories: %w", err)
		}

		for _, raw := range out.Items {
			var item memoryItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, fmt.Errorf("failed to unmarshal memory: %w", err)
			}
			memories = append(memories, item.toMemory())
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		lastKey = out.LastEvaluatedKey
	}

	return memories, nil
}

// Delete removes a memory record. DynamoDB treats deleting an absent item
// as a no-op, which matches the repository contract.
func (r *MemoryRepository) Delete(ctx context.Context, userID, memoryID string) error {
	key, err := attributevalue.MarshalMap(map[string]string{
		"PK": userPK(userID),
		"SK": memorySK(memoryID),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal key: %w", err)
	}

	if _, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       key,
	}); err != nil {
		r.logger.Error("Failed to delete memory from DynamoDB",
			zap.String("memoryID", memoryID),
			zap.String("userID", userID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to delete memory: %w", err)
	}

	return nil
}
