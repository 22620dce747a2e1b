package dynamodb

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"memories-backend/domain/memory"
	apperrors "memories-backend/pkg/errors"
)

// fakeDynamoDB is an in-memory table keyed by PK and SK. Query pages one
// item at a time to exercise the pagination loop.
type fakeDynamoDB struct {
	items    map[string]map[string]types.AttributeValue
	failWith error
}

func newFakeDynamoDB() *fakeDynamoDB {
	return &fakeDynamoDB{items: make(map[string]map[string]types.AttributeValue)}
}

func itemKey(item map[string]types.AttributeValue) string {
	pk := item["PK"].(*types.AttributeValueMemberS).Value
	sk := item["SK"].(*types.AttributeValueMemberS).Value
	return pk + "|" + sk
}

func (f *fakeDynamoDB) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.items[itemKey(params.Item)] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamoDB) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	item, ok := f.items[itemKey(params.Key)]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: item}, nil
}

func (f *fakeDynamoDB) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}

	var partition string
	for _, v := range params.ExpressionAttributeValues {
		if s, ok := v.(*types.AttributeValueMemberS); ok && len(s.Value) > 5 && s.Value[:5] == "USER#" {
			partition = s.Value
		}
	}

	var keys []string
	for k := range f.items {
		if len(k) > len(partition) && k[:len(partition)] == partition {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	start := 0
	if len(params.ExclusiveStartKey) != 0 {
		after := itemKey(params.ExclusiveStartKey)
		for i, k := range keys {
			if k == after {
				start = i + 1
				break
			}
		}
	}

	out := &dynamodb.QueryOutput{}
	if start < len(keys) {
		out.Items = []map[string]types.AttributeValue{f.items[keys[start]]}
		if start+1 < len(keys) {
			out.LastEvaluatedKey = map[string]types.AttributeValue{
				"PK": f.items[keys[start]]["PK"],
				"SK": f.items[keys[start]]["SK"],
			}
		}
	}
	return out, nil
}

func (f *fakeDynamoDB) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	delete(f.items, itemKey(params.Key))
	return &dynamodb.DeleteItemOutput{}, nil
}

func testMemory(id, userID string) *memory.Memory {
	return &memory.Memory{
		ID:          id,
		UserID:      userID,
		StorageKeys: []string{userID + "/" + id + "-photo.jpg"},
		CreatedAt:   "2024-01-10T12:00:00Z",
		MemoryDate:  "2024-01-10",
		Title:       "Beach day",
	}
}

func TestMemoryRepository_SaveAndFindByID(t *testing.T) {
	fake := newFakeDynamoDB()
	repo := NewMemoryRepository(fake, "memories", zap.NewNop())

	m := testMemory("mem-1", "user-1")
	require.NoError(t, repo.Save(context.Background(), m))

	got, err := repo.FindByID(context.Background(), "user-1", "mem-1")
	require.NoError(t, err)
	assert.Equal(t, m, got)
}

func TestMemoryRepository_SaveWritesPartitionedItem(t *testing.T) {
	fake := newFakeDynamoDB()
	repo := NewMemoryRepository(fake, "memories", zap.NewNop())

	require.NoError(t, repo.Save(context.Background(), testMemory("mem-1", "user-1")))

	raw, ok := fake.items["USER#user-1|MEMORY#mem-1"]
	require.True(t, ok, "item should live under the owner's partition key")

	var item memoryItem
	require.NoError(t, attributevalue.UnmarshalMap(raw, &item))
	assert.Equal(t, "MEMORY", item.EntityType)
	assert.Equal(t, "mem-1", item.MemoryID)
	assert.Equal(t, "user-1", item.UserID)
}

func TestMemoryRepository_FindByID_NotFound(t *testing.T) {
	repo := NewMemoryRepository(newFakeDynamoDB(), "memories", zap.NewNop())

	_, err := repo.FindByID(context.Background(), "user-1", "missing")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestMemoryRepository_FindByID_ForeignOwner(t *testing.T) {
	fake := newFakeDynamoDB()
	repo := NewMemoryRepository(fake, "memories", zap.NewNop())

	require.NoError(t, repo.Save(context.Background(), testMemory("mem-1", "user-1")))

	_, err := repo.FindByID(context.Background(), "user-2", "mem-1")
	assert.True(t, apperrors.IsNotFound(err), "another owner's record must be indistinguishable from absent")
}

func TestMemoryRepository_FindByID_ClientError(t *testing.T) {
	fake := newFakeDynamoDB()
	fake.failWith = errors.New("throttled")
	repo := NewMemoryRepository(fake, "memories", zap.NewNop())

	_, err := repo.FindByID(context.Background(), "user-1", "mem-1")
	require.Error(t, err)
	assert.False(t, apperrors.IsNotFound(err))
}

func TestMemoryRepository_FindByOwner_PaginatesAndIsolates(t *testing.T) {
	fake := newFakeDynamoDB()
	repo := NewMemoryRepository(fake, "memories", zap.NewNop())

	for _, id := range []string{"mem-1", "mem-2", "mem-3"} {
		require.NoError(t, repo.Save(context.Background(), testMemory(id, "user-1")))
	}
	require.NoError(t, repo.Save(context.Background(), testMemory("mem-9", "user-2")))

	got, err := repo.FindByOwner(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, m := range got {
		assert.Equal(t, "user-1", m.UserID)
	}
}

func TestMemoryRepository_FindByOwner_Empty(t *testing.T) {
	repo := NewMemoryRepository(newFakeDynamoDB(), "memories", zap.NewNop())

	got, err := repo.FindByOwner(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryRepository_Delete(t *testing.T) {
	fake := newFakeDynamoDB()
	repo := NewMemoryRepository(fake, "memories", zap.NewNop())

	require.NoError(t, repo.Save(context.Background(), testMemory("mem-1", "user-1")))
	require.NoError(t, repo.Delete(context.Background(), "user-1", "mem-1"))

	_, err := repo.FindByID(context.Background(), "user-1", "mem-1")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestMemoryRepository_Delete_AbsentIsNoOp(t *testing.T) {
	repo := NewMemoryRepository(newFakeDynamoDB(), "memories", zap.NewNop())

	assert.NoError(t, repo.Delete(context.Background(), "user-1", "missing"))
}

func TestMemoryRepository_RoundTripPreservesEmptyKeys(t *testing.T) {
	fake := newFakeDynamoDB()
	repo := NewMemoryRepository(fake, "memories", zap.NewNop())

	m := testMemory("mem-1", "user-1")
	m.StorageKeys = []string{}
	require.NoError(t, repo.Save(context.Background(), m))

	got, err := repo.FindByID(context.Background(), "user-1", "mem-1")
	require.NoError(t, err)
	assert.NotNil(t, got.StorageKeys)
	assert.Empty(t, got.StorageKeys)
}
