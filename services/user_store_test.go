package services

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"spill/models"
)

// fakeDynamo keeps items keyed by the "id" number attribute.
type fakeDynamo struct {
	items map[string]map[string]types.AttributeValue
	table string
}

func (f *fakeDynamo) GetItem(ctx context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.table = *in.TableName
	id := in.Key["id"].(*types.AttributeValueMemberN).Value
	return &dynamodb.GetItemOutput{Item: f.items[id]}, nil
}

func (f *fakeDynamo) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.table = *in.TableName
	id := in.Item["id"].(*types.AttributeValueMemberN).Value
	f.items[id] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func TestDynamoUserStoreRoundTrip(t *testing.T) {
	fake := &fakeDynamo{items: map[string]map[string]types.AttributeValue{}}
	store := &DynamoUserStore{Dynamo: &DynamoService{Client: fake, Logger: zap.NewNop()}}
	ctx := context.Background()

	_, err := store.Get(ctx, 42)
	assert.ErrorIs(t, err, ErrUserNotFound)

	age := 26
	rec := models.UserRecord{
		ID:          42,
		FirstName:   "Ada",
		Age:         &age,
		Interests:   []string{"chess"},
		SocialLinks: map[string]string{"instagram": "https://instagram.com/ada"},
		CreatedAt:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Put(ctx, rec))
	assert.Equal(t, models.UsersTable, fake.table)

	// absent optional attributes are not written
	_, hasBio := fake.items["42"]["bio"]
	assert.False(t, hasBio)

	got, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, 26, *got.Age)
	assert.Nil(t, got.Bio)
	assert.Equal(t, rec.SocialLinks, got.SocialLinks)
	assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))
}

func TestMemoryUserStore(t *testing.T) {
	store := NewMemoryUserStore()
	ctx := context.Background()
	_, err := store.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, store.Put(ctx, models.UserRecord{ID: 1, FirstName: "A"}))
	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "A", got.FirstName)
}
