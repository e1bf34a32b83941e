package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"spill/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserStore persists user records keyed by Telegram user id.
type UserStore interface {
	Get(ctx context.Context, id int64) (*models.UserRecord, error)
	Put(ctx context.Context, record models.UserRecord) error
}

// MemoryUserStore keeps records in process memory.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[int64]models.UserRecord
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[int64]models.UserRecord)}
}

func (s *MemoryUserStore) Get(ctx context.Context, id int64) (*models.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &rec, nil
}

func (s *MemoryUserStore) Put(ctx context.Context, record models.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[record.ID] = record
	return nil
}

// DynamoUserStore keeps records in a DynamoDB table whose partition key is
// the numeric attribute "id".
type DynamoUserStore struct {
	Dynamo *DynamoService
	Table  string
}

func (s *DynamoUserStore) Get(ctx context.Context, id int64) (*models.UserRecord, error) {
	key := map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberN{Value: strconv.FormatInt(id, 10)},
	}
	item, err := s.Dynamo.GetItem(ctx, s.table(), key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrUserNotFound
	}

	var record models.UserRecord
	if err := attributevalue.UnmarshalMap(item, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user %d: %w", id, err)
	}
	return &record, nil
}

func (s *DynamoUserStore) Put(ctx context.Context, record models.UserRecord) error {
	return s.Dynamo.PutItem(ctx, s.table(), record)
}

func (s *DynamoUserStore) table() string {
	if s.Table == "" {
		return models.UsersTable
	}
	return s.Table
}
