package services

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// DynamoAPI is the part of the DynamoDB client the stores use.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

type DynamoService struct {
	Client DynamoAPI
	Logger *zap.Logger
}

// NewDynamoService builds a DynamoDB client from an already loaded AWS config.
func NewDynamoService(cfg aws.Config, logger *zap.Logger) *DynamoService {
	return &DynamoService{Client: dynamodb.NewFromConfig(cfg), Logger: logger}
}

// GetItem retrieves an item by key. A missing item is (nil, nil).
func (ds *DynamoService) GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	output, err := ds.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &tableName,
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get item from table '%s': %w", tableName, err)
	}
	return output.Item, nil
}

// PutItem marshals item with its dynamodbav tags and writes it.
func (ds *DynamoService) PutItem(ctx context.Context, tableName string, item interface{}) error {
	marshaledItem, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	_, err = ds.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &tableName,
		Item:      marshaledItem,
	})
	if err != nil {
		ds.Logger.Error("dynamodb put failed", zap.String("table", tableName), zap.Error(err))
		return fmt.Errorf("failed to put item in table '%s': %w", tableName, err)
	}
	ds.Logger.Debug("dynamodb item written", zap.String("table", tableName))
	return nil
}
