package storage

import (
	"context"
	"fmt"

	"github.com/Totarae/shortlinks/internal/model"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// DynamoAPI is the subset of the DynamoDB client used by DynamoStore.
type DynamoAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	dynamodb.QueryAPIClient
}

// DynamoStore хранит ссылки в таблице DynamoDB:
// partition key apiKey, sort key shortLinkId.
type DynamoStore struct {
	client DynamoAPI
	table  string
	logger *zap.Logger
}

func NewDynamoStore(client DynamoAPI, table string, logger *zap.Logger) *DynamoStore {
	return &DynamoStore{client: client, table: table, logger: logger}
}

func primaryKey(apiKey, shortLinkID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"apiKey":      &types.AttributeValueMemberS{Value: apiKey},
		"shortLinkId": &types.AttributeValueMemberS{Value: shortLinkID},
	}
}

func (s *DynamoStore) Get(ctx context.Context, apiKey, shortLinkID string) (*model.Link, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       primaryKey(apiKey, shortLinkID),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb get item: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var link model.Link
	if err := attributevalue.UnmarshalMap(out.Item, &link); err != nil {
		return nil, fmt.Errorf("decode link %s: %w", shortLinkID, err)
	}
	return &link, nil
}

func (s *DynamoStore) QueryAll(ctx context.Context, apiKey string) ([]*model.Link, error) {
	paginator := dynamodb.NewQueryPaginator(s.client, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("apiKey = :apiKey"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":apiKey": &types.AttributeValueMemberS{Value: apiKey},
		},
	})

	links := make([]*model.Link, 0)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dynamodb query: %w", err)
		}

		var batch []*model.Link
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("decode links: %w", err)
		}
		links = append(links, batch...)
	}
	return links, nil
}

func (s *DynamoStore) Put(ctx context.Context, link *model.Link) error {
	item, err := attributevalue.MarshalMap(link)
	if err != nil {
		return fmt.Errorf("marshal link: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("dynamodb put item: %w", err)
	}
	return nil
}

func (s *DynamoStore) Delete(ctx context.Context, apiKey, shortLinkID string) error {
	out, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(s.table),
		Key:          primaryKey(apiKey, shortLinkID),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return fmt.Errorf("dynamodb delete item: %w", err)
	}
	s.logger.Debug("dynamodb item deleted",
		zap.String("api_key", apiKey),
		zap.String("short_link_id", shortLinkID),
		zap.Bool("existed", len(out.Attributes) > 0),
	)
	return nil
}
