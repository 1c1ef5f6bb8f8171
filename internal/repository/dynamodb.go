package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"

	"dynamic-pricing-api/internal/mapper"
	"dynamic-pricing-api/internal/models"
)

// DynamoDBAPI is the subset of the DynamoDB client used by the repository.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// dynamoDBListingRepository implements ListingRepository on DynamoDB.
type dynamoDBListingRepository struct {
	client    DynamoDBAPI
	tableName string
	indexName string
}

// NewDynamoDBListingRepository creates a repository bound to the listing table
// and its userId secondary index.
func NewDynamoDBListingRepository(client DynamoDBAPI, tableName, indexName string) ListingRepository {
	return &dynamoDBListingRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
	}
}

// compositeKey builds the DynamoDB key map for a (listingId, userId) pair.
func compositeKey(listingID, userID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		models.FieldListingID: &types.AttributeValueMemberS{Value: listingID},
		models.FieldUserID:    &types.AttributeValueMemberS{Value: userID},
	}
}

func (r *dynamoDBListingRepository) Save(ctx context.Context, listing *models.Listing) error {
	_, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      mapper.ListingToItem(listing),
	})
	if err != nil {
		return fmt.Errorf("failed to put listing %s: %w", listing.ListingID, err)
	}

	logrus.WithFields(logrus.Fields{
		"listing_id": listing.ListingID,
		"user_id":    listing.UserID,
	}).Info("Persisted listing")
	return nil
}

func (r *dynamoDBListingRepository) FindByID(ctx context.Context, listingID, userID string) (*models.Listing, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       compositeKey(listingID, userID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get listing %s: %w", listingID, err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	return mapper.ListingFromItem(out.Item)
}

func (r *dynamoDBListingRepository) FindByUserID(ctx context.Context, userID string) ([]*models.Listing, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.indexName),
		KeyConditionExpression: aws.String("userId = :userId"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query listings for user: %w", err)
	}

	listings := make([]*models.Listing, 0, len(out.Items))
	for _, item := range out.Items {
		listing, err := mapper.ListingFromItem(item)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"count":   len(listings),
	}).Info("Queried listings for user")
	return listings, nil
}

func (r *dynamoDBListingRepository) Update(ctx context.Context, listing *models.Listing) error {
	attrs := &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{}}
	if len(listing.Attributes) > 0 {
		attrs = &types.AttributeValueMemberM{Value: mapper.AttributesToItem(listing.Attributes)}
	}

	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.tableName),
		Key:              compositeKey(listing.ListingID, listing.UserID),
		UpdateExpression: aws.String("SET #name = :name, #attributes = :attributes, completed = :completed REMOVE prediction"),
		ExpressionAttributeNames: map[string]string{
			"#name":       models.FieldName,
			"#attributes": models.FieldAttrs,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":name":       &types.AttributeValueMemberS{Value: listing.Name},
			":attributes": attrs,
			":completed":  &types.AttributeValueMemberBOOL{Value: listing.Completed},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update listing %s: %w", listing.ListingID, err)
	}

	logrus.WithFields(logrus.Fields{
		"listing_id": listing.ListingID,
		"user_id":    listing.UserID,
	}).Info("Updated listing")
	return nil
}

func (r *dynamoDBListingRepository) Delete(ctx context.Context, listingID, userID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       compositeKey(listingID, userID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete listing %s: %w", listingID, err)
	}

	logrus.WithFields(logrus.Fields{
		"listing_id": listingID,
		"user_id":    userID,
	}).Info("Deleted listing")
	return nil
}
