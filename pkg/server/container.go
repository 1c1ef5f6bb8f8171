// Package server wires the process-wide dependencies: configuration, AWS
// client handles, repository, queue producer, service and dispatcher. The
// container is built once per process and reused across invocations.
package server

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/sirupsen/logrus"

	"dynamic-pricing-api/internal/config"
	"dynamic-pricing-api/internal/handlers"
	"dynamic-pricing-api/internal/queue"
	"dynamic-pricing-api/internal/repository"
	"dynamic-pricing-api/internal/service"
)

// Container holds all application dependencies.
type Container struct {
	Config         *config.Config
	ListingService service.ListingService
	Dispatcher     *handlers.Dispatcher
}

// NewContainer constructs the long-lived client handles and wires the service
// graph. Clients are opened once here and shared by every invocation.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	dynamoClient := dynamodb.NewFromConfig(awsCfg)
	sqsClient := sqs.NewFromConfig(awsCfg)

	repo := repository.WithErrorLogging(repository.NewDynamoDBListingRepository(
		dynamoClient,
		cfg.Listing.TableName,
		cfg.Listing.UserListingsIndex,
	))
	producer := queue.NewSQSProducer(sqsClient, cfg.Listing.PredictionQueueURL)

	listingService := service.NewListingService(repo, producer)
	dispatcher := handlers.NewDispatcher(handlers.NewListingHandler(listingService), cfg.CORS.AllowedOrigin)

	return &Container{
		Config:         cfg,
		ListingService: listingService,
		Dispatcher:     dispatcher,
	}, nil
}

// Close releases process-wide resources on teardown. The AWS SDK clients hold
// no closable handles, so this only flushes state and logs.
func (c *Container) Close() error {
	logrus.Info("Container closed")
	return nil
}
