package queue

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/sirupsen/logrus"

	"dynamic-pricing-api/internal/mapper"
)

// SQSAPI is the subset of the SQS client used by the producer.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// sqsProducer implements Producer on SQS.
type sqsProducer struct {
	client   SQSAPI
	queueURL string
}

// NewSQSProducer creates a producer bound to the prediction queue URL.
func NewSQSProducer(client SQSAPI, queueURL string) Producer {
	return &sqsProducer{client: client, queueURL: queueURL}
}

// SendListing serializes the message to JSON and sends it to the queue. It is
// called only after the corresponding store write has succeeded; a failure
// here propagates to the caller even though the data is already durable.
func (p *sqsProducer) SendListing(ctx context.Context, message ListingMessage) error {
	body, err := mapper.EncodeJSON(message)
	if err != nil {
		return fmt.Errorf("failed to serialize listing message: %w", err)
	}

	_, err = p.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.queueURL),
		MessageBody: aws.String(body),
	})
	if err != nil {
		return fmt.Errorf("failed to send listing message: %w", err)
	}

	logrus.WithField("listing_id", message.ListingID).Info("Sent prediction queue message")
	return nil
}
