package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"dynamic-pricing-api/internal/models"
)

type fakeSQS struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQS) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{}, nil
}

func TestNewListingMessage(t *testing.T) {
	listing := &models.Listing{
		ListingID: "l-1",
		UserID:    "a@x.com",
		Attributes: models.AttributeMap{
			"color": models.StringValue("blue"),
			"rooms": models.StringValue("3"),
		},
	}

	msg := NewListingMessage(listing)
	if msg.ListingID != "l-1" || msg.UserID != "a@x.com" {
		t.Errorf("composite key = %s/%s", msg.ListingID, msg.UserID)
	}
	if msg.ListingDetails["color"] != "blue" || msg.ListingDetails["rooms"] != "3" {
		t.Errorf("listing_details = %v", msg.ListingDetails)
	}
}

func TestSendListing(t *testing.T) {
	client := &fakeSQS{}
	producer := NewSQSProducer(client, "https://sqs.example/queue")

	msg := ListingMessage{
		ListingID:      "l-1",
		UserID:         "a@x.com",
		ListingDetails: map[string]string{"color": "blue"},
	}
	if err := producer.SendListing(context.Background(), msg); err != nil {
		t.Fatalf("send: %v", err)
	}

	if client.input == nil {
		t.Fatal("no message sent")
	}
	if *client.input.QueueUrl != "https://sqs.example/queue" {
		t.Errorf("queue URL = %q", *client.input.QueueUrl)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal([]byte(*client.input.MessageBody), &decoded); err != nil {
		t.Fatalf("message body is not JSON: %v", err)
	}
	for _, key := range []string{"listingId", "userId", "listing_details"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("message body missing %q: %s", key, *client.input.MessageBody)
		}
	}
}

func TestSendListingFailure(t *testing.T) {
	client := &fakeSQS{err: errors.New("queue unavailable")}
	producer := NewSQSProducer(client, "https://sqs.example/queue")

	err := producer.SendListing(context.Background(), ListingMessage{ListingID: "l-1"})
	if err == nil {
		t.Fatal("expected error")
	}
}
