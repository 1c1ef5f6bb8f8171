// Package queue publishes prediction-notification messages for downstream
// asynchronous price inference.
package queue

import (
	"context"

	"dynamic-pricing-api/internal/models"
)

// ListingMessage is the payload sent to the prediction queue on create and
// update: the composite key plus the string-projected attribute details.
type ListingMessage struct {
	ListingID      string            `json:"listingId"`
	UserID         string            `json:"userId"`
	ListingDetails map[string]string `json:"listing_details"`
}

// NewListingMessage builds the queue payload for a listing.
func NewListingMessage(listing *models.Listing) ListingMessage {
	return ListingMessage{
		ListingID:      listing.ListingID,
		UserID:         listing.UserID,
		ListingDetails: listing.Attributes.ToStringMap(),
	}
}

// Producer sends listing messages to the prediction queue.
type Producer interface {
	SendListing(ctx context.Context, message ListingMessage) error
}
