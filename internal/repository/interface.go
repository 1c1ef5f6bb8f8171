// Package repository persists listings in DynamoDB under the composite
// (listingId, userId) primary key.
package repository

import (
	"context"

	"dynamic-pricing-api/internal/models"
)

// ListingRepository defines the persistence operations for listings. Lookups
// are always scoped by the full composite key so that a listing owned by one
// user is never visible through another user's key.
type ListingRepository interface {
	// Save persists the listing, overwriting any existing item with the same
	// composite key (last write wins; no conditional check).
	Save(ctx context.Context, listing *models.Listing) error

	// FindByID returns the listing for the composite key, or (nil, nil) when
	// no such item exists.
	FindByID(ctx context.Context, listingID, userID string) (*models.Listing, error)

	// FindByUserID returns all listings owned by the user via the secondary
	// index. The result order is store-dependent and the index may be
	// eventually consistent.
	FindByUserID(ctx context.Context, userID string) ([]*models.Listing, error)

	// Update rewrites the mutable fields (name, attributes, completed,
	// prediction) of an existing item in place.
	Update(ctx context.Context, listing *models.Listing) error

	// Delete removes the item for the composite key.
	Delete(ctx context.Context, listingID, userID string) error
}
