// Package service holds the business logic for listing operations.
package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"dynamic-pricing-api/internal/apperr"
	"dynamic-pricing-api/internal/models"
	"dynamic-pricing-api/internal/queue"
	"dynamic-pricing-api/internal/repository"
)

// ListingService exposes the listing operations. Every method takes a
// caller-validated userId; lookups are always scoped by the composite
// (listingId, userId) key so a caller can never observe another user's
// listings, not even their existence.
type ListingService interface {
	Create(ctx context.Context, req *CreateListingRequest, userID string) (string, error)
	Retrieve(ctx context.Context, listingID, userID string) (*models.Listing, error)
	List(ctx context.Context, userID string) ([]*models.Listing, error)
	Update(ctx context.Context, listingID string, req *UpdateListingRequest, userID string) error
	Delete(ctx context.Context, listingID, userID string) error
}

// listingService implements ListingService.
type listingService struct {
	repo      repository.ListingRepository
	producer  queue.Producer
	validator *validator.Validate
}

// NewListingService creates a new listing service instance.
func NewListingService(repo repository.ListingRepository, producer queue.Producer) ListingService {
	return &listingService{
		repo:      repo,
		producer:  producer,
		validator: validator.New(),
	}
}

// Create validates the request, persists a fresh listing and enqueues the
// prediction message. The enqueue happens only after the store write succeeds,
// so a queue message is never sent for data that failed to persist. There is
// no compensating action if the enqueue itself fails.
func (s *listingService) Create(ctx context.Context, req *CreateListingRequest, userID string) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", apperr.NewValidationError("Validation error: Listing name is required")
	}

	listing := models.NewListing(userID, req.Name)
	listing.Attributes = req.Attributes.Copy()

	if err := s.repo.Save(ctx, listing); err != nil {
		return "", err
	}

	if err := s.producer.SendListing(ctx, queue.NewListingMessage(listing)); err != nil {
		return "", err
	}

	logrus.WithFields(logrus.Fields{
		"listing_id": listing.ListingID,
		"user_id":    userID,
	}).Info("Created listing")
	return listing.ListingID, nil
}

// Retrieve returns the listing for the composite key.
func (s *listingService) Retrieve(ctx context.Context, listingID, userID string) (*models.Listing, error) {
	listing, err := s.repo.FindByID(ctx, listingID, userID)
	if err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, notFound(listingID, userID)
	}
	return listing, nil
}

// List returns all listings for the owner. The secondary index backing the
// query may be eventually consistent, so a just-created listing is not
// guaranteed to appear.
func (s *listingService) List(ctx context.Context, userID string) ([]*models.Listing, error) {
	return s.repo.FindByUserID(ctx, userID)
}

// Update applies the client-supplied fields to an existing listing. A present
// attributes map wholesale replaces the stored set. The completed flag and the
// prediction are unconditionally reset, signalling downstream that any derived
// state is stale, and the prediction message is re-enqueued after the write.
func (s *listingService) Update(ctx context.Context, listingID string, req *UpdateListingRequest, userID string) error {
	existing, err := s.repo.FindByID(ctx, listingID, userID)
	if err != nil {
		return err
	}
	if existing == nil {
		return notFound(listingID, userID)
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Attributes != nil {
		existing.Attributes = req.Attributes.Copy()
	}

	existing.Completed = false
	existing.Prediction = models.AttributeMap{}

	if err := s.repo.Update(ctx, existing); err != nil {
		return err
	}

	if err := s.producer.SendListing(ctx, queue.NewListingMessage(existing)); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"listing_id": listingID,
		"user_id":    userID,
	}).Info("Updated listing")
	return nil
}

// Delete removes the listing for the composite key.
func (s *listingService) Delete(ctx context.Context, listingID, userID string) error {
	existing, err := s.repo.FindByID(ctx, listingID, userID)
	if err != nil {
		return err
	}
	if existing == nil {
		return notFound(listingID, userID)
	}
	return s.repo.Delete(ctx, listingID, userID)
}

// notFound raises the missing-listing condition as a validation-class failure;
// it is not a distinct not-found status on the wire.
func notFound(listingID, userID string) error {
	return apperr.NewValidationError("Listing not found for listingId %s and userId %s", listingID, userID)
}
