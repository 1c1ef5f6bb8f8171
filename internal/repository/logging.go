package repository

import (
	"context"

	"github.com/sirupsen/logrus"

	"dynamic-pricing-api/internal/models"
)

// loggingListingRepository decorates a ListingRepository so every store failure
// is logged with the failing method before it propagates. Failures are never
// swallowed here; status mapping stays with the error-normalization layer.
type loggingListingRepository struct {
	next ListingRepository
}

// WithErrorLogging wraps a repository with store-error logging.
func WithErrorLogging(next ListingRepository) ListingRepository {
	return &loggingListingRepository{next: next}
}

func (r *loggingListingRepository) logFailure(method string, err error) {
	logrus.WithError(err).WithField("method", method).Error("Listing store operation failed")
}

func (r *loggingListingRepository) Save(ctx context.Context, listing *models.Listing) error {
	if err := r.next.Save(ctx, listing); err != nil {
		r.logFailure("Save", err)
		return err
	}
	return nil
}

func (r *loggingListingRepository) FindByID(ctx context.Context, listingID, userID string) (*models.Listing, error) {
	listing, err := r.next.FindByID(ctx, listingID, userID)
	if err != nil {
		r.logFailure("FindByID", err)
		return nil, err
	}
	return listing, nil
}

func (r *loggingListingRepository) FindByUserID(ctx context.Context, userID string) ([]*models.Listing, error) {
	listings, err := r.next.FindByUserID(ctx, userID)
	if err != nil {
		r.logFailure("FindByUserID", err)
		return nil, err
	}
	return listings, nil
}

func (r *loggingListingRepository) Update(ctx context.Context, listing *models.Listing) error {
	if err := r.next.Update(ctx, listing); err != nil {
		r.logFailure("Update", err)
		return err
	}
	return nil
}

func (r *loggingListingRepository) Delete(ctx context.Context, listingID, userID string) error {
	if err := r.next.Delete(ctx, listingID, userID); err != nil {
		r.logFailure("Delete", err)
		return err
	}
	return nil
}
