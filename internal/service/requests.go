package service

import "dynamic-pricing-api/internal/models"

// CreateListingRequest is the client payload for creating a listing.
type CreateListingRequest struct {
	Name       string              `json:"name" validate:"required"`
	Attributes models.AttributeMap `json:"attributes"`
}

// UpdateListingRequest is the client payload for updating a listing. Both
// fields are optional; an attributes map, when present, wholesale replaces the
// existing attribute set (partial patches are not supported).
type UpdateListingRequest struct {
	Name       *string             `json:"name"`
	Attributes models.AttributeMap `json:"attributes"`
}
