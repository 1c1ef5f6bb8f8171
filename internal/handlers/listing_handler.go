// Package handlers adapts API Gateway events to the listing service: routing,
// identity extraction, payload mapping and error normalization.
package handlers

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"

	"dynamic-pricing-api/internal/mapper"
	"dynamic-pricing-api/internal/models"
	"dynamic-pricing-api/internal/service"
)

// pathParamListingID is the gateway path parameter carrying the listing id.
const pathParamListingID = "listingId"

// GetListingResponse wraps a single listing for the retrieve response body.
type GetListingResponse struct {
	Listing *models.Listing `json:"listing"`
}

// ListListingsResponse wraps the owner's listings for the list response body.
type ListListingsResponse struct {
	Listings []*models.Listing `json:"listings"`
}

// ListingHandler holds the per-verb operation handlers. Each handler is a pure
// adapter: decode input, extract identity, call the service, encode output.
// Failures bubble up unconverted to the error-normalization middleware.
type ListingHandler struct {
	service service.ListingService
}

// NewListingHandler creates a new listing handler.
func NewListingHandler(svc service.ListingService) *ListingHandler {
	return &ListingHandler{service: svc}
}

// HandleCreate creates a listing and returns 201 with a Location header
// pointing at the new resource.
func (h *ListingHandler) HandleCreate(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logrus.WithField("body_length", len(event.Body)).Debug("Handling create listing")

	var req service.CreateListingRequest
	if err := mapper.DecodeJSON(event.Body, &req); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	userID, err := ExtractUserID(event)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	listingID, err := h.service.Create(ctx, &req, userID)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusCreated,
		Headers:    map[string]string{"Location": "/listings/" + listingID},
	}, nil
}

// HandleRetrieve returns 200 with the listing for the path's listingId.
func (h *ListingHandler) HandleRetrieve(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	userID, err := ExtractUserID(event)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	listing, err := h.service.Retrieve(ctx, event.PathParameters[pathParamListingID], userID)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	body, err := mapper.EncodeJSON(GetListingResponse{Listing: listing})
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       body,
	}, nil
}

// HandleList returns 200 with all listings owned by the caller.
func (h *ListingHandler) HandleList(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	userID, err := ExtractUserID(event)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	listings, err := h.service.List(ctx, userID)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if listings == nil {
		listings = []*models.Listing{}
	}

	body, err := mapper.EncodeJSON(ListListingsResponse{Listings: listings})
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       body,
	}, nil
}

// HandleUpdate applies a partial update and returns 204.
func (h *ListingHandler) HandleUpdate(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var req service.UpdateListingRequest
	if err := mapper.DecodeJSON(event.Body, &req); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	userID, err := ExtractUserID(event)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	if err := h.service.Update(ctx, event.PathParameters[pathParamListingID], &req, userID); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	return events.APIGatewayProxyResponse{StatusCode: http.StatusNoContent}, nil
}

// HandleDelete removes the listing and returns 204.
func (h *ListingHandler) HandleDelete(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	userID, err := ExtractUserID(event)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	if err := h.service.Delete(ctx, event.PathParameters[pathParamListingID], userID); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	return events.APIGatewayProxyResponse{StatusCode: http.StatusNoContent}, nil
}
