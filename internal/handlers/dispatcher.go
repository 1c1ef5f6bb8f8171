package handlers

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
)

// Dispatcher routes inbound gateway events to the operation handlers by HTTP
// method: POST creates, PUT updates, DELETE deletes, and GET retrieves when
// the path carries a listingId, otherwise lists. Every handler invocation runs
// inside the error-normalization middleware; the unsupported-method rejection
// is a routing decision and bypasses it.
type Dispatcher struct {
	create   HandlerFunc
	update   HandlerFunc
	retrieve HandlerFunc
	list     HandlerFunc
	delete   HandlerFunc

	allowedOrigin string
}

// NewDispatcher wires the operation handlers, wrapping each with error
// normalization, and records the CORS origin to attach to every response.
func NewDispatcher(h *ListingHandler, allowedOrigin string) *Dispatcher {
	return &Dispatcher{
		create:        withErrorHandling("CreateListing", h.HandleCreate),
		update:        withErrorHandling("UpdateListing", h.HandleUpdate),
		retrieve:      withErrorHandling("RetrieveListing", h.HandleRetrieve),
		list:          withErrorHandling("ListListings", h.HandleList),
		delete:        withErrorHandling("DeleteListing", h.HandleDelete),
		allowedOrigin: allowedOrigin,
	}
}

// Handle processes one gateway event and always returns a response with the
// CORS headers attached, including on error responses.
func (d *Dispatcher) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logrus.WithFields(logrus.Fields{
		"method": event.HTTPMethod,
		"path":   event.Path,
	}).Info("Received request")

	var resp events.APIGatewayProxyResponse
	var err error

	switch event.HTTPMethod {
	case http.MethodPost:
		resp, err = d.create(ctx, event)
	case http.MethodPut:
		resp, err = d.update(ctx, event)
	case http.MethodDelete:
		resp, err = d.delete(ctx, event)
	case http.MethodGet:
		if event.PathParameters[pathParamListingID] != "" {
			resp, err = d.retrieve(ctx, event)
		} else {
			resp, err = d.list(ctx, event)
		}
	default:
		logrus.WithField("method", event.HTTPMethod).Warn("Unsupported HTTP method")
		resp = events.APIGatewayProxyResponse{
			StatusCode: http.StatusBadRequest,
			Body:       "Unsupported HTTP method",
		}
	}
	if err != nil {
		// Normalized handlers never return an error; keep the contract anyway.
		return events.APIGatewayProxyResponse{}, err
	}

	d.attachCORS(&resp)
	return resp, nil
}

// attachCORS adds the fixed CORS headers to a response.
func (d *Dispatcher) attachCORS(resp *events.APIGatewayProxyResponse) {
	if resp.Headers == nil {
		resp.Headers = map[string]string{}
	}
	resp.Headers["Access-Control-Allow-Origin"] = d.allowedOrigin
	resp.Headers["Access-Control-Allow-Methods"] = "GET, POST, PUT, DELETE, OPTIONS"
	resp.Headers["Access-Control-Allow-Headers"] = "Content-Type, Authorization"
}
