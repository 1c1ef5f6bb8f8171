package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"

	"dynamic-pricing-api/internal/apperr"
)

// HandlerFunc is the shape of one operation handler.
type HandlerFunc func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// withErrorHandling wraps a handler so every raised failure is converted into
// the stable status/body contract. Handlers never catch; this middleware is
// the only place failure status codes are decided:
//
//	MalformedPayload -> 400 "Invalid request payload"
//	Validation (including not-found) -> 400 with the failure message
//	anything else (including Unauthenticated and CorruptRecord) -> 500
//
// Each failure is logged with the operation name before conversion. No stack
// traces or internal identifiers reach the caller.
func withErrorHandling(operation string, next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		resp, err := next(ctx, event)
		if err == nil {
			return resp, nil
		}

		logrus.WithError(err).WithField("operation", operation).Error("Request failed")

		var malformed *apperr.MalformedPayloadError
		var validation *apperr.ValidationError
		switch {
		case errors.As(err, &malformed):
			return events.APIGatewayProxyResponse{
				StatusCode: http.StatusBadRequest,
				Body:       "Invalid request payload",
			}, nil
		case errors.As(err, &validation):
			return events.APIGatewayProxyResponse{
				StatusCode: http.StatusBadRequest,
				Body:       validation.Message,
			}, nil
		default:
			return events.APIGatewayProxyResponse{
				StatusCode: http.StatusInternalServerError,
				Body:       "Error processing request",
			}, nil
		}
	}
}
