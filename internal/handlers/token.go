package handlers

import (
	"github.com/aws/aws-lambda-go/events"

	"dynamic-pricing-api/internal/apperr"
)

// ExtractUserID derives the caller's user identifier from the claims the
// upstream gateway authorizer attached to the request context. The identifier
// claim is the caller's verified email address. A missing claims structure or
// claim fails with UnauthenticatedError; it never defaults to a placeholder
// identity, since that would cross-contaminate listings between users.
func ExtractUserID(event events.APIGatewayProxyRequest) (string, error) {
	claims, ok := event.RequestContext.Authorizer["claims"].(map[string]interface{})
	if !ok {
		return "", &apperr.UnauthenticatedError{Message: "token claims missing from request context"}
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", &apperr.UnauthenticatedError{Message: "email claim missing from token claims"}
	}

	return email, nil
}
