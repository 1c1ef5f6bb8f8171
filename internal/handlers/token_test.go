package handlers

import (
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"dynamic-pricing-api/internal/apperr"
)

func TestExtractUserID(t *testing.T) {
	tests := []struct {
		name       string
		authorizer map[string]interface{}
		want       string
		wantErr    bool
	}{
		{
			name: "email claim present",
			authorizer: map[string]interface{}{
				"claims": map[string]interface{}{"email": "a@x.com"},
			},
			want: "a@x.com",
		},
		{
			name:       "authorizer missing",
			authorizer: nil,
			wantErr:    true,
		},
		{
			name:       "claims missing",
			authorizer: map[string]interface{}{},
			wantErr:    true,
		},
		{
			name: "email claim missing",
			authorizer: map[string]interface{}{
				"claims": map[string]interface{}{"sub": "123"},
			},
			wantErr: true,
		},
		{
			name: "email claim empty",
			authorizer: map[string]interface{}{
				"claims": map[string]interface{}{"email": ""},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := events.APIGatewayProxyRequest{
				RequestContext: events.APIGatewayProxyRequestContext{Authorizer: tt.authorizer},
			}

			got, err := ExtractUserID(event)
			if tt.wantErr {
				var unauthenticated *apperr.UnauthenticatedError
				if !errors.As(err, &unauthenticated) {
					t.Fatalf("err = %v, want UnauthenticatedError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("extract: %v", err)
			}
			if got != tt.want {
				t.Errorf("userId = %q, want %q", got, tt.want)
			}
		})
	}
}
