// Package mapper converts between the wire JSON representation, the domain
// model and the DynamoDB item format.
package mapper

import (
	"encoding/json"
	"fmt"

	"dynamic-pricing-api/internal/apperr"
)

// DecodeJSON unmarshals a request body into the target shape. Unknown fields
// are silently discarded so clients may send extra fields without breaking the
// server. Every decode failure surfaces as a MalformedPayloadError, never a
// raw parser error, so the error-normalization layer can map it uniformly.
func DecodeJSON(body string, target interface{}) error {
	if err := json.Unmarshal([]byte(body), target); err != nil {
		return &apperr.MalformedPayloadError{Err: err}
	}
	return nil
}

// EncodeJSON marshals a response payload to its JSON text.
func EncodeJSON(value interface{}) (string, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("failed to encode response payload: %w", err)
	}
	return string(b), nil
}
