package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Fixed listing fields. Attribute-bag keys never shadow these: the catch-all
// unmarshal routes them into the struct, not into Attributes.
const (
	FieldListingID  = "listingId"
	FieldUserID     = "userId"
	FieldName       = "name"
	FieldCreatedAt  = "createdAt"
	FieldCompleted  = "completed"
	FieldAttrs      = "attributes"
	FieldPrediction = "prediction"
)

// Listing represents an item with dynamically priced attributes awaiting an
// AI-driven price prediction. (ListingID, UserID) is the composite primary key;
// all lookups are scoped by both halves.
type Listing struct {
	ListingID string    `json:"listingId" validate:"required"`
	UserID    string    `json:"userId" validate:"required"`
	Name      string    `json:"name" validate:"required"`
	CreatedAt time.Time `json:"createdAt"`
	// Completed flips to true once the asynchronous prediction has been
	// attached, and is reset to false whenever name or attributes change.
	Completed  bool         `json:"completed"`
	Attributes AttributeMap `json:"attributes"`
	Prediction AttributeMap `json:"prediction,omitempty"`
}

// NewListing builds a listing for the given owner with a generated identifier
// and the creation timestamp stamped once.
func NewListing(userID, name string) *Listing {
	return &Listing{
		ListingID:  uuid.New().String(),
		UserID:     userID,
		Name:       name,
		CreatedAt:  time.Now().UTC(),
		Attributes: AttributeMap{},
		Prediction: AttributeMap{},
	}
}

// listingWire mirrors Listing for plain struct-tag marshalling.
type listingWire struct {
	ListingID  string       `json:"listingId"`
	UserID     string       `json:"userId"`
	Name       string       `json:"name"`
	CreatedAt  time.Time    `json:"createdAt"`
	Completed  bool         `json:"completed"`
	Attributes AttributeMap `json:"attributes"`
	Prediction AttributeMap `json:"prediction,omitempty"`
}

// MarshalJSON serializes the listing with its fixed fields by name and the
// attribute bag nested under "attributes". An empty prediction is omitted.
func (l Listing) MarshalJSON() ([]byte, error) {
	w := listingWire{
		ListingID:  l.ListingID,
		UserID:     l.UserID,
		Name:       l.Name,
		CreatedAt:  l.CreatedAt,
		Completed:  l.Completed,
		Attributes: l.Attributes,
		Prediction: l.Prediction,
	}
	if w.Attributes == nil {
		w.Attributes = AttributeMap{}
	}
	if len(w.Prediction) == 0 {
		w.Prediction = nil
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes a listing, routing every key that is not a fixed field
// into the attribute bag. Clients may therefore send extra top-level fields and
// have them land as attributes, matching the open-schema contract.
func (l *Listing) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := Listing{Attributes: AttributeMap{}, Prediction: AttributeMap{}}
	for key, val := range raw {
		switch key {
		case FieldListingID:
			if err := json.Unmarshal(val, &out.ListingID); err != nil {
				return err
			}
		case FieldUserID:
			if err := json.Unmarshal(val, &out.UserID); err != nil {
				return err
			}
		case FieldName:
			if err := json.Unmarshal(val, &out.Name); err != nil {
				return err
			}
		case FieldCreatedAt:
			if err := json.Unmarshal(val, &out.CreatedAt); err != nil {
				return err
			}
		case FieldCompleted:
			if err := json.Unmarshal(val, &out.Completed); err != nil {
				return err
			}
		case FieldAttrs:
			if err := json.Unmarshal(val, &out.Attributes); err != nil {
				return err
			}
		case FieldPrediction:
			if err := json.Unmarshal(val, &out.Prediction); err != nil {
				return err
			}
		default:
			var v AttrValue
			if err := json.Unmarshal(val, &v); err != nil {
				return err
			}
			out.Attributes[key] = v
		}
	}

	*l = out
	return nil
}
