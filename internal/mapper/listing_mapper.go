package mapper

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"dynamic-pricing-api/internal/apperr"
	"dynamic-pricing-api/internal/models"
)

// createdAtFormat is the fixed timestamp text format for the persisted
// createdAt field. RFC 3339 with nanoseconds round-trips exactly.
const createdAtFormat = time.RFC3339Nano

// ListingToItem converts a Listing into a DynamoDB item map. Fixed fields are
// written at the item's top level; the attribute bag is nested under
// "attributes" and the prediction, when present, under "prediction". The
// projection is string-typed: numeric or boolean attribute values come back
// from the store as strings.
func ListingToItem(listing *models.Listing) map[string]types.AttributeValue {
	item := map[string]types.AttributeValue{
		models.FieldListingID: &types.AttributeValueMemberS{Value: listing.ListingID},
		models.FieldUserID:    &types.AttributeValueMemberS{Value: listing.UserID},
		models.FieldName:      &types.AttributeValueMemberS{Value: listing.Name},
		models.FieldCreatedAt: &types.AttributeValueMemberS{Value: listing.CreatedAt.UTC().Format(createdAtFormat)},
		models.FieldCompleted: &types.AttributeValueMemberBOOL{Value: listing.Completed},
	}

	if len(listing.Attributes) > 0 {
		item[models.FieldAttrs] = &types.AttributeValueMemberM{Value: AttributesToItem(listing.Attributes)}
	}
	if len(listing.Prediction) > 0 {
		item[models.FieldPrediction] = &types.AttributeValueMemberM{Value: predictionToItem(listing.Prediction)}
	}

	return item
}

// AttributesToItem projects the attribute bag into a DynamoDB map: scalars
// become strings, sequences become lists of strings, and nested mappings are
// flattened to string-typed leaves.
func AttributesToItem(attrs models.AttributeMap) map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(attrs))
	for key, val := range attrs {
		switch val.Kind {
		case models.AttrStringList:
			members := make([]types.AttributeValue, 0, len(val.List))
			for _, elem := range val.List {
				members = append(members, &types.AttributeValueMemberS{Value: elem})
			}
			out[key] = &types.AttributeValueMemberL{Value: members}
		default:
			out[key] = &types.AttributeValueMemberS{Value: val.Text()}
		}
	}
	return out
}

// predictionToItem preserves one level of nested mapping; scalars at any level
// are stringified.
func predictionToItem(prediction models.AttributeMap) map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(prediction))
	for key, val := range prediction {
		switch val.Kind {
		case models.AttrMap:
			inner := make(map[string]types.AttributeValue, len(val.Map))
			for k, v := range val.Map {
				inner[k] = &types.AttributeValueMemberS{Value: v.Text()}
			}
			out[key] = &types.AttributeValueMemberM{Value: inner}
		default:
			out[key] = &types.AttributeValueMemberS{Value: val.Text()}
		}
	}
	return out
}

// ListingFromItem converts a DynamoDB item map back into a Listing. Absent
// "attributes" or "prediction" sub-structures are treated as empty; a missing
// fixed field fails with a CorruptRecordError since it indicates a
// persistence-layer invariant violation.
func ListingFromItem(item map[string]types.AttributeValue) (*models.Listing, error) {
	listingID, err := requireString(item, models.FieldListingID)
	if err != nil {
		return nil, err
	}
	userID, err := requireString(item, models.FieldUserID)
	if err != nil {
		return nil, err
	}
	name, err := requireString(item, models.FieldName)
	if err != nil {
		return nil, err
	}
	createdAtText, err := requireString(item, models.FieldCreatedAt)
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(createdAtFormat, createdAtText)
	if err != nil {
		return nil, &apperr.CorruptRecordError{Field: models.FieldCreatedAt}
	}
	completedAttr, ok := item[models.FieldCompleted].(*types.AttributeValueMemberBOOL)
	if !ok {
		return nil, &apperr.CorruptRecordError{Field: models.FieldCompleted}
	}

	listing := &models.Listing{
		ListingID:  listingID,
		UserID:     userID,
		Name:       name,
		CreatedAt:  createdAt,
		Completed:  completedAttr.Value,
		Attributes: models.AttributeMap{},
		Prediction: models.AttributeMap{},
	}

	if attrs, ok := item[models.FieldAttrs].(*types.AttributeValueMemberM); ok {
		listing.Attributes = attributesFromItem(attrs.Value)
	}
	if pred, ok := item[models.FieldPrediction].(*types.AttributeValueMemberM); ok {
		listing.Prediction = attributesFromItem(pred.Value)
	}

	return listing, nil
}

// attributesFromItem maps a nested DynamoDB map back onto the attribute union.
func attributesFromItem(m map[string]types.AttributeValue) models.AttributeMap {
	out := make(models.AttributeMap, len(m))
	for key, av := range m {
		switch v := av.(type) {
		case *types.AttributeValueMemberS:
			out[key] = models.StringValue(v.Value)
		case *types.AttributeValueMemberL:
			list := make([]string, 0, len(v.Value))
			for _, elem := range v.Value {
				if s, ok := elem.(*types.AttributeValueMemberS); ok {
					list = append(list, s.Value)
				}
			}
			out[key] = models.ListValue(list...)
		case *types.AttributeValueMemberM:
			out[key] = models.MapValue(attributesFromItem(v.Value))
		}
	}
	return out
}

// requireString extracts a top-level string field or fails with CorruptRecord.
func requireString(item map[string]types.AttributeValue, field string) (string, error) {
	attr, ok := item[field].(*types.AttributeValueMemberS)
	if !ok || attr.Value == "" {
		return "", &apperr.CorruptRecordError{Field: field}
	}
	return attr.Value, nil
}
