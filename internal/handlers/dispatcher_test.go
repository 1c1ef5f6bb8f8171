package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"dynamic-pricing-api/internal/models"
	"dynamic-pricing-api/internal/queue"
	"dynamic-pricing-api/internal/service"
)

const testOrigin = "https://frontend.example.com"

// memoryRepo is an in-memory ListingRepository for pipeline tests.
type memoryRepo struct {
	items map[string]*models.Listing
}

func (r *memoryRepo) key(listingID, userID string) string {
	return listingID + "/" + userID
}

func (r *memoryRepo) Save(ctx context.Context, listing *models.Listing) error {
	copied := *listing
	r.items[r.key(listing.ListingID, listing.UserID)] = &copied
	return nil
}

func (r *memoryRepo) FindByID(ctx context.Context, listingID, userID string) (*models.Listing, error) {
	listing, ok := r.items[r.key(listingID, userID)]
	if !ok {
		return nil, nil
	}
	copied := *listing
	return &copied, nil
}

func (r *memoryRepo) FindByUserID(ctx context.Context, userID string) ([]*models.Listing, error) {
	var out []*models.Listing
	for _, listing := range r.items {
		if listing.UserID == userID {
			copied := *listing
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memoryRepo) Update(ctx context.Context, listing *models.Listing) error {
	return r.Save(ctx, listing)
}

func (r *memoryRepo) Delete(ctx context.Context, listingID, userID string) error {
	delete(r.items, r.key(listingID, userID))
	return nil
}

type memoryProducer struct {
	messages []queue.ListingMessage
}

func (p *memoryProducer) SendListing(ctx context.Context, message queue.ListingMessage) error {
	p.messages = append(p.messages, message)
	return nil
}

func newTestDispatcher() (*Dispatcher, *memoryRepo, *memoryProducer) {
	repo := &memoryRepo{items: map[string]*models.Listing{}}
	producer := &memoryProducer{}
	svc := service.NewListingService(repo, producer)
	return NewDispatcher(NewListingHandler(svc), testOrigin), repo, producer
}

func request(method, path, body, email string, pathParams map[string]string) events.APIGatewayProxyRequest {
	event := events.APIGatewayProxyRequest{
		HTTPMethod:     method,
		Path:           path,
		Body:           body,
		PathParameters: pathParams,
	}
	if email != "" {
		event.RequestContext.Authorizer = map[string]interface{}{
			"claims": map[string]interface{}{"email": email},
		}
	}
	return event
}

func checkCORS(t *testing.T, resp events.APIGatewayProxyResponse) {
	t.Helper()
	if resp.Headers["Access-Control-Allow-Origin"] != testOrigin {
		t.Errorf("Access-Control-Allow-Origin = %q", resp.Headers["Access-Control-Allow-Origin"])
	}
	if resp.Headers["Access-Control-Allow-Methods"] != "GET, POST, PUT, DELETE, OPTIONS" {
		t.Errorf("Access-Control-Allow-Methods = %q", resp.Headers["Access-Control-Allow-Methods"])
	}
	if resp.Headers["Access-Control-Allow-Headers"] != "Content-Type, Authorization" {
		t.Errorf("Access-Control-Allow-Headers = %q", resp.Headers["Access-Control-Allow-Headers"])
	}
}

func TestCreateThenRetrieve(t *testing.T) {
	dispatcher, _, _ := newTestDispatcher()
	ctx := context.Background()

	resp, err := dispatcher.Handle(ctx, request(http.MethodPost, "/listings",
		`{"name":"Loft","attributes":{"color":"blue"}}`, "a@x.com", nil))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %q)", resp.StatusCode, resp.Body)
	}
	location := resp.Headers["Location"]
	if !strings.HasPrefix(location, "/listings/") {
		t.Fatalf("Location = %q", location)
	}
	if resp.Body != "" {
		t.Errorf("create body = %q, want empty", resp.Body)
	}
	checkCORS(t, resp)

	listingID := strings.TrimPrefix(location, "/listings/")
	resp, err = dispatcher.Handle(ctx, request(http.MethodGet, location, "", "a@x.com",
		map[string]string{"listingId": listingID}))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %q)", resp.StatusCode, resp.Body)
	}
	checkCORS(t, resp)

	var wrapper struct {
		Listing models.Listing `json:"listing"`
	}
	if err := json.Unmarshal([]byte(resp.Body), &wrapper); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if wrapper.Listing.Name != "Loft" {
		t.Errorf("name = %q", wrapper.Listing.Name)
	}
	if wrapper.Listing.Attributes["color"].Str != "blue" {
		t.Errorf("attributes = %+v", wrapper.Listing.Attributes)
	}
}

func TestRetrieveAsDifferentUser(t *testing.T) {
	dispatcher, _, _ := newTestDispatcher()
	ctx := context.Background()

	resp, _ := dispatcher.Handle(ctx, request(http.MethodPost, "/listings",
		`{"name":"Loft"}`, "a@x.com", nil))
	listingID := strings.TrimPrefix(resp.Headers["Location"], "/listings/")

	resp, err := dispatcher.Handle(ctx, request(http.MethodGet, "/listings/"+listingID, "", "b@x.com",
		map[string]string{"listingId": listingID}))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if !strings.Contains(resp.Body, "not found") {
		t.Errorf("body = %q, want a not-found-indicating message", resp.Body)
	}
	checkCORS(t, resp)
}

func TestDeleteThenRetrieve(t *testing.T) {
	dispatcher, _, _ := newTestDispatcher()
	ctx := context.Background()

	resp, _ := dispatcher.Handle(ctx, request(http.MethodPost, "/listings",
		`{"name":"Loft"}`, "a@x.com", nil))
	listingID := strings.TrimPrefix(resp.Headers["Location"], "/listings/")
	params := map[string]string{"listingId": listingID}

	resp, err := dispatcher.Handle(ctx, request(http.MethodDelete, "/listings/"+listingID, "", "a@x.com", params))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", resp.StatusCode)
	}

	resp, err = dispatcher.Handle(ctx, request(http.MethodGet, "/listings/"+listingID, "", "a@x.com", params))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("retrieve status = %d, want 400", resp.StatusCode)
	}
	if !strings.Contains(resp.Body, "not found") {
		t.Errorf("body = %q, want a not-found-indicating message", resp.Body)
	}
}

func TestCreateWithoutName(t *testing.T) {
	dispatcher, _, _ := newTestDispatcher()

	resp, err := dispatcher.Handle(context.Background(), request(http.MethodPost, "/listings",
		`{"attributes":{"color":"blue"}}`, "a@x.com", nil))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	checkCORS(t, resp)
}

func TestUpdateListingPipeline(t *testing.T) {
	dispatcher, repo, producer := newTestDispatcher()
	ctx := context.Background()

	resp, _ := dispatcher.Handle(ctx, request(http.MethodPost, "/listings",
		`{"name":"Loft","attributes":{"color":"red"}}`, "a@x.com", nil))
	listingID := strings.TrimPrefix(resp.Headers["Location"], "/listings/")

	resp, err := dispatcher.Handle(ctx, request(http.MethodPut, "/listings/"+listingID,
		`{"attributes":{"size":"M"}}`, "a@x.com", map[string]string{"listingId": listingID}))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204 (body %q)", resp.StatusCode, resp.Body)
	}
	if resp.Body != "" {
		t.Errorf("update body = %q, want empty", resp.Body)
	}

	stored := repo.items[repo.key(listingID, "a@x.com")]
	if _, ok := stored.Attributes["color"]; ok {
		t.Error("attributes must be replaced wholesale")
	}
	if stored.Attributes["size"].Str != "M" {
		t.Errorf("attributes = %+v", stored.Attributes)
	}
	if len(producer.messages) != 2 {
		t.Errorf("messages = %d, want create + update", len(producer.messages))
	}
}

func TestMalformedPayload(t *testing.T) {
	dispatcher, _, _ := newTestDispatcher()

	resp, err := dispatcher.Handle(context.Background(), request(http.MethodPost, "/listings",
		`{"name":`, "a@x.com", nil))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if resp.Body != "Invalid request payload" {
		t.Errorf("body = %q", resp.Body)
	}
	checkCORS(t, resp)
}

func TestMissingClaims(t *testing.T) {
	dispatcher, _, _ := newTestDispatcher()

	// No dedicated mapping for a missing identity: it surfaces through the
	// generic branch as a 500.
	resp, err := dispatcher.Handle(context.Background(), request(http.MethodGet, "/listings", "", "", nil))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	if resp.Body != "Error processing request" {
		t.Errorf("body = %q", resp.Body)
	}
	checkCORS(t, resp)
}

func TestUnsupportedMethod(t *testing.T) {
	dispatcher, _, _ := newTestDispatcher()

	resp, err := dispatcher.Handle(context.Background(), request(http.MethodPatch, "/listings", "", "a@x.com", nil))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if resp.Body != "Unsupported HTTP method" {
		t.Errorf("body = %q", resp.Body)
	}
	checkCORS(t, resp)
}

func TestListListings(t *testing.T) {
	dispatcher, _, _ := newTestDispatcher()
	ctx := context.Background()

	// Empty list for a user with no listings.
	resp, err := dispatcher.Handle(ctx, request(http.MethodGet, "/listings", "", "a@x.com", nil))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Body != `{"listings":[]}` {
		t.Errorf("body = %q", resp.Body)
	}

	if _, err := dispatcher.Handle(ctx, request(http.MethodPost, "/listings", `{"name":"One"}`, "a@x.com", nil)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := dispatcher.Handle(ctx, request(http.MethodPost, "/listings", `{"name":"Other"}`, "b@x.com", nil)); err != nil {
		t.Fatalf("create: %v", err)
	}

	resp, err = dispatcher.Handle(ctx, request(http.MethodGet, "/listings", "", "a@x.com", nil))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	var wrapper struct {
		Listings []models.Listing `json:"listings"`
	}
	if err := json.Unmarshal([]byte(resp.Body), &wrapper); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(wrapper.Listings) != 1 || wrapper.Listings[0].Name != "One" {
		t.Errorf("listings = %+v", wrapper.Listings)
	}
}
