package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hotelgenx/concierge/internal/db"
	"github.com/hotelgenx/concierge/internal/domain"
	"github.com/hotelgenx/concierge/internal/domain/constraint"
	"github.com/hotelgenx/concierge/internal/present"
	hotelsrepo "github.com/hotelgenx/concierge/internal/repository/hotels"
	chatuc "github.com/hotelgenx/concierge/internal/usecase/chat"
)

type stubRouter struct {
	intent domain.Intent
}

func (s *stubRouter) Route(string) domain.Intent { return s.intent }

type stubExtractor struct{}

func (s *stubExtractor) Extract(string) constraint.Set { return constraint.Set{} }

type stubEmbedder struct{}

func (s *stubEmbedder) Embed(context.Context, string) ([]float32, error) {
	return []float32{0.1, 0.2}, nil
}

func (s *stubEmbedder) Dimensions() int { return 2 }

type stubGateway struct {
	results []domain.Hotel
	err     error
	cons    constraint.Set
	topK    int
}

func (s *stubGateway) Search(
	_ context.Context, _ []float32, cons constraint.Set, topK int,
) ([]domain.Hotel, error) {
	s.cons = cons
	s.topK = topK
	return s.results, s.err
}

type stubCollab struct {
	answer string
}

func (s *stubCollab) Answer(context.Context, string) (string, error) { return s.answer, nil }

// fakeStore backs the catalog listing endpoint.
type fakeStore struct {
	listResult *db.SearchResult
	listErr    error
}

func (f *fakeStore) SearchKNN(context.Context, *db.KNNQuery) (*db.SearchResult, error) {
	return nil, errors.New("not used")
}

func (f *fakeStore) SearchList(_ context.Context, _, _ string, _, _ int, _ []string) (*db.SearchResult, error) {
	return f.listResult, f.listErr
}

func (f *fakeStore) SearchCount(context.Context, string, string) (int, error) { return 0, nil }

func (f *fakeStore) HSetMulti(context.Context, []db.HashSetItem) error { return nil }

func (f *fakeStore) CreateIndex(context.Context, *db.IndexDefinition) error { return nil }

func (f *fakeStore) IndexExists(context.Context, string) (bool, error) { return true, nil }

type fakeHealth struct {
	err error
}

func (f *fakeHealth) Ping(context.Context) error { return f.err }

type serverFixture struct {
	gateway *stubGateway
	store   *fakeStore
	health  *fakeHealth
	handler http.Handler
}

func newServerFixture(intent domain.Intent) *serverFixture {
	f := &serverFixture{
		gateway: &stubGateway{},
		store:   &fakeStore{},
		health:  &fakeHealth{},
	}

	chat := chatuc.New(
		&stubRouter{intent: intent},
		&stubExtractor{},
		&stubEmbedder{},
		f.gateway,
		present.New(),
		&stubCollab{answer: "research"},
		&stubCollab{answer: "small talk"},
		chatuc.Options{TopK: 5, EmbedTimeout: time.Second, SearchTimeout: time.Second},
		zap.NewNop(),
	)

	catalog := hotelsrepo.New(f.store, zap.NewNop())
	srv := NewServer(chat, catalog, f.health, StreamOptions{}, zap.NewNop())

	r := chirouter.NewRouter()
	srv.Routes(r)
	f.handler = r
	return f
}

func (f *serverFixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var e errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
		t.Fatalf("bad error body %q: %v", rec.Body.String(), err)
	}
	return e
}

func TestHandleChat_Stream(t *testing.T) {
	f := newServerFixture(domain.IntentHotelSearch)
	stars := 5
	f.gateway.results = []domain.Hotel{{ID: "h1", Name: "Rixos", Stars: &stars}}

	rec := f.do(t, http.MethodPost, "/api/chat", `{"message": "отель в Турции", "session_id": "s1"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, body %q", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content-type = %q", ct)
	}

	body := rec.Body.String()
	if !strings.Contains(body, `"type":"hotel_card"`) {
		t.Errorf("body has no hotel card: %q", body)
	}
	if !strings.HasSuffix(body, "event: done\ndata: {}\n\n") {
		t.Errorf("stream not terminated: %q", body)
	}

	cards := strings.Count(body, `"type":"hotel_card"`)
	if cards != 1 {
		t.Errorf("got %d cards, want 1", cards)
	}
}

func TestHandleChat_GeneralChat(t *testing.T) {
	f := newServerFixture(domain.IntentGeneralChat)

	rec := f.do(t, http.MethodPost, "/api/chat", `{"message": "привет"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "small talk") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestHandleChat_Validation(t *testing.T) {
	f := newServerFixture(domain.IntentHotelSearch)

	rec := f.do(t, http.MethodPost, "/api/chat", `{"message": ""}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty message: code = %d, want 400", rec.Code)
	}
	if e := decodeError(t, rec); e.Code != codeValidationFailed {
		t.Errorf("error code = %q", e.Code)
	}

	rec = f.do(t, http.MethodPost, "/api/chat", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad json: code = %d, want 400", rec.Code)
	}
	if e := decodeError(t, rec); e.Code != codeBadRequest {
		t.Errorf("error code = %q", e.Code)
	}
}

func TestHandleHotelSearch(t *testing.T) {
	f := newServerFixture(domain.IntentHotelSearch)
	f.gateway.results = []domain.Hotel{{ID: "h1", Name: "Rixos"}}

	rec := f.do(t, http.MethodPost, "/api/hotels/search",
		`{"query": "у моря", "top_k": 3, "filters": {"country": "Турция", "kids_club": true}}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, body %q", rec.Code, rec.Body.String())
	}

	var resp searchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 1 || len(resp.Items) != 1 || resp.Items[0].ID != "h1" {
		t.Errorf("response = %+v", resp)
	}

	if f.gateway.topK != 3 {
		t.Errorf("topK = %d, want 3", f.gateway.topK)
	}
	if f.gateway.cons.Country() != "Турция" || !f.gateway.cons.KidsClub() {
		t.Errorf("filters not forwarded: %+v", f.gateway.cons)
	}
}

func TestHandleHotelSearch_Validation(t *testing.T) {
	f := newServerFixture(domain.IntentHotelSearch)

	rec := f.do(t, http.MethodPost, "/api/hotels/search", `{"query": ""}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("code = %d, want 400", rec.Code)
	}
}

func TestHandleHotelSearch_IndexDown(t *testing.T) {
	f := newServerFixture(domain.IntentHotelSearch)
	f.gateway.err = domain.ErrIndexUnavailable

	rec := f.do(t, http.MethodPost, "/api/hotels/search", `{"query": "у моря"}`)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("code = %d, want 503", rec.Code)
	}
	if e := decodeError(t, rec); e.Code != codeIndexUnavailable {
		t.Errorf("error code = %q", e.Code)
	}
}

func TestHandleListHotels(t *testing.T) {
	f := newServerFixture(domain.IntentHotelSearch)
	f.store.listResult = &db.SearchResult{
		Total: 42,
		Entries: []db.SearchEntry{
			{Key: "concierge:hotels:h1", Fields: map[string]string{"id": "h1", "name": "A"}},
		},
	}

	rec := f.do(t, http.MethodGet, "/api/hotels?offset=10&limit=1", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d, body %q", rec.Code, rec.Body.String())
	}
	var resp listResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 42 || len(resp.Items) != 1 || resp.Offset != 10 || resp.Limit != 1 {
		t.Errorf("response = %+v", resp)
	}
}

func TestHandleListHotels_Validation(t *testing.T) {
	f := newServerFixture(domain.IntentHotelSearch)

	if rec := f.do(t, http.MethodGet, "/api/hotels?limit=500", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("oversized limit: code = %d, want 400", rec.Code)
	}
	if rec := f.do(t, http.MethodGet, "/api/hotels?offset=-1", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("negative offset: code = %d, want 400", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	f := newServerFixture(domain.IntentHotelSearch)

	rec := f.do(t, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	var resp healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "healthy" || resp.Checks["database"] != "ok" {
		t.Errorf("response = %+v", resp)
	}

	f.health.err = errors.New("connection refused")
	rec = f.do(t, http.MethodGet, "/health", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("code = %d, want 503", rec.Code)
	}
}
