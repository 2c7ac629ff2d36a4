package chi

import (
	"encoding/json"
	"net/http"

	"github.com/hotelgenx/concierge/internal/domain"
	"github.com/hotelgenx/concierge/internal/domain/constraint"
)

// Error codes returned in JSON error responses.
const (
	codeBadRequest           = "bad_request"
	codeValidationFailed     = "validation_failed"
	codeIndexUnavailable     = "index_unavailable"
	codeEmbeddingUnavailable = "embedding_unavailable"
	codeInternalError        = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// searchRequest carries an explicit-filter search. Unlike the chat path,
// nothing is extracted from the query text; it only drives ranking.
type searchRequest struct {
	Query   string       `json:"query"`
	TopK    int          `json:"top_k"`
	Filters hotelFilters `json:"filters"`
}

type hotelFilters struct {
	MinPrice     *int   `json:"min_price"`
	MaxPrice     *int   `json:"max_price"`
	MinStars     *int   `json:"min_stars"`
	MaxStars     *int   `json:"max_stars"`
	Country      string `json:"country"`
	City         string `json:"city"`
	KidsClub     bool   `json:"kids_club"`
	AllInclusive bool   `json:"all_inclusive"`
	Aquapark     bool   `json:"aquapark"`
}

func (f hotelFilters) toConstraints() constraint.Set {
	b := constraint.NewBuilder()

	if f.MinPrice != nil {
		b.PriceMin(*f.MinPrice)
	}
	if f.MaxPrice != nil {
		b.PriceMax(*f.MaxPrice)
	}
	if f.MinStars != nil {
		b.StarsMin(*f.MinStars)
	}
	if f.MaxStars != nil {
		b.StarsMax(*f.MaxStars)
	}
	if f.Country != "" {
		b.Country(f.Country)
	}
	if f.City != "" {
		b.City(f.City)
	}
	if f.KidsClub {
		b.KidsClub()
	}
	if f.AllInclusive {
		b.AllInclusive()
	}
	if f.Aquapark {
		b.Aquapark()
	}

	return b.Build()
}

type searchResponse struct {
	Items []domain.Hotel `json:"items"`
	Total int            `json:"total"`
}

type listResponse struct {
	Items  []domain.Hotel `json:"items"`
	Total  int            `json:"total"`
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
