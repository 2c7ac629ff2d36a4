package domain

// Hotel is a catalog record decoded from the vector store payload.
//
// Pointer fields are three-valued: nil means the stored payload had no such
// key (or it failed to parse), which is distinct from a zero or false value.
// Similarity is assigned at query time from the store's cosine metric and is
// only meaningful relative to the other records of the same search call.
type Hotel struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Country       string   `json:"country,omitempty"`
	City          string   `json:"city,omitempty"`
	Stars         *int     `json:"stars,omitempty"`
	PricePerNight *float64 `json:"price_per_night,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	Description   string   `json:"description,omitempty"`
	KidsClub      *bool    `json:"kids_club,omitempty"`
	AllInclusive  *bool    `json:"all_inclusive,omitempty"`
	Aquapark      *bool    `json:"aquapark,omitempty"`
	Similarity    float64  `json:"similarity"`
}

// HasAmenities reports whether any of the three amenity flags is known true.
func (h *Hotel) HasAmenities() bool {
	for _, f := range []*bool{h.KidsClub, h.AllInclusive, h.Aquapark} {
		if f != nil && *f {
			return true
		}
	}
	return false
}
