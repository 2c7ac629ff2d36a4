// Package constraint holds the structured filter extracted from free-form
// query text. A Set is built once per query and immutable afterward; every
// field is independently optional, and absence always means "unconstrained",
// never zero or false.
package constraint

// Set is the structured search filter for one query.
type Set struct {
	priceMin *int
	priceMax *int
	starsMin *int
	starsMax *int
	country  string
	city     string

	kidsClub     bool
	allInclusive bool
	aquapark     bool
}

// PriceMin returns the inclusive price lower bound, nil when unconstrained.
func (s Set) PriceMin() *int { return s.priceMin }

// PriceMax returns the inclusive price upper bound, nil when unconstrained.
func (s Set) PriceMax() *int { return s.priceMax }

// StarsMin returns the star-rating lower bound, nil when unconstrained.
func (s Set) StarsMin() *int { return s.starsMin }

// StarsMax returns the star-rating upper bound, nil when unconstrained.
func (s Set) StarsMax() *int { return s.starsMax }

// Country returns the required country name, empty when unconstrained.
func (s Set) Country() string { return s.country }

// City returns the required city name, empty when unconstrained.
func (s Set) City() string { return s.city }

// KidsClub reports whether a kids-club amenity is required.
func (s Set) KidsClub() bool { return s.kidsClub }

// AllInclusive reports whether an all-inclusive amenity is required.
func (s Set) AllInclusive() bool { return s.allInclusive }

// Aquapark reports whether a water-park amenity is required.
func (s Set) Aquapark() bool { return s.aquapark }

// IsEmpty reports whether no field constrains the search.
func (s Set) IsEmpty() bool {
	return s.priceMin == nil && s.priceMax == nil &&
		s.starsMin == nil && s.starsMax == nil &&
		s.country == "" && s.city == "" &&
		!s.kidsClub && !s.allInclusive && !s.aquapark
}

// Builder accumulates extraction rules into a Set. Rules targeting the same
// field overwrite each other: the last applied rule wins, and a bound that
// would invert an existing range evicts the conflicting opposite bound.
type Builder struct {
	set Set
}

// NewBuilder creates an empty constraint builder.
func NewBuilder() *Builder { return &Builder{} }

// PriceMax sets the price ceiling. An existing floor above the new ceiling
// is dropped so the range can never invert.
func (b *Builder) PriceMax(n int) *Builder {
	b.set.priceMax = &n
	if b.set.priceMin != nil && *b.set.priceMin > n {
		b.set.priceMin = nil
	}
	return b
}

// PriceMin sets the price floor. An existing ceiling below the new floor
// is dropped so the range can never invert.
func (b *Builder) PriceMin(n int) *Builder {
	b.set.priceMin = &n
	if b.set.priceMax != nil && *b.set.priceMax < n {
		b.set.priceMax = nil
	}
	return b
}

// StarsMin sets the star lower bound, clamped to the 1..5 scale.
func (b *Builder) StarsMin(n int) *Builder {
	n = clampStars(n)
	b.set.starsMin = &n
	if b.set.starsMax != nil && *b.set.starsMax < n {
		b.set.starsMax = nil
	}
	return b
}

// StarsMax sets the star upper bound, clamped to the 1..5 scale.
func (b *Builder) StarsMax(n int) *Builder {
	n = clampStars(n)
	b.set.starsMax = &n
	if b.set.starsMin != nil && *b.set.starsMin > n {
		b.set.starsMin = nil
	}
	return b
}

// Country sets the required country.
func (b *Builder) Country(name string) *Builder {
	b.set.country = name
	return b
}

// City sets the required city.
func (b *Builder) City(name string) *Builder {
	b.set.city = name
	return b
}

// KidsClub requires the kids-club amenity.
func (b *Builder) KidsClub() *Builder {
	b.set.kidsClub = true
	return b
}

// AllInclusive requires the all-inclusive amenity.
func (b *Builder) AllInclusive() *Builder {
	b.set.allInclusive = true
	return b
}

// Aquapark requires the water-park amenity.
func (b *Builder) Aquapark() *Builder {
	b.set.aquapark = true
	return b
}

// Build returns the accumulated Set.
func (b *Builder) Build() Set { return b.set }

func clampStars(n int) int {
	if n < 1 {
		return 1
	}
	if n > 5 {
		return 5
	}
	return n
}
