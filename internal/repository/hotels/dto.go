package hotels

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"github.com/hotelgenx/concierge/internal/db"
	"github.com/hotelgenx/concierge/internal/domain"
)

// Hash field names of a catalog record. Amenity flags are stored as the
// text literals "true"/"false", numerics as decimal strings; the decoder
// treats anything else as unset.
const (
	fieldID           = "id"
	fieldName         = "name"
	fieldCountry      = "country"
	fieldCity         = "city"
	fieldStars        = "stars"
	fieldPrice        = "price_per_night"
	fieldRating       = "rating"
	fieldDescription  = "description"
	fieldKidsClub     = "kids_club"
	fieldAllInclusive = "all_inclusive"
	fieldAquapark     = "aquapark"
	fieldVector       = "vector"

	boolLiteralTrue  = "true"
	boolLiteralFalse = "false"
)

// decodeHotel maps a raw search hit onto a hotel record. Field-level
// problems degrade to unset values; only a record without a usable
// identity or name is rejected.
func decodeHotel(entry db.SearchEntry) (domain.Hotel, error) {
	f := entry.Fields

	id := f[fieldID]
	if id == "" {
		id = trimKeyPrefix(entry.Key)
	}
	if id == "" {
		return domain.Hotel{}, fmt.Errorf("%w: record %q has no id", domain.ErrDecodingAnomaly, entry.Key)
	}
	if f[fieldName] == "" {
		return domain.Hotel{}, fmt.Errorf("%w: record %q has no name", domain.ErrDecodingAnomaly, entry.Key)
	}

	return domain.Hotel{
		ID:            id,
		Name:          f[fieldName],
		Country:       f[fieldCountry],
		City:          f[fieldCity],
		Description:   f[fieldDescription],
		Stars:         parseIntField(f, fieldStars),
		PricePerNight: parseFloatField(f, fieldPrice),
		Rating:        parseFloatField(f, fieldRating),
		KidsClub:      parseBoolField(f, fieldKidsClub),
		AllInclusive:  parseBoolField(f, fieldAllInclusive),
		Aquapark:      parseBoolField(f, fieldAquapark),
		Similarity:    entry.Score,
	}, nil
}

// encodeHotel renders a catalog entry as hash fields. Unset optional
// fields are omitted rather than written empty.
func encodeHotel(e *domain.CatalogEntry) map[string]string {
	h := &e.Hotel
	fields := map[string]string{
		fieldID:     h.ID,
		fieldName:   h.Name,
		fieldVector: vectorToBytes(e.Vector),
	}

	putString(fields, fieldCountry, h.Country)
	putString(fields, fieldCity, h.City)
	putString(fields, fieldDescription, h.Description)

	if h.Stars != nil {
		fields[fieldStars] = strconv.Itoa(*h.Stars)
	}
	if h.PricePerNight != nil {
		fields[fieldPrice] = strconv.FormatFloat(*h.PricePerNight, 'f', -1, 64)
	}
	if h.Rating != nil {
		fields[fieldRating] = strconv.FormatFloat(*h.Rating, 'f', -1, 64)
	}

	putBool(fields, fieldKidsClub, h.KidsClub)
	putBool(fields, fieldAllInclusive, h.AllInclusive)
	putBool(fields, fieldAquapark, h.Aquapark)

	return fields
}

func putString(fields map[string]string, key, value string) {
	if value != "" {
		fields[key] = value
	}
}

func putBool(fields map[string]string, key string, value *bool) {
	if value == nil {
		return
	}
	if *value {
		fields[key] = boolLiteralTrue
	} else {
		fields[key] = boolLiteralFalse
	}
}

func parseIntField(fields map[string]string, key string) *int {
	raw, ok := fields[key]
	if !ok || raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

func parseFloatField(fields map[string]string, key string) *float64 {
	raw, ok := fields[key]
	if !ok || raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

// parseBoolField maps the text literals back to booleans; any other
// content counts as unset.
func parseBoolField(fields map[string]string, key string) *bool {
	switch fields[key] {
	case boolLiteralTrue:
		v := true
		return &v
	case boolLiteralFalse:
		v := false
		return &v
	default:
		return nil
	}
}

func trimKeyPrefix(key string) string {
	if len(key) > len(keyPrefix) && key[:len(keyPrefix)] == keyPrefix {
		return key[len(keyPrefix):]
	}
	return ""
}

func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
