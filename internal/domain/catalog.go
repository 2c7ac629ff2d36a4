package domain

// CatalogEntry pairs a hotel record with its description embedding for
// catalog ingestion.
type CatalogEntry struct {
	Hotel  Hotel
	Vector []float32
}
