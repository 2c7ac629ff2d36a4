package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/hotelgenx/concierge/internal/domain"
)

type mockRepo struct {
	dim     int
	count   int
	batches [][]domain.CatalogEntry

	ensureErr error
	countErr  error
	upsertErr error
}

func (m *mockRepo) EnsureIndex(_ context.Context, dim int) error {
	m.dim = dim
	return m.ensureErr
}

func (m *mockRepo) Upsert(_ context.Context, entries []domain.CatalogEntry) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.batches = append(m.batches, entries)
	return nil
}

func (m *mockRepo) Count(context.Context) (int, error) {
	return m.count, m.countErr
}

func (m *mockRepo) written() int {
	n := 0
	for _, b := range m.batches {
		n += len(b)
	}
	return n
}

type mockEmbedder struct {
	dim   int
	texts []string
	err   error
}

func (m *mockEmbedder) BatchEmbed(_ context.Context, texts []string) ([][]float32, error) {
	m.texts = texts
	if m.err != nil {
		return nil, m.err
	}
	vectors := make([][]float32, len(texts))
	for i := range vectors {
		vectors[i] = make([]float32, m.dim)
		vectors[i][0] = float32(i + 1)
	}
	return vectors, nil
}

func (m *mockEmbedder) Dimensions() int { return m.dim }

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hotels.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const twoHotels = `[
  {"id": "h1", "name": "Rixos", "country": "Турция", "city": "Белек",
   "stars": 5, "price_per_night": 15000, "description": "Премиум у моря",
   "kids_club": true},
  {"id": "h2", "name": "Sunrise", "country": "Египет", "city": "Хургада",
   "description": "Семейный отель", "embedding": [0.1, 0.2, 0.3, 0.4]}
]`

func TestIngestFile(t *testing.T) {
	repo := &mockRepo{}
	emb := &mockEmbedder{dim: 4}
	svc := New(repo, emb, zap.NewNop())

	n, err := svc.IngestFile(context.Background(), writeCatalog(t, twoHotels), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("written = %d, want 2", n)
	}

	// Dimension comes from the first precomputed embedding, not the provider.
	if repo.dim != 4 {
		t.Errorf("index dim = %d, want 4", repo.dim)
	}

	// Only the record without an embedding goes to the provider.
	if len(emb.texts) != 1 {
		t.Fatalf("embedded %d texts, want 1", len(emb.texts))
	}
	if emb.texts[0] != "Rixos. Турция. Белек. Премиум у моря" {
		t.Errorf("embedding text = %q", emb.texts[0])
	}

	if repo.written() != 2 {
		t.Fatalf("repo got %d entries", repo.written())
	}
	entries := repo.batches[0]
	if len(entries[0].Vector) != 4 || entries[0].Vector[0] != 1 {
		t.Errorf("h1 vector = %v, want the provider's", entries[0].Vector)
	}
	if len(entries[1].Vector) != 4 || entries[1].Vector[0] != 0.1 {
		t.Errorf("h2 vector = %v, want the precomputed one", entries[1].Vector)
	}
	if entries[0].Hotel.KidsClub == nil || !*entries[0].Hotel.KidsClub {
		t.Errorf("h1 kids_club = %v", entries[0].Hotel.KidsClub)
	}
	if entries[1].Hotel.KidsClub != nil {
		t.Errorf("h2 kids_club = %v, want unset", entries[1].Hotel.KidsClub)
	}
}

func TestIngestFile_SkipsPopulatedCatalog(t *testing.T) {
	repo := &mockRepo{count: 120}
	svc := New(repo, &mockEmbedder{dim: 4}, zap.NewNop())

	n, err := svc.IngestFile(context.Background(), writeCatalog(t, twoHotels), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 || len(repo.batches) != 0 {
		t.Errorf("populated catalog must be left untouched, wrote %d", n)
	}
}

func TestIngestFile_ForceReingests(t *testing.T) {
	repo := &mockRepo{count: 120}
	svc := New(repo, &mockEmbedder{dim: 4}, zap.NewNop())

	n, err := svc.IngestFile(context.Background(), writeCatalog(t, twoHotels), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("force must reingest, wrote %d", n)
	}
}

func TestIngestFile_Batches(t *testing.T) {
	repo := &mockRepo{}
	emb := &mockEmbedder{dim: 2}
	svc := New(repo, emb, zap.NewNop())
	svc.batchSize = 2

	const five = `[
  {"id": "h1", "name": "A"}, {"id": "h2", "name": "B"},
  {"id": "h3", "name": "C"}, {"id": "h4", "name": "D"},
  {"id": "h5", "name": "E"}
]`
	n, err := svc.IngestFile(context.Background(), writeCatalog(t, five), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 5 {
		t.Errorf("written = %d, want 5", n)
	}
	if len(repo.batches) != 3 {
		t.Errorf("got %d batches, want 3", len(repo.batches))
	}
}

func TestIngestFile_ProviderDimensionFallback(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, &mockEmbedder{dim: 1024}, zap.NewNop())

	const noEmbeddings = `[{"id": "h1", "name": "A", "description": "x"}]`
	if _, err := svc.IngestFile(context.Background(), writeCatalog(t, noEmbeddings), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.dim != 1024 {
		t.Errorf("index dim = %d, want provider fallback 1024", repo.dim)
	}
}

func TestIngestFile_EmptyFile(t *testing.T) {
	svc := New(&mockRepo{}, &mockEmbedder{dim: 4}, zap.NewNop())

	if _, err := svc.IngestFile(context.Background(), writeCatalog(t, `[]`), false); err == nil {
		t.Error("expected error for a catalog with no records")
	}
}

func TestIngestFile_MissingFile(t *testing.T) {
	svc := New(&mockRepo{}, &mockEmbedder{dim: 4}, zap.NewNop())

	if _, err := svc.IngestFile(context.Background(), "no/such/file.json", false); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestIngestFile_EmbedFailureAborts(t *testing.T) {
	repo := &mockRepo{}
	wantErr := errors.New("provider down")
	svc := New(repo, &mockEmbedder{dim: 4, err: wantErr}, zap.NewNop())

	const noEmbeddings = `[{"id": "h1", "name": "A"}]`
	_, err := svc.IngestFile(context.Background(), writeCatalog(t, noEmbeddings), false)
	if !errors.Is(err, wantErr) {
		t.Errorf("got %v, want the provider error", err)
	}
	if len(repo.batches) != 0 {
		t.Error("no batch may be written after an embedding failure")
	}
}
