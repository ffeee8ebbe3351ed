package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selimv/vitrine/internal/logging"
	"github.com/selimv/vitrine/internal/models"
)

// memStore is an in-memory kvstore.Store with failure injection and call
// counting, standing in for the SQLite-backed store.
type memStore struct {
	mu       sync.Mutex
	m        map[string][]byte
	getErr   error
	setErr   error
	getCalls int
}

func newMemStore() *memStore {
	return &memStore{m: make(map[string][]byte)}
}

func (s *memStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getCalls++
	if s.getErr != nil {
		return nil, s.getErr
	}
	v, ok := s.m[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (s *memStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.m[key] = append([]byte(nil), value...)
	return nil
}

func (s *memStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestProducts(t *testing.T, store *memStore) *productService {
	t.Helper()
	return NewProductService(store, discardLogger(), 0).(*productService)
}

// putCollection pre-populates the store so Initialize takes the load path
// instead of seeding.
func putCollection(t *testing.T, store *memStore, products []models.Product) {
	t.Helper()
	data, err := json.Marshal(products)
	require.NoError(t, err)
	store.m[productsKey] = data
}

func draft(name string) models.ProductDraft {
	return models.ProductDraft{
		Name:     name,
		Price:    10,
		Stock:    1,
		Category: "electronics",
		Vendor:   "Daniel",
	}
}

func TestInitialize_SeedsOnFirstRun(t *testing.T) {
	store := newMemStore()
	svc := newTestProducts(t, store)
	ctx := context.Background()

	require.NoError(t, svc.Initialize(ctx))

	seed, err := models.SeedProducts()
	require.NoError(t, err)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed, all)

	// the seeded collection was persisted immediately
	require.Contains(t, store.m, productsKey)
}

func TestInitialize_LoadsPersistedCollection(t *testing.T) {
	store := newMemStore()
	persisted := []models.Product{draft("Lampe").Product("77")}
	putCollection(t, store, persisted)

	svc := newTestProducts(t, store)
	require.NoError(t, svc.Initialize(context.Background()))

	all, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, persisted, all)
}

func TestInitialize_IsIdempotent(t *testing.T) {
	store := newMemStore()
	svc := newTestProducts(t, store)
	ctx := context.Background()

	require.NoError(t, svc.Initialize(ctx))
	first, err := svc.GetAll(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Initialize(ctx))
	second, err := svc.GetAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.getCalls, "second Initialize must not trigger a second load")
}

func TestInitialize_CorruptData_FallsBackToEmpty(t *testing.T) {
	store := newMemStore()
	store.m[productsKey] = []byte(`{not json`)

	svc := newTestProducts(t, store)
	require.NoError(t, svc.Initialize(context.Background()))

	all, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestInitialize_StorageFailure_FallsBackToEmpty(t *testing.T) {
	store := newMemStore()
	store.getErr = errors.New("disk on fire")

	svc := newTestProducts(t, store)
	require.NoError(t, svc.Initialize(context.Background()))

	all, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAdd_GetByID_RoundTrip(t *testing.T) {
	store := newMemStore()
	putCollection(t, store, nil)
	svc := newTestProducts(t, store)
	ctx := context.Background()
	require.NoError(t, svc.Initialize(ctx))

	d := models.ProductDraft{
		Name:        "Gourde isotherme",
		Description: "750ml",
		Price:       22,
		Stock:       40,
		Category:    "sports",
		Vendor:      "Daniel",
		Image:       "https://example.com/g.jpg",
	}

	created, err := svc.Add(ctx, d)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, d.Product(created.ID), *created)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *created, *got)
}

func TestAdd_InsertsAtFront(t *testing.T) {
	store := newMemStore()
	putCollection(t, store, nil)
	svc := newTestProducts(t, store)
	ctx := context.Background()
	require.NoError(t, svc.Initialize(ctx))

	first, err := svc.Add(ctx, draft("ancien"))
	require.NoError(t, err)
	second, err := svc.Add(ctx, draft("récent"))
	require.NoError(t, err)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "newest first")
	assert.Equal(t, first.ID, all[1].ID)
}

func TestAdd_SameMillisecond_AssignsDistinctIDs(t *testing.T) {
	store := newMemStore()
	putCollection(t, store, nil)
	svc := newTestProducts(t, store)
	ctx := context.Background()
	require.NoError(t, svc.Initialize(ctx))

	// freeze the clock so every id candidate collides
	fixed := time.UnixMilli(1755000000000)
	svc.now = func() time.Time { return fixed }

	a, err := svc.Add(ctx, draft("a"))
	require.NoError(t, err)
	b, err := svc.Add(ctx, draft("b"))
	require.NoError(t, err)

	assert.Equal(t, "1755000000000", a.ID)
	assert.Equal(t, "1755000000001", b.ID)
}

func TestAdd_RejectsInvalidDraft(t *testing.T) {
	store := newMemStore()
	putCollection(t, store, nil)
	svc := newTestProducts(t, store)
	ctx := context.Background()
	require.NoError(t, svc.Initialize(ctx))

	bad := draft("x")
	bad.Price = -5

	_, err := svc.Add(ctx, bad)
	require.ErrorIs(t, err, models.ErrInvalidProduct)
}

func TestGetByID_Unknown_IsAbsenceNotError(t *testing.T) {
	store := newMemStore()
	putCollection(t, store, nil)
	svc := newTestProducts(t, store)
	require.NoError(t, svc.Initialize(context.Background()))

	got, err := svc.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdate_IsAPartialMerge(t *testing.T) {
	store := newMemStore()
	base := draft("Clavier").Product("100")
	base.Description = "75% layout"
	base.Image = "https://example.com/k.jpg"
	putCollection(t, store, []models.Product{base})

	svc := newTestProducts(t, store)
	ctx := context.Background()
	require.NoError(t, svc.Initialize(ctx))

	price := 9.99
	updated, err := svc.Update(ctx, "100", models.ProductPatch{Price: &price})
	require.NoError(t, err)

	want := base
	want.Price = 9.99
	assert.Equal(t, want, *updated)

	got, err := svc.GetByID(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestUpdate_UnknownID(t *testing.T) {
	store := newMemStore()
	putCollection(t, store, nil)
	svc := newTestProducts(t, store)
	require.NoError(t, svc.Initialize(context.Background()))

	price := 1.0
	_, err := svc.Update(context.Background(), "ghost", models.ProductPatch{Price: &price})
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestDelete_RemovesExactlyOne(t *testing.T) {
	store := newMemStore()
	putCollection(t, store, []models.Product{
		draft("a").Product("1"),
		draft("b").Product("2"),
		draft("c").Product("3"),
	})

	svc := newTestProducts(t, store)
	ctx := context.Background()
	require.NoError(t, svc.Initialize(ctx))

	require.NoError(t, svc.Delete(ctx, "2"))

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, p := range all {
		assert.NotEqual(t, "2", p.ID)
	}

	require.ErrorIs(t, svc.Delete(ctx, "2"), ErrProductNotFound)
}

func TestMutations_PersistFailure_PropagatesAndRollsBack(t *testing.T) {
	store := newMemStore()
	putCollection(t, store, []models.Product{draft("a").Product("1")})

	svc := newTestProducts(t, store)
	ctx := context.Background()
	require.NoError(t, svc.Initialize(ctx))

	boom := errors.New("write failed")
	store.setErr = boom

	_, err := svc.Add(ctx, draft("b"))
	require.ErrorIs(t, err, boom)

	price := 2.0
	_, err = svc.Update(ctx, "1", models.ProductPatch{Price: &price})
	require.ErrorIs(t, err, boom)

	require.ErrorIs(t, svc.Delete(ctx, "1"), boom)

	// the collection did not change under any failed mutation
	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "1", all[0].ID)
	assert.Equal(t, 10.0, all[0].Price)
}

func TestPersistence_SurvivesReload(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	svc1 := newTestProducts(t, store)
	require.NoError(t, svc1.Initialize(ctx))
	created, err := svc1.Add(ctx, draft("survivant"))
	require.NoError(t, err)

	// simulate a fresh process: a new service over the same backing storage
	svc2 := newTestProducts(t, store)
	require.NoError(t, svc2.Initialize(ctx))

	got, err := svc2.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *created, *got)
}

func TestGetAll_ReturnsACopy(t *testing.T) {
	store := newMemStore()
	putCollection(t, store, []models.Product{draft("a").Product("1")})
	svc := newTestProducts(t, store)
	ctx := context.Background()
	require.NoError(t, svc.Initialize(ctx))

	snapshot, err := svc.GetAll(ctx)
	require.NoError(t, err)
	snapshot[0].Name = "mutated by a rogue consumer"

	again, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", again[0].Name)
}

func TestGetAll_HonorsContextDuringSimulatedLatency(t *testing.T) {
	store := newMemStore()
	putCollection(t, store, nil)
	svc := NewProductService(store, discardLogger(), 5*time.Second).(*productService)
	require.NoError(t, svc.Initialize(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := svc.GetAll(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
