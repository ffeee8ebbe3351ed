package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/selimv/vitrine/internal/kvstore"
	"github.com/selimv/vitrine/internal/logging"
	"github.com/selimv/vitrine/internal/models"
)

// productsKey is the key-value store key holding the serialized collection.
const productsKey = "app:products"

// ProductService is the single source of truth for the product collection.
//
// Contract:
//   - Initialize: load the persisted collection, or seed it on first run.
//     Idempotent; never fails (falls back to an empty collection).
//   - GetAll / GetByID: read-only snapshots; GetByID returns (nil, nil)
//     when the id is unknown.
//   - Add / Update / Delete: mutate the collection and persist the full
//     snapshot before the in-memory state is replaced. A persistence failure
//     means the mutation did not happen.
type ProductService interface {
	Initialize(ctx context.Context) error
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Add(ctx context.Context, draft models.ProductDraft) (*models.Product, error)
	Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

type productService struct {
	store   kvstore.Store
	log     logging.Logger
	latency time.Duration

	mu          sync.Mutex
	products    []models.Product
	initialized bool

	now func() time.Time
}

// NewProductService constructs a ProductService over the given store. The
// instance is meant to be created once and shared by every consumer.
func NewProductService(store kvstore.Store, log logging.Logger, latency time.Duration) ProductService {
	return &productService{store: store, log: log, latency: latency, now: time.Now}
}

// Initialize loads the collection from storage, seeding it from the bundled
// dataset when nothing has been persisted yet. Any storage or decode failure
// degrades to an empty collection: the app stays usable with zero products.
// A second call is a no-op.
func (s *productService) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	data, err := s.store.Get(ctx, productsKey)
	switch {
	case err != nil:
		s.log.Error(ctx, "failed to load product collection, starting empty", "error", err)
		s.products = nil

	case data != nil:
		var loaded []models.Product
		if err := json.Unmarshal(data, &loaded); err != nil {
			s.log.Error(ctx, "stored product collection is corrupt, starting empty", "error", err)
			s.products = nil
		} else {
			s.products = loaded
		}

	default:
		// first run: seed and persist immediately so later runs skip reseeding
		seeded, err := models.SeedProducts()
		if err != nil {
			s.log.Error(ctx, "failed to decode seed data, starting empty", "error", err)
		}
		s.products = seeded
		if err := s.persist(ctx, s.products); err != nil {
			s.log.Error(ctx, "failed to persist seeded collection", "error", err)
		}
	}

	s.initialized = true
	return nil
}

// GetAll returns a copy of the collection, newest first.
func (s *productService) GetAll(ctx context.Context) ([]models.Product, error) {
	if err := wait(ctx, s.latency); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

// GetByID returns the product with the given id, or (nil, nil) when no such
// product exists.
func (s *productService) GetByID(ctx context.Context, id string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, nil
	}
	p := s.products[i]
	return &p, nil
}

// Add assigns a fresh id, inserts the product at the front of the collection
// and persists the new snapshot. On persistence failure the collection is
// left untouched and the error is returned to the caller.
func (s *productService) Add(ctx context.Context, draft models.ProductDraft) (*models.Product, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product := draft.Product(s.nextID())

	next := make([]models.Product, 0, len(s.products)+1)
	next = append(next, product)
	next = append(next, s.products...)

	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	s.products = next
	return &product, nil
}

// Update merges patch over the existing record and persists the snapshot.
// Unknown ids yield ErrProductNotFound.
func (s *productService) Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrProductNotFound
	}

	merged := patch.Apply(s.products[i])

	next := make([]models.Product, len(s.products))
	copy(next, s.products)
	next[i] = merged

	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	s.products = next
	return &merged, nil
}

// Delete removes the product with the given id and persists the snapshot.
// Unknown ids yield ErrProductNotFound. Deletion is immediate; there is no
// tombstone.
func (s *productService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrProductNotFound
	}

	next := make([]models.Product, 0, len(s.products)-1)
	next = append(next, s.products[:i]...)
	next = append(next, s.products[i+1:]...)

	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.products = next
	return nil
}

// persist re-serializes the whole collection and writes it under a single
// key. Full-snapshot writes keep the storage model trivial and are fine at
// this catalog's size; they will not scale to large collections.
// Callers must hold s.mu.
func (s *productService) persist(ctx context.Context, products []models.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to serialize product collection: %w", err)
	}
	if err := s.store.Set(ctx, productsKey, data); err != nil {
		return fmt.Errorf("failed to persist product collection: %w", err)
	}
	return nil
}

// indexOf does a linear search by id. Callers must hold s.mu.
func (s *productService) indexOf(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

// nextID returns a fresh decimal-timestamp id, bumping the candidate while
// it collides with an existing record so two adds in the same millisecond
// still get distinct ids. Callers must hold s.mu.
func (s *productService) nextID() string {
	n := s.now().UnixMilli()
	for s.indexOf(strconv.FormatInt(n, 10)) >= 0 {
		n++
	}
	return strconv.FormatInt(n, 10)
}
