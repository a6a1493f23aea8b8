package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sweetshop/inventory-api/internal/core/domain"
	"github.com/sweetshop/inventory-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository. AdjustQuantity holds the lock across the whole
// check-and-write, mirroring the atomic conditional update of the real
// Mongo repository.
// ---------------------------------------------------------------------------

type stubSweetRepo struct {
	mu     sync.Mutex
	sweets map[string]*domain.Sweet
	order  []string
	nextID int
}

func newStubSweetRepo() *stubSweetRepo {
	return &stubSweetRepo{sweets: make(map[string]*domain.Sweet)}
}

func cloneSweet(s *domain.Sweet) *domain.Sweet {
	clone := *s
	return &clone
}

func (r *stubSweetRepo) Create(_ context.Context, sweet *domain.Sweet) (*domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	created := cloneSweet(sweet)
	created.ID = fmt.Sprintf("sweet_%d", r.nextID)
	r.sweets[created.ID] = cloneSweet(created)
	r.order = append(r.order, created.ID)
	return created, nil
}

func (r *stubSweetRepo) FindByID(_ context.Context, id string) (*domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sweets[id]
	if !ok {
		return nil, domain.ErrSweetNotFound
	}
	return cloneSweet(s), nil
}

func (r *stubSweetRepo) List(_ context.Context, skip, limit int64) ([]*domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.Sweet
	for i, id := range r.order {
		if int64(i) < skip {
			continue
		}
		if int64(len(out)) >= limit {
			break
		}
		out = append(out, cloneSweet(r.sweets[id]))
	}
	return out, nil
}

// Search mirrors the real Mongo query: case-insensitive substring match on
// name/category, inclusive price bounds, AND-composed.
func (r *stubSweetRepo) Search(_ context.Context, filter ports.SweetFilter) ([]*domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.Sweet
	for _, id := range r.order {
		s := r.sweets[id]
		if filter.Name != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Category != "" && !strings.Contains(strings.ToLower(s.Category), strings.ToLower(filter.Category)) {
			continue
		}
		if filter.MinPrice != nil && s.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && s.Price > *filter.MaxPrice {
			continue
		}
		out = append(out, cloneSweet(s))
	}
	return out, nil
}

func (r *stubSweetRepo) Replace(_ context.Context, id string, sweet *domain.Sweet) (*domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sweets[id]; !ok {
		return nil, domain.ErrSweetNotFound
	}
	replaced := cloneSweet(sweet)
	replaced.ID = id
	r.sweets[id] = cloneSweet(replaced)
	return replaced, nil
}

func (r *stubSweetRepo) Delete(_ context.Context, id string) (*domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sweets[id]
	if !ok {
		return nil, domain.ErrSweetNotFound
	}
	delete(r.sweets, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return s, nil
}

func (r *stubSweetRepo) AdjustQuantity(_ context.Context, id string, delta int64) (*domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sweets[id]
	if !ok {
		return nil, domain.ErrSweetNotFound
	}
	if s.Quantity+delta < 0 {
		return nil, domain.ErrInsufficientStock
	}
	s.Quantity += delta
	return cloneSweet(s), nil
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func seedSweet(t *testing.T, repo *stubSweetRepo, name, category string, price float64, quantity int64) *domain.Sweet {
	t.Helper()
	created, err := repo.Create(context.Background(), &domain.Sweet{
		Name:     name,
		Category: category,
		Price:    price,
		Quantity: quantity,
	})
	if err != nil {
		t.Fatalf("seed sweet: %v", err)
	}
	return created
}

func TestInventoryService_Restock(t *testing.T) {
	repo := newStubSweetRepo()
	svc := NewInventoryService(repo, nil, zerolog.Nop())
	sweet := seedSweet(t, repo, "Ladoo", "Indian", 80.0, 12)

	updated, err := svc.Restock(context.Background(), sweet.ID, 5)
	if err != nil {
		t.Fatalf("restock failed: %v", err)
	}
	if updated.Quantity != 17 {
		t.Fatalf("expected quantity 17, got %d", updated.Quantity)
	}
}

func TestInventoryService_Restock_NonPositive(t *testing.T) {
	repo := newStubSweetRepo()
	svc := NewInventoryService(repo, nil, zerolog.Nop())
	sweet := seedSweet(t, repo, "Ladoo", "Indian", 80.0, 12)

	for _, amount := range []int64{0, -5} {
		if _, err := svc.Restock(context.Background(), sweet.ID, amount); !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Fatalf("amount %d: expected ErrInvalidQuantity, got %v", amount, err)
		}
	}

	stored, _ := repo.FindByID(context.Background(), sweet.ID)
	if stored.Quantity != 12 {
		t.Fatalf("quantity mutated on rejected restock: %d", stored.Quantity)
	}
}

func TestInventoryService_Restock_NotFound(t *testing.T) {
	svc := NewInventoryService(newStubSweetRepo(), nil, zerolog.Nop())

	if _, err := svc.Restock(context.Background(), "missing", 5); !errors.Is(err, domain.ErrSweetNotFound) {
		t.Fatalf("expected ErrSweetNotFound, got %v", err)
	}
}

func TestInventoryService_Purchase(t *testing.T) {
	repo := newStubSweetRepo()
	svc := NewInventoryService(repo, nil, zerolog.Nop())
	sweet := seedSweet(t, repo, "Barfi", "Indian", 50.0, 5)

	updated, err := svc.Purchase(context.Background(), sweet.ID, 3)
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if updated.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", updated.Quantity)
	}

	// Over-purchase is rejected and quantity stays at 2.
	if _, err := svc.Purchase(context.Background(), sweet.ID, 10); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	stored, _ := repo.FindByID(context.Background(), sweet.ID)
	if stored.Quantity != 2 {
		t.Fatalf("quantity mutated on rejected purchase: %d", stored.Quantity)
	}
}

func TestInventoryService_Purchase_NonPositive(t *testing.T) {
	repo := newStubSweetRepo()
	svc := NewInventoryService(repo, nil, zerolog.Nop())
	sweet := seedSweet(t, repo, "Barfi", "Indian", 50.0, 5)

	for _, amount := range []int64{0, -1} {
		if _, err := svc.Purchase(context.Background(), sweet.ID, amount); !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Fatalf("amount %d: expected ErrInvalidQuantity, got %v", amount, err)
		}
	}
}

func TestInventoryService_RestockPurchaseRoundTrip(t *testing.T) {
	repo := newStubSweetRepo()
	svc := NewInventoryService(repo, nil, zerolog.Nop())
	sweet := seedSweet(t, repo, "Jalebi", "Indian", 100.0, 7)

	if _, err := svc.Restock(context.Background(), sweet.ID, 4); err != nil {
		t.Fatalf("restock failed: %v", err)
	}
	updated, err := svc.Purchase(context.Background(), sweet.ID, 4)
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if updated.Quantity != 7 {
		t.Fatalf("expected round-trip back to 7, got %d", updated.Quantity)
	}
}

// Concurrent purchases against one sweet must never oversell in aggregate
// and quantity must never go negative under any interleaving.
func TestInventoryService_ConcurrentPurchases(t *testing.T) {
	const (
		initial    = 30
		buyers     = 50
		perRequest = 1
	)

	repo := newStubSweetRepo()
	svc := NewInventoryService(repo, nil, zerolog.Nop())
	sweet := seedSweet(t, repo, "Rasgulla", "Indian", 30.0, initial)

	var wg sync.WaitGroup
	results := make(chan error, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Purchase(context.Background(), sweet.ID, perRequest)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	sold := 0
	for err := range results {
		switch {
		case err == nil:
			sold++
		case errors.Is(err, domain.ErrInsufficientStock):
		default:
			t.Fatalf("unexpected purchase error: %v", err)
		}
	}

	if sold != initial {
		t.Fatalf("expected exactly %d successful purchases, got %d", initial, sold)
	}
	stored, _ := repo.FindByID(context.Background(), sweet.ID)
	if stored.Quantity != 0 {
		t.Fatalf("expected quantity 0, got %d", stored.Quantity)
	}
}
