package cart

import (
	"path/filepath"
	"testing"

	"heladeria/internal/domain"
)

func product(id string, price float64) domain.Product {
	return domain.Product{ID: id, Name: "Helado " + id, Category: domain.CategoryIceCream, Price: price, IsActive: true}
}

func newCart(t *testing.T) *Cart {
	t.Helper()
	c, err := New(NewMemoryStorage())
	if err != nil {
		t.Fatalf("new cart: %v", err)
	}
	return c
}

func TestAddItem_MergesLines(t *testing.T) {
	c := newCart(t)
	p := product("p1", 4.99)
	if err := c.AddItem(p, 2); err != nil {
		t.Fatal(err)
	}
	if err := c.AddItem(p, 3); err != nil {
		t.Fatal(err)
	}

	snap := c.Snapshot()
	if len(snap.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(snap.Items))
	}
	if snap.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", snap.Items[0].Quantity)
	}
}

func TestAddItem_ClampsQuantity(t *testing.T) {
	c := newCart(t)
	if err := c.AddItem(product("p1", 1), 250); err != nil {
		t.Fatal(err)
	}
	if got := c.Snapshot().Items[0].Quantity; got != 100 {
		t.Fatalf("expected clamp to 100, got %d", got)
	}

	if err := c.AddItem(product("p2", 1), 0); err != nil {
		t.Fatal(err)
	}
	snap := c.Snapshot()
	if got := snap.Items[1].Quantity; got != 1 {
		t.Fatalf("expected clamp to 1, got %d", got)
	}
}

func TestUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	c := newCart(t)
	if err := c.AddItem(product("p1", 4.99), 2); err != nil {
		t.Fatal(err)
	}
	if err := c.UpdateQuantity("p1", 0); err != nil {
		t.Fatal(err)
	}
	if snap := c.Snapshot(); len(snap.Items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(snap.Items))
	}
}

func TestTotals(t *testing.T) {
	c := newCart(t)
	if err := c.AddItem(product("p1", 4.99), 2); err != nil {
		t.Fatal(err)
	}
	if err := c.AddItem(product("p2", 6.99), 1); err != nil {
		t.Fatal(err)
	}

	snap := c.Snapshot()
	if snap.TotalItems != 3 {
		t.Fatalf("total items: got %d", snap.TotalItems)
	}
	if snap.TotalAmount != 16.97 {
		t.Fatalf("total amount: got %v, want 16.97", snap.TotalAmount)
	}
}

func TestTotals_UsePromotionalPrice(t *testing.T) {
	c := newCart(t)
	promo := 3.99
	p := product("p1", 4.99)
	p.IsOnPromotion = true
	p.PromotionalPrice = &promo
	if err := c.AddItem(p, 2); err != nil {
		t.Fatal(err)
	}
	if got := c.Snapshot().TotalAmount; got != 7.98 {
		t.Fatalf("promo total: got %v, want 7.98", got)
	}
}

func TestSubscribe(t *testing.T) {
	c := newCart(t)
	var last Snapshot
	calls := 0
	cancel := c.Subscribe(func(s Snapshot) {
		last = s
		calls++
	})

	if err := c.AddItem(product("p1", 4.99), 1); err != nil {
		t.Fatal(err)
	}
	if calls != 1 || last.TotalItems != 1 {
		t.Fatalf("subscriber not notified: calls=%d items=%d", calls, last.TotalItems)
	}

	cancel()
	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("subscriber called after cancel: %d", calls)
	}
}

func TestFileStorage_SurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")

	c, err := New(NewFileStorage(path))
	if err != nil {
		t.Fatal(err)
	}
	if err := c.AddItem(product("p1", 4.99), 2); err != nil {
		t.Fatal(err)
	}

	// reload from the same file
	c2, err := New(NewFileStorage(path))
	if err != nil {
		t.Fatal(err)
	}
	snap := c2.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].Quantity != 2 {
		t.Fatalf("cart not restored: %+v", snap.Items)
	}
	if snap.TotalAmount != 9.98 {
		t.Fatalf("restored total: got %v", snap.TotalAmount)
	}
}
