package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"heladeria/internal/domain"
)

func validOrderInput() OrderInput {
	return OrderInput{
		CustomerName:  "Juan Pérez",
		CustomerEmail: "juan@ejemplo.com",
		DeliveryAddress: domain.DeliveryAddress{
			Street: "Calle Mayor 1",
			City:   "Madrid",
		},
		Items: []OrderItemInput{
			{ID: "p1", Name: "Helado de Vainilla", Price: 4.99, Quantity: 2, Image: "🍦"},
			{ID: "p2", Name: "Tarta de Queso", Price: 6.99, Quantity: 1},
		},
	}
}

func TestCreateOrder_Total(t *testing.T) {
	ctx := context.Background()
	_, os := setup(t)

	o, err := os.Create(ctx, validOrderInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if o.TotalAmount != 16.97 {
		t.Fatalf("total: got %v, want 16.97", o.TotalAmount)
	}
	if o.Status != domain.OrderStatusPending {
		t.Fatalf("status: got %v", o.Status)
	}
	if o.ID == "" {
		t.Fatalf("no id assigned")
	}
}

func TestCreateOrder_NumberFormat(t *testing.T) {
	ctx := context.Background()
	_, os := setup(t)

	o, err := os.Create(ctx, validOrderInput())
	if err != nil {
		t.Fatal(err)
	}
	want := regexp.MustCompile(`^ORD-` + time.Now().UTC().Format("20060102") + `-\d{4}$`)
	if !want.MatchString(o.OrderNumber) {
		t.Fatalf("order number %q does not match %v", o.OrderNumber, want)
	}
}

func TestCreateOrder_SnapshotsItems(t *testing.T) {
	ctx := context.Background()
	_, os := setup(t)

	in := validOrderInput()
	o, err := os.Create(ctx, in)
	if err != nil {
		t.Fatal(err)
	}
	if len(o.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(o.Items))
	}
	first := o.Items[0].Product
	if first.Name != "Helado de Vainilla" || first.Price != 4.99 {
		t.Fatalf("snapshot mismatch: %+v", first)
	}
	// item without glyph gets the placeholder
	if o.Items[1].Product.Image != domain.DefaultImage {
		t.Fatalf("expected placeholder image, got %q", o.Items[1].Product.Image)
	}

	// mutating the input afterwards must not touch the stored order
	in.Items[0].Price = 99
	got, err := os.GetByID(ctx, o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Items[0].Product.Price != 4.99 {
		t.Fatalf("order items not snapshotted: %v", got.Items[0].Product.Price)
	}
}

func TestCreateOrder_ValidationEnumeratesFields(t *testing.T) {
	ctx := context.Background()
	_, os := setup(t)

	_, err := os.Create(ctx, OrderInput{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, f := range []string{"customerName", "customerEmail", "items", "deliveryAddress.street", "deliveryAddress.city"} {
		if _, ok := verr.Fields[f]; !ok {
			t.Fatalf("expected error for %q, fields: %v", f, verr.Fields)
		}
	}
}

func TestCreateOrder_EmailValidation(t *testing.T) {
	ctx := context.Background()
	_, os := setup(t)

	in := validOrderInput()
	in.CustomerEmail = ""
	_, err := os.Create(ctx, in)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := verr.Fields["customerEmail"]; !ok {
		t.Fatalf("missing email not named: %v", verr.Fields)
	}

	in.CustomerEmail = "not-an-email"
	_, err = os.Create(ctx, in)
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Fields["customerEmail"] != "Email inválido" {
		t.Fatalf("malformed email not rejected: %v", verr.Fields)
	}
}

func TestListOrders_NewestFirst(t *testing.T) {
	ctx := context.Background()
	_, os := setup(t)

	first, err := os.Create(ctx, validOrderInput())
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	second, err := os.Create(ctx, validOrderInput())
	if err != nil {
		t.Fatal(err)
	}

	list, err := os.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("orders not sorted newest-first: %v %v", list[0].CreatedAt, list[1].CreatedAt)
	}
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	_, os := setup(t)

	o, err := os.Create(ctx, validOrderInput())
	if err != nil {
		t.Fatal(err)
	}

	upd, err := os.UpdateStatus(ctx, o.ID, domain.OrderStatusProcessing)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if upd.Status != domain.OrderStatusProcessing {
		t.Fatalf("status not updated: %v", upd.Status)
	}

	var verr *ValidationError
	if _, err := os.UpdateStatus(ctx, o.ID, "shipped"); !errors.As(err, &verr) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
}
