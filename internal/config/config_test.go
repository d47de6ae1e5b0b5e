package config

import (
	"strings"
	"testing"
)

func setAll(t *testing.T) {
	t.Helper()
	t.Setenv("PRODUCTS_TABLE", "products")
	t.Setenv("ORDERS_TABLE", "orders")
	t.Setenv("IMAGES_BUCKET", "images")
	t.Setenv("BEDROCK_REGION", "us-east-1")
}

func TestLoad(t *testing.T) {
	setAll(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ProductsTable != "products" || cfg.OrdersTable != "orders" {
		t.Fatalf("tables: %+v", cfg)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("default addr: %q", cfg.Addr)
	}
}

func TestLoad_MissingRequiredEnumeratesAll(t *testing.T) {
	setAll(t)
	t.Setenv("ORDERS_TABLE", "")
	t.Setenv("IMAGES_BUCKET", "")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "ORDERS_TABLE") || !strings.Contains(err.Error(), "IMAGES_BUCKET") {
		t.Fatalf("missing vars not enumerated: %v", err)
	}
}
