// Заполняет каталог стартовым ассортиментом через HTTP API.
package main

import (
	"context"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"heladeria/internal/client"
	"heladeria/internal/domain"
)

var catalog = []client.CreateProductRequest{
	{Name: "Helado de Vainilla Clásico", Category: domain.CategoryIceCream, Price: 4.99,
		Description: "Cremoso helado de vainilla natural con un toque de extracto de Madagascar. Perfecto para cualquier ocasión.", Image: "🍦"},
	{Name: "Helado de Chocolate Belga", Category: domain.CategoryIceCream, Price: 5.49,
		Description: "Intenso helado de chocolate elaborado con cacao belga premium. Una experiencia chocolatosa inolvidable.", Image: "🍫"},
	{Name: "Helado de Fresa Natural", Category: domain.CategoryIceCream, Price: 5.29,
		Description: "Refrescante helado de fresas frescas con trozos de fruta real. Dulce y delicioso.", Image: "🍓"},
	{Name: "Helado de Menta con Chips", Category: domain.CategoryIceCream, Price: 5.49,
		Description: "Refrescante helado de menta con chips de chocolate oscuro. Una combinación perfecta.", Image: "🌿"},
	{Name: "Helado de Cookies & Cream", Category: domain.CategoryIceCream, Price: 5.99,
		Description: "Cremoso helado de vainilla con generosos trozos de galletas Oreo. Un clásico irresistible.", Image: "🍪"},
	{Name: "Tarta de Queso New York", Category: domain.CategoryDessert, Price: 6.99,
		Description: "Clásica tarta de queso estilo Nueva York con base de galleta y cobertura de frutos rojos.", Image: "🍰"},
	{Name: "Brownie de Chocolate", Category: domain.CategoryDessert, Price: 4.49,
		Description: "Brownie húmedo y denso de chocolate con nueces. Servido tibio con helado de vainilla.", Image: "🧁"},
	{Name: "Tiramisú Italiano", Category: domain.CategoryDessert, Price: 7.49,
		Description: "Auténtico tiramisú italiano con capas de bizcocho empapado en café y crema de mascarpone.", Image: "☕"},
	{Name: "Tarta de Manzana Casera", Category: domain.CategoryDessert, Price: 5.99,
		Description: "Tarta de manzana tradicional con canela y masa crujiente. Perfecta con helado de vainilla.", Image: "🥧"},
	{Name: "Mousse de Chocolate", Category: domain.CategoryDessert, Price: 5.49,
		Description: "Suave y aireado mousse de chocolate oscuro con crema batida. Una delicia ligera y elegante.", Image: "🍮"},
}

func main() {
	baseURL := os.Getenv("API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	api := client.New(baseURL)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	log.Infof("seeding %d products into %s", len(catalog), baseURL)

	var created, failed int
	for _, req := range catalog {
		p, err := api.CreateProduct(ctx, req)
		if err != nil {
			log.WithError(err).Errorf("create %q", req.Name)
			failed++
			continue
		}
		log.Infof("created %q (%s)", p.Name, p.ID)
		created++
	}

	log.Infof("done: %d created, %d failed", created, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
