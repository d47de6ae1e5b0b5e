// Package config читает конфигурацию из переменных окружения.
// Обязательные значения не имеют дефолтов: их отсутствие — ошибка деплоя,
// а не ситуация, которую нужно обрабатывать в рантайме.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config конфигурация сервиса
type Config struct {
	Addr          string // адрес HTTP-сервера
	ProductsTable string // таблица товаров DynamoDB
	OrdersTable   string // таблица заказов DynamoDB
	ImagesBucket  string // бакет S3 с картинками
	BedrockRegion string // регион эндпоинта Bedrock
}

// Load собирает конфигурацию; перечисляет все отсутствующие обязательные
// переменные разом
func Load() (*Config, error) {
	cfg := &Config{
		Addr: getEnv("HTTP_ADDR", ":8080"),
	}

	var missing []string
	for _, v := range []struct {
		name string
		dst  *string
	}{
		{"PRODUCTS_TABLE", &cfg.ProductsTable},
		{"ORDERS_TABLE", &cfg.OrdersTable},
		{"IMAGES_BUCKET", &cfg.ImagesBucket},
		{"BEDROCK_REGION", &cfg.BedrockRegion},
	} {
		val := os.Getenv(v.name)
		if val == "" {
			missing = append(missing, v.name)
			continue
		}
		*v.dst = val
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
