// Package client типизированный клиент HTTP API витрины.
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"heladeria/internal/domain"
)

// APIError тело ошибки сервера
type APIError struct {
	Message string `json:"error"`
}

func (e *APIError) Error() string { return e.Message }

// Client обёртка над resty с методами под каждый эндпоинт
type Client struct {
	http *resty.Client
}

func New(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(10 * time.Second).
			SetRetryCount(0), // сервер не ретраит, клиент тоже: повтор — решение пользователя
	}
}

// CreateProductRequest платёж POST /products
type CreateProductRequest struct {
	Name             string          `json:"name"`
	Category         domain.Category `json:"category"`
	Price            float64         `json:"price"`
	Description      string          `json:"description,omitempty"`
	Image            string          `json:"image,omitempty"`
	ImageURL         string          `json:"imageUrl,omitempty"`
	IsOnPromotion    bool            `json:"isOnPromotion,omitempty"`
	PromotionalPrice *float64        `json:"promotionalPrice,omitempty"`
}

// CreateOrderItem позиция платежа POST /orders
type CreateOrderItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    float64         `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image,omitempty"`
	Category domain.Category `json:"category,omitempty"`
}

// CreateOrderRequest платёж POST /orders
type CreateOrderRequest struct {
	CustomerName    string                 `json:"customerName"`
	CustomerEmail   string                 `json:"customerEmail"`
	CustomerPhone   string                 `json:"customerPhone,omitempty"`
	DeliveryAddress domain.DeliveryAddress `json:"deliveryAddress"`
	Items           []CreateOrderItem      `json:"items"`
}

// GeneratedContent ответ POST /ai/generate
type GeneratedContent struct {
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Product(ctx context.Context, id string) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, req CreateProductRequest) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodPost, "/products", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+id, nil, nil)
}

func (c *Client) Orders(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	var out domain.Order
	if err := c.do(ctx, http.MethodPost, "/orders", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	var out domain.Order
	body := map[string]domain.OrderStatus{"status": status}
	if err := c.do(ctx, http.MethodPatch, "/orders/"+id+"/status", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GenerateContent(ctx context.Context, productName string, category domain.Category) (*GeneratedContent, error) {
	var out GeneratedContent
	body := map[string]any{"productName": productName, "category": category}
	if err := c.do(ctx, http.MethodPost, "/ai/generate", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if out != nil {
		req.SetResult(out)
	}
	apiErr := &APIError{}
	req.SetError(apiErr)

	resp, err := req.Execute(method, path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		if apiErr.Message != "" {
			return apiErr
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode())
	}
	return nil
}
