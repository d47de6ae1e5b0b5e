package domain

import "time"

// Category категория товара витрины
type Category string

const (
	CategoryIceCream Category = "helado"
	CategoryDessert  Category = "postre"
)

// Valid проверяет, что категория одна из известных
func (c Category) Valid() bool {
	return c == CategoryIceCream || c == CategoryDessert
}

// DefaultImage плейсхолдер, когда у товара нет ни глифа, ни загруженной картинки
const DefaultImage = "🍦"

// Product представляет товар витрины (мороженое или десерт)
type Product struct {
	ID               string    `json:"id" dynamodbav:"id"`
	Name             string    `json:"name" dynamodbav:"name"`
	Category         Category  `json:"category" dynamodbav:"category"`
	Price            float64   `json:"price" dynamodbav:"price"`
	Description      string    `json:"description,omitempty" dynamodbav:"description"`
	Image            string    `json:"image,omitempty" dynamodbav:"image"`
	ImageURL         string    `json:"imageUrl,omitempty" dynamodbav:"imageUrl"`
	IsActive         bool      `json:"isActive" dynamodbav:"isActive"`
	IsOnPromotion    bool      `json:"isOnPromotion" dynamodbav:"isOnPromotion"`
	PromotionalPrice *float64  `json:"promotionalPrice,omitempty" dynamodbav:"promotionalPrice,omitempty"`
	CreatedAt        time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}

// CartItem позиция корзины или заказа: снимок товара плюс количество
type CartItem struct {
	Product  Product `json:"product" dynamodbav:"product"`
	Quantity int     `json:"quantity" dynamodbav:"quantity"`
}

// DeliveryAddress адрес доставки; обязательны только улица и город
type DeliveryAddress struct {
	Street  string `json:"street" dynamodbav:"street"`
	City    string `json:"city" dynamodbav:"city"`
	State   string `json:"state,omitempty" dynamodbav:"state"`
	ZipCode string `json:"zipCode,omitempty" dynamodbav:"zipCode"`
}

// OrderStatus тип статуса заказа
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid проверяет, что статус один из известных
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order сущность заказа. Позиции хранят снимки товаров на момент оформления,
// поэтому последующие правки и деактивации товаров заказ не затрагивают.
type Order struct {
	ID              string          `json:"id" dynamodbav:"id"`
	OrderNumber     string          `json:"orderNumber" dynamodbav:"orderNumber"`
	CustomerName    string          `json:"customerName" dynamodbav:"customerName"`
	CustomerEmail   string          `json:"customerEmail" dynamodbav:"customerEmail"`
	CustomerPhone   string          `json:"customerPhone,omitempty" dynamodbav:"customerPhone"`
	DeliveryAddress DeliveryAddress `json:"deliveryAddress" dynamodbav:"deliveryAddress"`
	Items           []CartItem      `json:"items" dynamodbav:"items"`
	TotalAmount     float64         `json:"totalAmount" dynamodbav:"totalAmount"`
	Status          OrderStatus     `json:"status" dynamodbav:"status"`
	CreatedAt       time.Time       `json:"createdAt" dynamodbav:"createdAt"`
}
