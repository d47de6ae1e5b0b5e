package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"heladeria/internal/domain"
	"heladeria/internal/pricing"
	"heladeria/internal/repository"
)

// OrderService реализует оформление заказа: валидацию с перечислением всех
// ошибок, снимки позиций и подсчёт итога
type OrderService struct {
	orders repository.OrderRepository
}

func NewOrderService(orders repository.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// OrderItemInput позиция из корзины на момент оформления; цена приходит
// снимком, а не ссылкой на живой товар
type OrderItemInput struct {
	ID       string
	Name     string
	Price    float64
	Quantity int
	Image    string
	Category domain.Category
}

// OrderInput платёж оформления заказа
type OrderInput struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	DeliveryAddress domain.DeliveryAddress
	Items           []OrderItemInput
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Create валидирует входные данные, присваивает номер заказа и сохраняет его.
// Сбой записи отдаётся наверх как есть; частичного состояния не остаётся,
// повторная попытка — дело покупателя.
func (s *OrderService) Create(ctx context.Context, in OrderInput) (*domain.Order, error) {
	if err := validateOrder(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	total := decimal.Zero
	items := make([]domain.CartItem, 0, len(in.Items))
	for _, it := range in.Items {
		total = total.Add(pricing.LineTotal(it.Price, it.Quantity))

		image := it.Image
		if image == "" {
			image = domain.DefaultImage
		}
		category := it.Category
		if category == "" {
			category = domain.CategoryIceCream
		}
		items = append(items, domain.CartItem{
			Product: domain.Product{
				ID:        it.ID,
				Name:      it.Name,
				Price:     it.Price,
				Image:     image,
				Category:  category,
				IsActive:  true,
				CreatedAt: now,
				UpdatedAt: now,
			},
			Quantity: it.Quantity,
		})
	}

	o := domain.Order{
		ID:              uuid.NewString(),
		OrderNumber:     newOrderNumber(now),
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		CustomerPhone:   in.CustomerPhone,
		DeliveryAddress: in.DeliveryAddress,
		Items:           items,
		TotalAmount:     pricing.RoundAmount(total),
		Status:          domain.OrderStatusPending,
		CreatedAt:       now,
	}
	if err := s.orders.Create(ctx, &o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &o, nil
}

func (s *OrderService) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.orders.GetByID(ctx, id)
}

// List возвращает заказы от новых к старым
func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	out, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateStatus переводит заказ в новый статус (админская операция)
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	if !status.Valid() {
		return nil, newValidationError(map[string]string{"status": "Estado desconocido"})
	}
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Status = status
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func validateOrder(in OrderInput) error {
	fields := map[string]string{}
	if in.CustomerName == "" {
		fields["customerName"] = "El nombre es requerido"
	}
	switch {
	case in.CustomerEmail == "":
		fields["customerEmail"] = "El email es requerido"
	case !emailPattern.MatchString(in.CustomerEmail):
		fields["customerEmail"] = "Email inválido"
	}
	if len(in.Items) == 0 {
		fields["items"] = "El pedido debe contener al menos un artículo"
	}
	for _, it := range in.Items {
		if it.ID == "" || it.Quantity < 1 || it.Price < 0 {
			fields["items"] = "Artículo inválido"
			break
		}
	}
	if in.DeliveryAddress.Street == "" {
		fields["deliveryAddress.street"] = "La calle es requerida"
	}
	if in.DeliveryAddress.City == "" {
		fields["deliveryAddress.city"] = "La ciudad es requerida"
	}
	return newValidationError(fields)
}

// newOrderNumber строит человекочитаемый номер ORD-YYYYMMDD-NNNN.
// Дата берётся по UTC.
func newOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%d", now.UTC().Format("20060102"), 1000+rand.IntN(9000))
}
