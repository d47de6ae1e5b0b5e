// Package cart реализует корзину покупателя: слияние позиций по товару,
// ограничение количества и производные суммы. Состояние переживает перезапуск
// через подключаемое хранилище, подписчики получают снимок после каждой мутации.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"heladeria/internal/domain"
	"heladeria/internal/pricing"
)

const (
	minQuantity = 1
	maxQuantity = 100
)

// Storage долговременное хранилище содержимого корзины
type Storage interface {
	Load() ([]domain.CartItem, error)
	Save(items []domain.CartItem) error
}

// Snapshot неизменяемый срез состояния корзины
type Snapshot struct {
	Items       []domain.CartItem
	TotalItems  int
	TotalAmount float64
}

// Cart хранит позиции корзины и оповещает подписчиков об изменениях
type Cart struct {
	mu      sync.Mutex
	items   []domain.CartItem
	storage Storage
	subs    []func(Snapshot)
}

// New создаёт корзину, восстанавливая состояние из хранилища
func New(storage Storage) (*Cart, error) {
	items, err := storage.Load()
	if err != nil {
		return nil, err
	}
	return &Cart{items: items, storage: storage}, nil
}

// Subscribe регистрирует наблюдателя; возвращает функцию отписки
func (c *Cart) Subscribe(fn func(Snapshot)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
	idx := len(c.subs) - 1
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.subs[idx] = nil
	}
}

// AddItem добавляет товар; повторное добавление увеличивает количество
// существующей позиции вместо создания дубля
func (c *Cart) AddItem(p domain.Product, qty int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Product.ID == p.ID {
			c.items[i].Quantity = clamp(c.items[i].Quantity + qty)
			return c.commit()
		}
	}
	c.items = append(c.items, domain.CartItem{Product: p, Quantity: clamp(qty)})
	return c.commit()
}

// UpdateQuantity устанавливает количество позиции; qty < 1 удаляет позицию
func (c *Cart) UpdateQuantity(productID string, qty int) error {
	if qty < minQuantity {
		return c.RemoveItem(productID)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].Quantity = clamp(qty)
			return c.commit()
		}
	}
	return nil
}

// RemoveItem убирает позицию из корзины
func (c *Cart) RemoveItem(productID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return c.commit()
		}
	}
	return nil
}

// Clear опустошает корзину (вызывается после оформления заказа)
func (c *Cart) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	return c.commit()
}

// Snapshot возвращает копию позиций и пересчитанные итоги
func (c *Cart) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Cart) snapshotLocked() Snapshot {
	items := make([]domain.CartItem, len(c.items))
	copy(items, c.items)

	totalItems := 0
	total := decimal.Zero
	for _, it := range items {
		totalItems += it.Quantity
		total = total.Add(pricing.LineTotal(pricing.DisplayPrice(it.Product), it.Quantity))
	}
	return Snapshot{
		Items:       items,
		TotalItems:  totalItems,
		TotalAmount: pricing.RoundAmount(total),
	}
}

// commit сохраняет состояние и оповещает подписчиков; вызывается под локом
func (c *Cart) commit() error {
	if err := c.storage.Save(c.items); err != nil {
		return err
	}
	snap := c.snapshotLocked()
	for _, fn := range c.subs {
		if fn != nil {
			fn(snap)
		}
	}
	return nil
}

func clamp(qty int) int {
	if qty < minQuantity {
		return minQuantity
	}
	if qty > maxQuantity {
		return maxQuantity
	}
	return qty
}
