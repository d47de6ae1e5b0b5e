package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"heladeria/internal/domain"
	"heladeria/internal/repository"
)

// ProductService инкапсулирует бизнес-логику вокруг товаров: валидацию
// акционной цены, мягкое удаление и слияние частичных обновлений
type ProductService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// ProductInput полный платёж создания товара
type ProductInput struct {
	Name             string
	Category         domain.Category
	Price            float64
	Description      string
	Image            string
	ImageURL         string
	IsOnPromotion    bool
	PromotionalPrice *float64
}

// ProductUpdate частичное обновление: nil-поля не трогаются
type ProductUpdate struct {
	Name             *string
	Category         *domain.Category
	Price            *float64
	Description      *string
	Image            *string
	ImageURL         *string
	IsOnPromotion    *bool
	PromotionalPrice *float64
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	fields := map[string]string{}
	if in.Name == "" {
		fields["name"] = "El nombre es requerido"
	}
	switch {
	case in.Category == "":
		fields["category"] = "La categoría es requerida"
	case !in.Category.Valid():
		fields["category"] = "Categoría desconocida"
	}
	if in.Price <= 0 {
		fields["price"] = "El precio debe ser mayor a 0"
	}
	validatePromotion(fields, in.IsOnPromotion, in.PromotionalPrice, in.Price)
	if err := newValidationError(fields); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p := domain.Product{
		ID:            uuid.NewString(),
		Name:          in.Name,
		Category:      in.Category,
		Price:         in.Price,
		Description:   in.Description,
		Image:         in.Image,
		ImageURL:      in.ImageURL,
		IsActive:      true,
		IsOnPromotion: in.IsOnPromotion,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if p.Image == "" {
		p.Image = domain.DefaultImage
	}
	if in.IsOnPromotion {
		p.PromotionalPrice = in.PromotionalPrice
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID возвращает только активный товар; деактивированные для витрины
// не существуют
func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (s *ProductService) List(ctx context.Context, category domain.Category) ([]domain.Product, error) {
	return s.repo.List(ctx, repository.ProductFilter{Category: category})
}

func (s *ProductService) Update(ctx context.Context, id string, upd ProductUpdate) (*domain.Product, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !existing.IsActive {
		return nil, repository.ErrNotFound
	}

	fields := map[string]string{}
	if upd.Name != nil && *upd.Name == "" {
		fields["name"] = "El nombre es requerido"
	}
	if upd.Category != nil && !upd.Category.Valid() {
		fields["category"] = "Categoría desconocida"
	}
	if upd.Price != nil && *upd.Price <= 0 {
		fields["price"] = "El precio debe ser mayor a 0"
	}
	// акционная цена проверяется против цены из этого же запроса,
	// а при её отсутствии — против сохранённой
	if upd.IsOnPromotion != nil && *upd.IsOnPromotion {
		price := existing.Price
		if upd.Price != nil {
			price = *upd.Price
		}
		validatePromotion(fields, true, upd.PromotionalPrice, price)
	}
	if err := newValidationError(fields); err != nil {
		return nil, err
	}

	p := *existing
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Category != nil {
		p.Category = *upd.Category
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Image != nil {
		p.Image = *upd.Image
	}
	if upd.ImageURL != nil {
		p.ImageURL = *upd.ImageURL
	}
	if upd.IsOnPromotion != nil {
		p.IsOnPromotion = *upd.IsOnPromotion
		if p.IsOnPromotion {
			p.PromotionalPrice = upd.PromotionalPrice
		} else {
			// выключение акции убирает акционную цену
			p.PromotionalPrice = nil
		}
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete деактивирует товар; запись остаётся, чтобы исторические заказы
// не потеряли ссылки
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !p.IsActive {
		return repository.ErrNotFound
	}
	p.IsActive = false
	p.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, p)
}

func validatePromotion(fields map[string]string, isOn bool, promo *float64, price float64) {
	if !isOn {
		return
	}
	switch {
	case promo == nil:
		fields["promotionalPrice"] = "El precio promocional es requerido cuando la promoción está activa"
	case *promo < 0:
		fields["promotionalPrice"] = "El precio promocional debe ser mayor a 0"
	case *promo >= price:
		fields["promotionalPrice"] = "El precio promocional debe ser menor al precio original"
	}
}
