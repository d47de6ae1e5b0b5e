// Package aigen генерирует описание и картинку товара внешними моделями.
// Описание и картинка запрашиваются параллельно; сбой текстовой ветки валит
// весь запрос, сбой картинки (генерация или загрузка) деградирует до
// плейсхолдера — запрос при этом считается успешным.
package aigen

import (
	"context"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"heladeria/internal/domain"
	"heladeria/internal/storage"
)

// Placeholder глиф, подставляемый вместо несгенерированной картинки
const Placeholder = domain.DefaultImage

// TextModel генерирует маркетинговое описание товара
type TextModel interface {
	Describe(ctx context.Context, name string, category domain.Category) (string, error)
}

// ImageModel генерирует фотографию товара (PNG)
type ImageModel interface {
	Generate(ctx context.Context, name string, category domain.Category) ([]byte, error)
}

// Result ответ генератора
type Result struct {
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// Generator фасад над текстовой и графической моделями
type Generator struct {
	text   TextModel
	image  ImageModel
	images storage.ObjectStore
}

func NewGenerator(text TextModel, image ImageModel, images storage.ObjectStore) *Generator {
	return &Generator{text: text, image: image, images: images}
}

// Generate запрашивает обе ветки параллельно и собирает результат
func (g *Generator) Generate(ctx context.Context, name string, category domain.Category) (*Result, error) {
	type textOut struct {
		description string
		err         error
	}
	textCh := make(chan textOut, 1)
	imageCh := make(chan string, 1)

	go func() {
		d, err := g.text.Describe(ctx, name, category)
		textCh <- textOut{description: d, err: err}
	}()
	go func() {
		imageCh <- g.generateImage(ctx, name, category)
	}()

	text := <-textCh
	imageURL := <-imageCh
	if text.err != nil {
		return nil, text.err
	}
	return &Result{Description: text.description, ImageURL: imageURL}, nil
}

// generateImage никогда не возвращает ошибку: любой сбой ветки картинки
// заканчивается плейсхолдером
func (g *Generator) generateImage(ctx context.Context, name string, category domain.Category) string {
	data, err := g.image.Generate(ctx, name, category)
	if err != nil {
		log.WithError(err).WithField("product", name).Warn("image generation failed, using placeholder")
		return Placeholder
	}

	key := "products/" + uuid.NewString() + ".png"
	url, err := g.images.Put(ctx, key, data, "image/png")
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("image upload failed, using placeholder")
		return Placeholder
	}
	return url
}
