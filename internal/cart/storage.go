package cart

import (
	"encoding/json"
	"os"

	"heladeria/internal/domain"
)

// MemoryStorage хранилище корзины в памяти, живёт в пределах сессии
type MemoryStorage struct {
	items []domain.CartItem
}

func NewMemoryStorage() *MemoryStorage { return &MemoryStorage{} }

func (m *MemoryStorage) Load() ([]domain.CartItem, error) {
	items := make([]domain.CartItem, len(m.items))
	copy(items, m.items)
	return items, nil
}

func (m *MemoryStorage) Save(items []domain.CartItem) error {
	m.items = make([]domain.CartItem, len(items))
	copy(m.items, items)
	return nil
}

// FileStorage хранит корзину в JSON-файле, переживая перезапуск процесса
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage { return &FileStorage{path: path} }

func (f *FileStorage) Load() ([]domain.CartItem, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		// повреждённый файл равнозначен пустой корзине
		return nil, nil
	}
	return items, nil
}

func (f *FileStorage) Save(items []domain.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o644)
}
