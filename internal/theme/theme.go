// Package theme реализует трёхзначную настройку темы (light/dark/system).
// system разрешается по системной схеме; выбор пользователя сохраняется
// в хранилище под фиксированным ключом и переживает перезапуск.
package theme

import (
	"sync"
)

// Theme настройка темы либо её разрешённое значение
type Theme string

const (
	Light  Theme = "light"
	Dark   Theme = "dark"
	System Theme = "system"
)

// StorageKey ключ сохранённой настройки
const StorageKey = "theme-preference"

// Store долговременное хранилище настройки
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// SchemeSource сообщает текущую системную схему (Light или Dark)
type SchemeSource interface {
	Scheme() Theme
}

// Manager держит настройку темы и оповещает подписчиков о смене
// разрешённого значения
type Manager struct {
	mu     sync.Mutex
	pref   Theme
	store  Store
	source SchemeSource
	subs   []func(Theme)
}

// NewManager восстанавливает настройку из хранилища; отсутствующее или
// неизвестное значение трактуется как system
func NewManager(store Store, source SchemeSource) *Manager {
	pref := System
	if v, ok := store.Get(StorageKey); ok {
		if t := Theme(v); valid(t) {
			pref = t
		}
	}
	return &Manager{pref: pref, store: store, source: source}
}

// Theme возвращает сохранённую настройку (включая system)
func (m *Manager) Theme() Theme {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pref
}

// Resolved возвращает конкретное значение light/dark
func (m *Manager) Resolved() Theme {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolvedLocked()
}

func (m *Manager) resolvedLocked() Theme {
	if m.pref == System {
		return m.source.Scheme()
	}
	return m.pref
}

// SetTheme переводит настройку в t и сохраняет её
func (m *Manager) SetTheme(t Theme) error {
	if !valid(t) {
		t = System
	}
	m.mu.Lock()
	m.pref = t
	err := m.store.Set(StorageKey, string(t))
	resolved := m.resolvedLocked()
	subs := m.subsLocked()
	m.mu.Unlock()

	notify(subs, resolved)
	return err
}

// Toggle переключает разрешённую тему: из тёмной явно в light и наоборот.
// Возврата в system отсюда нет — выбор становится явным.
func (m *Manager) Toggle() error {
	if m.Resolved() == Dark {
		return m.SetTheme(Light)
	}
	return m.SetTheme(Dark)
}

// SchemeChanged вызывается платформенной обвязкой при смене системной схемы.
// Влияет только в состоянии system.
func (m *Manager) SchemeChanged() {
	m.mu.Lock()
	if m.pref != System {
		m.mu.Unlock()
		return
	}
	resolved := m.resolvedLocked()
	subs := m.subsLocked()
	m.mu.Unlock()

	notify(subs, resolved)
}

// Subscribe регистрирует наблюдателя разрешённой темы; возвращает отписку
func (m *Manager) Subscribe(fn func(Theme)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
	idx := len(m.subs) - 1
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.subs[idx] = nil
	}
}

func (m *Manager) subsLocked() []func(Theme) {
	subs := make([]func(Theme), len(m.subs))
	copy(subs, m.subs)
	return subs
}

func notify(subs []func(Theme), resolved Theme) {
	for _, fn := range subs {
		if fn != nil {
			fn(resolved)
		}
	}
}

func valid(t Theme) bool {
	return t == Light || t == Dark || t == System
}
