// Package store держит рабочие коллекции записей в памяти и синхронно сохраняет их после
// каждого изменения.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/mmeshcher/marketplace-bot/internal/repository"
)

// ErrNotFound возвращается, если запись с указанным идентификатором отсутствует.
var ErrNotFound = errors.New("record not found")

// Record описывает запись, адресуемую по идентификатору.
type Record interface {
	RecordID() string
}

// Backend описывает долговременное хранилище именованных коллекций.
type Backend interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
}

// Collection хранит упорядоченные записи и служит единственным источником истины на время жизни процесса.
// Изменение и последующее сохранение выполняются под одной блокировкой.
type Collection[T Record] struct {
	mu      sync.RWMutex
	name    string
	backend Backend
	items   []T
}

// Open загружает коллекцию. Отсутствующая коллекция создаётся пустой и сразу сохраняется.
func Open[T Record](ctx context.Context, backend Backend, name string) (*Collection[T], error) {
	c := &Collection[T]{
		name:    name,
		backend: backend,
		items:   []T{},
	}

	data, err := backend.Load(ctx, name)
	if errors.Is(err, repository.ErrCollectionNotFound) {
		if err := c.persist(ctx, c.items); err != nil {
			return nil, err
		}
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	if err := json.Unmarshal(data, &c.items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	if c.items == nil {
		c.items = []T{}
	}

	return c, nil
}

// Name возвращает имя коллекции.
func (c *Collection[T]) Name() string {
	return c.name
}

// Len возвращает число записей.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// All возвращает копию всех записей в порядке добавления.
func (c *Collection[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

// Get ищет запись по идентификатору.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Append добавляет запись в конец коллекции и сохраняет коллекцию.
func (c *Collection[T]) Append(ctx context.Context, rec T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := append(slices.Clone(c.items), rec)
	if err := c.persist(ctx, next); err != nil {
		return err
	}
	c.items = next
	return nil
}

// Update применяет fn к записи с указанным идентификатором и сохраняет коллекцию.
func (c *Collection[T]) Update(ctx context.Context, id string, fn func(*T)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	i := c.indexOf(id)
	if i < 0 {
		return zero, ErrNotFound
	}

	next := slices.Clone(c.items)
	fn(&next[i])
	if err := c.persist(ctx, next); err != nil {
		return zero, err
	}
	c.items = next
	return next[i], nil
}

// Remove удаляет запись с указанным идентификатором и сохраняет коллекцию.
func (c *Collection[T]) Remove(ctx context.Context, id string) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	i := c.indexOf(id)
	if i < 0 {
		return zero, ErrNotFound
	}

	removed := c.items[i]
	next := slices.Delete(slices.Clone(c.items), i, i+1)
	if err := c.persist(ctx, next); err != nil {
		return zero, err
	}
	c.items = next
	return removed, nil
}

func (c *Collection[T]) indexOf(id string) int {
	return slices.IndexFunc(c.items, func(rec T) bool { return rec.RecordID() == id })
}

func (c *Collection[T]) persist(ctx context.Context, items []T) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}
	if err := c.backend.Save(ctx, c.name, data); err != nil {
		return fmt.Errorf("save %s: %w", c.name, err)
	}
	return nil
}
