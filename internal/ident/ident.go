// Package ident генерирует идентификаторы записей.
package ident

import (
	"math/rand/v2"
	"strconv"
	"sync"
	"time"
)

// Generator выдаёт идентификаторы вида prefix + base36(миллисекунды) + случайное число 1000..9999.
// Временная часть строго возрастает в пределах одного генератора.
type Generator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewGenerator создаёт генератор с указанным источником времени.
func NewGenerator(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{now: now}
}

// NewID возвращает новый идентификатор с указанным префиксом.
func (g *Generator) NewID(prefix string) string {
	g.mu.Lock()
	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	g.mu.Unlock()

	return prefix + strconv.FormatInt(ms, 36) + strconv.Itoa(1000+rand.IntN(9000))
}

var defaultGenerator = NewGenerator(nil)

// NewID возвращает новый идентификатор от генератора по умолчанию.
func NewID(prefix string) string {
	return defaultGenerator.NewID(prefix)
}
