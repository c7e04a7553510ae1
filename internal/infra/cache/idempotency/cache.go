package idempotency

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// DefaultCleanupInterval период очистки просроченных ключей
const DefaultCleanupInterval = 10 * time.Minute

// Cache хранит соответствие ключа идемпотентности ID созданного бронирования
// Кэш локален для процесса; между экземплярами сервиса дубли ловит уникальный индекс
type Cache struct {
	store *cache.Cache
	ttl   time.Duration
}

// New создает кэш с заданным временем жизни ключа
func New(ttl time.Duration) *Cache {
	return &Cache{
		store: cache.New(ttl, DefaultCleanupInterval),
		ttl:   ttl,
	}
}

// Get возвращает ID бронирования по ключу
func (c *Cache) Get(key string) (int64, bool) {
	value, found := c.store.Get(key)
	if !found {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}

// Put запоминает ID бронирования для ключа
func (c *Cache) Put(key string, bookingID int64) {
	c.store.Set(key, bookingID, c.ttl)
}

// Forget удаляет ключ (например, после удаления бронирования)
func (c *Cache) Forget(key string) {
	c.store.Delete(key)
}
