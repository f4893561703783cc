package slotcache

import (
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/constvars"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

// lruSlotCache keeps short lived registry snapshots for the availability
// endpoint. Entries are cloned on the way in and out.
//
// A reader that missed the cache may load a registry from before a booking
// and only then try to store it. Generations reject that late Add: every
// Invalidate bumps the doctor's counter, and Add only succeeds when the
// counter still equals the one read before the load.
type lruSlotCache struct {
	cache *expirable.LRU[string, models.RegistrySnapshot]
	Log   *zap.Logger

	mu          sync.Mutex
	generations map[string]uint64
}

func NewLRUSlotCache(size int, ttl time.Duration, logger *zap.Logger) contracts.SlotCache {
	if size <= 0 {
		size = 1
	}
	return &lruSlotCache{
		cache:       expirable.NewLRU[string, models.RegistrySnapshot](size, nil, ttl),
		Log:         logger,
		generations: make(map[string]uint64),
	}
}

func (c *lruSlotCache) Get(doctorID string) (models.RegistrySnapshot, bool) {
	snapshot, ok := c.cache.Get(doctorID)
	if !ok {
		c.Log.Debug("lruSlotCache.Get miss", zap.String(constvars.LoggingDoctorIDKey, doctorID))
		return models.RegistrySnapshot{}, false
	}
	return snapshot.Clone(), true
}

func (c *lruSlotCache) Generation(doctorID string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[doctorID]
}

func (c *lruSlotCache) Add(snapshot models.RegistrySnapshot, generation uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generations[snapshot.DoctorID] != generation {
		c.Log.Debug("lruSlotCache.Add skipped stale snapshot",
			zap.String(constvars.LoggingDoctorIDKey, snapshot.DoctorID),
		)
		return false
	}
	c.cache.Add(snapshot.DoctorID, snapshot.Clone())
	return true
}

func (c *lruSlotCache) Invalidate(doctorID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generations[doctorID]++
	c.cache.Remove(doctorID)
}
