package memory

import (
	"time"

	"asknova-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// DatasetCache keeps recent dataset search results per keyword so repeated
// turns on the same topic don't re-hit the provider.
type DatasetCache struct {
	cache *cache.Cache
}

func NewDatasetCache() *DatasetCache {
	// 15 minute TTL, purge sweep every 5 minutes.
	c := cache.New(15*time.Minute, 5*time.Minute)
	return &DatasetCache{cache: c}
}

func (r *DatasetCache) Save(keyword string, datasets []entity.DatasetDescriptor) {
	r.cache.Set(keyword, datasets, cache.DefaultExpiration)
}

func (r *DatasetCache) Get(keyword string) ([]entity.DatasetDescriptor, bool) {
	if x, found := r.cache.Get(keyword); found {
		return x.([]entity.DatasetDescriptor), true
	}
	return nil, false
}

func (r *DatasetCache) Delete(keyword string) {
	r.cache.Delete(keyword)
}
