package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"foto-orders-service/internal/domain"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// CatalogLoader fetches catalog content from a backing store (e.g., Postgres).
type CatalogLoader interface {
	LoadCatalog(ctx context.Context, catalogID string) (domain.Catalog, error)
}

// CatalogRepository caches the full catalog document in Redis and falls back
// to a loader on cache miss. The pricing engine needs every question field
// (tiers, dependencies, option modifiers), so the whole document is stored
// as JSON under: SET catalog:{catalogID} {json} with TTL.
type CatalogRepository struct {
	client *redis.Client
	loader CatalogLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewCatalogRepository(client *redis.Client, loader CatalogLoader, ttl time.Duration) *CatalogRepository {
	return &CatalogRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *CatalogRepository) GetCatalog(ctx context.Context, catalogID string) (domain.Catalog, error) {
	key := r.key(catalogID)

	if raw, err := r.client.Get(ctx, key).Bytes(); err == nil && len(raw) > 0 {
		if catalog, ok := decodeCatalog(raw); ok {
			return catalog, nil
		}
	}

	result, err, _ := r.sf.Do(catalogID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if raw, err := r.client.Get(ctx, key).Bytes(); err == nil && len(raw) > 0 {
			if catalog, ok := decodeCatalog(raw); ok {
				return catalog, nil
			}
		}

		catalog, err := r.loader.LoadCatalog(ctx, catalogID)
		if err != nil {
			return domain.Catalog{}, err
		}

		if raw, err := json.Marshal(catalog); err == nil {
			// best-effort: a failed cache write only costs the next loader hit
			_ = r.client.Set(ctx, key, raw, r.ttlWithJitter()).Err()
		}
		return catalog, nil
	})
	if err != nil {
		return domain.Catalog{}, err
	}
	return result.(domain.Catalog), nil
}

func (r *CatalogRepository) key(catalogID string) string {
	return "catalog:" + catalogID
}

func decodeCatalog(raw []byte) (domain.Catalog, bool) {
	var catalog domain.Catalog
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return domain.Catalog{}, false
	}
	return catalog, true
}

func (r *CatalogRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
