package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/openmuse/gallery/domain"
)

const (
	KeyArtworks    = "artwork:%d"
	KeyDepartments = "artwork:departments"

	artworkTTL    = 10 * time.Minute
	departmentTTL = 24 * time.Hour
)

// artworkCache caches catalog objects and the departments listing so
// repeated card views do not re-hit the rate-limited catalog.
type artworkCache struct {
	client *redis.Client
}

var _ domain.ArtworkCache = (*artworkCache)(nil)

func NewArtworkCache(client *redis.Client) *artworkCache {
	return &artworkCache{
		client,
	}
}

func (c *artworkCache) GetArtwork(ctx context.Context, id int64) (res domain.Artwork, err error) {
	key := fmt.Sprintf(KeyArtworks, id)
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Artwork{}, domain.ErrCacheMiss
	} else if err != nil {
		return domain.Artwork{}, err
	}
	if err = json.Unmarshal(data, &res); err != nil {
		return domain.Artwork{}, err
	}
	return
}

// GetArtworkByIDs returns one slot per requested id; slots for uncached ids
// hold the zero Artwork.
func (c *artworkCache) GetArtworkByIDs(ctx context.Context, ids []int64) ([]domain.Artwork, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = fmt.Sprintf(KeyArtworks, id)
	}

	jsonList, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	artworks := make([]domain.Artwork, len(ids))
	for i, val := range jsonList {
		if val == nil {
			continue
		}

		var a domain.Artwork
		if str, ok := val.(string); ok {
			_ = json.Unmarshal([]byte(str), &a)
			artworks[i] = a
		}
	}

	return artworks, nil
}

func (c *artworkCache) SetArtwork(ctx context.Context, a *domain.Artwork) (err error) {
	key := fmt.Sprintf(KeyArtworks, a.ObjectID)
	data, err := json.Marshal(a)
	if err != nil {
		return
	}
	err = c.client.Set(ctx, key, data, artworkTTL).Err()
	return
}

func (c *artworkCache) BatchSetArtwork(ctx context.Context, as []domain.Artwork) error {
	if len(as) == 0 {
		return nil
	}

	pipe := c.client.Pipeline()
	for i := range as {
		data, err := json.Marshal(as[i])
		if err != nil {
			logrus.Warnf("failed to marshal artwork for cache, ID: %d, err: %v", as[i].ObjectID, err)
			continue
		}
		key := fmt.Sprintf(KeyArtworks, as[i].ObjectID)
		pipe.Set(ctx, key, data, artworkTTL)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (c *artworkCache) GetDepartments(ctx context.Context) ([]domain.Department, error) {
	data, err := c.client.Get(ctx, KeyDepartments).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	} else if err != nil {
		return nil, err
	}

	var res []domain.Department
	if err = json.Unmarshal(data, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *artworkCache) SetDepartments(ctx context.Context, ds []domain.Department) error {
	data, err := json.Marshal(ds)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, KeyDepartments, data, departmentTTL).Err()
}
