package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/openmuse/gallery/domain"
)

// artworkRepository 协调层，协调缓存和目录 API
type artworkRepository struct {
	catalog domain.ArtworkCatalog
	cache   domain.ArtworkCache

	objectGroup     singleflight.Group
	departmentGroup singleflight.Group
}

var _ domain.ArtworkRepository = (*artworkRepository)(nil)

// NewArtworkRepository creates the coordinator between the redis cache and
// the remote catalog.
func NewArtworkRepository(catalog domain.ArtworkCatalog, cache domain.ArtworkCache) *artworkRepository {
	return &artworkRepository{
		catalog: catalog,
		cache:   cache,
	}
}

func (r *artworkRepository) GetByID(ctx context.Context, id int64) (domain.Artwork, error) {
	artwork, err := r.cache.GetArtwork(ctx, id)
	if err == nil {
		return artwork, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		logrus.Warnf("cache get error for artwork %d: %v", id, err)
	}

	// singleflight collapses concurrent cards asking for the same object.
	key := "object:" + strconv.FormatInt(id, 10)
	result, err, _ := r.objectGroup.Do(key, func() (any, error) {
		a, err := r.catalog.GetObject(ctx, id)
		if err != nil {
			return nil, err
		}

		go func(art domain.Artwork) {
			if err := r.cache.SetArtwork(context.Background(), &art); err != nil {
				logrus.Warnf("failed to set artwork cache: %v", err)
			}
		}(a)

		return a, nil
	})
	if err != nil {
		return domain.Artwork{}, err
	}

	return result.(domain.Artwork), nil
}

// GetByIDs resolves a batch of ids from cache first, then the catalog.
// Individual misses and fetch errors drop the id from the result; a missing
// object is expected in bulk fetches and must not abort the batch.
func (r *artworkRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Artwork, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cached, err := r.cache.GetArtworkByIDs(ctx, ids)
	if err != nil {
		logrus.Warnf("cache batch get error: %v", err)
		cached = make([]domain.Artwork, len(ids))
	}

	res := make([]domain.Artwork, 0, len(ids))
	var fetched []domain.Artwork
	for i, id := range ids {
		if cached[i].ObjectID != 0 {
			res = append(res, cached[i])
			continue
		}

		a, err := r.catalog.GetObject(ctx, id)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				logrus.Warnf("failed to fetch artwork %d: %v", id, err)
			}
			continue
		}
		res = append(res, a)
		fetched = append(fetched, a)
	}

	if len(fetched) > 0 {
		go func(arts []domain.Artwork) {
			_ = r.cache.BatchSetArtwork(context.Background(), arts)
		}(fetched)
	}

	return res, nil
}

func (r *artworkRepository) SearchIDs(ctx context.Context, query string, imagesOnly bool) ([]int64, error) {
	return r.catalog.SearchIDs(ctx, query, imagesOnly)
}

func (r *artworkRepository) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	departments, err := r.cache.GetDepartments(ctx)
	if err == nil {
		return departments, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		logrus.Warnf("cache get error for departments: %v", err)
	}

	result, err, _ := r.departmentGroup.Do("departments", func() (any, error) {
		ds, err := r.catalog.ListDepartments(ctx)
		if err != nil {
			return nil, err
		}

		go func(ds []domain.Department) {
			if err := r.cache.SetDepartments(context.Background(), ds); err != nil {
				logrus.Warnf("failed to set departments cache: %v", err)
			}
		}(ds)

		return ds, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]domain.Department), nil
}

func (r *artworkRepository) ObjectIDsByDepartment(ctx context.Context, departmentID int64) ([]int64, error) {
	return r.catalog.ObjectIDsByDepartment(ctx, departmentID)
}
