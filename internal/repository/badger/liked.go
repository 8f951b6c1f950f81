package badger

import (
	"context"
	"encoding/json"
	"errors"

	badgerdb "github.com/dgraph-io/badger/v4"

	"github.com/openmuse/gallery/domain"
)

// KeyLikedArtworks is the fixed key the serialized liked list lives under.
const KeyLikedArtworks = "likedArtworks"

// LikedArchive persists the liked-artwork list in a local badger database
// so it survives restarts.
type LikedArchive struct {
	db *badgerdb.DB
}

var _ domain.LikedArchive = (*LikedArchive)(nil)

func NewLikedArchive(db *badgerdb.DB) *LikedArchive {
	return &LikedArchive{
		db: db,
	}
}

func (a *LikedArchive) Load(_ context.Context) ([]domain.LikedArtwork, error) {
	var items []domain.LikedArtwork
	err := a.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get([]byte(KeyLikedArtworks))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &items)
		})
	})
	if errors.Is(err, badgerdb.ErrKeyNotFound) {
		// First run, nothing persisted yet.
		return []domain.LikedArtwork{}, nil
	}
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.LikedArtwork{}
	}
	return items, nil
}

func (a *LikedArchive) Save(_ context.Context, items []domain.LikedArtwork) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return a.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set([]byte(KeyLikedArtworks), data)
	})
}
