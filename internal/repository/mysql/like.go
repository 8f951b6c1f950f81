package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/openmuse/gallery/domain"
	"github.com/openmuse/gallery/internal/repository/mysql/model"
)

type likeRepository struct {
	DB *gorm.DB
}

var _ domain.LikeRepository = (*likeRepository)(nil)

func NewLikeRepository(db *gorm.DB) *likeRepository {
	return &likeRepository{
		DB: db,
	}
}

func (r *likeRepository) Get(ctx context.Context, itemID string) (int64, error) {
	var like model.Like
	err := r.DB.WithContext(ctx).First(&like, "item_id = ?", itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, domain.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return like.Likes, nil
}

func (r *likeRepository) Increment(ctx context.Context, itemID string) (int64, error) {
	err := r.DB.WithContext(ctx).
		Exec("INSERT INTO likes (item_id, likes, updated_at) VALUES (?, 1, NOW()) ON DUPLICATE KEY UPDATE likes = likes + 1, updated_at = NOW()", itemID).
		Error
	if err != nil {
		return 0, err
	}

	var like model.Like
	if err := r.DB.WithContext(ctx).First(&like, "item_id = ?", itemID).Error; err != nil {
		return 0, err
	}
	return like.Likes, nil
}
