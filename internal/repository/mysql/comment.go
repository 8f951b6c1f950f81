package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/openmuse/gallery/domain"
	"github.com/openmuse/gallery/internal/repository/mysql/model"
)

type commentRepository struct {
	DB *gorm.DB
}

var _ domain.CommentRepository = (*commentRepository)(nil)

func NewCommentRepository(db *gorm.DB) *commentRepository {
	return &commentRepository{
		DB: db,
	}
}

func (r *commentRepository) Store(ctx context.Context, comment *domain.Comment) error {
	return r.DB.WithContext(ctx).Create(model.NewCommentFromDomain(comment)).Error
}

func (r *commentRepository) FetchByItem(ctx context.Context, itemID string) ([]domain.Comment, error) {
	var comments []model.Comment
	err := r.DB.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("creation_date DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	res := make([]domain.Comment, 0, len(comments))
	for i := range comments {
		res = append(res, comments[i].ToDomain())
	}
	return res, nil
}
