package model

import (
	"time"

	"github.com/openmuse/gallery/domain"
)

type Like struct {
	ItemID    string    `gorm:"column:item_id;primaryKey;size:32"`
	Likes     int64     `gorm:"column:likes;not null;default:0"`
	UpdatedAt time.Time `gorm:"type:datetime"`
}

func (Like) TableName() string {
	return "likes"
}

func (m *Like) ToDomain() domain.Like {
	return domain.Like{
		ItemID: m.ItemID,
		Likes:  m.Likes,
	}
}
