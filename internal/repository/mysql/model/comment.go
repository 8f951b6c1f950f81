package model

import (
	"time"

	"github.com/openmuse/gallery/domain"
)

type Comment struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	ItemID       string    `gorm:"column:item_id;not null;size:32;index"`
	Username     string    `gorm:"size:50;not null"`
	Comment      string    `gorm:"type:text;not null"`
	CreationDate time.Time `gorm:"column:creation_date;type:datetime"`
}

func (Comment) TableName() string {
	return "comments"
}

func NewCommentFromDomain(c *domain.Comment) *Comment {
	created, err := time.Parse(time.RFC3339, c.CreationDate)
	if err != nil {
		created = time.Now().UTC()
	}
	return &Comment{
		ItemID:       c.ItemID,
		Username:     c.Username,
		Comment:      c.Comment,
		CreationDate: created,
	}
}

func (m *Comment) ToDomain() domain.Comment {
	return domain.Comment{
		ItemID:       m.ItemID,
		Username:     m.Username,
		Comment:      m.Comment,
		CreationDate: m.CreationDate.UTC().Format(time.RFC3339),
	}
}
