package model

import "time"

// Board 板块，文章归属于唯一板块
type Board struct {
	ID        string `gorm:"primaryKey;type:varchar(50)"`
	Name      string `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Board) TableName() string {
	return "boards"
}
