package model

import "time"

type Post struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	AuthorID  *int64 `gorm:"index"`
	Author    *User
	Title     string `gorm:"size:200;not null"`
	Content   string `gorm:"type:text;not null"`
	Market    string `gorm:"size:20;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
