package model

import "time"

// ユーザーごとに1行だけ保持する（再ログイン/ローテーションで上書き）
type RefreshToken struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	UserID    int64  `gorm:"uniqueIndex;not null"`
	Token     string `gorm:"uniqueIndex;size:512;not null"`
	UpdatedAt time.Time
}
