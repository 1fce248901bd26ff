package model

import "time"

// (market, open_time) が主キーの1分足
type Candle struct {
	Market   string    `gorm:"primaryKey;size:20"`
	OpenTime time.Time `gorm:"primaryKey"`
	Open     float64   `gorm:"not null"`
	High     float64   `gorm:"not null"`
	Low      float64   `gorm:"not null"`
	Close    float64   `gorm:"not null"`
	Volume   float64   `gorm:"not null"`
}
