package models

import "time"

// EmissionsData は特定の地域と時間帯の炭素強度を表します。
// emissions_data テーブルの行としても使われます。
type EmissionsData struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Location  string    `gorm:"index;not null" json:"location"`
	Time      time.Time `gorm:"index;not null" json:"time"`
	Rating    float64   `gorm:"not null" json:"rating"`
	Duration  int       `gorm:"not null;default:0" json:"duration"` // 分単位
	CreatedAt time.Time `json:"-"`
}
