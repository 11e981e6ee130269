package model

import (
	"time"
)

// 计数器名称
const (
	CounterBadgeNonce = "badge_nonce" // 徽章全局序号（从1开始单调递增）
)

// CounterModel 全局单调计数器
type CounterModel struct {
	Name      string    `json:"name" gorm:"primaryKey"`
	UpdatedAt time.Time `json:"updated_at"`

	Value int64 `json:"value" gorm:"not null;default:0"`
}

// TableName 自定义表名
func (CounterModel) TableName() string {
	return "counter"
}
