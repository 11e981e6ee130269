package model

import (
	"time"
)

// BadgeModel 捐赠徽章（每个捐赠者最多一枚，只更新元数据不重发）
type BadgeModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	DonorAddress string `json:"donor_address" gorm:"uniqueIndex;not null"`
	Nonce        int64  `json:"nonce" gorm:"uniqueIndex;not null"`
	Collection   string `json:"collection" gorm:"not null"`
	Name         string `json:"name" gorm:"not null"`
	Attributes   string `json:"attributes" gorm:"type:text"`
}

// TableName 自定义表名
func (BadgeModel) TableName() string {
	return "donor_badge"
}
