package model

import (
	"time"
)

// DonationRecordModel 捐赠记录（只追加，不修改不删除）
type DonationRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	DonorAddress string `json:"donor_address" gorm:"index;not null"`
	Amount       string `json:"amount" gorm:"type:numeric(78,0);not null"`
	Timestamp    int64  `json:"timestamp" gorm:"not null"`
	EntityName   string `json:"entity_name" gorm:"not null"`
	EntityType   string `json:"entity_type" gorm:"not null"`
	BadgeNonce   int64  `json:"badge_nonce" gorm:"not null"`
}

// TableName 自定义表名
func (DonationRecordModel) TableName() string {
	return "donation_record"
}
