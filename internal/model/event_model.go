package model

import (
	"time"
)

// 出站事件类型
const (
	EventTypeDonationRecorded = "donation_recorded"
	EventTypeBadgeMinted      = "nft_minted"
	EventTypeBatchDonation    = "batch_event"
)

// EventModel 出站事件记录（捐赠完成后写入，由发布任务投递）
type EventModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	EventType    string `json:"event_type" gorm:"not null;index"`
	DonorAddress string `json:"donor_address" gorm:"not null"`
	EntityName   string `json:"entity_name"`
	Amount       string `json:"amount" gorm:"type:numeric(78,0)"`
	BadgeNonce   int64  `json:"badge_nonce"`
	Data         string `json:"data" gorm:"type:text"`
	Published    bool   `json:"published" gorm:"default:false;index"`
}

// TableName 自定义表名
func (EventModel) TableName() string {
	return "event"
}
