package model

import (
	"time"
)

// GlobalStatsId 全局统计单行主键
const GlobalStatsId int64 = 1

// GlobalStatsModel 全网捐赠统计（单行，每次捐赠更新）
type GlobalStatsModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	UpdatedAt time.Time `json:"updated_at"`

	TotalDonationsAmount string `json:"total_donations_amount" gorm:"type:numeric(78,0);not null;default:0"`
	TotalDonationsCount  int64  `json:"total_donations_count" gorm:"not null;default:0"`
	TotalUniqueDonors    int64  `json:"total_unique_donors" gorm:"not null;default:0"`
	TotalBadgesMinted    int64  `json:"total_badges_minted" gorm:"not null;default:0"`
}

// TableName 自定义表名
func (GlobalStatsModel) TableName() string {
	return "global_stats"
}
