package model

import (
	"time"
)

// DonorProfileModel 捐赠者档案（每个捐赠者一条，首次捐赠时创建）
type DonorProfileModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Address               string `json:"address" gorm:"uniqueIndex;not null"`
	TotalDonated          string `json:"total_donated" gorm:"type:numeric(78,0);not null;default:0"`
	DonationCount         int64  `json:"donation_count" gorm:"not null;default:0"`
	FirstDonationAt       int64  `json:"first_donation_at" gorm:"not null"`
	LastDonationAt        int64  `json:"last_donation_at" gorm:"not null"`
	HighestSingleDonation string `json:"highest_single_donation" gorm:"type:numeric(78,0);not null;default:0"`
	FavoriteCharity       string `json:"favorite_charity"`
	FavoriteProject       string `json:"favorite_project"`
}

// TableName 自定义表名
func (DonorProfileModel) TableName() string {
	return "donor_profile"
}
