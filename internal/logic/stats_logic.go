package logic

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/Philanthrify/donation-service/internal/model"
	"gorm.io/gorm"
)

// StatsLogic 全网统计业务逻辑
type StatsLogic struct {
	db *gorm.DB
}

// NewStatsLogic 创建全网统计业务逻辑
func NewStatsLogic(db *gorm.DB) *StatsLogic {
	return &StatsLogic{db: db}
}

// Apply 累加一次已完成的捐赠
func (s *StatsLogic) Apply(tx *gorm.DB, amount *big.Int, wasNewDonor, mintedNew bool) (*model.GlobalStatsModel, error) {
	var stats model.GlobalStatsModel
	err := tx.Where("id = ?", model.GlobalStatsId).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		stats = model.GlobalStatsModel{Id: model.GlobalStatsId, TotalDonationsAmount: "0"}
		if err := tx.Create(&stats).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	total := model.ParseAmount(stats.TotalDonationsAmount)
	total.Add(total, amount)
	stats.TotalDonationsAmount = model.AmountString(total)

	stats.TotalDonationsCount++
	if wasNewDonor {
		stats.TotalUniqueDonors++
	}
	if mintedNew {
		stats.TotalBadgesMinted++
	}

	if err := tx.Save(&stats).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

// GetGlobalStats 查询全网统计
func (s *StatsLogic) GetGlobalStats() (*model.GlobalStatsModel, error) {
	return s.loadOrInit(s.db)
}

// loadOrInit 读取统计单行，不存在时返回零值行
func (s *StatsLogic) loadOrInit(tx *gorm.DB) (*model.GlobalStatsModel, error) {
	var stats model.GlobalStatsModel
	err := tx.Where("id = ?", model.GlobalStatsId).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &model.GlobalStatsModel{
			Id:                   model.GlobalStatsId,
			TotalDonationsAmount: "0",
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Recompute 从只追加的捐赠记录表重算全网统计（对账用）
func (s *StatsLogic) Recompute() (*model.GlobalStatsModel, error) {
	computed := &model.GlobalStatsModel{
		Id:                   model.GlobalStatsId,
		TotalDonationsAmount: "0",
	}

	// 总捐赠笔数
	if err := s.db.Model(&model.DonationRecordModel{}).Count(&computed.TotalDonationsCount).Error; err != nil {
		return nil, fmt.Errorf("获取总捐赠笔数失败: %w", err)
	}

	// 总捐赠金额
	var totalAmount string
	if err := s.db.Model(&model.DonationRecordModel{}).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalAmount).Error; err != nil {
		return nil, fmt.Errorf("获取总捐赠金额失败: %w", err)
	}
	computed.TotalDonationsAmount = model.AmountString(model.ParseAmount(totalAmount))

	// 唯一捐赠者数量
	if err := s.db.Model(&model.DonationRecordModel{}).
		Select("COUNT(DISTINCT donor_address)").Scan(&computed.TotalUniqueDonors).Error; err != nil {
		return nil, fmt.Errorf("获取唯一捐赠者数量失败: %w", err)
	}

	// 已签发徽章数量
	if err := s.db.Model(&model.BadgeModel{}).Count(&computed.TotalBadgesMinted).Error; err != nil {
		return nil, fmt.Errorf("获取徽章数量失败: %w", err)
	}

	return computed, nil
}
