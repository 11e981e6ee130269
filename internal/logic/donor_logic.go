package logic

import (
	"errors"
	"math/big"

	"github.com/Philanthrify/donation-service/internal/model"
	"gorm.io/gorm"
)

// DonorLogic 捐赠者账本业务逻辑：档案 + 只追加的捐赠记录
type DonorLogic struct {
	db *gorm.DB
}

// NewDonorLogic 创建捐赠者账本业务逻辑
func NewDonorLogic(db *gorm.DB) *DonorLogic {
	return &DonorLogic{db: db}
}

// getOrCreateProfile 读取档案，不存在时在内存中构造新档案（首次捐赠才落库）
// 返回的 wasNewDonor 表示该捐赠者此前从未捐赠过
func (d *DonorLogic) getOrCreateProfile(tx *gorm.DB, donor string, timestamp int64) (*model.DonorProfileModel, bool, error) {
	var profile model.DonorProfileModel
	err := tx.Where("address = ?", donor).First(&profile).Error
	if err == nil {
		return &profile, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	return &model.DonorProfileModel{
		Address:               donor,
		TotalDonated:          "0",
		DonationCount:         0,
		FirstDonationAt:       timestamp,
		LastDonationAt:        timestamp,
		HighestSingleDonation: "0",
	}, true, nil
}

// applyDonation 按固定顺序更新档案字段
func (d *DonorLogic) applyDonation(profile *model.DonorProfileModel, amount *big.Int, entityName, entityType string, timestamp int64) {
	total := model.ParseAmount(profile.TotalDonated)
	total.Add(total, amount)
	profile.TotalDonated = model.AmountString(total)

	profile.DonationCount++

	// 仅在严格大于时替换最高单笔
	if amount.Cmp(model.ParseAmount(profile.HighestSingleDonation)) > 0 {
		profile.HighestSingleDonation = model.AmountString(amount)
	}

	profile.LastDonationAt = timestamp

	// 最近一次实体覆盖，不按频次统计
	if entityType == model.EntityTypeCharity {
		profile.FavoriteCharity = entityName
	} else {
		profile.FavoriteProject = entityName
	}
}

// appendRecord 追加一条捐赠记录（记录落库后不再修改）
func (d *DonorLogic) appendRecord(tx *gorm.DB, donor string, amount *big.Int, timestamp int64, entityName, entityType string, badgeNonce int64) error {
	record := model.DonationRecordModel{
		DonorAddress: donor,
		Amount:       model.AmountString(amount),
		Timestamp:    timestamp,
		EntityName:   entityName,
		EntityType:   entityType,
		BadgeNonce:   badgeNonce,
	}
	return tx.Create(&record).Error
}

// saveProfile 持久化档案
func (d *DonorLogic) saveProfile(tx *gorm.DB, profile *model.DonorProfileModel) error {
	return tx.Save(profile).Error
}

// GetDonorProfile 查询捐赠者档案
func (d *DonorLogic) GetDonorProfile(donor string) (*model.DonorProfileModel, error) {
	var profile model.DonorProfileModel
	if err := d.db.Where("address = ?", donor).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonorNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// GetDonorDonations 查询捐赠者的捐赠记录（按写入顺序）
func (d *DonorLogic) GetDonorDonations(donor string, page, pageSize int) ([]model.DonationRecordModel, int64, error) {
	var records []model.DonationRecordModel
	var total int64

	// 获取总数
	if err := d.db.Model(&model.DonationRecordModel{}).Where("donor_address = ?", donor).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 获取数据
	offset := (page - 1) * pageSize
	if err := d.db.Where("donor_address = ?", donor).
		Offset(offset).
		Limit(pageSize).
		Order("id ASC").
		Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
