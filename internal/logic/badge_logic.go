package logic

import (
	"context"
	"errors"
	"math/big"

	"github.com/Philanthrify/donation-service/internal/config"
	"github.com/Philanthrify/donation-service/internal/model"
	"github.com/Philanthrify/donation-service/internal/nft"
	"github.com/Philanthrify/donation-service/internal/nftmeta"
	"gorm.io/gorm"
)

// BadgeLogic 徽章登记业务逻辑：每个捐赠者最多一枚，先发后更
type BadgeLogic struct {
	db     *gorm.DB
	issuer nft.Issuer
	cfg    config.NftConfig
}

// NewBadgeLogic 创建徽章登记业务逻辑
func NewBadgeLogic(db *gorm.DB, issuer nft.Issuer, cfg config.NftConfig) *BadgeLogic {
	return &BadgeLogic{db: db, issuer: issuer, cfg: cfg}
}

// MintOrUpdate 首次捐赠签发新徽章，此后只原地更新元数据
// 返回徽章序号和是否新签发
func (b *BadgeLogic) MintOrUpdate(ctx context.Context, tx *gorm.DB, donor, entityName, entityType string, amount *big.Int, tags []string) (int64, bool, error) {
	if b.cfg.Collection == "" {
		return 0, false, ErrCollectionNotConfigured
	}

	var badge model.BadgeModel
	err := tx.Where("donor_address = ?", donor).First(&badge).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 无徽章：取下一个全局序号并签发
		nonce, err := b.nextNonce(tx)
		if err != nil {
			return 0, false, err
		}

		name := nftmeta.BuildName(b.cfg.NamePrefix, entityName, amount, nonce)
		attributes := nftmeta.BuildAttributes(entityName, entityType, amount, nonce, tags)

		if err := b.issuer.CreateBadge(ctx, donor, nonce, name, attributes, b.cfg.Royalties); err != nil {
			return 0, false, err
		}

		badge = model.BadgeModel{
			DonorAddress: donor,
			Nonce:        nonce,
			Collection:   b.cfg.Collection,
			Name:         name,
			Attributes:   attributes,
		}
		if err := tx.Create(&badge).Error; err != nil {
			return 0, false, err
		}

		return nonce, true, nil
	}

	// 已有徽章：用已有序号重建元数据并原地更新（不重发、不改名）
	attributes := nftmeta.BuildAttributes(entityName, entityType, amount, badge.Nonce, tags)

	if err := b.issuer.UpdateBadgeAttributes(ctx, badge.Nonce, attributes); err != nil {
		return 0, false, err
	}

	if err := tx.Model(&badge).Update("attributes", attributes).Error; err != nil {
		return 0, false, err
	}

	return badge.Nonce, false, nil
}

// nextNonce 分配下一个全局徽章序号（从1开始，跨捐赠者单调递增）
func (b *BadgeLogic) nextNonce(tx *gorm.DB) (int64, error) {
	var counter model.CounterModel
	err := tx.Where("name = ?", model.CounterBadgeNonce).First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		counter = model.CounterModel{Name: model.CounterBadgeNonce, Value: 1}
		if err := tx.Create(&counter).Error; err != nil {
			return 0, err
		}
		return counter.Value, nil
	}
	if err != nil {
		return 0, err
	}

	counter.Value++
	if err := tx.Model(&counter).Update("value", counter.Value).Error; err != nil {
		return 0, err
	}

	return counter.Value, nil
}

// GetDonorBadge 查询捐赠者的徽章
func (b *BadgeLogic) GetDonorBadge(donor string) (*model.BadgeModel, error) {
	var badge model.BadgeModel
	if err := b.db.Where("donor_address = ?", donor).First(&badge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadgeNotFound
		}
		return nil, err
	}
	return &badge, nil
}
