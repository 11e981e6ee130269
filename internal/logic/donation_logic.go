package logic

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/Philanthrify/donation-service/internal/config"
	"github.com/Philanthrify/donation-service/internal/egld"
	"github.com/Philanthrify/donation-service/internal/event"
	"github.com/Philanthrify/donation-service/internal/logger"
	"github.com/Philanthrify/donation-service/internal/metrics"
	"github.com/Philanthrify/donation-service/internal/model"
	"github.com/Philanthrify/donation-service/internal/nft"
	"gorm.io/gorm"
)

// DonationOutcome 一次捐赠的处理结果
type DonationOutcome struct {
	BadgeNonce  int64                    `json:"badge_nonce"`
	MintedNew   bool                     `json:"minted_new"`
	WasNewDonor bool                     `json:"was_new_donor"`
	Profile     *model.DonorProfileModel `json:"profile"`
	Stats       *model.GlobalStatsModel  `json:"stats"`
}

// DonationLogic 捐赠归因业务逻辑（顶层入口）
// 徽章序号和全网统计是跨捐赠者的共享状态，由互斥锁保证单写者，
// 整个处理流程在一个数据库事务内提交，徽章签发后不会留下缺账窗口
type DonationLogic struct {
	db       *gorm.DB
	donors   *DonorLogic
	badges   *BadgeLogic
	stats    *StatsLogic
	recorder *event.Recorder

	mu sync.Mutex
}

// NewDonationLogic 创建捐赠归因业务逻辑
func NewDonationLogic(db *gorm.DB, issuer nft.Issuer, cfg config.NftConfig) *DonationLogic {
	return &DonationLogic{
		db:       db,
		donors:   NewDonorLogic(db),
		badges:   NewBadgeLogic(db, issuer, cfg),
		stats:    NewStatsLogic(db),
		recorder: event.NewRecorder(),
	}
}

// Donors 捐赠者账本
func (l *DonationLogic) Donors() *DonorLogic {
	return l.donors
}

// Badges 徽章登记
func (l *DonationLogic) Badges() *BadgeLogic {
	return l.badges
}

// Stats 全网统计
func (l *DonationLogic) Stats() *StatsLogic {
	return l.stats
}

// Process 处理一次捐赠：校验 → 档案 → 徽章 → 记录 → 统计 → 事件
// 任一步失败整体回滚，不留部分状态
func (l *DonationLogic) Process(ctx context.Context, donor string, amount *big.Int, entityName, entityType string, tags []string) (*DonationOutcome, error) {
	if amount == nil || amount.Sign() <= 0 {
		metrics.ObserveDonationFailure()
		return nil, ErrZeroAmount
	}
	if !model.IsValidEntityType(entityType) {
		metrics.ObserveDonationFailure()
		return nil, ErrInvalidEntityType
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Unix()

	// 开始事务
	tx := l.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	outcome, err := l.processInTx(ctx, tx, donor, amount, entityName, entityType, tags, timestamp)
	if err != nil {
		tx.Rollback()
		metrics.ObserveDonationFailure()
		return nil, err
	}

	// 提交事务
	if err := tx.Commit().Error; err != nil {
		metrics.ObserveDonationFailure()
		return nil, err
	}

	metrics.ObserveDonation(outcome.WasNewDonor, outcome.MintedNew)
	logger.Info("Processed donation of %s from %s to %s (%s), badge #%d minted_new=%v",
		model.AmountString(amount), donor, entityName, entityType, outcome.BadgeNonce, outcome.MintedNew)

	return outcome, nil
}

// processInTx 在事务内按固定顺序执行各步骤
func (l *DonationLogic) processInTx(ctx context.Context, tx *gorm.DB, donor string, amount *big.Int, entityName, entityType string, tags []string, timestamp int64) (*DonationOutcome, error) {
	// 读取或构造捐赠者档案
	profile, wasNewDonor, err := l.donors.getOrCreateProfile(tx, donor, timestamp)
	if err != nil {
		return nil, err
	}

	// 签发或更新徽章
	badgeNonce, mintedNew, err := l.badges.MintOrUpdate(ctx, tx, donor, entityName, entityType, amount, tags)
	if err != nil {
		return nil, err
	}

	// 更新档案并追加记录（记录携带徽章序号）
	l.donors.applyDonation(profile, amount, entityName, entityType, timestamp)
	if err := l.donors.appendRecord(tx, donor, amount, timestamp, entityName, entityType, badgeNonce); err != nil {
		return nil, err
	}
	if err := l.donors.saveProfile(tx, profile); err != nil {
		return nil, err
	}

	// 累加全网统计
	stats, err := l.stats.Apply(tx, amount, wasNewDonor, mintedNew)
	if err != nil {
		return nil, err
	}

	// 写出站事件
	if err := l.recorder.DonationRecorded(tx, donor, amount, entityName); err != nil {
		return nil, err
	}
	if mintedNew {
		if err := l.recorder.BadgeMinted(tx, donor, entityName, badgeNonce); err != nil {
			return nil, err
		}
	}

	return &DonationOutcome{
		BadgeNonce:  badgeNonce,
		MintedNew:   mintedNew,
		WasNewDonor: wasNewDonor,
		Profile:     profile,
		Stats:       stats,
	}, nil
}

// ProcessBatch 把一笔总付款拆成count份等额捐赠逐份处理
// 整除余数舍弃；每份独立提交，与单笔Process语义一致
func (l *DonationLogic) ProcessBatch(ctx context.Context, donor string, total *big.Int, count uint64, entityName, entityType string, tags []string) ([]*DonationOutcome, error) {
	if total == nil || total.Sign() <= 0 {
		metrics.ObserveDonationFailure()
		return nil, ErrZeroAmount
	}

	perUnit, err := egld.Split(total, count)
	if err != nil {
		metrics.ObserveDonationFailure()
		return nil, err
	}

	metrics.ObserveBatch()

	outcomes := make([]*DonationOutcome, 0, count)
	for i := uint64(1); i <= count; i++ {
		outcome, err := l.Process(ctx, donor, perUnit, entityName, entityType, tags)
		if err != nil {
			return outcomes, err
		}

		if err := l.recorder.BatchDonation(l.db, donor, i, count, perUnit, entityName); err != nil {
			logger.Error("Failed to record batch event %d/%d: %v", i, count, err)
		}

		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}
