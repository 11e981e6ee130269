package logic_test

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/Philanthrify/donation-service/internal/config"
	"github.com/Philanthrify/donation-service/internal/database"
	"github.com/Philanthrify/donation-service/internal/egld"
	"github.com/Philanthrify/donation-service/internal/logic"
	"github.com/Philanthrify/donation-service/internal/model"
	"github.com/Philanthrify/donation-service/internal/nft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存库只允许单连接，避免连接池拿到空库
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func testNftConfig() config.NftConfig {
	return config.NftConfig{
		Collection: "PHILXY-abc123",
		NamePrefix: "PHILXY",
		Royalties:  500,
	}
}

func newTestEngine(t *testing.T) (*logic.DonationLogic, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return logic.NewDonationLogic(db, nft.NewLocalIssuer(), testNftConfig()), db
}

func amt(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad amount literal: " + s)
	}
	return v
}

func TestProcessFirstDonation(t *testing.T) {
	engine, db := newTestEngine(t)

	outcome, err := engine.Process(context.Background(),
		"erd1donor", amt("2000000000000000000"), "Red Cross", "charity", []string{"education"})
	require.NoError(t, err)

	assert.True(t, outcome.WasNewDonor)
	assert.True(t, outcome.MintedNew)
	assert.Equal(t, int64(1), outcome.BadgeNonce)

	profile := outcome.Profile
	assert.Equal(t, int64(1), profile.DonationCount)
	assert.Equal(t, "2000000000000000000", profile.TotalDonated)
	assert.Equal(t, "2000000000000000000", profile.HighestSingleDonation)
	assert.Equal(t, "Red Cross", profile.FavoriteCharity)
	assert.Empty(t, profile.FavoriteProject)
	assert.Equal(t, profile.FirstDonationAt, profile.LastDonationAt)

	stats := outcome.Stats
	assert.Equal(t, int64(1), stats.TotalDonationsCount)
	assert.Equal(t, int64(1), stats.TotalUniqueDonors)
	assert.Equal(t, int64(1), stats.TotalBadgesMinted)
	assert.Equal(t, "2000000000000000000", stats.TotalDonationsAmount)

	var badge model.BadgeModel
	require.NoError(t, db.Where("donor_address = ?", "erd1donor").First(&badge).Error)
	assert.Equal(t, int64(1), badge.Nonce)
	assert.Equal(t, "PHILXY #1 • Red Cross • 2 EGLD", badge.Name)
	assert.Equal(t,
		`[{"trait_type":"Tag","value":"education"},`+
			`{"trait_type":"Charity","value":"Red Cross"},`+
			`{"trait_type":"Type","value":"charity"},`+
			`{"trait_type":"Amount","value":"2 EGLD"},`+
			`{"trait_type":"NFT_ID","value":"1"}]`,
		badge.Attributes)
}

func TestSecondDonationUpdatesBadgeInPlace(t *testing.T) {
	engine, db := newTestEngine(t)
	ctx := context.Background()

	first, err := engine.Process(ctx,
		"erd1donor", amt("2000000000000000000"), "Red Cross", "charity", []string{"education"})
	require.NoError(t, err)

	second, err := engine.Process(ctx,
		"erd1donor", amt("500000000000000000"), "Clean Water", "project", nil)
	require.NoError(t, err)

	assert.False(t, second.WasNewDonor)
	assert.False(t, second.MintedNew)
	assert.Equal(t, first.BadgeNonce, second.BadgeNonce)

	profile := second.Profile
	assert.Equal(t, int64(2), profile.DonationCount)
	assert.Equal(t, "2500000000000000000", profile.TotalDonated)
	// 较小的新捐赠不会替换最高单笔
	assert.Equal(t, "2000000000000000000", profile.HighestSingleDonation)
	assert.Equal(t, "Red Cross", profile.FavoriteCharity)
	assert.Equal(t, "Clean Water", profile.FavoriteProject)

	stats := second.Stats
	assert.Equal(t, int64(2), stats.TotalDonationsCount)
	assert.Equal(t, int64(1), stats.TotalUniqueDonors)
	assert.Equal(t, int64(1), stats.TotalBadgesMinted)
	assert.Equal(t, "2500000000000000000", stats.TotalDonationsAmount)

	// 元数据原地更新，名称不变
	var badge model.BadgeModel
	require.NoError(t, db.Where("donor_address = ?", "erd1donor").First(&badge).Error)
	assert.Equal(t, int64(1), badge.Nonce)
	assert.Equal(t, "PHILXY #1 • Red Cross • 2 EGLD", badge.Name)
	assert.Contains(t, badge.Attributes, `{"trait_type":"Amount","value":"0.5 EGLD"}`)
	assert.Contains(t, badge.Attributes, `{"trait_type":"NFT_ID","value":"1"}`)

	// 账本保留两条不可变记录，均指向同一枚徽章
	var records []model.DonationRecordModel
	require.NoError(t, db.Where("donor_address = ?", "erd1donor").Order("id ASC").Find(&records).Error)
	require.Len(t, records, 2)
	assert.Equal(t, "2000000000000000000", records[0].Amount)
	assert.Equal(t, "500000000000000000", records[1].Amount)
	assert.Equal(t, int64(1), records[0].BadgeNonce)
	assert.Equal(t, int64(1), records[1].BadgeNonce)
}

func TestBadgeSequenceAcrossDonors(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()
	one := amt("1000000000000000000")

	a, err := engine.Process(ctx, "erd1alice", one, "Red Cross", "charity", nil)
	require.NoError(t, err)
	b, err := engine.Process(ctx, "erd1bob", one, "Red Cross", "charity", nil)
	require.NoError(t, err)

	assert.Equal(t, int64(1), a.BadgeNonce)
	assert.Equal(t, int64(2), b.BadgeNonce)

	// 同一捐赠者再捐仍是同一徽章
	a2, err := engine.Process(ctx, "erd1alice", one, "Clean Water", "project", nil)
	require.NoError(t, err)
	assert.Equal(t, a.BadgeNonce, a2.BadgeNonce)
	assert.False(t, a2.MintedNew)
}

func TestProcessZeroAmount(t *testing.T) {
	engine, db := newTestEngine(t)

	_, err := engine.Process(context.Background(), "erd1donor", big.NewInt(0), "Red Cross", "charity", nil)
	assert.ErrorIs(t, err, logic.ErrZeroAmount)

	_, err = engine.Process(context.Background(), "erd1donor", nil, "Red Cross", "charity", nil)
	assert.ErrorIs(t, err, logic.ErrZeroAmount)

	var count int64
	require.NoError(t, db.Model(&model.DonationRecordModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestProcessInvalidEntityType(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.Process(context.Background(),
		"erd1donor", amt("1000000000000000000"), "Red Cross", "foundation", nil)
	assert.ErrorIs(t, err, logic.ErrInvalidEntityType)
}

func TestProcessCollectionNotConfigured(t *testing.T) {
	db := newTestDB(t)
	engine := logic.NewDonationLogic(db, nft.NewLocalIssuer(), config.NftConfig{NamePrefix: "PHILXY"})

	_, err := engine.Process(context.Background(),
		"erd1donor", amt("1000000000000000000"), "Red Cross", "charity", nil)
	assert.ErrorIs(t, err, logic.ErrCollectionNotConfigured)

	// 前置条件失败不留任何状态
	var profiles, records, badges int64
	require.NoError(t, db.Model(&model.DonorProfileModel{}).Count(&profiles).Error)
	require.NoError(t, db.Model(&model.DonationRecordModel{}).Count(&records).Error)
	require.NoError(t, db.Model(&model.BadgeModel{}).Count(&badges).Error)
	assert.Zero(t, profiles)
	assert.Zero(t, records)
	assert.Zero(t, badges)
}

type failingIssuer struct{}

func (failingIssuer) CreateBadge(ctx context.Context, donor string, nonce int64, name, attributes string, royalties int64) error {
	return errors.New("issuer unavailable")
}

func (failingIssuer) UpdateBadgeAttributes(ctx context.Context, nonce int64, attributes string) error {
	return errors.New("issuer unavailable")
}

func TestProcessRollsBackOnIssuerFailure(t *testing.T) {
	db := newTestDB(t)
	engine := logic.NewDonationLogic(db, failingIssuer{}, testNftConfig())

	_, err := engine.Process(context.Background(),
		"erd1donor", amt("1000000000000000000"), "Red Cross", "charity", nil)
	require.Error(t, err)

	// 签发失败整体回滚：档案、记录、统计、计数器全部无痕
	var profiles, records, counters, events int64
	require.NoError(t, db.Model(&model.DonorProfileModel{}).Count(&profiles).Error)
	require.NoError(t, db.Model(&model.DonationRecordModel{}).Count(&records).Error)
	require.NoError(t, db.Model(&model.CounterModel{}).Count(&counters).Error)
	require.NoError(t, db.Model(&model.EventModel{}).Count(&events).Error)
	assert.Zero(t, profiles)
	assert.Zero(t, records)
	assert.Zero(t, counters)
	assert.Zero(t, events)

	var stats model.GlobalStatsModel
	require.NoError(t, db.Where("id = ?", model.GlobalStatsId).First(&stats).Error)
	assert.Zero(t, stats.TotalDonationsCount)
}

func TestStatsConsistency(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	donors := []string{"erd1a", "erd1a", "erd1b", "erd1c", "erd1b"}
	total := new(big.Int)
	for i, donor := range donors {
		amount := big.NewInt(int64(i+1) * 1000)
		total.Add(total, amount)
		_, err := engine.Process(ctx, donor, amount, "Red Cross", "charity", nil)
		require.NoError(t, err)
	}

	stats, err := engine.Stats().GetGlobalStats()
	require.NoError(t, err)
	assert.Equal(t, int64(len(donors)), stats.TotalDonationsCount)
	assert.Equal(t, int64(3), stats.TotalUniqueDonors)
	assert.Equal(t, int64(3), stats.TotalBadgesMinted)
	assert.Equal(t, total.String(), stats.TotalDonationsAmount)
}

func TestProcessBatch(t *testing.T) {
	engine, db := newTestEngine(t)

	outcomes, err := engine.ProcessBatch(context.Background(),
		"erd1donor", amt("10000000000000000000"), 4, "Red Cross", "charity", nil)
	require.NoError(t, err)
	require.Len(t, outcomes, 4)

	// 每份金额相同，首份mint后续更新
	assert.True(t, outcomes[0].MintedNew)
	for _, o := range outcomes[1:] {
		assert.False(t, o.MintedNew)
		assert.Equal(t, outcomes[0].BadgeNonce, o.BadgeNonce)
	}

	profile, err := engine.Donors().GetDonorProfile("erd1donor")
	require.NoError(t, err)
	assert.Equal(t, int64(4), profile.DonationCount)
	assert.Equal(t, "10000000000000000000", profile.TotalDonated)
	assert.Equal(t, "2500000000000000000", profile.HighestSingleDonation)

	var batchEvents int64
	require.NoError(t, db.Model(&model.EventModel{}).
		Where("event_type = ?", model.EventTypeBatchDonation).Count(&batchEvents).Error)
	assert.Equal(t, int64(4), batchEvents)
}

func TestProcessBatchDiscardsRemainder(t *testing.T) {
	engine, _ := newTestEngine(t)

	// 10 EGLD + 3 最小单位按4份拆分，余数3不再分配
	outcomes, err := engine.ProcessBatch(context.Background(),
		"erd1donor", amt("10000000000000000003"), 4, "Red Cross", "charity", nil)
	require.NoError(t, err)
	require.Len(t, outcomes, 4)

	profile, err := engine.Donors().GetDonorProfile("erd1donor")
	require.NoError(t, err)
	assert.Equal(t, "10000000000000000000", profile.TotalDonated)
}

func TestProcessBatchValidation(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.ProcessBatch(ctx, "erd1donor", amt("1000"), 0, "Red Cross", "charity", nil)
	assert.ErrorIs(t, err, egld.ErrInvalidBatchSize)

	_, err = engine.ProcessBatch(ctx, "erd1donor", amt("1000"), 101, "Red Cross", "charity", nil)
	assert.ErrorIs(t, err, egld.ErrInvalidBatchSize)

	_, err = engine.ProcessBatch(ctx, "erd1donor", big.NewInt(3), 5, "Red Cross", "charity", nil)
	assert.ErrorIs(t, err, egld.ErrPaymentTooSmall)

	_, err = engine.ProcessBatch(ctx, "erd1donor", big.NewInt(0), 5, "Red Cross", "charity", nil)
	assert.ErrorIs(t, err, logic.ErrZeroAmount)
}

func TestOutboundEvents(t *testing.T) {
	engine, db := newTestEngine(t)
	ctx := context.Background()
	one := amt("1000000000000000000")

	_, err := engine.Process(ctx, "erd1donor", one, "Red Cross", "charity", nil)
	require.NoError(t, err)
	_, err = engine.Process(ctx, "erd1donor", one, "Red Cross", "charity", nil)
	require.NoError(t, err)

	var recorded, minted int64
	require.NoError(t, db.Model(&model.EventModel{}).
		Where("event_type = ?", model.EventTypeDonationRecorded).Count(&recorded).Error)
	require.NoError(t, db.Model(&model.EventModel{}).
		Where("event_type = ?", model.EventTypeBadgeMinted).Count(&minted).Error)

	assert.Equal(t, int64(2), recorded)
	// 徽章事件只在新签发时发出
	assert.Equal(t, int64(1), minted)
}

func TestGetDonorDonationsPagination(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := engine.Process(ctx, "erd1donor", big.NewInt(int64(i+1)*100),
			fmt.Sprintf("Charity %d", i), "charity", nil)
		require.NoError(t, err)
	}

	records, total, err := engine.Donors().GetDonorDonations("erd1donor", 1, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, records, 3)
	// 按写入顺序返回
	assert.Equal(t, "100", records[0].Amount)
	assert.Equal(t, "300", records[2].Amount)

	records, _, err = engine.Donors().GetDonorDonations("erd1donor", 2, 3)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "400", records[0].Amount)
}

func TestGetDonorProfileNotFound(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.Donors().GetDonorProfile("erd1nobody")
	assert.ErrorIs(t, err, logic.ErrDonorNotFound)

	_, err = engine.Badges().GetDonorBadge("erd1nobody")
	assert.ErrorIs(t, err, logic.ErrBadgeNotFound)
}
