package task

import (
	"time"

	"github.com/Philanthrify/donation-service/internal/config"
	"github.com/Philanthrify/donation-service/internal/logger"
	"github.com/Philanthrify/donation-service/internal/logic"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// StatsReconcileJob 全网统计对账任务：
// 从只追加的捐赠记录表重算统计并与单行统计比对，发现漂移只告警不修改
type StatsReconcileJob struct {
	statsLogic *logic.StatsLogic
	config     *config.Config
}

// NewStatsReconcileJob 创建全网统计对账任务
func NewStatsReconcileJob(db *gorm.DB, cfg *config.Config) *StatsReconcileJob {
	return &StatsReconcileJob{
		statsLogic: logic.NewStatsLogic(db),
		config:     cfg,
	}
}

// GetName 获取任务名称
func (j *StatsReconcileJob) GetName() string {
	return "stats_reconciler"
}

// GetSchedule 获取调度配置
func (j *StatsReconcileJob) GetSchedule() gocron.JobDefinition {
	// 对账频率低于事件发布
	return gocron.DurationJob(10 * time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *StatsReconcileJob) Execute() {
	stored, err := j.statsLogic.GetGlobalStats()
	if err != nil {
		logger.Error("Failed to load global stats: %v", err)
		return
	}

	computed, err := j.statsLogic.Recompute()
	if err != nil {
		logger.Error("Failed to recompute global stats: %v", err)
		return
	}

	if stored.TotalDonationsCount != computed.TotalDonationsCount ||
		stored.TotalUniqueDonors != computed.TotalUniqueDonors ||
		stored.TotalBadgesMinted != computed.TotalBadgesMinted ||
		stored.TotalDonationsAmount != computed.TotalDonationsAmount {
		logger.Warn("Global stats drift detected: stored count=%d amount=%s donors=%d badges=%d, computed count=%d amount=%s donors=%d badges=%d",
			stored.TotalDonationsCount, stored.TotalDonationsAmount, stored.TotalUniqueDonors, stored.TotalBadgesMinted,
			computed.TotalDonationsCount, computed.TotalDonationsAmount, computed.TotalUniqueDonors, computed.TotalBadgesMinted)
		return
	}

	logger.Debug("Global stats reconciled: %d donations, %d donors", stored.TotalDonationsCount, stored.TotalUniqueDonors)
}
