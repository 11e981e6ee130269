package task

import (
	"time"

	"github.com/Philanthrify/donation-service/internal/config"
	"github.com/Philanthrify/donation-service/internal/event"
	"github.com/Philanthrify/donation-service/internal/logger"
	"github.com/go-co-op/gocron/v2"
)

// EventPublishJob 出站事件发布任务
type EventPublishJob struct {
	publisher *event.Publisher
	config    *config.Config
}

// NewEventPublishJob 创建出站事件发布任务
func NewEventPublishJob(publisher *event.Publisher, cfg *config.Config) *EventPublishJob {
	return &EventPublishJob{
		publisher: publisher,
		config:    cfg,
	}
}

// GetName 获取任务名称
func (j *EventPublishJob) GetName() string {
	return "event_publisher"
}

// GetSchedule 获取调度配置
func (j *EventPublishJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *EventPublishJob) Execute() {
	if err := j.publisher.PublishPending(); err != nil {
		logger.Error("Failed to publish pending events: %v", err)
	}
}
