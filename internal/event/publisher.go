package event

import (
	"encoding/json"
	"sync"

	"github.com/Philanthrify/donation-service/internal/logger"
	"github.com/Philanthrify/donation-service/internal/model"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// publishBatchSize 单轮投递的事件行数上限
const publishBatchSize = 100

// Sink 事件投递目标（外部日志传输的边界）
type Sink func(evt *model.EventModel) error

// LogSink 默认投递目标：把事件载荷写到日志
func LogSink(evt *model.EventModel) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	logger.Info("Event %s: %s", evt.EventType, string(payload))
	return nil
}

// Publisher 待发布事件投递器
type Publisher struct {
	db   *gorm.DB
	pool *ants.Pool
	sink Sink
	mu   sync.Mutex // 同一时刻只允许一轮投递
}

// NewPublisher 创建事件投递器
func NewPublisher(db *gorm.DB, poolSize int, sink Sink) (*Publisher, error) {
	if sink == nil {
		sink = LogSink
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	return &Publisher{
		db:   db,
		pool: pool,
		sink: sink,
	}, nil
}

// PublishPending 投递未发布的事件并标记为已发布
func (p *Publisher) PublishPending() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var events []model.EventModel
	if err := p.db.Where("published = ?", false).
		Order("id ASC").
		Limit(publishBatchSize).
		Find(&events).Error; err != nil {
		return err
	}

	if len(events) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	published := make([]int64, 0, len(events))
	var resultMu sync.Mutex

	for i := range events {
		evt := &events[i]
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			if err := p.sink(evt); err != nil {
				logger.Error("Failed to publish event %d: %v", evt.Id, err)
				return
			}
			resultMu.Lock()
			published = append(published, evt.Id)
			resultMu.Unlock()
		})
		if err != nil {
			wg.Done()
			logger.Error("Failed to submit event %d to pool: %v", evt.Id, err)
		}
	}
	wg.Wait()

	if len(published) == 0 {
		return nil
	}

	if err := p.db.Model(&model.EventModel{}).
		Where("id IN ?", published).
		Update("published", true).Error; err != nil {
		return err
	}

	logger.Debug("Published %d events", len(published))
	return nil
}

// Stop 释放协程池
func (p *Publisher) Stop() {
	p.pool.Release()
}
