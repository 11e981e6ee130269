package event

import (
	"encoding/json"
	"math/big"

	"github.com/Philanthrify/donation-service/internal/model"
	"gorm.io/gorm"
)

// Recorder 出站事件记录器：在捐赠事务内写入事件行，由发布任务异步投递
type Recorder struct{}

// NewRecorder 创建出站事件记录器
func NewRecorder() *Recorder {
	return &Recorder{}
}

// DonationRecorded 记录捐赠完成事件
func (r *Recorder) DonationRecorded(tx *gorm.DB, donor string, amount *big.Int, entityName string) error {
	evt := model.EventModel{
		EventType:    model.EventTypeDonationRecorded,
		DonorAddress: donor,
		EntityName:   entityName,
		Amount:       model.AmountString(amount),
	}
	return tx.Create(&evt).Error
}

// BadgeMinted 记录徽章签发事件（仅新签发时）
func (r *Recorder) BadgeMinted(tx *gorm.DB, donor, entityName string, badgeNonce int64) error {
	evt := model.EventModel{
		EventType:    model.EventTypeBadgeMinted,
		DonorAddress: donor,
		EntityName:   entityName,
		BadgeNonce:   badgeNonce,
	}
	return tx.Create(&evt).Error
}

// BatchDonation 记录批量捐赠中的一份
func (r *Recorder) BatchDonation(tx *gorm.DB, donor string, index, total uint64, perUnit *big.Int, entityName string) error {
	data, err := json.Marshal(map[string]interface{}{
		"index": index,
		"total": total,
	})
	if err != nil {
		return err
	}

	evt := model.EventModel{
		EventType:    model.EventTypeBatchDonation,
		DonorAddress: donor,
		EntityName:   entityName,
		Amount:       model.AmountString(perUnit),
		Data:         string(data),
	}
	return tx.Create(&evt).Error
}
