package nft

import (
	"context"

	"github.com/Philanthrify/donation-service/internal/logger"
)

// Issuer 徽章签发边界：token的实际创建/更新由外部系统完成
type Issuer interface {
	// CreateBadge 签发一枚新徽章（数量固定为1）给捐赠者
	CreateBadge(ctx context.Context, donor string, nonce int64, name, attributes string, royalties int64) error
	// UpdateBadgeAttributes 原地更新已有徽章的元数据（不重发、不改名）
	UpdateBadgeAttributes(ctx context.Context, nonce int64, attributes string) error
}

// LocalIssuer 本地签发者：未接链时使用，仅记录日志
type LocalIssuer struct{}

// NewLocalIssuer 创建本地签发者
func NewLocalIssuer() *LocalIssuer {
	return &LocalIssuer{}
}

// CreateBadge 记录签发动作
func (i *LocalIssuer) CreateBadge(ctx context.Context, donor string, nonce int64, name, attributes string, royalties int64) error {
	logger.Info("Issued badge #%d to %s: %s", nonce, donor, name)
	return nil
}

// UpdateBadgeAttributes 记录更新动作
func (i *LocalIssuer) UpdateBadgeAttributes(ctx context.Context, nonce int64, attributes string) error {
	logger.Debug("Updated badge #%d attributes", nonce)
	return nil
}
