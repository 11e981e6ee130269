package logic

import (
	"errors"
)

var (
	// ErrZeroAmount 捐赠金额必须大于0
	ErrZeroAmount = errors.New("must send some EGLD")
	// ErrInvalidEntityType 实体类型必须是 charity 或 project
	ErrInvalidEntityType = errors.New("entity type must be charity or project")
	// ErrCollectionNotConfigured 徽章集合未配置，拒绝签发
	ErrCollectionNotConfigured = errors.New("NFT collection not set")
	// ErrDonorNotFound 捐赠者不存在
	ErrDonorNotFound = errors.New("donor not found")
	// ErrBadgeNotFound 捐赠者还没有徽章
	ErrBadgeNotFound = errors.New("donor has no badge")
	// ErrEntityNotFound 实体未注册
	ErrEntityNotFound = errors.New("entity not found")
	// ErrEntityDisabled 实体已停用
	ErrEntityDisabled = errors.New("entity is disabled")
	// ErrEntityExists 实体名称已存在
	ErrEntityExists = errors.New("entity already exists")
)
