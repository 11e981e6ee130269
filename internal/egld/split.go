package egld

import (
	"errors"
	"math/big"
)

// MaxBatchSize 单次批量捐赠上限
const MaxBatchSize = 100

var (
	// ErrInvalidBatchSize 批量份数不在 [1,100]
	ErrInvalidBatchSize = errors.New("batch must be 1-100")
	// ErrPaymentTooSmall 每份金额为0
	ErrPaymentTooSmall = errors.New("payment per donation too low")
)

// Split 把总金额整除为每份金额（余数舍弃，不再分配）
func Split(total *big.Int, count uint64) (*big.Int, error) {
	if count == 0 || count > MaxBatchSize {
		return nil, ErrInvalidBatchSize
	}

	perUnit := new(big.Int).Quo(total, new(big.Int).SetUint64(count))
	if perUnit.Sign() <= 0 {
		return nil, ErrPaymentTooSmall
	}

	return perUnit, nil
}
