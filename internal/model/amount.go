package model

import (
	"math/big"
)

// ParseAmount 解析数据库numeric字符串为大整数（空串或非法值视为0）
func ParseAmount(s string) *big.Int {
	if s == "" {
		return new(big.Int)
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return new(big.Int)
	}
	return v
}

// AmountString 大整数转数据库numeric字符串
func AmountString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
