package egld

import (
	"math/big"
	"strings"
)

// Decimals EGLD定点小数位数
const Decimals = 18

// oneEgld 10^18 最小单位 = 1 EGLD
var oneEgld = new(big.Int).Exp(big.NewInt(10), big.NewInt(Decimals), nil)

var ten = big.NewInt(10)

// Format 定点大整数转可读EGLD字符串（最多两位小数，截断不四舍五入）
// 全程大整数运算，不使用浮点
func Format(amount *big.Int) string {
	if amount == nil {
		return "0"
	}

	quo, rem := new(big.Int).QuoRem(amount, oneEgld, new(big.Int))

	var b strings.Builder
	b.WriteString(quo.String())

	if rem.Sign() > 0 {
		b.WriteByte('.')
		frac := new(big.Int).Set(rem)
		for i := 0; i < 2; i++ {
			if frac.Sign() == 0 {
				break
			}
			frac.Mul(frac, ten)
			d := new(big.Int).Quo(frac, oneEgld).Int64()
			frac.Mod(frac, oneEgld)
			if d > 0 || b.Len() > 0 {
				b.WriteByte(byte('0' + d))
			}
		}
	}

	return b.String()
}
