package nftmeta

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/Philanthrify/donation-service/internal/egld"
)

// MaxTags 单枚徽章允许的自定义标签数
const MaxTags = 10

// FilterTags 去掉空标签并截断到前 MaxTags 个（保持输入顺序）
func FilterTags(tags []string) []string {
	out := make([]string, 0, MaxTags)
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		out = append(out, tag)
		if len(out) == MaxTags {
			break
		}
	}
	return out
}

// BuildAttributes 构造徽章元数据属性串（JSON数组形态，字段顺序固定，
// 相同输入字节级一致，下游可能直接比较或哈希）
func BuildAttributes(entityName, entityType string, amount *big.Int, badgeNonce int64, tags []string) string {
	var b strings.Builder

	b.WriteByte('[')

	userTags := FilterTags(tags)
	for i, tag := range userTags {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(`{"trait_type":"Tag","value":"`)
		b.WriteString(tag)
		b.WriteString(`"}`)
	}
	if len(userTags) > 0 {
		b.WriteByte(',')
	}

	b.WriteString(`{"trait_type":"Charity","value":"`)
	b.WriteString(entityName)
	b.WriteString(`"},`)

	b.WriteString(`{"trait_type":"Type","value":"`)
	b.WriteString(entityType)
	b.WriteString(`"},`)

	b.WriteString(`{"trait_type":"Amount","value":"`)
	b.WriteString(egld.Format(amount))
	b.WriteString(` EGLD"},`)

	b.WriteString(`{"trait_type":"NFT_ID","value":"`)
	b.WriteString(strconv.FormatInt(badgeNonce, 10))
	b.WriteString(`"}`)

	b.WriteByte(']')

	return b.String()
}

// BuildName 构造徽章名称
func BuildName(prefix, entityName string, amount *big.Int, badgeNonce int64) string {
	return fmt.Sprintf("%s #%d • %s • %s EGLD", prefix, badgeNonce, entityName, egld.Format(amount))
}
