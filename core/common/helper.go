package common

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

func Of[T any](v T) *T {
	return &v
}

// CalculateSHA256 计算文件内容的SHA256哈希值
func CalculateSHA256(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NewItemId 生成去掉连字符的UUID，作为知识条目ID
func NewItemId(raw string) string {
	return strings.ReplaceAll(raw, "-", "")
}
