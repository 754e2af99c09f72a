package common

import (
	"regexp"
	"strings"
)

var (
	itemIdPattern = regexp.MustCompile(`^[a-f0-9]{32}$`)
	// 对象路径里不允许的字符
	unsafeObjectRunes = regexp.MustCompile(`[\x00-\x1f\\:*?"<>|]`)
)

// ValidateItemId 验证知识条目ID格式（32个十六进制字符，UUID去连字符）
func ValidateItemId(id string) bool {
	return itemIdPattern.MatchString(strings.ToLower(id))
}

// SanitizeObjectName 清理文件名中不适合作为对象存储路径的字符
// 路径分隔符和控制字符替换为下划线，避免对象key逃出条目前缀
func SanitizeObjectName(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "..", "_")
	name = unsafeObjectRunes.ReplaceAllString(name, "_")
	name = strings.TrimSpace(name)
	if name == "" {
		return "unnamed"
	}
	return name
}
