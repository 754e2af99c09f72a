package compress

// criticalMimeTypes 保真敏感类型：文档和含图表的无损图片
// 命中时无论压缩率如何都保留原始文件
var criticalMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"image/png":     true,
	"image/svg+xml": true,
	"image/tiff":    true,
}

// ShouldPreserveOriginal 存储保留策略
// 压缩率超过70或MIME类型属于保真敏感集合时，除压缩副本外额外保留原始文件
// 必须用实测压缩率评估，不做事前估计
func ShouldPreserveOriginal(mimeType string, compressionRatio float64) bool {
	if compressionRatio > 70 {
		return true
	}
	return criticalMimeTypes[mimeType]
}
