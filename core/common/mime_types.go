package common

import "strings"

// MimeTypeMap 统一的MIME类型映射表
var MimeTypeMap = map[string]string{
	// 文档格式
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
	".md":   "text/markdown",
	".csv":  "text/csv",
	".html": "text/html",

	// 图片格式
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".tiff": "image/tiff",
	".tif":  "image/tiff",

	// 音频格式
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".flac": "audio/flac",
	".aac":  "audio/aac",
	".ogg":  "audio/ogg",
	".m4a":  "audio/mp4",
	".opus": "audio/opus",

	// 视频格式
	".mp4":  "video/mp4",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",
}

// GetMimeType 根据文件扩展名获取MIME类型
func GetMimeType(ext string) string {
	if mime, ok := MimeTypeMap[strings.ToLower(ext)]; ok {
		return mime
	}
	return "application/octet-stream"
}

// MimeCategory MIME类型大类，压缩引擎按大类分发
type MimeCategory string

const (
	CategoryPDF   MimeCategory = "pdf"
	CategoryImage MimeCategory = "image"
	CategoryVideo MimeCategory = "video"
	CategoryAudio MimeCategory = "audio"
	CategoryText  MimeCategory = "text"
	CategoryOther MimeCategory = "other"
)

// CategoryOf 根据MIME类型归类
func CategoryOf(mimeType string) MimeCategory {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	// 去掉 "text/plain; charset=utf-8" 这类参数
	if idx := strings.Index(mt, ";"); idx >= 0 {
		mt = strings.TrimSpace(mt[:idx])
	}
	switch {
	case mt == "application/pdf":
		return CategoryPDF
	case strings.HasPrefix(mt, "image/"):
		return CategoryImage
	case strings.HasPrefix(mt, "video/"):
		return CategoryVideo
	case strings.HasPrefix(mt, "audio/"):
		return CategoryAudio
	case strings.HasPrefix(mt, "text/"):
		return CategoryText
	default:
		return CategoryOther
	}
}

// IsImageMimeType 判断MIME类型是否为图片
func IsImageMimeType(mimeType string) bool {
	return CategoryOf(mimeType) == CategoryImage
}

// IsAudioMimeType 判断MIME类型是否为音频
func IsAudioMimeType(mimeType string) bool {
	return CategoryOf(mimeType) == CategoryAudio
}

// IsVideoMimeType 判断MIME类型是否为视频
func IsVideoMimeType(mimeType string) bool {
	return CategoryOf(mimeType) == CategoryVideo
}
