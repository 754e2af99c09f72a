package gorm

import (
	"time"
)

// ProcessingStatus 知识条目生命周期状态
const (
	StatusPending    = "pending"    // 仅作占位，入库即为 processing
	StatusProcessing = "processing" // 压缩入库完成，增强进行中
	StatusCompleted  = "completed"  // 增强结束（允许部分子任务失败）
	StatusFailed     = "failed"     // 增强流程整体失败
)

// KnowledgeItem GORM模型定义，一条记录对应一个已入库文件
type KnowledgeItem struct {
	ID         string `gorm:"primaryKey;column:id;type:char(32)"`
	OwnerId    string `gorm:"column:owner_id;type:varchar(255);not null;index"`
	CategoryId string `gorm:"column:category_id;type:varchar(255);not null;index"`

	Title       string `gorm:"column:title;type:varchar(255)"`
	Description string `gorm:"column:description;type:text"`
	FileName    string `gorm:"column:file_name;type:varchar(255)"`
	MimeType    string `gorm:"column:mime_type;type:varchar(128)"`
	SHA256      string `gorm:"column:sha256;type:varchar(64);index"`

	FileSize       int64 `gorm:"column:file_size;not null"`
	CompressedSize int64 `gorm:"column:compressed_size;not null"`

	FilePath         string  `gorm:"column:file_path;type:varchar(512);not null"` // 压缩副本位置
	OriginalFilePath *string `gorm:"column:original_file_path;type:varchar(512)"` // 保留的原始文件位置，可空

	CompressionType  string  `gorm:"column:compression_type;type:varchar(32);not null"`
	CompressionRatio float64 `gorm:"column:compression_ratio"` // 百分比，可能为负
	Quality          string  `gorm:"column:quality;type:varchar(32)"`
	PreservedForAI   bool    `gorm:"column:preserved_for_ai;type:tinyint(1);default:0"`

	ExtractedText string `gorm:"column:extracted_text;type:text"`
	Metadata      string `gorm:"column:metadata;type:json"` // 自由元数据（学科、标签等），核心不解释

	Summary         string `gorm:"column:summary;type:text"`
	KeyPoints       string `gorm:"column:key_points;type:json"` // JSON字符串数组，保持顺序
	AIAnalysis      string `gorm:"column:ai_analysis;type:json"`
	ProcessingError string `gorm:"column:processing_error;type:text"`

	ProcessingStatus string `gorm:"column:processing_status;type:varchar(16);not null;default:processing;index"`

	CreateTime *time.Time `gorm:"column:create_time;type:timestamp;autoCreateTime"`
	UpdateTime *time.Time `gorm:"column:update_time;type:timestamp;autoUpdateTime"`
}

// TableName 设置表名
func (KnowledgeItem) TableName() string {
	return "knowledge_items"
}
