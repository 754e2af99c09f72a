package retrieval

import (
	"context"

	"github.com/Wenqiii/pkvgo/core/compress"
	"github.com/Wenqiii/pkvgo/core/enrich"
	"github.com/Wenqiii/pkvgo/core/errors"
	"github.com/Wenqiii/pkvgo/core/file_store"
	"github.com/Wenqiii/pkvgo/internal/dao"
	gormModel "github.com/Wenqiii/pkvgo/internal/model/gorm"
	"github.com/gogf/gf/v2/frame/g"
)

// FileContent 取回的文件内容
type FileContent struct {
	Data         []byte
	FileName     string
	MimeType     string
	FromOriginal bool // 是否直接来自保留的原始文件
}

// CompressionStats 全量压缩统计
type CompressionStats struct {
	Items               int64   `json:"items"`
	TotalFileSize       int64   `json:"totalFileSize"`
	TotalCompressedSize int64   `json:"totalCompressedSize"`
	TotalSavedBytes     int64   `json:"totalSavedBytes"`
	OverallRatio        float64 `json:"overallRatio"` // 按总量计算的压缩率百分比
}

// enricher 增强任务入口
type enricher interface {
	Submit(ctx context.Context, job enrich.Job) error
}

// Service 知识条目读取服务
type Service struct {
	engine  *compress.Engine
	storage file_store.Storage
	buckets file_store.Buckets
	worker  enricher

	getItem      func(ctx context.Context, id string) (*gormModel.KnowledgeItem, error)
	updateItem   func(ctx context.Context, id string, fields map[string]interface{}) error
	statsForUser func(ctx context.Context, ownerId string) (*dao.CompressionStatsRow, error)
}

// NewService 创建读取服务
func NewService(engine *compress.Engine, storage file_store.Storage, buckets file_store.Buckets, worker enricher) *Service {
	return &Service{
		engine:       engine,
		storage:      storage,
		buckets:      buckets,
		worker:       worker,
		getItem:      dao.GetItemById,
		updateItem:   dao.UpdateItemById,
		statsForUser: dao.GetCompressionStats,
	}
}

// GetItem 获取单个知识条目
func (s *Service) GetItem(ctx context.Context, itemId string) (*gormModel.KnowledgeItem, error) {
	return s.getItem(ctx, itemId)
}

// ListItems 分页获取条目列表
func (s *Service) ListItems(ctx context.Context, ownerId, categoryId string, page, pageSize int) ([]gormModel.KnowledgeItem, int64, error) {
	if ownerId == "" {
		return nil, 0, errors.New(errors.ErrInvalidParameter, "ownerId is required")
	}
	return dao.ListItems(ctx, ownerId, categoryId, page, pageSize)
}

// GetOriginalBytes 取回文件内容
// 保留了原始文件时直接返回原件；否则取压缩副本按其压缩类型标签解压
func (s *Service) GetOriginalBytes(ctx context.Context, itemId string) (*FileContent, error) {
	item, err := s.getItem(ctx, itemId)
	if err != nil {
		return nil, err
	}

	if item.OriginalFilePath != nil {
		data, err := s.storage.Get(ctx, s.buckets.Originals, *item.OriginalFilePath)
		if err == nil {
			return &FileContent{Data: data, FileName: item.FileName, MimeType: item.MimeType, FromOriginal: true}, nil
		}
		// 原件读不到时退回压缩副本，解压结果与原件等价
		g.Log().Warningf(ctx, "原始文件读取失败，回退压缩副本: ID=%s, 错误: %v", itemId, err)
	}

	compressed, err := s.storage.Get(ctx, s.buckets.Compressed, item.FilePath)
	if err != nil {
		g.Log().Errorf(ctx, "压缩副本读取失败: ID=%s, 错误: %v", itemId, err)
		return nil, errors.Newf(errors.ErrFileReadFailed, "failed to read stored copy for item %s: %v", itemId, err)
	}

	data, err := s.engine.Decompress(ctx, compressed, item.CompressionType)
	if err != nil {
		g.Log().Errorf(ctx, "解压失败: ID=%s, 压缩类型=%s, 错误: %v", itemId, item.CompressionType, err)
		return nil, err
	}

	return &FileContent{Data: data, FileName: item.FileName, MimeType: item.MimeType, FromOriginal: false}, nil
}

// RegenerateAIContent 重新生成条目的AI内容
// 条目回到 processing 并清空上次错误，增强异步执行；已有任务在跑时拒绝
func (s *Service) RegenerateAIContent(ctx context.Context, itemId string) error {
	item, err := s.getItem(ctx, itemId)
	if err != nil {
		return err
	}

	if err := s.updateItem(ctx, itemId, map[string]interface{}{
		"processing_status": gormModel.StatusProcessing,
		"processing_error":  "",
	}); err != nil {
		return err
	}

	if err := s.worker.Submit(ctx, enrich.Job{
		ItemId:        item.ID,
		Title:         item.Title,
		ExtractedText: item.ExtractedText,
	}); err != nil {
		g.Log().Warningf(ctx, "条目 %s 重新增强提交失败: %v", itemId, err)
		return err
	}

	g.Log().Infof(ctx, "条目 %s 已重新进入增强队列", itemId)
	return nil
}

// GetCompressionStats 压缩统计汇总，ownerId 为空统计全部
// 总体压缩率按字节总量计算，不是逐条压缩率的平均值
func (s *Service) GetCompressionStats(ctx context.Context, ownerId string) (*CompressionStats, error) {
	row, err := s.statsForUser(ctx, ownerId)
	if err != nil {
		return nil, err
	}

	stats := &CompressionStats{
		Items:               row.Items,
		TotalFileSize:       row.TotalFileSize,
		TotalCompressedSize: row.TotalCompressedSize,
		TotalSavedBytes:     row.TotalFileSize - row.TotalCompressedSize,
	}
	if row.TotalFileSize > 0 {
		stats.OverallRatio = float64(stats.TotalSavedBytes) / float64(row.TotalFileSize) * 100
	}
	return stats, nil
}
