package ingest

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Wenqiii/pkvgo/core/common"
	"github.com/Wenqiii/pkvgo/core/compress"
	"github.com/Wenqiii/pkvgo/core/enrich"
	"github.com/Wenqiii/pkvgo/core/errors"
	"github.com/Wenqiii/pkvgo/core/file_store"
	"github.com/Wenqiii/pkvgo/internal/dao"
	gormModel "github.com/Wenqiii/pkvgo/internal/model/gorm"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/google/uuid"
)

// 单文件大小上限 100MB
const maxUploadSize = 100 << 20

// UploadInput 一次文件入库请求
type UploadInput struct {
	OwnerId     string
	CategoryId  string
	Title       string
	Description string
	FileName    string
	MimeType    string // 为空时按扩展名推断
	Metadata    string // 自由元数据JSON，原样入库
	Data        []byte
}

// UploadResult 入库结果，增强异步进行，返回时状态固定为 processing
type UploadResult struct {
	ItemId            string  `json:"itemId"`
	FileSize          int64   `json:"fileSize"`
	CompressedSize    int64   `json:"compressedSize"`
	CompressionRatio  float64 `json:"compressionRatio"`
	CompressionType   string  `json:"compressionType"`
	OriginalPreserved bool    `json:"originalPreserved"`
	ProcessingStatus  string  `json:"processingStatus"`
}

// enricher 增强任务入口
type enricher interface {
	Submit(ctx context.Context, job enrich.Job) error
}

// Coordinator 文件入库协调器：压缩、存储、落库、异步增强
type Coordinator struct {
	engine  *compress.Engine
	storage file_store.Storage
	buckets file_store.Buckets
	worker  enricher

	createItem   func(ctx context.Context, item *gormModel.KnowledgeItem) error
	findBySHA256 func(ctx context.Context, ownerId, categoryId, sha256 string) (*gormModel.KnowledgeItem, error)
}

// NewCoordinator 创建入库协调器
func NewCoordinator(engine *compress.Engine, storage file_store.Storage, buckets file_store.Buckets, worker enricher) *Coordinator {
	return &Coordinator{
		engine:       engine,
		storage:      storage,
		buckets:      buckets,
		worker:       worker,
		createItem:   dao.CreateItem,
		findBySHA256: dao.GetItemBySHA256,
	}
}

// Upload 执行一次文件入库
// 压缩副本必须入库成功；原始文件保留失败只降级不报错；记录创建失败时回收已写入的对象
func (c *Coordinator) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	// 同一用户同一分类下内容级去重
	sha := common.CalculateSHA256(in.Data)
	if existing, err := c.findBySHA256(ctx, in.OwnerId, in.CategoryId, sha); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, errors.Newf(errors.ErrFileAlreadyExists,
			"identical file already exists as item %s", existing.ID)
	}

	itemId := common.NewItemId(uuid.New().String())

	res, err := c.engine.Compress(ctx, in.Data, in.MimeType, in.FileName)
	if err != nil {
		g.Log().Errorf(ctx, "文件压缩失败: %s, 错误: %v", in.FileName, err)
		return nil, errors.Newf(errors.ErrCompressionFailed, "failed to compress %s: %v", in.FileName, err)
	}

	// 压缩率按原始大小计算，压缩反而变大时为负数，如实记录
	var ratio float64
	if res.OriginalSize > 0 {
		ratio = float64(res.OriginalSize-res.CompressedSize) / float64(res.OriginalSize) * 100
	}

	preserveOriginal := compress.ShouldPreserveOriginal(in.MimeType, ratio)

	// 提取文本清洗后再落库，PDF提取物常带零宽和私有区字符
	extracted := res.ExtractedText
	if extracted != "" {
		cleaned, cerr := common.CleanExtractedText([]byte(extracted))
		if cerr != nil {
			g.Log().Warningf(ctx, "提取文本清洗失败，按无文本处理: %s, 错误: %v", in.FileName, cerr)
			cleaned = ""
		}
		extracted = cleaned
	}

	objectPath := fmt.Sprintf("%s/%s/%s", in.CategoryId, itemId, common.SanitizeObjectName(in.FileName))

	// 压缩副本是唯一权威副本，写入失败则整个上传失败
	stored, err := c.storage.Put(ctx, c.buckets.Compressed, objectPath, res.Compressed, "application/octet-stream")
	if err != nil {
		g.Log().Errorf(ctx, "压缩副本写入失败: %s, 错误: %v", objectPath, err)
		return nil, errors.Newf(errors.ErrFileUploadFailed, "failed to store compressed copy: %v", err)
	}

	// 原始文件保留是尽力而为：失败时降级为只有压缩副本，不阻断上传
	var originalPath *string
	if preserveOriginal {
		origStored, err := c.storage.Put(ctx, c.buckets.Originals, objectPath, in.Data, in.MimeType)
		if err != nil {
			g.Log().Warningf(ctx, "原始文件保留失败，条目 %s 降级为仅压缩副本: %v", itemId, err)
		} else {
			originalPath = common.Of(origStored.Path)
		}
	}

	item := &gormModel.KnowledgeItem{
		ID:               itemId,
		OwnerId:          in.OwnerId,
		CategoryId:       in.CategoryId,
		Title:            in.Title,
		Description:      in.Description,
		FileName:         in.FileName,
		MimeType:         in.MimeType,
		SHA256:           sha,
		FileSize:         res.OriginalSize,
		CompressedSize:   res.CompressedSize,
		FilePath:         stored.Path,
		OriginalFilePath: originalPath,
		CompressionType:  res.CompressionType,
		CompressionRatio: ratio,
		Quality:          res.Quality,
		PreservedForAI:   res.PreservedForAI,
		ExtractedText:    extracted,
		Metadata:         in.Metadata,
		ProcessingStatus: gormModel.StatusProcessing,
	}

	if err := c.createItem(ctx, item); err != nil {
		// 记录没建起来，已写入的对象必须回收，不留孤儿
		c.cleanupObjects(ctx, objectPath, originalPath != nil)
		return nil, err
	}

	// 增强异步执行，提交失败由worker落终态，上传本身已经成功
	if err := c.worker.Submit(ctx, enrich.Job{
		ItemId:        itemId,
		Title:         in.Title,
		ExtractedText: extracted,
	}); err != nil {
		g.Log().Warningf(ctx, "条目 %s 增强任务提交失败: %v", itemId, err)
	}

	g.Log().Infof(ctx, "文件入库成功: ID=%s, 文件=%s, 压缩率=%.1f%%, 保留原件=%v",
		itemId, in.FileName, ratio, originalPath != nil)

	return &UploadResult{
		ItemId:            itemId,
		FileSize:          res.OriginalSize,
		CompressedSize:    res.CompressedSize,
		CompressionRatio:  ratio,
		CompressionType:   res.CompressionType,
		OriginalPreserved: originalPath != nil,
		ProcessingStatus:  gormModel.StatusProcessing,
	}, nil
}

// Delete 删除条目及其存储对象
// 记录删除是权威操作，对象回收尽力而为、异步执行
func (c *Coordinator) Delete(ctx context.Context, itemId string) error {
	item, err := dao.GetItemById(ctx, itemId)
	if err != nil {
		return err
	}

	if err := dao.DeleteItemById(ctx, itemId); err != nil {
		return err
	}

	common.SafeGo(context.Background(), "delete-objects-"+itemId, func() {
		bgCtx := context.Background()
		if err := c.storage.Delete(bgCtx, c.buckets.Compressed, item.FilePath); err != nil {
			g.Log().Warningf(bgCtx, "压缩副本删除失败: %s, 错误: %v", item.FilePath, err)
		}
		if item.OriginalFilePath != nil {
			if err := c.storage.Delete(bgCtx, c.buckets.Originals, *item.OriginalFilePath); err != nil {
				g.Log().Warningf(bgCtx, "原始文件删除失败: %s, 错误: %v", *item.OriginalFilePath, err)
			}
		}
	})

	return nil
}

// cleanupObjects 回收本次上传已写入的存储对象
func (c *Coordinator) cleanupObjects(ctx context.Context, objectPath string, hasOriginal bool) {
	if err := c.storage.Delete(ctx, c.buckets.Compressed, objectPath); err != nil {
		g.Log().Errorf(ctx, "回收压缩副本失败: %s, 错误: %v", objectPath, err)
	}
	if hasOriginal {
		if err := c.storage.Delete(ctx, c.buckets.Originals, objectPath); err != nil {
			g.Log().Errorf(ctx, "回收原始文件失败: %s, 错误: %v", objectPath, err)
		}
	}
}

// validateInput 入参校验，同时补全MIME类型
func validateInput(in *UploadInput) error {
	if in.OwnerId == "" {
		return errors.New(errors.ErrInvalidParameter, "ownerId is required")
	}
	if in.FileName == "" {
		return errors.New(errors.ErrInvalidParameter, "fileName is required")
	}
	if len(in.Data) == 0 {
		return errors.New(errors.ErrInvalidParameter, "file content is empty")
	}
	if len(in.Data) > maxUploadSize {
		return errors.Newf(errors.ErrFileSizeExceeded, "file size %d exceeds limit %d", len(in.Data), maxUploadSize)
	}
	if in.CategoryId == "" {
		in.CategoryId = "default"
	}
	if in.Title == "" {
		in.Title = in.FileName
	}
	if in.MimeType == "" {
		in.MimeType = common.GetMimeType(filepath.Ext(in.FileName))
	}
	return nil
}
