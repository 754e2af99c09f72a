package dao

import (
	"context"
	stderrors "errors"

	"github.com/Wenqiii/pkvgo/core/errors"
	gormModel "github.com/Wenqiii/pkvgo/internal/model/gorm"
	"github.com/gogf/gf/v2/frame/g"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// CreateItem 保存知识条目
func CreateItem(ctx context.Context, item *gormModel.KnowledgeItem) error {
	result := GetDB().WithContext(ctx).Create(item)
	if result.Error != nil {
		g.Log().Errorf(ctx, "保存知识条目失败: ID=%s, 错误: %v", item.ID, result.Error)
		return errors.Newf(errors.ErrDatabaseInsert, "failed to create knowledge item: %v", result.Error)
	}
	g.Log().Infof(ctx, "知识条目保存成功, ID: %s", item.ID)
	return nil
}

// UpdateItemById 按ID部分更新知识条目
// fields 中未出现的列保持原值，不会被覆盖
func UpdateItemById(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := GetDB().WithContext(ctx).
		Model(&gormModel.KnowledgeItem{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		g.Log().Errorf(ctx, "更新知识条目失败: ID=%s, 错误: %v", id, result.Error)
		return errors.Newf(errors.ErrDatabaseUpdate, "failed to update knowledge item %s: %v", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.Newf(errors.ErrItemNotFound, "knowledge item %s not found", id)
	}
	return nil
}

// GetItemById 根据ID获取知识条目
func GetItemById(ctx context.Context, id string) (*gormModel.KnowledgeItem, error) {
	var item gormModel.KnowledgeItem
	err := GetDB().WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Newf(errors.ErrItemNotFound, "knowledge item %s not found", id)
		}
		g.Log().Errorf(ctx, "获取知识条目失败: ID=%s, 错误: %v", id, err)
		return nil, errors.Newf(errors.ErrDatabaseQuery, "failed to query knowledge item %s: %v", id, err)
	}
	return &item, nil
}

// GetItemBySHA256 查询同一用户同一分类下是否已存在相同内容的文件
func GetItemBySHA256(ctx context.Context, ownerId, categoryId, sha256 string) (*gormModel.KnowledgeItem, error) {
	var item gormModel.KnowledgeItem
	err := GetDB().WithContext(ctx).
		Where("owner_id = ? AND category_id = ? AND sha256 = ?", ownerId, categoryId, sha256).
		First(&item).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Newf(errors.ErrDatabaseQuery, "failed to query by sha256: %v", err)
	}
	return &item, nil
}

// ListItems 分页获取知识条目列表
func ListItems(ctx context.Context, ownerId, categoryId string, page, pageSize int) (items []gormModel.KnowledgeItem, total int64, err error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	query := GetDB().WithContext(ctx).Model(&gormModel.KnowledgeItem{}).Where("owner_id = ?", ownerId)
	if categoryId != "" {
		query = query.Where("category_id = ?", categoryId)
	}

	if err = query.Count(&total).Error; err != nil {
		g.Log().Errorf(ctx, "获取知识条目总数失败: %v", err)
		return nil, 0, errors.Newf(errors.ErrDatabaseQuery, "failed to count knowledge items: %v", err)
	}
	if total == 0 {
		return nil, 0, nil
	}

	err = query.Order("create_time desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error
	if err != nil {
		g.Log().Errorf(ctx, "获取知识条目列表失败: %v", err)
		return nil, 0, errors.Newf(errors.ErrDatabaseQuery, "failed to list knowledge items: %v", err)
	}
	return items, total, nil
}

// DeleteItemById 删除知识条目
func DeleteItemById(ctx context.Context, id string) error {
	result := GetDB().WithContext(ctx).Where("id = ?", id).Delete(&gormModel.KnowledgeItem{})
	if result.Error != nil {
		g.Log().Errorf(ctx, "删除知识条目失败: ID=%s, 错误: %v", id, result.Error)
		return errors.Newf(errors.ErrDatabaseDelete, "failed to delete knowledge item %s: %v", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.Newf(errors.ErrItemNotFound, "knowledge item %s not found", id)
	}
	g.Log().Infof(ctx, "知识条目删除成功: ID=%s", id)
	return nil
}

// CompressionStatsRow 压缩统计聚合结果
type CompressionStatsRow struct {
	Items               int64 `gorm:"column:items"`
	TotalFileSize       int64 `gorm:"column:total_file_size"`
	TotalCompressedSize int64 `gorm:"column:total_compressed_size"`
}

// GetCompressionStats 聚合压缩统计，ownerId 为空时统计全部
func GetCompressionStats(ctx context.Context, ownerId string) (*CompressionStatsRow, error) {
	var row CompressionStatsRow
	query := GetDB().WithContext(ctx).Model(&gormModel.KnowledgeItem{}).
		Select("COUNT(*) AS items, COALESCE(SUM(file_size),0) AS total_file_size, COALESCE(SUM(compressed_size),0) AS total_compressed_size")
	if ownerId != "" {
		query = query.Where("owner_id = ?", ownerId)
	}
	if err := query.Scan(&row).Error; err != nil {
		g.Log().Errorf(ctx, "压缩统计查询失败: %v", err)
		return nil, errors.Newf(errors.ErrDatabaseQuery, "failed to aggregate compression stats: %v", err)
	}
	return &row, nil
}
