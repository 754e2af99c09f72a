package v1

import (
	gormModel "github.com/Wenqiii/pkvgo/internal/model/gorm"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/net/ghttp"
)

// ItemUploadReq 文件上传入库请求
type ItemUploadReq struct {
	g.Meta      `path:"/v1/items/upload" method:"post" mime:"multipart/form-data" tags:"items"`
	File        *ghttp.UploadFile `p:"file" type:"file" dc:"File content" v:"required"`
	OwnerId     string            `p:"owner_id" dc:"Owner user ID" v:"required"`
	CategoryId  string            `p:"category_id" dc:"Category ID" d:"default"`
	Title       string            `p:"title" dc:"Item title, defaults to file name"`
	Description string            `p:"description" dc:"Item description"`
	Metadata    string            `p:"metadata" dc:"Free-form metadata JSON, stored as-is"`
}

type ItemUploadRes struct {
	g.Meta            `mime:"application/json"`
	ItemId            string  `json:"item_id" dc:"Knowledge item ID"`
	FileSize          int64   `json:"file_size" dc:"Original file size in bytes"`
	CompressedSize    int64   `json:"compressed_size" dc:"Stored compressed size in bytes"`
	CompressionRatio  float64 `json:"compression_ratio" dc:"Compression ratio percentage"`
	CompressionType   string  `json:"compression_type" dc:"Compression type tag"`
	OriginalPreserved bool    `json:"original_preserved" dc:"Whether the original file was kept"`
	ProcessingStatus  string  `json:"processing_status" dc:"Always processing on return, enrichment is async"`
}

// ItemGetReq 获取单个条目
type ItemGetReq struct {
	g.Meta `path:"/v1/items/{id}" method:"get" tags:"items"`
	Id     string `p:"id" dc:"Knowledge item ID" v:"required"`
}

type ItemGetRes struct {
	g.Meta `mime:"application/json"`
	Item   *gormModel.KnowledgeItem `json:"item" dc:"Knowledge item"`
}

// ItemsListReq 分页获取条目列表
type ItemsListReq struct {
	g.Meta     `path:"/v1/items" method:"get" tags:"items"`
	OwnerId    string `p:"owner_id" dc:"Owner user ID" v:"required"`
	CategoryId string `p:"category_id" dc:"Filter by category"`
	Page       int    `p:"page" dc:"Page number" d:"1"`
	Size       int    `p:"size" dc:"Page size" d:"10"`
}

type ItemsListRes struct {
	g.Meta `mime:"application/json"`
	Data   []gormModel.KnowledgeItem `json:"data" dc:"Knowledge items"`
	Total  int64                     `json:"total" dc:"Total matched items"`
	Page   int                       `json:"page" dc:"Page number"`
	Size   int                       `json:"size" dc:"Page size"`
}

// ItemDownloadReq 取回文件内容，原件优先，否则解压压缩副本
type ItemDownloadReq struct {
	g.Meta `path:"/v1/items/{id}/download" method:"get" tags:"items"`
	Id     string `p:"id" dc:"Knowledge item ID" v:"required"`
}

type ItemDownloadRes struct {
	g.Meta `mime:"application/octet-stream"`
}

// ItemDeleteReq 删除条目及其存储对象
type ItemDeleteReq struct {
	g.Meta `path:"/v1/items/{id}" method:"delete" tags:"items"`
	Id     string `p:"id" dc:"Knowledge item ID" v:"required"`
}

type ItemDeleteRes struct {
	g.Meta  `mime:"application/json"`
	Message string `json:"message" dc:"Delete result"`
}

// ItemRegenerateReq 重新生成条目AI内容
type ItemRegenerateReq struct {
	g.Meta `path:"/v1/items/{id}/regenerate" method:"post" tags:"items"`
	Id     string `p:"id" dc:"Knowledge item ID" v:"required"`
}

type ItemRegenerateRes struct {
	g.Meta  `mime:"application/json"`
	Status  string `json:"status" dc:"Item status after the reset"`
	Message string `json:"message" dc:"Result message"`
}

// CompressionStatsReq 压缩统计
type CompressionStatsReq struct {
	g.Meta  `path:"/v1/items/stats" method:"get" tags:"items"`
	OwnerId string `p:"owner_id" dc:"Owner user ID, empty for all users"`
}

type CompressionStatsRes struct {
	g.Meta              `mime:"application/json"`
	Items               int64   `json:"items" dc:"Item count"`
	TotalFileSize       int64   `json:"total_file_size" dc:"Sum of original sizes"`
	TotalCompressedSize int64   `json:"total_compressed_size" dc:"Sum of stored compressed sizes"`
	TotalSavedBytes     int64   `json:"total_saved_bytes" dc:"Bytes saved by compression"`
	OverallRatio        float64 `json:"overall_ratio" dc:"Overall compression ratio percentage"`
}
