package pkv

import (
	"context"

	v1 "github.com/Wenqiii/pkvgo/api/pkv/v1"
)

// CompressionStats 压缩统计
func (c *ControllerV1) CompressionStats(ctx context.Context, req *v1.CompressionStatsReq) (res *v1.CompressionStatsRes, err error) {
	stats, err := c.retrieval.GetCompressionStats(ctx, req.OwnerId)
	if err != nil {
		return nil, err
	}

	return &v1.CompressionStatsRes{
		Items:               stats.Items,
		TotalFileSize:       stats.TotalFileSize,
		TotalCompressedSize: stats.TotalCompressedSize,
		TotalSavedBytes:     stats.TotalSavedBytes,
		OverallRatio:        stats.OverallRatio,
	}, nil
}
