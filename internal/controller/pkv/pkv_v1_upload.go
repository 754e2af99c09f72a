package pkv

import (
	"context"
	"io"

	v1 "github.com/Wenqiii/pkvgo/api/pkv/v1"
	"github.com/Wenqiii/pkvgo/core/errors"
	"github.com/Wenqiii/pkvgo/internal/logic/ingest"
	"github.com/gogf/gf/v2/frame/g"
)

// ItemUpload 文件上传入库
func (c *ControllerV1) ItemUpload(ctx context.Context, req *v1.ItemUploadReq) (res *v1.ItemUploadRes, err error) {
	g.Log().Infof(ctx, "ItemUpload request received - Owner: %s, Category: %s, File: %s",
		req.OwnerId, req.CategoryId, req.File.Filename)

	file, err := req.File.Open()
	if err != nil {
		g.Log().Errorf(ctx, "Failed to open uploaded file: %v", err)
		return nil, errors.Newf(errors.ErrFileReadFailed, "failed to open uploaded file: %v", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		g.Log().Errorf(ctx, "Failed to read uploaded file: %v", err)
		return nil, errors.Newf(errors.ErrFileReadFailed, "failed to read uploaded file: %v", err)
	}

	result, err := c.ingest.Upload(ctx, ingest.UploadInput{
		OwnerId:     req.OwnerId,
		CategoryId:  req.CategoryId,
		Title:       req.Title,
		Description: req.Description,
		FileName:    req.File.Filename,
		MimeType:    req.File.Header.Get("Content-Type"),
		Metadata:    req.Metadata,
		Data:        data,
	})
	if err != nil {
		return nil, err
	}

	return &v1.ItemUploadRes{
		ItemId:            result.ItemId,
		FileSize:          result.FileSize,
		CompressedSize:    result.CompressedSize,
		CompressionRatio:  result.CompressionRatio,
		CompressionType:   result.CompressionType,
		OriginalPreserved: result.OriginalPreserved,
		ProcessingStatus:  result.ProcessingStatus,
	}, nil
}
