package pkv

import (
	"context"
	"fmt"

	v1 "github.com/Wenqiii/pkvgo/api/pkv/v1"
	"github.com/Wenqiii/pkvgo/core/common"
	"github.com/Wenqiii/pkvgo/core/errors"
	"github.com/gogf/gf/v2/frame/g"
)

// ItemDownload 取回文件内容，直接写响应体
func (c *ControllerV1) ItemDownload(ctx context.Context, req *v1.ItemDownloadReq) (res *v1.ItemDownloadRes, err error) {
	if !common.ValidateItemId(req.Id) {
		return nil, errors.Newf(errors.ErrInvalidParameter, "invalid item id: %s", req.Id)
	}
	content, err := c.retrieval.GetOriginalBytes(ctx, req.Id)
	if err != nil {
		return nil, err
	}

	r := g.RequestFromCtx(ctx)
	contentType := content.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	r.Response.Header().Set("Content-Type", contentType)
	r.Response.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"`, content.FileName))
	r.Response.Write(content.Data)

	return &v1.ItemDownloadRes{}, nil
}
