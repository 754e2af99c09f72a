package pkv

import (
	"context"

	v1 "github.com/Wenqiii/pkvgo/api/pkv/v1"
	"github.com/Wenqiii/pkvgo/core/common"
	"github.com/Wenqiii/pkvgo/core/errors"
	gormModel "github.com/Wenqiii/pkvgo/internal/model/gorm"
	"github.com/gogf/gf/v2/frame/g"
)

// ItemRegenerate 重新生成条目AI内容
func (c *ControllerV1) ItemRegenerate(ctx context.Context, req *v1.ItemRegenerateReq) (res *v1.ItemRegenerateRes, err error) {
	g.Log().Infof(ctx, "ItemRegenerate request received - Id: %s", req.Id)

	if !common.ValidateItemId(req.Id) {
		return nil, errors.Newf(errors.ErrInvalidParameter, "invalid item id: %s", req.Id)
	}

	if err = c.retrieval.RegenerateAIContent(ctx, req.Id); err != nil {
		return nil, err
	}

	return &v1.ItemRegenerateRes{
		Status:  gormModel.StatusProcessing,
		Message: "AI content regeneration started",
	}, nil
}
