package pkv

import (
	"context"

	v1 "github.com/Wenqiii/pkvgo/api/pkv/v1"
	"github.com/Wenqiii/pkvgo/core/common"
	"github.com/Wenqiii/pkvgo/core/errors"
	"github.com/gogf/gf/v2/frame/g"
)

// ItemGet 获取单个条目
func (c *ControllerV1) ItemGet(ctx context.Context, req *v1.ItemGetReq) (res *v1.ItemGetRes, err error) {
	if !common.ValidateItemId(req.Id) {
		return nil, errors.Newf(errors.ErrInvalidParameter, "invalid item id: %s", req.Id)
	}
	item, err := c.retrieval.GetItem(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	return &v1.ItemGetRes{Item: item}, nil
}

// ItemsList 分页获取条目列表
func (c *ControllerV1) ItemsList(ctx context.Context, req *v1.ItemsListReq) (res *v1.ItemsListRes, err error) {
	g.Log().Infof(ctx, "ItemsList request received - Owner: %s, Category: %s, Page: %d, Size: %d",
		req.OwnerId, req.CategoryId, req.Page, req.Size)

	items, total, err := c.retrieval.ListItems(ctx, req.OwnerId, req.CategoryId, req.Page, req.Size)
	if err != nil {
		return nil, err
	}

	return &v1.ItemsListRes{
		Data:  items,
		Total: total,
		Page:  req.Page,
		Size:  req.Size,
	}, nil
}

// ItemDelete 删除条目
func (c *ControllerV1) ItemDelete(ctx context.Context, req *v1.ItemDeleteReq) (res *v1.ItemDeleteRes, err error) {
	if !common.ValidateItemId(req.Id) {
		return nil, errors.Newf(errors.ErrInvalidParameter, "invalid item id: %s", req.Id)
	}
	if err = c.ingest.Delete(ctx, req.Id); err != nil {
		return nil, err
	}
	return &v1.ItemDeleteRes{Message: "item deleted"}, nil
}
